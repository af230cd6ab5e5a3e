package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/pos-service/internal/model"
	"github.com/d60-Lab/pos-service/internal/repository"
	"github.com/d60-Lab/pos-service/pkg/apperr"
	"github.com/d60-Lab/pos-service/pkg/database"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedBasics(t *testing.T, db *gorm.DB) {
	t.Helper()
	catID := int64(1)
	require.NoError(t, db.Create(&model.Category{ID: 1, Name: "Electronics"}).Error)
	require.NoError(t, db.Create(&model.User{ID: 1, Username: "demo_user", Email: "demo@example.com"}).Error)
	require.NoError(t, db.Create(&model.Product{
		ID: 1, Name: "Sample Product", Price: 29.99,
		CategoryID: &catID, StockQuantity: 100, IsActive: true,
	}).Error)
}

func newService(db *gorm.DB) OrderService {
	return NewOrderService(repository.NewOrderRepository(db), repository.NewProductRepository(db), nil)
}

func TestCreateOrderComputesTotalsAndDecrementsStock(t *testing.T) {
	db := setupDB(t)
	seedBasics(t, db)
	svc := newService(db)
	ctx := context.Background()

	detail, err := svc.Create(ctx, &CreateOrderRequest{
		UserID: 1,
		Items:  []OrderItemRequest{{ProductID: 1, Quantity: 3}},
	})
	require.NoError(t, err)
	assert.InDelta(t, 89.97, detail.TotalAmount, 1e-9)
	assert.Equal(t, model.OrderStatusPending, detail.Status)
	require.Len(t, detail.Items, 1)
	assert.InDelta(t, 29.99, detail.Items[0].UnitPrice, 1e-9)
	assert.InDelta(t, 89.97, detail.Items[0].TotalPrice, 1e-9)
	require.NotNil(t, detail.Username)
	assert.Equal(t, "demo_user", *detail.Username)
	require.NotNil(t, detail.Items[0].ProductName)
	assert.Equal(t, "Sample Product", *detail.Items[0].ProductName)

	var p model.Product
	require.NoError(t, db.First(&p, 1).Error)
	assert.Equal(t, 97, p.StockQuantity)
}

func TestCreateOrderWithMultipleLines(t *testing.T) {
	db := setupDB(t)
	seedBasics(t, db)
	require.NoError(t, db.Create(&model.Product{
		ID: 2, Name: "Coffee", Price: 4.50, StockQuantity: 10, IsActive: true,
	}).Error)
	svc := newService(db)

	detail, err := svc.Create(context.Background(), &CreateOrderRequest{
		UserID: 1,
		Items: []OrderItemRequest{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 4},
		},
	})
	require.NoError(t, err)
	require.Len(t, detail.Items, 2)

	var sum float64
	for _, item := range detail.Items {
		sum += item.TotalPrice
	}
	assert.InDelta(t, sum, detail.TotalAmount, 1e-9)

	var orderCount, itemCount int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&model.OrderItem{}).Count(&itemCount).Error)
	assert.Equal(t, int64(1), orderCount)
	assert.Equal(t, int64(2), itemCount)
}

func TestCreateOrderRejectsInvalidInput(t *testing.T) {
	db := setupDB(t)
	seedBasics(t, db)
	svc := newService(db)
	ctx := context.Background()

	cases := []struct {
		name string
		req  *CreateOrderRequest
	}{
		{"missing user", &CreateOrderRequest{Items: []OrderItemRequest{{ProductID: 1, Quantity: 1}}}},
		{"empty items", &CreateOrderRequest{UserID: 1}},
		{"zero quantity", &CreateOrderRequest{UserID: 1, Items: []OrderItemRequest{{ProductID: 1, Quantity: 0}}}},
		{"negative quantity", &CreateOrderRequest{UserID: 1, Items: []OrderItemRequest{{ProductID: 1, Quantity: -2}}}},
		{"missing product id", &CreateOrderRequest{UserID: 1, Items: []OrderItemRequest{{Quantity: 1}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}

	var orderCount int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	db := setupDB(t)
	seedBasics(t, db)
	svc := newService(db)

	_, err := svc.Create(context.Background(), &CreateOrderRequest{
		UserID: 1,
		Items:  []OrderItemRequest{{ProductID: 1, Quantity: 101}},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	var orderCount, itemCount int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&model.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)

	var p model.Product
	require.NoError(t, db.First(&p, 1).Error)
	assert.Equal(t, 100, p.StockQuantity)
}

func TestCreateOrderUnknownOrInactiveProduct(t *testing.T) {
	db := setupDB(t)
	seedBasics(t, db)
	require.NoError(t, db.Create(&model.Product{
		ID: 2, Name: "Retired", Price: 1.00, StockQuantity: 5, IsActive: false,
	}).Error)
	svc := newService(db)
	ctx := context.Background()

	_, err := svc.Create(ctx, &CreateOrderRequest{
		UserID: 1,
		Items:  []OrderItemRequest{{ProductID: 99, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	_, err = svc.Create(ctx, &CreateOrderRequest{
		UserID: 1,
		Items:  []OrderItemRequest{{ProductID: 2, Quantity: 1}},
	})
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	// 校验阶段先于任何写入，失败请求不留痕
	var orderCount int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orderCount).Error)
	assert.Zero(t, orderCount)
}

// failingOrderRepo 在第 n 次行项目写入时注入失败
type failingOrderRepo struct {
	repository.OrderRepository
	calls    int
	failCall int
}

func (f *failingOrderRepo) CreateItem(ctx context.Context, item *model.OrderItem) error {
	f.calls++
	if f.calls == f.failCall {
		return assert.AnError
	}
	return f.OrderRepository.CreateItem(ctx, item)
}

// 行项目写入中途失败时，订单头与已写入的行不回滚，库存扣减也保留。
func TestCreateOrderPartialWriteSurvivesLaterFailure(t *testing.T) {
	db := setupDB(t)
	seedBasics(t, db)
	require.NoError(t, db.Create(&model.Product{
		ID: 2, Name: "Coffee", Price: 4.50, StockQuantity: 10, IsActive: true,
	}).Error)

	orderRepo := &failingOrderRepo{
		OrderRepository: repository.NewOrderRepository(db),
		failCall:        2,
	}
	svc := NewOrderService(orderRepo, repository.NewProductRepository(db), nil)

	_, err := svc.Create(context.Background(), &CreateOrderRequest{
		UserID: 1,
		Items: []OrderItemRequest{
			{ProductID: 1, Quantity: 3},
			{ProductID: 2, Quantity: 1},
		},
	})
	require.Error(t, err)

	var orderCount, itemCount int64
	require.NoError(t, db.Model(&model.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&model.OrderItem{}).Count(&itemCount).Error)
	assert.Equal(t, int64(1), orderCount)
	assert.Equal(t, int64(1), itemCount)

	var p1, p2 model.Product
	require.NoError(t, db.First(&p1, 1).Error)
	require.NoError(t, db.First(&p2, 2).Error)
	assert.Equal(t, 97, p1.StockQuantity)
	assert.Equal(t, 10, p2.StockQuantity)
}

func TestUpdateStatus(t *testing.T) {
	db := setupDB(t)
	seedBasics(t, db)
	svc := newService(db)
	ctx := context.Background()

	detail, err := svc.Create(ctx, &CreateOrderRequest{
		UserID: 1,
		Items:  []OrderItemRequest{{ProductID: 1, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, detail.ID, "shipped")
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))

	var o model.Order
	require.NoError(t, db.First(&o, detail.ID).Error)
	assert.Equal(t, model.OrderStatusPending, o.Status)

	// 迁移不受限制：completed 之后仍可回到 pending
	view, err := svc.UpdateStatus(ctx, detail.ID, model.OrderStatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCompleted, view.Status)

	view, err = svc.UpdateStatus(ctx, detail.ID, model.OrderStatusPending)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusPending, view.Status)

	_, err = svc.UpdateStatus(ctx, 9999, model.OrderStatusCancelled)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestAnalytics(t *testing.T) {
	db := setupDB(t)
	seedBasics(t, db)
	require.NoError(t, db.Create(&model.Product{
		ID: 2, Name: "Coffee", Price: 4.50, StockQuantity: 50, IsActive: true,
	}).Error)
	svc := newService(db)
	ctx := context.Background()

	first, err := svc.Create(ctx, &CreateOrderRequest{
		UserID: 1,
		Items:  []OrderItemRequest{{ProductID: 1, Quantity: 2}},
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &CreateOrderRequest{
		UserID: 1,
		Items:  []OrderItemRequest{{ProductID: 2, Quantity: 5}},
	})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, first.ID, model.OrderStatusCompleted)
	require.NoError(t, err)

	analytics, err := svc.Analytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), analytics.TotalOrders)
	assert.Equal(t, int64(1), analytics.PendingOrders)
	assert.InDelta(t, 59.98, analytics.TotalRevenue, 1e-9)
	require.Len(t, analytics.TopProducts, 1)
	assert.Equal(t, "Sample Product", analytics.TopProducts[0].Name)
	assert.Equal(t, 2, analytics.TopProducts[0].TotalSold)
	assert.Len(t, analytics.RecentOrders, 2)
}
