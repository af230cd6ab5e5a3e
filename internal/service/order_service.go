package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/d60-Lab/pos-service/internal/cache"
	"github.com/d60-Lab/pos-service/internal/model"
	"github.com/d60-Lab/pos-service/internal/repository"
	"github.com/d60-Lab/pos-service/pkg/apperr"
	"github.com/d60-Lab/pos-service/pkg/logger"
)

const analyticsCacheKey = "orders:analytics"

// OrderItemRequest 单个行项目请求
type OrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	UserID int64              `json:"user_id"`
	Items  []OrderItemRequest `json:"items"`
}

// OrderService 订单服务：下单工作流、状态更新与看板聚合。
type OrderService interface {
	List(ctx context.Context) ([]model.OrderView, error)
	Get(ctx context.Context, id int64) (*model.OrderDetail, error)
	Create(ctx context.Context, req *CreateOrderRequest) (*model.OrderDetail, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*model.OrderView, error)
	Analytics(ctx context.Context) (*model.Analytics, error)
}

type orderService struct {
	orders   repository.OrderRepository
	products repository.ProductRepository
	cache    *cache.Cache
}

func NewOrderService(orders repository.OrderRepository, products repository.ProductRepository, c *cache.Cache) OrderService {
	return &orderService{orders: orders, products: products, cache: c}
}

func (s *orderService) List(ctx context.Context) ([]model.OrderView, error) {
	return s.orders.List(ctx)
}

func (s *orderService) Get(ctx context.Context, id int64) (*model.OrderDetail, error) {
	view, err := s.orders.GetView(ctx, id)
	if err != nil {
		return nil, err
	}
	items, err := s.orders.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &model.OrderDetail{OrderView: *view, Items: items}, nil
}

// Create 下单工作流。
// 行项目逐条顺序处理：先整体校验（查在售商品、比对库存、累计总价），
// 再写订单头，最后逐条写行项目并扣减库存。
// 各语句相互独立，无事务包裹：中途失败时，已写入的订单头 / 行项目
// 和已扣减的库存不回滚；库存校验与扣减之间也没有任何锁，
// 并发请求可以基于同一初始库存同时通过校验。
func (s *orderService) Create(ctx context.Context, req *CreateOrderRequest) (*model.OrderDetail, error) {
	if req == nil || req.UserID == 0 || len(req.Items) == 0 {
		return nil, apperr.Validationf("User ID and items array are required")
	}

	type pricedItem struct {
		OrderItemRequest
		unitPrice  float64
		totalPrice float64
	}
	priced := make([]pricedItem, 0, len(req.Items))
	var totalAmount float64

	for _, item := range req.Items {
		if item.ProductID == 0 || item.Quantity <= 0 {
			return nil, apperr.Validationf("Invalid item data")
		}
		product, err := s.products.GetActive(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product.StockQuantity < item.Quantity {
			return nil, apperr.Validationf("Insufficient stock for product %s", product.Name)
		}
		lineTotal := product.Price * float64(item.Quantity)
		totalAmount += lineTotal
		priced = append(priced, pricedItem{
			OrderItemRequest: item,
			unitPrice:        product.Price,
			totalPrice:       lineTotal,
		})
	}

	order := &model.Order{
		UserID:      req.UserID,
		TotalAmount: totalAmount,
		Status:      model.OrderStatusPending,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	for _, item := range priced {
		if err := s.orders.CreateItem(ctx, &model.OrderItem{
			OrderID:    order.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.unitPrice,
			TotalPrice: item.totalPrice,
		}); err != nil {
			logger.Error("order left partially written",
				zap.Int64("order_id", order.ID),
				zap.Int64("product_id", item.ProductID),
				zap.Error(err))
			return nil, err
		}
		if err := s.products.DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
			logger.Error("stock decrement failed after item insert",
				zap.Int64("order_id", order.ID),
				zap.Int64("product_id", item.ProductID),
				zap.Error(err))
			return nil, err
		}
	}

	s.cache.Invalidate(ctx, analyticsCacheKey)
	return s.Get(ctx, order.ID)
}

// UpdateStatus 状态集内任意切换均被接受，不维护迁移表
func (s *orderService) UpdateStatus(ctx context.Context, id int64, status string) (*model.OrderView, error) {
	if status == "" {
		return nil, apperr.Validationf("Status is required")
	}
	if !model.ValidOrderStatus(status) {
		return nil, apperr.Validationf("Invalid status")
	}
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	s.cache.Invalidate(ctx, analyticsCacheKey)
	return s.orders.GetView(ctx, id)
}

// Analytics 看板聚合；配置了 redis 时走旁路缓存
func (s *orderService) Analytics(ctx context.Context) (*model.Analytics, error) {
	var cached model.Analytics
	if s.cache.GetJSON(ctx, analyticsCacheKey, &cached) {
		return &cached, nil
	}

	totalOrders, err := s.orders.CountAll(ctx)
	if err != nil {
		return nil, err
	}
	totalRevenue, err := s.orders.CompletedRevenue(ctx)
	if err != nil {
		return nil, err
	}
	pendingOrders, err := s.orders.CountByStatus(ctx, model.OrderStatusPending)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.orders.TopProducts(ctx, 10)
	if err != nil {
		return nil, err
	}
	recentOrders, err := s.orders.RecentOrders(ctx, 10)
	if err != nil {
		return nil, err
	}

	result := &model.Analytics{
		TotalOrders:   totalOrders,
		TotalRevenue:  totalRevenue,
		PendingOrders: pendingOrders,
		TopProducts:   topProducts,
		RecentOrders:  recentOrders,
	}
	s.cache.SetJSON(ctx, analyticsCacheKey, result)
	return result, nil
}
