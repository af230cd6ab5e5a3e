package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/pos-service/internal/model"
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

// setupFKDB 按生产 DSN 打开：外键约束开启
func setupFKDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return db
}

// 唯一键冲突必须以类型化错误上抛，而不是靠匹配驱动的错误文本
func TestUserCreateDuplicateIsTypedConflict(t *testing.T) {
	db := setupDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.User{Username: "bob", Email: "bob@example.com"}))

	err := repo.Create(ctx, &model.User{Username: "bob", Email: "bob2@example.com"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
	assert.Equal(t, "Username or email already exists", apperr.Message(err))

	err = repo.Create(ctx, &model.User{Username: "bob2", Email: "bob@example.com"})
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestCategoryDeleteBlockedByProducts(t *testing.T) {
	db := setupDB(t)
	categories := NewCategoryRepository(db)
	ctx := context.Background()

	require.NoError(t, categories.Create(ctx, &model.Category{ID: 1, Name: "Drinks"}))
	catID := int64(1)
	require.NoError(t, db.Create(&model.Product{
		Name: "Cola", Price: 1.50, CategoryID: &catID, IsActive: true,
	}).Error)

	err := categories.Delete(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConstraint, apperr.KindOf(err))

	var c model.Category
	require.NoError(t, db.First(&c, 1).Error)

	require.NoError(t, db.Where("category_id = ?", 1).Delete(&model.Product{}).Error)
	require.NoError(t, categories.Delete(ctx, 1))
	assert.ErrorIs(t, db.First(&c, 1).Error, gorm.ErrRecordNotFound)
}

func TestProductStockOperations(t *testing.T) {
	db := setupDB(t)
	products := NewProductRepository(db)
	ctx := context.Background()

	require.NoError(t, products.Create(ctx, &model.Product{
		ID: 1, Name: "Widget", Price: 9.99, StockQuantity: 10, IsActive: true,
	}))

	require.NoError(t, products.SetStock(ctx, 1, 42))
	p, err := products.GetActive(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 42, p.StockQuantity)

	require.NoError(t, products.DecrementStock(ctx, 1, 5))
	p, err = products.GetActive(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 37, p.StockQuantity)

	err = products.SetStock(ctx, 999, 1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestUserDeleteBlockedByOrders(t *testing.T) {
	db := setupFKDB(t)
	users := NewUserRepository(db)
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, &model.User{ID: 1, Username: "buyer", Email: "buyer@example.com"}))
	require.NoError(t, users.Create(ctx, &model.User{ID: 2, Username: "idle", Email: "idle@example.com"}))
	require.NoError(t, db.Create(&model.Order{
		UserID: 1, TotalAmount: 9.99, Status: model.OrderStatusPending,
	}).Error)

	err := users.Delete(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConstraint, apperr.KindOf(err))
	assert.Equal(t, "Cannot delete user with existing orders", apperr.Message(err))

	var u model.User
	require.NoError(t, db.First(&u, 1).Error)

	require.NoError(t, users.Delete(ctx, 2))
	assert.ErrorIs(t, db.First(&u, 2).Error, gorm.ErrRecordNotFound)
}

func TestProductSoftDeleteKeepsRow(t *testing.T) {
	db := setupDB(t)
	products := NewProductRepository(db)
	ctx := context.Background()

	require.NoError(t, products.Create(ctx, &model.Product{
		ID: 1, Name: "Widget", Price: 9.99, StockQuantity: 10, IsActive: true,
	}))
	require.NoError(t, products.SoftDelete(ctx, 1))

	list, err := products.ListActive(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	view, err := products.GetView(ctx, 1)
	require.NoError(t, err)
	assert.False(t, view.IsActive)

	_, err = products.GetActive(ctx, 1)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}
