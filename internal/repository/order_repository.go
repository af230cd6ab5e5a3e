package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/pos-service/internal/model"
	"github.com/d60-Lab/pos-service/pkg/apperr"
)

// OrderRepository 订单仓储接口：订单头、行项目及看板聚合查询。
type OrderRepository interface {
	List(ctx context.Context) ([]model.OrderView, error)
	GetView(ctx context.Context, id int64) (*model.OrderView, error)
	ListItems(ctx context.Context, orderID int64) ([]model.OrderItemView, error)
	Create(ctx context.Context, o *model.Order) error
	CreateItem(ctx context.Context, item *model.OrderItem) error
	UpdateStatus(ctx context.Context, id int64, status string) error

	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status string) (int64, error)
	// CompletedRevenue 只统计已完成订单的金额
	CompletedRevenue(ctx context.Context) (float64, error)
	TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error)
	RecentOrders(ctx context.Context, limit int) ([]model.RecentOrder, error)
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository { return &orderRepository{db: db} }

const orderSelect = "o.id, o.user_id, o.total_amount, o.status, o.created_at, o.updated_at, " +
	"u.username, u.email"

func (r *orderRepository) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("orders o").
		Select(orderSelect).
		Joins("LEFT JOIN users u ON o.user_id = u.id")
}

func (r *orderRepository) List(ctx context.Context) ([]model.OrderView, error) {
	views := make([]model.OrderView, 0)
	err := r.viewQuery(ctx).Order("o.created_at DESC").Scan(&views).Error
	return views, err
}

func (r *orderRepository) GetView(ctx context.Context, id int64) (*model.OrderView, error) {
	var v model.OrderView
	res := r.viewQuery(ctx).Where("o.id = ?", id).Limit(1).Scan(&v)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFoundf("Order not found")
	}
	return &v, nil
}

func (r *orderRepository) ListItems(ctx context.Context, orderID int64) ([]model.OrderItemView, error) {
	items := make([]model.OrderItemView, 0)
	err := r.db.WithContext(ctx).Table("order_items oi").
		Select("oi.id, oi.order_id, oi.product_id, oi.quantity, oi.unit_price, oi.total_price, "+
			"oi.created_at, p.name AS product_name").
		Joins("LEFT JOIN products p ON oi.product_id = p.id").
		Where("oi.order_id = ?", orderID).
		Scan(&items).Error
	return items, err
}

func (r *orderRepository) Create(ctx context.Context, o *model.Order) error {
	err := r.db.WithContext(ctx).Create(o).Error
	return classify(err, "Order already exists")
}

func (r *orderRepository) CreateItem(ctx context.Context, item *model.OrderItem) error {
	err := r.db.WithContext(ctx).Create(item).Error
	return classify(err, "Order item already exists")
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	res := r.db.WithContext(ctx).Model(&model.Order{}).Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("Order not found")
	}
	return nil
}

func (r *orderRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).Count(&count).Error
	return count, err
}

func (r *orderRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status = ?", status).Count(&count).Error
	return count, err
}

func (r *orderRepository) CompletedRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&model.Order{}).
		Where("status = ?", model.OrderStatusCompleted).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&total).Error
	return total, err
}

// TopProducts 已完成订单按销量取前 N；并列名次顺序由存储默认排序决定
func (r *orderRepository) TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error) {
	products := make([]model.TopProduct, 0)
	err := r.db.WithContext(ctx).Table("order_items oi").
		Select("p.name, SUM(oi.quantity) AS total_sold, SUM(oi.total_price) AS revenue").
		Joins("JOIN products p ON oi.product_id = p.id").
		Joins("JOIN orders o ON oi.order_id = o.id").
		Where("o.status = ?", model.OrderStatusCompleted).
		Group("p.id, p.name").
		Order("total_sold DESC").
		Limit(limit).
		Scan(&products).Error
	return products, err
}

func (r *orderRepository) RecentOrders(ctx context.Context, limit int) ([]model.RecentOrder, error) {
	orders := make([]model.RecentOrder, 0)
	err := r.db.WithContext(ctx).Table("orders o").
		Select("o.id, o.user_id, o.total_amount, o.status, o.created_at, o.updated_at, u.username").
		Joins("LEFT JOIN users u ON o.user_id = u.id").
		Order("o.created_at DESC").
		Limit(limit).
		Scan(&orders).Error
	return orders, err
}
