package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/pos-service/internal/model"
	"github.com/d60-Lab/pos-service/pkg/apperr"
)

// ProductRepository 商品仓储接口。
// 列表只含在售商品；按 ID 查询不过滤 is_active，软删除后的行仍可直接取到。
type ProductRepository interface {
	ListActive(ctx context.Context) ([]model.ProductView, error)
	GetView(ctx context.Context, id int64) (*model.ProductView, error)
	// GetActive 下单路径使用：只返回在售商品
	GetActive(ctx context.Context, id int64) (*model.Product, error)
	Create(ctx context.Context, p *model.Product) error
	Update(ctx context.Context, id int64, fields map[string]any) (*model.ProductView, error)
	// SoftDelete 仅翻转 is_active，行保留
	SoftDelete(ctx context.Context, id int64) error
	// SetStock 绝对设置库存（非增量）
	SetStock(ctx context.Context, id int64, quantity int) error
	// DecrementStock 下单扣减库存
	DecrementStock(ctx context.Context, id int64, quantity int) error
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository { return &productRepository{db: db} }

const productSelect = "p.id, p.name, p.description, p.price, p.category_id, " +
	"p.stock_quantity, p.is_active, p.created_at, p.updated_at, c.name AS category_name"

func (r *productRepository) viewQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Table("products p").
		Select(productSelect).
		Joins("LEFT JOIN categories c ON p.category_id = c.id")
}

func (r *productRepository) ListActive(ctx context.Context) ([]model.ProductView, error) {
	views := make([]model.ProductView, 0)
	err := r.viewQuery(ctx).
		Where("p.is_active = ?", true).
		Order("p.created_at DESC").
		Scan(&views).Error
	return views, err
}

func (r *productRepository) GetView(ctx context.Context, id int64) (*model.ProductView, error) {
	var v model.ProductView
	res := r.viewQuery(ctx).Where("p.id = ?", id).Limit(1).Scan(&v)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFoundf("Product not found")
	}
	return &v, nil
}

func (r *productRepository) GetActive(ctx context.Context, id int64) (*model.Product, error) {
	var p model.Product
	res := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("id = ? AND is_active = ?", id, true).
		Limit(1).Scan(&p)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFoundf("Product with ID %d not found", id)
	}
	return &p, nil
}

func (r *productRepository) Create(ctx context.Context, p *model.Product) error {
	err := r.db.WithContext(ctx).Create(p).Error
	return classify(err, "Product already exists")
}

func (r *productRepository) Update(ctx context.Context, id int64, fields map[string]any) (*model.ProductView, error) {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFoundf("Product not found")
	}
	return r.GetView(ctx, id)
}

func (r *productRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("Product not found")
	}
	return nil
}

func (r *productRepository) SetStock(ctx context.Context, id int64, quantity int) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).
		Update("stock_quantity", quantity)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("Product not found")
	}
	return nil
}

func (r *productRepository) DecrementStock(ctx context.Context, id int64, quantity int) error {
	return r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("stock_quantity - ?", quantity)).Error
}
