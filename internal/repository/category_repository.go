package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/d60-Lab/pos-service/internal/model"
	"github.com/d60-Lab/pos-service/pkg/apperr"
)

// CategoryRepository 分类仓储接口
type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	Create(ctx context.Context, c *model.Category) error
	Update(ctx context.Context, id int64, name, description string) (*model.Category, error)
	// Delete 硬删除；存在引用商品时返回约束错误（400）
	Delete(ctx context.Context, id int64) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository { return &categoryRepository{db: db} }

func (r *categoryRepository) List(ctx context.Context) ([]model.Category, error) {
	categories := make([]model.Category, 0)
	err := r.db.WithContext(ctx).Order("name ASC").Find(&categories).Error
	return categories, err
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFoundf("Category not found")
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepository) Create(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepository) Update(ctx context.Context, id int64, name, description string) (*model.Category, error) {
	res := r.db.WithContext(ctx).Model(&model.Category{}).Where("id = ?", id).
		Updates(map[string]any{"name": name, "description": description})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFoundf("Category not found")
	}
	return r.GetByID(ctx, id)
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Product{}).
		Where("category_id = ?", id).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return apperr.Constraintf("Cannot delete category with associated products")
	}
	res := r.db.WithContext(ctx).Delete(&model.Category{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFoundf("Category not found")
	}
	return nil
}
