package model

import (
	"time"
)

// Product 商品模型；删除为软删除（is_active=false），行永不移除
type Product struct {
	ID            int64     `json:"id" gorm:"primaryKey"`
	Name          string    `json:"name" gorm:"type:varchar(255);not null"`
	Description   string    `json:"description" gorm:"type:text"`
	Price         float64   `json:"price" gorm:"type:decimal(10,2);not null"`
	CategoryID    *int64    `json:"category_id" gorm:"index:idx_products_category"`
	StockQuantity int       `json:"stock_quantity" gorm:"not null;default:0"`
	IsActive      bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt     time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt     time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	Category *Category `json:"-" gorm:"foreignKey:CategoryID"`
}

func (Product) TableName() string { return "products" }

// ProductView 商品 + 分类名（列表 / 详情返回结构）
type ProductView struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Price         float64   `json:"price"`
	CategoryID    *int64    `json:"category_id"`
	StockQuantity int       `json:"stock_quantity"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	CategoryName  *string   `json:"category_name"`
}
