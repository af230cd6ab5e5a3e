package model

import (
	"time"
)

// OrderItem 订单行项目；随订单一次性写入，只随订单级联删除。
// total_price = unit_price × quantity，下单时冻结。
type OrderItem struct {
	ID         int64     `json:"id" gorm:"primaryKey"`
	OrderID    int64     `json:"order_id" gorm:"index:idx_order_items_order;not null"`
	ProductID  int64     `json:"product_id" gorm:"not null"`
	Quantity   int       `json:"quantity" gorm:"not null"`
	UnitPrice  float64   `json:"unit_price" gorm:"type:decimal(10,2);not null"`
	TotalPrice float64   `json:"total_price" gorm:"type:decimal(10,2);not null"`
	CreatedAt  time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	Product *Product `json:"-" gorm:"foreignKey:ProductID"`
}

func (OrderItem) TableName() string { return "order_items" }

// OrderItemView 行项目 + 商品名
type OrderItemView struct {
	ID          int64     `json:"id"`
	OrderID     int64     `json:"order_id"`
	ProductID   int64     `json:"product_id"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	TotalPrice  float64   `json:"total_price"`
	CreatedAt   time.Time `json:"created_at"`
	ProductName *string   `json:"product_name"`
}
