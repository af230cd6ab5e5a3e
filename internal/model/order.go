package model

import (
	"time"
)

// Order 订单模型
type Order struct {
	ID          int64     `json:"id" gorm:"primaryKey"`
	UserID      int64     `json:"user_id" gorm:"index:idx_orders_user;not null"`
	TotalAmount float64   `json:"total_amount" gorm:"type:decimal(10,2);not null"`
	Status      string    `json:"status" gorm:"type:varchar(50);not null;default:pending"`
	CreatedAt   time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`

	User  *User       `json:"-" gorm:"foreignKey:UserID"`
	Items []OrderItem `json:"-" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }

// OrderStatus 订单状态枚举；状态迁移不受限制，任意值之间可互相切换
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// ValidOrderStatus 校验状态是否在枚举内
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderView 订单 + 买家信息
type OrderView struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	TotalAmount float64   `json:"total_amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Username    *string   `json:"username"`
	Email       *string   `json:"email"`
}

// OrderDetail 订单详情（含行项目）
type OrderDetail struct {
	OrderView
	Items []OrderItemView `json:"items"`
}
