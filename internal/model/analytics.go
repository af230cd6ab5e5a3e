package model

import (
	"time"
)

// TopProduct 已完成订单中的商品销量聚合
type TopProduct struct {
	Name      string  `json:"name"`
	TotalSold int     `json:"total_sold"`
	Revenue   float64 `json:"revenue"`
}

// RecentOrder 最近订单（不区分状态）
type RecentOrder struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"user_id"`
	TotalAmount float64   `json:"total_amount"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Username    *string   `json:"username"`
}

// Analytics 订单看板聚合结果
type Analytics struct {
	TotalOrders   int64         `json:"totalOrders"`
	TotalRevenue  float64       `json:"totalRevenue"`
	PendingOrders int64         `json:"pendingOrders"`
	TopProducts   []TopProduct  `json:"topProducts"`
	RecentOrders  []RecentOrder `json:"recentOrders"`
}
