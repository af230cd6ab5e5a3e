package model

import (
	"time"
)

// User 用户模型（username / email 全局唯一）
type User struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"type:varchar(255);uniqueIndex:idx_users_username;not null"`
	Email     string    `json:"email" gorm:"type:varchar(255);uniqueIndex:idx_users_email;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (User) TableName() string { return "users" }
