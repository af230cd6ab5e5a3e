// Package database 负责打开存储、建表与种子数据。
// 默认 sqlite 单文件库；driver=postgres 时切换到 postgres。
package database

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/d60-Lab/pos-service/config"
	"github.com/d60-Lab/pos-service/internal/model"
	"github.com/d60-Lab/pos-service/pkg/logger"
)

// InitDB 打开数据库并完成幂等建表；TranslateError 开启后，
// 唯一键 / 外键冲突以 gorm.ErrDuplicatedKey / ErrForeignKeyViolated 形式返回。
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Database.Driver {
	case "postgres":
		dialector = postgres.Open(cfg.Database.DSN)
	default:
		path := cfg.Database.Path
		if dir := filepath.Dir(path); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create database dir: %w", err)
			}
		}
		dialector = sqlite.Open(path + "?_foreign_keys=on")
	}

	gcfg := &gorm.Config{TranslateError: true}
	if !cfg.IsDev() {
		gcfg.Logger = gormlogger.Default.LogMode(gormlogger.Error)
	}
	db, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, err
	}
	logger.Info("database ready",
		zap.String("driver", cfg.Database.Driver),
		zap.String("path", cfg.Database.Path))
	return db, nil
}

// Migrate 幂等建表（五张表 + 索引 + 约束）
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.Category{},
		&model.Product{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

// Seed 开发模式下写入演示数据；主键冲突时忽略，可重复执行
func Seed(db *gorm.DB) error {
	categoryID1 := int64(1)
	rows := []any{
		&[]model.Category{
			{ID: 1, Name: "Electronics", Description: "Electronic devices and accessories"},
			{ID: 2, Name: "Food & Beverage", Description: "Food items and drinks"},
		},
		&[]model.User{
			{ID: 1, Username: "demo_user", Email: "demo@example.com"},
		},
		&[]model.Product{
			{ID: 1, Name: "Sample Product", Description: "A demo product for testing",
				Price: 29.99, CategoryID: &categoryID1, StockQuantity: 100, IsActive: true},
		},
	}
	for _, r := range rows {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(r).Error; err != nil {
			return fmt.Errorf("seed data: %w", err)
		}
	}
	return nil
}

// Close 关闭底层连接
func Close(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
