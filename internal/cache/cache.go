// Package cache 旁路缓存（cache-aside）：目前只服务订单看板聚合。
// 未配置 redis 地址时整个缓存退化为 no-op。
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/pos-service/config"
	"github.com/d60-Lab/pos-service/pkg/logger"
)

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New 构建缓存；addr 为空时返回 nil，所有方法对 nil 接收者安全
func New(cfg config.RedisConfig) *Cache {
	if cfg.Addr == "" {
		return nil
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &Cache{client: client, ttl: ttl}
}

// GetJSON 命中时反序列化到 dest 并返回 true；未命中或缓存不可用返回 false
func (c *Cache) GetJSON(ctx context.Context, key string, dest any) bool {
	if c == nil || c.client == nil {
		return false
	}
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Warn("cache payload corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

// SetJSON 写入缓存；失败只记日志，不影响主流程
func (c *Cache) SetJSON(ctx context.Context, key string, v any) {
	if c == nil || c.client == nil {
		return
	}
	raw, err := json.Marshal(v)
	if err != nil {
		logger.Warn("cache marshal failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

// Invalidate 删除指定键
func (c *Cache) Invalidate(ctx context.Context, keys ...string) {
	if c == nil || c.client == nil || len(keys) == 0 {
		return
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		logger.Warn("cache invalidate failed", zap.Strings("keys", keys), zap.Error(err))
	}
}

// Close 关闭底层连接
func (c *Cache) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}
