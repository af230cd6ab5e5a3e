// Package config 基于 viper 的配置加载：默认值 < config.yaml < POS_ 前缀环境变量。
package config

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	Port           int      `mapstructure:"port" validate:"gt=0,lte=65535"`
	Mode           string   `mapstructure:"mode" validate:"oneof=debug release test"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"oneof=sqlite postgres"`
	// Path 单文件库路径（sqlite）
	Path string `mapstructure:"path"`
	// DSN postgres 连接串（driver=postgres 时生效）
	DSN string `mapstructure:"dsn"`
}

type RedisConfig struct {
	// Addr 为空时禁用缓存
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

type SentryConfig struct {
	DSN string `mapstructure:"dsn"`
}

type TracingConfig struct {
	// Endpoint OTLP/HTTP collector 地址（host:port），为空时禁用
	Endpoint string `mapstructure:"endpoint"`
}

type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled"`
	RPS     float64 `mapstructure:"rps" validate:"gte=0"`
	Burst   int     `mapstructure:"burst" validate:"gte=0"`
}

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Sentry    SentryConfig    `mapstructure:"sentry"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// DefaultAllowedOrigins 未配置 CORS 白名单时的默认来源
var DefaultAllowedOrigins = []string{
	"http://localhost:8081",
	"http://localhost:19006",
}

// IsDev debug 模式等同源工程的 development 环境：暴露错误详情、写入种子数据
func (c *Config) IsDev() bool { return c.Server.Mode == "debug" }

// Load 读取配置并校验
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", 3001)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.allowed_origins", DefaultAllowedOrigins)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "data/pos.sqlite")
	v.SetDefault("database.dsn", "")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.ttl", 30*time.Second)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("tracing.endpoint", "")
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.rps", 50)
	v.SetDefault("rate_limit.burst", 100)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	if err := v.ReadInConfig(); err != nil {
		// 配置文件可选，读不到就走默认值 + 环境变量
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	v.SetEnvPrefix("POS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
