package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/d60-Lab/pos-service/config"
	"github.com/d60-Lab/pos-service/internal/api/handler"
	"github.com/d60-Lab/pos-service/internal/api/router"
	"github.com/d60-Lab/pos-service/internal/cache"
	"github.com/d60-Lab/pos-service/internal/repository"
	"github.com/d60-Lab/pos-service/internal/service"
	"github.com/d60-Lab/pos-service/pkg/database"
	"github.com/d60-Lab/pos-service/pkg/logger"
	"github.com/d60-Lab/pos-service/pkg/tracing"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	gin.SetMode(cfg.Server.Mode)
	if err := logger.Init(cfg.Server.Mode); err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	opts := router.Options{}
	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN}); err != nil {
			logger.Fatal("init sentry", zap.Error(err))
		}
		defer sentry.Flush(2 * time.Second)
		opts.Sentry = true
	}

	shutdownTracing, err := tracing.Init(context.Background(), "pos-service", cfg.Tracing.Endpoint)
	if err != nil {
		logger.Fatal("init tracing", zap.Error(err))
	}
	opts.Tracing = cfg.Tracing.Endpoint != ""

	// 数据库打不开直接终止进程
	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Fatal("init database", zap.Error(err))
	}
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			logger.Fatal("seed database", zap.Error(err))
		}
	}

	analyticsCache := cache.New(cfg.Redis)

	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	orderSvc := service.NewOrderService(orderRepo, productRepo, analyticsCache)

	h := handler.New(userRepo, categoryRepo, productRepo, orderSvc)
	engine := router.New(cfg, h, opts)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: engine,
	}

	go func() {
		logger.Info("server listening", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			// 端口占用等监听失败同样终止进程
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", zap.Error(err))
	}
	if err := analyticsCache.Close(); err != nil {
		logger.Error("close cache", zap.Error(err))
	}
	if err := database.Close(db); err != nil {
		logger.Error("close database", zap.Error(err))
	}
	if err := shutdownTracing(context.Background()); err != nil {
		logger.Error("shutdown tracing", zap.Error(err))
	}
	logger.Info("server stopped")
}
