// Package router 路由表与中间件装配。
package router

import (
	"net/http"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/pos-service/config"
	"github.com/d60-Lab/pos-service/internal/api/handler"
	"github.com/d60-Lab/pos-service/internal/middleware"
	"github.com/d60-Lab/pos-service/pkg/response"
)

// Options 按配置启用的可选中间件
type Options struct {
	Sentry  bool
	Tracing bool
}

// New 组装 gin 引擎：恢复、日志、压缩、CORS、可选 sentry/otel/限流，
// 再挂全部业务路由与 404 兜底。
func New(cfg *config.Config, h *handler.Handler, opts Options) *gin.Engine {
	r := gin.New()

	r.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		response.InternalError(c, recoveredError(recovered))
	}))
	r.Use(middleware.RequestLogger())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	// cors.New 在来源列表为空时 panic，回退到默认白名单
	origins := cfg.Server.AllowedOrigins
	if len(origins) == 0 {
		origins = config.DefaultAllowedOrigins
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
	}))
	if opts.Sentry {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if opts.Tracing {
		r.Use(otelgin.Middleware("pos-service"))
	}
	if cfg.RateLimit.Enabled {
		r.Use(middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}

	r.GET("/health", h.Health)

	api := r.Group("/api")
	{
		api.GET("", h.APIIndex)

		users := api.Group("/users")
		{
			users.GET("", h.ListUsers)
			users.GET("/:id", h.GetUser)
			users.POST("", h.CreateUser)
			users.PUT("/:id", h.UpdateUser)
			users.DELETE("/:id", h.DeleteUser)
		}

		categories := api.Group("/categories")
		{
			categories.GET("", h.ListCategories)
			categories.GET("/:id", h.GetCategory)
			categories.POST("", h.CreateCategory)
			categories.PUT("/:id", h.UpdateCategory)
			categories.DELETE("/:id", h.DeleteCategory)
		}

		products := api.Group("/products")
		{
			products.GET("", h.ListProducts)
			products.GET("/:id", h.GetProduct)
			products.POST("", h.CreateProduct)
			products.PUT("/:id", h.UpdateProduct)
			products.DELETE("/:id", h.DeleteProduct)
			products.PATCH("/:id/stock", h.UpdateStock)
		}

		orders := api.Group("/orders")
		{
			orders.GET("", h.ListOrders)
			// /analytics 必须先于 /:id 注册
			orders.GET("/analytics", h.OrderAnalytics)
			orders.GET("/:id", h.GetOrder)
			orders.POST("", h.CreateOrder)
			orders.PATCH("/:id/status", h.UpdateOrderStatus)
		}
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Route not found"})
	})

	return r
}

func recoveredError(recovered any) error {
	if err, ok := recovered.(error); ok {
		return err
	}
	return &panicError{value: recovered}
}

type panicError struct {
	value any
}

func (e *panicError) Error() string {
	if s, ok := e.value.(string); ok {
		return s
	}
	return "panic in handler"
}
