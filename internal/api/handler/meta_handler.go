package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Health 健康检查
// @Summary 健康检查
// @Tags 元信息
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// APIIndex 端点索引
// @Summary 端点索引
// @Tags 元信息
// @Produce json
// @Success 200 {object} map[string]any
// @Router /api [get]
func (h *Handler) APIIndex(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Sample POS API Server",
		"version": "1.0.0",
		"endpoints": gin.H{
			"users":      "/api/users",
			"products":   "/api/products",
			"categories": "/api/categories",
			"orders":     "/api/orders",
		},
	})
}
