// Package handler HTTP 入口层：绑定请求、调用仓储/服务、按约定格式输出。
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/pos-service/internal/repository"
	"github.com/d60-Lab/pos-service/internal/service"
)

type Handler struct {
	users      repository.UserRepository
	categories repository.CategoryRepository
	products   repository.ProductRepository
	orders     service.OrderService
}

func New(
	users repository.UserRepository,
	categories repository.CategoryRepository,
	products repository.ProductRepository,
	orders service.OrderService,
) *Handler {
	return &Handler{users: users, categories: categories, products: products, orders: orders}
}

// pathID 解析路径参数 :id；非数字等同于查无此行
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
