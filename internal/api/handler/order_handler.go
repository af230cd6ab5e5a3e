package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/pos-service/internal/service"
	"github.com/d60-Lab/pos-service/pkg/response"
)

type statusRequest struct {
	Status string `json:"status"`
}

// ListOrders 订单列表（带买家信息，按创建时间倒序）
// @Summary 订单列表
// @Tags 订单
// @Produce json
// @Success 200 {array} model.OrderView
// @Router /api/orders [get]
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.orders.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, orders)
}

// GetOrder 按 ID 查询订单及行项目
// @Summary 查询订单
// @Tags 订单
// @Param id path int true "订单ID"
// @Success 200 {object} model.OrderDetail
// @Failure 404 {object} map[string]string
// @Router /api/orders/{id} [get]
func (h *Handler) GetOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.NotFound(c, "Order not found")
		return
	}
	order, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, order)
}

// CreateOrder 下单
// @Summary 下单
// @Tags 订单
// @Accept json
// @Produce json
// @Param request body service.CreateOrderRequest true "下单请求"
// @Success 201 {object} model.OrderDetail
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/orders [post]
func (h *Handler) CreateOrder(c *gin.Context) {
	var req service.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "User ID and items array are required")
		return
	}
	order, err := h.orders.Create(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, order)
}

// UpdateOrderStatus 更新订单状态；枚举内任意切换均被接受
// @Summary 更新订单状态
// @Tags 订单
// @Accept json
// @Produce json
// @Param id path int true "订单ID"
// @Param request body statusRequest true "目标状态"
// @Success 200 {object} model.OrderView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/orders/{id}/status [patch]
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.NotFound(c, "Order not found")
		return
	}
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Status is required")
		return
	}
	order, err := h.orders.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, order)
}

// OrderAnalytics 订单看板聚合
// @Summary 订单看板
// @Tags 订单
// @Produce json
// @Success 200 {object} model.Analytics
// @Router /api/orders/analytics [get]
func (h *Handler) OrderAnalytics(c *gin.Context) {
	analytics, err := h.orders.Analytics(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, analytics)
}
