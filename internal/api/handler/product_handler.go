package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/pos-service/internal/model"
	"github.com/d60-Lab/pos-service/pkg/response"
)

type createProductRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         *float64 `json:"price"`
	CategoryID    *int64   `json:"category_id"`
	StockQuantity int      `json:"stock_quantity"`
}

type updateProductRequest struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         float64  `json:"price"`
	CategoryID    *int64   `json:"category_id"`
	StockQuantity int      `json:"stock_quantity"`
	IsActive      bool     `json:"is_active"`
}

type stockRequest struct {
	Quantity *int `json:"quantity"`
}

// ListProducts 在售商品列表（带分类名，按创建时间倒序）
// @Summary 在售商品列表
// @Tags 商品
// @Produce json
// @Success 200 {array} model.ProductView
// @Router /api/products [get]
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.products.ListActive(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, products)
}

// GetProduct 按 ID 查询商品；软删除的行仍可取到
// @Summary 查询商品
// @Tags 商品
// @Param id path int true "商品ID"
// @Success 200 {object} model.ProductView
// @Failure 404 {object} map[string]string
// @Router /api/products/{id} [get]
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.NotFound(c, "Product not found")
		return
	}
	product, err := h.products.GetView(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, product)
}

// CreateProduct 创建商品
// @Summary 创建商品
// @Tags 商品
// @Accept json
// @Produce json
// @Param request body createProductRequest true "商品信息"
// @Success 201 {object} model.ProductView
// @Failure 400 {object} map[string]string
// @Router /api/products [post]
func (h *Handler) CreateProduct(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Name and price are required")
		return
	}
	if req.Name == "" || req.Price == nil {
		response.BadRequest(c, "Name and price are required")
		return
	}
	product := &model.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         *req.Price,
		CategoryID:    req.CategoryID,
		StockQuantity: req.StockQuantity,
		IsActive:      true,
	}
	if err := h.products.Create(c.Request.Context(), product); err != nil {
		response.Error(c, err)
		return
	}
	created, err := h.products.GetView(c.Request.Context(), product.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// UpdateProduct 全量更新商品字段
// @Summary 更新商品
// @Tags 商品
// @Param id path int true "商品ID"
// @Param request body updateProductRequest true "商品信息"
// @Success 200 {object} model.ProductView
// @Failure 404 {object} map[string]string
// @Router /api/products/{id} [put]
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.NotFound(c, "Product not found")
		return
	}
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	product, err := h.products.Update(c.Request.Context(), id, map[string]any{
		"name":           req.Name,
		"description":    req.Description,
		"price":          req.Price,
		"category_id":    req.CategoryID,
		"stock_quantity": req.StockQuantity,
		"is_active":      req.IsActive,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, product)
}

// DeleteProduct 软删除：翻转 is_active，行保留
// @Summary 删除商品（软删除）
// @Tags 商品
// @Param id path int true "商品ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/products/{id} [delete]
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.NotFound(c, "Product not found")
		return
	}
	if err := h.products.SoftDelete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Product deleted successfully")
}

// UpdateStock 绝对设置库存（非增量）
// @Summary 设置库存
// @Tags 商品
// @Accept json
// @Produce json
// @Param id path int true "商品ID"
// @Param request body stockRequest true "库存数量"
// @Success 200 {object} model.ProductView
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/products/{id}/stock [patch]
func (h *Handler) UpdateStock(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.NotFound(c, "Product not found")
		return
	}
	var req stockRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		response.BadRequest(c, "Quantity must be a number")
		return
	}
	if err := h.products.SetStock(c.Request.Context(), id, *req.Quantity); err != nil {
		response.Error(c, err)
		return
	}
	product, err := h.products.GetView(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, product)
}
