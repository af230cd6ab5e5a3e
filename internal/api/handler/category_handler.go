package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/pos-service/internal/model"
	"github.com/d60-Lab/pos-service/pkg/response"
)

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ListCategories 分类列表（按名称排序）
// @Summary 分类列表
// @Tags 分类
// @Produce json
// @Success 200 {array} model.Category
// @Router /api/categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.categories.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, categories)
}

// GetCategory 按 ID 查询分类
// @Summary 查询分类
// @Tags 分类
// @Param id path int true "分类ID"
// @Success 200 {object} model.Category
// @Failure 404 {object} map[string]string
// @Router /api/categories/{id} [get]
func (h *Handler) GetCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.NotFound(c, "Category not found")
		return
	}
	category, err := h.categories.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, category)
}

// CreateCategory 创建分类
// @Summary 创建分类
// @Tags 分类
// @Accept json
// @Produce json
// @Param request body categoryRequest true "分类信息"
// @Success 201 {object} model.Category
// @Failure 400 {object} map[string]string
// @Router /api/categories [post]
func (h *Handler) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Name is required")
		return
	}
	if req.Name == "" {
		response.BadRequest(c, "Name is required")
		return
	}
	category := &model.Category{Name: req.Name, Description: req.Description}
	if err := h.categories.Create(c.Request.Context(), category); err != nil {
		response.Error(c, err)
		return
	}
	created, err := h.categories.GetByID(c.Request.Context(), category.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// UpdateCategory 更新分类
// @Summary 更新分类
// @Tags 分类
// @Param id path int true "分类ID"
// @Param request body categoryRequest true "分类信息"
// @Success 200 {object} model.Category
// @Failure 404 {object} map[string]string
// @Router /api/categories/{id} [put]
func (h *Handler) UpdateCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.NotFound(c, "Category not found")
		return
	}
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	category, err := h.categories.Update(c.Request.Context(), id, req.Name, req.Description)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, category)
}

// DeleteCategory 删除分类；仍被商品引用时返回 400
// @Summary 删除分类
// @Tags 分类
// @Param id path int true "分类ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/categories/{id} [delete]
func (h *Handler) DeleteCategory(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.NotFound(c, "Category not found")
		return
	}
	if err := h.categories.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Category deleted successfully")
}
