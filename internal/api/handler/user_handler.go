package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/pos-service/internal/model"
	"github.com/d60-Lab/pos-service/pkg/response"
)

type userRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// ListUsers 用户列表
// @Summary 用户列表
// @Tags 用户
// @Produce json
// @Success 200 {array} model.User
// @Router /api/users [get]
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

// GetUser 按 ID 查询用户
// @Summary 查询用户
// @Tags 用户
// @Param id path int true "用户ID"
// @Success 200 {object} model.User
// @Failure 404 {object} map[string]string
// @Router /api/users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.NotFound(c, "User not found")
		return
	}
	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// CreateUser 创建用户；username / email 唯一冲突返回 409
// @Summary 创建用户
// @Tags 用户
// @Accept json
// @Produce json
// @Param request body userRequest true "用户信息"
// @Success 201 {object} model.User
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /api/users [post]
func (h *Handler) CreateUser(c *gin.Context) {
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Username and email are required")
		return
	}
	if req.Username == "" || req.Email == "" {
		response.BadRequest(c, "Username and email are required")
		return
	}
	user := &model.User{Username: req.Username, Email: req.Email}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		response.Error(c, err)
		return
	}
	created, err := h.users.GetByID(c.Request.Context(), user.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, created)
}

// UpdateUser 更新用户
// @Summary 更新用户
// @Tags 用户
// @Param id path int true "用户ID"
// @Param request body userRequest true "用户信息"
// @Success 200 {object} model.User
// @Failure 404 {object} map[string]string
// @Router /api/users/{id} [put]
func (h *Handler) UpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.NotFound(c, "User not found")
		return
	}
	var req userRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	user, err := h.users.Update(c.Request.Context(), id, req.Username, req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

// DeleteUser 删除用户（硬删除）
// @Summary 删除用户
// @Tags 用户
// @Param id path int true "用户ID"
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/users/{id} [delete]
func (h *Handler) DeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		response.NotFound(c, "User not found")
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "User deleted successfully")
}
