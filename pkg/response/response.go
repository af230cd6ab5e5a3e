// Package response 统一 HTTP 响应输出。
// 线上格式与桌面端约定一致：成功直接返回对象 / 数组，
// 失败返回 {"error": "..."}，删除类操作返回 {"message": "..."}。
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/pos-service/pkg/apperr"
)

// Success 200 + 原始负载
func Success(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

// Created 201 + 原始负载
func Created(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

// Message 200 + {"message": ...}
func Message(c *gin.Context, msg string) {
	c.JSON(http.StatusOK, gin.H{"message": msg})
}

func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}

func NotFound(c *gin.Context, msg string) {
	c.JSON(http.StatusNotFound, gin.H{"error": msg})
}

func Conflict(c *gin.Context, msg string) {
	c.JSON(http.StatusConflict, gin.H{"error": msg})
}

// InternalError 500；详细信息仅在 debug 模式下暴露
func InternalError(c *gin.Context, err error) {
	msg := "Something went wrong"
	if gin.IsDebugging() && err != nil {
		msg = err.Error()
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "Internal Server Error",
		"message": msg,
	})
}

// Error 按 apperr 类别映射状态码
func Error(c *gin.Context, err error) {
	switch apperr.KindOf(err) {
	case apperr.KindValidation, apperr.KindConstraint:
		BadRequest(c, apperr.Message(err))
	case apperr.KindNotFound:
		NotFound(c, apperr.Message(err))
	case apperr.KindConflict:
		Conflict(c, apperr.Message(err))
	default:
		InternalError(c, err)
	}
}
