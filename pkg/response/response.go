package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the unified JSON envelope for all API endpoints.
type Response struct {
	Success bool        `json:"success"`
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success writes a 200 envelope.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Code:    CodeSuccess,
		Message: "success",
		Data:    data,
	})
}

// Created writes a 201 envelope for newly persisted resources.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Code:    CodeSuccess,
		Message: "created",
		Data:    data,
	})
}

// Error writes an error envelope with the given HTTP status and business code.
func Error(c *gin.Context, httpCode int, errCode int, msg string) {
	c.JSON(httpCode, Response{
		Success: false,
		Code:    errCode,
		Message: msg,
		Error:   msg,
	})
}

// Fail writes a business failure (HTTP 200, non-zero code).
func Fail(c *gin.Context, errCode int, msg string) {
	c.JSON(http.StatusOK, Response{
		Success: false,
		Code:    errCode,
		Message: msg,
		Error:   msg,
	})
}
