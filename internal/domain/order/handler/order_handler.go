package handler

import (
	"errors"
	"net/http"

	"lms_commerce/internal/domain/order/repository"
	"lms_commerce/internal/domain/order/service"
	"lms_commerce/internal/pkg/middleware"
	"lms_commerce/pkg/response"
	"lms_commerce/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type OrderHandler struct {
	service service.OrderService
}

func NewOrderHandler(s service.OrderService) *OrderHandler {
	return &OrderHandler{service: s}
}

// ListMyOrders returns the caller's orders, optionally filtered.
func (h *OrderHandler) ListMyOrders(c *gin.Context) {
	var p utils.Pagination
	_ = c.ShouldBindQuery(&p)
	_, limit := p.GetPageOffset()

	filter := repository.OrderFilter{
		UserID: middleware.GetUserID(c),
		Type:   c.Query("type"),
		Status: c.Query("status"),
	}

	orders, total, err := h.service.ListOrders(filter, p.Page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, utils.PageResult{List: orders, Total: total, Page: p.Page, Limit: limit})
}

// GetMyOrder returns one of the caller's orders by order number.
func (h *OrderHandler) GetMyOrder(c *gin.Context) {
	order, err := h.service.GetOrderByNumber(c.Param("orderNumber"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrOrderNotFound, "Order not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	if order.UserID != middleware.GetUserID(c) {
		response.Error(c, http.StatusNotFound, response.ErrOrderNotFound, "Order not found")
		return
	}

	response.Success(c, order)
}

// ListOrders returns any user's orders (admin).
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var p utils.Pagination
	_ = c.ShouldBindQuery(&p)
	_, limit := p.GetPageOffset()

	filter := repository.OrderFilter{
		UserID: c.Query("userId"),
		Type:   c.Query("type"),
		Status: c.Query("status"),
	}

	orders, total, err := h.service.ListOrders(filter, p.Page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, utils.PageResult{List: orders, Total: total, Page: p.Page, Limit: limit})
}
