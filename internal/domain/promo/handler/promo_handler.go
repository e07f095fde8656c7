package handler

import (
	"errors"
	"net/http"
	"time"

	"lms_commerce/internal/domain/promo/service"
	"lms_commerce/internal/pkg/middleware"
	"lms_commerce/pkg/response"

	"github.com/gin-gonic/gin"
)

type PromoHandler struct {
	service service.PromoService
}

func NewPromoHandler(s service.PromoService) *PromoHandler {
	return &PromoHandler{service: s}
}

type CreateDiscountInput struct {
	Code       string    `json:"code" binding:"required"`
	Name       string    `json:"name" binding:"required"`
	PercentOff int       `json:"percentOff" binding:"required,min=1,max=100"`
	Total      int       `json:"total" binding:"required,min=1"`
	StartTime  time.Time `json:"startTime" binding:"required"`
	EndTime    time.Time `json:"endTime" binding:"required"`
}

// CreateDiscount creates a limited-quantity discount code (admin).
func (h *PromoHandler) CreateDiscount(c *gin.Context) {
	var input CreateDiscountInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	dc, err := h.service.CreateDiscountCode(input.Code, input.Name, input.PercentOff, input.Total, input.StartTime, input.EndTime)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Created(c, dc)
}

// ClaimDiscount claims a code for the authenticated user.
func (h *PromoHandler) ClaimDiscount(c *gin.Context) {
	code := c.Param("code")

	userID := middleware.GetUserID(c)
	if userID == "" {
		response.Error(c, http.StatusUnauthorized, response.ErrTokenInvalid, "User not authenticated")
		return
	}

	if err := h.service.ClaimDiscount(userID, code); err != nil {
		switch {
		case errors.Is(err, service.ErrOutOfStock):
			response.Fail(c, response.ErrDiscountOutOfStock, "Discount code out of stock")
		case errors.Is(err, service.ErrAlreadyClaimed):
			response.Fail(c, response.ErrDiscountClaimed, "You have already claimed this code")
		case errors.Is(err, service.ErrDiscountInvalid):
			response.Fail(c, response.ErrDiscountInvalid, "Discount code is not valid")
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}

	response.Success(c, "Discount code claimed successfully")
}
