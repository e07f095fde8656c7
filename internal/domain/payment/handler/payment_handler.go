package handler

import (
	"errors"
	"io"
	"net/http"

	"lms_commerce/internal/domain/payment/gateway"
	"lms_commerce/internal/domain/payment/service"
	"lms_commerce/internal/pkg/middleware"
	"lms_commerce/pkg/logger"
	"lms_commerce/pkg/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	service service.PaymentService
}

func NewPaymentHandler(s service.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: s}
}

type checkoutRequest struct {
	Type         string `json:"type" binding:"required"`
	ItemID       string `json:"itemId" binding:"required"`
	Quantity     int    `json:"quantity"`
	DiscountCode string `json:"discountCode"`
}

type verifyRequest struct {
	GatewayOrderID   string `json:"razorpay_order_id" binding:"required"`
	GatewayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	Signature        string `json:"razorpay_signature" binding:"required"`
}

type refundRequest struct {
	Amount float64 `json:"amount"`
	Reason string  `json:"reason"`
}

// Checkout creates an order and opens a gateway order for it.
func (h *PaymentHandler) Checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	result, err := h.service.Checkout(middleware.GetUserID(c), req.Type, req.ItemID, req.Quantity, req.DiscountCode)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			response.Error(c, http.StatusNotFound, response.ErrItemNotFound, "Item not found")
		case errors.Is(err, service.ErrItemNotPublished):
			response.Error(c, http.StatusUnprocessableEntity, response.ErrItemNotPublished, "Item is not available for purchase")
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}

	response.Created(c, result)
}

// Verify handles the gateway checkout callback.
func (h *PaymentHandler) Verify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	payment, err := h.service.VerifyPayment(req.GatewayOrderID, req.GatewayPaymentID, req.Signature)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			response.Error(c, http.StatusNotFound, response.ErrPaymentNotFound, "Payment not found")
		case errors.Is(err, service.ErrPaymentClosed):
			response.Error(c, http.StatusConflict, response.ErrPaymentClosed, "Payment is already closed")
		case errors.Is(err, gateway.ErrInvalidSignature):
			response.Error(c, http.StatusBadRequest, response.ErrInvalidSignature, "Payment signature verification failed")
		case errors.Is(err, gateway.ErrNotCaptured):
			response.Error(c, http.StatusUnprocessableEntity, response.ErrPaymentNotCaptured, "Payment has not been captured")
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}

	response.Success(c, payment)
}

// Webhook receives gateway events. No auth; the body signature is the proof.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "cannot read body")
		return
	}
	signature := c.GetHeader("X-Razorpay-Signature")

	if err := h.service.HandleWebhook(body, signature); err != nil {
		if errors.Is(err, gateway.ErrInvalidSignature) {
			response.Error(c, http.StatusBadRequest, response.ErrInvalidSignature, "Webhook signature verification failed")
			return
		}
		logger.Log.Error("webhook processing failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, "webhook processing failed")
		return
	}

	response.Success(c, gin.H{"received": true})
}

// Refund refunds a successful payment (admin).
func (h *PaymentHandler) Refund(c *gin.Context) {
	var req refundRequest
	_ = c.ShouldBindJSON(&req)

	payment, err := h.service.RefundPayment(c.Param("id"), req.Amount, req.Reason)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPaymentNotFound):
			response.Error(c, http.StatusNotFound, response.ErrPaymentNotFound, "Payment not found")
		case errors.Is(err, service.ErrNotRefundable):
			response.Error(c, http.StatusUnprocessableEntity, response.ErrPaymentNotRefundable, "Only successful payments can be refunded")
		case errors.Is(err, service.ErrBadRefundAmount):
			response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "Refund amount exceeds payment amount")
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrGatewayFailure, err.Error())
		}
		return
	}

	response.Success(c, payment)
}

// GetByOrder returns the payment attached to one of the caller's orders.
func (h *PaymentHandler) GetByOrder(c *gin.Context) {
	payment, err := h.service.GetPaymentByOrderID(c.Param("orderId"))
	if err != nil {
		if errors.Is(err, service.ErrPaymentNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrPaymentNotFound, "Payment not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	if payment.UserID != middleware.GetUserID(c) {
		response.Error(c, http.StatusNotFound, response.ErrPaymentNotFound, "Payment not found")
		return
	}

	response.Success(c, payment)
}
