package repository

import (
	"encoding/json"
	"time"

	"lms_commerce/internal/domain/payment/model"

	"gorm.io/gorm"
)

type PaymentRepository interface {
	Create(payment *model.Payment) error
	GetByID(id string) (*model.Payment, error)
	GetByOrderID(orderID string) (*model.Payment, error)
	GetByGatewayOrderID(gatewayOrderID string) (*model.Payment, error)
	MarkSuccess(id, gatewayPaymentID, signature string, metadata json.RawMessage) error
	MarkFailed(id string, metadata json.RawMessage) error
	MarkRefunded(id, refundID string, refundAmount float64, refundReason string) error
}

type paymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(payment *model.Payment) error {
	return r.db.Create(payment).Error
}

func (r *paymentRepository) GetByID(id string) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.Where("id = ?", id).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) GetByOrderID(orderID string) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.Where("order_id = ?", orderID).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) GetByGatewayOrderID(gatewayOrderID string) (*model.Payment, error) {
	var payment model.Payment
	if err := r.db.Where("gateway_order_id = ?", gatewayOrderID).First(&payment).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *paymentRepository) MarkSuccess(id, gatewayPaymentID, signature string, metadata json.RawMessage) error {
	updates := map[string]interface{}{
		"status":             model.StatusSuccess,
		"gateway_payment_id": gatewayPaymentID,
		"gateway_signature":  signature,
	}
	if metadata != nil {
		updates["metadata"] = metadata
	}
	return r.db.Model(&model.Payment{}).Where("id = ?", id).Updates(updates).Error
}

func (r *paymentRepository) MarkFailed(id string, metadata json.RawMessage) error {
	updates := map[string]interface{}{
		"status": model.StatusFailed,
	}
	if metadata != nil {
		updates["metadata"] = metadata
	}
	return r.db.Model(&model.Payment{}).Where("id = ?", id).Updates(updates).Error
}

func (r *paymentRepository) MarkRefunded(id, refundID string, refundAmount float64, refundReason string) error {
	now := time.Now()
	return r.db.Model(&model.Payment{}).Where("id = ?", id).Updates(map[string]interface{}{
		"status":        model.StatusRefunded,
		"refund_id":     refundID,
		"refund_amount": refundAmount,
		"refund_reason": refundReason,
		"refunded_at":   &now,
	}).Error
}
