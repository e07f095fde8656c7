package model

import (
	"encoding/json"
	"time"

	baseModel "lms_commerce/pkg/model"
)

// Payment tracks money movement against an Order at the gateway.
// One payment per order; history is immutable apart from status moves.
type Payment struct {
	baseModel.BaseModel
	UserID           string          `gorm:"type:uuid;index;not null" json:"userId"`
	OrderID          string          `gorm:"type:uuid;unique;not null" json:"orderId"`
	Amount           float64         `gorm:"not null" json:"amount"`
	Currency         string          `gorm:"type:varchar(10);default:'INR'" json:"currency"`
	Status           string          `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`
	GatewayOrderID   string          `gorm:"type:varchar(100);index" json:"gatewayOrderId"`
	GatewayPaymentID string          `gorm:"type:varchar(100)" json:"gatewayPaymentId"`
	GatewaySignature string          `gorm:"type:varchar(200)" json:"-"`
	RefundID         string          `gorm:"type:varchar(100)" json:"refundId,omitempty"`
	RefundAmount     float64         `json:"refundAmount,omitempty"`
	RefundReason     string          `gorm:"type:varchar(500)" json:"refundReason,omitempty"`
	RefundedAt       *time.Time      `json:"refundedAt,omitempty"`
	Metadata         json.RawMessage `gorm:"type:jsonb" json:"metadata,omitempty"`
}

// Payment lifecycle: PENDING -> SUCCESS -> REFUNDED, or PENDING -> FAILED.
const (
	StatusPending  = "PENDING"
	StatusSuccess  = "SUCCESS"
	StatusFailed   = "FAILED"
	StatusRefunded = "REFUNDED"
)
