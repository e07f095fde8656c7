package model

import (
	"time"

	baseModel "lms_commerce/pkg/model"
)

// DiscountCode is a limited-quantity referral/promo code.
type DiscountCode struct {
	baseModel.BaseModel
	Code       string    `gorm:"type:varchar(50);unique;not null" json:"code"`
	Name       string    `gorm:"type:varchar(100);not null" json:"name"`
	PercentOff int       `gorm:"not null" json:"percentOff"` // 1-100
	Total      int       `gorm:"not null" json:"total"`
	Stock      int       `gorm:"not null" json:"stock"`
	StartTime  time.Time `gorm:"not null" json:"startTime"`
	EndTime    time.Time `gorm:"not null" json:"endTime"`
}

// UserDiscount records a code claimed by a user.
type UserDiscount struct {
	baseModel.BaseModel
	UserID     string     `gorm:"type:uuid;index;not null" json:"userId"`
	DiscountID string     `gorm:"type:uuid;index;not null" json:"discountId"`
	Status     int        `gorm:"default:1" json:"status"` // 1: unused, 2: used, 3: expired
	UsedAt     *time.Time `json:"usedAt,omitempty"`
}

const (
	UserDiscountUnused  = 1
	UserDiscountUsed    = 2
	UserDiscountExpired = 3
)
