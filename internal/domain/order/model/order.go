package model

import (
	baseModel "lms_commerce/pkg/model"
)

// Order is a purchase intent for a course, degree program, mentorship or
// subscription plan. Orders are never deleted; only status moves.
type Order struct {
	baseModel.BaseModel
	UserID      string  `gorm:"type:uuid;index;not null" json:"userId"`
	OrderNumber string  `gorm:"type:varchar(40);unique;not null" json:"orderNumber"`
	Type        string  `gorm:"type:varchar(20);not null;index" json:"type"`
	ItemID      string  `gorm:"type:uuid;not null" json:"itemId"`
	ItemTitle   string  `gorm:"type:varchar(200);not null" json:"itemTitle"`
	Quantity    int     `gorm:"not null;default:1" json:"quantity"`
	UnitPrice   float64 `gorm:"not null" json:"unitPrice"`
	TotalAmount float64 `gorm:"not null" json:"totalAmount"`
	Currency    string  `gorm:"type:varchar(10);default:'INR'" json:"currency"`
	Status      string  `gorm:"type:varchar(20);default:'PENDING';index" json:"status"`
}

// Order types.
const (
	TypeCourse        = "COURSE"
	TypeDegreeProgram = "DEGREE_PROGRAM"
	TypeMentorship    = "MENTORSHIP"
	TypeSubscription  = "SUBSCRIPTION"
)

// Order statuses.
const (
	StatusPending   = "PENDING"
	StatusConfirmed = "CONFIRMED"
	StatusFailed    = "FAILED"
	StatusRefunded  = "REFUNDED"
	StatusCancelled = "CANCELLED"
)

// ValidType reports whether t is a known order type.
func ValidType(t string) bool {
	switch t {
	case TypeCourse, TypeDegreeProgram, TypeMentorship, TypeSubscription:
		return true
	}
	return false
}
