package model

import (
	"time"

	baseModel "lms_commerce/pkg/model"
)

// Enrollment grants a user access to a purchased course. The
// (user_id, course_id) unique index is what makes fulfillment idempotent
// under concurrent duplicate requests.
type Enrollment struct {
	baseModel.BaseModel
	UserID        string `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_user_course" json:"userId"`
	CourseID      string `gorm:"type:uuid;not null;uniqueIndex:idx_enrollment_user_course" json:"courseId"`
	Status        string `gorm:"type:varchar(20);default:'ACTIVE'" json:"status"`
	PaymentID     string `gorm:"type:uuid" json:"paymentId"`
	PaymentStatus string `gorm:"type:varchar(20)" json:"paymentStatus"`
}

// DegreeEnrollment grants access to a degree program.
type DegreeEnrollment struct {
	baseModel.BaseModel
	UserID        string `gorm:"type:uuid;not null;uniqueIndex:idx_degree_enrollment_user_program" json:"userId"`
	ProgramID     string `gorm:"type:uuid;not null;uniqueIndex:idx_degree_enrollment_user_program" json:"programId"`
	Status        string `gorm:"type:varchar(20);default:'ACTIVE'" json:"status"`
	PaymentID     string `gorm:"type:uuid" json:"paymentId"`
	PaymentStatus string `gorm:"type:varchar(20)" json:"paymentStatus"`
}

// MentorshipEnrollment grants access to a mentorship program.
type MentorshipEnrollment struct {
	baseModel.BaseModel
	UserID        string `gorm:"type:uuid;not null;uniqueIndex:idx_mentorship_enrollment_user_program" json:"userId"`
	ProgramID     string `gorm:"type:uuid;not null;uniqueIndex:idx_mentorship_enrollment_user_program" json:"programId"`
	Status        string `gorm:"type:varchar(20);default:'ACTIVE'" json:"status"`
	PaymentID     string `gorm:"type:uuid" json:"paymentId"`
	PaymentStatus string `gorm:"type:varchar(20)" json:"paymentStatus"`
}

// Subscription is a site-wide access grant created per successful plan purchase.
type Subscription struct {
	baseModel.BaseModel
	UserID          string     `gorm:"type:uuid;index;not null" json:"userId"`
	PlanID          string     `gorm:"type:uuid;not null" json:"planId"`
	PlanType        string     `gorm:"type:varchar(20);not null" json:"planType"`
	Status          string     `gorm:"type:varchar(20);default:'ACTIVE'" json:"status"`
	PaymentID       string     `gorm:"type:uuid;uniqueIndex:idx_subscriptions_payment_id" json:"paymentId"`
	StartDate       time.Time  `gorm:"not null" json:"startDate"`
	EndDate         *time.Time `json:"endDate,omitempty"` // nil for LIFETIME
	NextBillingDate *time.Time `json:"nextBillingDate,omitempty"`
}

// Enrollment/subscription statuses.
const (
	StatusActive    = "ACTIVE"
	StatusCancelled = "CANCELLED"
	StatusExpired   = "EXPIRED"
)
