package model

import (
	"encoding/json"

	baseModel "lms_commerce/pkg/model"
)

// Course is a purchasable self-paced course.
type Course struct {
	baseModel.BaseModel
	Title       string          `gorm:"type:varchar(200);not null" json:"title"`
	Slug        string          `gorm:"type:varchar(200);unique;not null" json:"slug"`
	Description string          `gorm:"type:text" json:"description"`
	Category    string          `gorm:"type:varchar(100);index" json:"category"`
	Level       string          `gorm:"type:varchar(20)" json:"level"` // beginner, intermediate, advanced
	Price       float64         `gorm:"not null" json:"price"`
	Currency    string          `gorm:"type:varchar(10);default:'INR'" json:"currency"`
	Published   bool            `gorm:"default:false;index" json:"published"`
	Syllabus    json.RawMessage `gorm:"type:jsonb" json:"syllabus,omitempty"`
}

// DegreeProgram is a long-form accredited program.
type DegreeProgram struct {
	baseModel.BaseModel
	Title          string  `gorm:"type:varchar(200);not null" json:"title"`
	Slug           string  `gorm:"type:varchar(200);unique;not null" json:"slug"`
	Description    string  `gorm:"type:text" json:"description"`
	DurationMonths int     `json:"durationMonths"`
	Price          float64 `gorm:"not null" json:"price"`
	Currency       string  `gorm:"type:varchar(10);default:'INR'" json:"currency"`
	Published      bool    `gorm:"default:false;index" json:"published"`
}

// MentorshipProgram pairs a learner with a mentor for a fixed term.
type MentorshipProgram struct {
	baseModel.BaseModel
	Title       string  `gorm:"type:varchar(200);not null" json:"title"`
	Slug        string  `gorm:"type:varchar(200);unique;not null" json:"slug"`
	Description string  `gorm:"type:text" json:"description"`
	MentorName  string  `gorm:"type:varchar(100)" json:"mentorName"`
	Sessions    int     `json:"sessions"`
	Price       float64 `gorm:"not null" json:"price"`
	Currency    string  `gorm:"type:varchar(10);default:'INR'" json:"currency"`
	Published   bool    `gorm:"default:false;index" json:"published"`
}

// Plan is a site-wide subscription plan.
type Plan struct {
	baseModel.BaseModel
	Name     string  `gorm:"type:varchar(100);not null" json:"name"`
	PlanType string  `gorm:"type:varchar(20);not null" json:"planType"` // MONTHLY, YEARLY, LIFETIME
	Price    float64 `gorm:"not null" json:"price"`
	Currency string  `gorm:"type:varchar(10);default:'INR'" json:"currency"`
	Active   bool    `gorm:"default:true" json:"active"`
}

const (
	PlanTypeMonthly  = "MONTHLY"
	PlanTypeYearly   = "YEARLY"
	PlanTypeLifetime = "LIFETIME"
)
