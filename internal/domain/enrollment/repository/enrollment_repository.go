package repository

import (
	"lms_commerce/internal/domain/enrollment/model"

	"gorm.io/gorm"
)

type EnrollmentRepository interface {
	CreateEnrollment(enrollment *model.Enrollment) error
	GetEnrollment(userID, courseID string) (*model.Enrollment, error)
	GetEnrollmentsByUser(userID string, offset, limit int) ([]model.Enrollment, int64, error)

	CreateDegreeEnrollment(enrollment *model.DegreeEnrollment) error
	GetDegreeEnrollment(userID, programID string) (*model.DegreeEnrollment, error)
	GetDegreeEnrollmentsByUser(userID string, offset, limit int) ([]model.DegreeEnrollment, int64, error)

	CreateMentorshipEnrollment(enrollment *model.MentorshipEnrollment) error
	GetMentorshipEnrollment(userID, programID string) (*model.MentorshipEnrollment, error)
	GetMentorshipEnrollmentsByUser(userID string, offset, limit int) ([]model.MentorshipEnrollment, int64, error)

	CreateSubscription(subscription *model.Subscription) error
	GetSubscriptionByPaymentID(paymentID string) (*model.Subscription, error)
	GetActiveSubscription(userID string) (*model.Subscription, error)
	GetSubscriptionsByUser(userID string, offset, limit int) ([]model.Subscription, int64, error)
}

type enrollmentRepository struct {
	db *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) EnrollmentRepository {
	return &enrollmentRepository{db: db}
}

// --- Course enrollment ---

func (r *enrollmentRepository) CreateEnrollment(enrollment *model.Enrollment) error {
	return r.db.Create(enrollment).Error
}

func (r *enrollmentRepository) GetEnrollment(userID, courseID string) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.db.Where("user_id = ? AND course_id = ?", userID, courseID).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) GetEnrollmentsByUser(userID string, offset, limit int) ([]model.Enrollment, int64, error) {
	var enrollments []model.Enrollment
	var total int64

	query := r.db.Model(&model.Enrollment{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&enrollments).Error; err != nil {
		return nil, 0, err
	}
	return enrollments, total, nil
}

// --- Degree enrollment ---

func (r *enrollmentRepository) CreateDegreeEnrollment(enrollment *model.DegreeEnrollment) error {
	return r.db.Create(enrollment).Error
}

func (r *enrollmentRepository) GetDegreeEnrollment(userID, programID string) (*model.DegreeEnrollment, error) {
	var enrollment model.DegreeEnrollment
	err := r.db.Where("user_id = ? AND program_id = ?", userID, programID).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) GetDegreeEnrollmentsByUser(userID string, offset, limit int) ([]model.DegreeEnrollment, int64, error) {
	var enrollments []model.DegreeEnrollment
	var total int64

	query := r.db.Model(&model.DegreeEnrollment{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&enrollments).Error; err != nil {
		return nil, 0, err
	}
	return enrollments, total, nil
}

// --- Mentorship enrollment ---

func (r *enrollmentRepository) CreateMentorshipEnrollment(enrollment *model.MentorshipEnrollment) error {
	return r.db.Create(enrollment).Error
}

func (r *enrollmentRepository) GetMentorshipEnrollment(userID, programID string) (*model.MentorshipEnrollment, error) {
	var enrollment model.MentorshipEnrollment
	err := r.db.Where("user_id = ? AND program_id = ?", userID, programID).First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *enrollmentRepository) GetMentorshipEnrollmentsByUser(userID string, offset, limit int) ([]model.MentorshipEnrollment, int64, error) {
	var enrollments []model.MentorshipEnrollment
	var total int64

	query := r.db.Model(&model.MentorshipEnrollment{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&enrollments).Error; err != nil {
		return nil, 0, err
	}
	return enrollments, total, nil
}

// --- Subscription ---

func (r *enrollmentRepository) CreateSubscription(subscription *model.Subscription) error {
	return r.db.Create(subscription).Error
}

func (r *enrollmentRepository) GetSubscriptionByPaymentID(paymentID string) (*model.Subscription, error) {
	var subscription model.Subscription
	if err := r.db.Where("payment_id = ?", paymentID).First(&subscription).Error; err != nil {
		return nil, err
	}
	return &subscription, nil
}

func (r *enrollmentRepository) GetActiveSubscription(userID string) (*model.Subscription, error) {
	var subscription model.Subscription
	err := r.db.Where("user_id = ? AND status = ?", userID, model.StatusActive).
		Order("created_at desc").First(&subscription).Error
	if err != nil {
		return nil, err
	}
	return &subscription, nil
}

func (r *enrollmentRepository) GetSubscriptionsByUser(userID string, offset, limit int) ([]model.Subscription, int64, error) {
	var subscriptions []model.Subscription
	var total int64

	query := r.db.Model(&model.Subscription{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&subscriptions).Error; err != nil {
		return nil, 0, err
	}
	return subscriptions, total, nil
}
