package service

import (
	"errors"
	"fmt"
	"time"

	catalogModel "lms_commerce/internal/domain/catalog/model"
	"lms_commerce/internal/domain/enrollment/model"
	"lms_commerce/internal/domain/enrollment/repository"
	orderModel "lms_commerce/internal/domain/order/model"
	orderRepository "lms_commerce/internal/domain/order/repository"
	paymentModel "lms_commerce/internal/domain/payment/model"
	"lms_commerce/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrPlanNotFound = errors.New("plan not found")

// PlanProvider is the slice of the catalog the dispatcher needs.
type PlanProvider interface {
	GetPlan(id string) (*catalogModel.Plan, error)
}

// FulfillmentService turns a successful payment into the access grant the
// order was for.
type FulfillmentService interface {
	ProcessSuccessfulPayment(payment *paymentModel.Payment, order *orderModel.Order) error

	ListEnrollments(userID string, page, limit int) ([]model.Enrollment, int64, error)
	ListDegreeEnrollments(userID string, page, limit int) ([]model.DegreeEnrollment, int64, error)
	ListMentorshipEnrollments(userID string, page, limit int) ([]model.MentorshipEnrollment, int64, error)
	GetActiveSubscription(userID string) (*model.Subscription, error)
}

type fulfillmentService struct {
	repo      repository.EnrollmentRepository
	orderRepo orderRepository.OrderRepository
	plans     PlanProvider
}

func NewFulfillmentService(repo repository.EnrollmentRepository, orderRepo orderRepository.OrderRepository, plans PlanProvider) FulfillmentService {
	return &fulfillmentService{
		repo:      repo,
		orderRepo: orderRepo,
		plans:     plans,
	}
}

// SubscriptionDates computes endDate/nextBillingDate for a plan type.
// LIFETIME has neither. Month-end arithmetic follows time.AddDate.
func SubscriptionDates(planType string, start time.Time) (endDate, nextBillingDate *time.Time) {
	switch planType {
	case catalogModel.PlanTypeMonthly:
		end := start.AddDate(0, 1, 0)
		return &end, &end
	case catalogModel.PlanTypeYearly:
		end := start.AddDate(1, 0, 0)
		return &end, &end
	default: // LIFETIME
		return nil, nil
	}
}

// ProcessSuccessfulPayment confirms the order and dispatches by order type.
// Each branch is find-or-create, keyed on (user, item) for enrollments and
// on payment for subscriptions, so replays of the same payment are no-ops.
func (s *fulfillmentService) ProcessSuccessfulPayment(payment *paymentModel.Payment, order *orderModel.Order) error {
	if err := s.orderRepo.UpdateStatus(order.ID, orderModel.StatusConfirmed); err != nil {
		return err
	}

	switch order.Type {
	case orderModel.TypeCourse:
		return s.fulfillCourse(payment, order)
	case orderModel.TypeDegreeProgram:
		return s.fulfillDegreeProgram(payment, order)
	case orderModel.TypeMentorship:
		return s.fulfillMentorship(payment, order)
	case orderModel.TypeSubscription:
		return s.fulfillSubscription(payment, order)
	default:
		return fmt.Errorf("unknown order type: %s", order.Type)
	}
}

func (s *fulfillmentService) fulfillCourse(payment *paymentModel.Payment, order *orderModel.Order) error {
	existing, err := s.repo.GetEnrollment(order.UserID, order.ItemID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		if logger.Log != nil {
			logger.Log.Info("enrollment already exists, skipping",
				zap.String("user_id", order.UserID), zap.String("course_id", order.ItemID))
		}
		return nil
	}

	return s.repo.CreateEnrollment(&model.Enrollment{
		UserID:        order.UserID,
		CourseID:      order.ItemID,
		Status:        model.StatusActive,
		PaymentID:     payment.ID,
		PaymentStatus: payment.Status,
	})
}

func (s *fulfillmentService) fulfillDegreeProgram(payment *paymentModel.Payment, order *orderModel.Order) error {
	existing, err := s.repo.GetDegreeEnrollment(order.UserID, order.ItemID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		return nil
	}

	return s.repo.CreateDegreeEnrollment(&model.DegreeEnrollment{
		UserID:        order.UserID,
		ProgramID:     order.ItemID,
		Status:        model.StatusActive,
		PaymentID:     payment.ID,
		PaymentStatus: payment.Status,
	})
}

func (s *fulfillmentService) fulfillMentorship(payment *paymentModel.Payment, order *orderModel.Order) error {
	existing, err := s.repo.GetMentorshipEnrollment(order.UserID, order.ItemID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		return nil
	}

	return s.repo.CreateMentorshipEnrollment(&model.MentorshipEnrollment{
		UserID:        order.UserID,
		ProgramID:     order.ItemID,
		Status:        model.StatusActive,
		PaymentID:     payment.ID,
		PaymentStatus: payment.Status,
	})
}

func (s *fulfillmentService) fulfillSubscription(payment *paymentModel.Payment, order *orderModel.Order) error {
	existing, err := s.repo.GetSubscriptionByPaymentID(payment.ID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if existing != nil {
		if logger.Log != nil {
			logger.Log.Info("subscription already exists for payment, skipping",
				zap.String("user_id", order.UserID), zap.String("payment_id", payment.ID))
		}
		return nil
	}

	plan, err := s.plans.GetPlan(order.ItemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPlanNotFound
		}
		return err
	}

	start := time.Now()
	endDate, nextBillingDate := SubscriptionDates(plan.PlanType, start)

	return s.repo.CreateSubscription(&model.Subscription{
		UserID:          order.UserID,
		PlanID:          plan.ID,
		PlanType:        plan.PlanType,
		Status:          model.StatusActive,
		PaymentID:       payment.ID,
		StartDate:       start,
		EndDate:         endDate,
		NextBillingDate: nextBillingDate,
	})
}

// --- Read side ---

func (s *fulfillmentService) ListEnrollments(userID string, page, limit int) ([]model.Enrollment, int64, error) {
	offset := (page - 1) * limit
	return s.repo.GetEnrollmentsByUser(userID, offset, limit)
}

func (s *fulfillmentService) ListDegreeEnrollments(userID string, page, limit int) ([]model.DegreeEnrollment, int64, error) {
	offset := (page - 1) * limit
	return s.repo.GetDegreeEnrollmentsByUser(userID, offset, limit)
}

func (s *fulfillmentService) ListMentorshipEnrollments(userID string, page, limit int) ([]model.MentorshipEnrollment, int64, error) {
	offset := (page - 1) * limit
	return s.repo.GetMentorshipEnrollmentsByUser(userID, offset, limit)
}

func (s *fulfillmentService) GetActiveSubscription(userID string) (*model.Subscription, error) {
	return s.repo.GetActiveSubscription(userID)
}
