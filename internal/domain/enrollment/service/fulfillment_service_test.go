package service

import (
	"testing"
	"time"

	catalogModel "lms_commerce/internal/domain/catalog/model"
	"lms_commerce/internal/domain/enrollment/model"
	orderModel "lms_commerce/internal/domain/order/model"
	orderRepository "lms_commerce/internal/domain/order/repository"
	paymentModel "lms_commerce/internal/domain/payment/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockEnrollmentRepository is a mock of EnrollmentRepository
type MockEnrollmentRepository struct {
	mock.Mock
}

func (m *MockEnrollmentRepository) CreateEnrollment(e *model.Enrollment) error {
	args := m.Called(e)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) GetEnrollment(userID, courseID string) (*model.Enrollment, error) {
	args := m.Called(userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Enrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) GetEnrollmentsByUser(userID string, offset, limit int) ([]model.Enrollment, int64, error) {
	args := m.Called(userID, offset, limit)
	return args.Get(0).([]model.Enrollment), args.Get(1).(int64), args.Error(2)
}

func (m *MockEnrollmentRepository) CreateDegreeEnrollment(e *model.DegreeEnrollment) error {
	args := m.Called(e)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) GetDegreeEnrollment(userID, programID string) (*model.DegreeEnrollment, error) {
	args := m.Called(userID, programID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DegreeEnrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) GetDegreeEnrollmentsByUser(userID string, offset, limit int) ([]model.DegreeEnrollment, int64, error) {
	args := m.Called(userID, offset, limit)
	return args.Get(0).([]model.DegreeEnrollment), args.Get(1).(int64), args.Error(2)
}

func (m *MockEnrollmentRepository) CreateMentorshipEnrollment(e *model.MentorshipEnrollment) error {
	args := m.Called(e)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) GetMentorshipEnrollment(userID, programID string) (*model.MentorshipEnrollment, error) {
	args := m.Called(userID, programID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.MentorshipEnrollment), args.Error(1)
}

func (m *MockEnrollmentRepository) GetMentorshipEnrollmentsByUser(userID string, offset, limit int) ([]model.MentorshipEnrollment, int64, error) {
	args := m.Called(userID, offset, limit)
	return args.Get(0).([]model.MentorshipEnrollment), args.Get(1).(int64), args.Error(2)
}

func (m *MockEnrollmentRepository) CreateSubscription(s *model.Subscription) error {
	args := m.Called(s)
	return args.Error(0)
}

func (m *MockEnrollmentRepository) GetSubscriptionByPaymentID(paymentID string) (*model.Subscription, error) {
	args := m.Called(paymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}

func (m *MockEnrollmentRepository) GetActiveSubscription(userID string) (*model.Subscription, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Subscription), args.Error(1)
}

func (m *MockEnrollmentRepository) GetSubscriptionsByUser(userID string, offset, limit int) ([]model.Subscription, int64, error) {
	args := m.Called(userID, offset, limit)
	return args.Get(0).([]model.Subscription), args.Get(1).(int64), args.Error(2)
}

// MockOrderRepo is a mock of the order repository
type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(order *orderModel.Order) error {
	args := m.Called(order)
	return args.Error(0)
}

func (m *MockOrderRepo) GetByID(id string) (*orderModel.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderModel.Order), args.Error(1)
}

func (m *MockOrderRepo) GetByOrderNumber(orderNumber string) (*orderModel.Order, error) {
	args := m.Called(orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderModel.Order), args.Error(1)
}

func (m *MockOrderRepo) UpdateStatus(id string, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockOrderRepo) GetList(filter orderRepository.OrderFilter, offset, limit int) ([]orderModel.Order, int64, error) {
	args := m.Called(filter, offset, limit)
	return args.Get(0).([]orderModel.Order), args.Get(1).(int64), args.Error(2)
}

// MockPlanProvider is a mock of PlanProvider
type MockPlanProvider struct {
	mock.Mock
}

func (m *MockPlanProvider) GetPlan(id string) (*catalogModel.Plan, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogModel.Plan), args.Error(1)
}

func testOrder(orderType string) *orderModel.Order {
	order := &orderModel.Order{
		UserID: "user-1",
		Type:   orderType,
		ItemID: "item-1",
		Status: orderModel.StatusPending,
	}
	order.ID = "order-1"
	return order
}

func testPayment() *paymentModel.Payment {
	p := &paymentModel.Payment{
		UserID:  "user-1",
		OrderID: "order-1",
		Status:  paymentModel.StatusSuccess,
	}
	p.ID = "pay-1"
	return p
}

func TestSubscriptionDates(t *testing.T) {
	start := time.Date(2026, 1, 31, 10, 0, 0, 0, time.UTC)

	t.Run("Monthly plan runs one month", func(t *testing.T) {
		end, next := SubscriptionDates(catalogModel.PlanTypeMonthly, start)
		assert.NotNil(t, end)
		assert.Equal(t, start.AddDate(0, 1, 0), *end)
		assert.Equal(t, *end, *next)
	})

	t.Run("Yearly plan runs one year", func(t *testing.T) {
		end, next := SubscriptionDates(catalogModel.PlanTypeYearly, start)
		assert.NotNil(t, end)
		assert.Equal(t, start.AddDate(1, 0, 0), *end)
		assert.Equal(t, *end, *next)
	})

	t.Run("Lifetime plan has no end or billing date", func(t *testing.T) {
		end, next := SubscriptionDates(catalogModel.PlanTypeLifetime, start)
		assert.Nil(t, end)
		assert.Nil(t, next)
	})
}

func TestProcessSuccessfulPayment(t *testing.T) {
	t.Run("Course order confirms and enrolls", func(t *testing.T) {
		repo := new(MockEnrollmentRepository)
		orderRepo := new(MockOrderRepo)
		plans := new(MockPlanProvider)
		svc := NewFulfillmentService(repo, orderRepo, plans)

		orderRepo.On("UpdateStatus", "order-1", orderModel.StatusConfirmed).Return(nil)
		repo.On("GetEnrollment", "user-1", "item-1").Return(nil, gorm.ErrRecordNotFound)
		repo.On("CreateEnrollment", mock.MatchedBy(func(e *model.Enrollment) bool {
			return e.UserID == "user-1" && e.CourseID == "item-1" &&
				e.Status == model.StatusActive && e.PaymentID == "pay-1"
		})).Return(nil)

		err := svc.ProcessSuccessfulPayment(testPayment(), testOrder(orderModel.TypeCourse))

		assert.NoError(t, err)
		repo.AssertExpectations(t)
		orderRepo.AssertExpectations(t)
	})

	t.Run("Existing enrollment makes replay a no-op", func(t *testing.T) {
		repo := new(MockEnrollmentRepository)
		orderRepo := new(MockOrderRepo)
		plans := new(MockPlanProvider)
		svc := NewFulfillmentService(repo, orderRepo, plans)

		orderRepo.On("UpdateStatus", "order-1", orderModel.StatusConfirmed).Return(nil)
		repo.On("GetEnrollment", "user-1", "item-1").Return(&model.Enrollment{
			UserID: "user-1", CourseID: "item-1", Status: model.StatusActive,
		}, nil)

		err := svc.ProcessSuccessfulPayment(testPayment(), testOrder(orderModel.TypeCourse))

		assert.NoError(t, err)
		repo.AssertNotCalled(t, "CreateEnrollment")
	})

	t.Run("Degree order creates degree enrollment", func(t *testing.T) {
		repo := new(MockEnrollmentRepository)
		orderRepo := new(MockOrderRepo)
		plans := new(MockPlanProvider)
		svc := NewFulfillmentService(repo, orderRepo, plans)

		orderRepo.On("UpdateStatus", "order-1", orderModel.StatusConfirmed).Return(nil)
		repo.On("GetDegreeEnrollment", "user-1", "item-1").Return(nil, gorm.ErrRecordNotFound)
		repo.On("CreateDegreeEnrollment", mock.MatchedBy(func(e *model.DegreeEnrollment) bool {
			return e.ProgramID == "item-1" && e.Status == model.StatusActive
		})).Return(nil)

		err := svc.ProcessSuccessfulPayment(testPayment(), testOrder(orderModel.TypeDegreeProgram))

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Mentorship order creates mentorship enrollment", func(t *testing.T) {
		repo := new(MockEnrollmentRepository)
		orderRepo := new(MockOrderRepo)
		plans := new(MockPlanProvider)
		svc := NewFulfillmentService(repo, orderRepo, plans)

		orderRepo.On("UpdateStatus", "order-1", orderModel.StatusConfirmed).Return(nil)
		repo.On("GetMentorshipEnrollment", "user-1", "item-1").Return(nil, gorm.ErrRecordNotFound)
		repo.On("CreateMentorshipEnrollment", mock.AnythingOfType("*model.MentorshipEnrollment")).Return(nil)

		err := svc.ProcessSuccessfulPayment(testPayment(), testOrder(orderModel.TypeMentorship))

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Subscription order creates subscription with plan dates", func(t *testing.T) {
		repo := new(MockEnrollmentRepository)
		orderRepo := new(MockOrderRepo)
		plans := new(MockPlanProvider)
		svc := NewFulfillmentService(repo, orderRepo, plans)

		plan := &catalogModel.Plan{Name: "Monthly", PlanType: catalogModel.PlanTypeMonthly, Price: 999}
		plan.ID = "item-1"

		orderRepo.On("UpdateStatus", "order-1", orderModel.StatusConfirmed).Return(nil)
		repo.On("GetSubscriptionByPaymentID", "pay-1").Return(nil, gorm.ErrRecordNotFound)
		plans.On("GetPlan", "item-1").Return(plan, nil)
		repo.On("CreateSubscription", mock.MatchedBy(func(s *model.Subscription) bool {
			return s.PlanID == "item-1" &&
				s.PlanType == catalogModel.PlanTypeMonthly &&
				s.Status == model.StatusActive &&
				s.EndDate != nil && s.NextBillingDate != nil &&
				s.EndDate.Equal(*s.NextBillingDate)
		})).Return(nil)

		err := svc.ProcessSuccessfulPayment(testPayment(), testOrder(orderModel.TypeSubscription))

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Lifetime subscription has open-ended dates", func(t *testing.T) {
		repo := new(MockEnrollmentRepository)
		orderRepo := new(MockOrderRepo)
		plans := new(MockPlanProvider)
		svc := NewFulfillmentService(repo, orderRepo, plans)

		plan := &catalogModel.Plan{Name: "Lifetime", PlanType: catalogModel.PlanTypeLifetime, Price: 9999}
		plan.ID = "item-1"

		orderRepo.On("UpdateStatus", "order-1", orderModel.StatusConfirmed).Return(nil)
		repo.On("GetSubscriptionByPaymentID", "pay-1").Return(nil, gorm.ErrRecordNotFound)
		plans.On("GetPlan", "item-1").Return(plan, nil)
		repo.On("CreateSubscription", mock.MatchedBy(func(s *model.Subscription) bool {
			return s.EndDate == nil && s.NextBillingDate == nil
		})).Return(nil)

		err := svc.ProcessSuccessfulPayment(testPayment(), testOrder(orderModel.TypeSubscription))

		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Missing plan surfaces as plan not found", func(t *testing.T) {
		repo := new(MockEnrollmentRepository)
		orderRepo := new(MockOrderRepo)
		plans := new(MockPlanProvider)
		svc := NewFulfillmentService(repo, orderRepo, plans)

		orderRepo.On("UpdateStatus", "order-1", orderModel.StatusConfirmed).Return(nil)
		repo.On("GetSubscriptionByPaymentID", "pay-1").Return(nil, gorm.ErrRecordNotFound)
		plans.On("GetPlan", "item-1").Return(nil, gorm.ErrRecordNotFound)

		err := svc.ProcessSuccessfulPayment(testPayment(), testOrder(orderModel.TypeSubscription))

		assert.ErrorIs(t, err, ErrPlanNotFound)
		repo.AssertNotCalled(t, "CreateSubscription")
	})

	t.Run("Existing subscription makes replay a no-op", func(t *testing.T) {
		repo := new(MockEnrollmentRepository)
		orderRepo := new(MockOrderRepo)
		plans := new(MockPlanProvider)
		svc := NewFulfillmentService(repo, orderRepo, plans)

		existing := &model.Subscription{UserID: "user-1", PlanID: "item-1", PaymentID: "pay-1"}
		orderRepo.On("UpdateStatus", "order-1", orderModel.StatusConfirmed).Return(nil)
		repo.On("GetSubscriptionByPaymentID", "pay-1").Return(existing, nil)

		err := svc.ProcessSuccessfulPayment(testPayment(), testOrder(orderModel.TypeSubscription))

		assert.NoError(t, err)
		repo.AssertNotCalled(t, "CreateSubscription")
		plans.AssertNotCalled(t, "GetPlan")
	})

	t.Run("Unknown order type is rejected", func(t *testing.T) {
		repo := new(MockEnrollmentRepository)
		orderRepo := new(MockOrderRepo)
		plans := new(MockPlanProvider)
		svc := NewFulfillmentService(repo, orderRepo, plans)

		orderRepo.On("UpdateStatus", "order-1", orderModel.StatusConfirmed).Return(nil)

		err := svc.ProcessSuccessfulPayment(testPayment(), testOrder("GIFT_CARD"))

		assert.Error(t, err)
	})
}
