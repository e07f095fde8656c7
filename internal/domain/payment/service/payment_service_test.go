package service

import (
	"encoding/json"
	"testing"

	catalogModel "lms_commerce/internal/domain/catalog/model"
	orderModel "lms_commerce/internal/domain/order/model"
	"lms_commerce/internal/domain/order/repository"
	"lms_commerce/internal/domain/payment/gateway"
	"lms_commerce/internal/domain/payment/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockPaymentRepository is a mock of PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(payment *model.Payment) error {
	args := m.Called(payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(id string) (*model.Payment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByOrderID(orderID string) (*model.Payment, error) {
	args := m.Called(orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) GetByGatewayOrderID(gatewayOrderID string) (*model.Payment, error) {
	args := m.Called(gatewayOrderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Payment), args.Error(1)
}

func (m *MockPaymentRepository) MarkSuccess(id, gatewayPaymentID, signature string, metadata json.RawMessage) error {
	args := m.Called(id, gatewayPaymentID, signature, metadata)
	return args.Error(0)
}

func (m *MockPaymentRepository) MarkFailed(id string, metadata json.RawMessage) error {
	args := m.Called(id, metadata)
	return args.Error(0)
}

func (m *MockPaymentRepository) MarkRefunded(id, refundID string, refundAmount float64, refundReason string) error {
	args := m.Called(id, refundID, refundAmount, refundReason)
	return args.Error(0)
}

// MockGateway is a mock of gateway.Gateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreateRemoteOrder(amount int64, currency, receipt string, notes map[string]interface{}) (*gateway.RemoteOrder, error) {
	args := m.Called(amount, currency, receipt, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.RemoteOrder), args.Error(1)
}

func (m *MockGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) error {
	args := m.Called(gatewayOrderID, gatewayPaymentID, signature)
	return args.Error(0)
}

func (m *MockGateway) VerifyWebhookSignature(body []byte, signature string) error {
	args := m.Called(body, signature)
	return args.Error(0)
}

func (m *MockGateway) FetchPayment(gatewayPaymentID string) (*gateway.RemotePayment, error) {
	args := m.Called(gatewayPaymentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.RemotePayment), args.Error(1)
}

func (m *MockGateway) Refund(gatewayPaymentID string, amount int64, notes map[string]interface{}) (*gateway.RemoteRefund, error) {
	args := m.Called(gatewayPaymentID, amount, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.RemoteRefund), args.Error(1)
}

// MockOrderService is a mock of order service.OrderService
type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(userID, orderType, itemID, itemTitle string, quantity int, unitPrice float64, currency string) (*orderModel.Order, error) {
	args := m.Called(userID, orderType, itemID, itemTitle, quantity, unitPrice, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderModel.Order), args.Error(1)
}

func (m *MockOrderService) GetOrder(id string) (*orderModel.Order, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderModel.Order), args.Error(1)
}

func (m *MockOrderService) GetOrderByNumber(orderNumber string) (*orderModel.Order, error) {
	args := m.Called(orderNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*orderModel.Order), args.Error(1)
}

func (m *MockOrderService) UpdateStatus(id string, status string) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockOrderService) ListOrders(filter repository.OrderFilter, page, limit int) ([]orderModel.Order, int64, error) {
	args := m.Called(filter, page, limit)
	return args.Get(0).([]orderModel.Order), args.Get(1).(int64), args.Error(2)
}

// MockCatalog is a mock of CatalogProvider
type MockCatalog struct {
	mock.Mock
}

func (m *MockCatalog) GetCourse(id string) (*catalogModel.Course, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogModel.Course), args.Error(1)
}

func (m *MockCatalog) GetDegreeProgram(id string) (*catalogModel.DegreeProgram, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogModel.DegreeProgram), args.Error(1)
}

func (m *MockCatalog) GetMentorshipProgram(id string) (*catalogModel.MentorshipProgram, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogModel.MentorshipProgram), args.Error(1)
}

func (m *MockCatalog) GetPlan(id string) (*catalogModel.Plan, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalogModel.Plan), args.Error(1)
}

// MockFulfiller is a mock of Fulfiller
type MockFulfiller struct {
	mock.Mock
}

func (m *MockFulfiller) ProcessSuccessfulPayment(payment *model.Payment, order *orderModel.Order) error {
	args := m.Called(payment, order)
	return args.Error(0)
}

// MockDiscounts is a mock of the discount applier
type MockDiscounts struct {
	mock.Mock
}

func (m *MockDiscounts) ApplyDiscount(userID, code string, amount float64) (float64, error) {
	args := m.Called(userID, code, amount)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockDiscounts) ConsumeDiscount(userID, code string) error {
	args := m.Called(userID, code)
	return args.Error(0)
}

func newTestService(repo *MockPaymentRepository, gw *MockGateway, orders *MockOrderService, catalog *MockCatalog, fulfiller *MockFulfiller) PaymentService {
	return NewPaymentService(repo, gw, orders, catalog, fulfiller, nil, "rzp_test_key")
}

func TestCheckout(t *testing.T) {
	t.Run("Course checkout creates order, remote order and pending payment", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		gw := new(MockGateway)
		orders := new(MockOrderService)
		catalog := new(MockCatalog)
		fulfiller := new(MockFulfiller)
		service := newTestService(repo, gw, orders, catalog, fulfiller)

		catalog.On("GetCourse", "course-1").Return(&catalogModel.Course{
			Title: "Intro to Go", Price: 499.50, Currency: "INR", Published: true,
		}, nil)

		order := &orderModel.Order{
			OrderNumber: "ORD-1700000000000-ABC123XYZ",
			UserID:      "user-1",
			Type:        orderModel.TypeCourse,
			ItemID:      "course-1",
			Quantity:    1,
			UnitPrice:   499.50,
			TotalAmount: 499.50,
			Currency:    "INR",
			Status:      orderModel.StatusPending,
		}
		order.ID = "order-1"
		orders.On("CreateOrder", "user-1", orderModel.TypeCourse, "course-1", "Intro to Go", 1, 499.50, "INR").
			Return(order, nil)

		gw.On("CreateRemoteOrder", int64(49950), "INR", "ORD-1700000000000-ABC123XYZ", mock.Anything).
			Return(&gateway.RemoteOrder{ID: "order_rzp1", Amount: 49950, Currency: "INR"}, nil)

		repo.On("Create", mock.MatchedBy(func(p *model.Payment) bool {
			return p.Status == model.StatusPending &&
				p.OrderID == "order-1" &&
				p.GatewayOrderID == "order_rzp1" &&
				p.Amount == 499.50
		})).Return(nil)

		result, err := service.Checkout("user-1", orderModel.TypeCourse, "course-1", 1, "")

		assert.NoError(t, err)
		assert.Equal(t, "order_rzp1", result.GatewayOrderID)
		assert.Equal(t, int64(49950), result.Amount)
		assert.Equal(t, "rzp_test_key", result.KeyID)
		repo.AssertExpectations(t)
		gw.AssertExpectations(t)
	})

	t.Run("Unpublished course cannot be purchased", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		gw := new(MockGateway)
		orders := new(MockOrderService)
		catalog := new(MockCatalog)
		fulfiller := new(MockFulfiller)
		service := newTestService(repo, gw, orders, catalog, fulfiller)

		catalog.On("GetCourse", "course-1").Return(&catalogModel.Course{
			Title: "Draft", Price: 100, Published: false,
		}, nil)

		result, err := service.Checkout("user-1", orderModel.TypeCourse, "course-1", 1, "")

		assert.ErrorIs(t, err, ErrItemNotPublished)
		assert.Nil(t, result)
		orders.AssertNotCalled(t, "CreateOrder")
		gw.AssertNotCalled(t, "CreateRemoteOrder")
	})

	t.Run("Inactive plan cannot be subscribed", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		gw := new(MockGateway)
		orders := new(MockOrderService)
		catalog := new(MockCatalog)
		fulfiller := new(MockFulfiller)
		service := newTestService(repo, gw, orders, catalog, fulfiller)

		catalog.On("GetPlan", "plan-1").Return(&catalogModel.Plan{
			Name: "Old Plan", Price: 999, Active: false,
		}, nil)

		result, err := service.Checkout("user-1", orderModel.TypeSubscription, "plan-1", 1, "")

		assert.ErrorIs(t, err, ErrItemNotPublished)
		assert.Nil(t, result)
	})

	t.Run("Gateway failure leaves no payment record", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		gw := new(MockGateway)
		orders := new(MockOrderService)
		catalog := new(MockCatalog)
		fulfiller := new(MockFulfiller)
		service := newTestService(repo, gw, orders, catalog, fulfiller)

		catalog.On("GetCourse", "course-1").Return(&catalogModel.Course{
			Title: "Intro to Go", Price: 100, Currency: "INR", Published: true,
		}, nil)
		order := &orderModel.Order{OrderNumber: "ORD-1-AAAAAAAAA", TotalAmount: 100, Currency: "INR"}
		order.ID = "order-1"
		orders.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(order, nil)
		gw.On("CreateRemoteOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, assert.AnError)

		result, err := service.Checkout("user-1", orderModel.TypeCourse, "course-1", 1, "")

		assert.Error(t, err)
		assert.Nil(t, result)
		repo.AssertNotCalled(t, "Create")
	})

	t.Run("Discount code is consumed once the gateway order exists", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		gw := new(MockGateway)
		orders := new(MockOrderService)
		catalog := new(MockCatalog)
		fulfiller := new(MockFulfiller)
		discounts := new(MockDiscounts)
		service := NewPaymentService(repo, gw, orders, catalog, fulfiller, discounts, "rzp_test_key")

		catalog.On("GetCourse", "course-1").Return(&catalogModel.Course{
			Title: "Intro to Go", Price: 100, Currency: "INR", Published: true,
		}, nil)
		discounts.On("ApplyDiscount", "user-1", "WELCOME10", 100.0).Return(90.0, nil)
		order := &orderModel.Order{OrderNumber: "ORD-1-AAAAAAAAA", TotalAmount: 90, Currency: "INR"}
		order.ID = "order-1"
		orders.On("CreateOrder", "user-1", orderModel.TypeCourse, "course-1", "Intro to Go", 1, 90.0, "INR").
			Return(order, nil)
		gw.On("CreateRemoteOrder", int64(9000), "INR", "ORD-1-AAAAAAAAA", mock.Anything).
			Return(&gateway.RemoteOrder{ID: "order_rzp1"}, nil)
		discounts.On("ConsumeDiscount", "user-1", "WELCOME10").Return(nil)
		repo.On("Create", mock.Anything).Return(nil)

		result, err := service.Checkout("user-1", orderModel.TypeCourse, "course-1", 1, "WELCOME10")

		assert.NoError(t, err)
		assert.Equal(t, int64(9000), result.Amount)
		discounts.AssertExpectations(t)
	})

	t.Run("Gateway failure leaves the discount claim unconsumed", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		gw := new(MockGateway)
		orders := new(MockOrderService)
		catalog := new(MockCatalog)
		fulfiller := new(MockFulfiller)
		discounts := new(MockDiscounts)
		service := NewPaymentService(repo, gw, orders, catalog, fulfiller, discounts, "rzp_test_key")

		catalog.On("GetCourse", "course-1").Return(&catalogModel.Course{
			Title: "Intro to Go", Price: 100, Currency: "INR", Published: true,
		}, nil)
		discounts.On("ApplyDiscount", "user-1", "WELCOME10", 100.0).Return(90.0, nil)
		order := &orderModel.Order{OrderNumber: "ORD-1-AAAAAAAAA", TotalAmount: 90, Currency: "INR"}
		order.ID = "order-1"
		orders.On("CreateOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(order, nil)
		gw.On("CreateRemoteOrder", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(nil, assert.AnError)

		result, err := service.Checkout("user-1", orderModel.TypeCourse, "course-1", 1, "WELCOME10")

		assert.Error(t, err)
		assert.Nil(t, result)
		discounts.AssertNotCalled(t, "ConsumeDiscount")
	})
}

func TestVerifyPayment(t *testing.T) {
	pendingPayment := func() *model.Payment {
		p := &model.Payment{
			UserID:         "user-1",
			OrderID:        "order-1",
			Amount:         499.50,
			Currency:       "INR",
			Status:         model.StatusPending,
			GatewayOrderID: "order_rzp1",
		}
		p.ID = "pay-1"
		return p
	}

	t.Run("Captured payment is marked success and fulfilled", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		gw := new(MockGateway)
		orders := new(MockOrderService)
		catalog := new(MockCatalog)
		fulfiller := new(MockFulfiller)
		service := newTestService(repo, gw, orders, catalog, fulfiller)

		repo.On("GetByGatewayOrderID", "order_rzp1").Return(pendingPayment(), nil)
		gw.On("VerifySignature", "order_rzp1", "pay_rzp1", "sig").Return(nil)
		gw.On("FetchPayment", "pay_rzp1").Return(&gateway.RemotePayment{
			ID: "pay_rzp1", OrderID: "order_rzp1", Status: "captured", Amount: 49950,
		}, nil)
		repo.On("MarkSuccess", "pay-1", "pay_rzp1", "sig", mock.Anything).Return(nil)

		order := &orderModel.Order{Type: orderModel.TypeCourse, ItemID: "course-1", UserID: "user-1"}
		order.ID = "order-1"
		orders.On("GetOrder", "order-1").Return(order, nil)
		fulfiller.On("ProcessSuccessfulPayment", mock.MatchedBy(func(p *model.Payment) bool {
			return p.Status == model.StatusSuccess && p.GatewayPaymentID == "pay_rzp1"
		}), order).Return(nil)

		payment, err := service.VerifyPayment("order_rzp1", "pay_rzp1", "sig")

		assert.NoError(t, err)
		assert.Equal(t, model.StatusSuccess, payment.Status)
		repo.AssertExpectations(t)
		fulfiller.AssertExpectations(t)
	})

	t.Run("Invalid signature marks payment and order failed", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		gw := new(MockGateway)
		orders := new(MockOrderService)
		catalog := new(MockCatalog)
		fulfiller := new(MockFulfiller)
		service := newTestService(repo, gw, orders, catalog, fulfiller)

		repo.On("GetByGatewayOrderID", "order_rzp1").Return(pendingPayment(), nil)
		gw.On("VerifySignature", "order_rzp1", "pay_rzp1", "bad").Return(gateway.ErrInvalidSignature)
		repo.On("MarkFailed", "pay-1", mock.Anything).Return(nil)
		orders.On("UpdateStatus", "order-1", orderModel.StatusFailed).Return(nil)

		payment, err := service.VerifyPayment("order_rzp1", "pay_rzp1", "bad")

		assert.ErrorIs(t, err, gateway.ErrInvalidSignature)
		assert.Nil(t, payment)
		repo.AssertExpectations(t)
		orders.AssertExpectations(t)
		fulfiller.AssertNotCalled(t, "ProcessSuccessfulPayment")
	})

	t.Run("Authorized but not captured payment is rejected", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		gw := new(MockGateway)
		orders := new(MockOrderService)
		catalog := new(MockCatalog)
		fulfiller := new(MockFulfiller)
		service := newTestService(repo, gw, orders, catalog, fulfiller)

		repo.On("GetByGatewayOrderID", "order_rzp1").Return(pendingPayment(), nil)
		gw.On("VerifySignature", "order_rzp1", "pay_rzp1", "sig").Return(nil)
		gw.On("FetchPayment", "pay_rzp1").Return(&gateway.RemotePayment{
			ID: "pay_rzp1", Status: "authorized",
		}, nil)

		payment, err := service.VerifyPayment("order_rzp1", "pay_rzp1", "sig")

		assert.ErrorIs(t, err, gateway.ErrNotCaptured)
		assert.Nil(t, payment)
		repo.AssertNotCalled(t, "MarkSuccess")
		fulfiller.AssertNotCalled(t, "ProcessSuccessfulPayment")
	})

	t.Run("Replay of a verified payment is a no-op", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		gw := new(MockGateway)
		orders := new(MockOrderService)
		catalog := new(MockCatalog)
		fulfiller := new(MockFulfiller)
		service := newTestService(repo, gw, orders, catalog, fulfiller)

		done := pendingPayment()
		done.Status = model.StatusSuccess
		repo.On("GetByGatewayOrderID", "order_rzp1").Return(done, nil)

		payment, err := service.VerifyPayment("order_rzp1", "pay_rzp1", "sig")

		assert.NoError(t, err)
		assert.Equal(t, model.StatusSuccess, payment.Status)
		gw.AssertNotCalled(t, "VerifySignature")
		fulfiller.AssertNotCalled(t, "ProcessSuccessfulPayment")
	})

	t.Run("Replay against a refunded payment does not revive it", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		gw := new(MockGateway)
		orders := new(MockOrderService)
		catalog := new(MockCatalog)
		fulfiller := new(MockFulfiller)
		service := newTestService(repo, gw, orders, catalog, fulfiller)

		refunded := pendingPayment()
		refunded.Status = model.StatusRefunded
		repo.On("GetByGatewayOrderID", "order_rzp1").Return(refunded, nil)

		payment, err := service.VerifyPayment("order_rzp1", "pay_rzp1", "sig")

		assert.ErrorIs(t, err, ErrPaymentClosed)
		assert.Nil(t, payment)
		repo.AssertNotCalled(t, "MarkSuccess")
		orders.AssertNotCalled(t, "UpdateStatus")
		fulfiller.AssertNotCalled(t, "ProcessSuccessfulPayment")
	})

	t.Run("Callback for a failed payment is rejected", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		gw := new(MockGateway)
		orders := new(MockOrderService)
		catalog := new(MockCatalog)
		fulfiller := new(MockFulfiller)
		service := newTestService(repo, gw, orders, catalog, fulfiller)

		failed := pendingPayment()
		failed.Status = model.StatusFailed
		repo.On("GetByGatewayOrderID", "order_rzp1").Return(failed, nil)

		payment, err := service.VerifyPayment("order_rzp1", "pay_rzp1", "sig")

		assert.ErrorIs(t, err, ErrPaymentClosed)
		assert.Nil(t, payment)
		repo.AssertNotCalled(t, "MarkSuccess")
		fulfiller.AssertNotCalled(t, "ProcessSuccessfulPayment")
	})
}

func TestHandleWebhook(t *testing.T) {
	capturedBody := []byte(`{"event":"payment.captured","payload":{"payment":{"entity":{"id":"pay_rzp1","order_id":"order_rzp1","status":"captured"}}}}`)

	t.Run("Invalid webhook signature is rejected before parsing", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		gw := new(MockGateway)
		orders := new(MockOrderService)
		catalog := new(MockCatalog)
		fulfiller := new(MockFulfiller)
		service := newTestService(repo, gw, orders, catalog, fulfiller)

		gw.On("VerifyWebhookSignature", capturedBody, "bad").Return(gateway.ErrInvalidSignature)

		err := service.HandleWebhook(capturedBody, "bad")

		assert.ErrorIs(t, err, gateway.ErrInvalidSignature)
		repo.AssertNotCalled(t, "GetByGatewayOrderID")
	})

	t.Run("Captured event fulfills a pending payment", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		gw := new(MockGateway)
		orders := new(MockOrderService)
		catalog := new(MockCatalog)
		fulfiller := new(MockFulfiller)
		service := newTestService(repo, gw, orders, catalog, fulfiller)

		payment := &model.Payment{OrderID: "order-1", Status: model.StatusPending, GatewayOrderID: "order_rzp1"}
		payment.ID = "pay-1"

		gw.On("VerifyWebhookSignature", capturedBody, "sig").Return(nil)
		repo.On("GetByGatewayOrderID", "order_rzp1").Return(payment, nil)
		repo.On("MarkSuccess", "pay-1", "pay_rzp1", "", mock.Anything).Return(nil)

		order := &orderModel.Order{Type: orderModel.TypeCourse}
		order.ID = "order-1"
		orders.On("GetOrder", "order-1").Return(order, nil)
		fulfiller.On("ProcessSuccessfulPayment", mock.Anything, order).Return(nil)

		err := service.HandleWebhook(capturedBody, "sig")

		assert.NoError(t, err)
		repo.AssertExpectations(t)
		fulfiller.AssertExpectations(t)
	})

	t.Run("Captured event after checkout verification is idempotent", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		gw := new(MockGateway)
		orders := new(MockOrderService)
		catalog := new(MockCatalog)
		fulfiller := new(MockFulfiller)
		service := newTestService(repo, gw, orders, catalog, fulfiller)

		payment := &model.Payment{OrderID: "order-1", Status: model.StatusSuccess, GatewayOrderID: "order_rzp1"}
		payment.ID = "pay-1"

		gw.On("VerifyWebhookSignature", capturedBody, "sig").Return(nil)
		repo.On("GetByGatewayOrderID", "order_rzp1").Return(payment, nil)

		err := service.HandleWebhook(capturedBody, "sig")

		assert.NoError(t, err)
		repo.AssertNotCalled(t, "MarkSuccess")
		fulfiller.AssertNotCalled(t, "ProcessSuccessfulPayment")
	})

	t.Run("Failed event marks payment and order failed", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		gw := new(MockGateway)
		orders := new(MockOrderService)
		catalog := new(MockCatalog)
		fulfiller := new(MockFulfiller)
		service := newTestService(repo, gw, orders, catalog, fulfiller)

		failedBody := []byte(`{"event":"payment.failed","payload":{"payment":{"entity":{"id":"pay_rzp1","order_id":"order_rzp1","status":"failed"}}}}`)
		payment := &model.Payment{OrderID: "order-1", Status: model.StatusPending, GatewayOrderID: "order_rzp1"}
		payment.ID = "pay-1"

		gw.On("VerifyWebhookSignature", failedBody, "sig").Return(nil)
		repo.On("GetByGatewayOrderID", "order_rzp1").Return(payment, nil)
		repo.On("MarkFailed", "pay-1", mock.Anything).Return(nil)
		orders.On("UpdateStatus", "order-1", orderModel.StatusFailed).Return(nil)

		err := service.HandleWebhook(failedBody, "sig")

		assert.NoError(t, err)
		repo.AssertExpectations(t)
		orders.AssertExpectations(t)
	})

	t.Run("Unknown gateway order is acknowledged and dropped", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		gw := new(MockGateway)
		orders := new(MockOrderService)
		catalog := new(MockCatalog)
		fulfiller := new(MockFulfiller)
		service := newTestService(repo, gw, orders, catalog, fulfiller)

		gw.On("VerifyWebhookSignature", capturedBody, "sig").Return(nil)
		repo.On("GetByGatewayOrderID", "order_rzp1").Return(nil, gorm.ErrRecordNotFound)

		err := service.HandleWebhook(capturedBody, "sig")

		assert.NoError(t, err)
	})
}

func TestRefundPayment(t *testing.T) {
	successPayment := func() *model.Payment {
		p := &model.Payment{
			UserID:           "user-1",
			OrderID:          "order-1",
			Amount:           499.50,
			Currency:         "INR",
			Status:           model.StatusSuccess,
			GatewayOrderID:   "order_rzp1",
			GatewayPaymentID: "pay_rzp1",
		}
		p.ID = "pay-1"
		return p
	}

	t.Run("Full refund moves payment and order to refunded together", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		gw := new(MockGateway)
		orders := new(MockOrderService)
		catalog := new(MockCatalog)
		fulfiller := new(MockFulfiller)
		service := newTestService(repo, gw, orders, catalog, fulfiller)

		refunded := successPayment()
		refunded.Status = model.StatusRefunded
		repo.On("GetByID", "pay-1").Return(successPayment(), nil).Once()
		gw.On("Refund", "pay_rzp1", int64(49950), mock.Anything).
			Return(&gateway.RemoteRefund{ID: "rfnd_1", Amount: 49950, Status: "processed"}, nil)
		repo.On("MarkRefunded", "pay-1", "rfnd_1", 499.50, "duplicate purchase").Return(nil)
		orders.On("UpdateStatus", "order-1", orderModel.StatusRefunded).Return(nil)
		repo.On("GetByID", "pay-1").Return(refunded, nil).Once()

		payment, err := service.RefundPayment("pay-1", 0, "duplicate purchase")

		assert.NoError(t, err)
		assert.Equal(t, model.StatusRefunded, payment.Status)
		repo.AssertExpectations(t)
		orders.AssertExpectations(t)
	})

	t.Run("Pending payment cannot be refunded", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		gw := new(MockGateway)
		orders := new(MockOrderService)
		catalog := new(MockCatalog)
		fulfiller := new(MockFulfiller)
		service := newTestService(repo, gw, orders, catalog, fulfiller)

		pending := successPayment()
		pending.Status = model.StatusPending
		repo.On("GetByID", "pay-1").Return(pending, nil)

		payment, err := service.RefundPayment("pay-1", 0, "")

		assert.ErrorIs(t, err, ErrNotRefundable)
		assert.Nil(t, payment)
		gw.AssertNotCalled(t, "Refund")
	})

	t.Run("Already refunded payment cannot be refunded again", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		gw := new(MockGateway)
		orders := new(MockOrderService)
		catalog := new(MockCatalog)
		fulfiller := new(MockFulfiller)
		service := newTestService(repo, gw, orders, catalog, fulfiller)

		refunded := successPayment()
		refunded.Status = model.StatusRefunded
		repo.On("GetByID", "pay-1").Return(refunded, nil)

		_, err := service.RefundPayment("pay-1", 0, "")

		assert.ErrorIs(t, err, ErrNotRefundable)
		gw.AssertNotCalled(t, "Refund")
	})

	t.Run("Partial refund above payment amount is rejected", func(t *testing.T) {
		repo := new(MockPaymentRepository)
		gw := new(MockGateway)
		orders := new(MockOrderService)
		catalog := new(MockCatalog)
		fulfiller := new(MockFulfiller)
		service := newTestService(repo, gw, orders, catalog, fulfiller)

		repo.On("GetByID", "pay-1").Return(successPayment(), nil)

		_, err := service.RefundPayment("pay-1", 999.99, "")

		assert.ErrorIs(t, err, ErrBadRefundAmount)
		gw.AssertNotCalled(t, "Refund")
	})
}
