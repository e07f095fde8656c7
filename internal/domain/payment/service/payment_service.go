package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	catalogModel "lms_commerce/internal/domain/catalog/model"
	orderModel "lms_commerce/internal/domain/order/model"
	orderService "lms_commerce/internal/domain/order/service"
	"lms_commerce/internal/domain/payment/gateway"
	"lms_commerce/internal/domain/payment/model"
	"lms_commerce/internal/domain/payment/repository"
	"lms_commerce/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	ErrItemNotFound     = errors.New("item not found")
	ErrItemNotPublished = errors.New("item is not available for purchase")
	ErrPaymentNotFound  = errors.New("payment not found")
	ErrPaymentClosed    = errors.New("payment is already closed")
	ErrNotRefundable    = errors.New("payment is not refundable")
	ErrBadRefundAmount  = errors.New("refund amount exceeds payment amount")
)

// CatalogProvider is the slice of the catalog checkout needs for pricing.
type CatalogProvider interface {
	GetCourse(id string) (*catalogModel.Course, error)
	GetDegreeProgram(id string) (*catalogModel.DegreeProgram, error)
	GetMentorshipProgram(id string) (*catalogModel.MentorshipProgram, error)
	GetPlan(id string) (*catalogModel.Plan, error)
}

// Fulfiller hands a verified payment to the enrollment dispatcher.
type Fulfiller interface {
	ProcessSuccessfulPayment(payment *model.Payment, order *orderModel.Order) error
}

// DiscountApplier prices a claimed discount code and, once checkout holds a
// gateway order, consumes it.
type DiscountApplier interface {
	ApplyDiscount(userID, code string, amount float64) (float64, error)
	ConsumeDiscount(userID, code string) error
}

// CheckoutResult is what the client needs to open the gateway widget.
type CheckoutResult struct {
	Order          *orderModel.Order `json:"order"`
	PaymentID      string            `json:"paymentId"`
	GatewayOrderID string            `json:"gatewayOrderId"`
	Amount         int64             `json:"amount"` // minor currency units
	Currency       string            `json:"currency"`
	KeyID          string            `json:"keyId"`
}

type PaymentService interface {
	Checkout(userID, orderType, itemID string, quantity int, discountCode string) (*CheckoutResult, error)
	VerifyPayment(gatewayOrderID, gatewayPaymentID, signature string) (*model.Payment, error)
	HandleWebhook(body []byte, signature string) error
	RefundPayment(paymentID string, amount float64, reason string) (*model.Payment, error)
	GetPaymentByOrderID(orderID string) (*model.Payment, error)
}

type paymentService struct {
	repo      repository.PaymentRepository
	gw        gateway.Gateway
	orders    orderService.OrderService
	catalog   CatalogProvider
	fulfiller Fulfiller
	discounts DiscountApplier // nil disables discount codes
	keyID     string
}

func NewPaymentService(
	repo repository.PaymentRepository,
	gw gateway.Gateway,
	orders orderService.OrderService,
	catalog CatalogProvider,
	fulfiller Fulfiller,
	discounts DiscountApplier,
	keyID string,
) PaymentService {
	return &paymentService{
		repo:      repo,
		gw:        gw,
		orders:    orders,
		catalog:   catalog,
		fulfiller: fulfiller,
		discounts: discounts,
		keyID:     keyID,
	}
}

func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// resolveItem prices the purchase by order type.
func (s *paymentService) resolveItem(orderType, itemID string) (title string, price float64, currency string, err error) {
	switch orderType {
	case orderModel.TypeCourse:
		course, err := s.catalog.GetCourse(itemID)
		if err != nil {
			return "", 0, "", mapNotFound(err)
		}
		if !course.Published {
			return "", 0, "", ErrItemNotPublished
		}
		return course.Title, course.Price, course.Currency, nil

	case orderModel.TypeDegreeProgram:
		program, err := s.catalog.GetDegreeProgram(itemID)
		if err != nil {
			return "", 0, "", mapNotFound(err)
		}
		if !program.Published {
			return "", 0, "", ErrItemNotPublished
		}
		return program.Title, program.Price, program.Currency, nil

	case orderModel.TypeMentorship:
		program, err := s.catalog.GetMentorshipProgram(itemID)
		if err != nil {
			return "", 0, "", mapNotFound(err)
		}
		if !program.Published {
			return "", 0, "", ErrItemNotPublished
		}
		return program.Title, program.Price, program.Currency, nil

	case orderModel.TypeSubscription:
		plan, err := s.catalog.GetPlan(itemID)
		if err != nil {
			return "", 0, "", mapNotFound(err)
		}
		if !plan.Active {
			return "", 0, "", ErrItemNotPublished
		}
		return plan.Name, plan.Price, plan.Currency, nil
	}

	return "", 0, "", errors.New("unknown order type")
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrItemNotFound
	}
	return err
}

// Checkout creates the local order and payment records and registers the
// order at the gateway. Gateway failures propagate unmodified; the local
// order stays PENDING for later inspection.
func (s *paymentService) Checkout(userID, orderType, itemID string, quantity int, discountCode string) (*CheckoutResult, error) {
	title, unitPrice, currency, err := s.resolveItem(orderType, itemID)
	if err != nil {
		return nil, err
	}

	if discountCode != "" && s.discounts != nil {
		discounted, err := s.discounts.ApplyDiscount(userID, discountCode, unitPrice)
		if err != nil {
			return nil, err
		}
		unitPrice = discounted
	}

	order, err := s.orders.CreateOrder(userID, orderType, itemID, title, quantity, unitPrice, currency)
	if err != nil {
		return nil, err
	}

	remoteOrder, err := s.gw.CreateRemoteOrder(
		toMinorUnits(order.TotalAmount),
		order.Currency,
		order.OrderNumber,
		map[string]interface{}{
			"order_number": order.OrderNumber,
			"order_type":   order.Type,
			"item_id":      order.ItemID,
		},
	)
	if err != nil {
		return nil, err
	}

	// The gateway order exists, so the claim is burned only now. A failed
	// checkout before this point leaves the code claimable.
	if discountCode != "" && s.discounts != nil {
		if err := s.discounts.ConsumeDiscount(userID, discountCode); err != nil && logger.Log != nil {
			logger.Log.Error("failed to consume discount code",
				zap.String("user_id", userID), zap.String("code", discountCode), zap.Error(err))
		}
	}

	payment := &model.Payment{
		UserID:         userID,
		OrderID:        order.ID,
		Amount:         order.TotalAmount,
		Currency:       order.Currency,
		Status:         model.StatusPending,
		GatewayOrderID: remoteOrder.ID,
	}
	if err := s.repo.Create(payment); err != nil {
		return nil, err
	}

	return &CheckoutResult{
		Order:          order,
		PaymentID:      payment.ID,
		GatewayOrderID: remoteOrder.ID,
		Amount:         toMinorUnits(order.TotalAmount),
		Currency:       order.Currency,
		KeyID:          s.keyID,
	}, nil
}

// VerifyPayment handles the checkout callback: recheck the signature,
// confirm capture at the gateway, then fan out to fulfillment.
func (s *paymentService) VerifyPayment(gatewayOrderID, gatewayPaymentID, signature string) (*model.Payment, error) {
	payment, err := s.repo.GetByGatewayOrderID(gatewayOrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	// Replays of an already verified payment are no-ops. FAILED and
	// REFUNDED are terminal; a late callback must not revive them.
	switch payment.Status {
	case model.StatusSuccess:
		return payment, nil
	case model.StatusFailed, model.StatusRefunded:
		return nil, ErrPaymentClosed
	}

	if err := s.gw.VerifySignature(gatewayOrderID, gatewayPaymentID, signature); err != nil {
		if markErr := s.repo.MarkFailed(payment.ID, nil); markErr != nil && logger.Log != nil {
			logger.Log.Error("failed to mark payment failed", zap.String("payment_id", payment.ID), zap.Error(markErr))
		}
		if orderErr := s.orders.UpdateStatus(payment.OrderID, orderModel.StatusFailed); orderErr != nil && logger.Log != nil {
			logger.Log.Error("failed to mark order failed", zap.String("order_id", payment.OrderID), zap.Error(orderErr))
		}
		return nil, err
	}

	remotePayment, err := s.gw.FetchPayment(gatewayPaymentID)
	if err != nil {
		return nil, err
	}
	if remotePayment.Status != "captured" {
		return nil, gateway.ErrNotCaptured
	}

	metadata, _ := json.Marshal(remotePayment)
	if err := s.repo.MarkSuccess(payment.ID, gatewayPaymentID, signature, metadata); err != nil {
		return nil, err
	}
	payment.Status = model.StatusSuccess
	payment.GatewayPaymentID = gatewayPaymentID
	payment.GatewaySignature = signature
	payment.Metadata = metadata

	order, err := s.orders.GetOrder(payment.OrderID)
	if err != nil {
		// Payment is recorded but the order could not be loaded for
		// fulfillment; surfaced for manual follow-up.
		return nil, fmt.Errorf("payment recorded but order lookup failed: %w", err)
	}

	if err := s.fulfiller.ProcessSuccessfulPayment(payment, order); err != nil {
		return nil, fmt.Errorf("payment recorded but fulfillment failed: %w", err)
	}

	return payment, nil
}

// webhookEvent is the subset of the gateway webhook body we act on.
type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Status  string `json:"status"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// HandleWebhook processes gateway webhooks. Signature is over the raw body.
func (s *paymentService) HandleWebhook(body []byte, signature string) error {
	if err := s.gw.VerifyWebhookSignature(body, signature); err != nil {
		return err
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return fmt.Errorf("malformed webhook body: %w", err)
	}

	entity := event.Payload.Payment.Entity
	if entity.OrderID == "" {
		return nil
	}

	payment, err := s.repo.GetByGatewayOrderID(entity.OrderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Webhook for an order we do not know; acknowledged and dropped.
			if logger.Log != nil {
				logger.Log.Warn("webhook for unknown gateway order", zap.String("gateway_order_id", entity.OrderID))
			}
			return nil
		}
		return err
	}

	switch event.Event {
	case "payment.captured":
		if payment.Status == model.StatusSuccess || payment.Status == model.StatusRefunded {
			return nil
		}

		metadata, _ := json.Marshal(entity)
		if err := s.repo.MarkSuccess(payment.ID, entity.ID, "", metadata); err != nil {
			return err
		}
		payment.Status = model.StatusSuccess
		payment.GatewayPaymentID = entity.ID

		order, err := s.orders.GetOrder(payment.OrderID)
		if err != nil {
			return err
		}
		return s.fulfiller.ProcessSuccessfulPayment(payment, order)

	case "payment.failed":
		if payment.Status != model.StatusPending {
			return nil
		}
		metadata, _ := json.Marshal(entity)
		if err := s.repo.MarkFailed(payment.ID, metadata); err != nil {
			return err
		}
		return s.orders.UpdateStatus(payment.OrderID, orderModel.StatusFailed)
	}

	// Unhandled event types are acknowledged.
	return nil
}

// RefundPayment refunds a successful payment, fully or partially, and moves
// Payment and Order to REFUNDED together.
func (s *paymentService) RefundPayment(paymentID string, amount float64, reason string) (*model.Payment, error) {
	payment, err := s.repo.GetByID(paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}

	if payment.Status != model.StatusSuccess {
		return nil, ErrNotRefundable
	}

	refundAmount := amount
	if refundAmount <= 0 {
		refundAmount = payment.Amount
	}
	if refundAmount > payment.Amount {
		return nil, ErrBadRefundAmount
	}

	notes := map[string]interface{}{}
	if reason != "" {
		notes["reason"] = reason
	}

	refund, err := s.gw.Refund(payment.GatewayPaymentID, toMinorUnits(refundAmount), notes)
	if err != nil {
		return nil, err
	}

	// No compensation path: if these writes fail after the gateway refund
	// succeeded, the refund exists remotely and the records need manual fixing.
	if err := s.repo.MarkRefunded(payment.ID, refund.ID, refundAmount, reason); err != nil {
		return nil, fmt.Errorf("refund succeeded at gateway but payment update failed: %w", err)
	}
	if err := s.orders.UpdateStatus(payment.OrderID, orderModel.StatusRefunded); err != nil {
		return nil, fmt.Errorf("refund succeeded at gateway but order update failed: %w", err)
	}

	return s.repo.GetByID(payment.ID)
}

func (s *paymentService) GetPaymentByOrderID(orderID string) (*model.Payment, error) {
	payment, err := s.repo.GetByOrderID(orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return payment, nil
}
