package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"lms_commerce/internal/domain/order/model"
	"lms_commerce/internal/domain/order/repository"

	"github.com/google/uuid"
)

type OrderService interface {
	CreateOrder(userID, orderType, itemID, itemTitle string, quantity int, unitPrice float64, currency string) (*model.Order, error)
	GetOrder(id string) (*model.Order, error)
	GetOrderByNumber(orderNumber string) (*model.Order, error)
	UpdateStatus(id string, status string) error
	ListOrders(filter repository.OrderFilter, page, limit int) ([]model.Order, int64, error)
}

type orderService struct {
	repo repository.OrderRepository
}

func NewOrderService(repo repository.OrderRepository) OrderService {
	return &orderService{repo: repo}
}

// GenerateOrderNumber builds ORD-<unix-millis>-<9 uppercase alphanumerics>.
func GenerateOrderNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:9]
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}

func (s *orderService) CreateOrder(userID, orderType, itemID, itemTitle string, quantity int, unitPrice float64, currency string) (*model.Order, error) {
	if !model.ValidType(orderType) {
		return nil, errors.New("unknown order type")
	}
	if quantity <= 0 {
		quantity = 1
	}
	if currency == "" {
		currency = "INR"
	}

	order := &model.Order{
		UserID:      userID,
		OrderNumber: GenerateOrderNumber(),
		Type:        orderType,
		ItemID:      itemID,
		ItemTitle:   itemTitle,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalAmount: unitPrice * float64(quantity),
		Currency:    currency,
		Status:      model.StatusPending,
	}

	if err := s.repo.Create(order); err != nil {
		return nil, err
	}
	return order, nil
}

func (s *orderService) GetOrder(id string) (*model.Order, error) {
	return s.repo.GetByID(id)
}

func (s *orderService) GetOrderByNumber(orderNumber string) (*model.Order, error) {
	return s.repo.GetByOrderNumber(orderNumber)
}

func (s *orderService) UpdateStatus(id string, status string) error {
	return s.repo.UpdateStatus(id, status)
}

func (s *orderService) ListOrders(filter repository.OrderFilter, page, limit int) ([]model.Order, int64, error) {
	offset := (page - 1) * limit
	return s.repo.GetList(filter, offset, limit)
}
