package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"lms_commerce/internal/pkg/config"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayGateway wraps the Razorpay SDK client.
type RazorpayGateway struct {
	client *razorpay.Client
	config config.RazorpayConfig
}

func NewRazorpayGateway() (*RazorpayGateway, error) {
	cfg := config.GlobalConfig.Razorpay
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, fmt.Errorf("razorpay config missing")
	}

	return &RazorpayGateway{
		client: razorpay.NewClient(cfg.KeyID, cfg.KeySecret),
		config: cfg,
	}, nil
}

func (g *RazorpayGateway) CreateRemoteOrder(amount int64, currency, receipt string, notes map[string]interface{}) (*RemoteOrder, error) {
	data := map[string]interface{}{
		"amount":   amount,
		"currency": currency,
		"receipt":  receipt,
	}
	if notes != nil {
		data["notes"] = notes
	}

	// SDK errors propagate unmodified; the caller surfaces them.
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return nil, err
	}

	return &RemoteOrder{
		ID:       asString(body["id"]),
		Amount:   asInt64(body["amount"]),
		Currency: asString(body["currency"]),
		Receipt:  asString(body["receipt"]),
	}, nil
}

// signPayload is the checkout signature base: "<orderID>|<paymentID>".
func signPayload(secret, payload string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

func (g *RazorpayGateway) VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) error {
	expected := signPayload(g.config.KeySecret, gatewayOrderID+"|"+gatewayPaymentID)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

func (g *RazorpayGateway) VerifyWebhookSignature(body []byte, signature string) error {
	expected := signPayload(g.config.WebhookSecret, string(body))
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrInvalidSignature
	}
	return nil
}

func (g *RazorpayGateway) FetchPayment(gatewayPaymentID string) (*RemotePayment, error) {
	body, err := g.client.Payment.Fetch(gatewayPaymentID, nil, nil)
	if err != nil {
		return nil, err
	}

	return &RemotePayment{
		ID:      asString(body["id"]),
		OrderID: asString(body["order_id"]),
		Amount:  asInt64(body["amount"]),
		Status:  asString(body["status"]),
		Method:  asString(body["method"]),
	}, nil
}

func (g *RazorpayGateway) Refund(gatewayPaymentID string, amount int64, notes map[string]interface{}) (*RemoteRefund, error) {
	data := map[string]interface{}{}
	if notes != nil {
		data["notes"] = notes
	}

	body, err := g.client.Payment.Refund(gatewayPaymentID, int(amount), data, nil)
	if err != nil {
		return nil, err
	}

	return &RemoteRefund{
		ID:        asString(body["id"]),
		PaymentID: asString(body["payment_id"]),
		Amount:    asInt64(body["amount"]),
		Status:    asString(body["status"]),
	}, nil
}

// The SDK returns decoded JSON maps; numbers arrive as float64.

func asString(v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	}
	return 0
}

var _ Gateway = (*RazorpayGateway)(nil)
