package gateway

import "errors"

// Errors the verification path can return.
var (
	ErrInvalidSignature = errors.New("invalid payment signature")
	ErrNotCaptured      = errors.New("payment not captured at gateway")
)

// RemoteOrder is the gateway-side order created for a checkout.
type RemoteOrder struct {
	ID       string
	Amount   int64 // minor currency units
	Currency string
	Receipt  string
}

// RemotePayment is the gateway's view of a payment.
type RemotePayment struct {
	ID      string
	OrderID string
	Amount  int64 // minor currency units
	Status  string
	Method  string
}

// RemoteRefund is the gateway's refund record.
type RemoteRefund struct {
	ID        string
	PaymentID string
	Amount    int64 // minor currency units
	Status    string
}

// Gateway abstracts the external payment processor. The concrete
// implementation wraps the Razorpay SDK; tests substitute a mock.
type Gateway interface {
	// CreateRemoteOrder registers the order at the gateway. amount is in
	// minor currency units (paise for INR). notes travel as order metadata.
	CreateRemoteOrder(amount int64, currency, receipt string, notes map[string]interface{}) (*RemoteOrder, error)

	// VerifySignature checks the checkout callback signature:
	// HMAC-SHA256 over "<gatewayOrderID>|<gatewayPaymentID>" with the key secret.
	VerifySignature(gatewayOrderID, gatewayPaymentID, signature string) error

	// VerifyWebhookSignature checks the webhook body signature
	// (HMAC-SHA256 of the raw body with the webhook secret).
	VerifyWebhookSignature(body []byte, signature string) error

	// FetchPayment reads the payment's current state from the gateway.
	FetchPayment(gatewayPaymentID string) (*RemotePayment, error)

	// Refund refunds amount minor units of the payment; amount 0 means full.
	Refund(gatewayPaymentID string, amount int64, notes map[string]interface{}) (*RemoteRefund, error)
}
