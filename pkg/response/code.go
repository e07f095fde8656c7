package response

// Business status codes.
const (
	CodeSuccess = 0
	CodeError   = 1

	// Auth errors 100xx
	ErrTokenInvalid = 10001
	ErrNoPermission = 10002

	// Catalog errors 200xx
	ErrItemNotFound     = 20001
	ErrItemNotPublished = 20002
	ErrPlanNotFound     = 20003

	// Order errors 300xx
	ErrOrderNotFound = 30001

	// Payment errors 400xx
	ErrPaymentNotFound      = 40001
	ErrInvalidSignature     = 40002
	ErrPaymentNotCaptured   = 40003
	ErrPaymentNotRefundable = 40004
	ErrGatewayFailure       = 40005
	ErrPaymentClosed        = 40006

	// Promo errors 600xx
	ErrDiscountOutOfStock = 60001
	ErrDiscountClaimed    = 60002
	ErrDiscountInvalid    = 60003

	// Blog errors 700xx
	ErrPostNotFound     = 70001
	ErrPostNotPublished = 70002

	// System errors 500xx
	ErrServerInternal  = 50001
	ErrInvalidParam    = 50002
	ErrTooManyRequests = 50003
)
