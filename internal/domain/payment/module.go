package payment

import (
	"lms_commerce/internal/domain/catalog"
	"lms_commerce/internal/domain/enrollment"
	"lms_commerce/internal/domain/order"
	"lms_commerce/internal/domain/payment/gateway"
	"lms_commerce/internal/domain/payment/handler"
	"lms_commerce/internal/domain/payment/repository"
	"lms_commerce/internal/domain/payment/service"
	"lms_commerce/internal/domain/promo"
	"lms_commerce/internal/pkg/config"
	"lms_commerce/internal/pkg/middleware"
	"lms_commerce/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// PaymentModule drives checkout, verification, webhooks and refunds.
type PaymentModule struct{}

func init() {
	registry.Register(&PaymentModule{})
}

func (m *PaymentModule) Name() string {
	return "payment"
}

// Initializes after catalog, promo, order and enrollment, whose global
// services it wires together.
func (m *PaymentModule) Priority() int {
	return 30
}

var GlobalPaymentService service.PaymentService

func (m *PaymentModule) Init(ctx *registry.ModuleContext) error {
	gw, err := gateway.NewRazorpayGateway()
	if err != nil {
		return err
	}

	repo := repository.NewPaymentRepository(ctx.DB)
	GlobalPaymentService = service.NewPaymentService(
		repo,
		gw,
		order.GlobalOrderService,
		catalog.GlobalCatalogService,
		enrollment.GlobalFulfillmentService,
		promo.GlobalPromoService,
		config.GlobalConfig.Razorpay.KeyID,
	)
	h := handler.NewPaymentHandler(GlobalPaymentService)

	setupRoutes(ctx.Router, h)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.PaymentHandler) {
	// Webhook carries its own signature; it must stay outside auth.
	r.POST("/api/payments/webhook", h.Webhook)

	g := r.Group("/api/payments")
	g.Use(middleware.AuthMiddleware())
	{
		g.POST("/checkout", h.Checkout)
		g.POST("/verify", h.Verify)
		g.GET("/order/:orderId", h.GetByOrder)

		admin := g.Group("/admin")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("/:id/refund", h.Refund)
		}
	}
}
