package order

import (
	"lms_commerce/internal/domain/order/handler"
	"lms_commerce/internal/domain/order/repository"
	"lms_commerce/internal/domain/order/service"
	"lms_commerce/internal/pkg/middleware"
	"lms_commerce/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// OrderModule tracks purchase intents.
type OrderModule struct{}

func init() {
	registry.Register(&OrderModule{})
}

func (m *OrderModule) Name() string {
	return "order"
}

func (m *OrderModule) Priority() int {
	return 20
}

// GlobalOrderService is consumed by the payment module at checkout.
var GlobalOrderService service.OrderService

func (m *OrderModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewOrderRepository(ctx.DB)
	GlobalOrderService = service.NewOrderService(repo)
	h := handler.NewOrderHandler(GlobalOrderService)

	setupRoutes(ctx.Router, h)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.OrderHandler) {
	g := r.Group("/api/orders")
	g.Use(middleware.AuthMiddleware())
	{
		g.GET("/", h.ListMyOrders)
		g.GET("/:orderNumber", h.GetMyOrder)

		admin := g.Group("/admin")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.GET("/", h.ListOrders)
		}
	}
}
