package enrollment

import (
	"lms_commerce/internal/domain/catalog"
	"lms_commerce/internal/domain/enrollment/handler"
	"lms_commerce/internal/domain/enrollment/repository"
	"lms_commerce/internal/domain/enrollment/service"
	orderRepository "lms_commerce/internal/domain/order/repository"
	"lms_commerce/internal/pkg/middleware"
	"lms_commerce/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// EnrollmentModule grants access after payment and serves the read side.
type EnrollmentModule struct{}

func init() {
	registry.Register(&EnrollmentModule{})
}

func (m *EnrollmentModule) Name() string {
	return "enrollment"
}

// Initializes before the payment module, which consumes the dispatcher.
func (m *EnrollmentModule) Priority() int {
	return 25
}

// GlobalFulfillmentService is consumed by the payment module after a
// payment is verified.
var GlobalFulfillmentService service.FulfillmentService

func (m *EnrollmentModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewEnrollmentRepository(ctx.DB)
	orderRepo := orderRepository.NewOrderRepository(ctx.DB)
	GlobalFulfillmentService = service.NewFulfillmentService(repo, orderRepo, catalog.GlobalCatalogService)
	h := handler.NewEnrollmentHandler(GlobalFulfillmentService)

	setupRoutes(ctx.Router, h)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.EnrollmentHandler) {
	g := r.Group("/api/enrollments")
	g.Use(middleware.AuthMiddleware())
	{
		g.GET("/courses", h.ListMyCourses)
		g.GET("/degrees", h.ListMyDegrees)
		g.GET("/mentorships", h.ListMyMentorships)
		g.GET("/subscription", h.GetMySubscription)
	}
}
