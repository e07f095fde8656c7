package promo

import (
	"lms_commerce/internal/domain/promo/handler"
	"lms_commerce/internal/domain/promo/repository"
	"lms_commerce/internal/domain/promo/service"
	"lms_commerce/internal/pkg/middleware"
	"lms_commerce/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// PromoModule provides referral/discount codes.
type PromoModule struct{}

func init() {
	registry.Register(&PromoModule{})
}

func (m *PromoModule) Name() string {
	return "promo"
}

func (m *PromoModule) Priority() int {
	return 15
}

// GlobalPromoService is exposed so the payment module can apply codes at
// checkout without spinning up a second worker pool.
var GlobalPromoService service.PromoService

func (m *PromoModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewPromoRepository(ctx.DB)
	GlobalPromoService = service.NewPromoService(repo, ctx.Redis)
	h := handler.NewPromoHandler(GlobalPromoService)

	setupRoutes(ctx.Router, h)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.PromoHandler) {
	g := r.Group("/api/discounts")

	authorized := g.Group("")
	authorized.Use(middleware.AuthMiddleware())
	{
		authorized.POST("/:code/claim", h.ClaimDiscount)

		admin := authorized.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("/", h.CreateDiscount)
		}
	}
}
