package catalog

import (
	"lms_commerce/internal/domain/catalog/handler"
	"lms_commerce/internal/domain/catalog/repository"
	"lms_commerce/internal/domain/catalog/service"
	"lms_commerce/internal/pkg/middleware"
	"lms_commerce/internal/pkg/registry"
	"lms_commerce/pkg/cache"

	"github.com/gin-gonic/gin"
)

// CatalogModule provides courses, programs and subscription plans.
type CatalogModule struct{}

func init() {
	registry.Register(&CatalogModule{})
}

func (m *CatalogModule) Name() string {
	return "catalog"
}

func (m *CatalogModule) Priority() int {
	// Catalog has no dependencies and payment needs its prices.
	return 10
}

// GlobalCatalogService is consumed by the payment and enrollment modules.
var GlobalCatalogService service.CatalogService

func (m *CatalogModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewCatalogRepository(ctx.DB)
	GlobalCatalogService = service.NewCatalogService(repo, cache.NewRedisCache(ctx.Redis))
	h := handler.NewCatalogHandler(GlobalCatalogService)

	setupRoutes(ctx.Router, h)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.CatalogHandler) {
	g := r.Group("/api/catalog")

	// Public catalog browsing.
	g.GET("/courses", h.ListCourses)
	g.GET("/courses/:id", h.GetCourse)
	g.GET("/degree-programs", h.ListDegreePrograms)
	g.GET("/mentorships", h.ListMentorshipPrograms)
	g.GET("/plans", h.ListPlans)

	// Admin management.
	admin := g.Group("")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("/courses", h.CreateCourse)
		admin.PUT("/courses/:id", h.UpdateCourse)
		admin.POST("/degree-programs", h.CreateDegreeProgram)
		admin.POST("/mentorships", h.CreateMentorshipProgram)
		admin.POST("/plans", h.CreatePlan)
	}
}
