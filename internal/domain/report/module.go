package report

import (
	"lms_commerce/internal/domain/report/handler"
	"lms_commerce/internal/domain/report/repository"
	"lms_commerce/internal/pkg/middleware"
	"lms_commerce/internal/pkg/registry"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// ReportModule serves sales aggregates to the back office.
type ReportModule struct{}

func init() {
	registry.Register(&ReportModule{})
}

func (m *ReportModule) Name() string {
	return "report"
}

func (m *ReportModule) Priority() int {
	return 60
}

func (m *ReportModule) Init(ctx *registry.ModuleContext) error {
	sqlDB, err := ctx.DB.DB()
	if err != nil {
		return err
	}

	// Reports query the same pool through sqlx for raw SQL.
	repo := repository.NewReportRepository(sqlx.NewDb(sqlDB, "postgres"))
	h := handler.NewReportHandler(repo)

	setupRoutes(ctx.Router, h)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.ReportHandler) {
	g := r.Group("/api/reports")
	g.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		g.GET("/sales", h.SalesSummary)
		g.GET("/revenue-by-type", h.RevenueByType)
		g.GET("/daily-revenue", h.DailyRevenue)
		g.GET("/top-items", h.TopItems)
	}
}
