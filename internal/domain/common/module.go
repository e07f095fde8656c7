package common

import (
	"context"
	"net/http"
	"time"

	"lms_commerce/internal/pkg/registry"
	"lms_commerce/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CommonModule registers cross-cutting routes.
type CommonModule struct{}

func init() {
	registry.Register(&CommonModule{})
}

func (m *CommonModule) Name() string {
	return "common"
}

// Last, after every feature module.
func (m *CommonModule) Priority() int {
	return 100
}

func (m *CommonModule) Init(ctx *registry.ModuleContext) error {
	setupRoutes(ctx.Router, ctx.DB, ctx.Redis)
	return nil
}

func setupRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client) {
	r.GET("/healthz", func(c *gin.Context) {
		checkCtx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		status := gin.H{"database": "up", "redis": "up"}
		healthy := true

		if sqlDB, err := db.DB(); err != nil || sqlDB.PingContext(checkCtx) != nil {
			status["database"] = "down"
			healthy = false
		}
		if err := rdb.Ping(checkCtx).Err(); err != nil {
			status["redis"] = "down"
			healthy = false
		}

		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, response.ErrServerInternal, "dependency down")
			return
		}
		response.Success(c, status)
	})
}
