package blog

import (
	"lms_commerce/internal/domain/blog/handler"
	"lms_commerce/internal/domain/blog/repository"
	"lms_commerce/internal/domain/blog/service"
	"lms_commerce/internal/pkg/middleware"
	"lms_commerce/internal/pkg/registry"

	"github.com/gin-gonic/gin"
)

// BlogModule serves platform articles and discussion.
type BlogModule struct{}

func init() {
	registry.Register(&BlogModule{})
}

func (m *BlogModule) Name() string {
	return "blog"
}

func (m *BlogModule) Priority() int {
	return 50
}

func (m *BlogModule) Init(ctx *registry.ModuleContext) error {
	repo := repository.NewBlogRepository(ctx.DB)
	svc := service.NewBlogService(repo)
	h := handler.NewBlogHandler(svc)

	setupRoutes(ctx.Router, h)
	return nil
}

func setupRoutes(r *gin.Engine, h *handler.BlogHandler) {
	g := r.Group("/api/blog")

	// Public reading
	g.GET("/posts", h.GetFeed)
	g.GET("/posts/:id", h.GetPost)
	g.GET("/posts/:id/comments", h.GetComments)
	g.GET("/tags", h.GetTags)

	// Reader interactions
	auth := g.Group("")
	auth.Use(middleware.AuthMiddleware())
	{
		auth.POST("/posts/:id/comments", h.AddComment)
		auth.POST("/likes", h.ToggleLike)
	}

	// Editorial
	admin := g.Group("")
	admin.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		admin.POST("/posts", h.CreatePost)
		admin.GET("/drafts", h.GetDrafts)
		admin.PUT("/posts/:id/publish", h.PublishPost)
		admin.PUT("/posts/:id/archive", h.ArchivePost)
		admin.DELETE("/tags/:id", h.DeleteTag)
	}
}
