package handler

import (
	"errors"
	"net/http"

	"lms_commerce/internal/domain/blog/service"
	"lms_commerce/internal/pkg/middleware"
	"lms_commerce/pkg/response"
	"lms_commerce/pkg/utils"

	"github.com/gin-gonic/gin"
)

type BlogHandler struct {
	service service.BlogService
}

func NewBlogHandler(s service.BlogService) *BlogHandler {
	return &BlogHandler{service: s}
}

type createPostRequest struct {
	Title    string   `json:"title" binding:"required"`
	Content  string   `json:"content" binding:"required"`
	CoverURL string   `json:"coverUrl"`
	Tags     []string `json:"tags"`
}

type commentRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentID string `json:"parentId"`
}

type likeRequest struct {
	TargetID   string `json:"targetId" binding:"required"`
	TargetType string `json:"targetType" binding:"required,oneof=post comment"`
}

// CreatePost stores a draft post (admin).
func (h *BlogHandler) CreatePost(c *gin.Context) {
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	post, err := h.service.CreatePost(middleware.GetUserID(c), req.Title, req.Content, req.CoverURL, req.Tags)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Created(c, post)
}

// PublishPost moves a draft to published (admin).
func (h *BlogHandler) PublishPost(c *gin.Context) {
	if err := h.service.PublishPost(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrPostNotFound, "Post not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, "success")
}

// ArchivePost retires a post from the feed (admin).
func (h *BlogHandler) ArchivePost(c *gin.Context) {
	if err := h.service.ArchivePost(c.Param("id")); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrPostNotFound, "Post not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, "success")
}

// GetFeed returns published posts, optionally filtered by tag.
func (h *BlogHandler) GetFeed(c *gin.Context) {
	var p utils.Pagination
	_ = c.ShouldBindQuery(&p)
	_, limit := p.GetPageOffset()

	posts, total, err := h.service.GetFeed(c.Query("tag"), p.Page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, utils.PageResult{List: posts, Total: total, Page: p.Page, Limit: limit})
}

// GetDrafts returns unpublished posts (admin).
func (h *BlogHandler) GetDrafts(c *gin.Context) {
	var p utils.Pagination
	_ = c.ShouldBindQuery(&p)
	_, limit := p.GetPageOffset()

	posts, total, err := h.service.GetDrafts(p.Page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, utils.PageResult{List: posts, Total: total, Page: p.Page, Limit: limit})
}

// GetPost returns a single published post.
func (h *BlogHandler) GetPost(c *gin.Context) {
	post, err := h.service.GetPost(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrPostNotFound, "Post not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, post)
}

// AddComment comments on a published post.
func (h *BlogHandler) AddComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	comment, err := h.service.AddComment(middleware.GetUserID(c), c.Param("id"), req.Content, req.ParentID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			response.Error(c, http.StatusNotFound, response.ErrPostNotFound, "Post not found")
		case errors.Is(err, service.ErrPostNotPublished):
			response.Error(c, http.StatusUnprocessableEntity, response.ErrPostNotPublished, "Cannot comment on an unpublished post")
		default:
			response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		}
		return
	}
	response.Created(c, comment)
}

// GetComments lists a post's comments.
func (h *BlogHandler) GetComments(c *gin.Context) {
	var p utils.Pagination
	_ = c.ShouldBindQuery(&p)
	_, limit := p.GetPageOffset()

	comments, total, err := h.service.GetPostComments(c.Param("id"), p.Page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, utils.PageResult{List: comments, Total: total, Page: p.Page, Limit: limit})
}

// ToggleLike flips the caller's like on a post or comment.
func (h *BlogHandler) ToggleLike(c *gin.Context) {
	var req likeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	liked, err := h.service.ToggleLike(middleware.GetUserID(c), req.TargetID, req.TargetType)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, gin.H{"liked": liked})
}

// GetTags lists tags, optionally filtered by keyword.
func (h *BlogHandler) GetTags(c *gin.Context) {
	var p utils.Pagination
	_ = c.ShouldBindQuery(&p)
	_, limit := p.GetPageOffset()

	tags, total, err := h.service.GetTagList(c.Query("keyword"), p.Page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, utils.PageResult{List: tags, Total: total, Page: p.Page, Limit: limit})
}

// DeleteTag removes a tag (admin).
func (h *BlogHandler) DeleteTag(c *gin.Context) {
	if err := h.service.DeleteTag(c.Param("id")); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, "success")
}
