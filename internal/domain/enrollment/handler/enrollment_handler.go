package handler

import (
	"errors"
	"net/http"

	"lms_commerce/internal/domain/enrollment/service"
	"lms_commerce/internal/pkg/middleware"
	"lms_commerce/pkg/response"
	"lms_commerce/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type EnrollmentHandler struct {
	service service.FulfillmentService
}

func NewEnrollmentHandler(s service.FulfillmentService) *EnrollmentHandler {
	return &EnrollmentHandler{service: s}
}

// ListMyCourses returns the caller's course enrollments.
func (h *EnrollmentHandler) ListMyCourses(c *gin.Context) {
	var p utils.Pagination
	_ = c.ShouldBindQuery(&p)
	_, limit := p.GetPageOffset()

	list, total, err := h.service.ListEnrollments(middleware.GetUserID(c), p.Page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, utils.PageResult{List: list, Total: total, Page: p.Page, Limit: limit})
}

// ListMyDegrees returns the caller's degree program enrollments.
func (h *EnrollmentHandler) ListMyDegrees(c *gin.Context) {
	var p utils.Pagination
	_ = c.ShouldBindQuery(&p)
	_, limit := p.GetPageOffset()

	list, total, err := h.service.ListDegreeEnrollments(middleware.GetUserID(c), p.Page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, utils.PageResult{List: list, Total: total, Page: p.Page, Limit: limit})
}

// ListMyMentorships returns the caller's mentorship enrollments.
func (h *EnrollmentHandler) ListMyMentorships(c *gin.Context) {
	var p utils.Pagination
	_ = c.ShouldBindQuery(&p)
	_, limit := p.GetPageOffset()

	list, total, err := h.service.ListMentorshipEnrollments(middleware.GetUserID(c), p.Page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, utils.PageResult{List: list, Total: total, Page: p.Page, Limit: limit})
}

// GetMySubscription returns the caller's active subscription, if any.
func (h *EnrollmentHandler) GetMySubscription(c *gin.Context) {
	sub, err := h.service.GetActiveSubscription(middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Success(c, nil)
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, sub)
}
