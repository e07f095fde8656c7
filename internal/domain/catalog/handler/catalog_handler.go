package handler

import (
	"errors"
	"net/http"
	"strconv"

	"lms_commerce/internal/domain/catalog/model"
	"lms_commerce/internal/domain/catalog/repository"
	"lms_commerce/internal/domain/catalog/service"
	"lms_commerce/pkg/response"
	"lms_commerce/pkg/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CatalogHandler struct {
	service service.CatalogService
}

func NewCatalogHandler(s service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: s}
}

// buildCourseFilter maps query parameters onto the typed filter.
func buildCourseFilter(c *gin.Context, publishedOnly bool) repository.CourseFilter {
	filter := repository.CourseFilter{
		Category:      c.Query("category"),
		Level:         c.Query("level"),
		PublishedOnly: publishedOnly,
	}
	if v := c.Query("minPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MinPrice = &f
		}
	}
	if v := c.Query("maxPrice"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filter.MaxPrice = &f
		}
	}
	return filter
}

// ListCourses returns published courses with optional filters.
func (h *CatalogHandler) ListCourses(c *gin.Context) {
	var p utils.Pagination
	_ = c.ShouldBindQuery(&p)
	_, limit := p.GetPageOffset()

	courses, total, err := h.service.ListCourses(buildCourseFilter(c, true), p.Page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, utils.PageResult{List: courses, Total: total, Page: p.Page, Limit: limit})
}

// GetCourse returns a single course (cached).
func (h *CatalogHandler) GetCourse(c *gin.Context) {
	course, err := h.service.GetCourse(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrItemNotFound, "Course not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, course)
}

type CreateCourseInput struct {
	Title       string  `json:"title" binding:"required"`
	Slug        string  `json:"slug" binding:"required"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Level       string  `json:"level" binding:"omitempty,oneof=beginner intermediate advanced"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Currency    string  `json:"currency"`
	Published   bool    `json:"published"`
}

// CreateCourse creates a course (admin).
func (h *CatalogHandler) CreateCourse(c *gin.Context) {
	var input CreateCourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	course := &model.Course{
		Title:       input.Title,
		Slug:        input.Slug,
		Description: input.Description,
		Category:    input.Category,
		Level:       input.Level,
		Price:       input.Price,
		Currency:    input.Currency,
		Published:   input.Published,
	}
	if course.Currency == "" {
		course.Currency = "INR"
	}

	if err := h.service.CreateCourse(course); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Created(c, course)
}

type UpdateCourseInput struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Category    *string  `json:"category"`
	Level       *string  `json:"level"`
	Price       *float64 `json:"price"`
	Published   *bool    `json:"published"`
}

// UpdateCourse partially updates a course (admin) and drops its cache entry.
func (h *CatalogHandler) UpdateCourse(c *gin.Context) {
	course, err := h.service.GetCourse(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, response.ErrItemNotFound, "Course not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	var input UpdateCourseInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	if input.Title != nil {
		course.Title = *input.Title
	}
	if input.Description != nil {
		course.Description = *input.Description
	}
	if input.Category != nil {
		course.Category = *input.Category
	}
	if input.Level != nil {
		course.Level = *input.Level
	}
	if input.Price != nil {
		course.Price = *input.Price
	}
	if input.Published != nil {
		course.Published = *input.Published
	}

	if err := h.service.UpdateCourse(course); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, course)
}

// ListDegreePrograms returns published degree programs.
func (h *CatalogHandler) ListDegreePrograms(c *gin.Context) {
	var p utils.Pagination
	_ = c.ShouldBindQuery(&p)
	_, limit := p.GetPageOffset()

	programs, total, err := h.service.ListDegreePrograms(true, p.Page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, utils.PageResult{List: programs, Total: total, Page: p.Page, Limit: limit})
}

type CreateDegreeProgramInput struct {
	Title          string  `json:"title" binding:"required"`
	Slug           string  `json:"slug" binding:"required"`
	Description    string  `json:"description"`
	DurationMonths int     `json:"durationMonths" binding:"required,min=1"`
	Price          float64 `json:"price" binding:"required,gt=0"`
	Published      bool    `json:"published"`
}

func (h *CatalogHandler) CreateDegreeProgram(c *gin.Context) {
	var input CreateDegreeProgramInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	program := &model.DegreeProgram{
		Title:          input.Title,
		Slug:           input.Slug,
		Description:    input.Description,
		DurationMonths: input.DurationMonths,
		Price:          input.Price,
		Currency:       "INR",
		Published:      input.Published,
	}

	if err := h.service.CreateDegreeProgram(program); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Created(c, program)
}

// ListMentorshipPrograms returns published mentorship programs.
func (h *CatalogHandler) ListMentorshipPrograms(c *gin.Context) {
	var p utils.Pagination
	_ = c.ShouldBindQuery(&p)
	_, limit := p.GetPageOffset()

	programs, total, err := h.service.ListMentorshipPrograms(true, p.Page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, utils.PageResult{List: programs, Total: total, Page: p.Page, Limit: limit})
}

type CreateMentorshipProgramInput struct {
	Title       string  `json:"title" binding:"required"`
	Slug        string  `json:"slug" binding:"required"`
	Description string  `json:"description"`
	MentorName  string  `json:"mentorName" binding:"required"`
	Sessions    int     `json:"sessions" binding:"required,min=1"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Published   bool    `json:"published"`
}

func (h *CatalogHandler) CreateMentorshipProgram(c *gin.Context) {
	var input CreateMentorshipProgramInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	program := &model.MentorshipProgram{
		Title:       input.Title,
		Slug:        input.Slug,
		Description: input.Description,
		MentorName:  input.MentorName,
		Sessions:    input.Sessions,
		Price:       input.Price,
		Currency:    "INR",
		Published:   input.Published,
	}

	if err := h.service.CreateMentorshipProgram(program); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Created(c, program)
}

// ListPlans returns active subscription plans.
func (h *CatalogHandler) ListPlans(c *gin.Context) {
	plans, err := h.service.ListActivePlans()
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Success(c, plans)
}

type CreatePlanInput struct {
	Name     string  `json:"name" binding:"required"`
	PlanType string  `json:"planType" binding:"required,oneof=MONTHLY YEARLY LIFETIME"`
	Price    float64 `json:"price" binding:"required,gt=0"`
}

func (h *CatalogHandler) CreatePlan(c *gin.Context) {
	var input CreatePlanInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, err.Error())
		return
	}

	plan := &model.Plan{
		Name:     input.Name,
		PlanType: input.PlanType,
		Price:    input.Price,
		Currency: "INR",
		Active:   true,
	}

	if err := h.service.CreatePlan(plan); err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}

	response.Created(c, plan)
}
