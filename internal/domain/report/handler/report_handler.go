package handler

import (
	"net/http"
	"strconv"
	"time"

	"lms_commerce/internal/domain/report/repository"
	"lms_commerce/pkg/response"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	repo repository.ReportRepository
}

func NewReportHandler(repo repository.ReportRepository) *ReportHandler {
	return &ReportHandler{repo: repo}
}

// parseRange reads from/to query params, defaulting to the last 30 days.
// to is exclusive.
func parseRange(c *gin.Context) (time.Time, time.Time, error) {
	now := time.Now().UTC()
	from := now.AddDate(0, 0, -30)
	to := now

	if v := c.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		from = parsed
	}
	if v := c.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, nil
}

// SalesSummary returns order and refund totals for the range.
func (h *ReportHandler) SalesSummary(c *gin.Context) {
	from, to, err := parseRange(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "dates must be YYYY-MM-DD")
		return
	}

	summary, err := h.repo.GetSalesSummary(from, to)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, summary)
}

// RevenueByType returns revenue broken down by order type.
func (h *ReportHandler) RevenueByType(c *gin.Context) {
	from, to, err := parseRange(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "dates must be YYYY-MM-DD")
		return
	}

	rows, err := h.repo.GetRevenueByType(from, to)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, rows)
}

// DailyRevenue returns a day-by-day revenue series.
func (h *ReportHandler) DailyRevenue(c *gin.Context) {
	from, to, err := parseRange(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "dates must be YYYY-MM-DD")
		return
	}

	rows, err := h.repo.GetDailyRevenue(from, to)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, rows)
}

// TopItems returns the best sellers for the range.
func (h *ReportHandler) TopItems(c *gin.Context) {
	from, to, err := parseRange(c)
	if err != nil {
		response.Error(c, http.StatusBadRequest, response.ErrInvalidParam, "dates must be YYYY-MM-DD")
		return
	}

	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	rows, err := h.repo.GetTopItems(from, to, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, response.ErrServerInternal, err.Error())
		return
	}
	response.Success(c, rows)
}
