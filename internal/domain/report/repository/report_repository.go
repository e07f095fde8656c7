package repository

import (
	"time"

	"lms_commerce/internal/domain/report/model"

	"github.com/jmoiron/sqlx"
)

// ReportRepository reads sales aggregates. Raw SQL over sqlx; these
// queries do not fit an ORM well.
type ReportRepository interface {
	GetSalesSummary(from, to time.Time) (*model.SalesSummary, error)
	GetRevenueByType(from, to time.Time) ([]model.RevenueByType, error)
	GetDailyRevenue(from, to time.Time) ([]model.DailyRevenue, error)
	GetTopItems(from, to time.Time, limit int) ([]model.TopItem, error)
}

type reportRepository struct {
	db *sqlx.DB
}

func NewReportRepository(db *sqlx.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) GetSalesSummary(from, to time.Time) (*model.SalesSummary, error) {
	const query = `
		SELECT
			COUNT(*) FILTER (WHERE status = 'CONFIRMED')                          AS total_orders,
			COALESCE(SUM(total_amount) FILTER (WHERE status = 'CONFIRMED'), 0)    AS total_revenue,
			COALESCE(SUM(total_amount) FILTER (WHERE status = 'REFUNDED'), 0)     AS total_refunded
		FROM orders
		WHERE created_at >= $1 AND created_at < $2`

	var summary model.SalesSummary
	if err := r.db.Get(&summary, query, from, to); err != nil {
		return nil, err
	}
	return &summary, nil
}

func (r *reportRepository) GetRevenueByType(from, to time.Time) ([]model.RevenueByType, error) {
	const query = `
		SELECT type, COUNT(*) AS orders, COALESCE(SUM(total_amount), 0) AS revenue
		FROM orders
		WHERE status = 'CONFIRMED' AND created_at >= $1 AND created_at < $2
		GROUP BY type
		ORDER BY revenue DESC`

	var rows []model.RevenueByType
	if err := r.db.Select(&rows, query, from, to); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportRepository) GetDailyRevenue(from, to time.Time) ([]model.DailyRevenue, error) {
	const query = `
		SELECT date_trunc('day', created_at) AS day,
		       COUNT(*) AS orders,
		       COALESCE(SUM(total_amount), 0) AS revenue
		FROM orders
		WHERE status = 'CONFIRMED' AND created_at >= $1 AND created_at < $2
		GROUP BY day
		ORDER BY day`

	var rows []model.DailyRevenue
	if err := r.db.Select(&rows, query, from, to); err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportRepository) GetTopItems(from, to time.Time, limit int) ([]model.TopItem, error) {
	const query = `
		SELECT item_id, item_title, type,
		       SUM(quantity) AS sold,
		       COALESCE(SUM(total_amount), 0) AS revenue
		FROM orders
		WHERE status = 'CONFIRMED' AND created_at >= $1 AND created_at < $2
		GROUP BY item_id, item_title, type
		ORDER BY revenue DESC
		LIMIT $3`

	var rows []model.TopItem
	if err := r.db.Select(&rows, query, from, to, limit); err != nil {
		return nil, err
	}
	return rows, nil
}
