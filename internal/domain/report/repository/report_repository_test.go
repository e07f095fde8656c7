package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "postgres"), mock
}

func TestGetSalesSummary(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT(.|\n)*FROM orders").
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"total_orders", "total_revenue", "total_refunded"}).
			AddRow(42, 125000.50, 4999.0))

	summary, err := repo.GetSalesSummary(from, to)

	assert.NoError(t, err)
	assert.Equal(t, int64(42), summary.TotalOrders)
	assert.Equal(t, 125000.50, summary.TotalRevenue)
	assert.Equal(t, 4999.0, summary.TotalRefunded)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRevenueByType(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT type, COUNT(.|\n)*GROUP BY type").
		WithArgs(from, to).
		WillReturnRows(sqlmock.NewRows([]string{"type", "orders", "revenue"}).
			AddRow("COURSE", 30, 90000.0).
			AddRow("SUBSCRIPTION", 12, 35000.50))

	rows, err := repo.GetRevenueByType(from, to)

	assert.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "COURSE", rows[0].Type)
	assert.Equal(t, 90000.0, rows[0].Revenue)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTopItems(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewReportRepository(db)

	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery("SELECT item_id, item_title(.|\n)*LIMIT").
		WithArgs(from, to, 5).
		WillReturnRows(sqlmock.NewRows([]string{"item_id", "item_title", "type", "sold", "revenue"}).
			AddRow("course-1", "Intro to Go", "COURSE", 20, 50000.0))

	rows, err := repo.GetTopItems(from, to, 5)

	assert.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Intro to Go", rows[0].ItemTitle)
	assert.Equal(t, int64(20), rows[0].Sold)
	assert.NoError(t, mock.ExpectationsWereMet())
}
