package model

import "time"

// SalesSummary aggregates confirmed order revenue over a date range.
type SalesSummary struct {
	TotalOrders   int64   `db:"total_orders" json:"totalOrders"`
	TotalRevenue  float64 `db:"total_revenue" json:"totalRevenue"`
	TotalRefunded float64 `db:"total_refunded" json:"totalRefunded"`
}

// RevenueByType breaks revenue down per order type.
type RevenueByType struct {
	Type    string  `db:"type" json:"type"`
	Orders  int64   `db:"orders" json:"orders"`
	Revenue float64 `db:"revenue" json:"revenue"`
}

// DailyRevenue is one day's confirmed revenue.
type DailyRevenue struct {
	Day     time.Time `db:"day" json:"day"`
	Orders  int64     `db:"orders" json:"orders"`
	Revenue float64   `db:"revenue" json:"revenue"`
}

// TopItem is a best-selling item over a date range.
type TopItem struct {
	ItemID    string  `db:"item_id" json:"itemId"`
	ItemTitle string  `db:"item_title" json:"itemTitle"`
	Type      string  `db:"type" json:"type"`
	Sold      int64   `db:"sold" json:"sold"`
	Revenue   float64 `db:"revenue" json:"revenue"`
}
