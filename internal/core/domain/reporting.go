package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardSummary is the headline numbers for the back-office landing page.
type DashboardSummary struct {
	LowStockCount   int             `json:"lowStockCount"`
	DebtorCount     int             `json:"debtorCount"`
	OpenOrderCount  int             `json:"openOrderCount"`
	SalesToday      decimal.Decimal `json:"salesToday"`
	SalesCountToday int             `json:"salesCountToday"`
}

// SalesBucket is one histogram bar of sales totals over time.
type SalesBucket struct {
	Bucket time.Time       `json:"bucket"`
	Total  decimal.Decimal `json:"total"`
	Count  int             `json:"count"`
}

// ProductSales aggregates sold quantity, revenue and profit for one product.
type ProductSales struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
	Profit    decimal.Decimal `json:"profit"`
}
