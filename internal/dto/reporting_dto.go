package dto

import (
	"time"

	"github.com/boteco-app/boteco-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// DashboardSummaryResponse is the headline numbers for the landing page.
type DashboardSummaryResponse struct {
	LowStockCount   int             `json:"lowStockCount"`
	DebtorCount     int             `json:"debtorCount"`
	OpenOrderCount  int             `json:"openOrderCount"`
	SalesToday      decimal.Decimal `json:"salesToday"`
	SalesCountToday int             `json:"salesCountToday"`
}

// SalesBucketResponse is one histogram bar.
type SalesBucketResponse struct {
	Bucket time.Time       `json:"bucket"`
	Total  decimal.Decimal `json:"total"`
	Count  int             `json:"count"`
}

// SalesHistogramResponse is a bucketed sales series.
type SalesHistogramResponse struct {
	From    time.Time             `json:"from"`
	To      time.Time             `json:"to"`
	Buckets []SalesBucketResponse `json:"buckets"`
}

// ProductSalesResponse aggregates one product's sales performance.
type ProductSalesResponse struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	Revenue   decimal.Decimal `json:"revenue"`
	Profit    decimal.Decimal `json:"profit"`
}

// ProductSalesReportResponse wraps the per-product aggregation.
type ProductSalesReportResponse struct {
	From     time.Time              `json:"from"`
	To       time.Time              `json:"to"`
	Products []ProductSalesResponse `json:"products"`
}

// ReportPeriodParams defines the from/to query range for reports.
type ReportPeriodParams struct {
	From *time.Time `form:"from" time_format:"2006-01-02"`
	To   *time.Time `form:"to" time_format:"2006-01-02"`
	Top  int        `form:"top,default=10"`
}

// ToSalesHistogramResponse converts domain buckets to a response.
func ToSalesHistogramResponse(buckets []domain.SalesBucket, from, to time.Time) SalesHistogramResponse {
	resp := SalesHistogramResponse{
		From:    from,
		To:      to,
		Buckets: make([]SalesBucketResponse, len(buckets)),
	}
	for i, b := range buckets {
		resp.Buckets[i] = SalesBucketResponse{Bucket: b.Bucket, Total: b.Total, Count: b.Count}
	}
	return resp
}

// ToProductSalesReportResponse converts domain per-product rows to a response.
func ToProductSalesReportResponse(rows []domain.ProductSales, from, to time.Time) ProductSalesReportResponse {
	resp := ProductSalesReportResponse{
		From:     from,
		To:       to,
		Products: make([]ProductSalesResponse, len(rows)),
	}
	for i, r := range rows {
		resp.Products[i] = ProductSalesResponse{
			ProductID: r.ProductID,
			Name:      r.Name,
			Quantity:  r.Quantity,
			Revenue:   r.Revenue,
			Profit:    r.Profit,
		}
	}
	return resp
}
