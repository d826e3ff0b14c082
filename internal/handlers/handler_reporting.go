package handlers

import (
	"net/http"
	"time"

	portssvc "github.com/boteco-app/boteco-backend/internal/core/ports/services"
	"github.com/boteco-app/boteco-backend/internal/dto"
	"github.com/gin-gonic/gin"
)

type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{reportingService: reportingService}
}

func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)
	reports := rg.Group("/reports")
	{
		reports.GET("/dashboard", h.dashboard)
		reports.GET("/sales-by-hour", h.salesByHour)
		reports.GET("/sales-by-day", h.salesByDay)
		reports.GET("/product-sales", h.productSales)
	}
}

// resolvePeriod fills in defaults for an open-ended report range. The end
// bound is exclusive, so "to" is pushed to the start of the next day.
func resolvePeriod(params dto.ReportPeriodParams, defaultSpanDays int) (time.Time, time.Time) {
	now := time.Now()
	to := now
	if params.To != nil {
		to = params.To.AddDate(0, 0, 1)
	}
	from := to.AddDate(0, 0, -defaultSpanDays)
	if params.From != nil {
		from = *params.From
	}
	return from, to
}

// dashboard godoc
// @Summary      Dashboard summary
// @Description  Headline numbers: low-stock count, debtor count, open tabs, and today's sales.
// @Tags         Reports
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryResponse
// @Security     BearerAuth
// @Router       /reports/dashboard [get]
func (h *reportingHandler) dashboard(c *gin.Context) {
	summary, err := h.reportingService.DashboardSummary(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.DashboardSummaryResponse{
		LowStockCount:   summary.LowStockCount,
		DebtorCount:     summary.DebtorCount,
		OpenOrderCount:  summary.OpenOrderCount,
		SalesToday:      summary.SalesToday,
		SalesCountToday: summary.SalesCountToday,
	})
}

// salesByHour godoc
// @Summary      Sales histogram by hour
// @Tags         Reports
// @Produce      json
// @Param        from  query     string  false  "Start date (YYYY-MM-DD)"
// @Param        to    query     string  false  "End date (YYYY-MM-DD)"
// @Success      200   {object}  dto.SalesHistogramResponse
// @Security     BearerAuth
// @Router       /reports/sales-by-hour [get]
func (h *reportingHandler) salesByHour(c *gin.Context) {
	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	from, to := resolvePeriod(params, 1)
	buckets, err := h.reportingService.SalesByHour(c.Request.Context(), from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSalesHistogramResponse(buckets, from, to))
}

// salesByDay godoc
// @Summary      Sales histogram by day
// @Tags         Reports
// @Produce      json
// @Param        from  query     string  false  "Start date (YYYY-MM-DD)"
// @Param        to    query     string  false  "End date (YYYY-MM-DD)"
// @Success      200   {object}  dto.SalesHistogramResponse
// @Security     BearerAuth
// @Router       /reports/sales-by-day [get]
func (h *reportingHandler) salesByDay(c *gin.Context) {
	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	from, to := resolvePeriod(params, 30)
	buckets, err := h.reportingService.SalesByDay(c.Request.Context(), from, to)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSalesHistogramResponse(buckets, from, to))
}

// productSales godoc
// @Summary      Per-product sales aggregation
// @Description  Quantity sold, revenue and profit per product over the period, best sellers first.
// @Tags         Reports
// @Produce      json
// @Param        from  query     string  false  "Start date (YYYY-MM-DD)"
// @Param        to    query     string  false  "End date (YYYY-MM-DD)"
// @Param        top   query     int     false  "Max products returned"
// @Success      200   {object}  dto.ProductSalesReportResponse
// @Security     BearerAuth
// @Router       /reports/product-sales [get]
func (h *reportingHandler) productSales(c *gin.Context) {
	var params dto.ReportPeriodParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	from, to := resolvePeriod(params, 30)
	rows, err := h.reportingService.ProductSales(c.Request.Context(), from, to, params.Top)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProductSalesReportResponse(rows, from, to))
}
