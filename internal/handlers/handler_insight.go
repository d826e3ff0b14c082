package handlers

import (
	"log/slog"
	"net/http"

	"github.com/boteco-app/boteco-backend/internal/core/domain"
	portssvc "github.com/boteco-app/boteco-backend/internal/core/ports/services"
	"github.com/boteco-app/boteco-backend/internal/dto"
	"github.com/boteco-app/boteco-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

type insightHandler struct {
	// nil when no model API key is configured.
	insightService portssvc.InsightSvcFacade
}

func newInsightHandler(insightService portssvc.InsightSvcFacade) *insightHandler {
	return &insightHandler{insightService: insightService}
}

// registerInsightRoutes wires the AI endpoints behind a per-IP rate limit so
// a misbehaving client cannot burn through model quota.
func registerInsightRoutes(rg *gin.RouterGroup, insightService portssvc.InsightSvcFacade, rateFormat string) gin.IRoutes {
	h := newInsightHandler(insightService)

	insights := rg.Group("/insights", middleware.RequireRole(domain.RoleCashier))
	if rate, err := limiter.NewRateFromFormatted(rateFormat); err == nil {
		insights.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))
	}
	insights.POST("/sales", h.salesInsight)
	insights.POST("/ask", h.ask)
	return insights
}

func (h *insightHandler) available(c *gin.Context) bool {
	if h.insightService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Insight service is not configured"})
		return false
	}
	return true
}

// salesInsight godoc
// @Summary      AI reading of recent sales
// @Description  Aggregates the last N days of sales server-side and asks the model for a structured summary, notable patterns, and one recommendation. Responses are cached for an hour.
// @Tags         Insights
// @Accept       json
// @Produce      json
// @Param        request  body      dto.SalesInsightRequest  true  "Analysis window in days"
// @Success      200      {object}  dto.SalesInsightResponse
// @Failure      400      {object}  map[string]string
// @Failure      503      {object}  map[string]string
// @Security     BearerAuth
// @Router       /insights/sales [post]
func (h *insightHandler) salesInsight(c *gin.Context) {
	if !h.available(c) {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.SalesInsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid sales insight request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.insightService.SalesInsight(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ask godoc
// @Summary      Ask the AI assistant a question
// @Description  Free-text question with optional structured context. The answer is advisory; nothing here mutates business data.
// @Tags         Insights
// @Accept       json
// @Produce      json
// @Param        request  body      dto.AskInsightRequest  true  "Question and optional context"
// @Success      200      {object}  dto.AskInsightResponse
// @Failure      400      {object}  map[string]string
// @Failure      503      {object}  map[string]string
// @Security     BearerAuth
// @Router       /insights/ask [post]
func (h *insightHandler) ask(c *gin.Context) {
	if !h.available(c) {
		return
	}

	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.AskInsightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Invalid ask insight request", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	resp, err := h.insightService.Ask(c.Request.Context(), req)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
