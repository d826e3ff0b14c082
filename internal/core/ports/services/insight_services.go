package services

import (
	"context"

	"github.com/boteco-app/boteco-backend/internal/dto"
)

// InsightSvcFacade wraps the generative-AI collaborator. Calls may be slow and
// may fail; failures never touch the entity model.
type InsightSvcFacade interface {
	// SalesInsight aggregates the last N days of sales and asks the model
	// for a structured reading (summary, insights, mood, recommendation).
	SalesInsight(ctx context.Context, req dto.SalesInsightRequest) (*dto.SalesInsightResponse, error)
	// Ask answers a free-text question, optionally grounded in structured
	// context supplied by the caller.
	Ask(ctx context.Context, req dto.AskInsightRequest) (*dto.AskInsightResponse, error)
}
