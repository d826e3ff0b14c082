package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/boteco-app/boteco-backend/internal/apperrors"
	"github.com/boteco-app/boteco-backend/internal/cache"
	portssvc "github.com/boteco-app/boteco-backend/internal/core/ports/services"
	"github.com/boteco-app/boteco-backend/internal/dto"
	"github.com/boteco-app/boteco-backend/internal/middleware"
	"github.com/invopop/jsonschema"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/responses"
	"github.com/openai/openai-go/shared"
	"github.com/openai/openai-go/shared/constant"
)

const insightCacheTTL = time.Hour

// salesInsight is the structured shape the model must return.
type salesInsight struct {
	Summary        string   `json:"summary" jsonschema_description:"Two or three sentences summarizing the period"`
	Insights       []string `json:"insights" jsonschema_description:"Notable patterns worth the owner's attention"`
	Mood           string   `json:"mood" jsonschema:"enum=positive,enum=neutral,enum=concern"`
	Recommendation string   `json:"recommendation" jsonschema_description:"One concrete action to take next"`
}

// InsightService asks a generative model to read the sales figures. All
// failures surface as ErrUnavailable; nothing here ever mutates the entity
// model.
type InsightService struct {
	client    *openai.Client
	model     string
	reporting portssvc.ReportingSvcFacade
	cache     cache.Cache
}

// NewInsightService returns nil when no API key is configured; the handler
// layer treats a nil service as a 503.
func NewInsightService(apiKey, model string, reporting portssvc.ReportingSvcFacade, store cache.Cache) *InsightService {
	if apiKey == "" {
		return nil
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &InsightService{
		client:    &client,
		model:     model,
		reporting: reporting,
		cache:     store,
	}
}

var _ portssvc.InsightSvcFacade = (*InsightService)(nil)

// SalesInsight aggregates the last N days of sales server-side and asks the
// model for a structured reading. Responses are cached for an hour; the same
// window asked twice does not pay for two model calls.
func (s *InsightService) SalesInsight(ctx context.Context, req dto.SalesInsightRequest) (*dto.SalesInsightResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	cacheKey := fmt.Sprintf("insight:sales:%d", req.Days)

	if cached, ok, err := s.cache.Get(ctx, cacheKey); err != nil {
		logger.Warn("Insight cache read failed", slog.String("error", err.Error()))
	} else if ok {
		var resp dto.SalesInsightResponse
		if err := json.Unmarshal([]byte(cached), &resp); err == nil {
			resp.Cached = true
			return &resp, nil
		}
	}

	to := time.Now()
	from := to.AddDate(0, 0, -req.Days)

	buckets, err := s.reporting.SalesByDay(ctx, from, to)
	if err != nil {
		return nil, err
	}
	topProducts, err := s.reporting.ProductSales(ctx, from, to, 5)
	if err != nil {
		return nil, err
	}

	figures, err := json.Marshal(map[string]any{
		"days":        req.Days,
		"dailySales":  buckets,
		"topProducts": topProducts,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal sales figures: %w", err)
	}

	prompt := fmt.Sprintf(`You are a business analyst for a small neighborhood bar.
Read the sales figures below and report back to the owner.
Be concrete and brief; amounts are in the local currency.

Figures (JSON):
%s`, figures)

	schemaMap, err := reflectSchema(salesInsight{})
	if err != nil {
		return nil, err
	}

	result, err := s.client.Responses.New(ctx, responses.ResponseNewParams{
		Model: shared.ResponsesModel(s.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
		Text: responses.ResponseTextConfigParam{
			Format: responses.ResponseFormatTextConfigUnionParam{
				OfJSONSchema: &responses.ResponseFormatTextJSONSchemaConfigParam{
					Type:   constant.JSONSchema("json_schema"),
					Name:   "sales_insight",
					Strict: param.NewOpt(true),
					Schema: schemaMap,
				},
			},
		},
	})
	if err != nil {
		logger.Error("Insight model call failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: insight model call failed", apperrors.ErrUnavailable)
	}

	content := result.OutputText()
	if content == "" {
		return nil, fmt.Errorf("%w: insight model returned no content", apperrors.ErrUnavailable)
	}

	var parsed salesInsight
	if err := json.Unmarshal([]byte(content), &parsed); err != nil {
		logger.Error("Insight model returned unparseable content", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: insight model returned malformed content", apperrors.ErrUnavailable)
	}

	resp := dto.SalesInsightResponse{
		Summary:        parsed.Summary,
		Insights:       parsed.Insights,
		Mood:           parsed.Mood,
		Recommendation: parsed.Recommendation,
	}

	if payload, err := json.Marshal(resp); err == nil {
		if err := s.cache.Set(ctx, cacheKey, string(payload), insightCacheTTL); err != nil {
			logger.Warn("Insight cache write failed", slog.String("error", err.Error()))
		}
	}

	return &resp, nil
}

// Ask answers a free-text question, optionally grounded in structured context
// supplied by the caller.
func (s *InsightService) Ask(ctx context.Context, req dto.AskInsightRequest) (*dto.AskInsightResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	prompt := fmt.Sprintf(`You are a helpful assistant for the staff of a small neighborhood bar.
Answer the question below briefly and concretely.

Question: %s`, req.Question)
	if len(req.Context) > 0 {
		if contextJSON, err := json.Marshal(req.Context); err == nil {
			prompt += fmt.Sprintf("\n\nContext (JSON):\n%s", contextJSON)
		}
	}

	result, err := s.client.Responses.New(ctx, responses.ResponseNewParams{
		Model: shared.ResponsesModel(s.model),
		Input: responses.ResponseNewParamsInputUnion{
			OfString: param.NewOpt(prompt),
		},
	})
	if err != nil {
		logger.Error("Insight model call failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: insight model call failed", apperrors.ErrUnavailable)
	}

	answer := result.OutputText()
	if answer == "" {
		return nil, fmt.Errorf("%w: insight model returned no content", apperrors.ErrUnavailable)
	}

	return &dto.AskInsightResponse{Answer: answer}, nil
}

// reflectSchema derives a strict JSON schema from a Go struct.
func reflectSchema(v any) (map[string]any, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties: false,
		DoNotReference:            true,
	}
	schemaJSON, err := json.Marshal(reflector.Reflect(v))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	var schemaMap map[string]any
	if err := json.Unmarshal(schemaJSON, &schemaMap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal schema to map: %w", err)
	}
	return schemaMap, nil
}
