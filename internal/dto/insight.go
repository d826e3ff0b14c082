package dto

// SalesInsightRequest asks the insight service to analyze a sales period.
// The server aggregates the figures itself; the client only picks the window.
type SalesInsightRequest struct {
	Days int `json:"days" binding:"required,min=1,max=90"`
}

// SalesInsightResponse is the structured output of the generative model.
type SalesInsightResponse struct {
	Summary        string   `json:"summary"`
	Insights       []string `json:"insights"`
	Mood           string   `json:"mood"` // positive | neutral | concern
	Recommendation string   `json:"recommendation"`
	Cached         bool     `json:"cached"`
}

// AskInsightRequest is a free-text question with optional structured context.
type AskInsightRequest struct {
	Question string         `json:"question" binding:"required"`
	Context  map[string]any `json:"context"`
}

// AskInsightResponse is a free-text answer.
type AskInsightResponse struct {
	Answer string `json:"answer"`
}
