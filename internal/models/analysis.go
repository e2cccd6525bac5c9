package models

import (
	"encoding/json"
	"time"
)

// AnalysisType selects one of the cross-analysis prompt templates
type AnalysisType string

const (
	AnalysisDailyBriefing       AnalysisType = "daily_briefing"
	AnalysisSmartPrioritization AnalysisType = "smart_prioritization"
	AnalysisCrossInsights       AnalysisType = "cross_insights"
	AnalysisGoalPrediction      AnalysisType = "goal_prediction"
	AnalysisHabitDNA            AnalysisType = "habit_dna"
	AnalysisFlowPrediction      AnalysisType = "flow_prediction"
	AnalysisMoodAnalysis        AnalysisType = "mood_analysis"
)

// AnalysisTypes lists all valid analysis types in a stable order
var AnalysisTypes = []AnalysisType{
	AnalysisDailyBriefing,
	AnalysisSmartPrioritization,
	AnalysisCrossInsights,
	AnalysisGoalPrediction,
	AnalysisHabitDNA,
	AnalysisFlowPrediction,
	AnalysisMoodAnalysis,
}

// Valid reports whether t is one of the enumerated analysis types
func (t AnalysisType) Valid() bool {
	switch t {
	case AnalysisDailyBriefing, AnalysisSmartPrioritization, AnalysisCrossInsights,
		AnalysisGoalPrediction, AnalysisHabitDNA, AnalysisFlowPrediction, AnalysisMoodAnalysis:
		return true
	default:
		return false
	}
}

// AnalysisRequest is the request body for the cross-analysis endpoint
type AnalysisRequest struct {
	Type         AnalysisType    `json:"type" validate:"required,analysis_type"`
	SpecificData json.RawMessage `json:"specific_data,omitempty"`
}

// AnalysisResultKind discriminates parsed model output from the raw fallback
type AnalysisResultKind string

const (
	ResultKindParsed   AnalysisResultKind = "parsed"
	ResultKindFallback AnalysisResultKind = "fallback"
)

// AnalysisResult is the outcome of extracting JSON from the model's reply.
// Exactly one of Value or Raw is meaningful, selected by Kind.
type AnalysisResult struct {
	Kind  AnalysisResultKind
	Value map[string]any
	Raw   string
}

// fallbackParseError is the error string surfaced to callers when the model
// reply contained no parseable JSON object. Existing clients match on it.
const fallbackParseError = "Failed to parse response"

// MarshalJSON renders the result the way callers expect: the parsed object
// itself, or the raw-text wrapper when parsing failed.
func (r AnalysisResult) MarshalJSON() ([]byte, error) {
	if r.Kind == ResultKindParsed {
		return json.Marshal(r.Value)
	}
	return json.Marshal(map[string]string{
		"raw_response": r.Raw,
		"error":        fallbackParseError,
	})
}

// AnalysisResponse is the success envelope for the cross-analysis endpoint
type AnalysisResponse struct {
	Type        AnalysisType   `json:"type"`
	Result      AnalysisResult `json:"result"`
	GeneratedAt time.Time      `json:"generated_at"`
}
