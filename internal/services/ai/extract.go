package ai

import (
	"encoding/json"
	"strings"

	"github.com/flowloop/momentum-api/internal/models"
)

// ExtractResult locates the first greedy {...} region in the model's free
// text and attempts to parse it as a JSON object. When no braces are found
// or the region does not parse, the raw text comes back in the fallback
// variant instead of failing the request.
//
// The match runs from the first '{' to the last '}'. Known limitation: a
// model that prefaces its JSON with prose containing a brace (example JSON
// in an explanation, say) makes the slice start too early and the parse
// fall back. Existing callers' tests rely on these exact matching
// semantics, so the greedy scan stays.
func ExtractResult(content string) models.AnalysisResult {
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start == -1 || end == -1 || end <= start {
		return models.AnalysisResult{Kind: models.ResultKindFallback, Raw: content}
	}

	var value map[string]any
	if err := json.Unmarshal([]byte(content[start:end+1]), &value); err != nil {
		return models.AnalysisResult{Kind: models.ResultKindFallback, Raw: content}
	}

	return models.AnalysisResult{Kind: models.ResultKindParsed, Value: value}
}
