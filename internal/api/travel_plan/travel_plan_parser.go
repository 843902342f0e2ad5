package travelPlan

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/FACorreiaa/go-travel-planner-ai/internal/types"
)

// extractJSONObject returns the span from the first '{' to the last '}' of text.
// The span must be brace-balanced outside JSON strings.
func extractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end < start {
		return "", fmt.Errorf("%w: no JSON object in reply", types.ErrMalformedResponse)
	}
	candidate := text[start : end+1]
	if !bracesBalanced(candidate) {
		return "", fmt.Errorf("%w: unbalanced braces in reply", types.ErrMalformedResponse)
	}
	return candidate, nil
}

func bracesBalanced(s string) bool {
	depth := 0
	inString := false
	escaped := false
	for _, r := range s {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return false
			}
		}
	}
	return depth == 0 && !inString
}

// parseGeneratedPlan extracts and decodes the model reply. Every destination must carry
// all of its text fields; the top-level summary fields are optional.
func parseGeneratedPlan(text string) (*types.GeneratedPlan, error) {
	raw, err := extractJSONObject(text)
	if err != nil {
		return nil, err
	}

	var plan types.GeneratedPlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrMalformedResponse, err)
	}

	if plan.Destinations == nil {
		return nil, fmt.Errorf("%w: destinations", types.ErrMissingField)
	}
	for i, d := range plan.Destinations {
		if field := firstMissingField(d); field != "" {
			return nil, fmt.Errorf("%w: destinations[%d].%s", types.ErrMissingField, i, field)
		}
	}
	return &plan, nil
}

func firstMissingField(d types.GeneratedDestination) string {
	switch {
	case d.Name == nil:
		return "name"
	case d.Description == nil:
		return "description"
	case d.Category == nil:
		return "category"
	case d.EstimatedDuration == nil:
		return "estimated_duration"
	case d.Tips == nil:
		return "tips"
	}
	return ""
}
