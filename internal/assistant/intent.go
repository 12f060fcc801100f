package assistant

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// IntentType is the closed set of purposes a user message can be classified
// into. Anything unrecognized routes to general chat.
type IntentType string

const (
	IntentSearchJobs    IntentType = "search_jobs"
	IntentUpdateFilters IntentType = "update_filters"
	IntentHelp          IntentType = "help"
	IntentGeneralChat   IntentType = "general_chat"
)

// Intent is the classified purpose of a single turn. Parameters is the raw
// key/value bag extracted by the model; it never leaks past the handler
// boundary, where it is decoded into typed parameter structs.
type Intent struct {
	Type       IntentType
	Parameters map[string]any
	Confidence float64
}

const defaultConfidence = 0.8

// fallbackIntent is what classification degrades to when the model is
// unavailable or its output cannot be parsed. Classification must never fail
// a turn.
func fallbackIntent() *Intent {
	return &Intent{
		Type:       IntentGeneralChat,
		Parameters: map[string]any{},
		Confidence: 0.5,
	}
}

// parseIntent interprets the raw model reply as an intent classification.
func parseIntent(raw string) (*Intent, error) {
	cleaned := extractJSON(raw)

	var data struct {
		Type       string         `json:"type"`
		Parameters map[string]any `json:"parameters"`
		Confidence any            `json:"confidence"`
	}
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse intent response: %w", err)
	}

	params := data.Parameters
	if params == nil {
		params = map[string]any{}
	}

	confidence := coerceFloat(data.Confidence)
	if math.IsNaN(confidence) || confidence == 0 {
		confidence = defaultConfidence
	}

	return &Intent{
		Type:       IntentType(strings.TrimSpace(data.Type)),
		Parameters: params,
		Confidence: confidence,
	}, nil
}

// extractJSON strips markdown code fences the model tends to wrap its JSON in.
func extractJSON(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```json")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	raw = strings.Trim(raw, "`")
	return strings.TrimSpace(raw)
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}
