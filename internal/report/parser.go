package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"ezra/internal/models"
)

// Parse failure sub-reasons.
const (
	ReasonNoJSONFound     = "no_json_found"
	ReasonMalformedJSON   = "malformed_json"
	ReasonSchemaViolation = "schema_violation"
)

var (
	ErrNoJSONFound     = errors.New("no JSON object found in model response")
	ErrMalformedJSON   = errors.New("model response JSON is malformed")
	ErrSchemaViolation = errors.New("model response JSON is missing required fields")
)

// ParseError is the single error class the pipeline sees for a failed parse.
// Reason distinguishes the sub-cause; Unwrap exposes the matching sentinel.
type ParseError struct {
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse model response (%s): %v", e.Reason, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ParseResponse isolates the JSON object in the model's raw text output,
// decodes it into the canonical report structure and normalizes derived
// fields. The model is told to answer with bare JSON but may wrap it in
// prose or markdown code fences; both are tolerated.
func ParseResponse(raw string) (*models.ReportData, error) {
	payload, ok := isolateJSON(raw)
	if !ok {
		return nil, &ParseError{Reason: ReasonNoJSONFound, Err: ErrNoJSONFound}
	}

	var data models.ReportData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return nil, &ParseError{
				Reason: ReasonMalformedJSON,
				Err:    fmt.Errorf("%w: %v at offset %d", ErrMalformedJSON, err, syntaxErr.Offset),
			}
		}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return nil, &ParseError{
				Reason: ReasonSchemaViolation,
				Err:    fmt.Errorf("%w: field %q has wrong type", ErrSchemaViolation, typeErr.Field),
			}
		}
		return nil, &ParseError{Reason: ReasonMalformedJSON, Err: fmt.Errorf("%w: %v", ErrMalformedJSON, err)}
	}

	if len(data.Goals) == 0 {
		return nil, &ParseError{Reason: ReasonSchemaViolation, Err: fmt.Errorf("%w: goals", ErrSchemaViolation)}
	}
	if len(data.Risks) == 0 {
		return nil, &ParseError{Reason: ReasonSchemaViolation, Err: fmt.Errorf("%w: risks", ErrSchemaViolation)}
	}

	normalize(&data)
	return &data, nil
}

// isolateJSON returns the JSON object embedded in the raw text: the content
// of a fenced code block when present, otherwise the span between the first
// '{' and the last '}'.
func isolateJSON(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}
	if idx := strings.Index(raw, "```"); idx >= 0 {
		rest := raw[idx+3:]
		rest = strings.TrimPrefix(rest, "json")
		if end := strings.Index(rest, "```"); end >= 0 {
			raw = rest[:end]
		} else {
			raw = rest
		}
	}
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", false
	}
	return raw[start : end+1], true
}

// normalize fills derived fields the model may omit: numeric severity and
// its label, the linked-goal title, the risk tally, and the aggregate
// innovation score (the average of its four components).
func normalize(data *models.ReportData) {
	titles := make(map[int]string, len(data.Goals))
	for _, g := range data.Goals {
		titles[g.ID] = g.Title
	}
	for i := range data.Risks {
		r := &data.Risks[i]
		if r.Severity == 0 {
			r.Severity = r.Probability * r.Impact
		}
		if r.SeverityLevel == "" {
			r.SeverityLevel = SeverityLabel(r.Severity)
		}
		if r.LinkedGoalTitle == "" {
			r.LinkedGoalTitle = titles[r.LinkedGoal]
		}
	}
	if data.RiskCounts == nil {
		counts := CountBySeverity(data.Risks)
		data.RiskCounts = &counts
	}
	if il := data.InnovationLevel; il != nil && il.TotalScore == 0 {
		il.TotalScore = (il.PedagogicalImpact + il.TechnologicalComplexity +
			il.OrganizationalChange + il.TechnologicalRisk) / 4
	}
}
