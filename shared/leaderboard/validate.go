package leaderboard

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/automoto/gradius/shared/tuning"
)

// ErrMalformed is returned when a submission body is not a JSON object.
var ErrMalformed = errors.New("malformed submission")

// Submission is a validated score submission.
type Submission struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Issue is one failed rule.
type Issue struct {
	Path    string
	Message string
}

// ValidationError lists every rule a submission broke.
type ValidationError struct {
	Issues []Issue
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, is := range e.Issues {
		parts = append(parts, fmt.Sprintf("%s at %q", is.Message, is.Path))
	}
	return "Validation error: " + strings.Join(parts, "; ")
}

// ParseSubmission decodes and validates a submission body.
func ParseSubmission(body []byte) (Submission, error) {
	var raw map[string]json.RawMessage
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil || raw == nil {
		if err == nil {
			err = errors.New("body is not an object")
		}
		return Submission{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	var sub Submission
	var issues []Issue

	if msg, ok := parseName(raw["name"], &sub.Name); !ok {
		issues = append(issues, Issue{Path: "name", Message: msg})
	}
	if msg, ok := parseScore(raw["score"], &sub.Score); !ok {
		issues = append(issues, Issue{Path: "score", Message: msg})
	}
	if len(issues) > 0 {
		return Submission{}, &ValidationError{Issues: issues}
	}
	return sub, nil
}

// Validate checks an already decoded submission.
func Validate(s Submission) error {
	var issues []Issue
	if msg, ok := checkName(s.Name); !ok {
		issues = append(issues, Issue{Path: "name", Message: msg})
	}
	if s.Score <= 0 {
		issues = append(issues, Issue{Path: "score", Message: "Number must be greater than 0"})
	}
	if len(issues) > 0 {
		return &ValidationError{Issues: issues}
	}
	return nil
}

func parseName(raw json.RawMessage, out *string) (string, bool) {
	if raw == nil {
		return "Required", false
	}
	var name string
	if jsonKind(raw) != "string" {
		return "Expected string, received " + jsonKind(raw), false
	}
	if err := json.Unmarshal(raw, &name); err != nil {
		return "Expected string, received " + jsonKind(raw), false
	}
	if msg, ok := checkName(name); !ok {
		return msg, false
	}
	*out = name
	return "", true
}

func checkName(name string) (string, bool) {
	n := utf8.RuneCountInString(name)
	if n < 1 {
		return "String must contain at least 1 character(s)", false
	}
	if n > tuning.MaxNameLength {
		return fmt.Sprintf("String must contain at most %d character(s)", tuning.MaxNameLength), false
	}
	return "", true
}

func parseScore(raw json.RawMessage, out *int) (string, bool) {
	if raw == nil {
		return "Required", false
	}
	if jsonKind(raw) != "number" {
		return "Expected number, received " + jsonKind(raw), false
	}
	var num json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&num); err != nil {
		return "Expected number, received " + jsonKind(raw), false
	}
	f, err := num.Float64()
	if err != nil || math.IsInf(f, 0) {
		return "Expected number, received " + jsonKind(raw), false
	}
	if f != math.Trunc(f) {
		return "Expected integer, received float", false
	}
	if f <= 0 {
		return "Number must be greater than 0", false
	}
	if f > math.MaxInt32 {
		return fmt.Sprintf("Number must be less than or equal to %d", math.MaxInt32), false
	}
	*out = int(f)
	return "", true
}

func jsonKind(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	switch {
	case s == "null":
		return "null"
	case s == "true" || s == "false":
		return "boolean"
	case strings.HasPrefix(s, `"`):
		return "string"
	case strings.HasPrefix(s, "["):
		return "array"
	case strings.HasPrefix(s, "{"):
		return "object"
	}
	return "number"
}
