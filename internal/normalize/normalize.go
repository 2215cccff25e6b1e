// Package normalize turns raw model output into contract details.
// Hosted models are not contractually bound to answer in JSON, so parsing
// is two-tier: a strict JSON object parse first, then a line-oriented
// "Field: value" heuristic for models that answer in prose.
package normalize

import (
	"encoding/json"
	"io"
	"strconv"
	"strings"
)

// Details maps contract field names to extracted values.
// Values are string, int, or nil (explicit "no value").
type Details map[string]any

// Parse extracts contract details from raw model output.
// It never fails: output that is neither a JSON object nor contains any
// "key: value" line yields an empty (non-nil) Details.
func Parse(raw string) Details {
	if m, ok := parseJSONObject(raw); ok {
		return coerceMap(m)
	}
	return parseLines(raw)
}

// parseJSONObject attempts a strict parse of raw as a single JSON object.
// Numbers are kept as json.Number so integer values survive intact.
func parseJSONObject(raw string) (map[string]any, bool) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()

	var m map[string]any
	if err := dec.Decode(&m); err != nil || m == nil {
		return nil, false
	}
	// Trailing content after the object means this wasn't a clean JSON answer.
	if _, err := dec.Token(); err != io.EOF {
		return nil, false
	}
	return m, true
}

// parseLines extracts "key: value" pairs line by line. The split is on the
// first colon only; values may legitimately contain colons (times, ratios).
// Lines without a colon are dropped.
func parseLines(raw string) Details {
	details := Details{}
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSuffix(line, "\r")
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		details[coerceKey(key)] = coerceValue(value)
	}
	return details
}

func coerceMap(m map[string]any) Details {
	details := make(Details, len(m))
	for k, v := range m {
		details[coerceKey(k)] = coerceValue(v)
	}
	return details
}

// coerceKey strips embedded double quotes and surrounding whitespace.
func coerceKey(k string) string {
	return strings.TrimSpace(strings.ReplaceAll(k, `"`, ""))
}

// coerceValue applies the field-level coercions, identically for both parse
// paths: strip embedded double quotes, map the literal text "null"
// (case-sensitive) to an absent value, and convert pure-digit strings to
// integers. "12.5" stays a string; only decimal digits coerce.
func coerceValue(v any) any {
	switch t := v.(type) {
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(t, `"`, ""))
		if s == "null" {
			return nil
		}
		if isDigits(s) {
			if n, err := strconv.Atoi(s); err == nil {
				return n
			}
		}
		return s
	case json.Number:
		if n, err := strconv.Atoi(t.String()); err == nil {
			return n
		}
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
