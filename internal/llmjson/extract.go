// Package llmjson turns free-text model replies into typed values.
//
// The pipeline is best-effort and non-destructive: trim, unwrap a fenced
// code block, cut the outermost {...} span, parse, then run a structural
// validator supplied by the caller. Parse failures and shape failures are
// reported as distinct typed errors from the domain package.
package llmjson

import (
	"encoding/json"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/lularocha/glossary-builder/internal/domain"
)

// DiagnosticLimit is the number of characters of raw and cleaned text kept
// on a MalformedResponseError.
const DiagnosticLimit = 500

// fencePattern matches a reply that is entirely one fenced block, with or
// without a language tag.
var fencePattern = regexp.MustCompile("^```[A-Za-z0-9_+-]*[ \\t]*\\n?([\\s\\S]*?)\\n?```$")

// Clean strips formatting noise around a JSON object.
func Clean(raw string) string {
	cleaned := strings.TrimSpace(raw)

	if m := fencePattern.FindStringSubmatch(cleaned); m != nil {
		cleaned = strings.TrimSpace(m[1])
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start != -1 && end > start {
		cleaned = cleaned[start : end+1]
	}

	return cleaned
}

// Decode cleans raw, parses it into a T and runs validate on the result.
// A nil validate skips the structural check.
func Decode[T any](raw string, validate func(*T) error) (*T, error) {
	cleaned := Clean(raw)

	var generic any
	if err := json.Unmarshal([]byte(cleaned), &generic); err != nil {
		return nil, &domain.MalformedResponseError{
			Raw:     Truncate(raw, DiagnosticLimit),
			Cleaned: Truncate(cleaned, DiagnosticLimit),
			Err:     err,
		}
	}

	obj, ok := generic.(map[string]any)
	if !ok {
		return nil, &domain.InvalidShapeError{Reason: "top-level value is not an object"}
	}

	var out T
	if err := json.Unmarshal([]byte(cleaned), &out); err != nil {
		return nil, &domain.InvalidShapeError{Reason: err.Error(), Parsed: obj}
	}

	if validate != nil {
		if err := validate(&out); err != nil {
			return nil, &domain.InvalidShapeError{Reason: err.Error(), Parsed: obj}
		}
	}

	return &out, nil
}

// Truncate returns at most n runes of s.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}
