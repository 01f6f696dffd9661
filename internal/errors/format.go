package errors

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// FormatForCLI formats an error for CLI output.
// Standard errors are wrapped as internal errors so every message carries a code.
func FormatForCLI(err error) string {
	if err == nil {
		return ""
	}

	be, ok := As(err)
	if !ok {
		be = Wrap(ErrCodeInternal, err)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Error: %s\n", be.Message))

	if len(be.Details) > 0 {
		keys := make([]string, 0, len(be.Details))
		for k := range be.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			sb.WriteString(fmt.Sprintf("  %s: %s\n", k, be.Details[k]))
		}
	}

	if be.Cause != nil && be.Cause.Error() != be.Message {
		sb.WriteString(fmt.Sprintf("  Cause: %v\n", be.Cause))
	}

	if be.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  Hint: %s\n", be.Suggestion))
	}

	sb.WriteString(fmt.Sprintf("  Code: %s\n", be.Code))

	return sb.String()
}

// jsonError is the JSON representation of an error.
type jsonError struct {
	Code       string            `json:"code"`
	Message    string            `json:"message"`
	Category   string            `json:"category"`
	Severity   string            `json:"severity"`
	Details    map[string]string `json:"details,omitempty"`
	Suggestion string            `json:"suggestion,omitempty"`
	Cause      string            `json:"cause,omitempty"`
}

// FormatJSON returns a JSON representation of the error.
func FormatJSON(err error) ([]byte, error) {
	if err == nil {
		return json.Marshal(nil)
	}

	be, ok := As(err)
	if !ok {
		be = Wrap(ErrCodeInternal, err)
	}

	je := jsonError{
		Code:       be.Code,
		Message:    be.Message,
		Category:   string(be.Category),
		Severity:   string(be.Severity),
		Details:    be.Details,
		Suggestion: be.Suggestion,
	}
	if be.Cause != nil {
		je.Cause = be.Cause.Error()
	}

	return json.Marshal(je)
}

// LogAttrs formats an error as alternating key/value pairs for slog.
func LogAttrs(err error) []any {
	if err == nil {
		return nil
	}

	be, ok := As(err)
	if !ok {
		return []any{"error", err.Error()}
	}

	attrs := []any{
		"error_code", be.Code,
		"message", be.Message,
		"category", string(be.Category),
		"severity", string(be.Severity),
	}
	if be.Cause != nil {
		attrs = append(attrs, "cause", be.Cause.Error())
	}
	for k, v := range be.Details {
		attrs = append(attrs, "detail_"+k, v)
	}
	return attrs
}
