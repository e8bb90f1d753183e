package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// asTocError returns the first TocError in err's chain, wrapping plain
// errors as internal errors.
func asTocError(err error) *TocError {
	var te *TocError
	if stderrors.As(err, &te) {
		return te
	}
	return Wrap(ErrCodeInternal, err)
}

// FormatForCLI formats an error for CLI output.
// Uses a concise format suitable for terminal display.
func FormatForCLI(err error) string {
	if err == nil {
		return ""
	}

	te := asTocError(err)

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Error: %s\n", te.Message))

	// Details in stable order so output is reproducible
	keys := make([]string, 0, len(te.Details))
	for k := range te.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", k, te.Details[k]))
	}

	if te.Suggestion != "" {
		sb.WriteString(fmt.Sprintf("  Hint: %s\n", te.Suggestion))
	}

	sb.WriteString(fmt.Sprintf("  Code: %s\n", te.Code))

	return sb.String()
}

// FormatForLog formats an error for structured logging.
// Returns key-value pairs suitable for slog attributes.
func FormatForLog(err error) map[string]any {
	if err == nil {
		return nil
	}

	var te *TocError
	if !stderrors.As(err, &te) {
		return map[string]any{
			"error": err.Error(),
		}
	}

	result := map[string]any{
		"error_code": te.Code,
		"message":    te.Message,
		"category":   string(te.Category),
		"severity":   string(te.Severity),
	}

	if te.Cause != nil {
		result["cause"] = te.Cause.Error()
	}

	if te.Suggestion != "" {
		result["suggestion"] = te.Suggestion
	}

	for k, v := range te.Details {
		result["detail_"+k] = v
	}

	return result
}

// LogAttrs returns FormatForLog's fields as slog key-value arguments in
// stable key order.
func LogAttrs(err error) []any {
	fields := FormatForLog(err)
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	attrs := make([]any, 0, 2*len(keys))
	for _, k := range keys {
		attrs = append(attrs, k, fields[k])
	}
	return attrs
}
