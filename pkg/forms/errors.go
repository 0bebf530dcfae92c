package forms

import (
	"strings"

	"github.com/danielgtaylor/go-trform/pkg/fieldtree"
	"github.com/danielgtaylor/go-trform/pkg/sign"
)

// ErrorMapping splits a gateway result's validation messages into field-level
// messages keyed by dotted paths — the same addressing the engine and the
// label lookup use, so every message lands next to the input that caused
// it — and form-level messages for everything else.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// MapResultErrors converts a confirmed result's bracket-keyed validation
// errors into dotted paths and folds the processor response text for a failed
// transaction into the form-level messages. Messages are trimmed and
// de-duplicated; keys that cannot be parsed fall back to form-level so
// nothing is silently lost.
func MapResultErrors(result *sign.Result) ErrorMapping {
	mapping := ErrorMapping{}
	if result == nil {
		return mapping
	}

	for key, messages := range result.FieldErrors {
		cleaned := normalizeMessages(messages)
		if len(cleaned) == 0 {
			continue
		}
		segments, err := fieldtree.ParsePath(key)
		if err != nil {
			mapping.Form = append(mapping.Form, cleaned...)
			continue
		}
		if mapping.Fields == nil {
			mapping.Fields = make(map[string][]string)
		}
		dotted := fieldtree.JoinDotted(segments)
		mapping.Fields[dotted] = append(mapping.Fields[dotted], cleaned...)
	}

	mapping.Form = append(mapping.Form, normalizeMessages(result.FormErrors)...)
	if !result.Success && result.Message != "" {
		mapping.Form = append(mapping.Form, "Error processing credit card: "+result.Message)
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, dup := seen[trimmed]; dup {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
