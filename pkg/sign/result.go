package sign

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/danielgtaylor/go-trform/pkg/fieldtree"
)

// Result is the verified outcome of a transparent redirect. It is data, not
// an error: a declined card or a failed field validation still produces a
// Result, which the form layer maps back onto the rendered fields.
type Result struct {
	// Success reports a 2xx gateway status with no validation failures.
	Success bool
	// Kind echoes the transparent-redirect kind that was signed.
	Kind string
	// ID is the gateway identifier of the created or updated resource.
	ID string
	// HTTPStatus is the gateway's own status for the redirect outcome.
	HTTPStatus int
	// Message carries the processor response text, when the gateway sent one.
	Message string
	// Params echoes the submitted field values keyed by their bracketed wire
	// names, used to re-populate a re-rendered form.
	Params map[string]string
	// FieldErrors holds gateway validation messages keyed by bracketed field
	// names.
	FieldErrors map[string][]string
	// FormErrors holds messages that do not belong to a single field, in the
	// order the gateway sent them.
	FormErrors []string
}

// resultFromQuery parses the verified callback content pair by pair in wire
// order, so repeated confirms of the same callback produce identical message
// ordering. url.ParseQuery would collect pairs into a map and lose exactly
// that ordering across distinct keys.
func resultFromQuery(content string) (*Result, error) {
	res := &Result{Params: make(map[string]string)}

	for _, pair := range strings.Split(content, "&") {
		if pair == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(pair, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, fmt.Errorf("sign: parse callback query: %w", err)
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, fmt.Errorf("sign: parse callback query: %w", err)
		}

		switch key {
		case "kind":
			res.Kind = value
		case "id":
			res.ID = value
		case "message":
			res.Message = value
		case "http_status":
			if status, err := strconv.Atoi(value); err == nil {
				res.HTTPStatus = status
			}
		case "api_version", "public_key", "time":
			// Protocol bookkeeping, not field echoes.
		default:
			segments, err := fieldtree.ParsePath(key)
			if err != nil {
				continue
			}
			if segments[0] == "errors" {
				res.addError(segments[1:], value)
				continue
			}
			if _, dup := res.Params[key]; !dup {
				res.Params[key] = value
			}
		}
	}

	if len(res.Params) == 0 {
		res.Params = nil
	}
	res.Success = res.HTTPStatus/100 == 2 && len(res.FieldErrors) == 0 && len(res.FormErrors) == 0
	return res, nil
}

// addError files a gateway validation message under its field. The gateway
// nests some messages under intermediate "errors" wrapper segments and files
// form-level ones under "base"; both conventions are unwrapped here.
func (r *Result) addError(segments []string, message string) {
	cleaned := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment == "errors" {
			continue
		}
		cleaned = append(cleaned, segment)
	}

	if len(cleaned) == 0 || (len(cleaned) == 1 && cleaned[0] == "base") {
		r.FormErrors = append(r.FormErrors, message)
		return
	}

	key := fieldtree.JoinBracketed(cleaned)
	if r.FieldErrors == nil {
		r.FieldErrors = make(map[string][]string)
	}
	r.FieldErrors[key] = append(r.FieldErrors[key], message)
}
