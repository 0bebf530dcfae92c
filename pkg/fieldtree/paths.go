package fieldtree

import "strings"

// ParsePath splits a field path into its segments. Both the dotted form
// ("transaction.credit_card.number") and the bracketed wire form
// ("transaction[credit_card][number]") address the same node; mixing the two
// styles in one path is accepted. The tokenizer knows nothing about any tree —
// callers feed the segment list to a tree walk separately.
func ParsePath(path string) ([]string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return nil, pathErr("parse", path, ErrInvalidPath)
	}

	var segments []string
	var current strings.Builder
	inBracket := false

	flush := func() bool {
		segment := current.String()
		current.Reset()
		if segment == "" {
			return false
		}
		segments = append(segments, segment)
		return true
	}

	for _, r := range trimmed {
		switch r {
		case '.':
			if inBracket {
				current.WriteRune(r)
				continue
			}
			if !flush() {
				return nil, pathErr("parse", path, ErrInvalidPath)
			}
		case '[':
			if inBracket {
				return nil, pathErr("parse", path, ErrInvalidPath)
			}
			// The opening bracket terminates whatever came before it, which
			// may be nothing when a bracket directly follows another.
			if current.Len() > 0 {
				flush()
			}
			if len(segments) == 0 {
				return nil, pathErr("parse", path, ErrInvalidPath)
			}
			inBracket = true
		case ']':
			if !inBracket {
				return nil, pathErr("parse", path, ErrInvalidPath)
			}
			if !flush() {
				return nil, pathErr("parse", path, ErrInvalidPath)
			}
			inBracket = false
		default:
			current.WriteRune(r)
		}
	}

	if inBracket {
		return nil, pathErr("parse", path, ErrInvalidPath)
	}
	if current.Len() > 0 {
		flush()
	} else if strings.HasSuffix(trimmed, ".") {
		return nil, pathErr("parse", path, ErrInvalidPath)
	}

	if len(segments) == 0 {
		return nil, pathErr("parse", path, ErrInvalidPath)
	}
	return segments, nil
}

// JoinDotted renders path segments in the dotted form used for label lookup
// and error mapping.
func JoinDotted(segments []string) string {
	return strings.Join(segments, ".")
}

// JoinBracketed renders path segments in the flat bracketed form the gateway
// expects as an HTML field name: top[level2][level3].
func JoinBracketed(segments []string) string {
	if len(segments) == 0 {
		return ""
	}
	var out strings.Builder
	out.WriteString(segments[0])
	for _, segment := range segments[1:] {
		out.WriteByte('[')
		out.WriteString(segment)
		out.WriteByte(']')
	}
	return out.String()
}

// DottedToBracketed converts a dotted path to its bracketed wire form. The
// input is re-tokenized, so bracketed input passes through unchanged.
func DottedToBracketed(path string) (string, error) {
	segments, err := ParsePath(path)
	if err != nil {
		return "", err
	}
	return JoinBracketed(segments), nil
}
