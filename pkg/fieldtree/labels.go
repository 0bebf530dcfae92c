package fieldtree

import "strings"

// Labels maps dotted field paths to human-readable labels. The mapping is
// sparse: paths without an explicit entry fall back to a title-cased
// formatting of the path's final segment, so templates only need to spell out
// the labels the default gets wrong ("cvv" -> "CVV").
type Labels map[string]string

// For returns the label for a dotted or bracketed path, falling back to
// DefaultLabel of the final segment. A path that does not tokenize cannot
// address any tree node, but rendering still needs text, so the raw input is
// formatted instead of returning a blank label. Lookup is pure: it never
// mutates the map.
func (l Labels) For(path string) string {
	segments, err := ParsePath(path)
	if err != nil {
		return DefaultLabel(path)
	}
	dotted := JoinDotted(segments)
	if label, ok := l[dotted]; ok {
		return label
	}
	return DefaultLabel(segments[len(segments)-1])
}

// DefaultLabel converts a snake_case field name into a display label:
// underscores and dashes become spaces and each word is title-cased.
func DefaultLabel(name string) string {
	words := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, word := range words {
		words[i] = titleCase(word)
	}
	return strings.Join(words, " ")
}

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}
