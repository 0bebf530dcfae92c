package forms

import (
	"strconv"
	"strings"
)

// Widget identifies the input control a host renderer should use for a field.
type Widget string

const (
	WidgetText        Widget = "text"
	WidgetCheckbox    Widget = "checkbox"
	WidgetMonthSelect Widget = "month-select"
	WidgetYearSelect  Widget = "year-select"
	WidgetHidden      Widget = "hidden"
)

// CheckboxValue is the literal value checkbox inputs must post. The gateway
// ignores any other truthy spelling.
const CheckboxValue = "true"

// yearChoiceSpan is how many expiration years to offer starting from the
// current one.
const yearChoiceSpan = 16

// Field describes one renderable input for the host framework: the bracketed
// wire name to use as the input's name attribute, the dotted path used for
// label and error lookup, sanitized display text, the current value and the
// widget kind with its select options where applicable.
type Field struct {
	Name    string
	Path    string
	Label   string
	Help    string
	Value   string
	Widget  Widget
	Options []string
	Errors  []string
}

// Fields lists the visible inputs in declaration order, reflecting caller
// mutation but not the protected overlay — protected values are never
// rendered as editable inputs. Labels and help text pass through an HTML
// sanitizer before reaching the host.
func (f *Form) Fields() []Field {
	leaves := f.fields.Leaves()
	out := make([]Field, 0, len(leaves))
	for _, leaf := range leaves {
		field := Field{
			Name:   leaf.Key,
			Path:   leaf.Path,
			Label:  sanitizeText(f.def.Labels.For(leaf.Path)),
			Help:   sanitizeText(f.def.Help[leaf.Path]),
			Value:  leaf.Value,
			Widget: f.widgetFor(leaf.Key),
			Errors: f.fieldErrors[leaf.Path],
		}
		switch field.Widget {
		case WidgetMonthSelect:
			field.Options = monthChoices()
		case WidgetYearSelect:
			field.Options = yearChoices(f.now().Year())
		}
		out = append(out, field)
	}
	return out
}

func (f *Form) widgetFor(key string) Widget {
	for _, name := range f.def.BooleanFields {
		if name == key {
			return WidgetCheckbox
		}
	}
	switch {
	case strings.HasSuffix(key, "[expiration_month]"):
		return WidgetMonthSelect
	case strings.HasSuffix(key, "[expiration_year]"):
		return WidgetYearSelect
	}
	return WidgetText
}

func monthChoices() []string {
	out := make([]string, 0, 12)
	for month := 1; month <= 12; month++ {
		out = append(out, strconv.Itoa(month))
	}
	return out
}

func yearChoices(start int) []string {
	out := make([]string, 0, yearChoiceSpan)
	for year := start; year < start+yearChoiceSpan; year++ {
		out = append(out, strconv.Itoa(year))
	}
	return out
}
