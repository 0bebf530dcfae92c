package forms

import (
	"fmt"

	"github.com/danielgtaylor/go-trform/pkg/fieldtree"
)

// Definition declares a transparent-redirect form: the gateway request kind,
// the ordered field template, display metadata and the protected overlay.
// Definitions are plain values meant to be built once and reused; every Form
// gets its own trees, so sharing a Definition across requests is safe.
type Definition struct {
	// Kind is the transparent-redirect request kind the signed payload
	// declares (see the sign package Kind constants).
	Kind string

	// Fields is the ordered template of visible fields. Entry order is
	// rendering order.
	Fields fieldtree.Template

	// Labels overrides display labels by dotted path; unlisted paths fall
	// back to a title-cased formatting of the leaf name.
	Labels fieldtree.Labels

	// Help supplies optional help text by dotted path.
	Help map[string]string

	// Protected declares the overlay of server-controlled fields. Populated
	// protected values always override caller mutation at signing time; slots
	// declared here but never populated are omitted from the payload.
	Protected fieldtree.Template

	// BooleanFields lists bracketed field names rendered as checkboxes. The
	// gateway only picks a checkbox up when it posts value="true", so
	// renderers must emit that literal value.
	BooleanFields []string
}

func (d Definition) validate() error {
	if d.Kind == "" {
		return fmt.Errorf("forms: definition kind is required")
	}
	if len(d.Fields) == 0 {
		return fmt.Errorf("forms: definition has no fields")
	}
	return nil
}
