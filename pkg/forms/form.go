package forms

import (
	"errors"
	"fmt"
	"time"

	"github.com/danielgtaylor/go-trform/pkg/fieldtree"
	"github.com/danielgtaylor/go-trform/pkg/sign"
)

// ErrFinalized reports a mutation attempted after GenerateTRData. Once the
// payload has been signed, any further change would diverge from what the
// gateway will accept, so late mutation is a caller bug surfaced loudly.
var ErrFinalized = errors.New("forms: form already finalized")

// Option configures a Form at construction time.
type Option func(*Form)

// WithRedirectURL sets the URL the gateway redirects the browser back to.
// Required before GenerateTRData.
func WithRedirectURL(url string) Option {
	return func(f *Form) {
		f.redirectURL = url
	}
}

// WithResult pre-populates the form from a confirmed gateway result: echoed
// params become field values and gateway validation messages become field and
// form errors. Pass the result of Confirm when re-rendering after a declined
// or invalid submission.
func WithResult(result *sign.Result) Option {
	return func(f *Form) {
		f.result = result
	}
}

// WithClock overrides the time source used for expiration-year choices.
func WithClock(now func() time.Time) Option {
	return func(f *Form) {
		if now != nil {
			f.now = now
		}
	}
}

// Form is one request-scoped transparent-redirect form instance. It is not
// safe for concurrent use and is consumed within a single request: build,
// mutate, sign, render.
type Form struct {
	def       Definition
	signer    sign.Signer
	fields    *fieldtree.Tree
	protected *fieldtree.Tree

	result      *sign.Result
	fieldErrors map[string][]string
	formErrors  []string

	redirectURL string
	trData      string
	finalized   bool
	now         func() time.Time
}

// New builds a form from its definition. The signer is the external
// collaborator that produces tr_data; forms never touch key material
// themselves.
func New(def Definition, signer sign.Signer, opts ...Option) (*Form, error) {
	if err := def.validate(); err != nil {
		return nil, err
	}
	if signer == nil {
		return nil, fmt.Errorf("forms: signer is required")
	}

	f := &Form{
		def:       def,
		signer:    signer,
		fields:    fieldtree.New(def.Fields),
		protected: fieldtree.New(def.Protected),
		now:       time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}

	if f.result != nil {
		f.applyResult(f.result)
	}
	return f, nil
}

// applyResult copies echoed values into matching leaves and maps gateway
// validation messages onto dotted paths. Echoed keys that do not match a
// declared leaf are ignored; the template, not the callback, decides what the
// form shows.
func (f *Form) applyResult(result *sign.Result) {
	for _, leaf := range f.fields.Leaves() {
		if value, ok := result.Params[leaf.Key]; ok && value != "" {
			// Leaves() reported the leaf, so the set cannot fail.
			_ = f.fields.SetValue(leaf.Key, value)
		}
	}

	mapping := MapResultErrors(result)
	f.fieldErrors = mapping.Fields
	f.formErrors = mapping.Form
}

// RemoveSection deletes a visible field or a whole section (for example all
// shipping address fields) from the form. The protected overlay is not
// affected.
func (f *Form) RemoveSection(path string) error {
	if f.finalized {
		return ErrFinalized
	}
	return f.fields.RemoveSection(path)
}

// SetValue assigns a visible field's value, creating the field if the
// definition did not declare it.
func (f *Form) SetValue(path, value string) error {
	if f.finalized {
		return ErrFinalized
	}
	return f.fields.SetValue(path, value)
}

// SetProtected populates a protected slot. Protected values are merged after
// all caller mutation, so nothing set through SetValue can shadow them.
func (f *Form) SetProtected(path, value string) error {
	if f.finalized {
		return ErrFinalized
	}
	return f.protected.SetValue(path, value)
}

// GenerateTRData merges the protected overlay into a copy of the field tree,
// flattens it and signs the result, freezing the form. The merge happens on a
// copy so Fields keeps describing what the end user actually edits; protected
// values travel only inside the signed payload. Repeated calls return the
// token produced the first time.
func (f *Form) GenerateTRData() (string, error) {
	if f.finalized {
		return f.trData, nil
	}
	if f.redirectURL == "" {
		return "", fmt.Errorf("forms: redirect URL is required to generate tr_data")
	}

	payload := f.fields.Clone()
	if err := payload.MergeProtected(f.protected); err != nil {
		return "", err
	}

	trData, err := f.signer.TRData(f.def.Kind, payload.Flatten(), f.redirectURL)
	if err != nil {
		return "", err
	}
	f.trData = trData
	f.finalized = true
	return trData, nil
}

// TRData returns the signed token generated by GenerateTRData, or the empty
// string before finalization.
func (f *Form) TRData() string {
	return f.trData
}

// Finalized reports whether the form has been signed and frozen.
func (f *Form) Finalized() bool {
	return f.finalized
}

// Action returns the gateway URL the rendered form must post to.
func (f *Form) Action() string {
	return f.signer.Action()
}

// TRDataFieldName is the hidden input name carrying the signed token.
const TRDataFieldName = "tr_data"

// HiddenFields returns the hidden inputs the host must render inside the
// form: currently just the signed tr_data token. Returns nil before
// finalization since there is nothing trustworthy to render yet.
func (f *Form) HiddenFields() []Field {
	if !f.finalized {
		return nil
	}
	return []Field{{
		Name:   TRDataFieldName,
		Value:  f.trData,
		Widget: WidgetHidden,
	}}
}

// FieldErrors exposes gateway validation messages keyed by dotted field path.
func (f *Form) FieldErrors() map[string][]string {
	return f.fieldErrors
}

// FormErrors exposes messages not tied to a single field, including the
// processor response text for declined transactions.
func (f *Form) FormErrors() []string {
	return f.formErrors
}
