// Package trform renders payment-gateway transparent-redirect forms through a
// host web framework and validates the signed responses the gateway posts
// back. The heavy lifting lives in the subpackages — pkg/fieldtree for the
// ordered nested field engine, pkg/forms for the form lifecycle and
// pkg/sign for the signing and callback-verification contract — while this
// package re-exports the common types and offers one-call entry points for
// the typical checkout flow.
package trform

import (
	"github.com/danielgtaylor/go-trform/pkg/fieldtree"
	"github.com/danielgtaylor/go-trform/pkg/forms"
	"github.com/danielgtaylor/go-trform/pkg/sign"
)

// Field tree types re-exported for callers declaring custom templates.
type (
	Template  = fieldtree.Template
	Entry     = fieldtree.Entry
	Tree      = fieldtree.Tree
	FlatField = fieldtree.FlatField
	Labels    = fieldtree.Labels
)

// Form layer types.
type (
	Definition = forms.Definition
	Form       = forms.Form
	Field      = forms.Field
	Widget     = forms.Widget
	Option     = forms.Option
)

// Signing types.
type (
	Credentials = sign.Credentials
	Environment = sign.Environment
	Result      = sign.Result
	Signer      = sign.Signer
	Confirmer   = sign.Confirmer
)

// Form options re-exported from pkg/forms.
var (
	WithRedirectURL = forms.WithRedirectURL
	WithResult      = forms.WithResult
)

// NewForm builds a form from an arbitrary definition using the supplied
// signer.
func NewForm(def Definition, signer Signer, opts ...Option) (*Form, error) {
	return forms.New(def, signer, opts...)
}

// NewTransactionForm builds the stock transaction-details form.
func NewTransactionForm(signer Signer, opts ...Option) (*Form, error) {
	return forms.New(forms.Transaction(), signer, opts...)
}

// NewCustomerForm builds the stock new-customer form.
func NewCustomerForm(signer Signer, opts ...Option) (*Form, error) {
	return forms.New(forms.Customer(), signer, opts...)
}

// NewCreditCardForm builds the stock new-credit-card form.
func NewCreditCardForm(signer Signer, opts ...Option) (*Form, error) {
	return forms.New(forms.CreditCard(), signer, opts...)
}

// NewHMACSigner builds the default signer implementation for the given
// merchant credentials.
func NewHMACSigner(creds Credentials, opts ...sign.Option) (*sign.HMACSigner, error) {
	return sign.NewHMACSigner(creds, opts...)
}

// Confirm verifies a gateway callback query string against the merchant
// credentials in one call, for handlers that do not keep a signer around.
func Confirm(creds Credentials, rawQuery string) (*Result, error) {
	signer, err := sign.NewHMACSigner(creds)
	if err != nil {
		return nil, err
	}
	return signer.Confirm(rawQuery)
}
