package sign

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Environment identifies a gateway deployment by its base URL.
type Environment struct {
	BaseURL string `validate:"required,url"`
}

// Well-known gateway environments.
var (
	Sandbox    = Environment{BaseURL: "https://sandbox.braintreegateway.com"}
	Production = Environment{BaseURL: "https://www.braintreegateway.com"}
)

// Credentials hold the merchant account used to sign transparent-redirect
// data and verify gateway callbacks. The private key never leaves the signer;
// only the public key is embedded in signed payloads.
type Credentials struct {
	Environment Environment `validate:"required"`
	MerchantID  string      `validate:"required"`
	PublicKey   string      `validate:"required"`
	PrivateKey  string      `validate:"required"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that every credential component is present before any
// signing is attempted. A half-configured signer would otherwise produce
// payloads the gateway rejects with opaque failures.
func (c Credentials) Validate() error {
	if err := validate.Struct(c); err != nil {
		return normalizeValidationError(err)
	}
	return nil
}

// TransparentRedirectURL returns the gateway endpoint browsers post the
// signed form to.
func (c Credentials) TransparentRedirectURL() string {
	base := strings.TrimRight(c.Environment.BaseURL, "/")
	return base + "/merchants/" + c.MerchantID + "/transparent_redirect_requests"
}

func normalizeValidationError(err error) error {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	first := validationErrs[0]
	return fmt.Errorf("sign: credentials: %s %s", first.Field(), validationMessage(first))
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "url":
		return "must be a valid URL"
	default:
		return fmt.Sprintf("failed %s validation", fe.Tag())
	}
}
