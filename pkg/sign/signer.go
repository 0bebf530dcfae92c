package sign

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/danielgtaylor/go-trform/pkg/fieldtree"
)

// apiVersion is the transparent-redirect protocol revision embedded in every
// signed payload.
const apiVersion = "2"

// trTimeFormat is the compact UTC timestamp the gateway expects in tr_data.
const trTimeFormat = "20060102150405"

// Kinds of transparent-redirect requests the gateway accepts.
const (
	KindCreateTransaction   = "create_transaction"
	KindCreateCustomer      = "create_customer"
	KindUpdateCustomer      = "update_customer"
	KindCreatePaymentMethod = "create_payment_method"
	KindUpdatePaymentMethod = "update_payment_method"
)

// Signer produces the signed tr_data token for a flattened field payload and
// knows the gateway endpoint the signed form posts to. The token is
// deterministic over the exact (key, value) sequence it receives; the engine's
// flatten order is therefore the canonical payload order.
type Signer interface {
	TRData(kind string, fields []fieldtree.FlatField, redirectURL string) (string, error)
	Action() string
}

// Confirmer verifies the query string the gateway posts back after a
// transparent redirect and exposes the outcome as a Result.
type Confirmer interface {
	Confirm(rawQuery string) (*Result, error)
}

// Verification failures reported by Confirm. These describe the inbound data,
// not engine state: a tampered or truncated callback is an expected runtime
// condition the application inspects and re-displays.
var (
	ErrMissingSignature = errors.New("sign: callback query has no hash parameter")
	ErrBadSignature     = errors.New("sign: callback signature mismatch")
)

// Option configures an HMACSigner.
type Option func(*HMACSigner)

// WithClock overrides the timestamp source embedded in signed payloads. Tests
// use it to pin tr_data output.
func WithClock(now func() time.Time) Option {
	return func(s *HMACSigner) {
		if now != nil {
			s.now = now
		}
	}
}

// HMACSigner implements the gateway's transparent-redirect signing contract:
// tr_data is the hex HMAC-SHA1 of the url-encoded payload under the merchant's
// private key, joined to the payload with a pipe. SHA-1 here is the gateway's
// wire contract, not a local choice.
type HMACSigner struct {
	creds Credentials
	now   func() time.Time
}

// NewHMACSigner validates the credentials and returns a ready signer.
func NewHMACSigner(creds Credentials, opts ...Option) (*HMACSigner, error) {
	if err := creds.Validate(); err != nil {
		return nil, err
	}
	s := &HMACSigner{creds: creds, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// TRData builds and signs the hidden tr_data value for a flattened field
// payload. Protocol fields lead the encoded payload, followed by the supplied
// fields in their given order; nothing is added, dropped or reordered beyond
// that.
func (s *HMACSigner) TRData(kind string, fields []fieldtree.FlatField, redirectURL string) (string, error) {
	if strings.TrimSpace(kind) == "" {
		return "", fmt.Errorf("sign: tr_data kind is required")
	}
	if strings.TrimSpace(redirectURL) == "" {
		return "", fmt.Errorf("sign: redirect URL is required")
	}

	pairs := make([]fieldtree.FlatField, 0, len(fields)+5)
	pairs = append(pairs,
		fieldtree.FlatField{Key: "api_version", Value: apiVersion},
		fieldtree.FlatField{Key: "kind", Value: kind},
		fieldtree.FlatField{Key: "time", Value: s.now().UTC().Format(trTimeFormat)},
		fieldtree.FlatField{Key: "redirect_url", Value: redirectURL},
		fieldtree.FlatField{Key: "public_key", Value: s.creds.PublicKey},
	)
	pairs = append(pairs, fields...)

	content := encodePairs(pairs)
	return s.digest(content) + "|" + content, nil
}

// Confirm checks the posted-back query string's trailing hash parameter
// against the HMAC of everything before it, using a constant-time compare,
// then parses the query into a Result. Signature failures are returned as
// errors; gateway-side validation failures are data on the Result.
func (s *HMACSigner) Confirm(rawQuery string) (*Result, error) {
	content, gotHash, found := strings.Cut(rawQuery, "&hash=")
	if !found || gotHash == "" {
		return nil, ErrMissingSignature
	}
	if !hmac.Equal([]byte(s.digest(content)), []byte(gotHash)) {
		return nil, ErrBadSignature
	}

	return resultFromQuery(content)
}

// Action returns the gateway endpoint the signed form posts to.
func (s *HMACSigner) Action() string {
	return s.creds.TransparentRedirectURL()
}

func (s *HMACSigner) digest(content string) string {
	mac := hmac.New(sha1.New, []byte(s.creds.PrivateKey))
	mac.Write([]byte(content))
	return hex.EncodeToString(mac.Sum(nil))
}

// encodePairs url-encodes pairs preserving their order. url.Values.Encode
// would sort keys, which breaks the payload-order guarantee, so encoding is
// done by hand.
func encodePairs(pairs []fieldtree.FlatField) string {
	var out strings.Builder
	for i, pair := range pairs {
		if i > 0 {
			out.WriteByte('&')
		}
		out.WriteString(url.QueryEscape(pair.Key))
		out.WriteByte('=')
		out.WriteString(url.QueryEscape(pair.Value))
	}
	return out.String()
}
