package forms_test

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/danielgtaylor/go-trform/pkg/fieldtree"
	"github.com/danielgtaylor/go-trform/pkg/forms"
	"github.com/danielgtaylor/go-trform/pkg/sign"
)

// stubSigner records the payload it is asked to sign so tests can assert on
// the exact flattened sequence without real key material.
type stubSigner struct {
	kind        string
	fields      []fieldtree.FlatField
	redirectURL string
	calls       int
}

func (s *stubSigner) TRData(kind string, fields []fieldtree.FlatField, redirectURL string) (string, error) {
	s.kind = kind
	s.fields = fields
	s.redirectURL = redirectURL
	s.calls++
	return "signed-tr-data", nil
}

func (s *stubSigner) Action() string {
	return "https://gateway.test/merchants/merchant_123/transparent_redirect_requests"
}

func checkoutDefinition() forms.Definition {
	return forms.Definition{
		Kind: sign.KindCreateTransaction,
		Fields: fieldtree.Template{
			fieldtree.Branch("transaction",
				fieldtree.Field("amount"),
				fieldtree.Branch("credit_card",
					fieldtree.Field("number"),
					fieldtree.Field("cvv"),
				),
			),
		},
		Protected: fieldtree.Template{
			fieldtree.Branch("transaction",
				fieldtree.Field("type"),
				fieldtree.Field("order_id"),
			),
		},
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := forms.New(forms.Definition{}, &stubSigner{}); err == nil {
		t.Fatal("expected error for empty definition")
	}
	if _, err := forms.New(checkoutDefinition(), nil); err == nil {
		t.Fatal("expected error for nil signer")
	}
}

func TestGenerateTRDataLifecycle(t *testing.T) {
	signer := &stubSigner{}
	form, err := forms.New(checkoutDefinition(), signer, forms.WithRedirectURL("https://example.com/done"))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if err := form.RemoveSection("transaction.credit_card.cvv"); err != nil {
		t.Fatalf("RemoveSection returned error: %v", err)
	}
	if err := form.SetValue("transaction.amount", "19.99"); err != nil {
		t.Fatalf("SetValue returned error: %v", err)
	}
	if err := form.SetProtected("transaction.type", "sale"); err != nil {
		t.Fatalf("SetProtected returned error: %v", err)
	}

	trData, err := form.GenerateTRData()
	if err != nil {
		t.Fatalf("GenerateTRData returned error: %v", err)
	}
	if trData != "signed-tr-data" {
		t.Fatalf("GenerateTRData = %q", trData)
	}

	if signer.kind != sign.KindCreateTransaction {
		t.Fatalf("signed kind = %q", signer.kind)
	}
	if signer.redirectURL != "https://example.com/done" {
		t.Fatalf("signed redirect URL = %q", signer.redirectURL)
	}

	// Protected type wins a place in the payload; the declared but
	// unpopulated order_id slot does not.
	wantPayload := []fieldtree.FlatField{
		{Key: "transaction[amount]", Value: "19.99"},
		{Key: "transaction[credit_card][number]", Value: ""},
		{Key: "transaction[type]", Value: "sale"},
	}
	if diff := cmp.Diff(wantPayload, signer.fields); diff != "" {
		t.Fatalf("signed payload mismatch (-want +got):\n%s", diff)
	}
}

func TestProtectedOverridesCallerValue(t *testing.T) {
	signer := &stubSigner{}
	form, err := forms.New(checkoutDefinition(), signer, forms.WithRedirectURL("https://example.com/done"))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	// Caller-driven mutation happens first; the protected value set before it
	// must still dominate because merging runs at signing time.
	if err := form.SetProtected("transaction.amount", "99.99"); err != nil {
		t.Fatalf("SetProtected returned error: %v", err)
	}
	if err := form.SetValue("transaction.amount", "5.00"); err != nil {
		t.Fatalf("SetValue returned error: %v", err)
	}

	if _, err := form.GenerateTRData(); err != nil {
		t.Fatalf("GenerateTRData returned error: %v", err)
	}

	for _, field := range signer.fields {
		if field.Key == "transaction[amount]" {
			if field.Value != "99.99" {
				t.Fatalf("signed amount = %q, want protected 99.99", field.Value)
			}
			return
		}
	}
	t.Fatal("transaction[amount] missing from signed payload")
}

func TestFinalizedFormRejectsMutation(t *testing.T) {
	form, err := forms.New(checkoutDefinition(), &stubSigner{}, forms.WithRedirectURL("https://example.com/done"))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := form.GenerateTRData(); err != nil {
		t.Fatalf("GenerateTRData returned error: %v", err)
	}

	if err := form.SetValue("transaction.amount", "1.00"); !errors.Is(err, forms.ErrFinalized) {
		t.Fatalf("SetValue after finalize = %v, want ErrFinalized", err)
	}
	if err := form.RemoveSection("transaction.credit_card"); !errors.Is(err, forms.ErrFinalized) {
		t.Fatalf("RemoveSection after finalize = %v, want ErrFinalized", err)
	}
	if err := form.SetProtected("transaction.type", "sale"); !errors.Is(err, forms.ErrFinalized) {
		t.Fatalf("SetProtected after finalize = %v, want ErrFinalized", err)
	}
}

func TestGenerateTRDataRepeatable(t *testing.T) {
	signer := &stubSigner{}
	form, err := forms.New(checkoutDefinition(), signer, forms.WithRedirectURL("https://example.com/done"))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	first, err := form.GenerateTRData()
	if err != nil {
		t.Fatalf("GenerateTRData returned error: %v", err)
	}
	second, err := form.GenerateTRData()
	if err != nil {
		t.Fatalf("second GenerateTRData returned error: %v", err)
	}
	if first != second {
		t.Fatalf("repeated GenerateTRData diverged: %q vs %q", first, second)
	}
	if signer.calls != 1 {
		t.Fatalf("signer invoked %d times, want 1", signer.calls)
	}
}

func TestGenerateTRDataRequiresRedirectURL(t *testing.T) {
	form, err := forms.New(checkoutDefinition(), &stubSigner{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := form.GenerateTRData(); err == nil {
		t.Fatal("expected error without redirect URL")
	}
}

func TestHiddenFields(t *testing.T) {
	form, err := forms.New(checkoutDefinition(), &stubSigner{}, forms.WithRedirectURL("https://example.com/done"))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if fields := form.HiddenFields(); fields != nil {
		t.Fatalf("HiddenFields before finalize = %v, want nil", fields)
	}

	if _, err := form.GenerateTRData(); err != nil {
		t.Fatalf("GenerateTRData returned error: %v", err)
	}

	want := []forms.Field{{
		Name:   forms.TRDataFieldName,
		Value:  "signed-tr-data",
		Widget: forms.WidgetHidden,
	}}
	if diff := cmp.Diff(want, form.HiddenFields()); diff != "" {
		t.Fatalf("hidden fields mismatch (-want +got):\n%s", diff)
	}
}

func TestFieldsDescriptors(t *testing.T) {
	def := forms.Transaction()
	form, err := forms.New(def, &stubSigner{}, forms.WithClock(func() time.Time {
		return time.Date(2012, time.January, 15, 0, 0, 0, 0, time.UTC)
	}))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	byPath := make(map[string]forms.Field)
	var order []string
	for _, field := range form.Fields() {
		byPath[field.Path] = field
		order = append(order, field.Path)
	}

	// Declaration order survives into descriptor order.
	if order[0] != "transaction.amount" || order[1] != "transaction.customer.first_name" {
		t.Fatalf("unexpected leading field order: %v", order[:2])
	}

	cvv := byPath["transaction.credit_card.cvv"]
	if cvv.Label != "CVV" {
		t.Fatalf("cvv label = %q, want explicit CVV", cvv.Label)
	}
	if cvv.Name != "transaction[credit_card][cvv]" {
		t.Fatalf("cvv wire name = %q", cvv.Name)
	}
	if cvv.Widget != forms.WidgetText {
		t.Fatalf("cvv widget = %q", cvv.Widget)
	}

	first := byPath["transaction.customer.first_name"]
	if first.Label != "First Name" {
		t.Fatalf("first_name label = %q, want default First Name", first.Label)
	}

	vault := byPath["transaction.options.store_in_vault"]
	if vault.Widget != forms.WidgetCheckbox {
		t.Fatalf("store_in_vault widget = %q, want checkbox", vault.Widget)
	}

	month := byPath["transaction.credit_card.expiration_month"]
	if month.Widget != forms.WidgetMonthSelect {
		t.Fatalf("expiration_month widget = %q", month.Widget)
	}
	if len(month.Options) != 12 || month.Options[0] != "1" || month.Options[11] != "12" {
		t.Fatalf("month options = %v", month.Options)
	}

	year := byPath["transaction.credit_card.expiration_year"]
	if year.Widget != forms.WidgetYearSelect {
		t.Fatalf("expiration_year widget = %q", year.Widget)
	}
	if len(year.Options) != 16 || year.Options[0] != "2012" || year.Options[15] != "2027" {
		t.Fatalf("year options = %v", year.Options)
	}
}

func TestFieldsSanitizesDisplayText(t *testing.T) {
	def := checkoutDefinition()
	def.Labels = fieldtree.Labels{
		"transaction.amount": `<script>alert("x")</script>Amount`,
	}
	def.Help = map[string]string{
		"transaction.amount": "Total <b>including</b> tax",
	}

	form, err := forms.New(def, &stubSigner{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	amount := form.Fields()[0]
	if amount.Label != "Amount" {
		t.Fatalf("sanitized label = %q, want Amount", amount.Label)
	}
	if amount.Help != "Total including tax" {
		t.Fatalf("sanitized help = %q", amount.Help)
	}
}

func TestWithResultPrefillsAndMapsErrors(t *testing.T) {
	result := &sign.Result{
		HTTPStatus: 422,
		Message:    "Do Not Honor",
		Params: map[string]string{
			"transaction[amount]":           "19.99",
			"transaction[unknown][ignored]": "x",
		},
		FieldErrors: map[string][]string{
			"transaction[credit_card][number]": {"is invalid"},
		},
		FormErrors: []string{"Transaction could not be processed"},
	}

	form, err := forms.New(checkoutDefinition(), &stubSigner{}, forms.WithResult(result))
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	var amount, number forms.Field
	for _, field := range form.Fields() {
		switch field.Path {
		case "transaction.amount":
			amount = field
		case "transaction.credit_card.number":
			number = field
		}
	}

	if amount.Value != "19.99" {
		t.Fatalf("amount prefill = %q, want 19.99", amount.Value)
	}
	if diff := cmp.Diff([]string{"is invalid"}, number.Errors); diff != "" {
		t.Fatalf("number errors mismatch (-want +got):\n%s", diff)
	}

	// The echoed unknown key must not grow the form.
	for _, field := range form.Fields() {
		if field.Path == "transaction.unknown.ignored" {
			t.Fatal("unknown echoed param created a field")
		}
	}

	wantForm := []string{
		"Transaction could not be processed",
		"Error processing credit card: Do Not Honor",
	}
	if diff := cmp.Diff(wantForm, form.FormErrors()); diff != "" {
		t.Fatalf("form errors mismatch (-want +got):\n%s", diff)
	}
}

func TestAction(t *testing.T) {
	form, err := forms.New(checkoutDefinition(), &stubSigner{})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	want := "https://gateway.test/merchants/merchant_123/transparent_redirect_requests"
	if got := form.Action(); got != want {
		t.Fatalf("Action = %q, want %q", got, want)
	}
}
