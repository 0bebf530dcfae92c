package forms

import (
	"github.com/danielgtaylor/go-trform/pkg/fieldtree"
	"github.com/danielgtaylor/go-trform/pkg/sign"
)

func nameAndAddressFields() []fieldtree.Entry {
	return []fieldtree.Entry{
		fieldtree.Field("first_name"),
		fieldtree.Field("last_name"),
		fieldtree.Field("company"),
		fieldtree.Field("street_address"),
		fieldtree.Field("extended_address"),
		fieldtree.Field("locality"),
		fieldtree.Field("region"),
		fieldtree.Field("postal_code"),
		fieldtree.Field("country_name"),
	}
}

func creditCardFields() []fieldtree.Entry {
	return []fieldtree.Entry{
		fieldtree.Field("cardholder_name"),
		fieldtree.Field("number"),
		fieldtree.Field("expiration_month"),
		fieldtree.Field("expiration_year"),
		fieldtree.Field("cvv"),
	}
}

// Transaction returns the definition for entering transaction details:
// amount, customer contact, card, billing and shipping addresses plus vault
// options. Server-side code populates protected slots such as the transaction
// type or an order ID before signing.
func Transaction() Definition {
	return Definition{
		Kind: sign.KindCreateTransaction,
		Fields: fieldtree.Template{
			fieldtree.Branch("transaction",
				fieldtree.Field("amount"),
				fieldtree.Branch("customer",
					fieldtree.Field("first_name"),
					fieldtree.Field("last_name"),
					fieldtree.Field("company"),
					fieldtree.Field("email"),
					fieldtree.Field("phone"),
					fieldtree.Field("fax"),
					fieldtree.Field("website"),
				),
				fieldtree.Branch("credit_card", creditCardFields()...),
				fieldtree.Branch("billing", nameAndAddressFields()...),
				fieldtree.Branch("shipping", nameAndAddressFields()...),
				fieldtree.Branch("options",
					fieldtree.Field("store_in_vault"),
					fieldtree.Field("add_billing_address_to_payment_method"),
					fieldtree.Field("store_shipping_address_in_vault"),
				),
			),
		},
		Labels: fieldtree.Labels{
			"transaction.credit_card.cvv":              "CVV",
			"transaction.credit_card.expiration_month": "Expiration Month",
			"transaction.credit_card.expiration_year":  "Expiration Year",
			"transaction.options.store_in_vault":       "Save credit card",
			"transaction.options.add_billing_address_to_payment_method": "Save billing address",
			"transaction.options.store_shipping_address_in_vault":       "Save shipping address",
		},
		Protected: fieldtree.Template{
			fieldtree.Branch("transaction",
				fieldtree.Field("type"),
				fieldtree.Field("order_id"),
				fieldtree.Field("customer_id"),
				fieldtree.Field("payment_method_token"),
				fieldtree.Branch("customer",
					fieldtree.Field("id"),
				),
				fieldtree.Branch("credit_card",
					fieldtree.Field("token"),
				),
				fieldtree.Branch("options",
					fieldtree.Field("submit_for_settlement"),
				),
			),
		},
		BooleanFields: []string{
			"transaction[options][store_in_vault]",
			"transaction[options][add_billing_address_to_payment_method]",
			"transaction[options][store_shipping_address_in_vault]",
		},
	}
}

// Customer returns the definition for entering a new customer with an
// attached credit card and billing address.
func Customer() Definition {
	return Definition{
		Kind: sign.KindCreateCustomer,
		Fields: fieldtree.Template{
			fieldtree.Branch("customer",
				fieldtree.Field("first_name"),
				fieldtree.Field("last_name"),
				fieldtree.Field("company"),
				fieldtree.Field("email"),
				fieldtree.Field("phone"),
				fieldtree.Field("fax"),
				fieldtree.Field("website"),
				fieldtree.Branch("credit_card",
					append(creditCardFields(),
						fieldtree.Branch("billing_address", nameAndAddressFields()...),
					)...,
				),
			),
		},
		Labels: fieldtree.Labels{
			"customer.credit_card.cvv": "CVV",
		},
		Protected: fieldtree.Template{
			fieldtree.Branch("customer",
				fieldtree.Field("id"),
				fieldtree.Branch("credit_card",
					fieldtree.Field("token"),
					fieldtree.Branch("options",
						fieldtree.Field("verify_card"),
					),
				),
			),
		},
	}
}

// CreditCard returns the definition for entering a new credit card with its
// billing address.
func CreditCard() Definition {
	return Definition{
		Kind: sign.KindCreatePaymentMethod,
		Fields: fieldtree.Template{
			fieldtree.Branch("credit_card",
				append(creditCardFields(),
					fieldtree.Branch("billing_address", nameAndAddressFields()...),
				)...,
			),
		},
		Labels: fieldtree.Labels{
			"credit_card.cvv": "CVV",
		},
		Protected: fieldtree.Template{
			fieldtree.Branch("credit_card",
				fieldtree.Field("customer_id"),
				fieldtree.Field("token"),
				fieldtree.Branch("options",
					fieldtree.Field("verify_card"),
				),
			),
		},
	}
}
