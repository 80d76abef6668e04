// Package bill models Swiss QR-bill payment data and serializes it into the
// text payload carried by the QR code.
package bill

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Currencies accepted by the QR-bill standard.
const (
	CurrencyCHF = "CHF"
	CurrencyEUR = "EUR"
)

const defaultCountry = "CH"

// PaymentData is what a user enters to request a payment. It is validated
// once by Format and never modified afterwards.
type PaymentData struct {
	Currency string
	Creditor Creditor
	// Amount is optional; nil leaves the amount open for the payer.
	Amount                *decimal.Decimal
	Debtor                *Debtor
	Reference             string
	Message               string
	AdditionalInformation string
}

type Creditor struct {
	Name           string
	Address        string
	BuildingNumber string
	Zip            ZipCode
	City           string
	Account        string
	Country        string
}

type Debtor struct {
	Name           string
	Address        string
	BuildingNumber string
	Zip            ZipCode
	City           string
	Country        string
}

func (d *Debtor) empty() bool {
	return d == nil || (d.Name == "" && d.Address == "" && d.BuildingNumber == "" &&
		d.Zip == "" && d.City == "" && d.Country == "")
}

// ZipCode is a postal code. It decodes from either a JSON string or a JSON
// integer and is always kept as a string.
type ZipCode string

// ValidationError names the first field that failed validation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("bill: %s %s", e.Field, e.Reason)
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}
