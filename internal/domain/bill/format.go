package bill

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/unicode/norm"
)

// Payload element values fixed by the Swiss Implementation Guidelines.
const (
	qrType        = "SPC"
	qrVersion     = "0200"
	codingType    = "1"
	addressType   = "S"
	trailer       = "EPD"
	lineSeparator = "\n"
)

const (
	maxName       = 70
	maxAddress    = 70
	maxBuilding   = 16
	maxZip        = 16
	maxCity       = 35
	maxMessage    = 140
	maxAdditional = 140
)

var maxAmount = decimal.RequireFromString("999999999.99")

// permitted is the Latin character set allowed in Swiss payment payloads.
var permitted = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0020, Hi: 0x007e, Stride: 1},
		{Lo: 0x00a0, Hi: 0x017f, Stride: 1},
		{Lo: 0x0218, Hi: 0x021b, Stride: 1},
		{Lo: 0x20ac, Hi: 0x20ac, Stride: 1},
	},
	LatinOffset: 1,
}

// Payload is the line-structured text encoded into the QR code.
type Payload struct {
	text string
}

func (p Payload) String() string {
	return p.text
}

// Len returns the payload length in bytes, which is what QR version selection
// works with.
func (p Payload) Len() int {
	return len(p.text)
}

func (p Payload) Lines() []string {
	return strings.Split(p.text, lineSeparator)
}

// Format validates d and serializes it into the QR-bill payload. It fails
// with a *ValidationError naming the first offending field.
func Format(d PaymentData) (Payload, error) {
	v, err := validate(d)
	if err != nil {
		return Payload{}, err
	}

	lines := make([]string, 0, 32)
	lines = append(lines, qrType, qrVersion, codingType, v.account)
	lines = append(lines, addressType, v.creditor.Name, v.creditor.Address, v.creditor.BuildingNumber,
		string(v.creditor.Zip), v.creditor.City, v.creditor.Country)
	lines = append(lines, "", "", "", "", "", "", "")
	lines = append(lines, v.amount, v.currency)
	if v.debtor != nil {
		lines = append(lines, addressType, v.debtor.Name, v.debtor.Address, v.debtor.BuildingNumber,
			string(v.debtor.Zip), v.debtor.City, v.debtor.Country)
	} else {
		lines = append(lines, "", "", "", "", "", "", "")
	}
	lines = append(lines, string(v.referenceType), v.reference, v.message, trailer)
	if v.additional != "" {
		lines = append(lines, v.additional)
	}

	return Payload{text: strings.Join(lines, lineSeparator)}, nil
}

// Validate reports the first validation failure of d, if any.
func Validate(d PaymentData) error {
	_, err := validate(d)
	return err
}

type validated struct {
	creditor      Creditor
	debtor        *Debtor
	account       string
	amount        string
	currency      string
	referenceType ReferenceType
	reference     string
	message       string
	additional    string
}

func validate(d PaymentData) (*validated, error) {
	v := &validated{}
	var err error
	c := &v.creditor

	if c.Name, err = text("name", d.Creditor.Name, maxName, true); err != nil {
		return nil, err
	}
	if c.Address, err = text("address", d.Creditor.Address, maxAddress, true); err != nil {
		return nil, err
	}
	zip, err := text("zip", string(d.Creditor.Zip), maxZip, true)
	if err != nil {
		return nil, err
	}
	c.Zip = ZipCode(zip)
	if c.City, err = text("city", d.Creditor.City, maxCity, true); err != nil {
		return nil, err
	}
	if v.account, err = normalizeAccount(d.Creditor.Account); err != nil {
		return nil, err
	}
	c.Account = v.account
	if v.amount, err = amount(d.Amount); err != nil {
		return nil, err
	}
	if v.currency, err = currency(d.Currency); err != nil {
		return nil, err
	}
	if c.Country, err = country("country", d.Creditor.Country); err != nil {
		return nil, err
	}
	if c.BuildingNumber, err = text("buildingNumber", d.Creditor.BuildingNumber, maxBuilding, false); err != nil {
		return nil, err
	}
	if v.referenceType, v.reference, err = normalizeReference(d.Reference, v.account); err != nil {
		return nil, err
	}
	if v.message, err = text("message", d.Message, maxMessage, false); err != nil {
		return nil, err
	}
	if v.additional, err = text("additionalInformation", d.AdditionalInformation, maxAdditional, false); err != nil {
		return nil, err
	}
	if utf8.RuneCountInString(v.message)+utf8.RuneCountInString(v.additional) > maxMessage {
		return nil, invalid("additionalInformation", "together with message must be at most %d characters", maxMessage)
	}
	if v.debtor, err = debtor(d.Debtor); err != nil {
		return nil, err
	}

	return v, nil
}

func debtor(d *Debtor) (*Debtor, error) {
	if d.empty() {
		return nil, nil
	}
	out := &Debtor{}
	var err error
	if out.Name, err = text("debtor.name", d.Name, maxName, true); err != nil {
		return nil, err
	}
	if out.Address, err = text("debtor.address", d.Address, maxAddress, true); err != nil {
		return nil, err
	}
	zip, err := text("debtor.zip", string(d.Zip), maxZip, true)
	if err != nil {
		return nil, err
	}
	out.Zip = ZipCode(zip)
	if out.City, err = text("debtor.city", d.City, maxCity, true); err != nil {
		return nil, err
	}
	if out.Country, err = country("debtor.country", d.Country); err != nil {
		return nil, err
	}
	if out.BuildingNumber, err = text("debtor.buildingNumber", d.BuildingNumber, maxBuilding, false); err != nil {
		return nil, err
	}
	return out, nil
}

// text trims and NFC-normalizes a free-text field and checks it against the
// permitted character set.
func text(field, s string, maxLen int, required bool) (string, error) {
	s = norm.NFC.String(strings.TrimSpace(s))
	if s == "" {
		if required {
			return "", invalid(field, "is required")
		}
		return "", nil
	}
	if utf8.RuneCountInString(s) > maxLen {
		return "", invalid(field, "must be at most %d characters", maxLen)
	}
	for _, r := range s {
		if !unicode.Is(permitted, r) {
			return "", invalid(field, "contains unsupported character %q", r)
		}
	}
	return s, nil
}

func amount(a *decimal.Decimal) (string, error) {
	if a == nil {
		return "", nil
	}
	switch {
	case a.IsNegative():
		return "", invalid("amount", "must not be negative")
	case !a.Equal(a.Round(2)):
		return "", invalid("amount", "must have at most 2 decimal places")
	case a.GreaterThan(maxAmount):
		return "", invalid("amount", "must not exceed %s", maxAmount.StringFixed(2))
	}
	return a.StringFixed(2), nil
}

func currency(s string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(s))
	switch c {
	case "":
		return CurrencyCHF, nil
	case CurrencyCHF, CurrencyEUR:
		return c, nil
	default:
		return "", invalid("currency", "must be %s or %s", CurrencyCHF, CurrencyEUR)
	}
}

func country(field, s string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(s))
	if c == "" {
		return defaultCountry, nil
	}
	if len(c) != 2 || c[0] < 'A' || c[0] > 'Z' || c[1] < 'A' || c[1] > 'Z' {
		return "", invalid(field, "must be a two-letter country code")
	}
	return c, nil
}
