package bill

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrMalformed = errors.New("bill: malformed payment data")

type wireData struct {
	Currency              string          `json:"currency,omitempty"`
	Creditor              *wireCreditor   `json:"creditor"`
	Amount                json.RawMessage `json:"amount,omitempty"`
	Debtor                *wireDebtor     `json:"debtor,omitempty"`
	Reference             string          `json:"reference,omitempty"`
	Message               string          `json:"message,omitempty"`
	AdditionalInformation string          `json:"additionalInformation,omitempty"`
}

type wireCreditor struct {
	Name           *string  `json:"name"`
	Address        *string  `json:"address"`
	BuildingNumber string   `json:"buildingNumber,omitempty"`
	Zip            *ZipCode `json:"zip"`
	City           *string  `json:"city"`
	Account        *string  `json:"account"`
	Country        string   `json:"country,omitempty"`
}

type wireDebtor struct {
	Name           string  `json:"name"`
	Address        string  `json:"address"`
	BuildingNumber string  `json:"buildingNumber,omitempty"`
	Zip            ZipCode `json:"zip"`
	City           string  `json:"city"`
	Country        string  `json:"country,omitempty"`
}

// UnmarshalJSON accepts the shape produced by the payment form: a creditor
// with string name, address, city and account, a string or integer zip, and
// an optional numeric amount. Field contents are checked later by Format.
func (d *PaymentData) UnmarshalJSON(b []byte) error {
	var w wireData
	if err := json.Unmarshal(b, &w); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	c := w.Creditor
	if c == nil || c.Name == nil || c.Address == nil || c.Zip == nil || c.City == nil || c.Account == nil {
		return fmt.Errorf("%w: creditor name, address, zip, city and account are required", ErrMalformed)
	}

	out := PaymentData{
		Currency: w.Currency,
		Creditor: Creditor{
			Name:           *c.Name,
			Address:        *c.Address,
			BuildingNumber: c.BuildingNumber,
			Zip:            *c.Zip,
			City:           *c.City,
			Account:        *c.Account,
			Country:        c.Country,
		},
		Reference:             w.Reference,
		Message:               w.Message,
		AdditionalInformation: w.AdditionalInformation,
	}
	if w.Amount != nil {
		if !numberLiteral(w.Amount) {
			return fmt.Errorf("%w: amount must be a number, got %s", ErrMalformed, w.Amount)
		}
		a, err := decimal.NewFromString(string(w.Amount))
		if err != nil {
			return fmt.Errorf("%w: amount: %v", ErrMalformed, err)
		}
		out.Amount = &a
	}
	if w.Debtor != nil {
		out.Debtor = &Debtor{
			Name:           w.Debtor.Name,
			Address:        w.Debtor.Address,
			BuildingNumber: w.Debtor.BuildingNumber,
			Zip:            w.Debtor.Zip,
			City:           w.Debtor.City,
			Country:        w.Debtor.Country,
		}
	}

	*d = out
	return nil
}

func (d PaymentData) MarshalJSON() ([]byte, error) {
	c := d.Creditor
	w := wireData{
		Currency: d.Currency,
		Creditor: &wireCreditor{
			Name:           &c.Name,
			Address:        &c.Address,
			BuildingNumber: c.BuildingNumber,
			Zip:            &c.Zip,
			City:           &c.City,
			Account:        &c.Account,
			Country:        c.Country,
		},
		Reference:             d.Reference,
		Message:               d.Message,
		AdditionalInformation: d.AdditionalInformation,
	}
	if d.Amount != nil {
		w.Amount = json.RawMessage(d.Amount.String())
	}
	if !d.Debtor.empty() {
		w.Debtor = &wireDebtor{
			Name:           d.Debtor.Name,
			Address:        d.Debtor.Address,
			BuildingNumber: d.Debtor.BuildingNumber,
			Zip:            d.Debtor.Zip,
			City:           d.Debtor.City,
			Country:        d.Debtor.Country,
		}
	}
	return json.Marshal(w)
}

// numberLiteral reports whether raw is a bare JSON number, not a string or null.
func numberLiteral(raw json.RawMessage) bool {
	if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return false
	}
	var n json.Number
	return json.Unmarshal(raw, &n) == nil
}

func (z *ZipCode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*z = ZipCode(s)
		return nil
	}
	n, err := strconv.ParseInt(string(b), 10, 64)
	if err != nil {
		return fmt.Errorf("zip must be a string or an integer, got %s", b)
	}
	*z = ZipCode(strconv.FormatInt(n, 10))
	return nil
}

// Decode reads a share token: URL-safe base64 (padding optional) around the
// JSON form of PaymentData. Any defect yields false rather than an error.
func Decode(token string) (PaymentData, bool) {
	raw := strings.TrimRight(token, "=")
	raw = strings.NewReplacer("+", "-", "/", "_").Replace(raw)
	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return PaymentData{}, false
	}
	var d PaymentData
	if err := json.Unmarshal(b, &d); err != nil {
		return PaymentData{}, false
	}
	return d, true
}

// Encode produces the share token for d.
func Encode(d PaymentData) (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
