package bill_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xausdorf/swiss-qr-bill/internal/domain/bill"
)

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func hansMuster() bill.PaymentData {
	return bill.PaymentData{
		Currency: "CHF",
		Creditor: bill.Creditor{
			Name:    "Hans Muster",
			Address: "Bahnhofstrasse 1",
			Zip:     "8001",
			City:    "Zürich",
			Account: "CH9300762011623852957",
			Country: "CH",
		},
		Amount: amount("100.00"),
	}
}

func TestFormat_HansMuster(t *testing.T) {
	p, err := bill.Format(hansMuster())
	require.NoError(t, err)

	want := "SPC\n0200\n1\nCH9300762011623852957\n" +
		"S\nHans Muster\nBahnhofstrasse 1\n\n8001\nZürich\nCH\n" +
		"\n\n\n\n\n\n\n" +
		"100.00\nCHF\n" +
		"\n\n\n\n\n\n\n" +
		"NON\n\n\nEPD"
	assert.Equal(t, want, p.String())
	assert.Equal(t, len(want), p.Len())
	assert.Len(t, p.Lines(), 31)
	assert.False(t, strings.HasSuffix(p.String(), "\n"))
}

func TestFormat_OpenAmountAndDefaults(t *testing.T) {
	d := hansMuster()
	d.Amount = nil
	d.Currency = ""
	d.Creditor.Country = ""
	d.Creditor.Account = "ch93 0076 2011 6238 5295 7"

	p, err := bill.Format(d)
	require.NoError(t, err)

	lines := p.Lines()
	assert.Equal(t, "CH9300762011623852957", lines[3])
	assert.Equal(t, "CH", lines[10])
	assert.Equal(t, "", lines[18])
	assert.Equal(t, "CHF", lines[19])
}

func TestFormat_DoesNotMutateInput(t *testing.T) {
	d := hansMuster()
	d.Creditor.Name = "  Hans Muster  "
	before := d

	_, err := bill.Format(d)
	require.NoError(t, err)
	assert.Equal(t, before, d)
}

func TestFormat_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(d *bill.PaymentData)
		field  string
	}{
		{"empty name", func(d *bill.PaymentData) { d.Creditor.Name = "" }, "name"},
		{"blank name", func(d *bill.PaymentData) { d.Creditor.Name = "   " }, "name"},
		{"empty address", func(d *bill.PaymentData) { d.Creditor.Address = "" }, "address"},
		{"empty zip", func(d *bill.PaymentData) { d.Creditor.Zip = "" }, "zip"},
		{"empty city", func(d *bill.PaymentData) { d.Creditor.City = "" }, "city"},
		{"empty account", func(d *bill.PaymentData) { d.Creditor.Account = "" }, "account"},
		{"bad checksum", func(d *bill.PaymentData) { d.Creditor.Account = "CH9300762011623852958" }, "account"},
		{"short account", func(d *bill.PaymentData) { d.Creditor.Account = "CH930076201162385295" }, "account"},
		{"foreign iban", func(d *bill.PaymentData) { d.Creditor.Account = "DE89370400440532013000" }, "account"},
		{"negative amount", func(d *bill.PaymentData) { d.Amount = amount("-1") }, "amount"},
		{"three decimals", func(d *bill.PaymentData) { d.Amount = amount("1.005") }, "amount"},
		{"amount too large", func(d *bill.PaymentData) { d.Amount = amount("1000000000") }, "amount"},
		{"currency", func(d *bill.PaymentData) { d.Currency = "USD" }, "currency"},
		{"country", func(d *bill.PaymentData) { d.Creditor.Country = "Schweiz" }, "country"},
		{"name too long", func(d *bill.PaymentData) { d.Creditor.Name = strings.Repeat("a", 71) }, "name"},
		{"line break in name", func(d *bill.PaymentData) { d.Creditor.Name = "Hans\nMuster" }, "name"},
		{"emoji in city", func(d *bill.PaymentData) { d.Creditor.City = "Zürich 🐒" }, "city"},
		{"qrr on regular iban", func(d *bill.PaymentData) { d.Reference = "210000000003139471430009017" }, "reference"},
		{"bad scor", func(d *bill.PaymentData) { d.Reference = "RF19539007547034" }, "reference"},
		{"qr-iban without reference", func(d *bill.PaymentData) { d.Creditor.Account = "CH4431999123000889012" }, "reference"},
		{"message too long", func(d *bill.PaymentData) { d.Message = strings.Repeat("m", 141) }, "message"},
		{"message and info too long", func(d *bill.PaymentData) {
			d.Message = strings.Repeat("m", 100)
			d.AdditionalInformation = strings.Repeat("i", 41)
		}, "additionalInformation"},
		{"debtor without city", func(d *bill.PaymentData) {
			d.Debtor = &bill.Debtor{Name: "Pia Rutschmann", Address: "Marktgasse 28", Zip: "9400"}
		}, "debtor.city"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := hansMuster()
			tt.mutate(&d)

			_, err := bill.Format(d)
			var verr *bill.ValidationError
			require.True(t, errors.As(err, &verr), "expected validation error, got %v", err)
			assert.Equal(t, tt.field, verr.Field)
			assert.ErrorAs(t, bill.Validate(d), &verr)
		})
	}
}

func TestFormat_FirstOffendingFieldWins(t *testing.T) {
	d := bill.PaymentData{Amount: amount("-1")}

	_, err := bill.Format(d)
	var verr *bill.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	d.Creditor = bill.Creditor{Name: "Hans", Address: "Weg 1", Zip: "8000", City: "Bern", Account: "CH00"}
	_, err = bill.Format(d)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "account", verr.Field)
}

func TestFormat_AcceptedAmounts(t *testing.T) {
	for in, want := range map[string]string{
		"0":            "0.00",
		"0.1":          "0.10",
		"1.50":         "1.50",
		"1.500":        "1.50",
		"999999999.99": "999999999.99",
	} {
		d := hansMuster()
		d.Amount = amount(in)
		p, err := bill.Format(d)
		require.NoError(t, err, in)
		assert.Equal(t, want, p.Lines()[18], in)
	}
}

func TestFormat_References(t *testing.T) {
	t.Run("qr reference on qr-iban", func(t *testing.T) {
		d := hansMuster()
		d.Creditor.Account = "CH44 3199 9123 0008 8901 2"
		d.Reference = "21 00000 00003 13947 14300 09017"

		p, err := bill.Format(d)
		require.NoError(t, err)
		lines := p.Lines()
		assert.Equal(t, "QRR", lines[27])
		assert.Equal(t, "210000000003139471430009017", lines[28])
	})

	t.Run("creditor reference", func(t *testing.T) {
		d := hansMuster()
		d.Reference = "RF18 5390 0754 7034"

		p, err := bill.Format(d)
		require.NoError(t, err)
		lines := p.Lines()
		assert.Equal(t, "SCOR", lines[27])
		assert.Equal(t, "RF18539007547034", lines[28])
	})
}

func TestFormat_OptionalSections(t *testing.T) {
	d := hansMuster()
	d.Creditor.Account = "LI21 0881 0000 2324 013A A"
	d.Creditor.Country = "li"
	d.Creditor.BuildingNumber = "12a"
	d.Currency = "eur"
	d.Message = "Rechnung 42"
	d.AdditionalInformation = "//S1/10/10201409"
	d.Debtor = &bill.Debtor{Name: "Pia Rutschmann", Address: "Marktgasse", BuildingNumber: "28", Zip: "9400", City: "Rorschach"}

	p, err := bill.Format(d)
	require.NoError(t, err)

	lines := p.Lines()
	require.Len(t, lines, 32)
	assert.Equal(t, "LI21088100002324013AA", lines[3])
	assert.Equal(t, "12a", lines[7])
	assert.Equal(t, "LI", lines[10])
	assert.Equal(t, "EUR", lines[19])
	assert.Equal(t, []string{"S", "Pia Rutschmann", "Marktgasse", "28", "9400", "Rorschach", "CH"}, lines[20:27])
	assert.Equal(t, "Rechnung 42", lines[29])
	assert.Equal(t, "EPD", lines[30])
	assert.Equal(t, "//S1/10/10201409", lines[31])
}

func TestFormat_NormalizesToNFC(t *testing.T) {
	d := hansMuster()
	d.Creditor.City = "Zürich"

	p, err := bill.Format(d)
	require.NoError(t, err)
	assert.Equal(t, "Zürich", p.Lines()[9])
}

func TestTitle(t *testing.T) {
	d := hansMuster()
	assert.Equal(t, "QR bill for Hans Muster for CHF 100.00.", d.Title())

	d.Amount = amount("0")
	assert.Equal(t, "QR bill for Hans Muster.", d.Title())

	d.Amount = nil
	assert.Equal(t, "QR bill for Hans Muster.", d.Title())
	assert.Equal(t, "", d.AmountLabel())
}
