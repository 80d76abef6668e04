package bill

import "fmt"

// Title is the human headline for a bill, e.g. "QR bill for Hans Muster for
// CHF 100.00.". A missing or zero amount is left out.
func (d PaymentData) Title() string {
	if d.Amount == nil || d.Amount.IsZero() {
		return fmt.Sprintf("QR bill for %s.", d.Creditor.Name)
	}
	return fmt.Sprintf("QR bill for %s for %s.", d.Creditor.Name, d.AmountLabel())
}

// AmountLabel renders the amount with its currency, or "" when open.
func (d PaymentData) AmountLabel() string {
	if d.Amount == nil {
		return ""
	}
	cur := d.Currency
	if cur == "" {
		cur = CurrencyCHF
	}
	return fmt.Sprintf("%s %s", cur, d.Amount.StringFixed(2))
}
