package bill

import (
	"strings"
)

const (
	ibanLength    = 21
	qrIIDFirst    = 30000
	qrIIDLast     = 31999
	qrrLength     = 27
	scorMinLength = 5
	scorMaxLength = 25
)

// ReferenceType tells the payer's bank how to read the reference field.
type ReferenceType string

const (
	ReferenceQRR  ReferenceType = "QRR"
	ReferenceSCOR ReferenceType = "SCOR"
	ReferenceNone ReferenceType = "NON"
)

func compact(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), ""))
}

// normalizeAccount strips blanks and checks a CH/LI IBAN: fixed length,
// country prefix and ISO 13616 mod-97 checksum.
func normalizeAccount(s string) (string, error) {
	iban := compact(s)
	switch {
	case iban == "":
		return "", invalid("account", "is required")
	case len(iban) != ibanLength:
		return "", invalid("account", "must be %d characters long", ibanLength)
	case !strings.HasPrefix(iban, "CH") && !strings.HasPrefix(iban, "LI"):
		return "", invalid("account", "must be a Swiss or Liechtenstein IBAN")
	case !alphanumeric(iban):
		return "", invalid("account", "must contain only letters and digits")
	case mod97(iban[4:]+iban[:4]) != 1:
		return "", invalid("account", "has an invalid checksum")
	}
	return iban, nil
}

// isQRIBAN reports whether the institution id of a valid IBAN lies in the
// range reserved for QR-IBANs.
func isQRIBAN(iban string) bool {
	iid := 0
	for _, c := range iban[4:9] {
		if c < '0' || c > '9' {
			return false
		}
		iid = iid*10 + int(c-'0')
	}
	return iid >= qrIIDFirst && iid <= qrIIDLast
}

// normalizeReference classifies and checks the payment reference against the
// account it is paid into.
func normalizeReference(s, iban string) (ReferenceType, string, error) {
	ref := compact(s)
	qrIBAN := isQRIBAN(iban)

	switch {
	case ref == "":
		if qrIBAN {
			return "", "", invalid("reference", "is required for a QR-IBAN")
		}
		return ReferenceNone, "", nil

	case strings.HasPrefix(ref, "RF"):
		if qrIBAN {
			return "", "", invalid("reference", "must be a QR reference for a QR-IBAN")
		}
		if len(ref) < scorMinLength || len(ref) > scorMaxLength || !alphanumeric(ref) {
			return "", "", invalid("reference", "is not a valid creditor reference")
		}
		if mod97(ref[4:]+ref[:4]) != 1 {
			return "", "", invalid("reference", "has an invalid checksum")
		}
		return ReferenceSCOR, ref, nil

	default:
		if !qrIBAN {
			return "", "", invalid("reference", "QR reference requires a QR-IBAN")
		}
		if len(ref) != qrrLength || !digits(ref) {
			return "", "", invalid("reference", "must be %d digits", qrrLength)
		}
		if mod10(ref[:qrrLength-1]) != int(ref[qrrLength-1]-'0') {
			return "", "", invalid("reference", "has an invalid check digit")
		}
		return ReferenceQRR, ref, nil
	}
}

// mod97 computes the ISO 7064 MOD 97-10 remainder with letters mapped to
// 10..35.
func mod97(s string) int {
	r := 0
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9':
			r = (r*10 + int(c-'0')) % 97
		case c >= 'A' && c <= 'Z':
			r = (r*100 + int(c-'A') + 10) % 97
		}
	}
	return r
}

var mod10Table = [10]int{0, 9, 4, 6, 8, 2, 7, 1, 3, 5}

// mod10 returns the recursive modulo 10 check digit for a digit string.
func mod10(s string) int {
	carry := 0
	for _, c := range s {
		carry = mod10Table[(carry+int(c-'0'))%10]
	}
	return (10 - carry) % 10
}

func digits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func alphanumeric(s string) bool {
	for _, c := range s {
		if (c < '0' || c > '9') && (c < 'A' || c > 'Z') {
			return false
		}
	}
	return true
}
