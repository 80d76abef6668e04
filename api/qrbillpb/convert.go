package qrbillpb

import (
	"encoding/json"
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/Xausdorf/swiss-qr-bill/internal/domain/bill"
)

// FromPaymentData builds the request message for d.
func FromPaymentData(d bill.PaymentData) (*structpb.Struct, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	s := new(structpb.Struct)
	if err := protojson.Unmarshal(b, s); err != nil {
		return nil, fmt.Errorf("payment data to struct: %w", err)
	}
	return s, nil
}

// ToPaymentData reads a request message with the same rules as a share
// token, so a missing creditor field is bill.ErrMalformed.
func ToPaymentData(s *structpb.Struct) (bill.PaymentData, error) {
	b, err := protojson.Marshal(s)
	if err != nil {
		return bill.PaymentData{}, err
	}
	var d bill.PaymentData
	if err := json.Unmarshal(b, &d); err != nil {
		return bill.PaymentData{}, err
	}
	return d, nil
}
