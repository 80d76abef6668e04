package generateqr

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Xausdorf/swiss-qr-bill/internal/domain/bill"
	"github.com/Xausdorf/swiss-qr-bill/internal/domain/qrcode"
)

//go:generate mockgen -destination=mocks/generator.go -package=mocks github.com/Xausdorf/swiss-qr-bill/internal/domain/qrcode Generator

// ErrNotFound is returned for tokens that do not decode to payment data.
var ErrNotFound = errors.New("bill not found")

var tracer = otel.Tracer("github.com/Xausdorf/swiss-qr-bill/internal/usecase/generateqr")

type Format string

const (
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

type Request struct {
	Data   bill.PaymentData
	Format Format
	// Size is the PNG edge length in pixels; SVG output ignores it.
	Size int
}

// Meta describes a bill and the symbol it encodes to.
type Meta struct {
	Title         string
	Amount        string
	PayloadLength int
	Version       int
	Level         qrcode.Level
	Mode          qrcode.Mode
	Mask          int
}

type UseCase struct {
	generator qrcode.Generator
}

func NewUseCase(generator qrcode.Generator) *UseCase {
	return &UseCase{generator: generator}
}

// Decode reads a share token. Undecodable tokens are ErrNotFound.
func (uc *UseCase) Decode(token string) (bill.PaymentData, error) {
	d, ok := bill.Decode(token)
	if !ok {
		return bill.PaymentData{}, ErrNotFound
	}
	return d, nil
}

func (uc *UseCase) Execute(ctx context.Context, req Request) ([]byte, error) {
	_, span := tracer.Start(ctx, "generateqr.Execute")
	defer span.End()

	payload, err := bill.Format(req.Data)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("qr.format", string(req.Format)),
		attribute.Int("qr.payload_length", payload.Len()),
	)

	switch req.Format {
	case FormatSVG:
		return uc.generator.SVG(payload.String())
	case FormatPNG:
		return uc.generator.PNG(payload.String(), req.Size)
	default:
		return nil, fmt.Errorf("unsupported image format %q", req.Format)
	}
}

func (uc *UseCase) Payload(ctx context.Context, d bill.PaymentData) (bill.Payload, error) {
	_, span := tracer.Start(ctx, "generateqr.Payload")
	defer span.End()

	return bill.Format(d)
}

func (uc *UseCase) Meta(ctx context.Context, d bill.PaymentData) (*Meta, error) {
	_, span := tracer.Start(ctx, "generateqr.Meta")
	defer span.End()

	payload, err := bill.Format(d)
	if err != nil {
		return nil, err
	}
	spec, _, err := qrcode.Encode(payload.String(), qrcode.OverlayLevel)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.Int("qr.version", spec.Version),
		attribute.String("qr.level", spec.Level.String()),
	)

	return &Meta{
		Title:         d.Title(),
		Amount:        d.AmountLabel(),
		PayloadLength: payload.Len(),
		Version:       spec.Version,
		Level:         spec.Level,
		Mode:          spec.Mode,
		Mask:          spec.Mask,
	}, nil
}
