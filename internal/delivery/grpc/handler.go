package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/Xausdorf/swiss-qr-bill/api/qrbillpb"
	"github.com/Xausdorf/swiss-qr-bill/internal/domain/bill"
	"github.com/Xausdorf/swiss-qr-bill/internal/domain/qrcode"
	"github.com/Xausdorf/swiss-qr-bill/internal/usecase/generateqr"
)

type Handler struct {
	qrbillpb.UnimplementedBillRendererServer

	generateQRUC *generateqr.UseCase
}

func NewHandler(generateQRUC *generateqr.UseCase) *Handler {
	return &Handler{generateQRUC: generateQRUC}
}

func (h *Handler) RenderSVG(ctx context.Context, req *structpb.Struct) (*wrapperspb.BytesValue, error) {
	data, err := qrbillpb.ToPaymentData(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid payment data: %v", err)
	}

	svg, err := h.generateQRUC.Execute(ctx, generateqr.Request{Data: data, Format: generateqr.FormatSVG})
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.Bytes(svg), nil
}

func (h *Handler) FormatPayload(ctx context.Context, req *structpb.Struct) (*wrapperspb.StringValue, error) {
	data, err := qrbillpb.ToPaymentData(req)
	if err != nil {
		return nil, status.Errorf(codes.InvalidArgument, "invalid payment data: %v", err)
	}

	payload, err := h.generateQRUC.Payload(ctx, data)
	if err != nil {
		return nil, toStatus(err)
	}
	return wrapperspb.String(payload.String()), nil
}

func toStatus(err error) error {
	var verr *bill.ValidationError
	switch {
	case errors.As(err, &verr):
		return status.Error(codes.InvalidArgument, verr.Error())
	case errors.Is(err, qrcode.ErrPayloadTooLarge):
		return status.Error(codes.InvalidArgument, "input too long to encode")
	default:
		return status.Errorf(codes.Internal, "render failed: %v", err)
	}
}
