package sharelink

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Xausdorf/swiss-qr-bill/internal/domain/bill"
	"github.com/Xausdorf/swiss-qr-bill/internal/domain/entity"
	"github.com/Xausdorf/swiss-qr-bill/internal/domain/repository"
)

var (
	ErrMissingIdempotencyKey = errors.New("idempotency key is required")
	ErrIdempotencyConflict   = errors.New("idempotency key was used for different payment data")
)

var tracer = otel.Tracer("github.com/Xausdorf/swiss-qr-bill/internal/usecase/sharelink")

type Request struct {
	IdempotencyKey string
	Data           bill.PaymentData
}

type Response struct {
	ID    uuid.UUID
	Token string
	// Replayed is set when the link was created by an earlier request with
	// the same idempotency key.
	Replayed bool
}

type UseCase struct {
	uow repository.UnitOfWork
}

func NewUseCase(uow repository.UnitOfWork) *UseCase {
	return &UseCase{uow: uow}
}

// Execute stores a short link for validated payment data. Retries with the
// same idempotency key return the link created first.
func (uc *UseCase) Execute(ctx context.Context, req Request) (*Response, error) {
	ctx, span := tracer.Start(ctx, "sharelink.Execute")
	defer span.End()

	if req.IdempotencyKey == "" {
		return nil, ErrMissingIdempotencyKey
	}
	if err := bill.Validate(req.Data); err != nil {
		return nil, err
	}
	token, err := bill.Encode(req.Data)
	if err != nil {
		return nil, fmt.Errorf("encode token: %w", err)
	}
	fingerprint := entity.Fingerprint(token)

	cached, err := uc.uow.Idempotency().Find(ctx, req.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return replay(cached, fingerprint, token)
	}

	tx, err := uc.uow.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.Idempotency().Lock(ctx, req.IdempotencyKey); err != nil {
		return nil, err
	}

	cached, err = tx.Idempotency().Find(ctx, req.IdempotencyKey)
	if err != nil {
		return nil, err
	}
	if cached != nil {
		return replay(cached, fingerprint, token)
	}

	shared := entity.NewSharedBill(token, req.Data.Creditor.Name)
	if err := tx.Bills().Create(ctx, shared); err != nil {
		return nil, err
	}

	record := entity.NewIdempotencyRecord(req.IdempotencyKey, fingerprint, shared.ID())
	if err := tx.Idempotency().Save(ctx, record); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	span.SetAttributes(attribute.String("bill.id", shared.ID().String()))
	return &Response{ID: shared.ID(), Token: token}, nil
}

// Resolve returns the transport token behind a short link.
func (uc *UseCase) Resolve(ctx context.Context, id uuid.UUID) (string, error) {
	ctx, span := tracer.Start(ctx, "sharelink.Resolve")
	defer span.End()

	shared, err := uc.uow.Bills().FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	return shared.Token(), nil
}

func replay(record *entity.IdempotencyRecord, fingerprint, token string) (*Response, error) {
	if !record.Matches(fingerprint) {
		return nil, ErrIdempotencyConflict
	}
	return &Response{ID: record.BillID(), Token: token, Replayed: true}, nil
}
