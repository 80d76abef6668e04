package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/Xausdorf/swiss-qr-bill/internal/domain/entity"
)

//go:generate mockgen -destination=../../usecase/sharelink/mocks/repository.go -package=mocks . BillRepository,IdempotencyRepository,UnitOfWork

var ErrNotFound = errors.New("not found")

type BillRepository interface {
	Create(ctx context.Context, bill *entity.SharedBill) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.SharedBill, error)
}

type IdempotencyRepository interface {
	Find(ctx context.Context, key string) (*entity.IdempotencyRecord, error)
	Save(ctx context.Context, record *entity.IdempotencyRecord) error
	Lock(ctx context.Context, key string) error
}
