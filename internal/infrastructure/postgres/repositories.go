package postgres

import (
	"context"
	"errors"
	"hash/fnv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Xausdorf/swiss-qr-bill/internal/domain/entity"
	"github.com/Xausdorf/swiss-qr-bill/internal/domain/repository"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type UnitOfWork struct {
	pool *pgxpool.Pool
	tx   pgx.Tx
}

func NewUnitOfWork(pool *pgxpool.Pool) *UnitOfWork {
	return &UnitOfWork{pool: pool}
}

func (u *UnitOfWork) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	tx, err := u.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &UnitOfWork{pool: u.pool, tx: tx}, nil
}

func (u *UnitOfWork) Commit(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Commit(ctx)
}

func (u *UnitOfWork) Rollback(ctx context.Context) error {
	if u.tx == nil {
		return nil
	}
	return u.tx.Rollback(ctx)
}

func (u *UnitOfWork) Bills() repository.BillRepository {
	return &BillRepo{q: u.querier()}
}

func (u *UnitOfWork) Idempotency() repository.IdempotencyRepository {
	return &IdempotencyRepo{q: u.querier(), tx: u.tx}
}

func (u *UnitOfWork) querier() querier {
	if u.tx != nil {
		return u.tx
	}
	return u.pool
}

type BillRepo struct {
	q querier
}

func (r *BillRepo) Create(ctx context.Context, b *entity.SharedBill) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO shared_bills (id, token, creditor_name, created_at)
		 VALUES ($1, $2, $3, $4)`,
		b.ID(), b.Token(), b.CreditorName(), b.CreatedAt(),
	)
	return err
}

func (r *BillRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.SharedBill, error) {
	var b struct {
		token        string
		creditorName string
		createdAt    time.Time
	}
	err := r.q.QueryRow(ctx,
		`SELECT token, creditor_name, created_at FROM shared_bills WHERE id = $1`,
		id,
	).Scan(&b.token, &b.creditorName, &b.createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return entity.ReconstructSharedBill(id, b.token, b.creditorName, b.createdAt), nil
}

type IdempotencyRepo struct {
	q  querier
	tx pgx.Tx
}

func (r *IdempotencyRepo) Find(ctx context.Context, key string) (*entity.IdempotencyRecord, error) {
	var (
		fingerprint string
		billID      uuid.UUID
		createdAt   time.Time
	)
	err := r.q.QueryRow(ctx,
		`SELECT fingerprint, bill_id, created_at FROM idempotency_keys WHERE key = $1`,
		key,
	).Scan(&fingerprint, &billID, &createdAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entity.ReconstructIdempotencyRecord(key, fingerprint, billID, createdAt), nil
}

func (r *IdempotencyRepo) Save(ctx context.Context, record *entity.IdempotencyRecord) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO idempotency_keys (key, fingerprint, bill_id, created_at)
		 VALUES ($1, $2, $3, $4)
		 ON CONFLICT (key) DO NOTHING`,
		record.Key(), record.Fingerprint(), record.BillID(), record.CreatedAt(),
	)
	return err
}

// Lock takes a transaction-scoped advisory lock on the key. Outside a
// transaction it is an error.
func (r *IdempotencyRepo) Lock(ctx context.Context, key string) error {
	if r.tx == nil {
		return errors.New("idempotency lock requires a transaction")
	}
	h := fnv.New64a()
	_, _ = h.Write([]byte(key))
	_, err := r.tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(h.Sum64()))
	return err
}
