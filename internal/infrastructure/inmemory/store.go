// Package inmemory keeps shared bills in process memory. It backs the server
// when no database is configured and loses everything on restart.
package inmemory

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/Xausdorf/swiss-qr-bill/internal/domain/entity"
	"github.com/Xausdorf/swiss-qr-bill/internal/domain/repository"
)

var errNoTransaction = errors.New("idempotency lock requires a transaction")

// Store is the shared state behind every UnitOfWork created from it.
type Store struct {
	mu    sync.RWMutex
	bills map[uuid.UUID]*entity.SharedBill
	keys  map[string]*entity.IdempotencyRecord

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

func NewStore() *Store {
	return &Store{
		bills: make(map[uuid.UUID]*entity.SharedBill),
		keys:  make(map[string]*entity.IdempotencyRecord),
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *Store) keyLock(key string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	return l
}

// UnitOfWork reads committed state directly. Inside a transaction, writes
// are staged and become visible to others on Commit.
type UnitOfWork struct {
	store *Store
	tx    *txState
}

type txState struct {
	bills []*entity.SharedBill
	keys  []*entity.IdempotencyRecord
	held  []*sync.Mutex
	done  bool
}

func NewUnitOfWork(store *Store) *UnitOfWork {
	return &UnitOfWork{store: store}
}

func (u *UnitOfWork) Begin(_ context.Context) (repository.UnitOfWork, error) {
	return &UnitOfWork{store: u.store, tx: &txState{}}, nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if u.tx == nil || u.tx.done {
		return nil
	}
	u.store.mu.Lock()
	for _, b := range u.tx.bills {
		u.store.bills[b.ID()] = b
	}
	for _, r := range u.tx.keys {
		if _, exists := u.store.keys[r.Key()]; !exists {
			u.store.keys[r.Key()] = r
		}
	}
	u.store.mu.Unlock()
	u.finish()
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.tx == nil || u.tx.done {
		return nil
	}
	u.finish()
	return nil
}

func (u *UnitOfWork) finish() {
	u.tx.done = true
	for _, l := range u.tx.held {
		l.Unlock()
	}
	u.tx.held = nil
}

func (u *UnitOfWork) Bills() repository.BillRepository {
	return &BillRepo{uow: u}
}

func (u *UnitOfWork) Idempotency() repository.IdempotencyRepository {
	return &IdempotencyRepo{uow: u}
}

type BillRepo struct {
	uow *UnitOfWork
}

func (r *BillRepo) Create(_ context.Context, b *entity.SharedBill) error {
	if r.uow.tx == nil {
		r.uow.store.mu.Lock()
		r.uow.store.bills[b.ID()] = b
		r.uow.store.mu.Unlock()
		return nil
	}
	r.uow.tx.bills = append(r.uow.tx.bills, b)
	return nil
}

func (r *BillRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.SharedBill, error) {
	if r.uow.tx != nil {
		for _, b := range r.uow.tx.bills {
			if b.ID() == id {
				return b, nil
			}
		}
	}
	r.uow.store.mu.RLock()
	defer r.uow.store.mu.RUnlock()
	b, ok := r.uow.store.bills[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return b, nil
}

type IdempotencyRepo struct {
	uow *UnitOfWork
}

func (r *IdempotencyRepo) Find(_ context.Context, key string) (*entity.IdempotencyRecord, error) {
	if r.uow.tx != nil {
		for _, rec := range r.uow.tx.keys {
			if rec.Key() == key {
				return rec, nil
			}
		}
	}
	r.uow.store.mu.RLock()
	defer r.uow.store.mu.RUnlock()
	return r.uow.store.keys[key], nil
}

func (r *IdempotencyRepo) Save(_ context.Context, record *entity.IdempotencyRecord) error {
	if r.uow.tx == nil {
		r.uow.store.mu.Lock()
		defer r.uow.store.mu.Unlock()
		if _, exists := r.uow.store.keys[record.Key()]; !exists {
			r.uow.store.keys[record.Key()] = record
		}
		return nil
	}
	r.uow.tx.keys = append(r.uow.tx.keys, record)
	return nil
}

// Lock blocks until no other transaction holds key. The lock is released on
// Commit or Rollback.
func (r *IdempotencyRepo) Lock(ctx context.Context, key string) error {
	if r.uow.tx == nil {
		return errNoTransaction
	}
	l := r.uow.store.keyLock(key)
	acquired := make(chan struct{})
	go func() {
		l.Lock()
		close(acquired)
	}()
	select {
	case <-acquired:
		r.uow.tx.held = append(r.uow.tx.held, l)
		return nil
	case <-ctx.Done():
		go func() {
			<-acquired
			l.Unlock()
		}()
		return ctx.Err()
	}
}
