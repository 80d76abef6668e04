package entity

import (
	"time"

	"github.com/google/uuid"
)

// SharedBill is a short link to a bill's transport token.
type SharedBill struct {
	id           uuid.UUID
	token        string
	creditorName string
	createdAt    time.Time
}

func NewSharedBill(token, creditorName string) *SharedBill {
	return &SharedBill{
		id:           uuid.New(),
		token:        token,
		creditorName: creditorName,
		createdAt:    time.Now(),
	}
}

func ReconstructSharedBill(id uuid.UUID, token, creditorName string, createdAt time.Time) *SharedBill {
	return &SharedBill{
		id:           id,
		token:        token,
		creditorName: creditorName,
		createdAt:    createdAt,
	}
}

func (b *SharedBill) ID() uuid.UUID {
	return b.id
}

func (b *SharedBill) Token() string {
	return b.token
}

func (b *SharedBill) CreditorName() string {
	return b.creditorName
}

func (b *SharedBill) CreatedAt() time.Time {
	return b.createdAt
}
