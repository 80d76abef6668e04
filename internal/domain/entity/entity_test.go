package entity_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Xausdorf/swiss-qr-bill/internal/domain/entity"
)

func TestNewSharedBill(t *testing.T) {
	b := entity.NewSharedBill("tok", "Hans Muster")

	assert.NotEqual(t, uuid.Nil, b.ID())
	assert.Equal(t, "tok", b.Token())
	assert.Equal(t, "Hans Muster", b.CreditorName())
	assert.WithinDuration(t, time.Now(), b.CreatedAt(), time.Second)
	assert.NotEqual(t, b.ID(), entity.NewSharedBill("tok", "Hans Muster").ID())
}

func TestIdempotencyRecord_Matches(t *testing.T) {
	id := uuid.New()
	r := entity.NewIdempotencyRecord("key", entity.Fingerprint("a"), id)

	assert.Equal(t, id, r.BillID())
	assert.True(t, r.Matches(entity.Fingerprint("a")))
	assert.False(t, r.Matches(entity.Fingerprint("b")))
	assert.Len(t, r.Fingerprint(), 64)
}
