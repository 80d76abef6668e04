package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// IdempotencyRecord remembers which shared bill a client key produced and a
// fingerprint of the request that produced it.
type IdempotencyRecord struct {
	key         string
	fingerprint string
	billID      uuid.UUID
	createdAt   time.Time
}

// Fingerprint hashes a transport token so records can be compared without
// keeping the token twice.
func Fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func NewIdempotencyRecord(key, fingerprint string, billID uuid.UUID) *IdempotencyRecord {
	return &IdempotencyRecord{
		key:         key,
		fingerprint: fingerprint,
		billID:      billID,
		createdAt:   time.Now(),
	}
}

func ReconstructIdempotencyRecord(key, fingerprint string, billID uuid.UUID, createdAt time.Time) *IdempotencyRecord {
	return &IdempotencyRecord{
		key:         key,
		fingerprint: fingerprint,
		billID:      billID,
		createdAt:   createdAt,
	}
}

func (r *IdempotencyRecord) Key() string {
	return r.key
}

func (r *IdempotencyRecord) Fingerprint() string {
	return r.fingerprint
}

func (r *IdempotencyRecord) BillID() uuid.UUID {
	return r.billID
}

// Matches reports whether the record was created from the same request.
func (r *IdempotencyRecord) Matches(fingerprint string) bool {
	return r.fingerprint == fingerprint
}

func (r *IdempotencyRecord) CreatedAt() time.Time {
	return r.createdAt
}
