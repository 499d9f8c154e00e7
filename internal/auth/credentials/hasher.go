package credentials

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// Cost is the bcrypt work factor for every stored hash.
const Cost = bcrypt.DefaultCost

// ErrPasswordTooLong is returned for passwords bcrypt would truncate.
var ErrPasswordTooLong = errors.New("password longer than 72 bytes")

// Hasher hashes and verifies passwords with bcrypt. At most a fixed number
// of hash computations run at once; waiting callers honor ctx.
type Hasher struct {
	cost int
	sem  *semaphore.Weighted
}

// NewHasher returns a Hasher at Cost allowing concurrency parallel ops.
func NewHasher(concurrency int64) *Hasher {
	return NewHasherWithCost(concurrency, Cost)
}

// NewHasherWithCost is NewHasher with an explicit work factor. Tests use
// bcrypt.MinCost.
func NewHasherWithCost(concurrency int64, cost int) *Hasher {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Hasher{
		cost: cost,
		sem:  semaphore.NewWeighted(concurrency),
	}
}

// Hash returns a salted bcrypt hash of password.
func (h *Hasher) Hash(ctx context.Context, password string) (string, error) {
	if len(password) > 72 {
		return "", ErrPasswordTooLong
	}

	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("credentials: hash: %w", err)
	}
	return string(bytes), nil
}

// Verify compares password against hash in constant time. A malformed hash
// or a cancelled ctx yields false.
func (h *Hasher) Verify(ctx context.Context, password string, hash string) bool {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false
	}
	defer h.sem.Release(1)

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
