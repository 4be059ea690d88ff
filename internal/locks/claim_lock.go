package locks

import (
	"context"
	"errors"
)

// ClaimLocker serializes claim attempts for a single account. The database's
// partial unique index is the authoritative guard against duplicate active
// tasks; the lock keeps concurrent claims from racing into index conflicts
// in the first place.
type ClaimLocker interface {
	Acquire(ctx context.Context, accountID uint) error

	Release(ctx context.Context, accountID uint) error
}

var ErrClaimLocked = errors.New("claim already in progress for this account")

// Noop is used when no redis is configured; single-instance deployments fall
// back to the database index alone.
type Noop struct{}

func (Noop) Acquire(ctx context.Context, accountID uint) error { return nil }

func (Noop) Release(ctx context.Context, accountID uint) error { return nil }
