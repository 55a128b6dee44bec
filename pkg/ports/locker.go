package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock taken by DistributedLocker.Lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serializes work on one profile across processes, so that
// two migrators sharing a store never rewrite the same profile at once.
type DistributedLocker interface {
	// Lock blocks until the lock for profileID is held or ctx is done.
	// The lock expires after ttl if the holder dies; callers must still
	// release it with the returned UnlockFunc.
	Lock(ctx context.Context, profileID string, ttl time.Duration) (UnlockFunc, error)
}
