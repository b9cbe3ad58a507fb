package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofrs/flock"
)

// lockRetryInterval is how often an acquisition attempt retries while a
// competing process holds the lock.
const lockRetryInterval = 50 * time.Millisecond

// fileBacked reports whether the store has an on-disk database file that a
// sibling lock file can guard. In-memory databases need no cross-process
// coordination.
func (s *Store) fileBacked() bool {
	if s.path == "" || s.path == ":memory:" {
		return false
	}
	return !strings.Contains(s.path, "mode=memory")
}

// withSchemaLock runs fn while holding an exclusive cross-process lock on
// a ".lock" file beside the database, so concurrent processes do not
// interleave DDL against the same file. Acquisition retries until the
// context is cancelled.
func (s *Store) withSchemaLock(ctx context.Context, fn func() error) error {
	if !s.fileBacked() {
		return fn()
	}

	lockPath := s.path + ".lock"
	fl := flock.New(lockPath)

	locked, err := fl.TryLockContext(ctx, lockRetryInterval)
	if err != nil {
		return fmt.Errorf("failed to acquire schema lock %s: %w", lockPath, err)
	}
	if !locked {
		return fmt.Errorf("schema lock %s is held by another process", lockPath)
	}
	defer func() { _ = fl.Unlock() }()

	return fn()
}
