package memory

import (
	"context"
	"time"
)

// PresenceStore holds ephemeral "participant is composing" markers keyed by
// session and role. Entries are non-durable: a restart loses them and callers
// must tolerate a false "not typing" afterwards.
type PresenceStore interface {
	Set(ctx context.Context, sessionId, role string, at time.Time) error
	Clear(ctx context.Context, sessionId, role string) error
	// Get returns the last-signaled time for the entry, or false when the
	// entry does not exist (or already expired out of the store).
	Get(ctx context.Context, sessionId, role string) (time.Time, bool, error)
	// Sweep removes expired entries eagerly. Implementations backed by a
	// store with server-side expiry may treat it as a no-op.
	Sweep(ctx context.Context) error
}

func presenceKey(sessionId, role string) string {
	return sessionId + ":" + role
}
