// Package affinity gives goroutines an explicit execution-context identity.
//
// Go does not expose goroutine identity, so a goroutine that wants handlers
// pinned to it creates a thread context once with NewThread and passes that
// context (or anything derived from it) to the event bus.
package affinity

import (
	"context"

	"github.com/google/uuid"
)

// ThreadID identifies one execution context. The zero value means "none"
// and never equals another ThreadID under Same.
type ThreadID uuid.UUID

type ctxKey struct{}

// NewThread returns a child of parent carrying a fresh ThreadID.
func NewThread(parent context.Context) context.Context {
	return WithThread(parent, ThreadID(uuid.New()))
}

// WithThread returns a child of parent carrying id.
func WithThread(parent context.Context, id ThreadID) context.Context {
	return context.WithValue(parent, ctxKey{}, id)
}

// FromContext returns the ThreadID carried by ctx.
func FromContext(ctx context.Context) (ThreadID, bool) {
	if ctx == nil {
		return ThreadID{}, false
	}
	id, ok := ctx.Value(ctxKey{}).(ThreadID)
	if !ok || id.IsZero() {
		return ThreadID{}, false
	}
	return id, true
}

// IsZero reports whether id is the "no identity" value.
func (id ThreadID) IsZero() bool {
	return uuid.UUID(id) == uuid.Nil
}

// Same reports whether a and b name the same execution context.
func Same(a, b ThreadID) bool {
	return !a.IsZero() && a == b
}

func (id ThreadID) String() string {
	if id.IsZero() {
		return "none"
	}
	return uuid.UUID(id).String()
}
