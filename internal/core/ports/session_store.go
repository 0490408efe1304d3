package ports

import (
	"context"

	"github.com/marketplace/identity-service/internal/core/domain"
)

// SessionStore maps opaque session identifiers to server-side session state.
// Identifiers are issued by the transport layer; stores never mint them.
// Implementations must be safe for concurrent use.
type SessionStore interface {
	// Put creates or replaces the session stored under sid.
	Put(ctx context.Context, sid string, session domain.Session) error

	// Get returns the session stored under sid, or (nil, nil) when absent
	// or expired.
	Get(ctx context.Context, sid string) (*domain.Session, error)

	// Delete removes the session under sid. Deleting an absent session is
	// not an error; the returned bool reports whether anything was removed.
	Delete(ctx context.Context, sid string) (bool, error)
}
