package ports

import (
	"context"

	"github.com/marketplace/identity-service/internal/core/domain"
)

// AuthService orchestrates registration, login, and logout.
type AuthService interface {
	// Register validates and persists a new account. It returns a
	// validation or duplicate sentinel on failure.
	Register(ctx context.Context, reg domain.Registration) error

	// Login verifies credentials and, on success, stores {userID, role}
	// under the transport-issued session identifier sid.
	Login(ctx context.Context, sid, email, password string) (*domain.AccountSummary, error)

	// Logout destroys the session under sid. Destroying an absent session
	// is treated as success; the returned bool reports whether a session
	// was actually removed.
	Logout(ctx context.Context, sid string) (bool, error)
}
