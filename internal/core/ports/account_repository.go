package ports

import (
	"context"

	"github.com/marketplace/identity-service/internal/core/domain"
)

// AccountRepository defines the persistence contract for account records.
// Uniqueness of username, email, and seller shop names is ultimately enforced
// by storage-level constraints; FindConflicts is only the advisory pre-check.
type AccountRepository interface {
	// FindConflicts returns partial rows matching the given email, username,
	// or shop name. When shopName is nil the shop-name predicate is omitted
	// from the query entirely, so customer registrations never collide with
	// accounts that simply have no shop name.
	FindConflicts(ctx context.Context, email, username string, shopName *string) ([]domain.Conflict, error)

	// Insert persists a new account and returns it with its assigned ID.
	// A storage-level unique-constraint violation is reported as the
	// field-specific domain.ErrDuplicate* sentinel.
	Insert(ctx context.Context, account *domain.Account) (*domain.Account, error)

	// FindByEmail returns the full account (digest included) for email, or
	// domain.ErrAccountNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)

	ListAll(ctx context.Context) ([]domain.AccountSummary, error)
	ListByRole(ctx context.Context, role string) ([]domain.AccountSummary, error)

	// Delete removes an account by ID; domain.ErrAccountNotFound when absent.
	Delete(ctx context.Context, id string) error

	// DeleteByRole removes an account only if it holds the given role.
	DeleteByRole(ctx context.Context, id, role string) error
}
