package ports

import (
	"context"

	"github.com/marketplace/identity-service/internal/core/domain"
)

// DirectoryService exposes read-only account listings.
type DirectoryService interface {
	// ListAll returns every account summary; an empty directory is success.
	ListAll(ctx context.Context) ([]domain.AccountSummary, error)

	// ListByRole returns the accounts holding role, or domain.ErrNotFound
	// when none exist. The empty filtered result is a distinct outcome, not
	// an empty success.
	ListByRole(ctx context.Context, role string) ([]domain.AccountSummary, error)
}
