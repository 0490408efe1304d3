package ports

import "context"

// AdminService covers the administrative account operations. Accounts are
// never mutated by the core; deletion is the one administrative write.
type AdminService interface {
	// DeleteAccount removes the account with the given ID regardless of role.
	DeleteAccount(ctx context.Context, id string) error

	// DeleteSeller removes the account with the given ID only if it is a
	// seller; domain.ErrAccountNotFound otherwise.
	DeleteSeller(ctx context.Context, id string) error
}
