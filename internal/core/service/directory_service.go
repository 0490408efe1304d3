package service

import (
	"context"
	"fmt"

	"github.com/marketplace/identity-service/internal/core/domain"
	"github.com/marketplace/identity-service/internal/core/ports"
)

// DirectoryService serves read-only account listings.
type DirectoryService struct {
	repo ports.AccountRepository
}

func NewDirectoryService(repo ports.AccountRepository) *DirectoryService {
	return &DirectoryService{repo: repo}
}

func (s *DirectoryService) ListAll(ctx context.Context) ([]domain.AccountSummary, error) {
	accounts, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// ListByRole treats an empty filtered result as domain.ErrNotFound so the
// caller can tell "no accounts with this role" apart from a storage failure.
func (s *DirectoryService) ListByRole(ctx context.Context, role string) ([]domain.AccountSummary, error) {
	accounts, err := s.repo.ListByRole(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("list accounts by role: %w", err)
	}
	if len(accounts) == 0 {
		return nil, domain.ErrNotFound
	}
	return accounts, nil
}
