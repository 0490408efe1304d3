package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/marketplace/identity-service/internal/core/domain"
	"github.com/marketplace/identity-service/internal/core/ports"
)

// AdminService performs administrative account deletions.
type AdminService struct {
	repo ports.AccountRepository
	log  zerolog.Logger
}

func NewAdminService(repo ports.AccountRepository, log zerolog.Logger) *AdminService {
	return &AdminService{repo: repo, log: log}
}

func (s *AdminService) DeleteAccount(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("account_id", id).Msg("account deleted")
	return nil
}

func (s *AdminService) DeleteSeller(ctx context.Context, id string) error {
	if err := s.repo.DeleteByRole(ctx, id, domain.RoleSeller); err != nil {
		return err
	}
	s.log.Info().Str("account_id", id).Msg("seller account deleted")
	return nil
}
