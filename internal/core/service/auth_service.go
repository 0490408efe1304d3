package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketplace/identity-service/internal/core/domain"
	"github.com/marketplace/identity-service/internal/core/ports"
)

// AuthService implements registration, login, and logout on top of the
// account repository, the password hasher, and the session store.
type AuthService struct {
	repo      ports.AccountRepository
	sessions  ports.SessionStore
	hasher    ports.PasswordHasher
	validator *RegisterValidator
	log       zerolog.Logger
}

func NewAuthService(repo ports.AccountRepository, sessions ports.SessionStore, hasher ports.PasswordHasher, log zerolog.Logger) *AuthService {
	return &AuthService{
		repo:      repo,
		sessions:  sessions,
		hasher:    hasher,
		validator: NewRegisterValidator(),
		log:       log,
	}
}

// Register validates the candidate fields, pre-checks uniqueness for a
// precise error message, then hashes and inserts. The pre-check is advisory:
// two concurrent registrations can both pass it, and the storage-level unique
// constraint on insert is the authoritative guard.
func (s *AuthService) Register(ctx context.Context, reg domain.Registration) error {
	if err := s.validator.Validate(reg); err != nil {
		return err
	}

	var shopName *string
	if reg.Role == domain.RoleSeller {
		trimmed := strings.TrimSpace(reg.ShopName)
		shopName = &trimmed
	}

	conflicts, err := s.repo.FindConflicts(ctx, reg.Email, reg.Username, shopName)
	if err != nil {
		return fmt.Errorf("conflict pre-check: %w", err)
	}
	if err := resolveConflict(reg, shopName, conflicts); err != nil {
		return err
	}

	digest, err := s.hasher.Hash(reg.Password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	account := &domain.Account{
		Username:       reg.Username,
		Email:          reg.Email,
		PasswordDigest: digest,
		Role:           reg.Role,
		CreatedAt:      time.Now().UTC(),
	}
	if shopName != nil {
		account.ShopName = *shopName
	}

	if _, err := s.repo.Insert(ctx, account); err != nil {
		// Lost the pre-check race: the unique index rejected the insert.
		if errors.Is(err, domain.ErrDuplicateAccount) {
			return err
		}
		return fmt.Errorf("insert account: %w", err)
	}

	s.log.Info().Str("username", reg.Username).Str("role", reg.Role).Msg("account registered")
	return nil
}

// resolveConflict reports the first applicable conflict in priority order
// email > username > shopName. Only one conflict is ever reported.
func resolveConflict(reg domain.Registration, shopName *string, conflicts []domain.Conflict) error {
	if len(conflicts) == 0 {
		return nil
	}
	for _, c := range conflicts {
		if c.Email == reg.Email {
			return domain.ErrDuplicateEmail
		}
	}
	for _, c := range conflicts {
		if c.Username == reg.Username {
			return domain.ErrDuplicateUsername
		}
	}
	if shopName != nil {
		for _, c := range conflicts {
			if c.ShopName == *shopName {
				return domain.ErrDuplicateShopName
			}
		}
	}
	return nil
}

// Login verifies the credentials and establishes the session under sid.
// Unknown email and wrong password produce the same error so the endpoint
// cannot be used to probe which addresses are registered.
func (s *AuthService) Login(ctx context.Context, sid, email, password string) (*domain.AccountSummary, error) {
	if email == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	account, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	if !s.hasher.Verify(password, account.PasswordDigest) {
		return nil, domain.ErrInvalidCredentials
	}

	session := domain.Session{UserID: account.ID, Role: account.Role}
	if err := s.sessions.Put(ctx, sid, session); err != nil {
		s.log.Error().Err(err).Msg("session persistence failed")
		return nil, domain.ErrSessionPersistence
	}

	summary := account.Summary()
	return &summary, nil
}

// Logout destroys the session under sid. A session that is already gone is
// destroyed successfully; only a failing store surfaces an error. The bool
// reports whether a live session was removed.
func (s *AuthService) Logout(ctx context.Context, sid string) (bool, error) {
	removed, err := s.sessions.Delete(ctx, sid)
	if err != nil {
		s.log.Error().Err(err).Msg("session destruction failed")
		return false, domain.ErrLogoutFailed
	}
	return removed, nil
}
