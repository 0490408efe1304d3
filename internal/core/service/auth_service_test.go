package service

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/marketplace/identity-service/internal/core/domain"
)

type stubAccountRepo struct {
	accounts  []*domain.Account
	nextID    int
	insertErr error
	inserts   int
}

func newStubAccountRepo() *stubAccountRepo {
	return &stubAccountRepo{nextID: 1}
}

func (r *stubAccountRepo) FindConflicts(_ context.Context, email, username string, shopName *string) ([]domain.Conflict, error) {
	var conflicts []domain.Conflict
	for _, a := range r.accounts {
		match := a.Email == email || a.Username == username
		if shopName != nil && a.ShopName == *shopName && a.ShopName != "" {
			match = true
		}
		if match {
			conflicts = append(conflicts, domain.Conflict{
				Email:    a.Email,
				Username: a.Username,
				ShopName: a.ShopName,
			})
		}
	}
	return conflicts, nil
}

func (r *stubAccountRepo) Insert(_ context.Context, account *domain.Account) (*domain.Account, error) {
	r.inserts++
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	stored := *account
	stored.ID = strconv.Itoa(r.nextID)
	r.nextID++
	r.accounts = append(r.accounts, &stored)
	return &stored, nil
}

func (r *stubAccountRepo) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	for _, a := range r.accounts {
		if a.Email == email {
			clone := *a
			return &clone, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *stubAccountRepo) ListAll(_ context.Context) ([]domain.AccountSummary, error) {
	summaries := []domain.AccountSummary{}
	for _, a := range r.accounts {
		summaries = append(summaries, a.Summary())
	}
	return summaries, nil
}

func (r *stubAccountRepo) ListByRole(_ context.Context, role string) ([]domain.AccountSummary, error) {
	summaries := []domain.AccountSummary{}
	for _, a := range r.accounts {
		if a.Role == role {
			summaries = append(summaries, a.Summary())
		}
	}
	return summaries, nil
}

func (r *stubAccountRepo) Delete(_ context.Context, id string) error {
	for i, a := range r.accounts {
		if a.ID == id {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

func (r *stubAccountRepo) DeleteByRole(_ context.Context, id, role string) error {
	for i, a := range r.accounts {
		if a.ID == id && a.Role == role {
			r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
			return nil
		}
	}
	return domain.ErrAccountNotFound
}

type stubSessionStore struct {
	sessions map[string]domain.Session
	putErr   error
	delErr   error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.Session)}
}

func (s *stubSessionStore) Put(_ context.Context, sid string, session domain.Session) error {
	if s.putErr != nil {
		return s.putErr
	}
	s.sessions[sid] = session
	return nil
}

func (s *stubSessionStore) Get(_ context.Context, sid string) (*domain.Session, error) {
	session, ok := s.sessions[sid]
	if !ok {
		return nil, nil
	}
	return &session, nil
}

func (s *stubSessionStore) Delete(_ context.Context, sid string) (bool, error) {
	if s.delErr != nil {
		return false, s.delErr
	}
	_, ok := s.sessions[sid]
	delete(s.sessions, sid)
	return ok, nil
}

func newTestAuthService(repo *stubAccountRepo, store *stubSessionStore) *AuthService {
	return NewAuthService(repo, store, NewBcryptHasher(), zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo, newStubSessionStore())

	reg := domain.Registration{
		Username: "alice",
		Email:    "a@b.com",
		Password: "longenough1",
		Role:     domain.RoleCustomer,
	}
	if err := svc.Register(context.Background(), reg); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	stored, err := repo.FindByEmail(context.Background(), "a@b.com")
	if err != nil {
		t.Fatalf("account not persisted: %v", err)
	}
	if stored.PasswordDigest == "longenough1" || stored.PasswordDigest == "" {
		t.Fatalf("password stored without hashing")
	}
	if stored.ShopName != "" {
		t.Fatalf("customer account has a shop name: %q", stored.ShopName)
	}
}

func TestAuthService_Register_ValidationSkipsStorage(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo, newStubSessionStore())

	reg := domain.Registration{Username: "alice", Email: "a@b.com", Password: "longenough1"}
	if err := svc.Register(context.Background(), reg); !errors.Is(err, domain.ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
	if repo.inserts != 0 {
		t.Fatalf("repository touched on validation failure")
	}
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo, newStubSessionStore())

	first := domain.Registration{Username: "alice", Email: "a@b.com", Password: "longenough1", Role: domain.RoleCustomer}
	if err := svc.Register(context.Background(), first); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	second := domain.Registration{Username: "other", Email: "a@b.com", Password: "longenough1", Role: domain.RoleCustomer}
	if err := svc.Register(context.Background(), second); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

// When an existing row conflicts on multiple fields, only the highest
// priority conflict is reported: email before username before shop name.
func TestAuthService_Register_ConflictPriority(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo, newStubSessionStore())

	first := domain.Registration{
		Username: "alice",
		Email:    "a@b.com",
		Password: "longenough1",
		Role:     domain.RoleSeller,
		ShopName: "Antiques",
	}
	if err := svc.Register(context.Background(), first); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	dupAll := domain.Registration{
		Username: "alice",
		Email:    "a@b.com",
		Password: "longenough1",
		Role:     domain.RoleSeller,
		ShopName: "Antiques",
	}
	if err := svc.Register(context.Background(), dupAll); !errors.Is(err, domain.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	dupUserAndShop := domain.Registration{
		Username: "alice",
		Email:    "fresh@b.com",
		Password: "longenough1",
		Role:     domain.RoleSeller,
		ShopName: "Antiques",
	}
	if err := svc.Register(context.Background(), dupUserAndShop); !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}

	dupShopOnly := domain.Registration{
		Username: "bob",
		Email:    "bob@b.com",
		Password: "longenough1",
		Role:     domain.RoleSeller,
		ShopName: "Antiques",
	}
	if err := svc.Register(context.Background(), dupShopOnly); !errors.Is(err, domain.ErrDuplicateShopName) {
		t.Fatalf("expected ErrDuplicateShopName, got %v", err)
	}
}

// A customer registration must not collide with existing accounts that have
// no shop name: the shop predicate is omitted for non-sellers.
func TestAuthService_Register_CustomerIgnoresShopPredicate(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo, newStubSessionStore())

	first := domain.Registration{Username: "alice", Email: "a@b.com", Password: "longenough1", Role: domain.RoleCustomer}
	if err := svc.Register(context.Background(), first); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	second := domain.Registration{
		Username: "bob",
		Email:    "bob@b.com",
		Password: "longenough1",
		Role:     domain.RoleCustomer,
		ShopName: "ignored for customers",
	}
	if err := svc.Register(context.Background(), second); err != nil {
		t.Fatalf("customer register failed: %v", err)
	}

	stored, err := repo.FindByEmail(context.Background(), "bob@b.com")
	if err != nil {
		t.Fatalf("account not persisted: %v", err)
	}
	if stored.ShopName != "" {
		t.Fatalf("customer stored with shop name %q", stored.ShopName)
	}
}

// Losing the pre-check race surfaces the storage constraint violation as the
// duplicate sentinel, not a generic server error.
func TestAuthService_Register_InsertRace(t *testing.T) {
	repo := newStubAccountRepo()
	repo.insertErr = domain.ErrDuplicateUsername
	svc := newTestAuthService(repo, newStubSessionStore())

	reg := domain.Registration{Username: "alice", Email: "a@b.com", Password: "longenough1", Role: domain.RoleCustomer}
	err := svc.Register(context.Background(), reg)
	if !errors.Is(err, domain.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
	if !errors.Is(err, domain.ErrDuplicateAccount) {
		t.Fatalf("duplicate sentinel does not wrap ErrDuplicateAccount")
	}
}

func registerAlice(t *testing.T, svc *AuthService) {
	t.Helper()
	reg := domain.Registration{Username: "alice", Email: "a@b.com", Password: "longenough1", Role: domain.RoleCustomer}
	if err := svc.Register(context.Background(), reg); err != nil {
		t.Fatalf("register failed: %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubAccountRepo()
	store := newStubSessionStore()
	svc := newTestAuthService(repo, store)
	registerAlice(t, svc)

	user, err := svc.Login(context.Background(), "sid-1", "a@b.com", "longenough1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Username != "alice" || user.Role != domain.RoleCustomer {
		t.Fatalf("unexpected projection: %+v", user)
	}

	sess, err := store.Get(context.Background(), "sid-1")
	if err != nil || sess == nil {
		t.Fatalf("session not established: %v", err)
	}
	if sess.UserID != user.ID || sess.Role != domain.RoleCustomer {
		t.Fatalf("unexpected session state: %+v", sess)
	}
}

func TestAuthService_Login_MissingCredentials(t *testing.T) {
	svc := newTestAuthService(newStubAccountRepo(), newStubSessionStore())

	if _, err := svc.Login(context.Background(), "sid-1", "", "pw"); !errors.Is(err, domain.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "sid-1", "a@b.com", ""); !errors.Is(err, domain.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

// Wrong password and unknown email are indistinguishable to the caller.
func TestAuthService_Login_UniformRejection(t *testing.T) {
	repo := newStubAccountRepo()
	svc := newTestAuthService(repo, newStubSessionStore())
	registerAlice(t, svc)

	_, wrongPassword := svc.Login(context.Background(), "sid-1", "a@b.com", "not-the-password")
	_, unknownEmail := svc.Login(context.Background(), "sid-1", "ghost@b.com", "longenough1")

	if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPassword)
	}
	if !errors.Is(unknownEmail, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("rejection messages differ: %q vs %q", wrongPassword, unknownEmail)
	}
}

func TestAuthService_Login_SessionPersistenceError(t *testing.T) {
	repo := newStubAccountRepo()
	store := newStubSessionStore()
	store.putErr = errors.New("backend down")
	svc := newTestAuthService(repo, store)
	registerAlice(t, svc)

	if _, err := svc.Login(context.Background(), "sid-1", "a@b.com", "longenough1"); !errors.Is(err, domain.ErrSessionPersistence) {
		t.Fatalf("expected ErrSessionPersistence, got %v", err)
	}
}

func TestAuthService_Logout_Idempotent(t *testing.T) {
	repo := newStubAccountRepo()
	store := newStubSessionStore()
	svc := newTestAuthService(repo, store)
	registerAlice(t, svc)

	if _, err := svc.Login(context.Background(), "sid-1", "a@b.com", "longenough1"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	removed, err := svc.Logout(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("first logout failed: %v", err)
	}
	if !removed {
		t.Fatalf("expected first logout to remove the session")
	}

	removed, err = svc.Logout(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("second logout failed: %v", err)
	}
	if removed {
		t.Fatalf("second logout reported a removal")
	}
}

func TestAuthService_Logout_StoreFailure(t *testing.T) {
	store := newStubSessionStore()
	store.delErr = errors.New("backend down")
	svc := newTestAuthService(newStubAccountRepo(), store)

	if _, err := svc.Logout(context.Background(), "sid-1"); !errors.Is(err, domain.ErrLogoutFailed) {
		t.Fatalf("expected ErrLogoutFailed, got %v", err)
	}
}
