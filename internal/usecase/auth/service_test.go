package auth

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"skillswap/internal/domain/user"

	"github.com/google/uuid"
)

type mockUserRepo struct {
	byEmail map[string]user.User
	created *user.User
	err     error
}

func (m *mockUserRepo) CreateUser(_ context.Context, u user.User) error {
	if m.err != nil {
		return m.err
	}
	m.created = &u
	if m.byEmail == nil {
		m.byEmail = map[string]user.User{}
	}
	m.byEmail[u.Email] = u
	return nil
}

func (m *mockUserRepo) GetUserByID(_ context.Context, id uuid.UUID) (user.User, error) {
	for _, u := range m.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (m *mockUserRepo) GetUserByEmail(_ context.Context, email string) (user.User, error) {
	if m.err != nil {
		return user.User{}, m.err
	}
	u, ok := m.byEmail[email]
	if !ok {
		return user.User{}, user.ErrNotFound
	}
	return u, nil
}

func (m *mockUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.byEmail[email]
	return ok, nil
}

func (m *mockUserRepo) ExistsByUsername(context.Context, string) (bool, error) {
	return false, m.err
}

func (m *mockUserRepo) UpdateProfile(context.Context, uuid.UUID, user.ProfileUpdate) (user.User, error) {
	return user.User{}, m.err
}

func TestRegister_Success(t *testing.T) {
	repo := &mockUserRepo{}
	svc := NewService(repo)

	u, err := svc.Register(context.Background(), RegisterInput{
		Email:    "  Ana@Example.COM ",
		Password: "supersecret",
		Username: "ana",
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.Email != "ana@example.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if u.PasswordHash != "" {
		t.Fatalf("password hash must not leak")
	}
	if repo.created == nil {
		t.Fatalf("expected user persisted")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("supersecret")); err != nil {
		t.Fatalf("stored hash does not verify: %v", err)
	}
}

func TestRegister_ShortPassword(t *testing.T) {
	svc := NewService(&mockUserRepo{})
	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "short", Username: "ana"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegister_BadUsername(t *testing.T) {
	svc := NewService(&mockUserRepo{})
	_, err := svc.Register(context.Background(), RegisterInput{Email: "a@b.com", Password: "supersecret", Username: "a b"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepo{byEmail: map[string]user.User{
		"ana@example.com": {ID: uuid.New(), Email: "ana@example.com"},
	}}
	svc := NewService(repo)

	_, err := svc.Register(context.Background(), RegisterInput{Email: "ana@example.com", Password: "supersecret", Username: "ana2"})
	if !errors.Is(err, ErrEmailAlreadyRegistered) {
		t.Fatalf("expected ErrEmailAlreadyRegistered, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	repo := &mockUserRepo{byEmail: map[string]user.User{
		"ana@example.com": {ID: uuid.New(), Email: "ana@example.com", PasswordHash: string(hash)},
	}}
	svc := NewService(repo)

	u, err := svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "supersecret"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if u.PasswordHash != "" {
		t.Fatalf("password hash must not leak")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	hash, _ := bcrypt.GenerateFromPassword([]byte("supersecret"), bcrypt.MinCost)
	repo := &mockUserRepo{byEmail: map[string]user.User{
		"ana@example.com": {Email: "ana@example.com", PasswordHash: string(hash)},
	}}
	svc := NewService(repo)

	_, err := svc.Login(context.Background(), LoginInput{Email: "ana@example.com", Password: "nope"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc := NewService(&mockUserRepo{})
	_, err := svc.Login(context.Background(), LoginInput{Email: "ghost@example.com", Password: "whatever"})
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}
