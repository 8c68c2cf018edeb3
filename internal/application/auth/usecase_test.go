package auth_test

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturation-api/internal/application/auth"
	"github.com/jhoicas/facturation-api/internal/application/dto"
	"github.com/jhoicas/facturation-api/internal/domain"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
	"github.com/jhoicas/facturation-api/pkg/jwt"
)

const testSecret = "secreto-de-pruebas"

var testNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

// ── fake ──────────────────────────────────────────────────────────────────────

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]*entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) List(_ context.Context, _, _ int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*entity.User, 0, len(r.users))
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func newAuth() (*auth.AuthUseCase, *memUserRepo) {
	repo := newMemUserRepo()
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: testSecret, ExpMinutes: 60, Issuer: "facturation-api"}, nil), repo
}

// ── tests ─────────────────────────────────────────────────────────────────────

func TestRegisterUser_SiempreRolUser(t *testing.T) {
	uc, repo := newAuth()
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: " Awa@Example.com ", Password: "motdepasse"})
	require.NoError(t, err)
	assert.Equal(t, "awa@example.com", u.Email)
	assert.Equal(t, entity.RoleUser, u.Role)
	assert.Equal(t, "awa@example.com", u.Name)

	stored, _ := repo.GetByID(ctx, u.ID)
	require.NotNil(t, stored)
	assert.NotEqual(t, "motdepasse", stored.PasswordHash)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "awa@example.com", Password: "otroclave1"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "x@example.com", Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestLogin_TokenConClaims(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "awa@example.com", Password: "motdepasse", Name: "Awa"})
	require.NoError(t, err)

	res, err := uc.Login(ctx, dto.LoginRequest{Email: "AWA@example.com", Password: "motdepasse"})
	require.NoError(t, err)
	assert.Equal(t, u.ID, res.User.ID)

	claims, err := jwt.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)
	assert.Equal(t, "awa@example.com", claims.Email)
	assert.Equal(t, entity.RoleUser, claims.Role)
}

func TestLogin_Errores(t *testing.T) {
	uc, repo := newAuth()
	ctx := context.Background()
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "awa@example.com", Password: "motdepasse"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "motdepasse"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "awa@example.com", Password: "incorrecto"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	stored, _ := repo.GetByID(ctx, u.ID)
	stored.Status = entity.UserStatusInactive
	require.NoError(t, repo.Update(ctx, stored))
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "awa@example.com", Password: "motdepasse"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestMe(t *testing.T) {
	uc, _ := newAuth()
	ctx := context.Background()
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "awa@example.com", Password: "motdepasse"})
	require.NoError(t, err)

	me, err := uc.Me(ctx, entity.Session{UserID: u.ID, Role: entity.RoleUser})
	require.NoError(t, err)
	assert.Equal(t, u.Email, me.Email)

	_, err = uc.Me(ctx, entity.Session{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Me(ctx, entity.Session{UserID: "borrado", Role: entity.RoleUser})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestNewUser_RolInvalido(t *testing.T) {
	_, err := auth.NewUser("a@b.c", "motdepasse", "", "vendedor", testNow)
	assert.ErrorIs(t, err, domain.ErrValidation)
}
