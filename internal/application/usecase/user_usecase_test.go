package usecase_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/facturation-api/internal/application/dto"
	"github.com/jhoicas/facturation-api/internal/application/usecase"
	"github.com/jhoicas/facturation-api/internal/domain"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
)

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]entity.User
	order []string
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: map[string]entity.User{}}
}

func (r *memUserRepo) Create(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = *u
	r.order = append(r.order, u.ID)
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(_ context.Context, u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = *u
	return nil
}

func (r *memUserRepo) List(_ context.Context, limit, offset int) ([]*entity.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*entity.User
	for i, id := range r.order {
		if i < offset || len(out) >= limit {
			continue
		}
		u := r.users[id]
		out = append(out, &u)
	}
	return out, nil
}

var (
	adminSession = entity.Session{UserID: "u-admin", Email: "admin@example.com", Role: entity.RoleAdmin}
	userSession  = entity.Session{UserID: "u-alice", Email: "alice@example.com", Role: entity.RoleUser}
)

func TestUserUseCase_SoloAdmin(t *testing.T) {
	uc := usecase.NewUserUseCase(newMemUserRepo(), nil)
	ctx := context.Background()

	_, err := uc.List(ctx, userSession, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Create(ctx, userSession, dto.CreateUserRequest{Email: "x@example.com", Password: "motdepasse", Role: "user"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Update(ctx, entity.Session{}, "id", dto.UpdateUserRequest{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUserUseCase_CrearListarActualizar(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo, nil)
	ctx := context.Background()

	u, err := uc.Create(ctx, adminSession, dto.CreateUserRequest{Email: "Moussa@Example.com", Password: "motdepasse", Name: "Moussa", Role: "admin"})
	require.NoError(t, err)
	assert.Equal(t, "moussa@example.com", u.Email)
	assert.Equal(t, entity.RoleAdmin, u.Role)

	_, err = uc.Create(ctx, adminSession, dto.CreateUserRequest{Email: "moussa@example.com", Password: "motdepasse", Role: "user"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	_, err = uc.Create(ctx, adminSession, dto.CreateUserRequest{Email: "y@example.com", Password: "motdepasse", Role: "vendedor"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	list, err := uc.List(ctx, adminSession, dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	upd, err := uc.Update(ctx, adminSession, u.ID, dto.UpdateUserRequest{Role: "user", Status: "inactive"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, upd.Role)
	assert.Equal(t, entity.UserStatusInactive, upd.Status)

	_, err = uc.Update(ctx, adminSession, u.ID, dto.UpdateUserRequest{Status: "suspendu"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, err = uc.Update(ctx, adminSession, "no-existe", dto.UpdateUserRequest{Role: "user"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestUserUseCase_AdminNoSeDegrada(t *testing.T) {
	repo := newMemUserRepo()
	require.NoError(t, repo.Create(context.Background(), &entity.User{
		ID: adminSession.UserID, Email: adminSession.Email, Role: entity.RoleAdmin, Status: entity.UserStatusActive,
	}))
	uc := usecase.NewUserUseCase(repo, nil)

	_, err := uc.Update(context.Background(), adminSession, adminSession.UserID, dto.UpdateUserRequest{Role: "user"})
	assert.ErrorIs(t, err, domain.ErrValidation)
	stored, _ := repo.GetByID(context.Background(), adminSession.UserID)
	assert.Equal(t, entity.RoleAdmin, stored.Role)
}

func TestEnsureAdmin_CreaOPromueve(t *testing.T) {
	repo := newMemUserRepo()
	uc := usecase.NewUserUseCase(repo, nil)
	ctx := context.Background()

	created, err := uc.EnsureAdmin(ctx, "root@example.com", "motdepasse", "")
	require.NoError(t, err)
	assert.True(t, created)

	stored, _ := repo.GetByEmail(ctx, "root@example.com")
	require.NotNil(t, stored)
	stored.Role = entity.RoleUser
	stored.Status = entity.UserStatusInactive
	require.NoError(t, repo.Update(ctx, stored))

	created, err = uc.EnsureAdmin(ctx, "ROOT@example.com", "", "")
	require.NoError(t, err)
	assert.False(t, created)
	stored, _ = repo.GetByEmail(ctx, "root@example.com")
	assert.Equal(t, entity.RoleAdmin, stored.Role)
	assert.Equal(t, entity.UserStatusActive, stored.Status)

	_, err = uc.EnsureAdmin(ctx, "otro@example.com", "corta", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}
