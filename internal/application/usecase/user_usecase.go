package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/facturation-api/internal/application/auth"
	"github.com/jhoicas/facturation-api/internal/application/dto"
	"github.com/jhoicas/facturation-api/internal/domain"
	"github.com/jhoicas/facturation-api/internal/domain/entity"
	"github.com/jhoicas/facturation-api/internal/domain/repository"
	"github.com/jhoicas/facturation-api/pkg/logger"
)

// UserUseCase administración de cuentas (solo admin).
type UserUseCase struct {
	repo repository.UserRepository
	log  *logger.Logger
	now  func() time.Time
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, log *logger.Logger) *UserUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UserUseCase{repo: repo, log: log.Component("users"), now: time.Now}
}

// List devuelve una página de usuarios.
func (uc *UserUseCase) List(ctx context.Context, s entity.Session, page dto.PageRequest) ([]dto.UserResponse, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	page.DefaultPage()
	users, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *entityToUserResponse(u))
	}
	return out, nil
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, s entity.Session, id string) (*dto.UserResponse, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return entityToUserResponse(user), nil
}

// Create alta de un usuario con el rol indicado.
func (uc *UserUseCase) Create(ctx context.Context, s entity.Session, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	email := auth.NormalizeEmail(in.Email)
	if email == "" || len(in.Password) < auth.MinPasswordLength {
		return nil, fmt.Errorf("%w: email y password (mínimo %d caracteres) son requeridos", domain.ErrValidation, auth.MinPasswordLength)
	}
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	user, err := auth.NewUser(email, in.Password, in.Name, in.Role, uc.now())
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Str("by", s.UserID).Msg("usuario creado")
	return entityToUserResponse(user), nil
}

// Update cambia rol y/o estado. Un admin no puede degradarse ni desactivarse a sí mismo.
func (uc *UserUseCase) Update(ctx context.Context, s entity.Session, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if err := requireAdmin(s); err != nil {
		return nil, err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Role != "" {
		if !entity.ValidRole(in.Role) {
			return nil, fmt.Errorf("%w: rol %q", domain.ErrValidation, in.Role)
		}
		user.Role = in.Role
	}
	if in.Status != "" {
		if in.Status != entity.UserStatusActive && in.Status != entity.UserStatusInactive {
			return nil, fmt.Errorf("%w: estado %q", domain.ErrValidation, in.Status)
		}
		user.Status = in.Status
	}
	if user.ID == s.UserID && (user.Role != entity.RoleAdmin || user.Status != entity.UserStatusActive) {
		return nil, fmt.Errorf("%w: no puede quitarse su propio acceso de admin", domain.ErrValidation)
	}
	user.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Str("status", user.Status).Msg("usuario actualizado")
	return entityToUserResponse(user), nil
}

// EnsureAdmin crea la cuenta admin o promueve la existente (arranque desde la CLI).
// Devuelve true si la cuenta se creó.
func (uc *UserUseCase) EnsureAdmin(ctx context.Context, email, password, name string) (bool, error) {
	email = auth.NormalizeEmail(email)
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		existing.Role = entity.RoleAdmin
		existing.Status = entity.UserStatusActive
		existing.UpdatedAt = uc.now()
		return false, uc.repo.Update(ctx, existing)
	}
	if email == "" || len(password) < auth.MinPasswordLength {
		return false, fmt.Errorf("%w: email y password (mínimo %d caracteres) son requeridos", domain.ErrValidation, auth.MinPasswordLength)
	}
	user, err := auth.NewUser(email, password, name, entity.RoleAdmin, uc.now())
	if err != nil {
		return false, err
	}
	return true, uc.repo.Create(ctx, user)
}

func requireAdmin(s entity.Session) error {
	if !s.Valid() {
		return domain.ErrUnauthorized
	}
	if !s.IsAdmin() {
		return fmt.Errorf("%w: se requiere rol admin", domain.ErrForbidden)
	}
	return nil
}

func entityToUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
