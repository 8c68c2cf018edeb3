package repository

import (
	"context"

	"github.com/jhoicas/facturation-api/internal/domain/entity"
)

// DraftRepository puerto del almacén local de borradores.
type DraftRepository interface {
	Save(ctx context.Context, draft *entity.Draft) error
	// GetByID devuelve (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.Draft, error)
	ListByUser(ctx context.Context, userID string) ([]*entity.Draft, error)
	Delete(ctx context.Context, id string) error
}
