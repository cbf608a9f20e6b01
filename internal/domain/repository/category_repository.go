package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/categories-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// GetByID y GetByIDForUpdate devuelven (nil, nil) si no existe.
// Update y Delete devuelven domain.ErrNotFound si no afectan ninguna fila.
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
	// HasAncestor informa si ancestorID es id o alguno de sus ancestros.
	HasAncestor(ctx context.Context, id, ancestorID uuid.UUID) (bool, error)
}
