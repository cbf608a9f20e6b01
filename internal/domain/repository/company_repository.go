package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/categories-api/internal/domain/entity"
)

// CompanyRepository define el puerto de persistencia para Company (DIP).
// La implementación vive en infrastructure.
type CompanyRepository interface {
	Create(ctx context.Context, company *entity.Company) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Company, error)
	List(ctx context.Context) ([]*entity.Company, error)
}
