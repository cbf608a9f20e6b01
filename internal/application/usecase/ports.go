package usecase

import (
	"context"

	"github.com/jhoicas/categories-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn retorna error la transacción se revierte.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		categoryRepo repository.CategoryRepository,
		companyRepo repository.CompanyRepository,
	) error) error
}

// Pinger verifica la disponibilidad de la base de datos.
type Pinger interface {
	Ping(ctx context.Context) error
}
