package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/categories-api/internal/application/dto"
	"github.com/jhoicas/categories-api/internal/domain"
	"github.com/jhoicas/categories-api/internal/domain/entity"
	"github.com/jhoicas/categories-api/internal/domain/repository"
	"github.com/jonboulle/clockwork"
)

// CompanyUseCase casos de uso para empresas (dueñas de las categorías).
type CompanyUseCase struct {
	repo  repository.CompanyRepository
	clock clockwork.Clock
}

// NewCompanyUseCase construye el caso de uso con el puerto de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, clock clockwork.Clock) *CompanyUseCase {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &CompanyUseCase{repo: repo, clock: clock}
}

// Create crea una nueva empresa.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if err := in.Validate().OrNil(); err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	company := &entity.Company{
		ID:        uuid.New(),
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	companyID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	company, err := uc.repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// List lista las empresas en orden de creación.
func (uc *CompanyUseCase) List(ctx context.Context) ([]dto.CompanyResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCompanyResponse(c))
	}
	return items, nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: dto.Timestamp(c.CreatedAt),
		UpdatedAt: dto.Timestamp(c.UpdatedAt),
	}
}
