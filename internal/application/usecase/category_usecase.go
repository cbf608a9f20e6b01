package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jhoicas/categories-api/internal/application/dto"
	"github.com/jhoicas/categories-api/internal/domain"
	"github.com/jhoicas/categories-api/internal/domain/entity"
	"github.com/jhoicas/categories-api/internal/domain/repository"
	"github.com/jonboulle/clockwork"
)

// Mensajes de validación de referencias.
const (
	msgCompanyImmutable = "no se puede cambiar la empresa de una categoría"
	msgSelfParent       = "una categoría no puede ser su propia categoría padre"
	msgParentCycle      = "la categoría padre no puede ser una subcategoría de esta categoría"
)

func msgDoesNotExist(id string) string {
	return fmt.Sprintf("pk inválido %q: el objeto no existe", id)
}

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo  repository.CategoryRepository
	tx    TxRunner
	clock clockwork.Clock
}

// NewCategoryUseCase construye el caso de uso. clock permite congelar el tiempo en tests.
func NewCategoryUseCase(repo repository.CategoryRepository, tx TxRunner, clock clockwork.Clock) *CategoryUseCase {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &CategoryUseCase{repo: repo, tx: tx, clock: clock}
}

// List devuelve todas las categorías en orden de creación.
func (uc *CategoryUseCase) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return items, nil
}

// GetByID obtiene una categoría. Un id que no es UUID equivale a inexistente (domain.ErrNotFound).
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	categoryID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	category, err := uc.repo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return toCategoryResponse(category), nil
}

// Create crea una categoría. created_at y updated_at salen de la misma lectura del reloj.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CategoryInput) (*dto.CategoryResponse, error) {
	if verr := in.Validate(false); !verr.Empty() {
		return nil, verr
	}
	now := uc.clock.Now()
	category := &entity.Category{
		ID:               uuid.New(),
		CompanyID:        in.CompanyID(),
		Name:             in.Name.Value,
		ParentCategoryID: in.ParentCategoryID(),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err := uc.tx.Run(ctx, func(categoryRepo repository.CategoryRepository, companyRepo repository.CompanyRepository) error {
		verr := &domain.ValidationError{}
		company, err := companyRepo.GetByID(ctx, category.CompanyID)
		if err != nil {
			return err
		}
		if company == nil {
			verr.Add("company", msgDoesNotExist(in.Company.Value))
		}
		if category.HasParent() {
			parent, err := categoryRepo.GetByID(ctx, *category.ParentCategoryID)
			if err != nil {
				return err
			}
			if parent == nil {
				verr.Add("parent_category", msgDoesNotExist(in.ParentCategory.Value))
			}
		}
		if err := verr.OrNil(); err != nil {
			return err
		}
		return categoryRepo.Create(ctx, category)
	})
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// Update actualiza una categoría. partial=true (PATCH) deja intactos los campos ausentes;
// partial=false (PUT) exige name y company. updated_at siempre se refresca.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.CategoryInput, partial bool) (*dto.CategoryResponse, error) {
	categoryID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrNotFound
	}
	if verr := in.Validate(partial); !verr.Empty() {
		// Un id inexistente tiene prioridad sobre la validación del cuerpo.
		existing, err := uc.repo.GetByID(ctx, categoryID)
		if err != nil {
			return nil, err
		}
		if existing == nil {
			return nil, domain.ErrNotFound
		}
		return nil, verr
	}

	var updated *entity.Category
	err = uc.tx.Run(ctx, func(categoryRepo repository.CategoryRepository, _ repository.CompanyRepository) error {
		category, err := categoryRepo.GetByIDForUpdate(ctx, categoryID)
		if err != nil {
			return err
		}
		if category == nil {
			return domain.ErrNotFound
		}

		verr := &domain.ValidationError{}
		if in.Company.Has() && in.CompanyID() != category.CompanyID {
			verr.Add("company", msgCompanyImmutable)
		}
		if in.ParentCategory.Present {
			parentID := in.ParentCategoryID()
			if parentID != nil {
				pverr, err := uc.checkParent(ctx, categoryRepo, category.ID, *parentID, in.ParentCategory.Value)
				if err != nil {
					return err
				}
				verr.Merge(pverr)
			}
			category.ParentCategoryID = parentID
		}
		if !verr.Empty() {
			return verr
		}

		if in.Name.Has() {
			category.Name = in.Name.Value
		}
		category.UpdatedAt = uc.clock.Now()
		if err := categoryRepo.Update(ctx, category); err != nil {
			return err
		}
		updated = category
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(updated), nil
}

// checkParent verifica que el padre exista y que no cree un ciclo.
func (uc *CategoryUseCase) checkParent(ctx context.Context, repo repository.CategoryRepository, categoryID, parentID uuid.UUID, raw string) (*domain.ValidationError, error) {
	if parentID == categoryID {
		return domain.NewValidationError("parent_category", msgSelfParent), nil
	}
	parent, err := repo.GetByID(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent == nil {
		return domain.NewValidationError("parent_category", msgDoesNotExist(raw)), nil
	}
	cycle, err := repo.HasAncestor(ctx, parentID, categoryID)
	if err != nil {
		return nil, err
	}
	if cycle {
		return domain.NewValidationError("parent_category", msgParentCycle), nil
	}
	return nil, nil
}

// Delete elimina una categoría. Las subcategorías quedan como raíz.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	categoryID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, categoryID)
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	return &dto.CategoryResponse{
		ID:             c.ID.String(),
		Company:        c.CompanyID,
		Name:           c.Name,
		ParentCategory: c.ParentCategoryID,
		CreatedAt:      dto.Timestamp(c.CreatedAt),
		UpdatedAt:      dto.Timestamp(c.UpdatedAt),
	}
}
