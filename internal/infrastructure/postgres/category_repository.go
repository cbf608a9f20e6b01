package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/categories-api/internal/domain"
	"github.com/jhoicas/categories-api/internal/domain/entity"
	"github.com/jhoicas/categories-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categoryColumns = `id, company_id, name, parent_category_id, created_at, updated_at`

const (
	insertCategoryQuery = `
		INSERT INTO categories (id, company_id, name, parent_category_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	selectCategoryQuery = `
		SELECT ` + categoryColumns + `
		FROM categories WHERE id = $1`
	selectCategoryForUpdateQuery = selectCategoryQuery + ` FOR UPDATE`
	listCategoriesQuery          = `
		SELECT ` + categoryColumns + `
		FROM categories ORDER BY seq`
	updateCategoryQuery = `
		UPDATE categories SET name = $2, parent_category_id = $3, updated_at = $4
		WHERE id = $1`
	deleteCategoryQuery = `DELETE FROM categories WHERE id = $1`
	// Recorre la cadena de padres desde $1; UNION descarta repetidos, así termina aunque exista un ciclo previo.
	hasAncestorQuery = `
		WITH RECURSIVE ancestry (id, parent_category_id) AS (
			SELECT id, parent_category_id FROM categories WHERE id = $1
			UNION
			SELECT c.id, c.parent_category_id
			FROM categories c JOIN ancestry a ON c.id = a.parent_category_id
		)
		SELECT EXISTS (SELECT 1 FROM ancestry WHERE id = $2)`
)

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías. Pasar pool o tx (Querier).
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, insertCategoryQuery,
		c.ID, c.CompanyID, c.Name, c.ParentCategoryID, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return mapCategoryWriteError("insert category", err)
	}
	return nil
}

// GetByID obtiene una categoría por ID.
func (r *CategoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return r.get(ctx, selectCategoryQuery, id)
}

// GetByIDForUpdate obtiene una categoría bloqueando la fila hasta el fin de la transacción.
func (r *CategoryRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return r.get(ctx, selectCategoryForUpdateQuery, id)
}

func (r *CategoryRepo) get(ctx context.Context, query string, id uuid.UUID) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

// List devuelve todas las categorías en orden de inserción.
func (r *CategoryRepo) List(ctx context.Context) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, listCategoriesQuery)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	list := make([]*entity.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

// Update actualiza nombre, padre y updated_at. La empresa no se modifica.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	cmd, err := r.q.Exec(ctx, updateCategoryQuery, c.ID, c.Name, c.ParentCategoryID, c.UpdatedAt)
	if err != nil {
		return mapCategoryWriteError("update category", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una categoría por ID.
func (r *CategoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.q.Exec(ctx, deleteCategoryQuery, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// HasAncestor informa si ancestorID es id o alguno de sus ancestros.
func (r *CategoryRepo) HasAncestor(ctx context.Context, id, ancestorID uuid.UUID) (bool, error) {
	var found bool
	if err := r.q.QueryRow(ctx, hasAncestorQuery, id, ancestorID).Scan(&found); err != nil {
		return false, fmt.Errorf("check category ancestry: %w", err)
	}
	return found, nil
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.CompanyID, &c.Name, &c.ParentCategoryID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// mapCategoryWriteError traduce violaciones de FK a errores de validación por campo.
func mapCategoryWriteError(op string, err error) error {
	if constraint, ok := foreignKeyViolation(err); ok {
		field := "company"
		if strings.Contains(constraint, "parent_category") {
			field = "parent_category"
		}
		return domain.NewValidationError(field, "el objeto referenciado no existe")
	}
	if isUniqueViolation(err) {
		return domain.ErrDuplicate
	}
	return fmt.Errorf("%s: %w", op, err)
}
