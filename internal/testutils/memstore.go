// Package testutils contiene dobles en memoria de los puertos de persistencia para tests de casos de uso y HTTP.
package testutils

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/jhoicas/categories-api/internal/domain"
	"github.com/jhoicas/categories-api/internal/domain/entity"
	"github.com/jhoicas/categories-api/internal/domain/repository"
)

// Store guarda empresas y categorías en memoria respetando el orden de inserción.
// Reproduce las reglas de las FK del esquema: borrar una categoría deja a sus hijas sin padre.
type Store struct {
	mu          sync.Mutex
	txMu        sync.Mutex
	companies   map[uuid.UUID]entity.Company
	companySeq  []uuid.UUID
	categories  map[uuid.UUID]entity.Category
	categorySeq []uuid.UUID

	// Err, si no es nil, lo devuelven todas las operaciones (simula una BD caída).
	Err error
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		companies:  make(map[uuid.UUID]entity.Company),
		categories: make(map[uuid.UUID]entity.Category),
	}
}

// Categories devuelve el repositorio de categorías.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

// Companies devuelve el repositorio de empresas.
func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{s: s} }

// TxRunner devuelve un runner que revierte los cambios si fn falla.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

// CategoryCount número de categorías guardadas.
func (s *Store) CategoryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.categorySeq)
}

// Ping implementa usecase.Pinger.
func (s *Store) Ping(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Err
}

type snapshot struct {
	companies   map[uuid.UUID]entity.Company
	companySeq  []uuid.UUID
	categories  map[uuid.UUID]entity.Category
	categorySeq []uuid.UUID
}

func (s *Store) snapshot() snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot{
		companies:   make(map[uuid.UUID]entity.Company, len(s.companies)),
		companySeq:  append([]uuid.UUID(nil), s.companySeq...),
		categories:  make(map[uuid.UUID]entity.Category, len(s.categories)),
		categorySeq: append([]uuid.UUID(nil), s.categorySeq...),
	}
	for k, v := range s.companies {
		snap.companies[k] = v
	}
	for k, v := range s.categories {
		snap.categories[k] = v
	}
	return snap
}

func (s *Store) restore(snap snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies, s.companySeq = snap.companies, snap.companySeq
	s.categories, s.categorySeq = snap.categories, snap.categorySeq
}

func copyCategory(c entity.Category) *entity.Category {
	if c.ParentCategoryID != nil {
		parent := *c.ParentCategoryID
		c.ParentCategoryID = &parent
	}
	return &c
}

// CategoryRepo implementa repository.CategoryRepository sobre Store.
type CategoryRepo struct{ s *Store }

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.categories[c.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := r.s.companies[c.CompanyID]; !ok {
		return domain.NewValidationError("company", "el objeto referenciado no existe")
	}
	if c.ParentCategoryID != nil {
		if _, ok := r.s.categories[*c.ParentCategoryID]; !ok {
			return domain.NewValidationError("parent_category", "el objeto referenciado no existe")
		}
	}
	r.s.categories[c.ID] = *copyCategory(*c)
	r.s.categorySeq = append(r.s.categorySeq, c.ID)
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return copyCategory(c), nil
}

func (r *CategoryRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Category, error) {
	return r.GetByID(ctx, id)
}

func (r *CategoryRepo) List(context.Context) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	list := make([]*entity.Category, 0, len(r.s.categorySeq))
	for _, id := range r.s.categorySeq {
		list = append(list, copyCategory(r.s.categories[id]))
	}
	return list, nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	stored, ok := r.s.categories[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	stored.Name = c.Name
	stored.ParentCategoryID = copyCategory(*c).ParentCategoryID
	stored.UpdatedAt = c.UpdatedAt
	r.s.categories[c.ID] = stored
	return nil
}

func (r *CategoryRepo) Delete(_ context.Context, id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.categories, id)
	for i, seqID := range r.s.categorySeq {
		if seqID == id {
			r.s.categorySeq = append(r.s.categorySeq[:i:i], r.s.categorySeq[i+1:]...)
			break
		}
	}
	// ON DELETE SET NULL
	for childID, child := range r.s.categories {
		if child.ParentCategoryID != nil && *child.ParentCategoryID == id {
			child.ParentCategoryID = nil
			r.s.categories[childID] = child
		}
	}
	return nil
}

func (r *CategoryRepo) HasAncestor(_ context.Context, id, ancestorID uuid.UUID) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return false, r.s.Err
	}
	seen := make(map[uuid.UUID]bool)
	current := &id
	for current != nil && !seen[*current] {
		if *current == ancestorID {
			return true, nil
		}
		seen[*current] = true
		c, ok := r.s.categories[*current]
		if !ok {
			break
		}
		current = c.ParentCategoryID
	}
	return false, nil
}

// CompanyRepo implementa repository.CompanyRepository sobre Store.
type CompanyRepo struct{ s *Store }

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return r.s.Err
	}
	if _, ok := r.s.companies[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.companies[c.ID] = *c
	r.s.companySeq = append(r.s.companySeq, c.ID)
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id uuid.UUID) (*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	c, ok := r.s.companies[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CompanyRepo) List(context.Context) ([]*entity.Company, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.Err != nil {
		return nil, r.s.Err
	}
	list := make([]*entity.Company, 0, len(r.s.companySeq))
	for _, id := range r.s.companySeq {
		c := r.s.companies[id]
		list = append(list, &c)
	}
	return list, nil
}

// TxRunner serializa las "transacciones" y restaura el estado previo si fn devuelve error.
type TxRunner struct{ s *Store }

func (t *TxRunner) Run(ctx context.Context, fn func(
	categoryRepo repository.CategoryRepository,
	companyRepo repository.CompanyRepository,
) error) error {
	t.s.txMu.Lock()
	defer t.s.txMu.Unlock()
	snap := t.s.snapshot()
	if err := fn(t.s.Categories(), t.s.Companies()); err != nil {
		t.s.restore(snap)
		return err
	}
	return nil
}
