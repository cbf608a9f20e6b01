package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category representa una categoría de una empresa, opcionalmente anidada bajo otra categoría.
type Category struct {
	ID               uuid.UUID
	CompanyID        uuid.UUID
	Name             string
	ParentCategoryID *uuid.UUID // nil si es raíz
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasParent informa si la categoría cuelga de otra.
func (c *Category) HasParent() bool {
	return c.ParentCategoryID != nil
}
