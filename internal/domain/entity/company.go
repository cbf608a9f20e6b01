package entity

import (
	"time"

	"github.com/google/uuid"
)

// Company representa la empresa dueña de las categorías.
type Company struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
