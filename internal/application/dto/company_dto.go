package dto

import (
	"github.com/google/uuid"
	"github.com/jhoicas/categories-api/internal/domain"
)

// CreateCompanyRequest entrada para crear una empresa.
type CreateCompanyRequest struct {
	Name string `json:"name" validate:"required,max=255,nonul"`
}

// Validate normaliza el nombre y valida la entrada.
func (in *CreateCompanyRequest) Validate() *domain.ValidationError {
	in.Name = normalizeText(in.Name)
	return validateStruct(in)
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        uuid.UUID `json:"id" swaggertype:"string" format:"uuid"`
	Name      string    `json:"name"`
	CreatedAt Timestamp `json:"created_at" swaggertype:"string" example:"2025-06-14T00:00:00Z"`
	UpdatedAt Timestamp `json:"updated_at" swaggertype:"string" example:"2025-06-14T00:00:00Z"`
}
