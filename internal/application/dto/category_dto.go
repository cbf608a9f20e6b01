package dto

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jhoicas/categories-api/internal/domain"
)

// Mensajes de validación propios (presencia, nulos y tipo).
const (
	MsgRequired      = "este campo es requerido"
	MsgNotNull       = "este campo no puede ser nulo"
	MsgNotBlank      = "este campo no puede estar vacío"
	MsgInvalidType   = "tipo de dato inválido, se espera texto"
	MsgNullCharacter = "no puede contener caracteres nulos"
)

// OptionalString distingue entre campo ausente, null explícito y valor presente.
// WrongType marca un valor JSON que no es texto; se reporta en Validate.
type OptionalString struct {
	Present   bool
	Null      bool
	WrongType bool
	Value     string
}

// Has informa si el campo llegó con un valor de texto.
func (o OptionalString) Has() bool {
	return o.Present && !o.Null && !o.WrongType
}

// CategoryInput cuerpo de escritura de una categoría (POST, PUT y PATCH).
// Campos desconocidos, id y timestamps se ignoran.
type CategoryInput struct {
	Name           OptionalString `json:"name" validate:"omitempty,max=255,nonul" swaggertype:"string"`
	Company        OptionalString `json:"company" validate:"omitempty,identifier" swaggertype:"string" format:"uuid"`
	ParentCategory OptionalString `json:"parent_category" validate:"omitempty,identifier" swaggertype:"string" format:"uuid"`
}

// categoryFields campos escribibles en el orden en que se reportan.
var categoryFields = []string{"name", "company", "parent_category"}

// ParseCategoryInput construye la entrada a partir del cuerpo JSON decodificado como objeto.
// Los campos con un tipo distinto de texto o null quedan marcados con WrongType.
func ParseCategoryInput(raw map[string]json.RawMessage) CategoryInput {
	var in CategoryInput
	targets := map[string]*OptionalString{
		"name":            &in.Name,
		"company":         &in.Company,
		"parent_category": &in.ParentCategory,
	}
	for _, field := range categoryFields {
		value, ok := raw[field]
		if !ok {
			continue
		}
		target := targets[field]
		target.Present = true
		if string(value) == "null" {
			target.Null = true
			continue
		}
		if err := json.Unmarshal(value, &target.Value); err != nil {
			target.WrongType = true
		}
	}
	return in
}

// Validate normaliza el nombre y valida presencia y formato.
// partial indica PATCH: los campos requeridos pueden omitirse.
func (in *CategoryInput) Validate(partial bool) *domain.ValidationError {
	verr := &domain.ValidationError{}
	if in.Name.Has() {
		in.Name.Value = normalizeText(in.Name.Value)
	}

	checkRequired := func(field string, v OptionalString) {
		switch {
		case v.WrongType:
			verr.Add(field, MsgInvalidType)
		case !v.Present:
			if !partial {
				verr.Add(field, MsgRequired)
			}
		case v.Null:
			verr.Add(field, MsgNotNull)
		case v.Value == "":
			verr.Add(field, MsgNotBlank)
		}
	}
	checkRequired("name", in.Name)
	checkRequired("company", in.Company)
	if in.ParentCategory.WrongType {
		verr.Add("parent_category", MsgInvalidType)
	}
	if in.ParentCategory.Has() && in.ParentCategory.Value == "" {
		// "" en parent_category equivale a null, como en un formulario.
		in.ParentCategory.Null = true
	}

	verr.Merge(validateStruct(in))
	return verr
}

// CompanyID devuelve el UUID de company; válido solo después de Validate.
func (in *CategoryInput) CompanyID() uuid.UUID {
	id, _ := uuid.Parse(in.Company.Value)
	return id
}

// ParentCategoryID devuelve el UUID del padre o nil si es null/ausente; válido solo después de Validate.
func (in *CategoryInput) ParentCategoryID() *uuid.UUID {
	if !in.ParentCategory.Has() {
		return nil
	}
	id, err := uuid.Parse(in.ParentCategory.Value)
	if err != nil {
		return nil
	}
	return &id
}

// CategoryResponse representación de lectura de una categoría.
type CategoryResponse struct {
	ID             string     `json:"id" format:"uuid"`
	Company        uuid.UUID  `json:"company" swaggertype:"string" format:"uuid"`
	Name           string     `json:"name"`
	ParentCategory *uuid.UUID `json:"parent_category" swaggertype:"string" format:"uuid" extensions:"x-nullable"`
	CreatedAt      Timestamp  `json:"created_at" swaggertype:"string" example:"2025-06-14T00:00:00Z"`
	UpdatedAt      Timestamp  `json:"updated_at" swaggertype:"string" example:"2025-06-14T00:00:00Z"`
}
