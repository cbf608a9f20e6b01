package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_EsErrInvalidInput(t *testing.T) {
	err := fmt.Errorf("crear categoría: %w", NewValidationError("name", "requerido"))

	assert.True(t, errors.Is(err, ErrInvalidInput))
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, []string{"requerido"}, verr.Fields["name"])
}

func TestValidationError_MergeAcumulaMensajes(t *testing.T) {
	v := NewValidationError("company", "no existe")
	v.Merge(NewValidationError("company", "inmutable"))
	v.Merge(nil)

	assert.Equal(t, []string{"no existe", "inmutable"}, v.Fields["company"])
}

func TestValidationError_EmptyConNil(t *testing.T) {
	var v *ValidationError
	assert.True(t, v.Empty())
	assert.NoError(t, v.OrNil())
	assert.True(t, (&ValidationError{}).Empty())
}

func TestValidationError_OrNilDevuelveError(t *testing.T) {
	v := NewValidationError("name", "vacío")
	assert.Error(t, v.OrNil())
}

func TestValidationError_MensajeOrdenadoPorCampo(t *testing.T) {
	v := NewValidationError("parent_category", "no existe")
	v.Add("company", "requerido")
	v.Add("company", "inválido")

	assert.Equal(t,
		"entrada inválida (company: requerido; inválido, parent_category: no existe)",
		v.Error())
}
