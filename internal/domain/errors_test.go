package domain_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain"
)

func TestValidationError(t *testing.T) {
	var v domain.ValidationError
	assert.NoError(t, v.OrNil())

	v.Add("precio_unitario", "debe ser mayor a 0")
	v.Add("cantidad", "requerido")
	v.Add("cantidad", "ignorado")

	err := v.OrNil()
	assert.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, "datos inválidos: cantidad: requerido; precio_unitario: debe ser mayor a 0", err.Error())
}
