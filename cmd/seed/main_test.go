package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/pkg/logger"
)

type recordingSocios struct {
	got []dto.SocioRequest
}

func (r *recordingSocios) Create(_ context.Context, in dto.SocioRequest) (*dto.SocioResponse, error) {
	if in.Cedula == "" {
		return nil, domain.NewValidationError("cedula", "es obligatorio")
	}
	r.got = append(r.got, in)
	return &dto.SocioResponse{IDSocio: int64(len(r.got))}, nil
}

func TestImportSocios_Latin1(t *testing.T) {
	content := "nombre;apellido;cedula;telefono;email;direccion;fecha_ingreso\n" +
		"José;Núñez;4-111-222;6000-0000;;Boquete;2024-02-01\n" +
		"Sin;Cedula;;;;;\n"
	encoded, err := charmap.ISO8859_1.NewEncoder().String(content)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "socios.csv")
	require.NoError(t, os.WriteFile(path, []byte(encoded), 0o600))

	rec := &recordingSocios{}
	n, skipped, err := importSocios(context.Background(), rec, path, "latin1", logger.Nop())

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, skipped)
	require.Len(t, rec.got, 1)
	assert.Equal(t, "José", rec.got[0].Nombre)
	assert.Equal(t, "Núñez", rec.got[0].Apellido)
	assert.Equal(t, "2024-02-01", rec.got[0].FechaIngreso)
}

func TestSocioFromRecord_ColumnasFaltantes(t *testing.T) {
	in := socioFromRecord([]string{" Ana ", "Pérez", "8-1-1"})
	assert.Equal(t, "Ana", in.Nombre)
	assert.Equal(t, "8-1-1", in.Cedula)
	assert.Empty(t, in.Email)
}
