package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/entity"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/repository"
)

type memProduccion struct {
	rows   map[int64]*entity.Produccion
	nextID int64
}

var _ repository.ProduccionRepository = (*memProduccion)(nil)

func newMemProduccion() *memProduccion {
	return &memProduccion{rows: map[int64]*entity.Produccion{}}
}

func (m *memProduccion) Create(_ context.Context, p *entity.Produccion) error {
	m.nextID++
	p.ID, p.Version = m.nextID, 1
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

func (m *memProduccion) GetByID(_ context.Context, id int64) (*entity.Produccion, error) {
	p, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (m *memProduccion) Update(_ context.Context, p *entity.Produccion, expectedVersion int) error {
	cur, ok := m.rows[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if expectedVersion > 0 && cur.Version != expectedVersion {
		return domain.ErrConflict
	}
	p.Version = cur.Version + 1
	cp := *p
	m.rows[p.ID] = &cp
	return nil
}

func (m *memProduccion) Delete(_ context.Context, id int64) (bool, error) {
	_, ok := m.rows[id]
	delete(m.rows, id)
	return ok, nil
}

func (m *memProduccion) List(context.Context, repository.ProduccionFilter) ([]*entity.Produccion, int, error) {
	out := make([]*entity.Produccion, 0, len(m.rows))
	for _, p := range m.rows {
		out = append(out, p)
	}
	return out, len(out), nil
}

func cosecha(socio int64) dto.ProduccionRequest {
	return dto.ProduccionRequest{
		IDSocio:        socio,
		Cultivo:        " Café ",
		Cantidad:       d("12.5"),
		Unidad:         "qq",
		FechaCosecha:   "2025-03-10",
		PrecioEstimado: d("80"),
	}
}

func TestProduccionCreate_ValorEstimadoYSocio(t *testing.T) {
	socios := newMemSocios(&entity.Socio{ID: 3, Nombre: "Luis", Apellido: "Gómez"})
	uc := NewProduccionUseCase(newMemProduccion(), socios)

	out, err := uc.Create(context.Background(), cosecha(3))
	require.NoError(t, err)
	assert.Equal(t, "Café", out.Cultivo)
	assert.Equal(t, "Luis Gómez", out.SocioNombre)
	assert.Equal(t, entity.CalidadPrimera, out.Calidad)
	assert.True(t, out.ValorEstimado.Equal(d("1000")), "valor = %s", out.ValorEstimado)
}

func TestProduccionCreate_SocioInexistente(t *testing.T) {
	uc := NewProduccionUseCase(newMemProduccion(), newMemSocios())

	_, err := uc.Create(context.Background(), cosecha(99))
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "id_socio")
}

func TestProduccionCreate_CamposInvalidos(t *testing.T) {
	uc := NewProduccionUseCase(newMemProduccion(), newMemSocios())
	in := cosecha(1)
	in.Cantidad = d("0")
	in.Calidad = "extra"
	in.FechaCosecha = "10/03/2025"

	_, err := uc.Create(context.Background(), in)
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "cantidad")
	assert.Contains(t, ve.Fields, "calidad")
	assert.Contains(t, ve.Fields, "fecha_cosecha")
}

func TestProduccionUpdate_HuerfanoSinReasignar(t *testing.T) {
	socios := newMemSocios(&entity.Socio{ID: 3, Nombre: "Luis", Apellido: "Gómez"})
	repo := newMemProduccion()
	uc := NewProduccionUseCase(repo, socios)
	ctx := context.Background()

	created, err := uc.Create(ctx, cosecha(3))
	require.NoError(t, err)
	_, err = socios.Delete(ctx, 3)
	require.NoError(t, err)

	in := cosecha(3)
	in.Cantidad = d("20")
	in.Version = created.Version
	out, err := uc.Update(ctx, created.IDProduccion, in)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Version)

	in.Version = 1
	_, err = uc.Update(ctx, created.IDProduccion, in)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestProduccionDelete_NoExiste(t *testing.T) {
	uc := NewProduccionUseCase(newMemProduccion(), newMemSocios())
	assert.ErrorIs(t, uc.Delete(context.Background(), 5), domain.ErrNotFound)
}
