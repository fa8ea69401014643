package repository

import (
	"context"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/entity"
)

// SocioFilter filtros del listado de socios.
type SocioFilter struct {
	ListParams
	Estado string
}

// SocioOption par id/nombre para selectores.
type SocioOption struct {
	ID     int64
	Nombre string
}

// SocioRepository define el puerto de persistencia para Socio.
type SocioRepository interface {
	Create(ctx context.Context, s *entity.Socio) error
	GetByID(ctx context.Context, id int64) (*entity.Socio, error)
	GetByCedula(ctx context.Context, cedula string) (*entity.Socio, error)
	// Update aplica bloqueo optimista cuando expectedVersion > 0.
	Update(ctx context.Context, s *entity.Socio, expectedVersion int) error
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, f SocioFilter) ([]*entity.Socio, int, error)
	Options(ctx context.Context) ([]SocioOption, error)
	// LockForUpdate bloquea la fila del socio dentro de la transacción en curso.
	LockForUpdate(ctx context.Context, id int64) (*entity.Socio, error)
	// RecalculateAportes fija aportes_totales como la suma de aportes confirmados del socio.
	RecalculateAportes(ctx context.Context, id int64) error
}
