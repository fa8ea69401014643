package repository

import (
	"context"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/entity"
)

// InsumoFilter filtros del listado de insumos.
type InsumoFilter struct {
	ListParams
	Tipo   string
	Estado string
}

// InsumoRepository define el puerto de persistencia para Insumo.
type InsumoRepository interface {
	Create(ctx context.Context, i *entity.Insumo) error
	GetByID(ctx context.Context, id int64) (*entity.Insumo, error)
	Update(ctx context.Context, i *entity.Insumo, expectedVersion int) error
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, f InsumoFilter) ([]*entity.Insumo, int, error)
	// LockForUpdate lee el insumo bloqueando la fila (SELECT ... FOR UPDATE).
	LockForUpdate(ctx context.Context, id int64) (*entity.Insumo, error)
}
