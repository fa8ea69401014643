package repository

import (
	"context"
	"time"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/entity"
)

// ProduccionFilter filtros del listado de producción.
type ProduccionFilter struct {
	ListParams
	SocioID *int64
	Calidad string
	From    time.Time // fecha_cosecha >= From (cero = sin límite)
	Until   time.Time // fecha_cosecha < Until (cero = sin límite)
}

// ProduccionRepository define el puerto de persistencia para Produccion.
type ProduccionRepository interface {
	Create(ctx context.Context, p *entity.Produccion) error
	GetByID(ctx context.Context, id int64) (*entity.Produccion, error)
	Update(ctx context.Context, p *entity.Produccion, expectedVersion int) error
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, f ProduccionFilter) ([]*entity.Produccion, int, error)
}
