package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/entity"
)

// PagoFilter filtros del listado de pagos.
type PagoFilter struct {
	ListParams
	SocioID *int64
	Tipo    string
	Estado  string
	From    time.Time
	Until   time.Time
}

// PagoRepository define el puerto de persistencia para Pago.
type PagoRepository interface {
	Create(ctx context.Context, p *entity.Pago) error
	GetByID(ctx context.Context, id int64) (*entity.Pago, error)
	Update(ctx context.Context, p *entity.Pago, expectedVersion int) error
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, f PagoFilter) ([]*entity.Pago, int, error)
	// ConfirmedForVenta suma los pagos confirmados vinculados a la venta.
	ConfirmedForVenta(ctx context.Context, ventaID int64) (decimal.Decimal, error)
	StatsByTipo(ctx context.Context, from, until time.Time) ([]CountAmount, error)
	StatsByEstado(ctx context.Context, from, until time.Time) ([]CountAmount, error)
}
