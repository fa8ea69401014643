package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/entity"
)

// VentaFilter filtros del listado de ventas.
type VentaFilter struct {
	ListParams
	SocioID *int64
	Estado  string
	From    time.Time
	Until   time.Time
}

// CountAmount conteo y suma agrupados por una clave (estado, tipo...).
type CountAmount struct {
	Key    string
	Count  int
	Amount decimal.Decimal
}

// VentaRepository define el puerto de persistencia para Venta.
type VentaRepository interface {
	Create(ctx context.Context, v *entity.Venta) error
	GetByID(ctx context.Context, id int64) (*entity.Venta, error)
	Update(ctx context.Context, v *entity.Venta, expectedVersion int) error
	// UpdateEstado cambia solo el estado (usado al confirmar pagos de la venta).
	UpdateEstado(ctx context.Context, id int64, estado string) error
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, f VentaFilter) ([]*entity.Venta, int, error)
	// StatsByEstado agrega conteo y total por estado en el rango [from, until).
	StatsByEstado(ctx context.Context, from, until time.Time) ([]CountAmount, error)
}
