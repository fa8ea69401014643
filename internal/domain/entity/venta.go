package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de Venta.
const (
	VentaPendiente = "pendiente"
	VentaEntregado = "entregado"
	VentaPagado    = "pagado"
	VentaCancelado = "cancelado"
)

// VentaEstadosContables estados que cuentan como ingreso en reportes.
var VentaEstadosContables = []string{VentaPendiente, VentaEntregado, VentaPagado}

// Venta transacción de venta. Total = Cantidad × PrecioUnitario, calculado por el servidor.
type Venta struct {
	ID               int64
	SocioID          *int64
	Producto         string
	Cantidad         decimal.Decimal
	PrecioUnitario   decimal.Decimal
	Total            decimal.Decimal
	Cliente          string
	DireccionEntrega string
	FechaVenta       time.Time
	FechaEntrega     *time.Time
	MetodoPago       string
	Estado           string
	Observaciones    string
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time

	SocioNombre string
}

// ComputeTotal fija Total a partir de cantidad y precio unitario.
func (v *Venta) ComputeTotal() {
	v.Total = v.Cantidad.Mul(v.PrecioUnitario).Round(2)
}

// ValidVentaEstado indica si el estado pertenece al enum.
func ValidVentaEstado(e string) bool {
	switch e {
	case VentaPendiente, VentaEntregado, VentaPagado, VentaCancelado:
		return true
	}
	return false
}
