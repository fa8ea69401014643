package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de pago.
const (
	PagoAporteMensual        = "aporte_mensual"
	PagoAporteExtraordinario = "aporte_extraordinario"
	PagoVenta                = "pago_venta"
	PagoPrestamo             = "prestamo"
	PagoDevolucion           = "devolucion"
)

// Estados de pago.
const (
	PagoPendiente  = "pendiente"
	PagoConfirmado = "confirmado"
	PagoRechazado  = "rechazado"
)

// PagoTiposAporte tipos que cuentan como aporte del socio.
var PagoTiposAporte = []string{PagoAporteMensual, PagoAporteExtraordinario}

// Pago pago o aporte de un socio; puede referenciar una venta.
// Monto es independiente del total de la venta vinculada.
type Pago struct {
	ID          int64
	SocioID     int64
	VentaID     *int64
	Monto       decimal.Decimal
	Tipo        string
	MetodoPago  string
	Estado      string
	FechaPago   time.Time
	Descripcion string
	Version     int
	CreatedAt   time.Time
	UpdatedAt   time.Time

	SocioNombre string
}

// EsAporte indica si el pago es un aporte (mensual o extraordinario).
func (p *Pago) EsAporte() bool {
	return p.Tipo == PagoAporteMensual || p.Tipo == PagoAporteExtraordinario
}

// ValidPagoTipo indica si el tipo pertenece al enum.
func ValidPagoTipo(t string) bool {
	switch t {
	case PagoAporteMensual, PagoAporteExtraordinario, PagoVenta, PagoPrestamo, PagoDevolucion:
		return true
	}
	return false
}

// ValidPagoEstado indica si el estado pertenece al enum.
func ValidPagoEstado(e string) bool {
	switch e {
	case PagoPendiente, PagoConfirmado, PagoRechazado:
		return true
	}
	return false
}
