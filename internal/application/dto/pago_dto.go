package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PagoRequest entrada para crear o actualizar un pago o aporte.
type PagoRequest struct {
	IDSocio     int64           `json:"id_socio" form:"id_socio" validate:"required,gt=0"`
	IDVenta     *int64          `json:"id_venta" form:"id_venta" validate:"omitempty,gt=0"`
	Monto       decimal.Decimal `json:"monto" form:"monto" validate:"gt=0"`
	Tipo        string          `json:"tipo" form:"tipo" validate:"required,oneof=aporte_mensual aporte_extraordinario pago_venta prestamo devolucion"`
	MetodoPago  string          `json:"metodo_pago" form:"metodo_pago" validate:"max=30"`
	Estado      string          `json:"estado" form:"estado" validate:"omitempty,oneof=pendiente confirmado rechazado"`
	FechaPago   string          `json:"fecha_pago" form:"fecha_pago" validate:"required,datetime=2006-01-02"`
	Descripcion string          `json:"descripcion" form:"descripcion"`
	Version     int             `json:"version" form:"version" validate:"gte=0"`
}

// PagoResponse salida de un pago.
type PagoResponse struct {
	IDPago      int64           `json:"id_pago"`
	IDSocio     int64           `json:"id_socio"`
	SocioNombre string          `json:"socio_nombre"`
	IDVenta     *int64          `json:"id_venta"`
	Monto       decimal.Decimal `json:"monto"`
	Tipo        string          `json:"tipo"`
	MetodoPago  string          `json:"metodo_pago"`
	Estado      string          `json:"estado"`
	FechaPago   string          `json:"fecha_pago"`
	Descripcion string          `json:"descripcion"`
	Version     int             `json:"version"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// PagoStatistics respuesta de GET /api/pagos/statistics.
type PagoStatistics struct {
	DateFrom        string          `json:"date_from,omitempty"`
	DateTo          string          `json:"date_to,omitempty"`
	TotalPagos      int             `json:"total_pagos"`
	MontoConfirmado decimal.Decimal `json:"monto_confirmado"`
	MontoPendiente  decimal.Decimal `json:"monto_pendiente"`
	PorTipo         []GroupStat     `json:"por_tipo"`
	PorEstado       []GroupStat     `json:"por_estado"`
}

// PagoListQuery filtros de GET /api/pagos. Fechas YYYY-MM-DD inclusivas.
type PagoListQuery struct {
	PageQuery
	IDSocio  *int64
	Tipo     string
	Estado   string
	DateFrom string
	DateTo   string
}
