package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// VentaRequest entrada para crear o actualizar una venta.
// El total no se recibe: el servidor lo calcula como cantidad × precio_unitario.
type VentaRequest struct {
	IDSocio          *int64          `json:"id_socio" form:"id_socio" validate:"omitempty,gt=0"`
	Producto         string          `json:"producto" form:"producto" validate:"required,max=100"`
	Cantidad         decimal.Decimal `json:"cantidad" form:"cantidad" validate:"gt=0"`
	PrecioUnitario   decimal.Decimal `json:"precio_unitario" form:"precio_unitario" validate:"gt=0"`
	Cliente          string          `json:"cliente" form:"cliente" validate:"max=150"`
	DireccionEntrega string          `json:"direccion_entrega" form:"direccion_entrega" validate:"max=255"`
	FechaVenta       string          `json:"fecha_venta" form:"fecha_venta" validate:"required,datetime=2006-01-02"`
	FechaEntrega     string          `json:"fecha_entrega" form:"fecha_entrega" validate:"omitempty,datetime=2006-01-02"`
	MetodoPago       string          `json:"metodo_pago" form:"metodo_pago" validate:"max=30"`
	Estado           string          `json:"estado" form:"estado" validate:"omitempty,oneof=pendiente entregado pagado cancelado"`
	Observaciones    string          `json:"observaciones" form:"observaciones"`
	Version          int             `json:"version" form:"version" validate:"gte=0"`
}

// VentaResponse salida de una venta.
type VentaResponse struct {
	IDVenta          int64           `json:"id_venta"`
	IDSocio          *int64          `json:"id_socio"`
	SocioNombre      string          `json:"socio_nombre"`
	Producto         string          `json:"producto"`
	Cantidad         decimal.Decimal `json:"cantidad"`
	PrecioUnitario   decimal.Decimal `json:"precio_unitario"`
	Total            decimal.Decimal `json:"total"`
	Cliente          string          `json:"cliente"`
	DireccionEntrega string          `json:"direccion_entrega"`
	FechaVenta       string          `json:"fecha_venta"`
	FechaEntrega     *string         `json:"fecha_entrega"`
	MetodoPago       string          `json:"metodo_pago"`
	Estado           string          `json:"estado"`
	Observaciones    string          `json:"observaciones"`
	Version          int             `json:"version"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// GroupStat conteo y monto por clave (estado, tipo).
type GroupStat struct {
	Key    string          `json:"key"`
	Count  int             `json:"count"`
	Amount decimal.Decimal `json:"amount"`
}

// VentaStatistics respuesta de GET /api/ventas/statistics.
type VentaStatistics struct {
	DateFrom       string          `json:"date_from,omitempty"`
	DateTo         string          `json:"date_to,omitempty"`
	TotalVentas    int             `json:"total_ventas"`
	MontoTotal     decimal.Decimal `json:"monto_total"` // sin canceladas
	TicketPromedio decimal.Decimal `json:"ticket_promedio"`
	Pendientes     int             `json:"pendientes"`
	PorEstado      []GroupStat     `json:"por_estado"`
}

// VentaListQuery filtros de GET /api/ventas. Fechas YYYY-MM-DD inclusivas.
type VentaListQuery struct {
	PageQuery
	IDSocio  *int64
	Estado   string
	DateFrom string
	DateTo   string
}

// DateRangeQuery rango opcional de las estadísticas.
type DateRangeQuery struct {
	DateFrom string
	DateTo   string
}
