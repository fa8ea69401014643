package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProduccionRequest entrada para crear o actualizar un registro de cosecha.
type ProduccionRequest struct {
	IDSocio        int64           `json:"id_socio" form:"id_socio" validate:"required,gt=0"`
	Cultivo        string          `json:"cultivo" form:"cultivo" validate:"required,max=100"`
	Variedad       string          `json:"variedad" form:"variedad" validate:"max=100"`
	Cantidad       decimal.Decimal `json:"cantidad" form:"cantidad" validate:"gt=0"`
	Unidad         string          `json:"unidad" form:"unidad" validate:"required,max=30"`
	FechaCosecha   string          `json:"fecha_cosecha" form:"fecha_cosecha" validate:"required,datetime=2006-01-02"`
	Calidad        string          `json:"calidad" form:"calidad" validate:"omitempty,oneof=primera segunda tercera"`
	Destino        string          `json:"destino" form:"destino" validate:"max=100"`
	PrecioEstimado decimal.Decimal `json:"precio_estimado" form:"precio_estimado" validate:"gte=0"`
	Observaciones  string          `json:"observaciones" form:"observaciones"`
	Version        int             `json:"version" form:"version" validate:"gte=0"`
}

// ProduccionResponse salida de un registro de cosecha.
type ProduccionResponse struct {
	IDProduccion   int64           `json:"id_produccion"`
	IDSocio        int64           `json:"id_socio"`
	SocioNombre    string          `json:"socio_nombre"`
	Cultivo        string          `json:"cultivo"`
	Variedad       string          `json:"variedad"`
	Cantidad       decimal.Decimal `json:"cantidad"`
	Unidad         string          `json:"unidad"`
	FechaCosecha   string          `json:"fecha_cosecha"`
	Calidad        string          `json:"calidad"`
	Destino        string          `json:"destino"`
	PrecioEstimado decimal.Decimal `json:"precio_estimado"`
	ValorEstimado  decimal.Decimal `json:"valor_estimado"`
	Observaciones  string          `json:"observaciones"`
	Version        int             `json:"version"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// ProduccionListQuery filtros de GET /api/produccion. Fechas YYYY-MM-DD inclusivas.
type ProduccionListQuery struct {
	PageQuery
	IDSocio  *int64
	Calidad  string
	DateFrom string
	DateTo   string
}
