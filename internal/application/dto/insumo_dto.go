package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InsumoRequest entrada para crear o actualizar un insumo.
type InsumoRequest struct {
	Nombre             string          `json:"nombre" form:"nombre" validate:"required,max=150"`
	Descripcion        string          `json:"descripcion" form:"descripcion"`
	Tipo               string          `json:"tipo" form:"tipo" validate:"required,oneof=semilla fertilizante pesticida herramienta maquinaria otro"`
	CantidadDisponible decimal.Decimal `json:"cantidad_disponible" form:"cantidad_disponible" validate:"gte=0"`
	UnidadMedida       string          `json:"unidad_medida" form:"unidad_medida" validate:"required,max=30"`
	PrecioUnitario     decimal.Decimal `json:"precio_unitario" form:"precio_unitario" validate:"gt=0"`
	Proveedor          string          `json:"proveedor" form:"proveedor" validate:"max=150"`
	FechaAdquisicion   string          `json:"fecha_adquisicion" form:"fecha_adquisicion" validate:"omitempty,datetime=2006-01-02"`
	Estado             string          `json:"estado" form:"estado" validate:"omitempty,oneof=disponible agotado vencido"`
	Version            int             `json:"version" form:"version" validate:"gte=0"`
}

// ReposicionRequest entrada de una reposición de stock; el precio resultante es promedio ponderado.
type ReposicionRequest struct {
	Cantidad       decimal.Decimal `json:"cantidad" form:"cantidad" validate:"gt=0"`
	PrecioUnitario decimal.Decimal `json:"precio_unitario" form:"precio_unitario" validate:"gt=0"`
}

// InsumoResponse salida de un insumo.
type InsumoResponse struct {
	IDInsumo           int64           `json:"id_insumo"`
	Nombre             string          `json:"nombre"`
	Descripcion        string          `json:"descripcion"`
	Tipo               string          `json:"tipo"`
	CantidadDisponible decimal.Decimal `json:"cantidad_disponible"`
	UnidadMedida       string          `json:"unidad_medida"`
	PrecioUnitario     decimal.Decimal `json:"precio_unitario"`
	ValorTotal         decimal.Decimal `json:"valor_total"`
	Proveedor          string          `json:"proveedor"`
	FechaAdquisicion   string          `json:"fecha_adquisicion"`
	Estado             string          `json:"estado"`
	Version            int             `json:"version"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// InsumoListQuery filtros de GET /api/insumos.
type InsumoListQuery struct {
	PageQuery
	Tipo   string
	Estado string
}
