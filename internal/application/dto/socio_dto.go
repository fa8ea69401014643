package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SocioRequest entrada para crear o actualizar un socio.
// Version solo aplica en actualización: > 0 activa el bloqueo optimista.
type SocioRequest struct {
	Nombre       string `json:"nombre" form:"nombre" validate:"required,max=100"`
	Apellido     string `json:"apellido" form:"apellido" validate:"required,max=100"`
	Cedula       string `json:"cedula" form:"cedula" validate:"required,max=20"`
	Telefono     string `json:"telefono" form:"telefono" validate:"max=20"`
	Email        string `json:"email" form:"email" validate:"omitempty,email,max=150"`
	Direccion    string `json:"direccion" form:"direccion" validate:"max=255"`
	FechaIngreso string `json:"fecha_ingreso" form:"fecha_ingreso" validate:"omitempty,datetime=2006-01-02"`
	Estado       string `json:"estado" form:"estado" validate:"omitempty,oneof=activo inactivo suspendido"`
	Version      int    `json:"version" form:"version" validate:"gte=0"`
}

// SocioResponse salida de un socio.
type SocioResponse struct {
	IDSocio          int64           `json:"id_socio"`
	Nombre           string          `json:"nombre"`
	Apellido         string          `json:"apellido"`
	NombreCompleto   string          `json:"nombre_completo"`
	Cedula           string          `json:"cedula"`
	Telefono         string          `json:"telefono"`
	Email            string          `json:"email"`
	Direccion        string          `json:"direccion"`
	FechaIngreso     string          `json:"fecha_ingreso"`
	Estado           string          `json:"estado"`
	AportesTotales   decimal.Decimal `json:"aportes_totales"`
	DeudasPendientes decimal.Decimal `json:"deudas_pendientes"`
	Version          int             `json:"version"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// SocioOptionResponse par id/nombre para selectores del frontend.
type SocioOptionResponse struct {
	IDSocio int64  `json:"id_socio"`
	Nombre  string `json:"nombre"`
}

// SocioListQuery filtros de GET /api/socios.
type SocioListQuery struct {
	PageQuery
	Estado string
}
