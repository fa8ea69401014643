package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Calidades de cosecha.
const (
	CalidadPrimera = "primera"
	CalidadSegunda = "segunda"
	CalidadTercera = "tercera"
)

// Produccion registro de cosecha de un socio. PrecioEstimado se usa como costo en el margen bruto.
type Produccion struct {
	ID             int64
	SocioID        int64
	Cultivo        string
	Variedad       string
	Cantidad       decimal.Decimal
	Unidad         string
	FechaCosecha   time.Time
	Calidad        string
	Destino        string
	PrecioEstimado decimal.Decimal
	Observaciones  string
	Version        int
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// SocioNombre se llena en lecturas (LEFT JOIN); vacío si el socio fue eliminado.
	SocioNombre string
}

// ValidCalidad indica si la calidad pertenece al enum.
func ValidCalidad(c string) bool {
	switch c {
	case CalidadPrimera, CalidadSegunda, CalidadTercera:
		return true
	}
	return false
}
