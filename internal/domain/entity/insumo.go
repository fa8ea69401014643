package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de Insumo.
const (
	InsumoDisponible = "disponible"
	InsumoAgotado    = "agotado"
	InsumoVencido    = "vencido"
)

// Tipos de insumo.
var InsumoTipos = []string{"semilla", "fertilizante", "pesticida", "herramienta", "maquinaria", "otro"}

// Insumo artículo de inventario agrícola (semilla, fertilizante, herramienta...).
type Insumo struct {
	ID                 int64
	Nombre             string
	Descripcion        string
	Tipo               string
	CantidadDisponible decimal.Decimal
	UnidadMedida       string
	PrecioUnitario     decimal.Decimal
	Proveedor          string
	FechaAdquisicion   time.Time
	Estado             string
	Version            int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// Valor cantidad disponible × precio unitario.
func (i *Insumo) Valor() decimal.Decimal {
	return i.CantidadDisponible.Mul(i.PrecioUnitario)
}

// ValidInsumoEstado indica si el estado pertenece al enum.
func ValidInsumoEstado(e string) bool {
	switch e {
	case InsumoDisponible, InsumoAgotado, InsumoVencido:
		return true
	}
	return false
}

// ValidInsumoTipo indica si el tipo pertenece al catálogo.
func ValidInsumoTipo(t string) bool {
	for _, v := range InsumoTipos {
		if v == t {
			return true
		}
	}
	return false
}
