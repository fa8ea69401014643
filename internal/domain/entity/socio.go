package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos de Socio.
const (
	SocioActivo     = "activo"
	SocioInactivo   = "inactivo"
	SocioSuspendido = "suspendido"
)

// Socio miembro de la cooperativa. Los totales se recalculan desde pagos.
type Socio struct {
	ID               int64
	Nombre           string
	Apellido         string
	Cedula           string
	Telefono         string
	Email            string
	Direccion        string
	FechaIngreso     time.Time
	Estado           string
	AportesTotales   decimal.Decimal
	DeudasPendientes decimal.Decimal
	Version          int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NombreCompleto nombre y apellido.
func (s *Socio) NombreCompleto() string {
	if s.Apellido == "" {
		return s.Nombre
	}
	return s.Nombre + " " + s.Apellido
}

// ValidSocioEstado indica si el estado pertenece al enum.
func ValidSocioEstado(e string) bool {
	switch e {
	case SocioActivo, SocioInactivo, SocioSuspendido:
		return true
	}
	return false
}
