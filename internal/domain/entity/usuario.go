package entity

import "time"

// Roles válidos para Usuario.
const (
	RoleAdmin     = "admin"
	RoleProductor = "productor"
	RoleCliente   = "cliente"
	RoleContador  = "contador"
)

// Estados de Usuario.
const (
	UsuarioActivo   = "activo"
	UsuarioInactivo = "inactivo"
)

// Usuario cuenta de acceso al sistema.
type Usuario struct {
	ID           int64
	Nombre       string
	Email        string
	PasswordHash string // bcrypt, nunca texto plano
	Rol          string
	Estado       string
	UltimoAcceso *time.Time
	Version      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole indica si el rol pertenece al enum.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleProductor, RoleCliente, RoleContador:
		return true
	}
	return false
}

// ValidUsuarioEstado indica si el estado pertenece al enum.
func ValidUsuarioEstado(e string) bool {
	return e == UsuarioActivo || e == UsuarioInactivo
}
