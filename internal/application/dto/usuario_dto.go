package dto

import "time"

// UsuarioRequest entrada para crear o actualizar un usuario.
// Password es obligatorio al crear; en actualización vacío conserva el hash actual.
type UsuarioRequest struct {
	Nombre   string `json:"nombre" form:"nombre" validate:"required,max=150"`
	Email    string `json:"email" form:"email" validate:"required,email,max=150"`
	Password string `json:"password" form:"password" validate:"omitempty,min=8,max=72"`
	Rol      string `json:"rol" form:"rol" validate:"required,oneof=admin productor cliente contador"`
	Estado   string `json:"estado" form:"estado" validate:"omitempty,oneof=activo inactivo"`
	Version  int    `json:"version" form:"version" validate:"gte=0"`
}

// UsuarioResponse salida de un usuario (sin password).
type UsuarioResponse struct {
	IDUsuario    int64      `json:"id_usuario"`
	Nombre       string     `json:"nombre"`
	Email        string     `json:"email"`
	Rol          string     `json:"rol"`
	Estado       string     `json:"estado"`
	UltimoAcceso *time.Time `json:"ultimo_acceso"`
	Version      int        `json:"version"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// LoginRequest credenciales de inicio de sesión.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// LoginResponse token de sesión; también viaja en la cookie HttpOnly.
type LoginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	User      UsuarioResponse `json:"user"`
}

// SessionResponse identidad de la sesión activa.
type SessionResponse struct {
	Authenticated bool      `json:"authenticated"`
	IDUsuario     int64     `json:"id_usuario"`
	Nombre        string    `json:"nombre"`
	Email         string    `json:"email"`
	Rol           string    `json:"rol"`
	ExpiresAt     time.Time `json:"expires_at"`
}

// UsuarioListQuery filtros de GET /api/usuarios.
type UsuarioListQuery struct {
	PageQuery
	Rol    string
	Estado string
}
