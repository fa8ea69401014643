package repository

import (
	"context"
	"time"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/entity"
)

// UsuarioFilter filtros del listado de usuarios.
type UsuarioFilter struct {
	ListParams
	Rol    string
	Estado string
}

// UsuarioRepository define el puerto de persistencia para Usuario.
type UsuarioRepository interface {
	Create(ctx context.Context, u *entity.Usuario) error
	GetByID(ctx context.Context, id int64) (*entity.Usuario, error)
	GetByEmail(ctx context.Context, email string) (*entity.Usuario, error)
	Update(ctx context.Context, u *entity.Usuario, expectedVersion int) error
	TouchLastAccess(ctx context.Context, id int64, at time.Time) error
	Delete(ctx context.Context, id int64) (bool, error)
	List(ctx context.Context, f UsuarioFilter) ([]*entity.Usuario, int, error)
}
