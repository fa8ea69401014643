package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/entity"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/repository"
)

var _ repository.UsuarioRepository = (*UsuarioRepo)(nil)

// UsuarioRepo implementación de UsuarioRepository sobre PostgreSQL.
type UsuarioRepo struct {
	q Querier
}

// NewUsuarioRepository construye el adaptador de persistencia para usuarios.
func NewUsuarioRepository(q Querier) *UsuarioRepo {
	return &UsuarioRepo{q: q}
}

const usuarioColumns = `id_usuario, nombre, email, password_hash, rol, estado, ultimo_acceso, version, created_at, updated_at`

func scanUsuario(row pgx.Row) (*entity.Usuario, error) {
	var u entity.Usuario
	err := row.Scan(&u.ID, &u.Nombre, &u.Email, &u.PasswordHash, &u.Rol, &u.Estado, &u.UltimoAcceso,
		&u.Version, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create persiste el usuario. Email duplicado -> ErrEmailAlreadyExists.
func (r *UsuarioRepo) Create(ctx context.Context, u *entity.Usuario) error {
	query := `
		INSERT INTO usuarios (nombre, email, password_hash, rol, estado)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id_usuario, version, created_at, updated_at`
	err := r.q.QueryRow(ctx, query, u.Nombre, strings.ToLower(u.Email), u.PasswordHash, u.Rol, u.Estado).
		Scan(&u.ID, &u.Version, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert usuario: %w", err)
	}
	return nil
}

func (r *UsuarioRepo) GetByID(ctx context.Context, id int64) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(ctx, `SELECT `+usuarioColumns+` FROM usuarios WHERE id_usuario = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario: %w", err)
	}
	return u, nil
}

// GetByEmail busca sin distinguir mayúsculas.
func (r *UsuarioRepo) GetByEmail(ctx context.Context, email string) (*entity.Usuario, error) {
	u, err := scanUsuario(r.q.QueryRow(ctx,
		`SELECT `+usuarioColumns+` FROM usuarios WHERE LOWER(email) = LOWER($1)`, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get usuario by email: %w", err)
	}
	return u, nil
}

func (r *UsuarioRepo) Update(ctx context.Context, u *entity.Usuario, expectedVersion int) error {
	query := `
		UPDATE usuarios SET nombre = $2, email = $3, password_hash = $4, rol = $5, estado = $6,
			version = version + 1, updated_at = now()
		WHERE id_usuario = $1 AND ($7 = 0 OR version = $7)
		RETURNING ultimo_acceso, version, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		u.ID, u.Nombre, strings.ToLower(u.Email), u.PasswordHash, u.Rol, u.Estado, expectedVersion,
	).Scan(&u.UltimoAcceso, &u.Version, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return updateMiss(ctx, r.q, "usuarios", "id_usuario", u.ID)
		}
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("update usuario: %w", err)
	}
	return nil
}

// TouchLastAccess registra el último inicio de sesión sin tocar la versión.
func (r *UsuarioRepo) TouchLastAccess(ctx context.Context, id int64, at time.Time) error {
	if _, err := r.q.Exec(ctx, `UPDATE usuarios SET ultimo_acceso = $2 WHERE id_usuario = $1`, id, at); err != nil {
		return fmt.Errorf("touch ultimo_acceso: %w", err)
	}
	return nil
}

func (r *UsuarioRepo) Delete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM usuarios WHERE id_usuario = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete usuario: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *UsuarioRepo) List(ctx context.Context, f repository.UsuarioFilter) ([]*entity.Usuario, int, error) {
	var w whereClause
	w.search(f.Search, "nombre", "email")
	if f.Rol != "" {
		w.add("rol = ?", f.Rol)
	}
	if f.Estado != "" {
		w.add("estado = ?", f.Estado)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM usuarios`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count usuarios: %w", err)
	}

	limit, args := w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, `SELECT `+usuarioColumns+` FROM usuarios`+w.sql()+` ORDER BY nombre, id_usuario`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list usuarios: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Usuario, 0)
	for rows.Next() {
		u, err := scanUsuario(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan usuario: %w", err)
		}
		list = append(list, u)
	}
	return list, total, rows.Err()
}
