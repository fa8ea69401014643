package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/entity"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/repository"
)

var _ repository.SocioRepository = (*SocioRepo)(nil)

// SocioRepo implementación de SocioRepository sobre PostgreSQL (pool o tx).
type SocioRepo struct {
	q Querier
}

// NewSocioRepository construye el adaptador de persistencia para socios.
func NewSocioRepository(q Querier) *SocioRepo {
	return &SocioRepo{q: q}
}

const socioColumns = `id_socio, nombre, apellido, cedula, telefono, email, direccion, fecha_ingreso,
	estado, aportes_totales, deudas_pendientes, version, created_at, updated_at`

func scanSocio(row pgx.Row) (*entity.Socio, error) {
	var s entity.Socio
	err := row.Scan(&s.ID, &s.Nombre, &s.Apellido, &s.Cedula, &s.Telefono, &s.Email, &s.Direccion,
		&s.FechaIngreso, &s.Estado, &s.AportesTotales, &s.DeudasPendientes, &s.Version, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Create inserta el socio y completa ID, versión y timestamps.
func (r *SocioRepo) Create(ctx context.Context, s *entity.Socio) error {
	query := `
		INSERT INTO socios (nombre, apellido, cedula, telefono, email, direccion, fecha_ingreso, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id_socio, aportes_totales, deudas_pendientes, version, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		s.Nombre, s.Apellido, s.Cedula, s.Telefono, s.Email, s.Direccion, s.FechaIngreso, s.Estado,
	).Scan(&s.ID, &s.AportesTotales, &s.DeudasPendientes, &s.Version, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert socio: %w", err)
	}
	return nil
}

// GetByID obtiene un socio; nil, nil si no existe.
func (r *SocioRepo) GetByID(ctx context.Context, id int64) (*entity.Socio, error) {
	s, err := scanSocio(r.q.QueryRow(ctx, `SELECT `+socioColumns+` FROM socios WHERE id_socio = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get socio: %w", err)
	}
	return s, nil
}

// GetByCedula obtiene un socio por cédula; nil, nil si no existe.
func (r *SocioRepo) GetByCedula(ctx context.Context, cedula string) (*entity.Socio, error) {
	s, err := scanSocio(r.q.QueryRow(ctx, `SELECT `+socioColumns+` FROM socios WHERE cedula = $1`, cedula))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get socio by cedula: %w", err)
	}
	return s, nil
}

// Update actualiza los datos editables. Los totales solo cambian vía RecalculateAportes.
func (r *SocioRepo) Update(ctx context.Context, s *entity.Socio, expectedVersion int) error {
	query := `
		UPDATE socios SET nombre = $2, apellido = $3, cedula = $4, telefono = $5, email = $6,
			direccion = $7, fecha_ingreso = $8, estado = $9, version = version + 1, updated_at = now()
		WHERE id_socio = $1 AND ($10 = 0 OR version = $10)
		RETURNING aportes_totales, deudas_pendientes, version, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		s.ID, s.Nombre, s.Apellido, s.Cedula, s.Telefono, s.Email, s.Direccion, s.FechaIngreso, s.Estado, expectedVersion,
	).Scan(&s.AportesTotales, &s.DeudasPendientes, &s.Version, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return updateMiss(ctx, r.q, "socios", "id_socio", s.ID)
		}
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update socio: %w", err)
	}
	return nil
}

// Delete elimina el socio. No hay cascada: ventas, pagos y producción quedan huérfanos.
func (r *SocioRepo) Delete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM socios WHERE id_socio = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete socio: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// List lista socios filtrados y el total sin paginar.
func (r *SocioRepo) List(ctx context.Context, f repository.SocioFilter) ([]*entity.Socio, int, error) {
	var w whereClause
	w.search(f.Search, "nombre", "apellido", "cedula", "email")
	if f.Estado != "" {
		w.add("estado = ?", f.Estado)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM socios`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count socios: %w", err)
	}

	limit, args := w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, `SELECT `+socioColumns+` FROM socios`+w.sql()+` ORDER BY apellido, nombre, id_socio`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list socios: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Socio, 0)
	for rows.Next() {
		s, err := scanSocio(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan socio: %w", err)
		}
		list = append(list, s)
	}
	return list, total, rows.Err()
}

// Options id y nombre completo de los socios activos, para selectores.
func (r *SocioRepo) Options(ctx context.Context) ([]repository.SocioOption, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id_socio, TRIM(nombre || ' ' || apellido)
		FROM socios WHERE estado = 'activo' ORDER BY nombre, apellido`)
	if err != nil {
		return nil, fmt.Errorf("socio options: %w", err)
	}
	defer rows.Close()
	out := make([]repository.SocioOption, 0)
	for rows.Next() {
		var o repository.SocioOption
		if err := rows.Scan(&o.ID, &o.Nombre); err != nil {
			return nil, fmt.Errorf("scan socio option: %w", err)
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// LockForUpdate lee el socio con SELECT ... FOR UPDATE; nil, nil si no existe.
func (r *SocioRepo) LockForUpdate(ctx context.Context, id int64) (*entity.Socio, error) {
	s, err := scanSocio(r.q.QueryRow(ctx, `SELECT `+socioColumns+` FROM socios WHERE id_socio = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock socio: %w", err)
	}
	return s, nil
}

// RecalculateAportes fija aportes_totales desde los aportes confirmados.
// No incrementa version: es un campo derivado, no una edición del socio.
func (r *SocioRepo) RecalculateAportes(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `
		UPDATE socios SET aportes_totales = (
			SELECT COALESCE(SUM(monto), 0) FROM pagos
			WHERE id_socio = $1 AND estado = 'confirmado'
			  AND tipo IN ('aporte_mensual', 'aporte_extraordinario')
		), updated_at = now()
		WHERE id_socio = $1`, id)
	if err != nil {
		return fmt.Errorf("recalculate aportes: %w", err)
	}
	return nil
}
