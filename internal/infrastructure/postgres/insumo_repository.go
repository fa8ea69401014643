package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/entity"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/repository"
)

var _ repository.InsumoRepository = (*InsumoRepo)(nil)

// InsumoRepo implementación de InsumoRepository sobre PostgreSQL.
type InsumoRepo struct {
	q Querier
}

// NewInsumoRepository construye el adaptador de persistencia para insumos.
func NewInsumoRepository(q Querier) *InsumoRepo {
	return &InsumoRepo{q: q}
}

const insumoColumns = `id_insumo, nombre, descripcion, tipo, cantidad_disponible, unidad_medida,
	precio_unitario, proveedor, fecha_adquisicion, estado, version, created_at, updated_at`

func scanInsumo(row pgx.Row) (*entity.Insumo, error) {
	var i entity.Insumo
	err := row.Scan(&i.ID, &i.Nombre, &i.Descripcion, &i.Tipo, &i.CantidadDisponible, &i.UnidadMedida,
		&i.PrecioUnitario, &i.Proveedor, &i.FechaAdquisicion, &i.Estado, &i.Version, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *InsumoRepo) Create(ctx context.Context, i *entity.Insumo) error {
	query := `
		INSERT INTO insumos (nombre, descripcion, tipo, cantidad_disponible, unidad_medida, precio_unitario,
			proveedor, fecha_adquisicion, estado)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id_insumo, version, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		i.Nombre, i.Descripcion, i.Tipo, i.CantidadDisponible, i.UnidadMedida, i.PrecioUnitario,
		i.Proveedor, i.FechaAdquisicion, i.Estado,
	).Scan(&i.ID, &i.Version, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert insumo: %w", err)
	}
	return nil
}

func (r *InsumoRepo) GetByID(ctx context.Context, id int64) (*entity.Insumo, error) {
	i, err := scanInsumo(r.q.QueryRow(ctx, `SELECT `+insumoColumns+` FROM insumos WHERE id_insumo = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get insumo: %w", err)
	}
	return i, nil
}

// LockForUpdate lee el insumo bloqueando la fila hasta el fin de la transacción.
func (r *InsumoRepo) LockForUpdate(ctx context.Context, id int64) (*entity.Insumo, error) {
	i, err := scanInsumo(r.q.QueryRow(ctx, `SELECT `+insumoColumns+` FROM insumos WHERE id_insumo = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock insumo: %w", err)
	}
	return i, nil
}

func (r *InsumoRepo) Update(ctx context.Context, i *entity.Insumo, expectedVersion int) error {
	query := `
		UPDATE insumos SET nombre = $2, descripcion = $3, tipo = $4, cantidad_disponible = $5,
			unidad_medida = $6, precio_unitario = $7, proveedor = $8, fecha_adquisicion = $9, estado = $10,
			version = version + 1, updated_at = now()
		WHERE id_insumo = $1 AND ($11 = 0 OR version = $11)
		RETURNING version, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		i.ID, i.Nombre, i.Descripcion, i.Tipo, i.CantidadDisponible, i.UnidadMedida, i.PrecioUnitario,
		i.Proveedor, i.FechaAdquisicion, i.Estado, expectedVersion,
	).Scan(&i.Version, &i.CreatedAt, &i.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return updateMiss(ctx, r.q, "insumos", "id_insumo", i.ID)
		}
		return fmt.Errorf("update insumo: %w", err)
	}
	return nil
}

func (r *InsumoRepo) Delete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM insumos WHERE id_insumo = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete insumo: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *InsumoRepo) List(ctx context.Context, f repository.InsumoFilter) ([]*entity.Insumo, int, error) {
	var w whereClause
	w.search(f.Search, "nombre", "descripcion", "proveedor")
	if f.Tipo != "" {
		w.add("tipo = ?", f.Tipo)
	}
	if f.Estado != "" {
		w.add("estado = ?", f.Estado)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM insumos`+w.sql(), w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count insumos: %w", err)
	}

	limit, args := w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, `SELECT `+insumoColumns+` FROM insumos`+w.sql()+` ORDER BY nombre, id_insumo`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list insumos: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Insumo, 0)
	for rows.Next() {
		i, err := scanInsumo(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan insumo: %w", err)
		}
		list = append(list, i)
	}
	return list, total, rows.Err()
}
