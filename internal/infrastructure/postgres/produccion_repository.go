package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/entity"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/repository"
)

var _ repository.ProduccionRepository = (*ProduccionRepo)(nil)

// ProduccionRepo implementación de ProduccionRepository sobre PostgreSQL.
type ProduccionRepo struct {
	q Querier
}

// NewProduccionRepository construye el adaptador de persistencia para producción.
func NewProduccionRepository(q Querier) *ProduccionRepo {
	return &ProduccionRepo{q: q}
}

// LEFT JOIN: la producción de un socio eliminado sigue listándose con nombre vacío.
const produccionSelect = `
	SELECT p.id_produccion, p.id_socio, COALESCE(TRIM(s.nombre || ' ' || s.apellido), ''), p.cultivo, p.variedad,
		p.cantidad, p.unidad, p.fecha_cosecha, p.calidad, p.destino, p.precio_estimado, p.observaciones,
		p.version, p.created_at, p.updated_at
	FROM produccion p
	LEFT JOIN socios s ON s.id_socio = p.id_socio`

func scanProduccion(row pgx.Row) (*entity.Produccion, error) {
	var p entity.Produccion
	err := row.Scan(&p.ID, &p.SocioID, &p.SocioNombre, &p.Cultivo, &p.Variedad, &p.Cantidad, &p.Unidad,
		&p.FechaCosecha, &p.Calidad, &p.Destino, &p.PrecioEstimado, &p.Observaciones,
		&p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProduccionRepo) Create(ctx context.Context, p *entity.Produccion) error {
	query := `
		INSERT INTO produccion (id_socio, cultivo, variedad, cantidad, unidad, fecha_cosecha, calidad,
			destino, precio_estimado, observaciones)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id_produccion, version, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		p.SocioID, p.Cultivo, p.Variedad, p.Cantidad, p.Unidad, p.FechaCosecha, p.Calidad,
		p.Destino, p.PrecioEstimado, p.Observaciones,
	).Scan(&p.ID, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert produccion: %w", err)
	}
	return nil
}

func (r *ProduccionRepo) GetByID(ctx context.Context, id int64) (*entity.Produccion, error) {
	p, err := scanProduccion(r.q.QueryRow(ctx, produccionSelect+` WHERE p.id_produccion = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get produccion: %w", err)
	}
	return p, nil
}

func (r *ProduccionRepo) Update(ctx context.Context, p *entity.Produccion, expectedVersion int) error {
	query := `
		UPDATE produccion SET id_socio = $2, cultivo = $3, variedad = $4, cantidad = $5, unidad = $6,
			fecha_cosecha = $7, calidad = $8, destino = $9, precio_estimado = $10, observaciones = $11,
			version = version + 1, updated_at = now()
		WHERE id_produccion = $1 AND ($12 = 0 OR version = $12)
		RETURNING version, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		p.ID, p.SocioID, p.Cultivo, p.Variedad, p.Cantidad, p.Unidad, p.FechaCosecha, p.Calidad,
		p.Destino, p.PrecioEstimado, p.Observaciones, expectedVersion,
	).Scan(&p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return updateMiss(ctx, r.q, "produccion", "id_produccion", p.ID)
		}
		return fmt.Errorf("update produccion: %w", err)
	}
	return nil
}

func (r *ProduccionRepo) Delete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM produccion WHERE id_produccion = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete produccion: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *ProduccionRepo) List(ctx context.Context, f repository.ProduccionFilter) ([]*entity.Produccion, int, error) {
	var w whereClause
	w.search(f.Search, "p.cultivo", "p.variedad", "p.destino", "s.nombre", "s.apellido")
	if f.SocioID != nil {
		w.add("p.id_socio = ?", *f.SocioID)
	}
	if f.Calidad != "" {
		w.add("p.calidad = ?", f.Calidad)
	}
	if !f.From.IsZero() {
		w.add("p.fecha_cosecha >= ?", f.From)
	}
	if !f.Until.IsZero() {
		w.add("p.fecha_cosecha < ?", f.Until)
	}

	var total int
	countSQL := `SELECT COUNT(*) FROM produccion p LEFT JOIN socios s ON s.id_socio = p.id_socio` + w.sql()
	if err := r.q.QueryRow(ctx, countSQL, w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count produccion: %w", err)
	}

	limit, args := w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, produccionSelect+w.sql()+` ORDER BY p.fecha_cosecha DESC, p.id_produccion DESC`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list produccion: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Produccion, 0)
	for rows.Next() {
		p, err := scanProduccion(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan produccion: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}
