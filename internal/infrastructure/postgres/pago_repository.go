package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/entity"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/repository"
)

var _ repository.PagoRepository = (*PagoRepo)(nil)

// PagoRepo implementación de PagoRepository sobre PostgreSQL.
type PagoRepo struct {
	q Querier
}

// NewPagoRepository construye el adaptador de persistencia para pagos.
func NewPagoRepository(q Querier) *PagoRepo {
	return &PagoRepo{q: q}
}

const pagoSelect = `
	SELECT p.id_pago, p.id_socio, COALESCE(TRIM(s.nombre || ' ' || s.apellido), ''), p.id_venta, p.monto,
		p.tipo, p.metodo_pago, p.estado, p.fecha_pago, p.descripcion, p.version, p.created_at, p.updated_at
	FROM pagos p
	LEFT JOIN socios s ON s.id_socio = p.id_socio`

func scanPago(row pgx.Row) (*entity.Pago, error) {
	var p entity.Pago
	err := row.Scan(&p.ID, &p.SocioID, &p.SocioNombre, &p.VentaID, &p.Monto, &p.Tipo, &p.MetodoPago,
		&p.Estado, &p.FechaPago, &p.Descripcion, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PagoRepo) Create(ctx context.Context, p *entity.Pago) error {
	query := `
		INSERT INTO pagos (id_socio, id_venta, monto, tipo, metodo_pago, estado, fecha_pago, descripcion)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id_pago, version, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		p.SocioID, p.VentaID, p.Monto, p.Tipo, p.MetodoPago, p.Estado, p.FechaPago, p.Descripcion,
	).Scan(&p.ID, &p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert pago: %w", err)
	}
	return nil
}

func (r *PagoRepo) GetByID(ctx context.Context, id int64) (*entity.Pago, error) {
	p, err := scanPago(r.q.QueryRow(ctx, pagoSelect+` WHERE p.id_pago = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pago: %w", err)
	}
	return p, nil
}

func (r *PagoRepo) Update(ctx context.Context, p *entity.Pago, expectedVersion int) error {
	query := `
		UPDATE pagos SET id_socio = $2, id_venta = $3, monto = $4, tipo = $5, metodo_pago = $6, estado = $7,
			fecha_pago = $8, descripcion = $9, version = version + 1, updated_at = now()
		WHERE id_pago = $1 AND ($10 = 0 OR version = $10)
		RETURNING version, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		p.ID, p.SocioID, p.VentaID, p.Monto, p.Tipo, p.MetodoPago, p.Estado, p.FechaPago, p.Descripcion, expectedVersion,
	).Scan(&p.Version, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return updateMiss(ctx, r.q, "pagos", "id_pago", p.ID)
		}
		return fmt.Errorf("update pago: %w", err)
	}
	return nil
}

func (r *PagoRepo) Delete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM pagos WHERE id_pago = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete pago: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *PagoRepo) List(ctx context.Context, f repository.PagoFilter) ([]*entity.Pago, int, error) {
	var w whereClause
	w.search(f.Search, "p.descripcion", "p.metodo_pago", "s.nombre", "s.apellido")
	if f.SocioID != nil {
		w.add("p.id_socio = ?", *f.SocioID)
	}
	if f.Tipo != "" {
		w.add("p.tipo = ?", f.Tipo)
	}
	if f.Estado != "" {
		w.add("p.estado = ?", f.Estado)
	}
	if !f.From.IsZero() {
		w.add("p.fecha_pago >= ?", f.From)
	}
	if !f.Until.IsZero() {
		w.add("p.fecha_pago < ?", f.Until)
	}

	var total int
	countSQL := `SELECT COUNT(*) FROM pagos p LEFT JOIN socios s ON s.id_socio = p.id_socio` + w.sql()
	if err := r.q.QueryRow(ctx, countSQL, w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count pagos: %w", err)
	}

	limit, args := w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, pagoSelect+w.sql()+` ORDER BY p.fecha_pago DESC, p.id_pago DESC`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list pagos: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Pago, 0)
	for rows.Next() {
		p, err := scanPago(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan pago: %w", err)
		}
		list = append(list, p)
	}
	return list, total, rows.Err()
}

// ConfirmedForVenta suma de pagos confirmados vinculados a la venta.
func (r *PagoRepo) ConfirmedForVenta(ctx context.Context, ventaID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(monto), 0) FROM pagos WHERE id_venta = $1 AND estado = 'confirmado'`,
		ventaID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum pagos venta: %w", err)
	}
	return sum, nil
}

func (r *PagoRepo) StatsByTipo(ctx context.Context, from, until time.Time) ([]repository.CountAmount, error) {
	return queryCountAmount(ctx, r.q, `
		SELECT tipo, COUNT(*), COALESCE(SUM(monto), 0)
		FROM pagos
		WHERE ($1::date IS NULL OR fecha_pago >= $1) AND ($2::date IS NULL OR fecha_pago < $2)
		GROUP BY tipo ORDER BY tipo`, dateArg(from), dateArg(until))
}

func (r *PagoRepo) StatsByEstado(ctx context.Context, from, until time.Time) ([]repository.CountAmount, error) {
	return queryCountAmount(ctx, r.q, `
		SELECT estado, COUNT(*), COALESCE(SUM(monto), 0)
		FROM pagos
		WHERE ($1::date IS NULL OR fecha_pago >= $1) AND ($2::date IS NULL OR fecha_pago < $2)
		GROUP BY estado ORDER BY estado`, dateArg(from), dateArg(until))
}
