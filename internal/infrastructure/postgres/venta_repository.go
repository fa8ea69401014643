package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/entity"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/repository"
)

var _ repository.VentaRepository = (*VentaRepo)(nil)

// VentaRepo implementación de VentaRepository sobre PostgreSQL.
type VentaRepo struct {
	q Querier
}

// NewVentaRepository construye el adaptador de persistencia para ventas.
func NewVentaRepository(q Querier) *VentaRepo {
	return &VentaRepo{q: q}
}

const ventaSelect = `
	SELECT v.id_venta, v.id_socio, COALESCE(TRIM(s.nombre || ' ' || s.apellido), ''), v.producto, v.cantidad,
		v.precio_unitario, v.total, v.cliente, v.direccion_entrega, v.fecha_venta, v.fecha_entrega,
		v.metodo_pago, v.estado, v.observaciones, v.version, v.created_at, v.updated_at
	FROM ventas v
	LEFT JOIN socios s ON s.id_socio = v.id_socio`

func scanVenta(row pgx.Row) (*entity.Venta, error) {
	var v entity.Venta
	err := row.Scan(&v.ID, &v.SocioID, &v.SocioNombre, &v.Producto, &v.Cantidad, &v.PrecioUnitario, &v.Total,
		&v.Cliente, &v.DireccionEntrega, &v.FechaVenta, &v.FechaEntrega, &v.MetodoPago, &v.Estado,
		&v.Observaciones, &v.Version, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create inserta la venta. El total debe venir calculado (entity.Venta.ComputeTotal).
func (r *VentaRepo) Create(ctx context.Context, v *entity.Venta) error {
	query := `
		INSERT INTO ventas (id_socio, producto, cantidad, precio_unitario, total, cliente, direccion_entrega,
			fecha_venta, fecha_entrega, metodo_pago, estado, observaciones)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id_venta, version, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		v.SocioID, v.Producto, v.Cantidad, v.PrecioUnitario, v.Total, v.Cliente, v.DireccionEntrega,
		v.FechaVenta, v.FechaEntrega, v.MetodoPago, v.Estado, v.Observaciones,
	).Scan(&v.ID, &v.Version, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert venta: %w", err)
	}
	return nil
}

func (r *VentaRepo) GetByID(ctx context.Context, id int64) (*entity.Venta, error) {
	v, err := scanVenta(r.q.QueryRow(ctx, ventaSelect+` WHERE v.id_venta = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get venta: %w", err)
	}
	return v, nil
}

func (r *VentaRepo) Update(ctx context.Context, v *entity.Venta, expectedVersion int) error {
	query := `
		UPDATE ventas SET id_socio = $2, producto = $3, cantidad = $4, precio_unitario = $5, total = $6,
			cliente = $7, direccion_entrega = $8, fecha_venta = $9, fecha_entrega = $10, metodo_pago = $11,
			estado = $12, observaciones = $13, version = version + 1, updated_at = now()
		WHERE id_venta = $1 AND ($14 = 0 OR version = $14)
		RETURNING version, created_at, updated_at`
	err := r.q.QueryRow(ctx, query,
		v.ID, v.SocioID, v.Producto, v.Cantidad, v.PrecioUnitario, v.Total, v.Cliente, v.DireccionEntrega,
		v.FechaVenta, v.FechaEntrega, v.MetodoPago, v.Estado, v.Observaciones, expectedVersion,
	).Scan(&v.Version, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return updateMiss(ctx, r.q, "ventas", "id_venta", v.ID)
		}
		return fmt.Errorf("update venta: %w", err)
	}
	return nil
}

// UpdateEstado cambia solo el estado e incrementa la versión.
func (r *VentaRepo) UpdateEstado(ctx context.Context, id int64, estado string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE ventas SET estado = $2, version = version + 1, updated_at = now() WHERE id_venta = $1`,
		id, estado)
	if err != nil {
		return fmt.Errorf("update venta estado: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *VentaRepo) Delete(ctx context.Context, id int64) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM ventas WHERE id_venta = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete venta: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *VentaRepo) List(ctx context.Context, f repository.VentaFilter) ([]*entity.Venta, int, error) {
	var w whereClause
	w.search(f.Search, "v.producto", "v.cliente", "s.nombre", "s.apellido")
	if f.SocioID != nil {
		w.add("v.id_socio = ?", *f.SocioID)
	}
	if f.Estado != "" {
		w.add("v.estado = ?", f.Estado)
	}
	if !f.From.IsZero() {
		w.add("v.fecha_venta >= ?", f.From)
	}
	if !f.Until.IsZero() {
		w.add("v.fecha_venta < ?", f.Until)
	}

	var total int
	countSQL := `SELECT COUNT(*) FROM ventas v LEFT JOIN socios s ON s.id_socio = v.id_socio` + w.sql()
	if err := r.q.QueryRow(ctx, countSQL, w.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count ventas: %w", err)
	}

	limit, args := w.page(f.Limit, f.Offset)
	rows, err := r.q.Query(ctx, ventaSelect+w.sql()+` ORDER BY v.fecha_venta DESC, v.id_venta DESC`+limit, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list ventas: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Venta, 0)
	for rows.Next() {
		v, err := scanVenta(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan venta: %w", err)
		}
		list = append(list, v)
	}
	return list, total, rows.Err()
}

// StatsByEstado conteo y suma de total por estado en [from, until); fechas cero = sin límite.
func (r *VentaRepo) StatsByEstado(ctx context.Context, from, until time.Time) ([]repository.CountAmount, error) {
	return queryCountAmount(ctx, r.q, `
		SELECT estado, COUNT(*), COALESCE(SUM(total), 0)
		FROM ventas
		WHERE ($1::date IS NULL OR fecha_venta >= $1) AND ($2::date IS NULL OR fecha_venta < $2)
		GROUP BY estado ORDER BY estado`, dateArg(from), dateArg(until))
}

// queryCountAmount ejecuta una consulta que devuelve (clave, conteo, monto).
func queryCountAmount(ctx context.Context, q Querier, sql string, args ...any) ([]repository.CountAmount, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query stats: %w", err)
	}
	defer rows.Close()
	out := make([]repository.CountAmount, 0)
	for rows.Next() {
		var c repository.CountAmount
		if err := rows.Scan(&c.Key, &c.Count, &c.Amount); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
