package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas agregadas del módulo de reportes.
// Todas las uniones con socios son LEFT JOIN: filas huérfanas siguen sumando.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el repositorio de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// Filtros compartidos. Ventas y producción reciben ($1 desde, $2 hasta, $3 patrón producto, $4 socio);
// pagos recibe ($1 desde, $2 hasta, $3 socio).
const (
	ventasContables = `v.estado IN ('pendiente', 'entregado', 'pagado')`

	ventasRange = `($1::date IS NULL OR v.fecha_venta >= $1) AND ($2::date IS NULL OR v.fecha_venta < $2)
		AND ($3::text = '' OR v.producto ILIKE $3) AND ($4::bigint IS NULL OR v.id_socio = $4)`

	produccionRange = `($1::date IS NULL OR pr.fecha_cosecha >= $1) AND ($2::date IS NULL OR pr.fecha_cosecha < $2)
		AND ($3::text = '' OR pr.cultivo ILIKE $3) AND ($4::bigint IS NULL OR pr.id_socio = $4)`

	aportesConfirmados = `p.estado = 'confirmado' AND p.tipo IN ('aporte_mensual', 'aporte_extraordinario')`

	pagosRange = `($1::date IS NULL OR p.fecha_pago >= $1) AND ($2::date IS NULL OR p.fecha_pago < $2)
		AND ($3::bigint IS NULL OR p.id_socio = $3)`
)

func ventasArgs(f repository.ReportFilter) []any {
	pattern := likePattern(f.Product)
	if f.ExactProduct {
		pattern = exactPattern(f.Product)
	}
	return []any{dateArg(f.From), dateArg(f.Until), pattern, f.SocioID}
}

func pagosArgs(f repository.ReportFilter) []any {
	return []any{dateArg(f.From), dateArg(f.Until), f.SocioID}
}

// limitArg 0 o negativo se traduce a NULL (LIMIT NULL = sin límite).
func limitArg(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}

func (r *ReportRepo) sum(ctx context.Context, label, query string, args ...any) (decimal.Decimal, error) {
	var v decimal.Decimal
	if err := r.q.QueryRow(ctx, query, args...).Scan(&v); err != nil {
		return decimal.Zero, fmt.Errorf("%s: %w", label, err)
	}
	return v, nil
}

func (r *ReportRepo) span(ctx context.Context, label, query string, args ...any) (repository.DateSpan, error) {
	var lo, hi *time.Time
	if err := r.q.QueryRow(ctx, query, args...).Scan(&lo, &hi); err != nil {
		return repository.DateSpan{}, fmt.Errorf("%s: %w", label, err)
	}
	if lo == nil || hi == nil {
		return repository.DateSpan{}, nil
	}
	return repository.DateSpan{Min: *lo, Max: *hi, Valid: true}, nil
}

func (r *ReportRepo) SalesTotal(ctx context.Context, f repository.ReportFilter) (decimal.Decimal, error) {
	return r.sum(ctx, "sales total",
		`SELECT COALESCE(SUM(v.total), 0) FROM ventas v WHERE `+ventasContables+` AND `+ventasRange,
		ventasArgs(f)...)
}

func (r *ReportRepo) SalesSpan(ctx context.Context, f repository.ReportFilter) (repository.DateSpan, error) {
	return r.span(ctx, "sales span",
		`SELECT MIN(v.fecha_venta), MAX(v.fecha_venta) FROM ventas v WHERE `+ventasContables+` AND `+ventasRange,
		ventasArgs(f.AllTime())...)
}

func (r *ReportRepo) ContributionsTotal(ctx context.Context, f repository.ReportFilter) (decimal.Decimal, error) {
	return r.sum(ctx, "contributions total",
		`SELECT COALESCE(SUM(p.monto), 0) FROM pagos p WHERE `+aportesConfirmados+` AND `+pagosRange,
		pagosArgs(f)...)
}

func (r *ReportRepo) ContributionsSpan(ctx context.Context, f repository.ReportFilter) (repository.DateSpan, error) {
	return r.span(ctx, "contributions span",
		`SELECT MIN(p.fecha_pago), MAX(p.fecha_pago) FROM pagos p WHERE `+aportesConfirmados+` AND `+pagosRange,
		pagosArgs(f.AllTime())...)
}

func (r *ReportRepo) ActiveMembers(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM socios WHERE estado = 'activo'`).Scan(&n); err != nil {
		return 0, fmt.Errorf("active members: %w", err)
	}
	return n, nil
}

func (r *ReportRepo) InventoryValue(ctx context.Context) (decimal.Decimal, int, error) {
	var (
		value decimal.Decimal
		items int
	)
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(cantidad_disponible * precio_unitario), 0), COUNT(*)
		FROM insumos WHERE estado = 'disponible' AND cantidad_disponible > 0`).Scan(&value, &items)
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("inventory value: %w", err)
	}
	return value.Round(2), items, nil
}

// MarginInputs la producción se vincula por socio y producto (sin distinguir mayúsculas)
// cosechada en los windowMonths meses anteriores a la fecha de cada venta.
func (r *ReportRepo) MarginInputs(ctx context.Context, f repository.ReportFilter, windowMonths int) (repository.MarginInputs, error) {
	query := `
		WITH v AS (
			SELECT v.id_venta, v.id_socio, v.producto, v.fecha_venta, v.total
			FROM ventas v WHERE ` + ventasContables + ` AND ` + ventasRange + `
		), c AS (
			SELECT v.id_venta, SUM(pr.cantidad * pr.precio_estimado) AS costo
			FROM v
			JOIN produccion pr ON pr.id_socio = v.id_socio
				AND LOWER(TRIM(pr.cultivo)) = LOWER(TRIM(v.producto))
				AND pr.fecha_cosecha <= v.fecha_venta
				AND pr.fecha_cosecha > v.fecha_venta - make_interval(months => $5::int)
			GROUP BY v.id_venta
		)
		SELECT COALESCE((SELECT SUM(total) FROM v), 0),
		       COALESCE((SELECT SUM(costo) FROM c), 0),
		       (SELECT COUNT(*) FROM c)`
	args := append(ventasArgs(f), windowMonths)
	var m repository.MarginInputs
	if err := r.q.QueryRow(ctx, query, args...).Scan(&m.Sales, &m.ProductionCost, &m.MatchedSales); err != nil {
		return repository.MarginInputs{}, fmt.Errorf("margin inputs: %w", err)
	}
	return m, nil
}

// ExpensesTotal valor de los insumos adquiridos en el rango.
func (r *ReportRepo) ExpensesTotal(ctx context.Context, f repository.ReportFilter) (decimal.Decimal, error) {
	return r.sum(ctx, "expenses total", `
		SELECT COALESCE(SUM(cantidad_disponible * precio_unitario), 0) FROM insumos
		WHERE ($1::date IS NULL OR fecha_adquisicion >= $1) AND ($2::date IS NULL OR fecha_adquisicion < $2)`,
		dateArg(f.From), dateArg(f.Until))
}

func (r *ReportRepo) ProductionTotal(ctx context.Context, f repository.ReportFilter) (decimal.Decimal, error) {
	return r.sum(ctx, "production total",
		`SELECT COALESCE(SUM(pr.cantidad), 0) FROM produccion pr WHERE `+produccionRange,
		ventasArgs(f)...)
}

// TopProducts productos ordenados por ingreso; limit <= 0 devuelve todos.
func (r *ReportRepo) TopProducts(ctx context.Context, f repository.ReportFilter, limit int) ([]repository.ProductSales, error) {
	query := `
		SELECT v.producto, COUNT(*), COALESCE(SUM(v.cantidad), 0), COALESCE(SUM(v.total), 0),
		       COALESCE(ROUND(SUM(v.total) / NULLIF(SUM(v.cantidad), 0), 2), 0)
		FROM ventas v
		WHERE ` + ventasContables + ` AND ` + ventasRange + `
		GROUP BY v.producto
		ORDER BY SUM(v.total) DESC, v.producto
		LIMIT $5`
	rows, err := r.q.Query(ctx, query, append(ventasArgs(f), limitArg(limit))...)
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()
	out := make([]repository.ProductSales, 0)
	for rows.Next() {
		var p repository.ProductSales
		if err := rows.Scan(&p.Product, &p.Count, &p.Quantity, &p.Revenue, &p.AvgPrice); err != nil {
			return nil, fmt.Errorf("scan top products: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ReportRepo) MemberContributions(ctx context.Context, f repository.ReportFilter, limit int) ([]repository.MemberAmount, error) {
	query := `
		SELECT p.id_socio, COALESCE(TRIM(s.nombre || ' ' || s.apellido), ''), SUM(p.monto)
		FROM pagos p
		LEFT JOIN socios s ON s.id_socio = p.id_socio
		WHERE ` + aportesConfirmados + ` AND ` + pagosRange + `
		GROUP BY p.id_socio, s.nombre, s.apellido
		ORDER BY SUM(p.monto) DESC, p.id_socio
		LIMIT $4`
	rows, err := r.q.Query(ctx, query, append(pagosArgs(f), limitArg(limit))...)
	if err != nil {
		return nil, fmt.Errorf("member contributions: %w", err)
	}
	defer rows.Close()
	out := make([]repository.MemberAmount, 0)
	for rows.Next() {
		var m repository.MemberAmount
		if err := rows.Scan(&m.SocioID, &m.Nombre, &m.Amount); err != nil {
			return nil, fmt.Errorf("scan member contributions: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *ReportRepo) InventoryByType(ctx context.Context) ([]repository.TypeValue, error) {
	rows, err := r.q.Query(ctx, `
		SELECT tipo, COUNT(*), COALESCE(SUM(cantidad_disponible * precio_unitario), 0)
		FROM insumos WHERE estado = 'disponible'
		GROUP BY tipo ORDER BY 3 DESC, tipo`)
	if err != nil {
		return nil, fmt.Errorf("inventory by type: %w", err)
	}
	defer rows.Close()
	out := make([]repository.TypeValue, 0)
	for rows.Next() {
		var t repository.TypeValue
		if err := rows.Scan(&t.Tipo, &t.Items, &t.Value); err != nil {
			return nil, fmt.Errorf("scan inventory by type: %w", err)
		}
		t.Value = t.Value.Round(2)
		out = append(out, t)
	}
	return out, rows.Err()
}

// MemberPerformance socios con mayor producción en el rango y sus ventas contables.
func (r *ReportRepo) MemberPerformance(ctx context.Context, f repository.ReportFilter, limit int) ([]repository.MemberPerformance, error) {
	query := `
		WITH prod AS (
			SELECT pr.id_socio, SUM(pr.cantidad) AS cantidad
			FROM produccion pr WHERE ` + produccionRange + `
			GROUP BY pr.id_socio
		), vent AS (
			SELECT v.id_socio, SUM(v.total) AS total
			FROM ventas v WHERE v.id_socio IS NOT NULL AND ` + ventasContables + ` AND ` + ventasRange + `
			GROUP BY v.id_socio
		)
		SELECT prod.id_socio, COALESCE(TRIM(s.nombre || ' ' || s.apellido), ''), prod.cantidad, COALESCE(vent.total, 0)
		FROM prod
		LEFT JOIN vent ON vent.id_socio = prod.id_socio
		LEFT JOIN socios s ON s.id_socio = prod.id_socio
		ORDER BY prod.cantidad DESC, prod.id_socio
		LIMIT $5`
	rows, err := r.q.Query(ctx, query, append(ventasArgs(f), limitArg(limit))...)
	if err != nil {
		return nil, fmt.Errorf("member performance: %w", err)
	}
	defer rows.Close()
	out := make([]repository.MemberPerformance, 0)
	for rows.Next() {
		var m repository.MemberPerformance
		if err := rows.Scan(&m.SocioID, &m.Nombre, &m.Produccion, &m.Ventas); err != nil {
			return nil, fmt.Errorf("scan member performance: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

// SalesByEstado incluye canceladas para que el resumen muestre todos los estados.
func (r *ReportRepo) SalesByEstado(ctx context.Context, f repository.ReportFilter) ([]repository.CountAmount, error) {
	return queryCountAmount(ctx, r.q, `
		SELECT v.estado, COUNT(*), COALESCE(SUM(v.total), 0)
		FROM ventas v WHERE `+ventasRange+`
		GROUP BY v.estado ORDER BY v.estado`, ventasArgs(f)...)
}

// PagosByTipo excluye pagos rechazados.
func (r *ReportRepo) PagosByTipo(ctx context.Context, f repository.ReportFilter) ([]repository.CountAmount, error) {
	return queryCountAmount(ctx, r.q, `
		SELECT p.tipo, COUNT(*), COALESCE(SUM(p.monto), 0)
		FROM pagos p WHERE p.estado <> 'rechazado' AND `+pagosRange+`
		GROUP BY p.tipo ORDER BY p.tipo`, pagosArgs(f)...)
}

// ProduccionByCalidad Amount es la cantidad cosechada.
func (r *ReportRepo) ProduccionByCalidad(ctx context.Context, f repository.ReportFilter) ([]repository.CountAmount, error) {
	return queryCountAmount(ctx, r.q, `
		SELECT pr.calidad, COUNT(*), COALESCE(SUM(pr.cantidad), 0)
		FROM produccion pr WHERE `+produccionRange+`
		GROUP BY pr.calidad ORDER BY pr.calidad`, ventasArgs(f)...)
}

// SociosByEstado Amount es la suma de aportes_totales.
func (r *ReportRepo) SociosByEstado(ctx context.Context) ([]repository.CountAmount, error) {
	return queryCountAmount(ctx, r.q, `
		SELECT estado, COUNT(*), COALESCE(SUM(aportes_totales), 0)
		FROM socios GROUP BY estado ORDER BY estado`)
}

func (r *ReportRepo) InsumosSummary(ctx context.Context) (repository.InsumosSummary, error) {
	var s repository.InsumosSummary
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE estado = 'disponible'),
		       COUNT(*) FILTER (WHERE estado = 'agotado'),
		       COUNT(*) FILTER (WHERE estado = 'vencido'),
		       COALESCE(SUM(cantidad_disponible * precio_unitario) FILTER (WHERE estado = 'disponible'), 0)
		FROM insumos`).Scan(&s.Items, &s.Disponible, &s.Agotados, &s.Vencidos, &s.Value)
	if err != nil {
		return repository.InsumosSummary{}, fmt.Errorf("insumos summary: %w", err)
	}
	s.Value = s.Value.Round(2)
	return s, nil
}
