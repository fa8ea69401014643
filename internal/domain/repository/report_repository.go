package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ReportFilter rango semiabierto [From, Until) más filtros opcionales.
// From o Until en cero eliminan ese límite (consulta sobre todo el histórico).
type ReportFilter struct {
	From    time.Time
	Until   time.Time
	Product string // subcadena de ventas.producto / produccion.cultivo
	// ExactProduct compara Product completo sin distinguir mayúsculas en lugar de como subcadena.
	ExactProduct bool
	SocioID      *int64
}

// AllTime devuelve el mismo filtro sin límites de fecha.
func (f ReportFilter) AllTime() ReportFilter {
	f.From, f.Until = time.Time{}, time.Time{}
	return f
}

// DateSpan fechas mínima y máxima encontradas en una tabla. Valid=false si no hay filas.
type DateSpan struct {
	Min   time.Time
	Max   time.Time
	Valid bool
}

// MarginInputs datos crudos para el margen bruto.
type MarginInputs struct {
	Sales          decimal.Decimal // suma de ventas contables del período
	ProductionCost decimal.Decimal // Σ cantidad × precio_estimado de la producción vinculada
	MatchedSales   int             // ventas con al menos un registro de producción vinculado
}

// ProductSales agregado de ventas por producto.
type ProductSales struct {
	Product  string
	Count    int
	Quantity decimal.Decimal
	Revenue  decimal.Decimal
	AvgPrice decimal.Decimal
}

// MemberAmount monto agregado por socio. Nombre vacío si el socio ya no existe.
type MemberAmount struct {
	SocioID int64
	Nombre  string
	Amount  decimal.Decimal
}

// TypeValue valor de inventario por tipo de insumo.
type TypeValue struct {
	Tipo  string
	Items int
	Value decimal.Decimal
}

// MemberPerformance producción y ventas de un socio en el período.
type MemberPerformance struct {
	SocioID    int64
	Nombre     string
	Produccion decimal.Decimal
	Ventas     decimal.Decimal
}

// InsumosSummary totales del inventario.
type InsumosSummary struct {
	Items      int
	Disponible int
	Agotados   int
	Vencidos   int
	Value      decimal.Decimal
}

// ReportRepository consultas de solo lectura del módulo de reportes.
type ReportRepository interface {
	// SalesTotal suma ventas.total de estados contables.
	SalesTotal(ctx context.Context, f ReportFilter) (decimal.Decimal, error)
	// SalesSpan fechas mínima/máxima de ventas contables (ignora el rango de f).
	SalesSpan(ctx context.Context, f ReportFilter) (DateSpan, error)
	// ContributionsTotal suma aportes confirmados (mensual y extraordinario).
	ContributionsTotal(ctx context.Context, f ReportFilter) (decimal.Decimal, error)
	ContributionsSpan(ctx context.Context, f ReportFilter) (DateSpan, error)
	ActiveMembers(ctx context.Context) (int, error)
	// InventoryValue Σ cantidad × precio de insumos disponibles con cantidad > 0.
	InventoryValue(ctx context.Context) (value decimal.Decimal, items int, err error)
	// MarginInputs ventas del período y costo de la producción del mismo socio y producto
	// cosechada en los windowMonths meses previos a cada venta.
	MarginInputs(ctx context.Context, f ReportFilter, windowMonths int) (MarginInputs, error)

	ExpensesTotal(ctx context.Context, f ReportFilter) (decimal.Decimal, error)
	ProductionTotal(ctx context.Context, f ReportFilter) (decimal.Decimal, error)
	TopProducts(ctx context.Context, f ReportFilter, limit int) ([]ProductSales, error)
	MemberContributions(ctx context.Context, f ReportFilter, limit int) ([]MemberAmount, error)
	InventoryByType(ctx context.Context) ([]TypeValue, error)
	MemberPerformance(ctx context.Context, f ReportFilter, limit int) ([]MemberPerformance, error)

	SalesByEstado(ctx context.Context, f ReportFilter) ([]CountAmount, error)
	PagosByTipo(ctx context.Context, f ReportFilter) ([]CountAmount, error)
	ProduccionByCalidad(ctx context.Context, f ReportFilter) ([]CountAmount, error)
	SociosByEstado(ctx context.Context) ([]CountAmount, error)
	InsumosSummary(ctx context.Context) (InsumosSummary, error)
}
