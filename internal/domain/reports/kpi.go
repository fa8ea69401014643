// Package reports contiene la aritmética pura del módulo de reportes:
// variación de ingresos, política de margen bruto y ventanas de fechas.
package reports

import (
	"time"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Origen del costo usado en el margen bruto.
const (
	CostFromProduction = "produccion"   // producción vinculada × precio estimado
	CostEstimated      = "estimado"     // CostRatio × ventas
	CostAdjusted       = "ajustado"     // FallbackCostRatio × ventas tras un margen negativo
	CostInsufficient   = "insuficiente" // margen negativo reportado tal cual
	CostNoSales        = "sin_ventas"
)

// IncomeChange variación porcentual (current − previous) / previous × 100.
// Devuelve 0 cuando previous es 0.
func IncomeChange(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		return decimal.Zero
	}
	return current.Sub(previous).Div(previous).Mul(hundred).Round(2)
}

// MarginPolicy supuestos para estimar el costo cuando no hay datos de producción.
type MarginPolicy struct {
	CostRatio         decimal.Decimal
	FallbackCostRatio decimal.Decimal
	AdjustNegative    bool
}

// MarginResult margen bruto en porcentaje, costo usado y su origen.
type MarginResult struct {
	Margin decimal.Decimal
	Cost   decimal.Decimal
	Source string
}

// Compute calcula (ventas − costo) / ventas × 100.
// Si hay producción vinculada (matched > 0) su costo manda; si no, CostRatio × ventas.
// Un margen negativo se re-estima con FallbackCostRatio cuando AdjustNegative está activo.
func (p MarginPolicy) Compute(sales, productionCost decimal.Decimal, matched int) MarginResult {
	if !sales.IsPositive() {
		return MarginResult{Margin: decimal.Zero, Cost: decimal.Zero, Source: CostNoSales}
	}

	cost := sales.Mul(p.CostRatio)
	source := CostEstimated
	if matched > 0 && productionCost.IsPositive() {
		cost = productionCost
		source = CostFromProduction
	}

	margin := marginPct(sales, cost)
	if margin.IsNegative() {
		if !p.AdjustNegative {
			return MarginResult{Margin: margin, Cost: cost.Round(2), Source: CostInsufficient}
		}
		cost = sales.Mul(p.FallbackCostRatio)
		margin = marginPct(sales, cost)
		source = CostAdjusted
	}
	return MarginResult{Margin: margin, Cost: cost.Round(2), Source: source}
}

func marginPct(sales, cost decimal.Decimal) decimal.Decimal {
	return sales.Sub(cost).Div(sales).Mul(hundred).Round(2)
}

// Share porcentaje de part sobre total, 0 si total es 0.
func Share(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}
	return part.Div(total).Mul(hundred).Round(2)
}

// Date trunca t a medianoche UTC.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// CurrentMonth primer y último día del mes de now.
func CurrentMonth(now time.Time) (from, to time.Time) {
	from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to = from.AddDate(0, 1, -1)
	return from, to
}

// Days número de días del rango inclusivo [from, to].
func Days(from, to time.Time) int {
	return int(Date(to).Sub(Date(from)).Hours()/24) + 1
}

// PreviousWindow período inclusivo de igual duración que termina el día anterior a from.
func PreviousWindow(from, to time.Time) (prevFrom, prevTo time.Time) {
	n := Days(from, to)
	prevTo = Date(from).AddDate(0, 0, -1)
	prevFrom = prevTo.AddDate(0, 0, -(n - 1))
	return prevFrom, prevTo
}
