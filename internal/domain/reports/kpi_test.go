package reports_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/reports"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

var defaultPolicy = reports.MarginPolicy{
	CostRatio:         d("0.70"),
	FallbackCostRatio: d("0.60"),
	AdjustNegative:    true,
}

func TestIncomeChange(t *testing.T) {
	assert.True(t, reports.IncomeChange(d("150"), d("100")).Equal(d("50")))
	assert.True(t, reports.IncomeChange(d("50"), d("200")).Equal(d("-75")))
	assert.True(t, reports.IncomeChange(d("1"), d("3")).Equal(d("-66.67")))
}

func TestIncomeChange_PrevioCero_DevuelveCero(t *testing.T) {
	for _, current := range []string{"0", "1", "123456.78"} {
		assert.True(t, reports.IncomeChange(d(current), decimal.Zero).IsZero(), "current=%s", current)
	}
}

func TestMargin_SinProduccion_UsaRatio(t *testing.T) {
	res := defaultPolicy.Compute(d("1000"), decimal.Zero, 0)
	assert.True(t, res.Margin.Equal(d("30")))
	assert.True(t, res.Cost.Equal(d("700")))
	assert.Equal(t, reports.CostEstimated, res.Source)
}

func TestMargin_ConProduccion(t *testing.T) {
	res := defaultPolicy.Compute(d("1000"), d("250"), 3)
	assert.True(t, res.Margin.Equal(d("75")))
	assert.Equal(t, reports.CostFromProduction, res.Source)
}

func TestMargin_Negativo_SeAjustaAlSesenta(t *testing.T) {
	res := defaultPolicy.Compute(d("1000"), d("4000"), 2)
	assert.False(t, res.Margin.IsNegative(), "el margen ajustado nunca es negativo")
	assert.True(t, res.Margin.Equal(d("40")))
	assert.True(t, res.Cost.Equal(d("600")))
	assert.Equal(t, reports.CostAdjusted, res.Source)
}

func TestMargin_Negativo_SinAjuste_SeReporta(t *testing.T) {
	p := defaultPolicy
	p.AdjustNegative = false
	res := p.Compute(d("1000"), d("1500"), 1)
	assert.True(t, res.Margin.Equal(d("-50")))
	assert.Equal(t, reports.CostInsufficient, res.Source)
}

func TestMargin_SinVentas(t *testing.T) {
	res := defaultPolicy.Compute(decimal.Zero, d("100"), 1)
	assert.True(t, res.Margin.IsZero())
	assert.Equal(t, reports.CostNoSales, res.Source)
}

func TestPreviousWindow(t *testing.T) {
	from, to := reports.PreviousWindow(date("2026-03-01"), date("2026-03-31"))
	assert.Equal(t, date("2026-01-29"), from)
	assert.Equal(t, date("2026-02-28"), to)
	assert.Equal(t, 31, reports.Days(from, to))

	from, to = reports.PreviousWindow(date("2026-05-10"), date("2026-05-10"))
	assert.Equal(t, date("2026-05-09"), from)
	assert.Equal(t, date("2026-05-09"), to)
}

func TestCurrentMonth(t *testing.T) {
	from, to := reports.CurrentMonth(time.Date(2024, 2, 17, 15, 0, 0, 0, time.UTC))
	assert.Equal(t, date("2024-02-01"), from)
	assert.Equal(t, date("2024-02-29"), to)
}

func TestShare(t *testing.T) {
	assert.True(t, reports.Share(d("25"), d("200")).Equal(d("12.5")))
	assert.True(t, reports.Share(d("25"), decimal.Zero).IsZero())
}
