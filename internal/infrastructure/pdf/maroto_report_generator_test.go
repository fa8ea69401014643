package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/reports"
)

func TestGenerateReportPDF(t *testing.T) {
	g := NewMarotoReportGenerator("Cooperativa El Valle")
	doc := reports.ReportDocument{
		Title:       "Reporte de la Cooperativa",
		GeneratedAt: time.Date(2026, 3, 31, 18, 0, 0, 0, time.UTC),
		KPIs: &dto.KPIReport{
			KPIs:   dto.KPIs{TotalIncome: decimal.NewFromInt(1500), GrossMargin: decimal.NewFromInt(30)},
			Period: dto.ReportPeriod{From: "2025-01-10", To: "2025-06-20", Widened: true},
		},
		Summary: &dto.Summary{
			Period: dto.ReportPeriod{From: "2026-03-01", To: "2026-03-31"},
			Ventas: dto.SalesSummary{PorEstado: []dto.GroupStat{{Key: "pendiente", Count: 2, Amount: decimal.NewFromInt(300)}}},
		},
		Products: &dto.ProductReport{
			Total:    decimal.NewFromInt(300),
			Products: []dto.ProductReportItem{{Product: "Café", Sales: 2, Revenue: decimal.NewFromInt(300), SharePercent: decimal.NewFromInt(100)}},
		},
	}

	b, err := g.GenerateReportPDF(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(b, []byte("%PDF")))
}

func TestGenerateReportPDF_SinSecciones(t *testing.T) {
	b, err := NewMarotoReportGenerator("").GenerateReportPDF(context.Background(), reports.ReportDocument{Title: "Vacío"})
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}

func TestMoney_FormatoEspañol(t *testing.T) {
	g := NewMarotoReportGenerator("")
	assert.Equal(t, "$12.345,50", g.money(decimal.RequireFromString("12345.5")))
	assert.Equal(t, "12,30%", g.percent(decimal.RequireFromString("12.3")))
}

func TestHumanize(t *testing.T) {
	assert.Equal(t, "Aporte mensual", humanize("aporte_mensual"))
	assert.Equal(t, "—", humanize(""))
}
