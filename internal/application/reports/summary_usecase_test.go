package reports

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/repository"
)

func newSummary(repo *stubRepo) *SummaryUseCase {
	uc := NewSummaryUseCase(repo)
	uc.now = fixedNow
	return uc
}

func TestGetSummary_TotalesPorModulo(t *testing.T) {
	repo := &stubRepo{
		byEstado: []repository.CountAmount{
			{Key: "pendiente", Count: 2, Amount: d("300")},
			{Key: "pagado", Count: 1, Amount: d("200")},
			{Key: "cancelado", Count: 1, Amount: d("50")},
		},
		byTipo:    []repository.CountAmount{{Key: "aporte_mensual", Count: 3, Amount: d("150")}},
		byCalidad: []repository.CountAmount{{Key: "primera", Count: 2, Amount: d("40.5")}},
		socios:    []repository.CountAmount{{Key: "activo", Count: 5}, {Key: "inactivo", Count: 1}},
		insumos:   repository.InsumosSummary{Items: 4, Disponible: 2, Agotados: 1, Vencidos: 1, Value: d("99.9")},
	}

	out, err := newSummary(repo).GetSummary(context.Background(), marzo)
	require.NoError(t, err)

	assert.Equal(t, 4, out.Ventas.Count)
	assert.Equal(t, "500", out.Ventas.Total.String(), "las canceladas no suman al total")
	assert.Len(t, out.Ventas.PorEstado, 3)
	assert.Equal(t, 3, out.Pagos.Count)
	assert.Equal(t, "150", out.Pagos.Total.String())
	assert.Equal(t, 2, out.Produccion.Records)
	assert.Equal(t, "40.5", out.Produccion.Cantidad.String())
	assert.Len(t, out.Socios, 2)
	assert.Equal(t, 1, out.Insumos.Agotados)
	assert.Equal(t, dto.ReportPeriod{From: "2026-03-01", To: "2026-03-31"}, out.Period)
}

func TestGetSummary_ErrorDeBase(t *testing.T) {
	_, err := newSummary(&stubRepo{summaryErr: errors.New("boom")}).GetSummary(context.Background(), marzo)
	assert.Error(t, err)
}

func TestGetProducts_Participacion(t *testing.T) {
	repo := &stubRepo{top: []repository.ProductSales{
		{Product: "Café", Count: 2, Quantity: d("10"), Revenue: d("300"), AvgPrice: d("30")},
		{Product: "Maíz", Count: 1, Quantity: d("20"), Revenue: d("100"), AvgPrice: d("5")},
	}}

	out, err := newSummary(repo).GetProducts(context.Background(), marzo)
	require.NoError(t, err)

	assert.Equal(t, "400", out.Total.String())
	require.Len(t, out.Products, 2)
	assert.Equal(t, "75", out.Products[0].SharePercent.String())
	assert.Equal(t, "25", out.Products[1].SharePercent.String())
	assert.Equal(t, 2, out.Products[0].Sales)
}

type captureGenerator struct {
	doc ReportDocument
	err error
}

func (g *captureGenerator) GenerateReportPDF(_ context.Context, doc ReportDocument) ([]byte, error) {
	g.doc = doc
	return []byte("%PDF-1.4"), g.err
}

func TestExportPDF_NombreDeArchivo(t *testing.T) {
	repo := &stubRepo{top: []repository.ProductSales{{Product: "Café", Revenue: d("10")}}}
	gen := &captureGenerator{}
	uc := NewPDFUseCase(newKPIs(repo, testOptions()), newSummary(repo), gen)
	uc.now = fixedNow

	b, name, err := uc.Export(context.Background(), marzo)
	require.NoError(t, err)
	assert.Equal(t, "reporte_2026-03-01_2026-03-31.pdf", name)
	assert.Equal(t, []byte("%PDF-1.4"), b)
	require.NotNil(t, gen.doc.Products)
	assert.Len(t, gen.doc.Products.Products, 1)
	assert.True(t, gen.doc.GeneratedAt.Equal(fixedNow()))
}

func TestExportPDF_ErrorDelGenerador(t *testing.T) {
	gen := &captureGenerator{err: errors.New("fuente no encontrada")}
	uc := NewPDFUseCase(newKPIs(&stubRepo{}, testOptions()), newSummary(&stubRepo{}), gen)

	_, _, err := uc.Export(context.Background(), marzo)
	assert.Error(t, err)
}
