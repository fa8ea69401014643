package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
)

// ReportDocument datos que se vuelcan en el PDF.
type ReportDocument struct {
	Title       string
	GeneratedAt time.Time
	Filters     dto.ReportQuery
	KPIs        *dto.KPIReport
	Summary     *dto.Summary
	Products    *dto.ProductReport
}

// ReportPDFGenerator puerto de salida: renderiza el documento a bytes PDF.
type ReportPDFGenerator interface {
	GenerateReportPDF(ctx context.Context, doc ReportDocument) ([]byte, error)
}

// PDFUseCase exporta KPIs, resumen y reporte por producto a PDF.
type PDFUseCase struct {
	kpis      *KPIUseCase
	summary   *SummaryUseCase
	generator ReportPDFGenerator
	now       func() time.Time
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(kpis *KPIUseCase, summary *SummaryUseCase, generator ReportPDFGenerator) *PDFUseCase {
	return &PDFUseCase{kpis: kpis, summary: summary, generator: generator, now: time.Now}
}

// Export genera el PDF y un nombre de archivo con el período.
func (uc *PDFUseCase) Export(ctx context.Context, q dto.ReportQuery) (pdfBytes []byte, filename string, err error) {
	k, err := uc.kpis.GetKPIs(ctx, q)
	if err != nil {
		return nil, "", err
	}
	s, err := uc.summary.GetSummary(ctx, q)
	if err != nil {
		return nil, "", err
	}
	p, err := uc.summary.GetProducts(ctx, q)
	if err != nil {
		return nil, "", err
	}

	doc := ReportDocument{
		Title:       "Reporte de la Cooperativa",
		GeneratedAt: uc.now(),
		Filters:     q,
		KPIs:        k,
		Summary:     s,
		Products:    p,
	}
	pdfBytes, err = uc.generator.GenerateReportPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar reporte: %w", err)
	}
	filename = fmt.Sprintf("reporte_%s_%s.pdf", s.Period.From, s.Period.To)
	return pdfBytes, filename, nil
}
