package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
	domreports "github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/reports"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/repository"
)

// SummaryUseCase resumen por módulo y reporte por producto.
type SummaryUseCase struct {
	repo repository.ReportRepository
	now  func() time.Time
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(repo repository.ReportRepository) *SummaryUseCase {
	return &SummaryUseCase{repo: repo, now: time.Now}
}

// GetSummary totales del período por módulo; socios e insumos reflejan el estado actual.
func (uc *SummaryUseCase) GetSummary(ctx context.Context, q dto.ReportQuery) (*dto.Summary, error) {
	p, err := resolvePeriod(q, uc.now())
	if err != nil {
		return nil, err
	}
	f := p.filter()

	ventas, err := uc.repo.SalesByEstado(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("summary: ventas: %w", err)
	}
	pagos, err := uc.repo.PagosByTipo(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("summary: pagos: %w", err)
	}
	produccion, err := uc.repo.ProduccionByCalidad(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("summary: produccion: %w", err)
	}
	socios, err := uc.repo.SociosByEstado(ctx)
	if err != nil {
		return nil, fmt.Errorf("summary: socios: %w", err)
	}
	insumos, err := uc.repo.InsumosSummary(ctx)
	if err != nil {
		return nil, fmt.Errorf("summary: insumos: %w", err)
	}

	out := &dto.Summary{Period: p.report(false)}

	out.Ventas.PorEstado, out.Ventas.Count, _ = groupStats(ventas)
	// El total de ventas excluye canceladas, igual que los KPIs.
	out.Ventas.Total = decimal.Zero
	for _, v := range ventas {
		if v.Key != "cancelado" {
			out.Ventas.Total = out.Ventas.Total.Add(v.Amount)
		}
	}
	out.Ventas.Total = out.Ventas.Total.Round(2)

	out.Pagos.PorTipo, out.Pagos.Count, out.Pagos.Total = groupStats(pagos)
	out.Produccion.PorCalidad, out.Produccion.Records, out.Produccion.Cantidad = groupStats(produccion)
	out.Socios, _, _ = groupStats(socios)
	out.Insumos = dto.InsumosSummary{
		Items:      insumos.Items,
		Disponible: insumos.Disponible,
		Agotados:   insumos.Agotados,
		Vencidos:   insumos.Vencidos,
		Valor:      insumos.Value,
	}
	return out, nil
}

// GetProducts ventas por producto con su participación sobre el total.
func (uc *SummaryUseCase) GetProducts(ctx context.Context, q dto.ReportQuery) (*dto.ProductReport, error) {
	p, err := resolvePeriod(q, uc.now())
	if err != nil {
		return nil, err
	}
	rows, err := uc.repo.TopProducts(ctx, p.filter(), 0)
	if err != nil {
		return nil, fmt.Errorf("products: %w", err)
	}
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Revenue)
	}
	out := &dto.ProductReport{
		Period:   p.report(false),
		Total:    total.Round(2),
		Products: make([]dto.ProductReportItem, 0, len(rows)),
	}
	for _, r := range rows {
		out.Products = append(out.Products, dto.ProductReportItem{
			Product:      r.Product,
			Sales:        r.Count,
			Quantity:     r.Quantity,
			Revenue:      r.Revenue.Round(2),
			AveragePrice: r.AvgPrice,
			SharePercent: domreports.Share(r.Revenue, total),
		})
	}
	return out, nil
}
