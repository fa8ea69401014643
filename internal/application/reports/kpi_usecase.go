package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
	domreports "github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/reports"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/repository"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/pkg/logger"
)

// KPIUseCase calcula los indicadores del tablero.
type KPIUseCase struct {
	repo repository.ReportRepository
	opts Options
	log  *logger.Logger
	now  func() time.Time
}

// NewKPIUseCase construye el caso de uso.
func NewKPIUseCase(repo repository.ReportRepository, opts Options, log *logger.Logger) *KPIUseCase {
	return &KPIUseCase{repo: repo, opts: opts, log: log, now: time.Now}
}

// ZeroKPIs reporte con todos los indicadores en cero, para respuestas degradadas.
func ZeroKPIs() *dto.KPIReport {
	return &dto.KPIReport{
		KPIs: dto.KPIs{
			TotalIncome:        decimal.Zero,
			IncomeChange:       decimal.Zero,
			TotalContributions: decimal.Zero,
			InventoryValue:     decimal.Zero,
			GrossMargin:        decimal.Zero,
		},
		MarginCostSource: domreports.CostNoSales,
	}
}

// GetKPIs calcula los KPIs del período.
//
// Si el rango pedido no tiene ingresos (o aportes) pero el histórico sí, y
// WidenEmptyPeriod está activo, se reporta el histórico completo y el período
// pasa a ser las fechas mínima/máxima de la tabla (period.widened = true).
// incomeChange y grossMargin se calculan sobre el período reportado.
func (uc *KPIUseCase) GetKPIs(ctx context.Context, q dto.ReportQuery) (*dto.KPIReport, error) {
	p, err := resolvePeriod(q, uc.now())
	if err != nil {
		return nil, err
	}
	f := p.filter()

	// ── Consultas independientes en paralelo ─────────────────────────────────
	type sumResult struct {
		v   decimal.Decimal
		err error
	}
	type countResult struct {
		n   int
		err error
	}
	type inventoryResult struct {
		value decimal.Decimal
		items int
		err   error
	}

	incomeCh := make(chan sumResult, 1)
	contribCh := make(chan sumResult, 1)
	membersCh := make(chan countResult, 1)
	invCh := make(chan inventoryResult, 1)

	go func() {
		v, err := uc.repo.SalesTotal(ctx, f)
		incomeCh <- sumResult{v, err}
	}()
	go func() {
		v, err := uc.repo.ContributionsTotal(ctx, f)
		contribCh <- sumResult{v, err}
	}()
	go func() {
		n, err := uc.repo.ActiveMembers(ctx)
		membersCh <- countResult{n, err}
	}()
	go func() {
		v, n, err := uc.repo.InventoryValue(ctx)
		invCh <- inventoryResult{v, n, err}
	}()

	income := <-incomeCh
	contrib := <-contribCh
	members := <-membersCh
	inv := <-invCh

	if income.err != nil {
		return ZeroKPIs(), fmt.Errorf("kpis: ingresos: %w", income.err)
	}
	if contrib.err != nil {
		return ZeroKPIs(), fmt.Errorf("kpis: aportes: %w", contrib.err)
	}
	if members.err != nil {
		return ZeroKPIs(), fmt.Errorf("kpis: socios activos: %w", members.err)
	}
	if inv.err != nil {
		return ZeroKPIs(), fmt.Errorf("kpis: inventario: %w", inv.err)
	}

	// ── Ampliación al histórico ──────────────────────────────────────────────
	reported := p
	widened := false
	totalIncome := income.v
	if totalIncome.IsZero() && uc.opts.WidenEmptyPeriod {
		all, span, err := uc.widen(ctx, f, uc.repo.SalesTotal, uc.repo.SalesSpan)
		if err != nil {
			return ZeroKPIs(), fmt.Errorf("kpis: ingresos históricos: %w", err)
		}
		if all.IsPositive() && span.Valid {
			totalIncome = all
			reported.From, reported.To = span.Min, span.Max
			widened = true
			uc.log.Debug().
				Str("from", dto.FormatDate(p.From)).Str("to", dto.FormatDate(p.To)).
				Msg("kpis: período sin ventas, se reporta el histórico")
		}
	}

	totalContrib := contrib.v
	if totalContrib.IsZero() && uc.opts.WidenEmptyPeriod {
		all, _, err := uc.widen(ctx, f, uc.repo.ContributionsTotal, uc.repo.ContributionsSpan)
		if err != nil {
			return ZeroKPIs(), fmt.Errorf("kpis: aportes históricos: %w", err)
		}
		totalContrib = all
	}

	// ── Variación contra el período anterior de igual duración ───────────────
	prevFrom, prevTo := domreports.PreviousWindow(reported.From, reported.To)
	prevFilter := period{From: prevFrom, To: prevTo, Product: p.Product, SocioID: p.SocioID}.filter()
	previous, err := uc.repo.SalesTotal(ctx, prevFilter)
	if err != nil {
		return ZeroKPIs(), fmt.Errorf("kpis: período anterior: %w", err)
	}

	// ── Margen bruto ─────────────────────────────────────────────────────────
	marginFilter := f
	if widened {
		marginFilter = f.AllTime()
	}
	mi, err := uc.repo.MarginInputs(ctx, marginFilter, uc.opts.CostWindowMonths)
	if err != nil {
		return ZeroKPIs(), fmt.Errorf("kpis: margen: %w", err)
	}
	margin := uc.opts.Margin.Compute(mi.Sales, mi.ProductionCost, mi.MatchedSales)

	return &dto.KPIReport{
		KPIs: dto.KPIs{
			TotalIncome:        totalIncome.Round(2),
			IncomeChange:       domreports.IncomeChange(totalIncome, previous),
			TotalContributions: totalContrib.Round(2),
			ActiveMembers:      members.n,
			InventoryValue:     inv.value.Round(2),
			AvailableItems:     inv.items,
			GrossMargin:        margin.Margin,
		},
		Period:           reported.report(widened),
		MarginCostSource: margin.Source,
	}, nil
}

// widen consulta el total sin límite de fechas y el rango de fechas de la tabla.
func (uc *KPIUseCase) widen(
	ctx context.Context,
	f repository.ReportFilter,
	total func(context.Context, repository.ReportFilter) (decimal.Decimal, error),
	span func(context.Context, repository.ReportFilter) (repository.DateSpan, error),
) (decimal.Decimal, repository.DateSpan, error) {
	all, err := total(ctx, f.AllTime())
	if err != nil {
		return decimal.Zero, repository.DateSpan{}, err
	}
	if all.IsZero() {
		return all, repository.DateSpan{}, nil
	}
	s, err := span(ctx, f)
	if err != nil {
		return decimal.Zero, repository.DateSpan{}, err
	}
	return all, s, nil
}
