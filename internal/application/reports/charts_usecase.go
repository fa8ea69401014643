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

// ChartsUseCase arma las series mensuales de los gráficos.
// Cada mes se consulta por separado: un mes que falla queda en 0 sin romper la serie.
type ChartsUseCase struct {
	repo repository.ReportRepository
	opts Options
	log  *logger.Logger
	now  func() time.Time
}

// NewChartsUseCase construye el caso de uso.
func NewChartsUseCase(repo repository.ReportRepository, opts Options, log *logger.Logger) *ChartsUseCase {
	return &ChartsUseCase{repo: repo, opts: opts, log: log, now: time.Now}
}

type sumFunc func(context.Context, repository.ReportFilter) (decimal.Decimal, error)

// GetCharts series de los últimos ChartMonths meses que terminan en el mes de dateTo.
func (uc *ChartsUseCase) GetCharts(ctx context.Context, q dto.ReportQuery) (*dto.Charts, error) {
	p, err := resolvePeriod(q, uc.now())
	if err != nil {
		return nil, err
	}
	months := domreports.TrailingMonths(p.To, uc.opts.ChartMonths)
	base := p.filter()
	window := base
	if len(months) > 0 {
		window.From, window.Until = months[0].Start, months[len(months)-1].End
	}

	// Series mensuales en paralelo; el aislamiento es por mes dentro de cada una.
	type seriesResult []decimal.Decimal
	salesCh := make(chan seriesResult, 1)
	contribCh := make(chan seriesResult, 1)
	expensesCh := make(chan seriesResult, 1)
	productionCh := make(chan seriesResult, 1)

	go func() { salesCh <- uc.monthly(ctx, "ventas", months, base, uc.repo.SalesTotal) }()
	go func() { contribCh <- uc.monthly(ctx, "aportes", months, base, uc.repo.ContributionsTotal) }()
	go func() { expensesCh <- uc.monthly(ctx, "gastos", months, base, uc.repo.ExpensesTotal) }()
	go func() { productionCh <- uc.monthly(ctx, "produccion", months, base, uc.repo.ProductionTotal) }()

	sales, contrib, expenses, production := <-salesCh, <-contribCh, <-expensesCh, <-productionCh

	out := &dto.Charts{
		FinancialEvolution:  make([]dto.FinancialPoint, 0, len(months)),
		ProductionTrend:     make([]dto.ProductionPoint, 0, len(months)),
		MemberContributions: []dto.MemberContribution{},
		InventoryByType:     []dto.InventoryTypeValue{},
		MemberPerformance:   []dto.MemberPerformanceItem{},
		TopProductsSales:    dto.TopProductsSales{Labels: make([]string, 0, len(months)), Products: []dto.ProductSeries{}},
	}
	for i, m := range months {
		out.FinancialEvolution = append(out.FinancialEvolution, dto.FinancialPoint{
			Month: m.Label, Ventas: sales[i], Aportes: contrib[i], Gastos: expenses[i],
		})
		out.ProductionTrend = append(out.ProductionTrend, dto.ProductionPoint{Month: m.Label, Cantidad: production[i]})
		out.TopProductsSales.Labels = append(out.TopProductsSales.Labels, m.Label)
	}

	// Series no mensuales: un fallo deja la serie vacía.
	if members, err := uc.repo.MemberContributions(ctx, window, memberQuotaLimit); err != nil {
		uc.warn(err, "memberContributions", "")
	} else {
		for _, m := range members {
			out.MemberContributions = append(out.MemberContributions, dto.MemberContribution{
				IDSocio: m.SocioID, Nombre: memberName(m.Nombre, m.SocioID), Aportado: m.Amount.Round(2), Cuota: uc.opts.MemberQuota,
			})
		}
	}

	if types, err := uc.repo.InventoryByType(ctx); err != nil {
		uc.warn(err, "inventoryByType", "")
	} else {
		for _, t := range types {
			out.InventoryByType = append(out.InventoryByType, dto.InventoryTypeValue{Tipo: t.Tipo, Items: t.Items, Valor: t.Value})
		}
	}

	if top, err := uc.repo.TopProducts(ctx, window, topProductsLimit); err != nil {
		uc.warn(err, "topProductsSales", "")
	} else {
		for _, prod := range top {
			f := base
			f.Product, f.ExactProduct = prod.Product, true
			out.TopProductsSales.Products = append(out.TopProductsSales.Products, dto.ProductSeries{
				Product: prod.Product,
				Values:  uc.monthly(ctx, "producto:"+prod.Product, months, f, uc.repo.SalesTotal),
			})
		}
	}

	if perf, err := uc.repo.MemberPerformance(ctx, window, memberPerformanceLimit); err != nil {
		uc.warn(err, "memberPerformance", "")
	} else {
		for _, m := range perf {
			out.MemberPerformance = append(out.MemberPerformance, dto.MemberPerformanceItem{
				IDSocio: m.SocioID, Nombre: memberName(m.Nombre, m.SocioID), Produccion: m.Produccion, Ventas: m.Ventas.Round(2),
			})
		}
	}

	return out, nil
}

// monthly consulta cada mes de forma independiente; un error deja ese mes en 0.
func (uc *ChartsUseCase) monthly(ctx context.Context, series string, months []domreports.Month, base repository.ReportFilter, fn sumFunc) []decimal.Decimal {
	out := make([]decimal.Decimal, len(months))
	for i, m := range months {
		f := base
		f.From, f.Until = m.Start, m.End
		v, err := fn(ctx, f)
		if err != nil {
			uc.warn(err, series, m.Label)
			out[i] = decimal.Zero
			continue
		}
		out[i] = v.Round(2)
	}
	return out
}

func (uc *ChartsUseCase) warn(err error, series, month string) {
	ev := uc.log.Warn().Err(err).Str("serie", series)
	if month != "" {
		ev = ev.Str("mes", month)
	}
	ev.Msg("charts: consulta fallida, se usa 0")
}

// memberName nombre a mostrar; los socios eliminados conservan su id.
func memberName(nombre string, id int64) string {
	if nombre != "" {
		return nombre
	}
	return fmt.Sprintf("Socio #%d", id)
}
