package reports

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/repository"
)

// stubRepo ReportRepository en memoria; cada método delega en su función si está definida.
type stubRepo struct {
	mu sync.Mutex

	salesTotal   func(f repository.ReportFilter) (decimal.Decimal, error)
	salesSpan    repository.DateSpan
	contribTotal func(f repository.ReportFilter) (decimal.Decimal, error)
	contribSpan  repository.DateSpan
	members      int
	membersErr   error
	invValue     decimal.Decimal
	invItems     int
	margin       repository.MarginInputs
	marginCalls  []repository.ReportFilter
	expenses     func(f repository.ReportFilter) (decimal.Decimal, error)
	production   func(f repository.ReportFilter) (decimal.Decimal, error)
	top          []repository.ProductSales
	memberAmts   []repository.MemberAmount
	types        []repository.TypeValue
	performance  []repository.MemberPerformance
	byEstado     []repository.CountAmount
	byTipo       []repository.CountAmount
	byCalidad    []repository.CountAmount
	socios       []repository.CountAmount
	insumos      repository.InsumosSummary
	summaryErr   error
}

var _ repository.ReportRepository = (*stubRepo)(nil)

func call(fn func(repository.ReportFilter) (decimal.Decimal, error), f repository.ReportFilter) (decimal.Decimal, error) {
	if fn == nil {
		return decimal.Zero, nil
	}
	return fn(f)
}

func (s *stubRepo) SalesTotal(_ context.Context, f repository.ReportFilter) (decimal.Decimal, error) {
	return call(s.salesTotal, f)
}

func (s *stubRepo) SalesSpan(context.Context, repository.ReportFilter) (repository.DateSpan, error) {
	return s.salesSpan, nil
}

func (s *stubRepo) ContributionsTotal(_ context.Context, f repository.ReportFilter) (decimal.Decimal, error) {
	return call(s.contribTotal, f)
}

func (s *stubRepo) ContributionsSpan(context.Context, repository.ReportFilter) (repository.DateSpan, error) {
	return s.contribSpan, nil
}

func (s *stubRepo) ActiveMembers(context.Context) (int, error) { return s.members, s.membersErr }

func (s *stubRepo) InventoryValue(context.Context) (decimal.Decimal, int, error) {
	return s.invValue, s.invItems, nil
}

func (s *stubRepo) MarginInputs(_ context.Context, f repository.ReportFilter, _ int) (repository.MarginInputs, error) {
	s.mu.Lock()
	s.marginCalls = append(s.marginCalls, f)
	s.mu.Unlock()
	return s.margin, nil
}

func (s *stubRepo) ExpensesTotal(_ context.Context, f repository.ReportFilter) (decimal.Decimal, error) {
	return call(s.expenses, f)
}

func (s *stubRepo) ProductionTotal(_ context.Context, f repository.ReportFilter) (decimal.Decimal, error) {
	return call(s.production, f)
}

func (s *stubRepo) TopProducts(_ context.Context, _ repository.ReportFilter, limit int) ([]repository.ProductSales, error) {
	if limit > 0 && len(s.top) > limit {
		return s.top[:limit], nil
	}
	return s.top, nil
}

func (s *stubRepo) MemberContributions(context.Context, repository.ReportFilter, int) ([]repository.MemberAmount, error) {
	return s.memberAmts, nil
}

func (s *stubRepo) InventoryByType(context.Context) ([]repository.TypeValue, error) {
	return s.types, nil
}

func (s *stubRepo) MemberPerformance(context.Context, repository.ReportFilter, int) ([]repository.MemberPerformance, error) {
	return s.performance, nil
}

func (s *stubRepo) SalesByEstado(context.Context, repository.ReportFilter) ([]repository.CountAmount, error) {
	return s.byEstado, s.summaryErr
}

func (s *stubRepo) PagosByTipo(context.Context, repository.ReportFilter) ([]repository.CountAmount, error) {
	return s.byTipo, nil
}

func (s *stubRepo) ProduccionByCalidad(context.Context, repository.ReportFilter) ([]repository.CountAmount, error) {
	return s.byCalidad, nil
}

func (s *stubRepo) SociosByEstado(context.Context) ([]repository.CountAmount, error) {
	return s.socios, nil
}

func (s *stubRepo) InsumosSummary(context.Context) (repository.InsumosSummary, error) {
	return s.insumos, nil
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func fixedNow() time.Time { return day("2026-03-15") }
