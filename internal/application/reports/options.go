// Package reports contiene los casos de uso del módulo de reportes:
// KPIs, series para gráficos, resumen, reporte por producto y exportación PDF.
package reports

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain"
	domreports "github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/reports"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/repository"
)

const (
	topProductsLimit       = 3
	memberPerformanceLimit = 5
	memberQuotaLimit       = 10
)

// Options supuestos configurables del módulo (ver REPORTS_* en la configuración).
type Options struct {
	Margin           domreports.MarginPolicy
	WidenEmptyPeriod bool
	CostWindowMonths int
	ChartMonths      int
	MemberQuota      decimal.Decimal
}

// period rango inclusivo [From, To] ya validado más los filtros opcionales.
type period struct {
	From    time.Time
	To      time.Time
	Product string
	SocioID *int64
}

// filter convierte el período a un ReportFilter semiabierto [From, To+1d).
func (p period) filter() repository.ReportFilter {
	return repository.ReportFilter{
		From:    p.From,
		Until:   p.To.AddDate(0, 0, 1),
		Product: p.Product,
		SocioID: p.SocioID,
	}
}

func (p period) report(widened bool) dto.ReportPeriod {
	return dto.ReportPeriod{From: dto.FormatDate(p.From), To: dto.FormatDate(p.To), Widened: widened}
}

// resolvePeriod aplica los valores por defecto (mes en curso) y valida el rango.
func resolvePeriod(q dto.ReportQuery, now time.Time) (period, error) {
	defFrom, defTo := domreports.CurrentMonth(now)
	var ve domain.ValidationError
	from := parseOr(&ve, "dateFrom", q.DateFrom, defFrom)
	to := parseOr(&ve, "dateTo", q.DateTo, defTo)
	if err := ve.OrNil(); err != nil {
		return period{}, err
	}
	if from.After(to) {
		return period{}, domain.NewValidationError("dateFrom", "no puede ser posterior a dateTo")
	}
	p := period{From: from, To: to, Product: strings.TrimSpace(q.Product)}
	if q.SocioID != nil && *q.SocioID > 0 {
		p.SocioID = q.SocioID
	}
	return p, nil
}

func parseOr(ve *domain.ValidationError, field, s string, def time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return def
	}
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		ve.Add(field, "fecha inválida, formato YYYY-MM-DD")
		return time.Time{}
	}
	return t
}

func groupStats(rows []repository.CountAmount) ([]dto.GroupStat, int, decimal.Decimal) {
	out := make([]dto.GroupStat, 0, len(rows))
	count, total := 0, decimal.Zero
	for _, r := range rows {
		out = append(out, dto.GroupStat{Key: r.Key, Count: r.Count, Amount: r.Amount.Round(2)})
		count += r.Count
		total = total.Add(r.Amount)
	}
	return out, count, total.Round(2)
}
