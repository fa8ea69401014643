package usecase

import (
	"strings"
	"time"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/application/dto"
	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain"
)

// parseDate valida una fecha YYYY-MM-DD obligatoria y registra el error en ve.
func parseDate(ve *domain.ValidationError, field, s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		ve.Add(field, "es obligatorio")
		return time.Time{}
	}
	t, err := time.Parse(dto.DateLayout, s)
	if err != nil {
		ve.Add(field, "fecha inválida, formato YYYY-MM-DD")
		return time.Time{}
	}
	return t
}

// parseOptionalDate igual que parseDate pero vacío devuelve nil.
func parseOptionalDate(ve *domain.ValidationError, field, s string) *time.Time {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	t := parseDate(ve, field, s)
	if t.IsZero() {
		return nil
	}
	return &t
}

// dateOr devuelve la fecha parseada o def si s está vacío.
func dateOr(ve *domain.ValidationError, field, s string, def time.Time) time.Time {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return parseDate(ve, field, s)
}

// dateRange convierte un rango inclusivo [from, to] a semiabierto [from, to+1d).
// Fechas vacías quedan en cero (sin límite).
func dateRange(from, to string) (time.Time, time.Time, error) {
	var ve domain.ValidationError
	f := dateOr(&ve, "date_from", from, time.Time{})
	t := dateOr(&ve, "date_to", to, time.Time{})
	if err := ve.OrNil(); err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !f.IsZero() && !t.IsZero() && f.After(t) {
		return time.Time{}, time.Time{}, domain.NewValidationError("date_from", "no puede ser posterior a date_to")
	}
	var until time.Time
	if !t.IsZero() {
		until = t.AddDate(0, 0, 1)
	}
	return f, until, nil
}

// orDefault devuelve def si s está vacío.
func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return strings.TrimSpace(s)
}

func pageOf[T any](items []T, q dto.PageQuery, total int) *dto.Page[T] {
	return &dto.Page[T]{Items: items, Pagination: dto.NewPagination(q.Page, q.Limit, total)}
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
