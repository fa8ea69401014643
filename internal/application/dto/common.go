package dto

import "time"

const (
	DefaultLimit = 10
	MaxLimit     = 100
	DateLayout   = "2006-01-02"
)

// PageQuery paginación 1-indexada para listados.
type PageQuery struct {
	Page   int
	Limit  int
	Search string
}

// Normalize corrige page < 1 y limit fuera de [1, MaxLimit].
func (p *PageQuery) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit < 1 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
}

// Offset (page-1) * limit.
func (p PageQuery) Offset() int {
	return (p.Page - 1) * p.Limit
}

// Pagination metadatos de página en respuestas.
type Pagination struct {
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
	TotalRecords int `json:"total_records"`
	PerPage      int `json:"per_page"`
}

// NewPagination calcula total_pages = ceil(total/limit); 0 si no hay registros.
func NewPagination(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 && total > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{
		CurrentPage:  page,
		TotalPages:   pages,
		TotalRecords: total,
		PerPage:      limit,
	}
}

// Page lista paginada de items.
type Page[T any] struct {
	Items      []T
	Pagination Pagination
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Success bool              `json:"success"`
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// FormatDate fecha en formato YYYY-MM-DD; vacío si es cero.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DateLayout)
}

// FormatDatePtr igual que FormatDate para fechas opcionales.
func FormatDatePtr(t *time.Time) *string {
	if t == nil || t.IsZero() {
		return nil
	}
	s := t.Format(DateLayout)
	return &s
}
