package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return false
}

// dateArg convierte una fecha cero en NULL para los filtros "$n::date IS NULL OR ...".
func dateArg(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern envuelve el término en %...% escapando los comodines de LIKE.
// Devuelve "" para término vacío.
func likePattern(term string) string {
	term = strings.TrimSpace(term)
	if term == "" {
		return ""
	}
	return "%" + likeEscaper.Replace(term) + "%"
}

// exactPattern patrón ILIKE sin comodines: igualdad sin distinguir mayúsculas.
func exactPattern(term string) string {
	return likeEscaper.Replace(strings.TrimSpace(term))
}

// whereClause arma condiciones AND con placeholders posicionales.
// En cada expresión, "?" se reemplaza por el número del argumento agregado.
type whereClause struct {
	parts []string
	args  []any
}

func (w *whereClause) add(expr string, arg any) {
	w.args = append(w.args, arg)
	w.parts = append(w.parts, strings.ReplaceAll(expr, "?", fmt.Sprintf("$%d", len(w.args))))
}

// search agrega "(col1 ILIKE ? OR col2 ILIKE ? ...)" si term no está vacío.
func (w *whereClause) search(term string, cols ...string) {
	pattern := likePattern(term)
	if pattern == "" || len(cols) == 0 {
		return
	}
	ors := make([]string, len(cols))
	for i, c := range cols {
		ors[i] = c + " ILIKE ?"
	}
	w.add("("+strings.Join(ors, " OR ")+")", pattern)
}

func (w *whereClause) sql() string {
	if len(w.parts) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.parts, " AND ")
}

// page agrega LIMIT/OFFSET y devuelve la cláusula y los argumentos completos.
func (w *whereClause) page(limit, offset int) (string, []any) {
	args := append(append([]any{}, w.args...), limit, offset)
	return fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(w.args)+1, len(w.args)+2), args
}

// updateMiss distingue por qué un UPDATE condicional no afectó filas:
// la fila existe con otra versión (ErrConflict) o no existe (ErrNotFound).
func updateMiss(ctx context.Context, q Querier, table, idCol string, id int64) error {
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE %s = $1)`, table, idCol)
	if err := q.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return fmt.Errorf("check %s: %w", table, err)
	}
	if exists {
		return domain.ErrConflict
	}
	return domain.ErrNotFound
}
