package reports

import (
	"fmt"
	"time"
)

var monthNames = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// Month cubeta mensual semiabierta [Start, End).
type Month struct {
	Start time.Time
	End   time.Time
	Label string // ej: "Mar 2026"
}

// TrailingMonths devuelve n meses calendario consecutivos terminando en el mes de ref, del más antiguo al más reciente.
func TrailingMonths(ref time.Time, n int) []Month {
	if n <= 0 {
		return nil
	}
	last := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, time.UTC)
	out := make([]Month, 0, n)
	for i := n - 1; i >= 0; i-- {
		start := last.AddDate(0, -i, 0)
		out = append(out, Month{
			Start: start,
			End:   start.AddDate(0, 1, 0),
			Label: ShortMonthLabel(start),
		})
	}
	return out
}

// MonthLabel etiqueta legible, ej: "Febrero 2026".
func MonthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", monthNames[t.Month()-1], t.Year())
}

// ShortMonthLabel etiqueta corta para ejes de gráficos, ej: "Feb 2026".
func ShortMonthLabel(t time.Time) string {
	return fmt.Sprintf("%s %d", monthNames[t.Month()-1][:3], t.Year())
}
