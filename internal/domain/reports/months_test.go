package reports_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FranciscoDominguez0/CooperativaAgricola-sub000/internal/domain/reports"
)

func TestTrailingMonths_CruzaAnio(t *testing.T) {
	months := reports.TrailingMonths(time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC), 6)
	require.Len(t, months, 6)

	assert.Equal(t, date("2025-09-01"), months[0].Start)
	assert.Equal(t, date("2025-10-01"), months[0].End)
	assert.Equal(t, "Sep 2025", months[0].Label)
	assert.Equal(t, date("2026-02-01"), months[5].Start)
	assert.Equal(t, date("2026-03-01"), months[5].End)

	for i := 1; i < len(months); i++ {
		assert.Equal(t, months[i-1].End, months[i].Start, "las cubetas deben ser contiguas")
	}
}

func TestTrailingMonths_Cero(t *testing.T) {
	assert.Empty(t, reports.TrailingMonths(time.Now(), 0))
}

func TestMonthLabel(t *testing.T) {
	assert.Equal(t, "Febrero 2026", reports.MonthLabel(date("2026-02-10")))
}
