package overdue_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/cuentas-pro/internal/domain/overdue"
)

func daysAgo(now time.Time, d int) time.Time {
	return now.Add(-time.Duration(d) * 24 * time.Hour)
}

func TestDays_DentroDelPlazo(t *testing.T) {
	now := time.Now()
	assert.Equal(t, 0, overdue.Days(daysAgo(now, 10), now, 30))
	assert.Equal(t, 0, overdue.Days(daysAgo(now, 30), now, 30), "el día exacto del plazo todavía no es mora")
}

func TestDays_VencidoRestaElPlazo(t *testing.T) {
	now := time.Now()
	assert.Equal(t, 40, overdue.Days(daysAgo(now, 70), now, 30))
	assert.Equal(t, 1, overdue.Days(daysAgo(now, 31), now, 30))
}

func TestDays_NuncaNegativo(t *testing.T) {
	now := time.Now()
	assert.Equal(t, 0, overdue.Days(now, now, 30))
	assert.Equal(t, 0, overdue.Days(now.Add(time.Hour), now, 0), "un cargo futuro no produce mora negativa")
}

func TestDays_RedondeaAlDiaMasCercano(t *testing.T) {
	now := time.Now()
	// 35 días y 15 horas redondean a 36
	last := now.Add(-(35*24 + 15) * time.Hour)
	assert.Equal(t, 6, overdue.Days(last, now, 30))
	// 35 días y 6 horas redondean a 35
	last = now.Add(-(35*24 + 6) * time.Hour)
	assert.Equal(t, 5, overdue.Days(last, now, 30))
}

func TestShouldSuspend_UmbralEstricto(t *testing.T) {
	assert.False(t, overdue.ShouldSuspend(30, 30))
	assert.True(t, overdue.ShouldSuspend(31, 30))
	assert.False(t, overdue.ShouldSuspend(0, 30))
}
