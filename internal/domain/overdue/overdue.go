// Package overdue calcula los días de mora de una cuenta corriente a partir
// de la fecha del último cargo y el plazo de pago de la cuenta.
//
// Este paquete solo calcula; el recálculo masivo lo ejecuta la base con un
// UPDATE que replica exactamente esta fórmula, y los dos quedan anclados por
// los mismos tests.
package overdue

import (
	"math"
	"time"
)

// Days devuelve los días de mora: días transcurridos desde el último cargo
// (redondeados al día más cercano) menos el plazo de pago, nunca negativo.
func Days(lastCharge, now time.Time, paymentTermDays int) int {
	elapsed := int(math.Round(now.Sub(lastCharge).Seconds() / 86400))
	days := elapsed - paymentTermDays
	if days < 0 {
		return 0
	}
	return days
}

// ShouldSuspend indica si una cuenta activa con esos días de mora supera el
// umbral de suspensión. El umbral es estricto: exactamente suspendAfterDays
// días de mora todavía no suspende.
func ShouldSuspend(daysOverdue, suspendAfterDays int) bool {
	return daysOverdue > suspendAfterDays
}
