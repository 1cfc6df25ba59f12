// Package jobs contiene los trabajos periódicos de la aplicación.
package jobs

import (
	"context"
	"time"

	"github.com/tu-usuario/cuentas-pro/internal/application/accounts"
	"github.com/tu-usuario/cuentas-pro/pkg/logger"
)

// OverdueScheduler dispara el recálculo diario de mora a una hora fija local.
type OverdueScheduler struct {
	uc   *accounts.UseCase
	hour int // 0-23
	log  *logger.Logger
}

// NewOverdueScheduler construye el scheduler.
func NewOverdueScheduler(uc *accounts.UseCase, hour int, log *logger.Logger) *OverdueScheduler {
	return &OverdueScheduler{uc: uc, hour: hour, log: log}
}

// Run bloquea ejecutando el recálculo una vez al día a la hora configurada,
// hasta que el contexto se cancele. Pensado para correr en una goroutine.
// El recálculo es idempotente, así que una corrida de más no daña nada.
func (s *OverdueScheduler) Run(ctx context.Context) {
	for {
		wait := time.Until(s.nextRun(time.Now()))
		s.log.Info().Dur("wait", wait).Msg("recálculo de mora programado")

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		if _, err := s.uc.RecomputeOverdue(ctx); err != nil {
			s.log.Error().Err(err).Msg("recálculo diario de mora")
		}
	}
}

// nextRun devuelve la próxima ocurrencia de la hora configurada después de now.
func (s *OverdueScheduler) nextRun(now time.Time) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next
}
