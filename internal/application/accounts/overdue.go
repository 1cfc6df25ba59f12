package accounts

import (
	"context"

	"github.com/tu-usuario/cuentas-pro/internal/application/dto"
)

// RecomputeOverdue recalcula los días de mora de todas las cuentas con deuda
// a partir de la fecha del último cargo y el plazo de pago de cada cuenta,
// suspendiendo las activas que superen el umbral. El recálculo es un único
// UPDATE masivo e idempotente: correrlo dos veces seguidas deja el mismo
// resultado. Lo dispara el job diario y también está expuesto para operarlo
// a mano.
func (uc *UseCase) RecomputeOverdue(ctx context.Context) (*dto.RecomputeOverdueResponse, error) {
	result, err := uc.accountRepo.RecomputeOverdue(suspendAfterDays)
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Int("updated", result.Updated).
		Int("suspended", result.Suspended).
		Msg("recálculo de mora completado")

	return &dto.RecomputeOverdueResponse{
		Updated:   result.Updated,
		Suspended: result.Suspended,
	}, nil
}
