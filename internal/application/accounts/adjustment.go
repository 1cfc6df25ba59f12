package accounts

import (
	"context"
	"fmt"

	"github.com/tu-usuario/cuentas-pro/internal/application/dto"
	"github.com/tu-usuario/cuentas-pro/internal/domain"
	"github.com/tu-usuario/cuentas-pro/internal/domain/entity"
	"github.com/tu-usuario/cuentas-pro/internal/domain/repository"
)

// CreateAdjustment registra un ajuste manual con signo libre. Es la vía
// privilegiada de corrección: no valida límite de crédito, suspensión ni tope
// de deuda, y puede dejar el saldo en negativo. El acceso se restringe a
// administradores en la capa HTTP.
func (uc *UseCase) CreateAdjustment(ctx context.Context, customerID string, req dto.AdjustmentRequest, userID string) (*dto.MovementResponse, error) {
	if req.Amount.IsZero() {
		return nil, fmt.Errorf("%w: el monto del ajuste no puede ser cero", domain.ErrInvalidInput)
	}
	if req.Description == "" {
		return nil, fmt.Errorf("%w: el ajuste requiere una descripción", domain.ErrInvalidInput)
	}
	referenceType := req.ReferenceType
	if referenceType == "" {
		referenceType = entity.ReferenceAdjustment
	}

	var created *entity.AccountMovement
	err := uc.tx.RunLedger(ctx, func(
		accountRepo repository.AccountRepository,
		movementRepo repository.MovementRepository,
		_ repository.SaleRepository,
		_ repository.IncomeRepository,
	) error {
		account, err := lockAccount(accountRepo, customerID)
		if err != nil {
			return err
		}

		newBalance := account.Balance.Add(req.Amount)
		movement := &entity.AccountMovement{
			AccountID:     account.ID,
			Type:          entity.MovementAdjustment,
			Amount:        req.Amount,
			BalanceBefore: account.Balance,
			BalanceAfter:  newBalance,
			Description:   req.Description,
			ReferenceType: referenceType,
			ReferenceID:   req.ReferenceID,
			Notes:         req.Notes,
			CreatedBy:     userID,
		}
		if err := movementRepo.Create(movement); err != nil {
			return err
		}

		account.Balance = newBalance
		if err := accountRepo.Save(account); err != nil {
			return err
		}
		created = movement
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("customer_id", customerID).
		Str("movement_id", created.ID).
		Str("amount", created.Amount.StringFixed(2)).
		Str("created_by", userID).
		Msg("ajuste manual registrado")

	resp := dto.NewMovementResponse(created)
	return &resp, nil
}
