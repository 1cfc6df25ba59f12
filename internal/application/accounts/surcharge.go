package accounts

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cuentas-pro/internal/application/dto"
	"github.com/tu-usuario/cuentas-pro/internal/domain"
	"github.com/tu-usuario/cuentas-pro/internal/domain/entity"
	"github.com/tu-usuario/cuentas-pro/internal/domain/repository"
)

// ApplySurcharge aplica un recargo por mora sobre la deuda pendiente, como
// porcentaje del saldo o como monto fijo. El recargo se registra como
// movimiento de tipo interest y no pasa por el control de límite de crédito:
// el interés corre aunque la cuenta ya esté al tope.
func (uc *UseCase) ApplySurcharge(ctx context.Context, customerID string, req dto.SurchargeRequest, userID string) (*dto.MovementResponse, error) {
	value := req.Value.Abs()
	if value.IsZero() {
		return nil, fmt.Errorf("%w: el valor del recargo debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if req.SurchargeType != dto.SurchargePercentage && req.SurchargeType != dto.SurchargeFixed {
		return nil, fmt.Errorf("%w: tipo de recargo inválido %q", domain.ErrInvalidInput, req.SurchargeType)
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
		if !account.HasDebt() {
			return domain.ErrNoPendingDebt
		}

		var amount decimal.Decimal
		description := req.Description
		if req.SurchargeType == dto.SurchargePercentage {
			// El porcentaje se calcula sobre el saldo vigente bajo el lock.
			amount = account.Balance.Mul(value).Div(decimal.NewFromInt(100)).Round(2)
			if description == "" {
				description = fmt.Sprintf("Recargo por mora (%s%%)", value.String())
			}
		} else {
			// El monto fijo se registra tal cual lo indicó el operador.
			amount = value
			if description == "" {
				description = "Recargo por mora"
			}
		}
		if amount.IsZero() {
			return fmt.Errorf("%w: el recargo calculado es cero", domain.ErrInvalidInput)
		}

		newBalance := account.Balance.Add(amount)
		movement := &entity.AccountMovement{
			AccountID:     account.ID,
			Type:          entity.MovementInterest,
			Amount:        amount,
			BalanceBefore: account.Balance,
			BalanceAfter:  newBalance,
			Description:   description,
			ReferenceType: entity.ReferenceSurcharge,
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
		Msg("recargo aplicado")

	resp := dto.NewMovementResponse(created)
	return &resp, nil
}
