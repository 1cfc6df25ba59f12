package accounts

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/cuentas-pro/internal/application/dto"
	"github.com/tu-usuario/cuentas-pro/internal/domain"
	"github.com/tu-usuario/cuentas-pro/internal/domain/entity"
	"github.com/tu-usuario/cuentas-pro/internal/domain/repository"
)

// CreatePayment registra un pago del cliente contra su deuda pendiente.
// El monto se toma en valor absoluto y se persiste negativo. Si el pago deja
// la cuenta en cero, en la misma transacción se resetea la mora, se reactiva
// la cuenta si estaba suspendida y se saldan en bloque las ventas e ingresos
// pendientes a cuenta del cliente.
func (uc *UseCase) CreatePayment(ctx context.Context, customerID string, req dto.CreatePaymentRequest, userID string) (*dto.MovementResponse, error) {
	amount := req.Amount.Abs()
	if amount.IsZero() {
		return nil, fmt.Errorf("%w: el monto del pago debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if req.PaymentMethodID == "" {
		return nil, fmt.Errorf("%w: el método de pago es obligatorio", domain.ErrInvalidInput)
	}
	description := req.Description
	if description == "" {
		description = "Pago de cuenta corriente"
	}

	var created *entity.AccountMovement
	err := uc.tx.RunLedger(ctx, func(
		accountRepo repository.AccountRepository,
		movementRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
		incomeRepo repository.IncomeRepository,
	) error {
		account, err := lockAccount(accountRepo, customerID)
		if err != nil {
			return err
		}
		if !account.HasDebt() {
			return domain.ErrNoPendingDebt
		}
		if amount.GreaterThan(account.Balance) {
			return &domain.PaymentExceedsDebtError{Amount: amount, Balance: account.Balance}
		}

		newBalance := account.Balance.Sub(amount)
		movement := &entity.AccountMovement{
			AccountID:       account.ID,
			Type:            entity.MovementPayment,
			Amount:          amount.Neg(),
			BalanceBefore:   account.Balance,
			BalanceAfter:    newBalance,
			Description:     description,
			ReferenceType:   entity.ReferencePayment,
			PaymentMethodID: req.PaymentMethodID,
			Notes:           req.Notes,
			CreatedBy:       userID,
		}
		if err := movementRepo.Create(movement); err != nil {
			return err
		}

		now := time.Now()
		account.Balance = newBalance
		account.LastPaymentDate = &now

		if newBalance.IsZero() {
			account.DaysOverdue = 0
			if account.Status == entity.AccountSuspended {
				account.Status = entity.AccountActive
			}
			settled, err := saleRepo.SettlePendingOnAccount(customerID)
			if err != nil {
				return err
			}
			paid, err := incomeRepo.MarkPaidOnAccount(customerID)
			if err != nil {
				return err
			}
			uc.log.Debug().
				Str("customer_id", customerID).
				Int("sales_settled", settled).
				Int("incomes_paid", paid).
				Msg("deuda saldada por completo")
		}

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
		Str("amount", amount.StringFixed(2)).
		Msg("pago registrado")

	// Registro en caja estrictamente post-commit y de mejor esfuerzo: el pago
	// ya quedó confirmado y un fallo de caja no lo revierte.
	if uc.cash != nil {
		cashErr := uc.cash.RegisterAccountPayment(ctx, CashPayment{
			Amount:            amount,
			PaymentMethodID:   req.PaymentMethodID,
			Description:       description,
			AccountMovementID: created.ID,
		}, userID)
		if cashErr != nil {
			uc.log.Warn().
				Err(cashErr).
				Str("movement_id", created.ID).
				Msg("no se pudo registrar el pago en caja")
		}
	}

	resp := dto.NewMovementResponse(created)
	return &resp, nil
}
