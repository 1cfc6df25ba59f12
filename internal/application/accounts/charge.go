package accounts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cuentas-pro/internal/application/dto"
	"github.com/tu-usuario/cuentas-pro/internal/domain"
	"github.com/tu-usuario/cuentas-pro/internal/domain/entity"
	"github.com/tu-usuario/cuentas-pro/internal/domain/repository"
)

// CreateCharge agrega un cargo (deuda) a la cuenta corriente del cliente.
// El monto se toma en valor absoluto. Valida suspensión y límite de crédito
// bajo el lock de la cuenta; si la cuenta no existe, la crea y reintenta la
// transacción exactamente una vez.
func (uc *UseCase) CreateCharge(ctx context.Context, customerID string, req dto.CreateChargeRequest, userID string) (*dto.MovementResponse, error) {
	amount := req.Amount.Abs()
	if amount.IsZero() {
		return nil, fmt.Errorf("%w: el monto del cargo debe ser mayor a cero", domain.ErrInvalidInput)
	}
	description := req.Description
	if description == "" {
		description = "Venta a cuenta corriente"
	}

	var created *entity.AccountMovement
	run := func() error {
		return uc.tx.RunLedger(ctx, func(
			accountRepo repository.AccountRepository,
			movementRepo repository.MovementRepository,
			_ repository.SaleRepository,
			_ repository.IncomeRepository,
		) error {
			account, err := lockAccount(accountRepo, customerID)
			if err != nil {
				return err
			}
			movement, err := applyCharge(accountRepo, movementRepo, account, chargeInput{
				amount:      amount,
				description: description,
				saleID:      req.SaleID,
				notes:       req.Notes,
				userID:      userID,
			})
			if err != nil {
				return err
			}
			created = movement
			return nil
		})
	}

	err := run()
	if errors.Is(err, domain.ErrAccountNotFound) {
		if err = uc.ensureAccount(customerID); err != nil {
			return nil, err
		}
		err = run()
	}
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("customer_id", customerID).
		Str("movement_id", created.ID).
		Str("amount", amount.StringFixed(2)).
		Msg("cargo registrado")

	resp := dto.NewMovementResponse(created)
	return &resp, nil
}

type chargeInput struct {
	amount      decimal.Decimal
	description string
	saleID      string
	notes       string
	userID      string
}

// applyCharge valida y aplica un cargo sobre una cuenta ya bloqueada,
// dejando el movimiento y el saldo dentro de la misma transacción.
func applyCharge(
	accountRepo repository.AccountRepository,
	movementRepo repository.MovementRepository,
	account *entity.Account,
	in chargeInput,
) (*entity.AccountMovement, error) {
	if account.Status == entity.AccountSuspended {
		return nil, domain.ErrAccountSuspended
	}

	newBalance := account.Balance.Add(in.amount)
	if account.CreditLimit.GreaterThan(decimal.Zero) && newBalance.GreaterThan(account.CreditLimit) {
		return nil, &domain.CreditLimitExceededError{
			CreditLimit: account.CreditLimit,
			Balance:     account.Balance,
		}
	}

	referenceType := entity.ReferenceManual
	if in.saleID != "" {
		referenceType = entity.ReferenceSale
		covered, err := movementRepo.ChargeReferenceIDs(account.ID, entity.ReferenceSale)
		if err != nil {
			return nil, err
		}
		if _, ok := covered[in.saleID]; ok {
			return nil, domain.ErrDuplicateMovement
		}
	}

	movement := &entity.AccountMovement{
		AccountID:     account.ID,
		Type:          entity.MovementCharge,
		Amount:        in.amount,
		BalanceBefore: account.Balance,
		BalanceAfter:  newBalance,
		Description:   in.description,
		ReferenceType: referenceType,
		ReferenceID:   in.saleID,
		Notes:         in.notes,
		CreatedBy:     in.userID,
	}
	if err := movementRepo.Create(movement); err != nil {
		return nil, err
	}

	now := time.Now()
	account.Balance = newBalance
	account.LastPurchaseDate = &now
	if err := accountRepo.Save(account); err != nil {
		return nil, err
	}
	return movement, nil
}
