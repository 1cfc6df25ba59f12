package accounts

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cuentas-pro/internal/application/dto"
	"github.com/tu-usuario/cuentas-pro/internal/domain/entity"
	"github.com/tu-usuario/cuentas-pro/internal/domain/repository"
)

// SyncMissingCharges crea los cargos que faltan para las ventas a cuenta
// corriente pendientes del cliente: la diferencia de conjuntos entre las
// ventas pendientes y los referenceIds ya cubiertos por un cargo. Procesa en
// orden cronológico para que los snapshots balanceBefore/After encadenen, y
// es idempotente: una segunda corrida no crea nada.
//
// El backfill registra ventas que ya ocurrieron, por eso no pasa por los
// controles de suspensión ni de límite de crédito del cargo normal.
func (uc *UseCase) SyncMissingCharges(ctx context.Context, customerID, userID string) (*dto.SyncResponse, error) {
	if _, err := uc.GetOrCreateAccount(ctx, customerID); err != nil {
		return nil, err
	}

	result := &dto.SyncResponse{TotalAmount: decimal.Zero, Sales: []dto.SyncedCharge{}}
	err := uc.tx.RunLedger(ctx, func(
		accountRepo repository.AccountRepository,
		movementRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
		_ repository.IncomeRepository,
	) error {
		account, err := lockAccount(accountRepo, customerID)
		if err != nil {
			return err
		}

		pending, err := saleRepo.ListPendingOnAccount(customerID)
		if err != nil {
			return err
		}
		covered, err := movementRepo.ChargeReferenceIDs(account.ID, entity.ReferenceSale)
		if err != nil {
			return err
		}

		balance := account.Balance
		for _, sale := range pending {
			if _, ok := covered[sale.ID]; ok {
				continue
			}
			amount := sale.Total.Abs()
			newBalance := balance.Add(amount)
			movement := &entity.AccountMovement{
				AccountID:     account.ID,
				Type:          entity.MovementCharge,
				Amount:        amount,
				BalanceBefore: balance,
				BalanceAfter:  newBalance,
				Description:   fmt.Sprintf("Venta %s (sincronización)", sale.SaleNumber),
				ReferenceType: entity.ReferenceSale,
				ReferenceID:   sale.ID,
				CreatedBy:     userID,
			}
			if err := movementRepo.Create(movement); err != nil {
				return err
			}
			balance = newBalance

			result.ChargesCreated++
			result.TotalAmount = result.TotalAmount.Add(amount)
			result.Sales = append(result.Sales, dto.SyncedCharge{
				SaleID:     sale.ID,
				SaleNumber: sale.SaleNumber,
				Amount:     amount,
			})
		}

		if result.ChargesCreated == 0 {
			return nil
		}

		now := time.Now()
		account.Balance = balance
		account.LastPurchaseDate = &now
		return accountRepo.Save(account)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("customer_id", customerID).
		Int("charges_created", result.ChargesCreated).
		Str("total_amount", result.TotalAmount.StringFixed(2)).
		Msg("sincronización de cargos completada")

	return result, nil
}
