// Package accounts implementa el núcleo de cuentas corrientes: cargos, pagos,
// recargos y ajustes sobre el saldo de cada cliente, con un log de movimientos
// append-only como pista de auditoría.
//
// Toda mutación de saldo corre dentro de una transacción que bloquea la fila
// de la cuenta (FOR UPDATE) vía TxRunner; dos operaciones concurrentes sobre
// el mismo cliente se serializan y ninguna lee un saldo viejo.
package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cuentas-pro/internal/domain"
	"github.com/tu-usuario/cuentas-pro/internal/domain/entity"
	"github.com/tu-usuario/cuentas-pro/internal/domain/repository"
	"github.com/tu-usuario/cuentas-pro/pkg/logger"
)

const (
	// defaultPaymentTermDays plazo de pago de las cuentas creadas on-demand.
	defaultPaymentTermDays = 30
	// suspendAfterDays días de mora a partir de los cuales el recálculo
	// diario suspende cuentas activas.
	suspendAfterDays = 30
)

// UseCase orquesta las operaciones de cuentas corrientes.
type UseCase struct {
	tx           TxRunner
	accountRepo  repository.AccountRepository // lecturas fuera de transacción
	movementRepo repository.MovementRepository
	saleRepo     repository.SaleRepository
	incomeRepo   repository.IncomeRepository
	customerRepo repository.CustomerRepository
	cash         CashRegister
	pdf          StatementPDFGenerator
	log          *logger.Logger
}

// NewUseCase construye el caso de uso con sus dependencias.
func NewUseCase(
	tx TxRunner,
	accountRepo repository.AccountRepository,
	movementRepo repository.MovementRepository,
	saleRepo repository.SaleRepository,
	incomeRepo repository.IncomeRepository,
	customerRepo repository.CustomerRepository,
	cash CashRegister,
	pdf StatementPDFGenerator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		tx:           tx,
		accountRepo:  accountRepo,
		movementRepo: movementRepo,
		saleRepo:     saleRepo,
		incomeRepo:   incomeRepo,
		customerRepo: customerRepo,
		cash:         cash,
		pdf:          pdf,
		log:          log,
	}
}

// GetOrCreateAccount devuelve la cuenta del cliente, creándola con los
// valores por defecto si todavía no existe. La creación tolera carreras: si
// dos requests crean a la vez, una inserta y la otra relee la misma fila.
func (uc *UseCase) GetOrCreateAccount(ctx context.Context, customerID string) (*entity.Account, error) {
	account, err := uc.accountRepo.GetByCustomerID(customerID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, domain.ErrAccountNotFound) {
		return nil, err
	}
	if err := uc.ensureAccount(customerID); err != nil {
		return nil, err
	}
	return uc.accountRepo.GetByCustomerID(customerID)
}

// ensureAccount crea la cuenta del cliente si no existe. Verifica primero que
// el cliente exista: una cuenta sin cliente no tiene sentido.
func (uc *UseCase) ensureAccount(customerID string) error {
	if _, err := uc.customerRepo.GetByID(customerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrCustomerNotFound
		}
		return err
	}
	account := &entity.Account{
		CustomerID:      customerID,
		Balance:         decimal.Zero,
		CreditLimit:     decimal.Zero,
		Status:          entity.AccountActive,
		PaymentTermDays: defaultPaymentTermDays,
	}
	if err := uc.accountRepo.Create(account); err != nil {
		return fmt.Errorf("crear cuenta del cliente %s: %w", customerID, err)
	}
	return nil
}

// lockAccount obtiene la cuenta del cliente bloqueada para la transacción en
// curso. El lock es el punto único de serialización de todo el módulo.
func lockAccount(accountRepo repository.AccountRepository, customerID string) (*entity.Account, error) {
	account, err := accountRepo.GetByCustomerIDForUpdate(customerID)
	if err != nil {
		return nil, err
	}
	return account, nil
}
