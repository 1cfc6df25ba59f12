package accounts

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cuentas-pro/internal/domain/entity"
	"github.com/tu-usuario/cuentas-pro/internal/domain/repository"
)

// TxRunner ejecuta una unidad de trabajo del libro de cuentas dentro de una
// transacción. Los repos que recibe el callback están atados a esa
// transacción: el lock de GetByCustomerIDForUpdate vive hasta el Commit o
// Rollback.
type TxRunner interface {
	RunLedger(ctx context.Context, fn func(
		accountRepo repository.AccountRepository,
		movementRepo repository.MovementRepository,
		saleRepo repository.SaleRepository,
		incomeRepo repository.IncomeRepository,
	) error) error
}

// CashPayment datos de un pago de cuenta corriente a reflejar en caja.
type CashPayment struct {
	Amount            decimal.Decimal
	PaymentMethodID   string
	Description       string
	AccountMovementID string
}

// CashRegister puerto hacia el subsistema de caja. El registro en caja ocurre
// estrictamente después del commit del pago y es de mejor esfuerzo: un error
// aquí nunca revierte el pago ya confirmado.
type CashRegister interface {
	RegisterAccountPayment(ctx context.Context, payment CashPayment, userID string) error
}

// StatementPDFGenerator puerto de generación del estado de cuenta en PDF.
type StatementPDFGenerator interface {
	GenerateStatementPDF(
		ctx context.Context,
		customer *entity.Customer,
		account *entity.Account,
		movements []*entity.AccountMovement,
		totals *entity.MovementTotals,
	) ([]byte, error)
}
