package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountStatus estado de una cuenta corriente.
type AccountStatus string

const (
	AccountActive    AccountStatus = "active"
	AccountSuspended AccountStatus = "suspended"
	AccountClosed    AccountStatus = "closed"
)

// Account es la cuenta corriente de un cliente (una por cliente).
// Balance positivo = el cliente debe; negativo = el negocio debe; cero = saldada.
// Invariante central: Balance == suma de los amounts de sus movimientos.
type Account struct {
	ID               string
	CustomerID       string
	Balance          decimal.Decimal
	CreditLimit      decimal.Decimal // 0 = sin límite
	Status           AccountStatus
	DaysOverdue      int
	PaymentTermDays  int // plazo de pago antes de contar mora
	LastPaymentDate  *time.Time
	LastPurchaseDate *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasDebt indica si el cliente tiene deuda pendiente.
func (a *Account) HasDebt() bool {
	return a.Balance.GreaterThan(decimal.Zero)
}

// CustomerPosition posición del cliente según el saldo.
type CustomerPosition string

const (
	PositionCustomerOwes CustomerPosition = "customer_owes"
	PositionBusinessOwes CustomerPosition = "business_owes"
	PositionSettled      CustomerPosition = "settled"
)

// Position determina la posición del cliente según el balance.
func (a *Account) Position() CustomerPosition {
	switch {
	case a.Balance.GreaterThan(decimal.Zero):
		return PositionCustomerOwes
	case a.Balance.LessThan(decimal.Zero):
		return PositionBusinessOwes
	default:
		return PositionSettled
	}
}

// AccountStats estadísticas globales de cuentas corrientes.
type AccountStats struct {
	TotalAccounts     int
	ActiveAccounts    int
	SuspendedAccounts int
	TotalDebtors      int
	TotalDebt         decimal.Decimal
	AverageDebt       decimal.Decimal
	OverdueAccounts   int
	TotalOverdue      decimal.Decimal
}

// OverdueAlert alerta de deudor moroso.
type OverdueAlert struct {
	CustomerID      string
	CustomerName    string
	Balance         decimal.Decimal
	DaysOverdue     int
	LastPaymentDate *time.Time
}
