package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashRegisterStatus estado de una caja.
type CashRegisterStatus string

const (
	CashRegisterOpen   CashRegisterStatus = "open"
	CashRegisterClosed CashRegisterStatus = "closed"
)

// CashRegister es una sesión de caja (apertura/cierre del turno).
type CashRegister struct {
	ID        string
	Status    CashRegisterStatus
	OpenedBy  string
	OpenedAt  time.Time
	ClosedAt  *time.Time
	CreatedAt time.Time
}

// CashMovement es un ingreso o egreso registrado en una caja abierta.
// Los pagos de cuenta corriente se registran aquí como ingreso, después
// del commit del movimiento de cuenta (mejor esfuerzo).
type CashMovement struct {
	ID                string
	CashRegisterID    string
	Type              string // income | expense
	Amount            decimal.Decimal
	Description       string
	PaymentMethodID   string
	AccountMovementID string // referencia al movimiento de cuenta corriente
	CreatedBy         string
	CreatedAt         time.Time
}
