package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementType tipo de movimiento de cuenta corriente.
type MovementType string

const (
	MovementCharge     MovementType = "charge"     // aumenta la deuda (venta)
	MovementPayment    MovementType = "payment"    // disminuye la deuda
	MovementAdjustment MovementType = "adjustment" // corrección con signo libre
	MovementInterest   MovementType = "interest"   // recargo por mora
)

// Tipos de referencia de un movimiento hacia su operación de origen.
const (
	ReferenceSale       = "sale"
	ReferencePayment    = "payment"
	ReferenceSurcharge  = "surcharge"
	ReferenceAdjustment = "adjustment"
	ReferenceManual     = "manual"
)

// AccountMovement es una entrada inmutable del log de movimientos.
// Nunca se edita ni se borra: las correcciones se expresan como nuevos
// movimientos de tipo adjustment.
// Invariante: BalanceAfter = BalanceBefore + Amount, y el BalanceBefore de un
// movimiento coincide con el BalanceAfter del anterior de la misma cuenta.
type AccountMovement struct {
	ID              string
	AccountID       string
	Type            MovementType
	Amount          decimal.Decimal // positivo = aumenta deuda, negativo = disminuye
	BalanceBefore   decimal.Decimal
	BalanceAfter    decimal.Decimal
	Description     string
	ReferenceType   string
	ReferenceID     string // id de la venta/pago/ajuste de origen (opcional)
	PaymentMethodID string // solo para pagos
	Notes           string
	CreatedBy       string
	CreatedAt       time.Time
}

// MovementTotals suma de amounts por tipo para una cuenta (estado de cuenta).
type MovementTotals struct {
	TotalCharges  decimal.Decimal // suma de movimientos de tipo charge
	TotalPayments decimal.Decimal // valor absoluto de la suma de pagos
}
