package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias de infraestructura).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrCustomerNotFound   = errors.New("cliente no encontrado")
	ErrAccountNotFound    = errors.New("cuenta no encontrada")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrAccountSuspended   = errors.New("la cuenta del cliente está suspendida, no se pueden agregar cargos")
	ErrNoPendingDebt      = errors.New("el cliente no tiene deuda pendiente")
	ErrDuplicateMovement  = errors.New("ya existe un movimiento para esa referencia")
	ErrNoOpenCashRegister = errors.New("no hay una caja abierta")
)

// CreditLimitExceededError se retorna cuando un cargo superaría el límite de
// crédito de la cuenta. El mensaje es contrato: los callers lo muestran tal cual.
type CreditLimitExceededError struct {
	CreditLimit decimal.Decimal
	Balance     decimal.Decimal
}

func (e *CreditLimitExceededError) Error() string {
	return fmt.Sprintf("el cliente ha excedido su límite de crédito ($%s), saldo actual: $%s",
		e.CreditLimit.StringFixed(2), e.Balance.StringFixed(2))
}

// PaymentExceedsDebtError se retorna cuando un pago supera la deuda pendiente.
type PaymentExceedsDebtError struct {
	Amount  decimal.Decimal
	Balance decimal.Decimal
}

func (e *PaymentExceedsDebtError) Error() string {
	return fmt.Sprintf("el pago ($%s) excede la deuda pendiente ($%s)",
		e.Amount.StringFixed(2), e.Balance.StringFixed(2))
}
