package repository

import "github.com/tu-usuario/cuentas-pro/internal/domain/entity"

// CashRepository puerto de persistencia del subsistema de caja.
type CashRepository interface {
	// GetOpenRegister devuelve la caja abierta, o nil si no hay ninguna.
	GetOpenRegister() (*entity.CashRegister, error)
	CreateMovement(movement *entity.CashMovement) error
}
