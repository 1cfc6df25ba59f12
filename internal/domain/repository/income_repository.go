package repository

import "github.com/tu-usuario/cuentas-pro/internal/domain/entity"

// IncomeRepository puerto de persistencia de ingresos varios.
type IncomeRepository interface {
	Create(income *entity.Income) error
	ListPendingOnAccount(customerID string) ([]*entity.Income, error)
	// MarkPaidOnAccount marca en bloque los ingresos a cuenta sin pagar del
	// cliente como pagados. Devuelve cuántas filas cambió.
	MarkPaidOnAccount(customerID string) (int, error)
}
