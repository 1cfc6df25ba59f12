package repository

import "github.com/tu-usuario/cuentas-pro/internal/domain/entity"

// AccountFilters filtros para listar cuentas corrientes.
type AccountFilters struct {
	Status    entity.AccountStatus // vacío = todas
	HasDebt   bool
	IsOverdue bool
	Search    string // busca en nombre/apellido del cliente
	Limit     int
	Offset    int
}

// AccountWithCustomer cuenta más los datos mínimos del cliente para listados.
type AccountWithCustomer struct {
	Account  entity.Account
	Customer entity.Customer
}

// OverdueRecomputeResult resultado del recálculo masivo de mora.
type OverdueRecomputeResult struct {
	Updated   int // cuentas recalculadas
	Suspended int // cuentas que pasaron a suspended en esta corrida
}

// AccountRepository puerto de persistencia de cuentas corrientes.
//
// GetByCustomerIDForUpdate bloquea la fila de la cuenta (SELECT ... FOR UPDATE)
// hasta el fin de la transacción del Querier al que esté atado el repo; es el
// único punto de serialización de las mutaciones de saldo.
type AccountRepository interface {
	Create(account *entity.Account) error
	GetByCustomerID(customerID string) (*entity.Account, error)
	GetByCustomerIDForUpdate(customerID string) (*entity.Account, error)
	Save(account *entity.Account) error
	List(filters AccountFilters) ([]*AccountWithCustomer, int, error)
	Debtors() ([]*AccountWithCustomer, error)
	OverdueAlerts() ([]*entity.OverdueAlert, error)
	Stats() (*entity.AccountStats, error)
	// RecomputeOverdue ejecuta el recálculo masivo e idempotente de días de
	// mora sobre las cuentas con deuda, suspendiendo las activas que superen
	// suspendAfterDays de mora.
	RecomputeOverdue(suspendAfterDays int) (*OverdueRecomputeResult, error)
}
