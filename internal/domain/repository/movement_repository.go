package repository

import "github.com/tu-usuario/cuentas-pro/internal/domain/entity"

// MovementRepository puerto de persistencia del log de movimientos.
// El log es append-only: no hay Update ni Delete.
type MovementRepository interface {
	Create(movement *entity.AccountMovement) error
	// ListByAccount pagina los movimientos de una cuenta, más recientes primero.
	// Devuelve también el total para la paginación.
	ListByAccount(accountID string, limit, offset int) ([]*entity.AccountMovement, int, error)
	// TotalsByAccount suma los amounts por tipo (agregado en SQL).
	TotalsByAccount(accountID string) (*entity.MovementTotals, error)
	// ChargeReferenceIDs devuelve los referenceIds ya cubiertos por un cargo
	// de la cuenta para un referenceType dado (insumo del backfill).
	ChargeReferenceIDs(accountID, referenceType string) (map[string]struct{}, error)
}
