package repository

import "github.com/tu-usuario/cuentas-pro/internal/domain/entity"

// SaleRepository puerto de persistencia de ventas.
type SaleRepository interface {
	Create(sale *entity.Sale) error
	GetByID(id string) (*entity.Sale, error)
	List(limit, offset int) ([]*entity.Sale, error)
	// ListPendingOnAccount lista las ventas a cuenta corriente sin saldar del
	// cliente, más antiguas primero (orden cronológico para el backfill).
	ListPendingOnAccount(customerID string) ([]*entity.Sale, error)
	// SettlePendingOnAccount marca en bloque las ventas pendientes a cuenta
	// del cliente como completadas. Devuelve cuántas filas cambió.
	SettlePendingOnAccount(customerID string) (int, error)
	// LastNumberForUpdate devuelve el último número emitido de la serie
	// prefijo/año bloqueando la fila (FOR UPDATE) hasta el fin de la
	// transacción. Vacío si no hay documentos en el año. Es el dominio de
	// lock propio del generador de numeración, independiente del lock de
	// cuentas.
	LastNumberForUpdate(prefix string, year int) (string, error)
}
