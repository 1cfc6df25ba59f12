package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleStatus estado de una venta.
type SaleStatus string

const (
	SalePending   SaleStatus = "pending"   // a cuenta corriente, sin saldar
	SaleCompleted SaleStatus = "completed" // pagada
	SaleCancelled SaleStatus = "cancelled"
)

// Sale es una venta del punto de venta. Cuando IsOnAccount es true y el
// estado es pending, la venta es una transacción pendiente de la cuenta
// corriente del cliente (fuente de verdad del backfill de cargos).
type Sale struct {
	ID          string
	SaleNumber  string // VENTA-2025-00001
	CustomerID  string
	Total       decimal.Decimal
	Status      SaleStatus
	IsOnAccount bool
	SaleDate    time.Time
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
