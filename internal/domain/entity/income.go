package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Income es un ingreso registrado fuera del flujo de ventas (servicios,
// cobros varios). Con IsOnAccount=true e IsPaid=false cuenta como
// transacción pendiente del cliente.
type Income struct {
	ID          string
	CustomerID  string
	Description string
	Amount      decimal.Decimal
	IsPaid      bool
	IsOnAccount bool
	IncomeDate  time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
