package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cuentas-pro/internal/domain/entity"
)

// CreateSaleRequest body para POST /api/sales.
// IsOnAccount=true registra la venta a cuenta corriente (genera el cargo).
type CreateSaleRequest struct {
	CustomerID  string          `json:"customer_id"`
	Total       decimal.Decimal `json:"total"`
	IsOnAccount bool            `json:"is_on_account"`
}

// SaleResponse venta en respuestas.
type SaleResponse struct {
	ID          string          `json:"id"`
	SaleNumber  string          `json:"sale_number"`
	CustomerID  string          `json:"customer_id"`
	Total       decimal.Decimal `json:"total"`
	Status      string          `json:"status"`
	IsOnAccount bool            `json:"is_on_account"`
	SaleDate    time.Time       `json:"sale_date"`
}

// NewSaleResponse mapea la entidad a la respuesta.
func NewSaleResponse(s *entity.Sale) SaleResponse {
	return SaleResponse{
		ID:          s.ID,
		SaleNumber:  s.SaleNumber,
		CustomerID:  s.CustomerID,
		Total:       s.Total,
		Status:      string(s.Status),
		IsOnAccount: s.IsOnAccount,
		SaleDate:    s.SaleDate,
	}
}

// IncomeResponse ingreso en respuestas (transacciones pendientes).
type IncomeResponse struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	IsPaid      bool            `json:"is_paid"`
	IncomeDate  time.Time       `json:"income_date"`
}

// NewIncomeResponse mapea la entidad a la respuesta.
func NewIncomeResponse(i *entity.Income) IncomeResponse {
	return IncomeResponse{
		ID:          i.ID,
		CustomerID:  i.CustomerID,
		Description: i.Description,
		Amount:      i.Amount,
		IsPaid:      i.IsPaid,
		IncomeDate:  i.IncomeDate,
	}
}

// PendingTransactionsResponse ventas e ingresos a cuenta sin saldar.
type PendingTransactionsResponse struct {
	Sales   []SaleResponse   `json:"sales"`
	Incomes []IncomeResponse `json:"incomes"`
}
