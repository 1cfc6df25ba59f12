package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cuentas-pro/internal/domain/entity"
	"github.com/tu-usuario/cuentas-pro/internal/domain/repository"
)

// CreateChargeRequest body para POST /api/accounts/:customerId/charges.
// SaleID opcional referencia la venta de origen.
type CreateChargeRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	SaleID      string          `json:"sale_id,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// CreatePaymentRequest body para POST /api/accounts/:customerId/payments.
type CreatePaymentRequest struct {
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethodID string          `json:"payment_method_id"`
	Description     string          `json:"description,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

// Tipos de recargo.
const (
	SurchargePercentage = "percentage"
	SurchargeFixed      = "fixed"
)

// SurchargeRequest body para POST /api/accounts/:customerId/surcharges.
type SurchargeRequest struct {
	SurchargeType string          `json:"surcharge_type"` // percentage | fixed
	Value         decimal.Decimal `json:"value"`
	Description   string          `json:"description,omitempty"`
}

// AdjustmentRequest body para POST /api/accounts/:customerId/adjustments.
// Amount puede ser positivo o negativo (vía privilegiada, solo admin).
type AdjustmentRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Description   string          `json:"description"`
	ReferenceType string          `json:"reference_type,omitempty"`
	ReferenceID   string          `json:"reference_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// UpdateAccountRequest body para PUT /api/accounts/:customerId.
// Solo los campos presentes se actualizan.
type UpdateAccountRequest struct {
	CreditLimit *decimal.Decimal `json:"credit_limit,omitempty"`
	Status      *string          `json:"status,omitempty"`
}

// AccountFiltersRequest query params para GET /api/accounts.
type AccountFiltersRequest struct {
	Status    string `query:"status"`
	HasDebt   bool   `query:"has_debt"`
	IsOverdue bool   `query:"is_overdue"`
	Search    string `query:"search"`
	Page      int    `query:"page"`
	Limit     int    `query:"limit"`
}

// AccountResponse cuenta corriente en respuestas.
type AccountResponse struct {
	ID               string          `json:"id"`
	CustomerID       string          `json:"customer_id"`
	CustomerName     string          `json:"customer_name,omitempty"`
	Balance          decimal.Decimal `json:"balance"`
	CreditLimit      decimal.Decimal `json:"credit_limit"`
	Status           string          `json:"status"`
	DaysOverdue      int             `json:"days_overdue"`
	PaymentTermDays  int             `json:"payment_term_days"`
	LastPaymentDate  *time.Time      `json:"last_payment_date,omitempty"`
	LastPurchaseDate *time.Time      `json:"last_purchase_date,omitempty"`
}

// NewAccountResponse mapea la entidad a la respuesta.
func NewAccountResponse(a *entity.Account) AccountResponse {
	return AccountResponse{
		ID:               a.ID,
		CustomerID:       a.CustomerID,
		Balance:          a.Balance,
		CreditLimit:      a.CreditLimit,
		Status:           string(a.Status),
		DaysOverdue:      a.DaysOverdue,
		PaymentTermDays:  a.PaymentTermDays,
		LastPaymentDate:  a.LastPaymentDate,
		LastPurchaseDate: a.LastPurchaseDate,
	}
}

// NewAccountWithCustomerResponse mapea cuenta + cliente para listados.
func NewAccountWithCustomerResponse(item *repository.AccountWithCustomer) AccountResponse {
	resp := NewAccountResponse(&item.Account)
	resp.CustomerName = item.Customer.FullName()
	return resp
}

// MovementResponse movimiento en respuestas.
type MovementResponse struct {
	ID              string          `json:"id"`
	AccountID       string          `json:"account_id"`
	MovementType    string          `json:"movement_type"`
	Amount          decimal.Decimal `json:"amount"`
	BalanceBefore   decimal.Decimal `json:"balance_before"`
	BalanceAfter    decimal.Decimal `json:"balance_after"`
	Description     string          `json:"description"`
	ReferenceType   string          `json:"reference_type,omitempty"`
	ReferenceID     string          `json:"reference_id,omitempty"`
	PaymentMethodID string          `json:"payment_method_id,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	CreatedBy       string          `json:"created_by,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

// NewMovementResponse mapea la entidad a la respuesta.
func NewMovementResponse(m *entity.AccountMovement) MovementResponse {
	return MovementResponse{
		ID:              m.ID,
		AccountID:       m.AccountID,
		MovementType:    string(m.Type),
		Amount:          m.Amount,
		BalanceBefore:   m.BalanceBefore,
		BalanceAfter:    m.BalanceAfter,
		Description:     m.Description,
		ReferenceType:   m.ReferenceType,
		ReferenceID:     m.ReferenceID,
		PaymentMethodID: m.PaymentMethodID,
		Notes:           m.Notes,
		CreatedBy:       m.CreatedBy,
		CreatedAt:       m.CreatedAt,
	}
}

// StatementSummary resumen del estado de cuenta.
type StatementSummary struct {
	TotalCharges     decimal.Decimal `json:"total_charges"`
	TotalPayments    decimal.Decimal `json:"total_payments"`
	CurrentBalance   decimal.Decimal `json:"current_balance"`
	CustomerPosition string          `json:"customer_position"` // customer_owes | business_owes | settled
}

// StatementResponse estado de cuenta paginado.
type StatementResponse struct {
	Account    AccountResponse    `json:"account"`
	Movements  []MovementResponse `json:"movements"`
	Summary    StatementSummary   `json:"summary"`
	Pagination Pagination         `json:"pagination"`
}

// AccountListResponse listado paginado de cuentas.
type AccountListResponse struct {
	Data       []AccountResponse `json:"data"`
	Pagination Pagination        `json:"pagination"`
}

// StatsResponse estadísticas globales de cuentas corrientes.
type StatsResponse struct {
	TotalAccounts     int             `json:"total_accounts"`
	ActiveAccounts    int             `json:"active_accounts"`
	SuspendedAccounts int             `json:"suspended_accounts"`
	TotalDebtors      int             `json:"total_debtors"`
	TotalDebt         decimal.Decimal `json:"total_debt"`
	AverageDebt       decimal.Decimal `json:"average_debt"`
	OverdueAccounts   int             `json:"overdue_accounts"`
	TotalOverdue      decimal.Decimal `json:"total_overdue"`
}

// OverdueAlertResponse alerta de deudor moroso.
type OverdueAlertResponse struct {
	CustomerID      string          `json:"customer_id"`
	CustomerName    string          `json:"customer_name"`
	Balance         decimal.Decimal `json:"balance"`
	DaysOverdue     int             `json:"days_overdue"`
	LastPaymentDate *time.Time      `json:"last_payment_date,omitempty"`
}

// SyncedCharge cargo creado por el backfill.
type SyncedCharge struct {
	SaleID     string          `json:"sale_id"`
	SaleNumber string          `json:"sale_number"`
	Amount     decimal.Decimal `json:"amount"`
}

// SyncResponse resultado de la sincronización de cargos faltantes.
type SyncResponse struct {
	ChargesCreated int             `json:"charges_created"`
	TotalAmount    decimal.Decimal `json:"total_amount"`
	Sales          []SyncedCharge  `json:"sales"`
}

// RecomputeOverdueResponse resultado del recálculo de mora.
type RecomputeOverdueResponse struct {
	Updated   int `json:"updated"`
	Suspended int `json:"suspended"`
}
