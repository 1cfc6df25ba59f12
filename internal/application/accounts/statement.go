package accounts

import (
	"context"
	"fmt"

	"github.com/tu-usuario/cuentas-pro/internal/application/dto"
	"github.com/tu-usuario/cuentas-pro/internal/domain"
	"github.com/tu-usuario/cuentas-pro/internal/domain/entity"
	"github.com/tu-usuario/cuentas-pro/internal/domain/repository"
)

// GetAccount devuelve la cuenta corriente del cliente, creándola si no existe.
func (uc *UseCase) GetAccount(ctx context.Context, customerID string) (*dto.AccountResponse, error) {
	account, err := uc.GetOrCreateAccount(ctx, customerID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewAccountResponse(account)
	return &resp, nil
}

// GetStatement arma el estado de cuenta: datos de la cuenta, movimientos
// paginados (recientes primero) y totales agregados por tipo.
func (uc *UseCase) GetStatement(ctx context.Context, customerID string, page dto.PageRequest) (*dto.StatementResponse, error) {
	page.DefaultPage()

	account, err := uc.GetOrCreateAccount(ctx, customerID)
	if err != nil {
		return nil, err
	}

	offset := (page.Page - 1) * page.Limit
	movements, total, err := uc.movementRepo.ListByAccount(account.ID, page.Limit, offset)
	if err != nil {
		return nil, err
	}
	totals, err := uc.movementRepo.TotalsByAccount(account.ID)
	if err != nil {
		return nil, err
	}

	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, dto.NewMovementResponse(m))
	}

	return &dto.StatementResponse{
		Account:   dto.NewAccountResponse(account),
		Movements: items,
		Summary: dto.StatementSummary{
			TotalCharges:     totals.TotalCharges,
			TotalPayments:    totals.TotalPayments,
			CurrentBalance:   account.Balance,
			CustomerPosition: string(account.Position()),
		},
		Pagination: dto.NewPagination(total, page.Page, page.Limit),
	}, nil
}

// ListAccounts lista cuentas con filtros de estado, deuda, mora y búsqueda
// por nombre del cliente.
func (uc *UseCase) ListAccounts(ctx context.Context, req dto.AccountFiltersRequest) (*dto.AccountListResponse, error) {
	page := dto.PageRequest{Page: req.Page, Limit: req.Limit}
	page.DefaultPage()

	filters := repository.AccountFilters{
		Status:    entity.AccountStatus(req.Status),
		HasDebt:   req.HasDebt,
		IsOverdue: req.IsOverdue,
		Search:    req.Search,
		Limit:     page.Limit,
		Offset:    (page.Page - 1) * page.Limit,
	}
	items, total, err := uc.accountRepo.List(filters)
	if err != nil {
		return nil, err
	}

	data := make([]dto.AccountResponse, 0, len(items))
	for _, item := range items {
		data = append(data, dto.NewAccountWithCustomerResponse(item))
	}
	return &dto.AccountListResponse{
		Data:       data,
		Pagination: dto.NewPagination(total, page.Page, page.Limit),
	}, nil
}

// Debtors lista las cuentas con deuda pendiente, mayor deuda primero.
func (uc *UseCase) Debtors(ctx context.Context) ([]dto.AccountResponse, error) {
	items, err := uc.accountRepo.Debtors()
	if err != nil {
		return nil, err
	}
	data := make([]dto.AccountResponse, 0, len(items))
	for _, item := range items {
		data = append(data, dto.NewAccountWithCustomerResponse(item))
	}
	return data, nil
}

// Stats devuelve las estadísticas globales de cuentas corrientes.
func (uc *UseCase) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	stats, err := uc.accountRepo.Stats()
	if err != nil {
		return nil, err
	}
	return &dto.StatsResponse{
		TotalAccounts:     stats.TotalAccounts,
		ActiveAccounts:    stats.ActiveAccounts,
		SuspendedAccounts: stats.SuspendedAccounts,
		TotalDebtors:      stats.TotalDebtors,
		TotalDebt:         stats.TotalDebt,
		AverageDebt:       stats.AverageDebt,
		OverdueAccounts:   stats.OverdueAccounts,
		TotalOverdue:      stats.TotalOverdue,
	}, nil
}

// OverdueAlerts lista los deudores morosos para el tablero de alertas.
func (uc *UseCase) OverdueAlerts(ctx context.Context) ([]dto.OverdueAlertResponse, error) {
	alerts, err := uc.accountRepo.OverdueAlerts()
	if err != nil {
		return nil, err
	}
	data := make([]dto.OverdueAlertResponse, 0, len(alerts))
	for _, a := range alerts {
		data = append(data, dto.OverdueAlertResponse{
			CustomerID:      a.CustomerID,
			CustomerName:    a.CustomerName,
			Balance:         a.Balance,
			DaysOverdue:     a.DaysOverdue,
			LastPaymentDate: a.LastPaymentDate,
		})
	}
	return data, nil
}

// GetPendingTransactions lista las ventas e ingresos a cuenta corriente sin
// saldar del cliente (lo que el backfill tomaría como fuente de verdad).
func (uc *UseCase) GetPendingTransactions(ctx context.Context, customerID string) (*dto.PendingTransactionsResponse, error) {
	sales, err := uc.saleRepo.ListPendingOnAccount(customerID)
	if err != nil {
		return nil, err
	}
	incomes, err := uc.incomeRepo.ListPendingOnAccount(customerID)
	if err != nil {
		return nil, err
	}

	resp := &dto.PendingTransactionsResponse{
		Sales:   make([]dto.SaleResponse, 0, len(sales)),
		Incomes: make([]dto.IncomeResponse, 0, len(incomes)),
	}
	for _, s := range sales {
		resp.Sales = append(resp.Sales, dto.NewSaleResponse(s))
	}
	for _, i := range incomes {
		resp.Incomes = append(resp.Incomes, dto.NewIncomeResponse(i))
	}
	return resp, nil
}

// UpdateAccount actualiza límite de crédito y/o estado de la cuenta. Corre
// bajo el lock de la cuenta para no pisar una mutación de saldo concurrente.
func (uc *UseCase) UpdateAccount(ctx context.Context, customerID string, req dto.UpdateAccountRequest) (*dto.AccountResponse, error) {
	if req.Status != nil {
		switch entity.AccountStatus(*req.Status) {
		case entity.AccountActive, entity.AccountSuspended, entity.AccountClosed:
		default:
			return nil, fmt.Errorf("%w: estado de cuenta inválido %q", domain.ErrInvalidInput, *req.Status)
		}
	}
	if req.CreditLimit != nil && req.CreditLimit.IsNegative() {
		return nil, fmt.Errorf("%w: el límite de crédito no puede ser negativo", domain.ErrInvalidInput)
	}

	var updated *entity.Account
	err := uc.tx.RunLedger(ctx, func(
		accountRepo repository.AccountRepository,
		_ repository.MovementRepository,
		_ repository.SaleRepository,
		_ repository.IncomeRepository,
	) error {
		account, err := lockAccount(accountRepo, customerID)
		if err != nil {
			return err
		}
		if req.CreditLimit != nil {
			account.CreditLimit = *req.CreditLimit
		}
		if req.Status != nil {
			account.Status = entity.AccountStatus(*req.Status)
		}
		if err := accountRepo.Save(account); err != nil {
			return err
		}
		updated = account
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := dto.NewAccountResponse(updated)
	return &resp, nil
}

// SuspendAccount suspende la cuenta del cliente (bloquea nuevos cargos).
func (uc *UseCase) SuspendAccount(ctx context.Context, customerID string) (*dto.AccountResponse, error) {
	status := string(entity.AccountSuspended)
	return uc.UpdateAccount(ctx, customerID, dto.UpdateAccountRequest{Status: &status})
}

// ActivateAccount reactiva una cuenta suspendida.
func (uc *UseCase) ActivateAccount(ctx context.Context, customerID string) (*dto.AccountResponse, error) {
	status := string(entity.AccountActive)
	return uc.UpdateAccount(ctx, customerID, dto.UpdateAccountRequest{Status: &status})
}
