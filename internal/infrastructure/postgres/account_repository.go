package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/cuentas-pro/internal/domain"
	"github.com/tu-usuario/cuentas-pro/internal/domain/entity"
	"github.com/tu-usuario/cuentas-pro/internal/domain/repository"
)

var _ repository.AccountRepository = (*AccountRepo)(nil)

const accountColumns = `id, customer_id, balance, credit_limit, status, days_overdue,
	payment_term_days, last_payment_date, last_purchase_date, created_at, updated_at`

// AccountRepo implementación de AccountRepository sobre PostgreSQL (usable con pool o tx).
type AccountRepo struct {
	q Querier
}

// NewAccountRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAccountRepository(q Querier) *AccountRepo {
	return &AccountRepo{q: q}
}

func scanAccount(row pgx.Row) (*entity.Account, error) {
	var a entity.Account
	err := row.Scan(
		&a.ID, &a.CustomerID, &a.Balance, &a.CreditLimit, &a.Status, &a.DaysOverdue,
		&a.PaymentTermDays, &a.LastPaymentDate, &a.LastPurchaseDate, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create persiste una cuenta nueva.
func (r *AccountRepo) Create(account *entity.Account) error {
	if account.ID == "" {
		account.ID = uuid.New().String()
	}
	if account.CreatedAt.IsZero() {
		now := time.Now()
		account.CreatedAt = now
		account.UpdatedAt = now
	}
	query := `
		INSERT INTO customer_accounts (id, customer_id, balance, credit_limit, status, days_overdue, payment_term_days, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		account.ID, account.CustomerID, account.Balance, account.CreditLimit,
		account.Status, account.DaysOverdue, account.PaymentTermDays,
		account.CreatedAt, account.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil // otro caller la creó primero; el retry con lock la encuentra
		}
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

// GetByCustomerID obtiene la cuenta de un cliente.
func (r *AccountRepo) GetByCustomerID(customerID string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM customer_accounts WHERE customer_id = $1`
	a, err := scanAccount(r.q.QueryRow(context.Background(), query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account: %w", err)
	}
	return a, nil
}

// GetByCustomerIDForUpdate obtiene la cuenta bloqueando la fila (SELECT FOR UPDATE).
// El lock se sostiene hasta el commit/rollback de la transacción del Querier.
func (r *AccountRepo) GetByCustomerIDForUpdate(customerID string) (*entity.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM customer_accounts WHERE customer_id = $1 FOR UPDATE`
	a, err := scanAccount(r.q.QueryRow(context.Background(), query, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("get account for update: %w", err)
	}
	return a, nil
}

// Save actualiza los campos mutables de la cuenta.
func (r *AccountRepo) Save(account *entity.Account) error {
	query := `
		UPDATE customer_accounts
		SET balance = $2, credit_limit = $3, status = $4, days_overdue = $5,
		    payment_term_days = $6, last_payment_date = $7, last_purchase_date = $8,
		    updated_at = now()
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		account.ID, account.Balance, account.CreditLimit, account.Status,
		account.DaysOverdue, account.PaymentTermDays,
		account.LastPaymentDate, account.LastPurchaseDate,
	)
	if err != nil {
		return fmt.Errorf("update account: %w", err)
	}
	return nil
}

// List lista cuentas con filtros, ordenadas por saldo descendente.
func (r *AccountRepo) List(filters repository.AccountFilters) ([]*repository.AccountWithCustomer, int, error) {
	where := " WHERE 1=1"
	args := []any{}
	pos := 1
	if filters.Status != "" {
		where += fmt.Sprintf(" AND a.status = $%d", pos)
		args = append(args, filters.Status)
		pos++
	}
	if filters.HasDebt {
		where += " AND a.balance > 0"
	}
	if filters.IsOverdue {
		where += " AND a.days_overdue > 0"
	}
	if filters.Search != "" {
		where += fmt.Sprintf(" AND (c.first_name ILIKE $%d OR c.last_name ILIKE $%d)", pos, pos)
		args = append(args, "%"+filters.Search+"%")
		pos++
	}

	var total int
	countQuery := `SELECT count(*) FROM customer_accounts a JOIN customers c ON c.id = a.customer_id` + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count accounts: %w", err)
	}

	query := `
		SELECT a.id, a.customer_id, a.balance, a.credit_limit, a.status, a.days_overdue,
		       a.payment_term_days, a.last_payment_date, a.last_purchase_date, a.created_at, a.updated_at,
		       c.first_name, c.last_name, c.email, c.phone
		FROM customer_accounts a
		JOIN customers c ON c.id = a.customer_id` + where +
		fmt.Sprintf(" ORDER BY a.balance DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, filters.Limit, filters.Offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	list, err := scanAccountsWithCustomer(rows)
	if err != nil {
		return nil, 0, err
	}
	return list, total, rows.Err()
}

// Debtors lista las cuentas con deuda, mayor deuda primero.
func (r *AccountRepo) Debtors() ([]*repository.AccountWithCustomer, error) {
	query := `
		SELECT a.id, a.customer_id, a.balance, a.credit_limit, a.status, a.days_overdue,
		       a.payment_term_days, a.last_payment_date, a.last_purchase_date, a.created_at, a.updated_at,
		       c.first_name, c.last_name, c.email, c.phone
		FROM customer_accounts a
		JOIN customers c ON c.id = a.customer_id
		WHERE a.balance > 0
		ORDER BY a.balance DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list debtors: %w", err)
	}
	defer rows.Close()

	list, err := scanAccountsWithCustomer(rows)
	if err != nil {
		return nil, err
	}
	return list, rows.Err()
}

func scanAccountsWithCustomer(rows pgx.Rows) ([]*repository.AccountWithCustomer, error) {
	var list []*repository.AccountWithCustomer
	for rows.Next() {
		var item repository.AccountWithCustomer
		a := &item.Account
		c := &item.Customer
		var email, phone *string
		if err := rows.Scan(
			&a.ID, &a.CustomerID, &a.Balance, &a.CreditLimit, &a.Status, &a.DaysOverdue,
			&a.PaymentTermDays, &a.LastPaymentDate, &a.LastPurchaseDate, &a.CreatedAt, &a.UpdatedAt,
			&c.FirstName, &c.LastName, &email, &phone,
		); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		c.ID = a.CustomerID
		c.Email = orEmpty(email)
		c.Phone = orEmpty(phone)
		list = append(list, &item)
	}
	return list, nil
}

// OverdueAlerts lista deudores morosos, más días de mora primero.
func (r *AccountRepo) OverdueAlerts() ([]*entity.OverdueAlert, error) {
	query := `
		SELECT a.customer_id, c.first_name, c.last_name, a.balance, a.days_overdue, a.last_payment_date
		FROM customer_accounts a
		JOIN customers c ON c.id = a.customer_id
		WHERE a.balance > 0 AND a.days_overdue > 0
		ORDER BY a.days_overdue DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("overdue alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*entity.OverdueAlert
	for rows.Next() {
		var al entity.OverdueAlert
		var firstName, lastName string
		if err := rows.Scan(&al.CustomerID, &firstName, &lastName, &al.Balance, &al.DaysOverdue, &al.LastPaymentDate); err != nil {
			return nil, fmt.Errorf("scan alert: %w", err)
		}
		al.CustomerName = firstName + " " + lastName
		alerts = append(alerts, &al)
	}
	return alerts, rows.Err()
}

// Stats calcula las estadísticas globales con un solo agregado SQL.
func (r *AccountRepo) Stats() (*entity.AccountStats, error) {
	query := `
		SELECT
			count(*)::int,
			coalesce(sum(CASE WHEN status = 'active' THEN 1 ELSE 0 END), 0)::int,
			coalesce(sum(CASE WHEN status = 'suspended' THEN 1 ELSE 0 END), 0)::int,
			coalesce(sum(CASE WHEN balance > 0 THEN 1 ELSE 0 END), 0)::int,
			coalesce(sum(CASE WHEN balance > 0 THEN balance ELSE 0 END), 0)::numeric,
			coalesce(sum(CASE WHEN days_overdue > 0 THEN 1 ELSE 0 END), 0)::int,
			coalesce(sum(CASE WHEN days_overdue > 0 AND balance > 0 THEN balance ELSE 0 END), 0)::numeric
		FROM customer_accounts`
	var s entity.AccountStats
	err := r.q.QueryRow(context.Background(), query).Scan(
		&s.TotalAccounts, &s.ActiveAccounts, &s.SuspendedAccounts,
		&s.TotalDebtors, &s.TotalDebt, &s.OverdueAccounts, &s.TotalOverdue,
	)
	if err != nil {
		return nil, fmt.Errorf("account stats: %w", err)
	}
	if s.TotalDebtors > 0 {
		s.AverageDebt = s.TotalDebt.Div(decimal.NewFromInt(int64(s.TotalDebtors))).Round(2)
	}
	return &s, nil
}

// RecomputeOverdue recalcula días de mora en bloque (un solo UPDATE, snapshot
// atómico) para las cuentas con deuda. La fórmula es la de overdue.Days y
// overdue.ShouldSuspend: días desde el último cargo (redondeados al día por el
// cast ::int) menos el plazo de pago, nunca negativo; las activas que superan
// suspendAfterDays pasan a suspended. Idempotente: correr dos veces sin
// movimientos nuevos deja el mismo resultado. El self-join con prev captura el
// estado anterior para contar solo las suspensiones de esta corrida.
func (r *AccountRepo) RecomputeOverdue(suspendAfterDays int) (*repository.OverdueRecomputeResult, error) {
	query := `
		WITH last_charges AS (
			SELECT DISTINCT ON (account_id) account_id, created_at AS last_charge_date
			FROM account_movements
			WHERE movement_type = 'charge'
			ORDER BY account_id, created_at DESC
		)
		UPDATE customer_accounts ca
		SET days_overdue = GREATEST(0,
				(EXTRACT(EPOCH FROM (now() - lc.last_charge_date)) / 86400)::int - ca.payment_term_days
			),
			status = CASE
				WHEN (EXTRACT(EPOCH FROM (now() - lc.last_charge_date)) / 86400)::int - ca.payment_term_days > $1
				     AND ca.status = 'active'
				THEN 'suspended'
				ELSE ca.status
			END,
			updated_at = now()
		FROM last_charges lc, customer_accounts prev
		WHERE ca.id = lc.account_id
		  AND prev.id = ca.id
		  AND ca.balance > 0
		RETURNING ca.status, prev.status`
	rows, err := r.q.Query(context.Background(), query, suspendAfterDays)
	if err != nil {
		return nil, fmt.Errorf("recompute overdue: %w", err)
	}
	defer rows.Close()

	result := &repository.OverdueRecomputeResult{}
	for rows.Next() {
		var status, prevStatus entity.AccountStatus
		if err := rows.Scan(&status, &prevStatus); err != nil {
			return nil, fmt.Errorf("scan recompute: %w", err)
		}
		result.Updated++
		if status == entity.AccountSuspended && prevStatus != entity.AccountSuspended {
			result.Suspended++
		}
	}
	return result, rows.Err()
}
