package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/cuentas-pro/internal/domain/entity"
	"github.com/tu-usuario/cuentas-pro/internal/domain/repository"
)

var _ repository.IncomeRepository = (*IncomeRepo)(nil)

// IncomeRepo implementación de IncomeRepository sobre PostgreSQL (usable con pool o tx).
type IncomeRepo struct {
	q Querier
}

// NewIncomeRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIncomeRepository(q Querier) *IncomeRepo {
	return &IncomeRepo{q: q}
}

// Create persiste un ingreso.
func (r *IncomeRepo) Create(income *entity.Income) error {
	if income.ID == "" {
		income.ID = uuid.New().String()
	}
	if income.CreatedAt.IsZero() {
		now := time.Now()
		income.CreatedAt = now
		income.UpdatedAt = now
	}
	if income.IncomeDate.IsZero() {
		income.IncomeDate = income.CreatedAt
	}
	query := `
		INSERT INTO incomes (id, customer_id, description, amount, is_paid, is_on_account, income_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		income.ID, income.CustomerID, income.Description, income.Amount,
		income.IsPaid, income.IsOnAccount, income.IncomeDate,
		income.CreatedAt, income.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert income: %w", err)
	}
	return nil
}

// ListPendingOnAccount lista los ingresos a cuenta sin pagar del cliente.
func (r *IncomeRepo) ListPendingOnAccount(customerID string) ([]*entity.Income, error) {
	query := `
		SELECT id, customer_id, description, amount, is_paid, is_on_account, income_date, created_at, updated_at
		FROM incomes
		WHERE customer_id = $1 AND is_paid = false AND is_on_account = true
		ORDER BY income_date DESC`
	rows, err := r.q.Query(context.Background(), query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list pending incomes: %w", err)
	}
	defer rows.Close()

	var list []*entity.Income
	for rows.Next() {
		var i entity.Income
		if err := rows.Scan(
			&i.ID, &i.CustomerID, &i.Description, &i.Amount, &i.IsPaid,
			&i.IsOnAccount, &i.IncomeDate, &i.CreatedAt, &i.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan income: %w", err)
		}
		list = append(list, &i)
	}
	return list, rows.Err()
}

// MarkPaidOnAccount marca en bloque los ingresos a cuenta del cliente como pagados.
func (r *IncomeRepo) MarkPaidOnAccount(customerID string) (int, error) {
	query := `
		UPDATE incomes
		SET is_paid = true, updated_at = now()
		WHERE customer_id = $1 AND is_paid = false AND is_on_account = true`
	tag, err := r.q.Exec(context.Background(), query, customerID)
	if err != nil {
		return 0, fmt.Errorf("mark incomes paid: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
