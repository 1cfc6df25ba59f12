package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/cuentas-pro/internal/domain/entity"
	"github.com/tu-usuario/cuentas-pro/internal/domain/repository"
)

var _ repository.CashRepository = (*CashRepo)(nil)

// CashRepo implementación de CashRepository sobre PostgreSQL (usable con pool o tx).
type CashRepo struct {
	q Querier
}

// NewCashRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashRepository(q Querier) *CashRepo {
	return &CashRepo{q: q}
}

// GetOpenRegister devuelve la caja abierta más reciente, o nil si no hay.
func (r *CashRepo) GetOpenRegister() (*entity.CashRegister, error) {
	query := `
		SELECT id, status, opened_by, opened_at, closed_at, created_at
		FROM cash_registers
		WHERE status = 'open'
		ORDER BY opened_at DESC
		LIMIT 1`
	var cr entity.CashRegister
	err := r.q.QueryRow(context.Background(), query).Scan(
		&cr.ID, &cr.Status, &cr.OpenedBy, &cr.OpenedAt, &cr.ClosedAt, &cr.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get open register: %w", err)
	}
	return &cr, nil
}

// CreateMovement registra un movimiento de caja.
func (r *CashRepo) CreateMovement(movement *entity.CashMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	if movement.CreatedAt.IsZero() {
		movement.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO cash_movements (id, cash_register_id, type, amount, description, payment_method_id, account_movement_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.CashRegisterID, movement.Type, movement.Amount,
		movement.Description, nullIfEmpty(movement.PaymentMethodID),
		nullIfEmpty(movement.AccountMovementID), nullIfEmpty(movement.CreatedBy),
		movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cash movement: %w", err)
	}
	return nil
}
