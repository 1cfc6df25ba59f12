package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/cuentas-pro/internal/domain/entity"
	"github.com/tu-usuario/cuentas-pro/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL
// (usable con pool o tx). Solo inserta y lee: el log es append-only.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento de cuenta corriente.
func (r *MovementRepo) Create(movement *entity.AccountMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	if movement.CreatedAt.IsZero() {
		movement.CreatedAt = time.Now()
	}
	query := `
		INSERT INTO account_movements (id, account_id, movement_type, amount, balance_before, balance_after,
			description, reference_type, reference_id, payment_method_id, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.AccountID, movement.Type, movement.Amount,
		movement.BalanceBefore, movement.BalanceAfter, movement.Description,
		nullIfEmpty(movement.ReferenceType), nullIfEmpty(movement.ReferenceID),
		nullIfEmpty(movement.PaymentMethodID), nullIfEmpty(movement.Notes),
		nullIfEmpty(movement.CreatedBy), movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// ListByAccount pagina los movimientos de una cuenta, más recientes primero.
func (r *MovementRepo) ListByAccount(accountID string, limit, offset int) ([]*entity.AccountMovement, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT count(*) FROM account_movements WHERE account_id = $1`, accountID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	query := `
		SELECT id, account_id, movement_type, amount, balance_before, balance_after,
		       description, reference_type, reference_id, payment_method_id, notes, created_by, created_at
		FROM account_movements
		WHERE account_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, accountID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.AccountMovement
	for rows.Next() {
		var m entity.AccountMovement
		var refType, refID, paymentMethodID, notes, createdBy *string
		if err := rows.Scan(
			&m.ID, &m.AccountID, &m.Type, &m.Amount, &m.BalanceBefore, &m.BalanceAfter,
			&m.Description, &refType, &refID, &paymentMethodID, &notes, &createdBy, &m.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		m.ReferenceType = orEmpty(refType)
		m.ReferenceID = orEmpty(refID)
		m.PaymentMethodID = orEmpty(paymentMethodID)
		m.Notes = orEmpty(notes)
		m.CreatedBy = orEmpty(createdBy)
		list = append(list, &m)
	}
	return list, total, rows.Err()
}

// TotalsByAccount suma cargos y pagos con agregado SQL. Los recargos por
// interés no entran en el total de cargos: son movimientos aparte en el
// extracto y el saldo ya los refleja.
func (r *MovementRepo) TotalsByAccount(accountID string) (*entity.MovementTotals, error) {
	query := `
		SELECT
			coalesce(sum(CASE WHEN movement_type = 'charge' THEN amount ELSE 0 END), 0)::numeric,
			coalesce(abs(sum(CASE WHEN movement_type = 'payment' THEN amount ELSE 0 END)), 0)::numeric
		FROM account_movements
		WHERE account_id = $1`
	var t entity.MovementTotals
	if err := r.q.QueryRow(context.Background(), query, accountID).Scan(&t.TotalCharges, &t.TotalPayments); err != nil {
		return nil, fmt.Errorf("movement totals: %w", err)
	}
	return &t, nil
}

// ChargeReferenceIDs devuelve los referenceIds con cargo ya registrado para
// la cuenta y referenceType dados (insumo del backfill: set de ventas cubiertas).
func (r *MovementRepo) ChargeReferenceIDs(accountID, referenceType string) (map[string]struct{}, error) {
	query := `
		SELECT DISTINCT reference_id
		FROM account_movements
		WHERE account_id = $1 AND movement_type = 'charge' AND reference_type = $2 AND reference_id IS NOT NULL`
	rows, err := r.q.Query(context.Background(), query, accountID, referenceType)
	if err != nil {
		return nil, fmt.Errorf("charge reference ids: %w", err)
	}
	defer rows.Close()

	refs := make(map[string]struct{})
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan reference id: %w", err)
		}
		refs[id] = struct{}{}
	}
	return refs, rows.Err()
}
