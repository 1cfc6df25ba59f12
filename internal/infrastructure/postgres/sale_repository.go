package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/cuentas-pro/internal/domain"
	"github.com/tu-usuario/cuentas-pro/internal/domain/entity"
	"github.com/tu-usuario/cuentas-pro/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, sale_number, customer_id, total, status, is_on_account, sale_date, created_by, created_at, updated_at`

// SaleRepo implementación de SaleRepository sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create persiste una venta. El constraint único de sale_number respalda la
// garantía de no duplicados del generador de numeración.
func (r *SaleRepo) Create(sale *entity.Sale) error {
	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	if sale.CreatedAt.IsZero() {
		now := time.Now()
		sale.CreatedAt = now
		sale.UpdatedAt = now
	}
	if sale.SaleDate.IsZero() {
		sale.SaleDate = sale.CreatedAt
	}
	query := `
		INSERT INTO sales (id, sale_number, customer_id, total, status, is_on_account, sale_date, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(context.Background(), query,
		sale.ID, sale.SaleNumber, sale.CustomerID, sale.Total, sale.Status,
		sale.IsOnAccount, sale.SaleDate, nullIfEmpty(sale.CreatedBy),
		sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var createdBy *string
	err := row.Scan(
		&s.ID, &s.SaleNumber, &s.CustomerID, &s.Total, &s.Status,
		&s.IsOnAccount, &s.SaleDate, &createdBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.CreatedBy = orEmpty(createdBy)
	return &s, nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1`
	s, err := scanSale(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// List lista ventas con paginación, más recientes primero.
func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales ORDER BY sale_date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	return collectSales(rows)
}

// ListPendingOnAccount lista las ventas a cuenta sin saldar del cliente,
// más antiguas primero para preservar la cronología de los snapshots.
func (r *SaleRepo) ListPendingOnAccount(customerID string) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE customer_id = $1 AND status = 'pending' AND is_on_account = true
		ORDER BY sale_date ASC`
	rows, err := r.q.Query(context.Background(), query, customerID)
	if err != nil {
		return nil, fmt.Errorf("list pending sales: %w", err)
	}
	defer rows.Close()
	return collectSales(rows)
}

func collectSales(rows pgx.Rows) ([]*entity.Sale, error) {
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var createdBy *string
		if err := rows.Scan(
			&s.ID, &s.SaleNumber, &s.CustomerID, &s.Total, &s.Status,
			&s.IsOnAccount, &s.SaleDate, &createdBy, &s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		s.CreatedBy = orEmpty(createdBy)
		list = append(list, &s)
	}
	return list, rows.Err()
}

// SettlePendingOnAccount marca en bloque las ventas pendientes a cuenta del
// cliente como completadas (pago total de la deuda).
func (r *SaleRepo) SettlePendingOnAccount(customerID string) (int, error) {
	query := `
		UPDATE sales
		SET status = 'completed', is_on_account = false, updated_at = now()
		WHERE customer_id = $1 AND status = 'pending' AND is_on_account = true`
	tag, err := r.q.Exec(context.Background(), query, customerID)
	if err != nil {
		return 0, fmt.Errorf("settle pending sales: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// LastNumberForUpdate devuelve el último número de la serie prefijo/año
// bloqueando la fila hasta el fin de la transacción. Se ordena por largo y
// luego lexicográficamente para que el máximo sea correcto cuando el
// consecutivo crece de ancho (99999 -> 100000).
func (r *SaleRepo) LastNumberForUpdate(prefix string, year int) (string, error) {
	pattern := fmt.Sprintf("%s-%d-%%", prefix, year)
	query := `
		SELECT sale_number FROM sales
		WHERE sale_number LIKE $1
		ORDER BY length(sale_number) DESC, sale_number DESC
		LIMIT 1
		FOR UPDATE`
	var last string
	err := r.q.QueryRow(context.Background(), query, pattern).Scan(&last)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("last sale number: %w", err)
	}
	return last, nil
}
