package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/cuentas-pro/internal/application/accounts"
	"github.com/tu-usuario/cuentas-pro/internal/application/sales"
	"github.com/tu-usuario/cuentas-pro/internal/domain/repository"
)

// Ensure TxRunner implements accounts.TxRunner y sales.TxRunner.
var _ accounts.TxRunner = (*TxRunner)(nil)
var _ sales.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Si el contexto se cancela antes del commit, la transacción se revierte
// completa: ningún movimiento ni saldo parcial sobrevive.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunLedger inicia una transacción con los repos del núcleo de cuentas
// corrientes atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunLedger(ctx context.Context, fn func(
	accountRepo repository.AccountRepository,
	movementRepo repository.MovementRepository,
	saleRepo repository.SaleRepository,
	incomeRepo repository.IncomeRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	accountRepo := NewAccountRepository(tx)
	movementRepo := NewMovementRepository(tx)
	saleRepo := NewSaleRepository(tx)
	incomeRepo := NewIncomeRepository(tx)

	if err := fn(accountRepo, movementRepo, saleRepo, incomeRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunSale inicia una transacción con el repo de ventas atado a la tx
// (numeración consecutiva + inserción de la venta en la misma tx).
func (r *TxRunner) RunSale(ctx context.Context, fn func(saleRepo repository.SaleRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewSaleRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
