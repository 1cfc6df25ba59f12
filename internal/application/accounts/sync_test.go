package accounts_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/cuentas-pro/internal/domain/entity"
)

func TestSyncMissingCharges_BackfillsPendingSales(t *testing.T) {
	s := newMemStore()
	s.seedCustomer("cli-1")
	account := s.seedAccount("cli-1", dec("60.00"), decimal.Zero, entity.AccountActive)

	covered := s.seedPendingSale("cli-1", "VENTA-2025-00001", dec("60.00"))
	s.seedPendingSale("cli-1", "VENTA-2025-00002", dec("25.00"))
	s.seedPendingSale("cli-1", "VENTA-2025-00003", dec("15.00"))

	// la primera venta ya tiene su cargo
	s.movements = append(s.movements, entity.AccountMovement{
		ID:            "mov-1",
		AccountID:     account.ID,
		Type:          entity.MovementCharge,
		Amount:        dec("60.00"),
		BalanceBefore: decimal.Zero,
		BalanceAfter:  dec("60.00"),
		ReferenceType: entity.ReferenceSale,
		ReferenceID:   covered.ID,
	})

	uc, _ := newTestUseCase(s)

	out, err := uc.SyncMissingCharges(context.Background(), "cli-1", "user-1")
	require.NoError(t, err)

	assert.Equal(t, 2, out.ChargesCreated)
	assert.True(t, out.TotalAmount.Equal(dec("40.00")))
	require.Len(t, out.Sales, 2)
	assert.Equal(t, "VENTA-2025-00002", out.Sales[0].SaleNumber, "orden cronológico")
	assert.Equal(t, "VENTA-2025-00003", out.Sales[1].SaleNumber)

	assert.True(t, s.accounts["cli-1"].Balance.Equal(dec("100.00")))
	assertLedgerInvariants(t, s, "cli-1")
}

// Propiedad de idempotencia: la segunda corrida no crea nada.
func TestSyncMissingCharges_Idempotent(t *testing.T) {
	s := newMemStore()
	s.seedCustomer("cli-1")
	s.seedAccount("cli-1", decimal.Zero, decimal.Zero, entity.AccountActive)
	s.seedPendingSale("cli-1", "VENTA-2025-00001", dec("30.00"))
	s.seedPendingSale("cli-1", "VENTA-2025-00002", dec("20.00"))

	uc, _ := newTestUseCase(s)

	first, err := uc.SyncMissingCharges(context.Background(), "cli-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 2, first.ChargesCreated)

	second, err := uc.SyncMissingCharges(context.Background(), "cli-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, second.ChargesCreated)
	assert.True(t, second.TotalAmount.IsZero())

	account := s.accounts["cli-1"]
	assert.True(t, account.Balance.Equal(dec("50.00")))
	assert.Len(t, s.movementsFor(account.ID), 2)
	assertLedgerInvariants(t, s, "cli-1")
}

// El backfill crea la cuenta si no existe y registra las ventas pendientes
// aunque la cuenta esté suspendida (las ventas ya ocurrieron).
func TestSyncMissingCharges_SuspendedAccount(t *testing.T) {
	s := newMemStore()
	s.seedCustomer("cli-1")
	s.seedAccount("cli-1", dec("10.00"), decimal.Zero, entity.AccountSuspended)
	s.seedPendingSale("cli-1", "VENTA-2025-00001", dec("5.00"))

	uc, _ := newTestUseCase(s)

	out, err := uc.SyncMissingCharges(context.Background(), "cli-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1, out.ChargesCreated)
	assert.True(t, s.accounts["cli-1"].Balance.Equal(dec("15.00")))
}

func TestSyncMissingCharges_NothingPending(t *testing.T) {
	s := newMemStore()
	s.seedCustomer("cli-1")
	uc, _ := newTestUseCase(s)

	out, err := uc.SyncMissingCharges(context.Background(), "cli-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, 0, out.ChargesCreated)
	assert.Empty(t, out.Sales)

	// la cuenta se creó on-demand
	_, ok := s.accounts["cli-1"]
	assert.True(t, ok)
}
