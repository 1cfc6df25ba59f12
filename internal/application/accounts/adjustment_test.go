package accounts_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/cuentas-pro/internal/application/dto"
	"github.com/tu-usuario/cuentas-pro/internal/domain"
	"github.com/tu-usuario/cuentas-pro/internal/domain/entity"
)

func TestCreateAdjustment_SignedAmount(t *testing.T) {
	s := newMemStore()
	s.seedCustomer("cli-1")
	s.seedAccount("cli-1", dec("30.00"), decimal.Zero, entity.AccountActive)
	uc, _ := newTestUseCase(s)

	// Ajuste negativo: puede dejar el saldo por debajo de cero (el negocio
	// queda debiendo al cliente).
	out, err := uc.CreateAdjustment(context.Background(), "cli-1", dto.AdjustmentRequest{
		Amount:      dec("-50.00"),
		Description: "Corrección por devolución",
	}, "admin-1")
	require.NoError(t, err)

	assert.Equal(t, "adjustment", out.MovementType)
	assert.True(t, out.Amount.Equal(dec("-50.00")), "el ajuste conserva el signo")
	assert.True(t, s.accounts["cli-1"].Balance.Equal(dec("-20.00")))
	assertLedgerInvariants(t, s, "cli-1")
}

// El ajuste es la vía privilegiada: no valida suspensión ni límite de crédito.
func TestCreateAdjustment_BypassesBusinessRules(t *testing.T) {
	s := newMemStore()
	s.seedCustomer("cli-1")
	s.seedAccount("cli-1", dec("100.00"), dec("100.00"), entity.AccountSuspended)
	uc, _ := newTestUseCase(s)

	_, err := uc.CreateAdjustment(context.Background(), "cli-1", dto.AdjustmentRequest{
		Amount:      dec("500.00"),
		Description: "Ajuste manual",
	}, "admin-1")
	require.NoError(t, err)
	assert.True(t, s.accounts["cli-1"].Balance.Equal(dec("600.00")))
}

func TestCreateAdjustment_RequiresDescription(t *testing.T) {
	s := newMemStore()
	s.seedCustomer("cli-1")
	s.seedAccount("cli-1", decimal.Zero, decimal.Zero, entity.AccountActive)
	uc, _ := newTestUseCase(s)

	_, err := uc.CreateAdjustment(context.Background(), "cli-1", dto.AdjustmentRequest{
		Amount: dec("10.00"),
	}, "admin-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateAdjustment_ZeroAmount(t *testing.T) {
	s := newMemStore()
	s.seedCustomer("cli-1")
	s.seedAccount("cli-1", decimal.Zero, decimal.Zero, entity.AccountActive)
	uc, _ := newTestUseCase(s)

	_, err := uc.CreateAdjustment(context.Background(), "cli-1", dto.AdjustmentRequest{
		Amount:      decimal.Zero,
		Description: "nada",
	}, "admin-1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
