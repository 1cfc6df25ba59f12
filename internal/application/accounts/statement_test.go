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

func TestGetStatement_TotalsAndPosition(t *testing.T) {
	s := newMemStore()
	s.seedCustomer("cli-1")
	uc, _ := newTestUseCase(s)
	ctx := context.Background()

	_, err := uc.CreateCharge(ctx, "cli-1", dto.CreateChargeRequest{Amount: dec("200.00")}, "u")
	require.NoError(t, err)
	_, err = uc.ApplySurcharge(ctx, "cli-1", dto.SurchargeRequest{
		SurchargeType: dto.SurchargeFixed, Value: dec("20.00"),
	}, "u")
	require.NoError(t, err)
	_, err = uc.CreatePayment(ctx, "cli-1", dto.CreatePaymentRequest{
		Amount: dec("70.00"), PaymentMethodID: "efectivo",
	}, "u")
	require.NoError(t, err)

	out, err := uc.GetStatement(ctx, "cli-1", dto.PageRequest{Page: 1, Limit: 10})
	require.NoError(t, err)

	assert.True(t, out.Summary.TotalCharges.Equal(dec("200.00")), "solo cargos, los recargos van aparte")
	assert.True(t, out.Summary.TotalPayments.Equal(dec("70.00")), "pagos en valor absoluto")
	assert.True(t, out.Summary.CurrentBalance.Equal(dec("150.00")))
	assert.Equal(t, "customer_owes", out.Summary.CustomerPosition)

	require.Len(t, out.Movements, 3)
	assert.Equal(t, "payment", out.Movements[0].MovementType, "más recientes primero")
	assert.Equal(t, 3, out.Pagination.Total)
}

func TestGetStatement_Pagination(t *testing.T) {
	s := newMemStore()
	s.seedCustomer("cli-1")
	uc, _ := newTestUseCase(s)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := uc.CreateCharge(ctx, "cli-1", dto.CreateChargeRequest{Amount: dec("10.00")}, "u")
		require.NoError(t, err)
	}

	out, err := uc.GetStatement(ctx, "cli-1", dto.PageRequest{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, out.Movements, 2)
	assert.Equal(t, 5, out.Pagination.Total)
	assert.Equal(t, 3, out.Pagination.TotalPages)
}

func TestGetAccount_CreatesOnDemand(t *testing.T) {
	s := newMemStore()
	s.seedCustomer("cli-1")
	uc, _ := newTestUseCase(s)

	out, err := uc.GetAccount(context.Background(), "cli-1")
	require.NoError(t, err)
	assert.True(t, out.Balance.IsZero())
	assert.Equal(t, "active", out.Status)
	assert.Equal(t, 30, out.PaymentTermDays)
}

func TestGetAccount_UnknownCustomer(t *testing.T) {
	s := newMemStore()
	uc, _ := newTestUseCase(s)

	_, err := uc.GetAccount(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrCustomerNotFound)
}

func TestUpdateAccount_CreditLimitAndStatus(t *testing.T) {
	s := newMemStore()
	s.seedCustomer("cli-1")
	s.seedAccount("cli-1", decimal.Zero, decimal.Zero, entity.AccountActive)
	uc, _ := newTestUseCase(s)

	limit := dec("500.00")
	status := "suspended"
	out, err := uc.UpdateAccount(context.Background(), "cli-1", dto.UpdateAccountRequest{
		CreditLimit: &limit,
		Status:      &status,
	})
	require.NoError(t, err)
	assert.True(t, out.CreditLimit.Equal(dec("500.00")))
	assert.Equal(t, "suspended", out.Status)
}

func TestUpdateAccount_InvalidStatus(t *testing.T) {
	s := newMemStore()
	s.seedCustomer("cli-1")
	s.seedAccount("cli-1", decimal.Zero, decimal.Zero, entity.AccountActive)
	uc, _ := newTestUseCase(s)

	status := "frozen"
	_, err := uc.UpdateAccount(context.Background(), "cli-1", dto.UpdateAccountRequest{Status: &status})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSuspendAndActivateAccount(t *testing.T) {
	s := newMemStore()
	s.seedCustomer("cli-1")
	s.seedAccount("cli-1", decimal.Zero, decimal.Zero, entity.AccountActive)
	uc, _ := newTestUseCase(s)
	ctx := context.Background()

	out, err := uc.SuspendAccount(ctx, "cli-1")
	require.NoError(t, err)
	assert.Equal(t, "suspended", out.Status)

	out, err = uc.ActivateAccount(ctx, "cli-1")
	require.NoError(t, err)
	assert.Equal(t, "active", out.Status)
}

func TestGetPendingTransactions(t *testing.T) {
	s := newMemStore()
	s.seedCustomer("cli-1")
	s.seedPendingSale("cli-1", "VENTA-2025-00001", dec("10.00"))
	s.incomes = append(s.incomes, entity.Income{
		ID: "ing-1", CustomerID: "cli-1", Amount: dec("5.00"), IsOnAccount: true,
	})
	// venta ya saldada: no debe aparecer
	s.sales = append(s.sales, entity.Sale{
		ID: "v-2", SaleNumber: "VENTA-2025-00002", CustomerID: "cli-1",
		Total: dec("99.00"), Status: entity.SaleCompleted,
	})

	uc, _ := newTestUseCase(s)
	out, err := uc.GetPendingTransactions(context.Background(), "cli-1")
	require.NoError(t, err)
	require.Len(t, out.Sales, 1)
	assert.Equal(t, "VENTA-2025-00001", out.Sales[0].SaleNumber)
	require.Len(t, out.Incomes, 1)
	assert.False(t, out.Incomes[0].IsPaid)
}
