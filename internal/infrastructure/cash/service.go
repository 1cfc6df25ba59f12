// Package cash implementa el colaborador de caja registradora: refleja los
// pagos de cuenta corriente como ingresos de la caja abierta.
package cash

import (
	"context"

	"github.com/tu-usuario/cuentas-pro/internal/application/accounts"
	"github.com/tu-usuario/cuentas-pro/internal/domain"
	"github.com/tu-usuario/cuentas-pro/internal/domain/entity"
	"github.com/tu-usuario/cuentas-pro/internal/domain/repository"
)

// Ensure Service implements accounts.CashRegister.
var _ accounts.CashRegister = (*Service)(nil)

// Service registra movimientos de caja contra la caja abierta.
type Service struct {
	repo repository.CashRepository
}

// NewService construye el servicio de caja.
func NewService(repo repository.CashRepository) *Service {
	return &Service{repo: repo}
}

// RegisterAccountPayment registra el pago como ingreso en la caja abierta.
// Si no hay caja abierta devuelve ErrNoOpenCashRegister; el caller del libro
// de cuentas lo trata como advertencia, nunca como fallo del pago.
func (s *Service) RegisterAccountPayment(ctx context.Context, payment accounts.CashPayment, userID string) error {
	register, err := s.repo.GetOpenRegister()
	if err != nil {
		return err
	}
	if register == nil {
		return domain.ErrNoOpenCashRegister
	}
	return s.repo.CreateMovement(&entity.CashMovement{
		CashRegisterID:    register.ID,
		Type:              "income",
		Amount:            payment.Amount,
		Description:       payment.Description,
		PaymentMethodID:   payment.PaymentMethodID,
		AccountMovementID: payment.AccountMovementID,
		CreatedBy:         userID,
	})
}
