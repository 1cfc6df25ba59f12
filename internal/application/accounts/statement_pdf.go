package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/tu-usuario/cuentas-pro/internal/domain"
)

// statementPDFMovements tope de movimientos incluidos en el PDF (los más
// recientes).
const statementPDFMovements = 100

// GetStatementPDF genera el estado de cuenta del cliente en PDF.
func (uc *UseCase) GetStatementPDF(ctx context.Context, customerID string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("generador de PDF no configurado")
	}
	customer, err := uc.customerRepo.GetByID(customerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}
	account, err := uc.GetOrCreateAccount(ctx, customerID)
	if err != nil {
		return nil, err
	}
	movements, _, err := uc.movementRepo.ListByAccount(account.ID, statementPDFMovements, 0)
	if err != nil {
		return nil, err
	}
	totals, err := uc.movementRepo.TotalsByAccount(account.ID)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateStatementPDF(ctx, customer, account, movements, totals)
}
