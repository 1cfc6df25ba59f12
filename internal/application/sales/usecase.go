// Package sales implementa las ventas del punto de venta y la emisión de su
// numeración consecutiva por año (VENTA-2025-00001).
//
// El número se emite dentro de la misma transacción que inserta la venta,
// bloqueando la fila del último número (FOR UPDATE): emisiones concurrentes
// del mismo año se serializan y la serie queda sin huecos. Ese lock es un
// dominio propio, independiente del lock de cuentas corrientes; ningún flujo
// toma ambos locks en la misma transacción.
package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tu-usuario/cuentas-pro/internal/application/dto"
	"github.com/tu-usuario/cuentas-pro/internal/domain"
	"github.com/tu-usuario/cuentas-pro/internal/domain/entity"
	"github.com/tu-usuario/cuentas-pro/internal/domain/repository"
	"github.com/tu-usuario/cuentas-pro/internal/domain/series"
	"github.com/tu-usuario/cuentas-pro/pkg/logger"
)

// SalePrefix prefijo de la serie de documentos de venta.
const SalePrefix = "VENTA"

// createRetries reintentos ante colisión de número. Solo puede colisionar la
// primera venta del año (todavía no hay fila que bloquear con FOR UPDATE).
const createRetries = 3

// TxRunner ejecuta la emisión de número + inserción de la venta en una
// transacción.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(saleRepo repository.SaleRepository) error) error
}

// UseCase orquesta las operaciones de ventas.
type UseCase struct {
	tx           TxRunner
	saleRepo     repository.SaleRepository
	customerRepo repository.CustomerRepository
	log          *logger.Logger
}

// NewUseCase construye el caso de uso con sus dependencias.
func NewUseCase(tx TxRunner, saleRepo repository.SaleRepository, customerRepo repository.CustomerRepository, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, saleRepo: saleRepo, customerRepo: customerRepo, log: log}
}

// CreateSale registra una venta emitiendo el siguiente número de la serie del
// año. Una venta a cuenta corriente queda pendiente; el cargo en la cuenta se
// registra como operación de libro separada (el backfill cubre omisiones).
func (uc *UseCase) CreateSale(ctx context.Context, req dto.CreateSaleRequest, userID string) (*dto.SaleResponse, error) {
	if req.Total.Sign() <= 0 {
		return nil, fmt.Errorf("%w: el total de la venta debe ser mayor a cero", domain.ErrInvalidInput)
	}
	if _, err := uc.customerRepo.GetByID(req.CustomerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrCustomerNotFound
		}
		return nil, err
	}

	status := entity.SaleCompleted
	if req.IsOnAccount {
		status = entity.SalePending
	}

	var created *entity.Sale
	var err error
	for attempt := 0; attempt < createRetries; attempt++ {
		err = uc.tx.RunSale(ctx, func(saleRepo repository.SaleRepository) error {
			now := time.Now()
			last, err := saleRepo.LastNumberForUpdate(SalePrefix, now.Year())
			if err != nil {
				return err
			}
			number, err := series.Next(SalePrefix, now.Year(), last)
			if err != nil {
				return err
			}
			sale := &entity.Sale{
				SaleNumber:  number,
				CustomerID:  req.CustomerID,
				Total:       req.Total,
				Status:      status,
				IsOnAccount: req.IsOnAccount,
				SaleDate:    now,
				CreatedBy:   userID,
			}
			if err := saleRepo.Create(sale); err != nil {
				return err
			}
			created = sale
			return nil
		})
		if !errors.Is(err, domain.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("sale_id", created.ID).
		Str("sale_number", created.SaleNumber).
		Bool("on_account", created.IsOnAccount).
		Msg("venta registrada")

	resp := dto.NewSaleResponse(created)
	return &resp, nil
}

// GetSale devuelve una venta por id.
func (uc *UseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewSaleResponse(sale)
	return &resp, nil
}

// ListSales lista ventas paginadas, más recientes primero.
func (uc *UseCase) ListSales(ctx context.Context, page dto.PageRequest) ([]dto.SaleResponse, error) {
	page.DefaultPage()
	items, err := uc.saleRepo.List(page.Limit, (page.Page-1)*page.Limit)
	if err != nil {
		return nil, err
	}
	data := make([]dto.SaleResponse, 0, len(items))
	for _, s := range items {
		data = append(data, dto.NewSaleResponse(s))
	}
	return data, nil
}
