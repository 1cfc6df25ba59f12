// Package customers implementa el directorio de clientes.
package customers

import (
	"context"
	"fmt"

	"github.com/tu-usuario/cuentas-pro/internal/application/dto"
	"github.com/tu-usuario/cuentas-pro/internal/domain"
	"github.com/tu-usuario/cuentas-pro/internal/domain/entity"
	"github.com/tu-usuario/cuentas-pro/internal/domain/repository"
	"github.com/tu-usuario/cuentas-pro/pkg/logger"
)

// UseCase orquesta las operaciones del directorio de clientes.
type UseCase struct {
	customerRepo repository.CustomerRepository
	log          *logger.Logger
}

// NewUseCase construye el caso de uso con sus dependencias.
func NewUseCase(customerRepo repository.CustomerRepository, log *logger.Logger) *UseCase {
	return &UseCase{customerRepo: customerRepo, log: log}
}

// CreateCustomer da de alta un cliente.
func (uc *UseCase) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if req.FirstName == "" {
		return nil, fmt.Errorf("%w: el nombre del cliente es obligatorio", domain.ErrInvalidInput)
	}
	customer := &entity.Customer{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		IsActive:  true,
	}
	if err := uc.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	uc.log.Info().Str("customer_id", customer.ID).Msg("cliente creado")
	resp := dto.NewCustomerResponse(customer)
	return &resp, nil
}

// GetCustomer devuelve un cliente por id.
func (uc *UseCase) GetCustomer(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewCustomerResponse(customer)
	return &resp, nil
}

// ListCustomers lista clientes paginados.
func (uc *UseCase) ListCustomers(ctx context.Context, page dto.PageRequest) ([]dto.CustomerResponse, error) {
	page.DefaultPage()
	items, err := uc.customerRepo.List(page.Limit, (page.Page-1)*page.Limit)
	if err != nil {
		return nil, err
	}
	data := make([]dto.CustomerResponse, 0, len(items))
	for _, c := range items {
		data = append(data, dto.NewCustomerResponse(c))
	}
	return data, nil
}
