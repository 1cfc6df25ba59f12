package repository

import "github.com/tu-usuario/cuentas-pro/internal/domain/entity"

// CustomerRepository puerto de persistencia del directorio de clientes.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
}
