package entity

import "time"

// Customer representa un cliente del negocio (directorio de clientes).
type Customer struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName nombre completo para mostrar en alertas y descripciones.
func (c *Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
