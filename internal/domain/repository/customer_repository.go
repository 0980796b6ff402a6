package repository

import "github.com/tu-usuario/gestion-pro/internal/domain/entity"

// CustomerRepository puerto de persistencia para Customer (DIP).
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(companyID, id string) (*entity.Customer, error)
	Update(customer *entity.Customer) error
	List(companyID, search string, limit, offset int) ([]*entity.Customer, error)
	Delete(companyID, id string) error
}
