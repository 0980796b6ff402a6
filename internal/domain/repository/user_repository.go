package repository

import "github.com/tu-usuario/gestion-pro/internal/domain/entity"

// UserRepository puerto de persistencia para User (DIP).
// GetByID y GetByEmail son globales a propósito: el middleware de auth y el login
// parten del token/credencial, todavía sin tenant resuelto. Todo lo demás exige companyID.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByCompanyAndID(companyID, id string) (*entity.User, error)
	GetByCompanyAndEmail(companyID, email string) (*entity.User, error)
	Update(user *entity.User) error
	ListByCompany(companyID string, limit, offset int) ([]*entity.User, error)
	Delete(companyID, id string) error
}
