package repository

import (
	"time"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// ExpenseRepository puerto de persistencia para Expense (DIP).
type ExpenseRepository interface {
	Create(expense *entity.Expense) error
	GetByID(companyID, id string) (*entity.Expense, error)
	Update(expense *entity.Expense) error
	// List filtra por categoría (vacío = todas) y rango de fechas.
	List(companyID, category string, from, to time.Time, limit, offset int) ([]*entity.Expense, error)
	Delete(companyID, id string) error
}
