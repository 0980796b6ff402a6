package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// ProductRepository puerto de persistencia para Product (DIP).
// Todas las operaciones exigen companyID: no existe forma de leer un producto
// de otra empresa por construcción.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(companyID, id string) (*entity.Product, error)
	GetBySKU(companyID, sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE); usar solo dentro de una tx.
	GetForUpdate(companyID, id string) (*entity.Product, error)
	Update(product *entity.Product) error
	// SetQuantity fija el stock absoluto; usar solo dentro de la tx que hizo GetForUpdate.
	SetQuantity(companyID, productID string, quantity decimal.Decimal) error
	// List busca por nombre o SKU (término ya normalizado) con paginación.
	List(companyID, search string, limit, offset int) ([]*entity.Product, error)
	ListLowStock(companyID string, limit int) ([]*entity.Product, error)
	Delete(companyID, id string) error
}
