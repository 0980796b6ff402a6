package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
	"github.com/tu-usuario/gestion-pro/pkg/textutil"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, company_id, sku, name, description, category, price, cost, tax_rate, quantity, reorder_point, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// searchText texto de búsqueda desacentuado que se persiste junto al producto.
func searchText(p *entity.Product) string {
	return textutil.FoldSearchTerm(p.Name + " " + p.SKU)
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(product *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `, search_text)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		product.ID, product.CompanyID, product.SKU, product.Name, product.Description,
		product.Category, product.Price, product.Cost, product.TaxRate, product.Quantity,
		product.ReorderPoint, product.CreatedAt, product.UpdatedAt, searchText(product),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) scanOne(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.Description, &p.Category,
		&p.Price, &p.Cost, &p.TaxRate, &p.Quantity, &p.ReorderPoint,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan product: %w", err)
	}
	return &p, nil
}

// GetByID obtiene un producto por empresa e ID.
func (r *ProductRepo) GetByID(companyID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND id = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, id))
}

// GetBySKU obtiene un producto por empresa y SKU.
func (r *ProductRepo) GetBySKU(companyID, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND sku = $2`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, sku))
}

// GetForUpdate obtiene el producto y bloquea la fila (SELECT FOR UPDATE).
// Usar solo dentro de una transacción: es el candado que hace atómico el
// descuento de stock de las ventas.
func (r *ProductRepo) GetForUpdate(companyID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE company_id = $1 AND id = $2 FOR UPDATE`
	return r.scanOne(r.q.QueryRow(context.Background(), query, companyID, id))
}

// Update actualiza un producto. Quantity NO se toca aquí: el stock solo cambia
// vía SetQuantity dentro de transacciones de venta/devolución/ajuste.
func (r *ProductRepo) Update(product *entity.Product) error {
	query := `
		UPDATE products SET name = $3, description = $4, category = $5, price = $6, cost = $7,
			tax_rate = $8, reorder_point = $9, search_text = $10, updated_at = $11
		WHERE company_id = $1 AND id = $2`
	_, err := r.q.Exec(context.Background(), query,
		product.CompanyID, product.ID, product.Name, product.Description, product.Category,
		product.Price, product.Cost, product.TaxRate, product.ReorderPoint,
		searchText(product), product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// SetQuantity fija el stock absoluto del producto. Usar solo dentro de la tx
// que ya hizo GetForUpdate sobre la misma fila.
func (r *ProductRepo) SetQuantity(companyID, productID string, quantity decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE products SET quantity = $3, updated_at = now() WHERE company_id = $1 AND id = $2`,
		companyID, productID, quantity,
	)
	if err != nil {
		return fmt.Errorf("set product quantity: %w", err)
	}
	return nil
}

// List lista productos de la empresa; search ya viene desacentuado (textutil.FoldSearchTerm).
func (r *ProductRepo) List(companyID, search string, limit, offset int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE company_id = $1 AND ($2 = '' OR search_text LIKE '%' || $2 || '%')
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(context.Background(), query, companyID, search, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

// ListLowStock productos con stock en o bajo el punto de reorden.
func (r *ProductRepo) ListLowStock(companyID string, limit int) ([]*entity.Product, error) {
	query := `
		SELECT ` + productColumns + ` FROM products
		WHERE company_id = $1 AND quantity <= reorder_point
		ORDER BY quantity ASC LIMIT $2`
	rows, err := r.q.Query(context.Background(), query, companyID, limit)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	defer rows.Close()
	return scanProducts(rows)
}

func scanProducts(rows pgx.Rows) ([]*entity.Product, error) {
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.SKU, &p.Name, &p.Description, &p.Category,
			&p.Price, &p.Cost, &p.TaxRate, &p.Quantity, &p.ReorderPoint, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Delete elimina un producto de la empresa indicada.
func (r *ProductRepo) Delete(companyID, id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM products WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
