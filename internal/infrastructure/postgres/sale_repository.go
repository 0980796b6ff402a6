package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, company_id, customer_id, user_id, number, status, payment_method, subtotal, tax_total, total, notes, created_at`

// SaleRepo implementación de SaleRepository (usable con pool o tx; la creación
// siempre ocurre con tx vía TxRunner).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// nullIfEmpty convierte "" a NULL para columnas opcionales.
func nullIfEmpty(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// Create inserta la cabecera y todas las líneas de la venta.
func (r *SaleRepo) Create(sale *entity.Sale, items []*entity.SaleItem) error {
	ctx := context.Background()
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.CompanyID, nullIfEmpty(sale.CustomerID), sale.UserID, sale.Number,
		sale.Status, sale.PaymentMethod, sale.Subtotal, sale.TaxTotal, sale.Total,
		sale.Notes, sale.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	for _, it := range items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_items (id, sale_id, product_id, product_name, quantity, unit_price, tax_rate, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			it.ID, it.SaleID, it.ProductID, it.ProductName, it.Quantity, it.UnitPrice,
			it.TaxRate, it.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// NextNumber consume el consecutivo de ventas de la empresa de forma atómica
// (UPDATE ... RETURNING sobre company_counters). Usar dentro de la tx de venta.
func (r *SaleRepo) NextNumber(companyID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO company_counters (company_id, sale_seq, invoice_seq)
		VALUES ($1, 1, 0)
		ON CONFLICT (company_id)
		DO UPDATE SET sale_seq = company_counters.sale_seq + 1
		RETURNING sale_seq`, companyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next sale number: %w", err)
	}
	return n, nil
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var customerID *string
	err := row.Scan(
		&s.ID, &s.CompanyID, &customerID, &s.UserID, &s.Number, &s.Status,
		&s.PaymentMethod, &s.Subtotal, &s.TaxTotal, &s.Total, &s.Notes, &s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan sale: %w", err)
	}
	if customerID != nil {
		s.CustomerID = *customerID
	}
	return &s, nil
}

// GetByID obtiene la venta con sus líneas.
func (r *SaleRepo) GetByID(companyID, id string) (*entity.Sale, []*entity.SaleItem, error) {
	ctx := context.Background()
	sale, err := scanSale(r.q.QueryRow(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil || sale == nil {
		return nil, nil, err
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, product_id, product_name, quantity, unit_price, tax_rate, subtotal
		FROM sale_items WHERE sale_id = $1 ORDER BY product_name`, sale.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var items []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.ProductName, &it.Quantity,
			&it.UnitPrice, &it.TaxRate, &it.Subtotal); err != nil {
			return nil, nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, &it)
	}
	return sale, items, rows.Err()
}

// List lista ventas de la empresa en un rango de fechas.
func (r *SaleRepo) List(companyID string, from, to time.Time, limit, offset int) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + ` FROM sales
		WHERE company_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query, companyID, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var customerID *string
		if err := rows.Scan(&s.ID, &s.CompanyID, &customerID, &s.UserID, &s.Number, &s.Status,
			&s.PaymentMethod, &s.Subtotal, &s.TaxTotal, &s.Total, &s.Notes, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if customerID != nil {
			s.CustomerID = *customerID
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// UpdateStatus actualiza el estado de la venta (completed → partially_returned → returned).
func (r *SaleRepo) UpdateStatus(companyID, id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE sales SET status = $3 WHERE company_id = $1 AND id = $2`, companyID, id, status)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReturnedQuantities suma, por producto, lo ya devuelto de una venta.
func (r *SaleRepo) ReturnedQuantities(companyID, saleID string) (map[string]decimal.Decimal, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT ri.product_id, SUM(ri.quantity)
		FROM sale_return_items ri
		JOIN sale_returns sr ON sr.id = ri.return_id
		WHERE sr.company_id = $1 AND sr.sale_id = $2
		GROUP BY ri.product_id`, companyID, saleID)
	if err != nil {
		return nil, fmt.Errorf("returned quantities: %w", err)
	}
	defer rows.Close()
	result := make(map[string]decimal.Decimal)
	for rows.Next() {
		var productID string
		var qty decimal.Decimal
		if err := rows.Scan(&productID, &qty); err != nil {
			return nil, fmt.Errorf("scan returned quantity: %w", err)
		}
		result[productID] = qty
	}
	return result, rows.Err()
}
