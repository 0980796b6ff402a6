package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

const invoiceColumns = `id, company_id, sale_id, customer_id, prefix, number, status, issue_date, due_date, subtotal, tax_total, total, notes, created_at, updated_at`

// InvoiceRepo implementación de InvoiceRepository.
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// Create inserta la factura. La unicidad (company_id, sale_id) impide facturar
// dos veces la misma venta.
func (r *InvoiceRepo) Create(inv *entity.Invoice) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO invoices (`+invoiceColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		inv.ID, inv.CompanyID, inv.SaleID, nullIfEmpty(inv.CustomerID), inv.Prefix, inv.Number,
		inv.Status, inv.IssueDate, inv.DueDate, inv.Subtotal, inv.TaxTotal, inv.Total,
		inv.Notes, inv.CreatedAt, inv.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert invoice: %w", err)
	}
	return nil
}

// NextNumber consume el consecutivo de facturas de la empresa de forma atómica.
func (r *InvoiceRepo) NextNumber(companyID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(context.Background(), `
		INSERT INTO company_counters (company_id, sale_seq, invoice_seq)
		VALUES ($1, 0, 1)
		ON CONFLICT (company_id)
		DO UPDATE SET invoice_seq = company_counters.invoice_seq + 1
		RETURNING invoice_seq`, companyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("next invoice number: %w", err)
	}
	return n, nil
}

func scanInvoice(row pgx.Row) (*entity.Invoice, error) {
	var inv entity.Invoice
	var customerID *string
	err := row.Scan(
		&inv.ID, &inv.CompanyID, &inv.SaleID, &customerID, &inv.Prefix, &inv.Number,
		&inv.Status, &inv.IssueDate, &inv.DueDate, &inv.Subtotal, &inv.TaxTotal, &inv.Total,
		&inv.Notes, &inv.CreatedAt, &inv.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan invoice: %w", err)
	}
	if customerID != nil {
		inv.CustomerID = *customerID
	}
	return &inv, nil
}

// GetByID obtiene la factura por id.
func (r *InvoiceRepo) GetByID(companyID, id string) (*entity.Invoice, error) {
	return scanInvoice(r.q.QueryRow(context.Background(),
		`SELECT `+invoiceColumns+` FROM invoices WHERE company_id = $1 AND id = $2`, companyID, id))
}

// GetBySaleID obtiene la factura asociada a una venta, si existe.
func (r *InvoiceRepo) GetBySaleID(companyID, saleID string) (*entity.Invoice, error) {
	return scanInvoice(r.q.QueryRow(context.Background(),
		`SELECT `+invoiceColumns+` FROM invoices WHERE company_id = $1 AND sale_id = $2`, companyID, saleID))
}

// List lista facturas de la empresa; status vacío = todas.
func (r *InvoiceRepo) List(companyID, status string, limit, offset int) ([]*entity.Invoice, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT `+invoiceColumns+` FROM invoices
		WHERE company_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY number DESC LIMIT $3 OFFSET $4`,
		companyID, status, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	var list []*entity.Invoice
	for rows.Next() {
		var inv entity.Invoice
		var customerID *string
		if err := rows.Scan(&inv.ID, &inv.CompanyID, &inv.SaleID, &customerID, &inv.Prefix, &inv.Number,
			&inv.Status, &inv.IssueDate, &inv.DueDate, &inv.Subtotal, &inv.TaxTotal, &inv.Total,
			&inv.Notes, &inv.CreatedAt, &inv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		if customerID != nil {
			inv.CustomerID = *customerID
		}
		list = append(list, &inv)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de la factura (issued → paid | void).
func (r *InvoiceRepo) UpdateStatus(companyID, id, status string) error {
	cmd, err := r.q.Exec(context.Background(),
		`UPDATE invoices SET status = $3, updated_at = $4 WHERE company_id = $1 AND id = $2`,
		companyID, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update invoice status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
