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

var _ repository.ExpenseRepository = (*ExpenseRepo)(nil)

const expenseColumns = `id, company_id, user_id, category, description, amount, expense_date, receipt_ref, created_at, updated_at`

// ExpenseRepo implementación de ExpenseRepository.
type ExpenseRepo struct {
	q Querier
}

// NewExpenseRepository construye el adaptador. Pasar pool o tx (Querier).
func NewExpenseRepository(q Querier) *ExpenseRepo {
	return &ExpenseRepo{q: q}
}

// Create inserta el gasto.
func (r *ExpenseRepo) Create(e *entity.Expense) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO expenses (`+expenseColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		e.ID, e.CompanyID, e.UserID, e.Category, e.Description, e.Amount,
		e.ExpenseDate, e.ReceiptRef, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert expense: %w", err)
	}
	return nil
}

// GetByID obtiene el gasto por id.
func (r *ExpenseRepo) GetByID(companyID, id string) (*entity.Expense, error) {
	var e entity.Expense
	err := r.q.QueryRow(context.Background(),
		`SELECT `+expenseColumns+` FROM expenses WHERE company_id = $1 AND id = $2`,
		companyID, id,
	).Scan(&e.ID, &e.CompanyID, &e.UserID, &e.Category, &e.Description, &e.Amount,
		&e.ExpenseDate, &e.ReceiptRef, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan expense: %w", err)
	}
	return &e, nil
}

// Update actualiza los campos editables del gasto.
func (r *ExpenseRepo) Update(e *entity.Expense) error {
	cmd, err := r.q.Exec(context.Background(), `
		UPDATE expenses
		SET category = $3, description = $4, amount = $5, expense_date = $6, receipt_ref = $7, updated_at = $8
		WHERE company_id = $1 AND id = $2`,
		e.CompanyID, e.ID, e.Category, e.Description, e.Amount, e.ExpenseDate, e.ReceiptRef, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update expense: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List filtra por categoría (vacía = todas) y rango de fechas.
func (r *ExpenseRepo) List(companyID, category string, from, to time.Time, limit, offset int) ([]*entity.Expense, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT `+expenseColumns+` FROM expenses
		WHERE company_id = $1 AND ($2 = '' OR category = $2)
		  AND expense_date >= $3 AND expense_date < $4
		ORDER BY expense_date DESC LIMIT $5 OFFSET $6`,
		companyID, category, from, to, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()
	var list []*entity.Expense
	for rows.Next() {
		var e entity.Expense
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.UserID, &e.Category, &e.Description, &e.Amount,
			&e.ExpenseDate, &e.ReceiptRef, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan expense: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Delete elimina el gasto.
func (r *ExpenseRepo) Delete(companyID, id string) error {
	cmd, err := r.q.Exec(context.Background(),
		`DELETE FROM expenses WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
