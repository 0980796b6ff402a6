package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

// CreateExpenseRequest entrada para registrar un gasto.
type CreateExpenseRequest struct {
	Category    string          `json:"category" validate:"required,max=100"`
	Description string          `json:"description" validate:"required,max=500"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	ExpenseDate time.Time       `json:"expense_date" validate:"required"`
	ReceiptRef  string          `json:"receipt_ref" validate:"max=200"`
}

// UpdateExpenseRequest entrada para actualizar un gasto.
type UpdateExpenseRequest struct {
	Category    *string          `json:"category" validate:"omitempty,max=100"`
	Description *string          `json:"description" validate:"omitempty,max=500"`
	Amount      *decimal.Decimal `json:"amount"`
	ExpenseDate *time.Time       `json:"expense_date"`
	ReceiptRef  *string          `json:"receipt_ref" validate:"omitempty,max=200"`
}

// ExpenseResponse salida de un gasto.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	UserID      string          `json:"user_id"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseDate time.Time       `json:"expense_date"`
	ReceiptRef  string          `json:"receipt_ref,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ExpenseListResponse lista paginada de gastos.
type ExpenseListResponse struct {
	Items []ExpenseResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ToExpenseResponse proyecta la entidad a la respuesta HTTP.
func ToExpenseResponse(e *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		CompanyID:   e.CompanyID,
		UserID:      e.UserID,
		Category:    e.Category,
		Description: e.Description,
		Amount:      e.Amount,
		ExpenseDate: e.ExpenseDate,
		ReceiptRef:  e.ReceiptRef,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}
