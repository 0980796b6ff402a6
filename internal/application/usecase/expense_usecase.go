package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// ExpenseUseCase casos de uso de gastos operativos.
type ExpenseUseCase struct {
	repo repository.ExpenseRepository
}

// NewExpenseUseCase construye el caso de uso.
func NewExpenseUseCase(repo repository.ExpenseRepository) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo}
}

// Create registra un gasto. El monto debe ser positivo.
func (uc *ExpenseUseCase) Create(companyID, userID string, in dto.CreateExpenseRequest) (*dto.ExpenseResponse, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	expense := &entity.Expense{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		UserID:      userID,
		Category:    in.Category,
		Description: in.Description,
		Amount:      in.Amount,
		ExpenseDate: in.ExpenseDate,
		ReceiptRef:  in.ReceiptRef,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(expense); err != nil {
		return nil, err
	}
	resp := dto.ToExpenseResponse(expense)
	return &resp, nil
}

// GetByID obtiene un gasto.
func (uc *ExpenseUseCase) GetByID(companyID, id string) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, nil
	}
	resp := dto.ToExpenseResponse(expense)
	return &resp, nil
}

// Update actualiza un gasto.
func (uc *ExpenseUseCase) Update(companyID, id string, in dto.UpdateExpenseRequest) (*dto.ExpenseResponse, error) {
	expense, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, nil
	}
	if in.Category != nil {
		expense.Category = *in.Category
	}
	if in.Description != nil {
		expense.Description = *in.Description
	}
	if in.Amount != nil {
		if !in.Amount.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		expense.Amount = *in.Amount
	}
	if in.ExpenseDate != nil {
		expense.ExpenseDate = *in.ExpenseDate
	}
	if in.ReceiptRef != nil {
		expense.ReceiptRef = *in.ReceiptRef
	}
	expense.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(expense); err != nil {
		return nil, err
	}
	resp := dto.ToExpenseResponse(expense)
	return &resp, nil
}

// List filtra gastos por categoría y rango de fechas.
func (uc *ExpenseUseCase) List(companyID, category string, from, to time.Time, page dto.PageRequest) (*dto.ExpenseListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(companyID, category, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.ExpenseListResponse{
		Items: make([]dto.ExpenseResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, e := range list {
		resp.Items = append(resp.Items, dto.ToExpenseResponse(e))
	}
	return resp, nil
}

// Delete elimina un gasto.
func (uc *ExpenseUseCase) Delete(companyID, id string) error {
	return uc.repo.Delete(companyID, id)
}
