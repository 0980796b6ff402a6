package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
	"github.com/tu-usuario/gestion-pro/pkg/textutil"
)

// CustomerUseCase casos de uso CRUD del CRM.
type CustomerUseCase struct {
	repo repository.CustomerRepository
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository) *CustomerUseCase {
	return &CustomerUseCase{repo: repo}
}

// Create crea un cliente.
func (uc *CustomerUseCase) Create(companyID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	now := time.Now().UTC()
	customer := &entity.Customer{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		TaxID:     in.TaxID,
		Email:     in.Email,
		Phone:     in.Phone,
		Address:   in.Address,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	resp := dto.ToCustomerResponse(customer)
	return &resp, nil
}

// GetByID obtiene un cliente.
func (uc *CustomerUseCase) GetByID(companyID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	resp := dto.ToCustomerResponse(customer)
	return &resp, nil
}

// Update actualiza un cliente.
func (uc *CustomerUseCase) Update(companyID, id string, in dto.UpdateCustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, nil
	}
	if in.Name != nil {
		customer.Name = *in.Name
	}
	if in.TaxID != nil {
		customer.TaxID = *in.TaxID
	}
	if in.Email != nil {
		customer.Email = *in.Email
	}
	if in.Phone != nil {
		customer.Phone = *in.Phone
	}
	if in.Address != nil {
		customer.Address = *in.Address
	}
	if in.Notes != nil {
		customer.Notes = *in.Notes
	}
	customer.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	resp := dto.ToCustomerResponse(customer)
	return &resp, nil
}

// List busca clientes por nombre, NIT o email, insensible a acentos.
func (uc *CustomerUseCase) List(companyID, search string, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(companyID, textutil.FoldSearchTerm(search), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.CustomerListResponse{
		Items: make([]dto.CustomerResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, c := range list {
		resp.Items = append(resp.Items, dto.ToCustomerResponse(c))
	}
	return resp, nil
}

// Delete elimina un cliente. Las ventas que lo referencian lo conservan por id.
func (uc *CustomerUseCase) Delete(companyID, id string) error {
	return uc.repo.Delete(companyID, id)
}
