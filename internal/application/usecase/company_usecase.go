package usecase

import (
	"time"

	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// CompanyUseCase perfil de la propia empresa. El ciclo de vida (estados) no se
// toca desde aquí: pertenece a la consola super-admin.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Get obtiene el perfil de la empresa del caller.
func (uc *CompanyUseCase) Get(companyID string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	resp := dto.ToCompanyResponse(company)
	return &resp, nil
}

// Update edita los datos de perfil (nunca TaxID ni Status).
func (uc *CompanyUseCase) Update(companyID string, in dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, nil
	}
	if in.Name != nil {
		company.Name = *in.Name
	}
	if in.Industry != nil {
		company.Industry = *in.Industry
	}
	if in.Address != nil {
		company.Address = *in.Address
	}
	if in.Phone != nil {
		company.Phone = *in.Phone
	}
	if in.Email != nil {
		company.Email = *in.Email
	}
	company.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(company); err != nil {
		return nil, err
	}
	resp := dto.ToCompanyResponse(company)
	return &resp, nil
}
