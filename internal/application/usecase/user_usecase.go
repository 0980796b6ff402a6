package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
	"golang.org/x/crypto/bcrypt"
)

// UserUseCase gestión de usuarios dentro de la propia empresa.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// Create da de alta un usuario en la empresa del caller. El email es único
// en toda la plataforma: identifica la cuenta en el login.
func (uc *UserUseCase) Create(companyID string, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !entity.ValidRole(in.Role) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         in.Role,
		Status:       entity.UserActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(user); err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// GetByID obtiene un usuario de la empresa.
func (uc *UserUseCase) GetByID(companyID, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByCompanyAndID(companyID, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// Update cambia nombre, rol o estado. El usuario fundador (is_company_admin)
// no puede ser degradado ni desactivado.
func (uc *UserUseCase) Update(companyID, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByCompanyAndID(companyID, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, nil
	}
	if user.IsCompanyAdmin && (in.Role != nil || in.Status != nil) {
		return nil, domain.ErrForbidden
	}
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.Status != nil {
		user.Status = *in.Status
	}
	user.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(user); err != nil {
		return nil, err
	}
	resp := dto.ToUserResponse(user)
	return &resp, nil
}

// List lista los usuarios de la empresa.
func (uc *UserUseCase) List(companyID string, page dto.PageRequest) (*dto.UserListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListByCompany(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.UserListResponse{Items: make([]dto.UserResponse, 0, len(list))}
	for _, u := range list {
		resp.Items = append(resp.Items, dto.ToUserResponse(u))
	}
	return resp, nil
}

// Delete elimina un usuario. El fundador no se puede eliminar.
func (uc *UserUseCase) Delete(companyID, id string) error {
	user, err := uc.repo.GetByCompanyAndID(companyID, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrNotFound
	}
	if user.IsCompanyAdmin {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(companyID, id)
}
