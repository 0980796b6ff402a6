package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
	"github.com/tu-usuario/gestion-pro/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig configuración para generación de tokens de tenant.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// RegistrationTxRunner ejecuta el registro (empresa + primer usuario) en una
// transacción: ninguna de las dos filas existe sin la otra.
type RegistrationTxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		companyRepo repository.CompanyRepository,
		userRepo repository.UserRepository,
	) error) error
}

// AuthUseCase casos de uso de autenticación: registro de empresa y login.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	companyRepo repository.CompanyRepository
	tx          RegistrationTxRunner
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, companyRepo repository.CompanyRepository, tx RegistrationTxRunner, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, companyRepo: companyRepo, tx: tx, jwtCfg: jwtCfg}
}

// RegisterCompany registra una empresa nueva con su primer usuario admin.
// La empresa queda en pending_approval: el login se rechaza hasta que el
// super-admin la apruebe. Empresa y usuario se crean en una sola transacción.
func (uc *AuthUseCase) RegisterCompany(ctx context.Context, in dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if existing, err := uc.companyRepo.GetByTaxID(in.TaxID); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if existing, err := uc.userRepo.GetByEmail(in.AdminEmail); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	company := &entity.Company{
		ID:           uuid.New().String(),
		Name:         in.CompanyName,
		TaxID:        in.TaxID,
		Industry:     in.Industry,
		Address:      in.Address,
		Phone:        in.Phone,
		Email:        in.Email,
		Status:       entity.CompanyPendingApproval,
		DatabaseType: entity.DatabaseTypeShared,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	user := &entity.User{
		ID:             uuid.New().String(),
		CompanyID:      company.ID,
		Email:          in.AdminEmail,
		PasswordHash:   string(hash),
		Name:           in.AdminName,
		Role:           entity.RoleAdmin,
		IsCompanyAdmin: true,
		Status:         entity.UserActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.tx.RunRegistration(ctx, func(companyRepo repository.CompanyRepository, userRepo repository.UserRepository) error {
		if err := companyRepo.Create(company); err != nil {
			return err
		}
		return userRepo.Create(user)
	})
	if err != nil {
		return nil, err
	}
	return &dto.RegisterResponse{
		CompanyID: company.ID,
		UserID:    user.ID,
		Status:    company.Status,
	}, nil
}

// Login verifica credenciales y el estado de la empresa antes de emitir token.
// Si la suspensión de la empresa ya venció, la reactiva aquí mismo y deja entrar:
// es la única transición de estado que no ejecuta el super-admin.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.UserActive {
		return nil, domain.ErrForbidden
	}

	company, err := uc.companyRepo.GetByID(user.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if company.SuspensionLapsed(time.Now().UTC()) {
		if err := uc.companyRepo.UpdateStatus(company.ID, entity.CompanyActive, nil, ""); err != nil {
			return nil, err
		}
		company.Status = entity.CompanyActive
	}
	switch company.Status {
	case entity.CompanyActive:
		// ok
	case entity.CompanySuspended:
		return nil, domain.ErrCompanySuspended
	default:
		return nil, domain.ErrCompanyNotActive
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.CompanyID, user.Role, user.IsCompanyAdmin, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	}, nil
}

// Me devuelve el principal de la sesión tal como está HOY en la DB: el usuario
// con su rol actual y la empresa con su estado actual. Es la fuente que los
// clientes consultan tras el login o al recargar la app.
func (uc *AuthUseCase) Me(companyID, userID string) (*dto.MeResponse, error) {
	user, err := uc.userRepo.GetByCompanyAndID(companyID, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return &dto.MeResponse{
		User:    dto.ToUserResponse(user),
		Company: dto.ToCompanyResponse(company),
	}, nil
}
