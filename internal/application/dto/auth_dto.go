package dto

// RegisterRequest registro de una empresa nueva con su primer usuario admin.
// La empresa queda en pending_approval hasta que el super-admin la apruebe.
type RegisterRequest struct {
	CompanyName string `json:"company_name" validate:"required,min=2,max=200"`
	TaxID       string `json:"tax_id" validate:"required,min=3,max=50"`
	Industry    string `json:"industry" validate:"max=100"`
	Address     string `json:"address" validate:"max=300"`
	Phone       string `json:"phone" validate:"max=50"`
	Email       string `json:"email" validate:"required,email"`
	AdminName   string `json:"admin_name" validate:"required,min=2,max=200"`
	AdminEmail  string `json:"admin_email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
}

// RegisterResponse confirmación de registro pendiente de aprobación.
type RegisterResponse struct {
	CompanyID string `json:"company_id"`
	UserID    string `json:"user_id"`
	Status    string `json:"status"`
}

// LoginRequest credenciales de un usuario de tenant.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse token emitido y datos del usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// MeResponse principal de la sesión: el usuario y su empresa tal como están
// en la DB en este momento, no como estaban al emitir el token.
type MeResponse struct {
	User    UserResponse    `json:"user"`
	Company CompanyResponse `json:"company"`
}
