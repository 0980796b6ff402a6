package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/policy"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
	"github.com/tu-usuario/gestion-pro/pkg/jwt"
)

// Locals keys pobladas por los middlewares de auth.
const (
	LocalUserID       = "user_id"
	LocalCompanyID    = "company_id"
	LocalRole         = "role"
	LocalCompanyAdmin = "company_admin"
	LocalAdminID      = "admin_id"
)

// bearerToken extrae el token del header Authorization. Solo si allowQuery es
// true acepta además el query param "token": ese respaldo existe únicamente
// para descargas directas desde el navegador (PDF), que no pueden poner headers.
func bearerToken(c *fiber.Ctx, allowQuery bool) (string, *dto.ErrorResponse) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		if allowQuery {
			if qt := c.Query("token"); qt != "" {
				return qt, nil
			}
		}
		return "", &dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"}
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", &dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"}
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", &dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"}
	}
	return token, nil
}

// AuthMiddleware valida el token de tenant y RELEE el usuario en la DB: rol,
// estado y pertenencia se toman de la fila actual, nunca de los claims. Un
// usuario degradado o desactivado pierde acceso en su siguiente petición
// aunque su token siga vigente.
func AuthMiddleware(jwtSecret, issuer string, userRepo repository.UserRepository) fiber.Handler {
	return authMiddleware(jwtSecret, issuer, userRepo, false)
}

// DownloadAuthMiddleware variante del auth de tenant que además acepta el token
// en el query param "token". Solo se monta en rutas de descarga (GET del PDF);
// el resto de la API exige el header.
func DownloadAuthMiddleware(jwtSecret, issuer string, userRepo repository.UserRepository) fiber.Handler {
	return authMiddleware(jwtSecret, issuer, userRepo, true)
}

func authMiddleware(jwtSecret, issuer string, userRepo repository.UserRepository, allowQueryToken bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, errResp := bearerToken(c, allowQueryToken)
		if errResp != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(*errResp)
		}
		claims, err := jwt.Parse(jwtSecret, issuer, tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpired) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "TOKEN_EXPIRED", Message: "token expirado, inicia sesión de nuevo"})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido"})
		}

		user, err := userRepo.GetByID(claims.UserID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error verificando usuario"})
		}
		if user == nil || user.CompanyID != claims.CompanyID {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "usuario inválido"})
		}
		// Cuenta encontrada pero suspendida: 403, no es un problema del token.
		if user.Status != entity.UserActive {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "ACCOUNT_DISABLED", Message: "tu cuenta está desactivada"})
		}

		c.Locals(LocalUserID, user.ID)
		c.Locals(LocalCompanyID, user.CompanyID)
		c.Locals(LocalRole, user.Role)
		c.Locals(LocalCompanyAdmin, user.IsCompanyAdmin)
		return c.Next()
	}
}

// RequireTenant corta las peticiones que llegaron sin tenant resuelto.
func RequireTenant() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetCompanyID(c) == "" {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_TENANT", Message: "empresa no resuelta para esta petición"})
		}
		return c.Next()
	}
}

// RequirePermission único gate de autorización del tenant: consulta la tabla
// de capacidades con el rol releído de la DB.
func RequirePermission(perm policy.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !policy.Allows(GetRole(c), IsCompanyAdmin(c), perm) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "tu rol no tiene esta capacidad"})
		}
		return c.Next()
	}
}

// SuperAdminMiddleware valida el token de plataforma (secreto e issuer propios)
// y relee al operador en su tabla. Un token de tenant jamás pasa por aquí.
func SuperAdminMiddleware(jwtSecret, issuer string, adminRepo repository.SuperAdminRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, errResp := bearerToken(c, false)
		if errResp != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(*errResp)
		}
		adminID, err := jwt.ParseSuperAdmin(jwtSecret, issuer, tokenString)
		if err != nil {
			if errors.Is(err, jwt.ErrExpired) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "TOKEN_EXPIRED", Message: "token expirado, inicia sesión de nuevo"})
			}
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido"})
		}
		admin, err := adminRepo.GetByID(adminID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error verificando operador"})
		}
		if admin == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "operador inválido"})
		}
		c.Locals(LocalAdminID, admin.ID)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetCompanyID devuelve el CompanyID del contexto (después del middleware de auth).
func GetCompanyID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalCompanyID).(string)
	return s
}

// GetRole devuelve el rol releído de la DB.
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}

// IsCompanyAdmin indica si el caller es el admin fundador de su empresa.
func IsCompanyAdmin(c *fiber.Ctx) bool {
	b, _ := c.Locals(LocalCompanyAdmin).(bool)
	return b
}

// GetAdminID devuelve el AdminID del contexto (después del middleware super-admin).
func GetAdminID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalAdminID).(string)
	return s
}
