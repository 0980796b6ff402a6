package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrExpired token vencido. Error distinguible para que el cliente dispare re-login
// (código TOKEN_EXPIRED en la capa HTTP) en lugar de tratarlo como firma inválida.
var ErrExpired = errors.New("jwt: token expirado")

// Claims incluye los claims estándar JWT más los campos propios de un usuario de empresa.
// CompanyID y Role viajan en el token solo como referencia: el middleware de auth
// SIEMPRE relee el usuario en la DB antes de autorizar (los claims pueden estar viejos).
type Claims struct {
	jwt.RegisteredClaims
	UserID       string `json:"user_id"`
	CompanyID    string `json:"company_id"`
	Role         string `json:"role"` // "admin" | "manager" | "sales"
	CompanyAdmin bool   `json:"is_company_admin"`
}

// SuperAdminClaims claims del emisor paralelo de la consola super-admin.
// No lleva company_id: el super-admin no pertenece a ningún tenant.
type SuperAdminClaims struct {
	jwt.RegisteredClaims
	AdminID string `json:"admin_id"`
}

// Generate genera un token JWT firmado para un usuario de empresa.
func Generate(secret, userID, companyID, role string, companyAdmin bool, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:       userID,
		CompanyID:    companyID,
		Role:         role,
		CompanyAdmin: companyAdmin,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida un token de usuario de empresa y devuelve sus claims.
// Exige que el issuer coincida: un token de la consola super-admin (otro issuer y
// otro secret) nunca pasa por aquí aunque se filtrara el secret.
func Parse(secret, issuer, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}

// GenerateSuperAdmin genera un token para la consola super-admin (emisor paralelo).
func GenerateSuperAdmin(secret, adminID, issuer string, expMinutes int) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := SuperAdminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   adminID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		AdminID: adminID,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseSuperAdmin valida un token super-admin y devuelve el adminID.
func ParseSuperAdmin(secret, issuer, tokenString string) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &SuperAdminClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrExpired
		}
		return "", err
	}
	claims, ok := token.Claims.(*SuperAdminClaims)
	if !ok || !token.Valid || claims.AdminID == "" {
		return "", fmt.Errorf("claims inválidos")
	}
	return claims.AdminID, nil
}
