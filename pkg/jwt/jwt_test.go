package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pro/pkg/jwt"
)

const (
	tenantSecret = "secreto-tenant-para-tests"
	tenantIssuer = "gestion-pro"
	adminSecret  = "secreto-consola-para-tests"
	adminIssuer  = "gestion-pro-superadmin"

	userID    = "00000000-0000-0000-0000-0000000000u1"
	companyID = "00000000-0000-0000-0000-0000000000c1"
	adminID   = "00000000-0000-0000-0000-0000000000a1"
)

func TestGenerateParse_IdaYVuelta(t *testing.T) {
	token, err := jwt.Generate(tenantSecret, userID, companyID, "manager", true, tenantIssuer, 60)
	require.NoError(t, err)

	claims, err := jwt.Parse(tenantSecret, tenantIssuer, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, companyID, claims.CompanyID)
	assert.Equal(t, "manager", claims.Role)
	assert.True(t, claims.CompanyAdmin)
	assert.Equal(t, userID, claims.Subject)
}

func TestParse_TokenVencido(t *testing.T) {
	token, err := jwt.Generate(tenantSecret, userID, companyID, "sales", false, tenantIssuer, -5)
	require.NoError(t, err)

	_, err = jwt.Parse(tenantSecret, tenantIssuer, token)
	require.ErrorIs(t, err, jwt.ErrExpired)
}

func TestParse_SecretIncorrecto(t *testing.T) {
	token, err := jwt.Generate(tenantSecret, userID, companyID, "admin", false, tenantIssuer, 60)
	require.NoError(t, err)

	_, err = jwt.Parse("otro-secreto", tenantIssuer, token)
	require.Error(t, err)
	assert.NotErrorIs(t, err, jwt.ErrExpired)
}

func TestParse_IssuerIncorrecto(t *testing.T) {
	// Mismo secret pero otro issuer: el token no se acepta.
	token, err := jwt.Generate(tenantSecret, userID, companyID, "admin", false, "otro-emisor", 60)
	require.NoError(t, err)

	_, err = jwt.Parse(tenantSecret, tenantIssuer, token)
	require.Error(t, err)
}

func TestParse_BasuraYVacio(t *testing.T) {
	_, err := jwt.Parse(tenantSecret, tenantIssuer, "no-es-un-jwt")
	require.Error(t, err)

	_, err = jwt.Parse(tenantSecret, tenantIssuer, "")
	require.Error(t, err)

	_, err = jwt.Parse("", tenantIssuer, "lo-que-sea")
	require.Error(t, err, "sin secret configurado nada valida")
}

func TestSuperAdmin_IdaYVuelta(t *testing.T) {
	token, err := jwt.GenerateSuperAdmin(adminSecret, adminID, adminIssuer, 30)
	require.NoError(t, err)

	got, err := jwt.ParseSuperAdmin(adminSecret, adminIssuer, token)
	require.NoError(t, err)
	assert.Equal(t, adminID, got)
}

func TestSuperAdmin_TokenVencido(t *testing.T) {
	token, err := jwt.GenerateSuperAdmin(adminSecret, adminID, adminIssuer, -1)
	require.NoError(t, err)

	_, err = jwt.ParseSuperAdmin(adminSecret, adminIssuer, token)
	require.ErrorIs(t, err, jwt.ErrExpired)
}

func TestEmisoresSeparados_NoSeCruzan(t *testing.T) {
	// Un token de tenant jamás entra a la consola super-admin y viceversa:
	// los dos emisores usan secret e issuer distintos.
	tenantToken, err := jwt.Generate(tenantSecret, userID, companyID, "admin", true, tenantIssuer, 60)
	require.NoError(t, err)
	saToken, err := jwt.GenerateSuperAdmin(adminSecret, adminID, adminIssuer, 60)
	require.NoError(t, err)

	_, err = jwt.ParseSuperAdmin(adminSecret, adminIssuer, tenantToken)
	require.Error(t, err, "token de tenant rechazado en la consola")

	_, err = jwt.Parse(tenantSecret, tenantIssuer, saToken)
	require.Error(t, err, "token de consola rechazado en el tenant")
}

func TestSuperAdmin_MismoSecretOtroIssuer_Rechazado(t *testing.T) {
	// Defensa en profundidad: aunque ambos emisores compartieran secret por un
	// error de configuración, el issuer sigue separándolos.
	tenantToken, err := jwt.Generate(adminSecret, userID, companyID, "admin", true, tenantIssuer, 60)
	require.NoError(t, err)

	_, err = jwt.ParseSuperAdmin(adminSecret, adminIssuer, tenantToken)
	require.Error(t, err)
}
