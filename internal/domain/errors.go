package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrCompanyNotActive   = errors.New("la empresa no está activa")
	ErrCompanySuspended   = errors.New("la empresa está suspendida")
	ErrInvalidTransition  = errors.New("transición de estado inválida")
	ErrReturnExceedsSale  = errors.New("la devolución supera lo vendido")
)
