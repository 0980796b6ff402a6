package entity

import "time"

// SuperAdmin operador de plataforma. Principal completamente separado de User:
// vive en su propia tabla, no pertenece a ninguna empresa y opera SIN filtro
// de company_id (aprobación, suspensión, estadísticas globales).
type SuperAdmin struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
