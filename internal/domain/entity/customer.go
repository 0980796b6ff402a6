package entity

import "time"

// Customer cliente del CRM de una empresa.
type Customer struct {
	ID        string
	CompanyID string
	Name      string
	TaxID     string // NIT/CC del cliente
	Email     string
	Phone     string
	Address   string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
