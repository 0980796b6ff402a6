package entity

import "time"

// Estados de un ticket de soporte.
const (
	TicketOpen       = "open"
	TicketInProgress = "in_progress"
	TicketResolved   = "resolved"
	TicketClosed     = "closed"
)

// SupportTicket ticket de soporte creado por un usuario de un tenant.
// El super-admin lo ve en la cola global (sin filtro de empresa) y cambia su estado.
type SupportTicket struct {
	ID        string
	CompanyID string
	UserID    string
	Subject   string
	Status    string
	Priority  string // low, normal, high
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TicketMessage mensaje dentro de un ticket. AuthorType distingue quién escribió:
// "user" (del tenant) o "superadmin" (soporte de plataforma).
type TicketMessage struct {
	ID         string
	TicketID   string
	AuthorType string
	AuthorID   string
	Body       string
	CreatedAt  time.Time
}
