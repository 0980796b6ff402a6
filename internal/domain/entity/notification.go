package entity

import "time"

// Tipos de notificación generados por el sistema.
const (
	NotifCompanyApproved = "company_approved"
	NotifTicketReplied   = "ticket_replied"
	NotifLowStock        = "low_stock"
	NotifAnnouncement    = "announcement"
)

// Notification aviso dirigido a un usuario concreto de una empresa.
type Notification struct {
	ID        string
	CompanyID string
	UserID    string
	Type      string
	Title     string
	Body      string
	Read      bool
	CreatedAt time.Time
}
