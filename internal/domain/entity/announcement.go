package entity

import "time"

// Announcement comunicado de plataforma redactado por un super-admin.
// Es el único recurso que los tenants leen sin ser dueños: se publica para todos,
// y cada empresa solo ve los que están activos dentro de su ventana de vigencia.
type Announcement struct {
	ID        string
	AuthorID  string // super-admin autor
	Title     string
	Body      string
	Active    bool
	StartsAt  time.Time
	EndsAt    *time.Time // nil = sin vencimiento
	CreatedAt time.Time
	UpdatedAt time.Time
}

// VisibleAt indica si el comunicado debe mostrarse en el instante now.
func (a *Announcement) VisibleAt(now time.Time) bool {
	if !a.Active || now.Before(a.StartsAt) {
		return false
	}
	return a.EndsAt == nil || now.Before(*a.EndsAt)
}
