package entity

import "time"

// Estados del ciclo de vida de una Company. Los cambios los ejecuta el super-admin,
// con una excepción: suspended→active también ocurre como efecto del login de un
// usuario del tenant cuando suspended_until ya pasó.
//
//	pending_approval → active → {suspended ⇄ active, blocked, banned}
//	pending_approval → rejected (terminal)
const (
	CompanyPendingApproval = "pending_approval"
	CompanyActive          = "active"
	CompanySuspended       = "suspended"
	CompanyBlocked         = "blocked"
	CompanyBanned          = "banned"
	CompanyRejected        = "rejected"
)

// DatabaseTypeShared es el único modo vivo de almacenamiento: una sola base
// compartida filtrada por company_id. El valor "dedicated" que aparece en scripts
// antiguos es histórico y ningún código de este repo lo consulta.
const DatabaseTypeShared = "shared"

// Company representa una empresa/tenant del sistema. Todo recurso de negocio
// cuelga de ella vía company_id y se borra en cascada al eliminarla.
type Company struct {
	ID             string
	Name           string
	TaxID          string // NIT o identificación tributaria
	Industry       string
	Address        string
	Phone          string
	Email          string
	Status         string // ver constantes Company*
	DatabaseType   string // siempre "shared" en el camino vivo
	SuspendedUntil *time.Time
	SuspendReason  string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// companyTransitions tabla de transiciones permitidas del ciclo de vida.
var companyTransitions = map[string][]string{
	CompanyPendingApproval: {CompanyActive, CompanyRejected},
	CompanyActive:          {CompanySuspended, CompanyBlocked, CompanyBanned},
	CompanySuspended:       {CompanyActive, CompanyBlocked, CompanyBanned},
	CompanyBlocked:         {CompanyActive, CompanyBanned},
	// banned y rejected son terminales
}

// CanTransition indica si el paso de from a to está permitido por el ciclo de vida.
func CanTransition(from, to string) bool {
	for _, next := range companyTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SuspensionLapsed indica si la suspensión ya venció en el instante now.
// Una suspensión sin fecha (suspended_until NULL) es indefinida y nunca vence sola.
func (c *Company) SuspensionLapsed(now time.Time) bool {
	return c.Status == CompanySuspended && c.SuspendedUntil != nil && c.SuspendedUntil.Before(now)
}
