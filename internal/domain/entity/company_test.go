package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

func TestCanTransition_CicloDeVida(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		// Aprobación inicial
		{entity.CompanyPendingApproval, entity.CompanyActive, true},
		{entity.CompanyPendingApproval, entity.CompanyRejected, true},
		{entity.CompanyPendingApproval, entity.CompanySuspended, false},
		{entity.CompanyPendingApproval, entity.CompanyBanned, false},
		// Sanciones sobre empresa activa
		{entity.CompanyActive, entity.CompanySuspended, true},
		{entity.CompanyActive, entity.CompanyBlocked, true},
		{entity.CompanyActive, entity.CompanyBanned, true},
		{entity.CompanyActive, entity.CompanyRejected, false},
		{entity.CompanyActive, entity.CompanyPendingApproval, false},
		// La suspensión es reversible y escalable
		{entity.CompanySuspended, entity.CompanyActive, true},
		{entity.CompanySuspended, entity.CompanyBlocked, true},
		{entity.CompanySuspended, entity.CompanyBanned, true},
		// El bloqueo se levanta o escala, nunca baja a suspendido
		{entity.CompanyBlocked, entity.CompanyActive, true},
		{entity.CompanyBlocked, entity.CompanyBanned, true},
		{entity.CompanyBlocked, entity.CompanySuspended, false},
		// banned y rejected son terminales
		{entity.CompanyBanned, entity.CompanyActive, false},
		{entity.CompanyBanned, entity.CompanySuspended, false},
		{entity.CompanyRejected, entity.CompanyActive, false},
		{entity.CompanyRejected, entity.CompanyPendingApproval, false},
		// No hay transición a sí mismo
		{entity.CompanyActive, entity.CompanyActive, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, entity.CanTransition(tc.from, tc.to),
			"transición %s → %s", tc.from, tc.to)
	}
}

func TestSuspensionLapsed(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	cases := []struct {
		name    string
		company entity.Company
		want    bool
	}{
		{"suspensión vencida", entity.Company{Status: entity.CompanySuspended, SuspendedUntil: &past}, true},
		{"suspensión vigente", entity.Company{Status: entity.CompanySuspended, SuspendedUntil: &future}, false},
		{"suspensión indefinida nunca vence", entity.Company{Status: entity.CompanySuspended}, false},
		{"empresa activa con fecha residual", entity.Company{Status: entity.CompanyActive, SuspendedUntil: &past}, false},
		{"empresa bloqueada", entity.Company{Status: entity.CompanyBlocked, SuspendedUntil: &past}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.company.SuspensionLapsed(now))
		})
	}
}
