package entity_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
)

func TestInvoiceFullNumber(t *testing.T) {
	inv := entity.Invoice{Prefix: "FV", Number: 42}
	assert.Equal(t, "FV-42", inv.FullNumber())

	sinPrefijo := entity.Invoice{Number: 7}
	assert.Equal(t, "7", sinPrefijo.FullNumber())
}

func TestProductLowStock(t *testing.T) {
	p := entity.Product{Quantity: decimal.NewFromInt(5), ReorderPoint: decimal.NewFromInt(5)}
	assert.True(t, p.LowStock(), "en el punto de reorden exacto ya es stock bajo")

	p.Quantity = decimal.NewFromInt(6)
	assert.False(t, p.LowStock())

	p.Quantity = decimal.Zero
	assert.True(t, p.LowStock())
}

func TestAnnouncementVisibleAt(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	ends := now.Add(24 * time.Hour)

	vigente := entity.Announcement{Active: true, StartsAt: now.Add(-time.Hour), EndsAt: &ends}
	assert.True(t, vigente.VisibleAt(now))

	inactivo := vigente
	inactivo.Active = false
	assert.False(t, inactivo.VisibleAt(now))

	futuro := entity.Announcement{Active: true, StartsAt: now.Add(time.Hour)}
	assert.False(t, futuro.VisibleAt(now), "todavía no inicia")

	vencido := entity.Announcement{Active: true, StartsAt: now.Add(-48 * time.Hour), EndsAt: &now}
	assert.False(t, vencido.VisibleAt(now), "EndsAt es exclusivo")

	sinVencimiento := entity.Announcement{Active: true, StartsAt: now.Add(-time.Hour)}
	assert.True(t, sinVencimiento.VisibleAt(now))
}

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []string{entity.PaymentCash, entity.PaymentCard, entity.PaymentTransfer, entity.PaymentCredit} {
		assert.True(t, entity.ValidPaymentMethod(m), m)
	}
	assert.False(t, entity.ValidPaymentMethod("cheque"))
	assert.False(t, entity.ValidPaymentMethod(""))
}
