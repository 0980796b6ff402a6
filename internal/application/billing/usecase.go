package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// BillingTxRunner ejecuta la emisión de factura en una transacción: el
// consecutivo consumido y la fila de factura comparten destino.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		invoiceRepo repository.InvoiceRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// BillingUseCase casos de uso de facturación.
type BillingUseCase struct {
	invoiceRepo repository.InvoiceRepository
	tx          BillingTxRunner
}

// NewBillingUseCase construye el caso de uso.
func NewBillingUseCase(invoiceRepo repository.InvoiceRepository, tx BillingTxRunner) *BillingUseCase {
	return &BillingUseCase{invoiceRepo: invoiceRepo, tx: tx}
}

// Issue emite la factura de una venta completada. Una venta se factura a lo
// sumo una vez; los totales se copian de la venta, nunca se recalculan.
func (uc *BillingUseCase) Issue(ctx context.Context, companyID string, in dto.IssueInvoiceRequest) (*dto.InvoiceResponse, error) {
	now := time.Now().UTC()
	invoice := &entity.Invoice{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		SaleID:    in.SaleID,
		Prefix:    in.Prefix,
		Status:    entity.InvoiceIssued,
		IssueDate: now,
		DueDate:   in.DueDate,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.tx.RunBilling(ctx, func(invoiceRepo repository.InvoiceRepository, saleRepo repository.SaleRepository) error {
		sale, _, err := saleRepo.GetByID(companyID, in.SaleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		if sale.Status == entity.SaleReturned {
			return domain.ErrConflict
		}
		existing, err := invoiceRepo.GetBySaleID(companyID, in.SaleID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}

		number, err := invoiceRepo.NextNumber(companyID)
		if err != nil {
			return err
		}
		invoice.Number = number
		invoice.CustomerID = sale.CustomerID
		invoice.Subtotal = sale.Subtotal
		invoice.TaxTotal = sale.TaxTotal
		invoice.Total = sale.Total
		return invoiceRepo.Create(invoice)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.ToInvoiceResponse(invoice)
	return &resp, nil
}

// GetByID obtiene una factura.
func (uc *BillingUseCase) GetByID(companyID, id string) (*dto.InvoiceResponse, error) {
	invoice, err := uc.invoiceRepo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, nil
	}
	resp := dto.ToInvoiceResponse(invoice)
	return &resp, nil
}

// List lista facturas de la empresa; status vacío = todas.
func (uc *BillingUseCase) List(companyID, status string, page dto.PageRequest) (*dto.InvoiceListResponse, error) {
	page.DefaultPage()
	list, err := uc.invoiceRepo.List(companyID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.InvoiceListResponse{
		Items: make([]dto.InvoiceResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, inv := range list {
		resp.Items = append(resp.Items, dto.ToInvoiceResponse(inv))
	}
	return resp, nil
}

// UpdateStatus marca la factura como pagada o anulada. Solo desde issued.
func (uc *BillingUseCase) UpdateStatus(companyID, id, status string) (*dto.InvoiceResponse, error) {
	if status != entity.InvoicePaid && status != entity.InvoiceVoid {
		return nil, domain.ErrInvalidInput
	}
	invoice, err := uc.invoiceRepo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if invoice == nil {
		return nil, nil
	}
	if invoice.Status != entity.InvoiceIssued {
		return nil, domain.ErrConflict
	}
	if err := uc.invoiceRepo.UpdateStatus(companyID, id, status); err != nil {
		return nil, err
	}
	invoice.Status = status
	resp := dto.ToInvoiceResponse(invoice)
	return &resp, nil
}
