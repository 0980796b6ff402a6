package billing

import (
	"context"
	"fmt"

	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// PDFUseCase genera la representación gráfica (PDF) de una factura.
type PDFUseCase struct {
	invoiceRepo  repository.InvoiceRepository
	saleRepo     repository.SaleRepository
	companyRepo  repository.CompanyRepository
	customerRepo repository.CustomerRepository
	generator    InvoicePDFGenerator
}

// NewPDFUseCase construye el caso de uso inyectando todas sus dependencias.
func NewPDFUseCase(
	invoiceRepo repository.InvoiceRepository,
	saleRepo repository.SaleRepository,
	companyRepo repository.CompanyRepository,
	customerRepo repository.CustomerRepository,
	generator InvoicePDFGenerator,
) *PDFUseCase {
	return &PDFUseCase{
		invoiceRepo:  invoiceRepo,
		saleRepo:     saleRepo,
		companyRepo:  companyRepo,
		customerRepo: customerRepo,
		generator:    generator,
	}
}

// DownloadInvoicePDF arma el PDF de la factura con las líneas congeladas de la
// venta. Las lecturas van todas filtradas por companyID: una factura de otra
// empresa simplemente no existe para el caller.
func (uc *PDFUseCase) DownloadInvoicePDF(ctx context.Context, companyID, invoiceID string) (pdfBytes []byte, filename string, err error) {
	inv, err := uc.invoiceRepo.GetByID(companyID, invoiceID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener factura: %w", err)
	}
	if inv == nil {
		return nil, "", domain.ErrNotFound
	}

	company, err := uc.companyRepo.GetByID(companyID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener empresa: %w", err)
	}
	if company == nil {
		return nil, "", domain.ErrNotFound
	}

	// El cliente es opcional (venta de mostrador sin cliente).
	var customer *entity.Customer
	if inv.CustomerID != "" {
		customer, err = uc.customerRepo.GetByID(companyID, inv.CustomerID)
		if err != nil {
			return nil, "", fmt.Errorf("pdf: obtener cliente: %w", err)
		}
	}

	_, saleItems, err := uc.saleRepo.GetByID(companyID, inv.SaleID)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener venta: %w", err)
	}
	lines := make([]InvoiceLineForPDF, 0, len(saleItems))
	for _, it := range saleItems {
		lines = append(lines, InvoiceLineForPDF{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TaxRate:     it.TaxRate,
			Subtotal:    it.Subtotal,
		})
	}

	pdfBytes, err = uc.generator.GenerateInvoicePDF(ctx, inv, company, customer, lines)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename = fmt.Sprintf("factura_%s.pdf", inv.FullNumber())
	return pdfBytes, filename, nil
}
