package sales

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// SalesUseCase casos de uso de ventas y devoluciones. Todo cambio de stock pasa
// por aquí dentro de una transacción con bloqueo de fila.
type SalesUseCase struct {
	saleRepo     repository.SaleRepository
	returnRepo   repository.SaleReturnRepository
	customerRepo repository.CustomerRepository
	tx           TxRunner
	notifier     Notifier
}

// NewSalesUseCase construye el caso de uso.
func NewSalesUseCase(saleRepo repository.SaleRepository, returnRepo repository.SaleReturnRepository, customerRepo repository.CustomerRepository, tx TxRunner, notifier Notifier) *SalesUseCase {
	return &SalesUseCase{saleRepo: saleRepo, returnRepo: returnRepo, customerRepo: customerRepo, tx: tx, notifier: notifier}
}

// lowStockAlert producto que cruzó su punto de reorden durante la venta.
type lowStockAlert struct {
	productID   string
	productName string
}

// Create registra una venta. Dentro de UNA transacción: bloquea cada producto,
// verifica stock, congela nombre y precio en la línea, descuenta stock, registra
// el movimiento y asigna el consecutivo. Si cualquier línea no tiene stock
// suficiente la venta completa se rechaza con ErrInsufficientStock.
func (uc *SalesUseCase) Create(ctx context.Context, companyID, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	// Cantidades agregadas por producto; rechaza cantidades no positivas.
	qtyByProduct := make(map[string]decimal.Decimal, len(in.Items))
	for _, it := range in.Items {
		if !it.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		qtyByProduct[it.ProductID] = qtyByProduct[it.ProductID].Add(it.Quantity)
	}
	if in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(companyID, in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
	}

	// Orden estable de bloqueo para evitar deadlocks entre ventas concurrentes.
	productIDs := make([]string, 0, len(qtyByProduct))
	for id := range qtyByProduct {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	now := time.Now().UTC()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		CustomerID:    in.CustomerID,
		UserID:        userID,
		Status:        entity.SaleCompleted,
		PaymentMethod: in.PaymentMethod,
		Notes:         in.Notes,
		CreatedAt:     now,
	}
	var items []*entity.SaleItem
	var alerts []lowStockAlert

	err := uc.tx.RunSale(ctx, func(saleRepo repository.SaleRepository, productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) error {
		subtotal, taxTotal := decimal.Zero, decimal.Zero
		items = items[:0]
		alerts = alerts[:0]

		for _, productID := range productIDs {
			qty := qtyByProduct[productID]
			product, err := productRepo.GetForUpdate(companyID, productID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if product.Quantity.LessThan(qty) {
				return domain.ErrInsufficientStock
			}

			lineSubtotal := qty.Mul(product.Price)
			lineTax := lineSubtotal.Mul(product.TaxRate).Div(decimal.NewFromInt(100))
			subtotal = subtotal.Add(lineSubtotal)
			taxTotal = taxTotal.Add(lineTax)
			items = append(items, &entity.SaleItem{
				ID:          uuid.New().String(),
				SaleID:      sale.ID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    qty,
				UnitPrice:   product.Price,
				TaxRate:     product.TaxRate,
				Subtotal:    lineSubtotal,
			})

			remaining := product.Quantity.Sub(qty)
			if err := productRepo.SetQuantity(companyID, product.ID, remaining); err != nil {
				return err
			}
			if err := movRepo.Create(&entity.StockMovement{
				ID:          uuid.New().String(),
				CompanyID:   companyID,
				ProductID:   product.ID,
				Type:        entity.MovementSale,
				Quantity:    qty.Neg(),
				ReferenceID: sale.ID,
				UserID:      userID,
				CreatedAt:   now,
			}); err != nil {
				return err
			}
			if remaining.LessThanOrEqual(product.ReorderPoint) {
				alerts = append(alerts, lowStockAlert{productID: product.ID, productName: product.Name})
			}
		}

		number, err := saleRepo.NextNumber(companyID)
		if err != nil {
			return err
		}
		sale.Number = number
		sale.Subtotal = subtotal
		sale.TaxTotal = taxTotal
		sale.Total = subtotal.Add(taxTotal)
		return saleRepo.Create(sale, items)
	})
	if err != nil {
		return nil, err
	}

	// Fuera de la tx: las notificaciones no deben poder revertir una venta ya hecha.
	if uc.notifier != nil {
		for _, a := range alerts {
			uc.notifier.NotifyLowStock(companyID, a.productID, a.productName)
		}
	}

	resp := dto.ToSaleResponse(sale, items)
	return &resp, nil
}

// GetByID obtiene una venta con sus líneas.
func (uc *SalesUseCase) GetByID(companyID, id string) (*dto.SaleResponse, error) {
	sale, items, err := uc.saleRepo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	resp := dto.ToSaleResponse(sale, items)
	return &resp, nil
}

// List lista las ventas de la empresa en un rango de fechas.
func (uc *SalesUseCase) List(companyID string, from, to time.Time, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	list, err := uc.saleRepo.List(companyID, from, to, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.SaleListResponse{
		Items: make([]dto.SaleResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, s := range list {
		resp.Items = append(resp.Items, dto.ToSaleResponse(s, nil))
	}
	return resp, nil
}

// CreateReturn registra una devolución. Valida contra lo vendido menos lo ya
// devuelto, restituye stock con bloqueo de fila y actualiza el estado de la venta.
func (uc *SalesUseCase) CreateReturn(ctx context.Context, companyID, userID string, in dto.CreateReturnRequest) (*dto.ReturnResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	reqByProduct := make(map[string]decimal.Decimal, len(in.Items))
	for _, it := range in.Items {
		if !it.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		reqByProduct[it.ProductID] = reqByProduct[it.ProductID].Add(it.Quantity)
	}
	productIDs := make([]string, 0, len(reqByProduct))
	for id := range reqByProduct {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	now := time.Now().UTC()
	ret := &entity.SaleReturn{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		SaleID:    in.SaleID,
		UserID:    userID,
		Reason:    in.Reason,
		CreatedAt: now,
	}
	var items []*entity.SaleReturnItem

	err := uc.tx.RunReturn(ctx, func(returnRepo repository.SaleReturnRepository, saleRepo repository.SaleRepository, productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) error {
		sale, saleItems, err := saleRepo.GetByID(companyID, in.SaleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrNotFound
		}
		soldByProduct := make(map[string]decimal.Decimal, len(saleItems))
		priceByProduct := make(map[string]decimal.Decimal, len(saleItems))
		for _, it := range saleItems {
			soldByProduct[it.ProductID] = soldByProduct[it.ProductID].Add(it.Quantity)
			priceByProduct[it.ProductID] = it.UnitPrice
		}
		returned, err := saleRepo.ReturnedQuantities(companyID, in.SaleID)
		if err != nil {
			return err
		}

		total := decimal.Zero
		items = items[:0]
		for _, productID := range productIDs {
			qty := reqByProduct[productID]
			sold, ok := soldByProduct[productID]
			if !ok {
				return domain.ErrInvalidInput
			}
			if returned[productID].Add(qty).GreaterThan(sold) {
				return domain.ErrReturnExceedsSale
			}

			product, err := productRepo.GetForUpdate(companyID, productID)
			if err != nil {
				return err
			}
			if product == nil {
				return domain.ErrNotFound
			}
			if err := productRepo.SetQuantity(companyID, productID, product.Quantity.Add(qty)); err != nil {
				return err
			}
			if err := movRepo.Create(&entity.StockMovement{
				ID:          uuid.New().String(),
				CompanyID:   companyID,
				ProductID:   productID,
				Type:        entity.MovementReturn,
				Quantity:    qty,
				ReferenceID: ret.ID,
				UserID:      userID,
				CreatedAt:   now,
			}); err != nil {
				return err
			}

			unitPrice := priceByProduct[productID]
			lineSubtotal := qty.Mul(unitPrice)
			total = total.Add(lineSubtotal)
			items = append(items, &entity.SaleReturnItem{
				ID:        uuid.New().String(),
				ReturnID:  ret.ID,
				ProductID: productID,
				Quantity:  qty,
				UnitPrice: unitPrice,
				Subtotal:  lineSubtotal,
			})
		}
		ret.Total = total
		if err := returnRepo.Create(ret, items); err != nil {
			return err
		}

		// Estado de la venta: returned si todo fue devuelto, partially_returned si no.
		fully := true
		for productID, sold := range soldByProduct {
			if returned[productID].Add(reqByProduct[productID]).LessThan(sold) {
				fully = false
				break
			}
		}
		status := entity.SalePartiallyReturned
		if fully {
			status = entity.SaleReturned
		}
		return saleRepo.UpdateStatus(companyID, sale.ID, status)
	})
	if err != nil {
		return nil, err
	}
	resp := dto.ToReturnResponse(ret, items)
	return &resp, nil
}

// GetReturn obtiene una devolución con sus líneas.
func (uc *SalesUseCase) GetReturn(companyID, id string) (*dto.ReturnResponse, error) {
	ret, items, err := uc.returnRepo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if ret == nil {
		return nil, nil
	}
	resp := dto.ToReturnResponse(ret, items)
	return &resp, nil
}

// ListReturns lista devoluciones de la empresa.
func (uc *SalesUseCase) ListReturns(companyID string, page dto.PageRequest) (*dto.ReturnListResponse, error) {
	page.DefaultPage()
	list, err := uc.returnRepo.List(companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.ReturnListResponse{
		Items: make([]dto.ReturnResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, r := range list {
		resp.Items = append(resp.Items, dto.ToReturnResponse(r, nil))
	}
	return resp, nil
}
