package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/application/sales"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
	"github.com/tu-usuario/gestion-pro/pkg/textutil"
)

// ProductUseCase casos de uso CRUD del catálogo. El stock solo cambia por
// ventas, devoluciones o el ajuste manual transaccional de este caso de uso.
type ProductUseCase struct {
	repo    repository.ProductRepository
	movRepo repository.StockMovementRepository
	tx      sales.TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, movRepo repository.StockMovementRepository, tx sales.TxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, movRepo: movRepo, tx: tx}
}

// Create crea un producto. El SKU es único por empresa.
func (uc *ProductUseCase) Create(companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, err := uc.repo.GetBySKU(companyID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.Quantity.IsNegative() || in.Price.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	product := &entity.Product{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		SKU:          in.SKU,
		Name:         in.Name,
		Description:  in.Description,
		Category:     in.Category,
		Price:        in.Price,
		Cost:         in.Cost,
		TaxRate:      in.TaxRate,
		Quantity:     in.Quantity,
		ReorderPoint: in.ReorderPoint,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	resp := dto.ToProductResponse(product)
	return &resp, nil
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(companyID, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	resp := dto.ToProductResponse(product)
	return &resp, nil
}

// Update actualiza un producto. No toca Quantity: eso es de los movimientos.
func (uc *ProductUseCase) Update(companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(companyID, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.Cost != nil {
		product.Cost = *in.Cost
	}
	if in.TaxRate != nil {
		product.TaxRate = *in.TaxRate
	}
	if in.ReorderPoint != nil {
		product.ReorderPoint = *in.ReorderPoint
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	resp := dto.ToProductResponse(product)
	return &resp, nil
}

// List busca productos por nombre o SKU, insensible a mayúsculas y acentos.
func (uc *ProductUseCase) List(companyID, search string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(companyID, textutil.FoldSearchTerm(search), page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(list)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, p := range list {
		resp.Items = append(resp.Items, dto.ToProductResponse(p))
	}
	return resp, nil
}

// ListLowStock productos en o por debajo de su punto de reorden.
func (uc *ProductUseCase) ListLowStock(companyID string, limit int) ([]dto.ProductResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	list, err := uc.repo.ListLowStock(companyID, limit)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.ToProductResponse(p))
	}
	return out, nil
}

// AdjustStock fija el stock absoluto de un producto (conteo físico, merma).
// Corre en transacción con bloqueo de fila y deja su movimiento ADJUSTMENT
// con la diferencia aplicada.
func (uc *ProductUseCase) AdjustStock(ctx context.Context, companyID, userID, productID string, in dto.AdjustStockRequest) (*dto.ProductResponse, error) {
	if in.Quantity.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var adjusted *entity.Product
	err := uc.tx.RunSale(ctx, func(_ repository.SaleRepository, productRepo repository.ProductRepository, movRepo repository.StockMovementRepository) error {
		product, err := productRepo.GetForUpdate(companyID, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		diff := in.Quantity.Sub(product.Quantity)
		if err := productRepo.SetQuantity(companyID, productID, in.Quantity); err != nil {
			return err
		}
		if err := movRepo.Create(&entity.StockMovement{
			ID:        uuid.New().String(),
			CompanyID: companyID,
			ProductID: productID,
			Type:      entity.MovementAdjustment,
			Quantity:  diff,
			UserID:    userID,
			CreatedAt: time.Now().UTC(),
		}); err != nil {
			return err
		}
		product.Quantity = in.Quantity
		adjusted = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := dto.ToProductResponse(adjusted)
	return &resp, nil
}

// ListMovements historial de movimientos de stock de un producto.
func (uc *ProductUseCase) ListMovements(companyID, productID string, page dto.PageRequest) ([]dto.StockMovementResponse, error) {
	page.DefaultPage()
	list, err := uc.movRepo.ListByProduct(companyID, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.StockMovementResponse{
			ID:          m.ID,
			ProductID:   m.ProductID,
			Type:        m.Type,
			Quantity:    m.Quantity,
			ReferenceID: m.ReferenceID,
			UserID:      m.UserID,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out, nil
}

// Delete elimina un producto del catálogo. Las ventas históricas conservan
// nombre y precio congelados en sus líneas.
func (uc *ProductUseCase) Delete(companyID, id string) error {
	return uc.repo.Delete(companyID, id)
}
