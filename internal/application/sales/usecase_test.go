package sales_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/gestion-pro/internal/application/dto"
	"github.com/tu-usuario/gestion-pro/internal/application/sales"
	"github.com/tu-usuario/gestion-pro/internal/domain"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

const (
	testCompanyID = "00000000-0000-0000-0000-0000000000c1"
	testUserID    = "00000000-0000-0000-0000-0000000000u1"
)

type fakeProductRepo struct {
	products map[string]*entity.Product // por ID
}

func (f *fakeProductRepo) Create(p *entity.Product) error { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) GetByID(companyID, id string) (*entity.Product, error) {
	p := f.products[id]
	if p == nil || p.CompanyID != companyID {
		return nil, nil
	}
	return p, nil
}
func (f *fakeProductRepo) GetBySKU(companyID, sku string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.CompanyID == companyID && p.SKU == sku {
			return p, nil
		}
	}
	return nil, nil
}
func (f *fakeProductRepo) GetForUpdate(companyID, id string) (*entity.Product, error) {
	return f.GetByID(companyID, id)
}
func (f *fakeProductRepo) Update(p *entity.Product) error { f.products[p.ID] = p; return nil }
func (f *fakeProductRepo) SetQuantity(companyID, productID string, quantity decimal.Decimal) error {
	p := f.products[productID]
	if p == nil || p.CompanyID != companyID {
		return domain.ErrNotFound
	}
	p.Quantity = quantity
	return nil
}
func (f *fakeProductRepo) List(companyID, search string, limit, offset int) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) ListLowStock(companyID string, limit int) ([]*entity.Product, error) {
	return nil, nil
}
func (f *fakeProductRepo) Delete(companyID, id string) error { delete(f.products, id); return nil }

type fakeSaleRepo struct {
	seq      int64
	sale     *entity.Sale
	items    []*entity.SaleItem
	returned map[string]decimal.Decimal
	status   string
}

func (f *fakeSaleRepo) Create(sale *entity.Sale, items []*entity.SaleItem) error {
	f.sale, f.items = sale, items
	return nil
}
func (f *fakeSaleRepo) NextNumber(companyID string) (int64, error) {
	f.seq++
	return f.seq, nil
}
func (f *fakeSaleRepo) GetByID(companyID, id string) (*entity.Sale, []*entity.SaleItem, error) {
	if f.sale == nil || f.sale.ID != id || f.sale.CompanyID != companyID {
		return nil, nil, nil
	}
	return f.sale, f.items, nil
}
func (f *fakeSaleRepo) List(companyID string, from, to time.Time, limit, offset int) ([]*entity.Sale, error) {
	return nil, nil
}
func (f *fakeSaleRepo) UpdateStatus(companyID, id, status string) error {
	f.status = status
	return nil
}
func (f *fakeSaleRepo) ReturnedQuantities(companyID, saleID string) (map[string]decimal.Decimal, error) {
	if f.returned == nil {
		return map[string]decimal.Decimal{}, nil
	}
	return f.returned, nil
}

type fakeReturnRepo struct {
	ret   *entity.SaleReturn
	items []*entity.SaleReturnItem
}

func (f *fakeReturnRepo) Create(ret *entity.SaleReturn, items []*entity.SaleReturnItem) error {
	f.ret, f.items = ret, items
	return nil
}
func (f *fakeReturnRepo) GetByID(companyID, id string) (*entity.SaleReturn, []*entity.SaleReturnItem, error) {
	return f.ret, f.items, nil
}
func (f *fakeReturnRepo) List(companyID string, limit, offset int) ([]*entity.SaleReturn, error) {
	return nil, nil
}

type fakeMovementRepo struct {
	movements []*entity.StockMovement
}

func (f *fakeMovementRepo) Create(m *entity.StockMovement) error {
	f.movements = append(f.movements, m)
	return nil
}
func (f *fakeMovementRepo) ListByProduct(companyID, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	return nil, nil
}

type fakeCustomerRepo struct {
	customers map[string]*entity.Customer
}

func (f *fakeCustomerRepo) Create(c *entity.Customer) error { return nil }
func (f *fakeCustomerRepo) GetByID(companyID, id string) (*entity.Customer, error) {
	return f.customers[id], nil
}
func (f *fakeCustomerRepo) Update(c *entity.Customer) error { return nil }
func (f *fakeCustomerRepo) List(companyID, search string, limit, offset int) ([]*entity.Customer, error) {
	return nil, nil
}
func (f *fakeCustomerRepo) Delete(companyID, id string) error { return nil }

// fakeTxRunner ejecuta los callbacks directo sobre los fakes, sin transacción real.
type fakeTxRunner struct {
	saleRepo    *fakeSaleRepo
	returnRepo  *fakeReturnRepo
	productRepo *fakeProductRepo
	movRepo     *fakeMovementRepo
}

func (f *fakeTxRunner) RunSale(ctx context.Context, fn func(repository.SaleRepository, repository.ProductRepository, repository.StockMovementRepository) error) error {
	return fn(f.saleRepo, f.productRepo, f.movRepo)
}

func (f *fakeTxRunner) RunReturn(ctx context.Context, fn func(repository.SaleReturnRepository, repository.SaleRepository, repository.ProductRepository, repository.StockMovementRepository) error) error {
	return fn(f.returnRepo, f.saleRepo, f.productRepo, f.movRepo)
}

type fakeNotifier struct {
	lowStock []string // productIDs notificados
}

func (f *fakeNotifier) NotifyLowStock(companyID, productID, productName string) {
	f.lowStock = append(f.lowStock, productID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Armado
// ──────────────────────────────────────────────────────────────────────────────

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func newFixture() (*sales.SalesUseCase, *fakeTxRunner, *fakeNotifier) {
	tx := &fakeTxRunner{
		saleRepo:    &fakeSaleRepo{},
		returnRepo:  &fakeReturnRepo{},
		productRepo: &fakeProductRepo{products: map[string]*entity.Product{}},
		movRepo:     &fakeMovementRepo{},
	}
	notifier := &fakeNotifier{}
	uc := sales.NewSalesUseCase(tx.saleRepo, tx.returnRepo, &fakeCustomerRepo{customers: map[string]*entity.Customer{}}, tx, notifier)
	return uc, tx, notifier
}

func addProduct(tx *fakeTxRunner, id, name, price, tax, qty, reorder string) {
	tx.productRepo.products[id] = &entity.Product{
		ID:           id,
		CompanyID:    testCompanyID,
		SKU:          "SKU-" + id[len(id)-2:],
		Name:         name,
		Price:        dec(price),
		TaxRate:      dec(tax),
		Quantity:     dec(qty),
		ReorderPoint: dec(reorder),
	}
}

const (
	prodA = "11111111-1111-4111-8111-111111111111"
	prodB = "22222222-2222-4222-8222-222222222222"
)

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateSale_DescuentaStockYCongelaPrecio(t *testing.T) {
	uc, tx, _ := newFixture()
	addProduct(tx, prodA, "Jabón Líquido", "10.00", "19", "50", "5")

	out, err := uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		PaymentMethod: "cash",
		Items:         []dto.SaleItemRequest{{ProductID: prodA, Quantity: dec("3")}},
	})
	require.NoError(t, err)
	require.NotNil(t, out)

	// Stock descontado
	assert.True(t, tx.productRepo.products[prodA].Quantity.Equal(dec("47")),
		"el stock debe quedar en 47 tras vender 3 de 50")
	// Línea con nombre y precio congelados
	require.Len(t, out.Items, 1)
	assert.Equal(t, "Jabón Líquido", out.Items[0].ProductName)
	assert.True(t, out.Items[0].UnitPrice.Equal(dec("10.00")))
	// Totales: 3×10 = 30, IVA 19% = 5.70
	assert.True(t, out.Subtotal.Equal(dec("30")), "subtotal: %s", out.Subtotal)
	assert.True(t, out.TaxTotal.Equal(dec("5.7")), "tax: %s", out.TaxTotal)
	assert.True(t, out.Total.Equal(dec("35.7")), "total: %s", out.Total)
	// Consecutivo asignado
	assert.Equal(t, int64(1), out.Number)
	// Movimiento negativo registrado
	require.Len(t, tx.movRepo.movements, 1)
	assert.Equal(t, entity.MovementSale, tx.movRepo.movements[0].Type)
	assert.True(t, tx.movRepo.movements[0].Quantity.Equal(dec("-3")))
}

func TestCreateSale_StockInsuficiente_RechazaTodo(t *testing.T) {
	uc, tx, _ := newFixture()
	addProduct(tx, prodA, "A", "10", "0", "100", "0")
	addProduct(tx, prodB, "B", "5", "0", "2", "0")

	// La línea de B pide más de lo que hay: toda la venta se rechaza.
	_, err := uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		PaymentMethod: "card",
		Items: []dto.SaleItemRequest{
			{ProductID: prodA, Quantity: dec("1")},
			{ProductID: prodB, Quantity: dec("3")},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Nil(t, tx.saleRepo.sale, "no debe persistirse la venta")
}

func TestCreateSale_VentaExactaDelStock_Pasa(t *testing.T) {
	// Frontera: vender exactamente todo el stock es válido; queda en 0.
	uc, tx, _ := newFixture()
	addProduct(tx, prodA, "A", "10", "0", "5", "0")

	out, err := uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		PaymentMethod: "cash",
		Items:         []dto.SaleItemRequest{{ProductID: prodA, Quantity: dec("5")}},
	})
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.True(t, tx.productRepo.products[prodA].Quantity.IsZero())
}

func TestCreateSale_LineasDuplicadas_SeAgregan(t *testing.T) {
	// Dos líneas del mismo producto se agregan antes de validar stock.
	uc, tx, _ := newFixture()
	addProduct(tx, prodA, "A", "10", "0", "5", "0")

	_, err := uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		PaymentMethod: "cash",
		Items: []dto.SaleItemRequest{
			{ProductID: prodA, Quantity: dec("3")},
			{ProductID: prodA, Quantity: dec("3")},
		},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock, "3+3 supera el stock de 5")
}

func TestCreateSale_CruceDePuntoDeReorden_Notifica(t *testing.T) {
	uc, tx, notifier := newFixture()
	addProduct(tx, prodA, "A", "10", "0", "10", "8")

	_, err := uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		PaymentMethod: "cash",
		Items:         []dto.SaleItemRequest{{ProductID: prodA, Quantity: dec("3")}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{prodA}, notifier.lowStock,
		"al quedar en 7 (≤ 8) debe dispararse la alerta de stock bajo")
}

func TestCreateSale_MetodoDePagoInvalido(t *testing.T) {
	uc, _, _ := newFixture()
	_, err := uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		PaymentMethod: "bitcoin",
		Items:         []dto.SaleItemRequest{{ProductID: prodA, Quantity: dec("1")}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSale_CantidadNoPositiva(t *testing.T) {
	uc, _, _ := newFixture()
	_, err := uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		PaymentMethod: "cash",
		Items:         []dto.SaleItemRequest{{ProductID: prodA, Quantity: dec("0")}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateSale_ClienteInexistente(t *testing.T) {
	uc, tx, _ := newFixture()
	addProduct(tx, prodA, "A", "10", "0", "5", "0")
	_, err := uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		CustomerID:    "33333333-3333-4333-8333-333333333333",
		PaymentMethod: "cash",
		Items:         []dto.SaleItemRequest{{ProductID: prodA, Quantity: dec("1")}},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateReturn
// ──────────────────────────────────────────────────────────────────────────────

// sellOne registra una venta de qty unidades de prodA y la devuelve.
func sellOne(t *testing.T, uc *sales.SalesUseCase, qty string) *dto.SaleResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), testCompanyID, testUserID, dto.CreateSaleRequest{
		PaymentMethod: "cash",
		Items:         []dto.SaleItemRequest{{ProductID: prodA, Quantity: dec(qty)}},
	})
	require.NoError(t, err)
	return out
}

func TestCreateReturn_ReponeStockYUsaPrecioCongelado(t *testing.T) {
	uc, tx, _ := newFixture()
	addProduct(tx, prodA, "A", "10", "0", "10", "0")
	sale := sellOne(t, uc, "4")

	// Subida de precio posterior a la venta: el reembolso usa el precio congelado.
	tx.productRepo.products[prodA].Price = dec("99")

	ret, err := uc.CreateReturn(context.Background(), testCompanyID, testUserID, dto.CreateReturnRequest{
		SaleID: sale.ID,
		Items:  []dto.ReturnItemRequest{{ProductID: prodA, Quantity: dec("2")}},
	})
	require.NoError(t, err)
	assert.True(t, tx.productRepo.products[prodA].Quantity.Equal(dec("8")),
		"6 restantes + 2 devueltos")
	assert.True(t, ret.Total.Equal(dec("20")), "2 × 10 (precio congelado), no 2 × 99")
	assert.Equal(t, entity.SalePartiallyReturned, tx.saleRepo.status)
}

func TestCreateReturn_DevolucionCompleta_MarcaVentaReturned(t *testing.T) {
	uc, tx, _ := newFixture()
	addProduct(tx, prodA, "A", "10", "0", "10", "0")
	sale := sellOne(t, uc, "4")

	_, err := uc.CreateReturn(context.Background(), testCompanyID, testUserID, dto.CreateReturnRequest{
		SaleID: sale.ID,
		Items:  []dto.ReturnItemRequest{{ProductID: prodA, Quantity: dec("4")}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.SaleReturned, tx.saleRepo.status)
}

func TestCreateReturn_SuperaLoVendido(t *testing.T) {
	uc, tx, _ := newFixture()
	addProduct(tx, prodA, "A", "10", "0", "10", "0")
	sale := sellOne(t, uc, "4")

	_, err := uc.CreateReturn(context.Background(), testCompanyID, testUserID, dto.CreateReturnRequest{
		SaleID: sale.ID,
		Items:  []dto.ReturnItemRequest{{ProductID: prodA, Quantity: dec("5")}},
	})
	require.ErrorIs(t, err, domain.ErrReturnExceedsSale)
}

func TestCreateReturn_AcumulaConDevolucionesPrevias(t *testing.T) {
	uc, tx, _ := newFixture()
	addProduct(tx, prodA, "A", "10", "0", "10", "0")
	sale := sellOne(t, uc, "4")

	// Ya se devolvieron 3 en una devolución anterior.
	tx.saleRepo.returned = map[string]decimal.Decimal{prodA: dec("3")}

	_, err := uc.CreateReturn(context.Background(), testCompanyID, testUserID, dto.CreateReturnRequest{
		SaleID: sale.ID,
		Items:  []dto.ReturnItemRequest{{ProductID: prodA, Quantity: dec("2")}},
	})
	require.ErrorIs(t, err, domain.ErrReturnExceedsSale, "3 previas + 2 > 4 vendidas")
}

func TestCreateReturn_ProductoAjenoALaVenta(t *testing.T) {
	uc, tx, _ := newFixture()
	addProduct(tx, prodA, "A", "10", "0", "10", "0")
	addProduct(tx, prodB, "B", "5", "0", "10", "0")
	sale := sellOne(t, uc, "4")

	_, err := uc.CreateReturn(context.Background(), testCompanyID, testUserID, dto.CreateReturnRequest{
		SaleID: sale.ID,
		Items:  []dto.ReturnItemRequest{{ProductID: prodB, Quantity: dec("1")}},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateReturn_VentaInexistente(t *testing.T) {
	uc, _, _ := newFixture()
	_, err := uc.CreateReturn(context.Background(), testCompanyID, testUserID, dto.CreateReturnRequest{
		SaleID: "44444444-4444-4444-8444-444444444444",
		Items:  []dto.ReturnItemRequest{{ProductID: prodA, Quantity: dec("1")}},
	})
	require.ErrorIs(t, err, domain.ErrNotFound)
}
