package sales

import (
	"context"

	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

// TxRunner ejecuta los casos de uso de venta y devolución dentro de una
// transacción, entregando repositorios atados a ella. El commit solo ocurre
// si el callback retorna nil.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error) error

	RunReturn(ctx context.Context, fn func(
		returnRepo repository.SaleReturnRepository,
		saleRepo repository.SaleRepository,
		productRepo repository.ProductRepository,
		movRepo repository.StockMovementRepository,
	) error) error
}

// Notifier publica avisos generados por las ventas (stock bajo). Se implementa
// sobre NotificationRepository; la interfaz existe para no acoplar la venta al
// esquema de notificaciones.
type Notifier interface {
	NotifyLowStock(companyID, productID, productName string)
}
