package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo implementación del libro de movimientos de stock.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create registra un movimiento. Se llama dentro de la misma tx que cambió el stock.
func (r *StockMovementRepo) Create(m *entity.StockMovement) error {
	_, err := r.q.Exec(context.Background(), `
		INSERT INTO stock_movements (id, company_id, product_id, type, quantity, reference_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.CompanyID, m.ProductID, m.Type, m.Quantity, nullIfEmpty(m.ReferenceID), m.UserID, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

// ListByProduct lista el historial de movimientos de un producto, más recientes primero.
func (r *StockMovementRepo) ListByProduct(companyID, productID string, limit, offset int) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT id, company_id, product_id, type, quantity, reference_id, user_id, created_at
		FROM stock_movements
		WHERE company_id = $1 AND product_id = $2
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`,
		companyID, productID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		var m entity.StockMovement
		var ref *string
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.ProductID, &m.Type, &m.Quantity, &ref, &m.UserID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		if ref != nil {
			m.ReferenceID = *ref
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
