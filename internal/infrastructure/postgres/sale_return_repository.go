package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/gestion-pro/internal/domain/entity"
	"github.com/tu-usuario/gestion-pro/internal/domain/repository"
)

var _ repository.SaleReturnRepository = (*SaleReturnRepo)(nil)

const saleReturnColumns = `id, company_id, sale_id, user_id, reason, total, created_at`

// SaleReturnRepo implementación de SaleReturnRepository.
type SaleReturnRepo struct {
	q Querier
}

// NewSaleReturnRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleReturnRepository(q Querier) *SaleReturnRepo {
	return &SaleReturnRepo{q: q}
}

// Create inserta la devolución y sus líneas.
func (r *SaleReturnRepo) Create(ret *entity.SaleReturn, items []*entity.SaleReturnItem) error {
	ctx := context.Background()
	_, err := r.q.Exec(ctx, `
		INSERT INTO sale_returns (`+saleReturnColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		ret.ID, ret.CompanyID, ret.SaleID, ret.UserID, ret.Reason, ret.Total, ret.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert sale return: %w", err)
	}
	for _, it := range items {
		_, err := r.q.Exec(ctx, `
			INSERT INTO sale_return_items (id, return_id, product_id, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			it.ID, it.ReturnID, it.ProductID, it.Quantity, it.UnitPrice, it.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert sale return item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la devolución con sus líneas.
func (r *SaleReturnRepo) GetByID(companyID, id string) (*entity.SaleReturn, []*entity.SaleReturnItem, error) {
	ctx := context.Background()
	var ret entity.SaleReturn
	err := r.q.QueryRow(ctx,
		`SELECT `+saleReturnColumns+` FROM sale_returns WHERE company_id = $1 AND id = $2`,
		companyID, id,
	).Scan(&ret.ID, &ret.CompanyID, &ret.SaleID, &ret.UserID, &ret.Reason, &ret.Total, &ret.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("scan sale return: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, return_id, product_id, quantity, unit_price, subtotal
		FROM sale_return_items WHERE return_id = $1`, ret.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list sale return items: %w", err)
	}
	defer rows.Close()
	var items []*entity.SaleReturnItem
	for rows.Next() {
		var it entity.SaleReturnItem
		if err := rows.Scan(&it.ID, &it.ReturnID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.Subtotal); err != nil {
			return nil, nil, fmt.Errorf("scan sale return item: %w", err)
		}
		items = append(items, &it)
	}
	return &ret, items, rows.Err()
}

// List lista devoluciones de la empresa, más recientes primero.
func (r *SaleReturnRepo) List(companyID string, limit, offset int) ([]*entity.SaleReturn, error) {
	rows, err := r.q.Query(context.Background(), `
		SELECT `+saleReturnColumns+` FROM sale_returns
		WHERE company_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sale returns: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleReturn
	for rows.Next() {
		var ret entity.SaleReturn
		if err := rows.Scan(&ret.ID, &ret.CompanyID, &ret.SaleID, &ret.UserID, &ret.Reason, &ret.Total, &ret.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan sale return: %w", err)
		}
		list = append(list, &ret)
	}
	return list, rows.Err()
}
