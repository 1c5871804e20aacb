package postgres

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo ledger de inventario (solo INSERT; las filas nunca se modifican).
type StockTransactionRepo struct {
	q Querier
}

// NewStockTransactionRepository construye el repositorio. Pasar pool o tx.
func NewStockTransactionRepository(q Querier) *StockTransactionRepo {
	return &StockTransactionRepo{q: q}
}

// Create inserta una fila del ledger.
func (r *StockTransactionRepo) Create(ctx context.Context, t *entity.StockTransaction) error {
	query := `
		INSERT INTO stock_transactions (id, seller_id, product_id, quantity_delta, kind, unit_purchase_price, note, reference, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''), NULLIF($8, ''), NULLIF($9, ''), $10)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.SellerID, t.ProductID, t.QuantityDelta, t.Kind, t.UnitPurchasePrice,
		t.Note, t.Reference, t.CreatedBy, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert stock transaction: %w", err)
	}
	return nil
}

// ListByProduct lista las transacciones del producto, más recientes primero.
func (r *StockTransactionRepo) ListByProduct(ctx context.Context, sellerID, productID string, limit, offset int) ([]*entity.StockTransaction, error) {
	query := `
		SELECT id, seller_id, product_id, quantity_delta, kind, unit_purchase_price,
		       COALESCE(note, ''), COALESCE(reference, ''), COALESCE(created_by, ''), created_at
		FROM stock_transactions
		WHERE seller_id = $1 AND product_id = $2
		ORDER BY created_at DESC, seq DESC
		LIMIT $3 OFFSET $4`
	rows, err := r.q.Query(ctx, query, sellerID, productID, nullLimit(limit), offset)
	if err != nil {
		return nil, fmt.Errorf("list stock transactions: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.StockTransaction, 0)
	for rows.Next() {
		var t entity.StockTransaction
		var price decimal.NullDecimal
		if err := rows.Scan(&t.ID, &t.SellerID, &t.ProductID, &t.QuantityDelta, &t.Kind, &price,
			&t.Note, &t.Reference, &t.CreatedBy, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan stock transaction: %w", err)
		}
		if price.Valid {
			d := price.Decimal
			t.UnitPurchasePrice = &d
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

// SumByProduct suma quantity_delta del producto; 0 si no hay filas.
func (r *StockTransactionRepo) SumByProduct(ctx context.Context, sellerID, productID string) (int, error) {
	var sum int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity_delta), 0) FROM stock_transactions WHERE seller_id = $1 AND product_id = $2`,
		sellerID, productID,
	).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum stock transactions: %w", err)
	}
	return sum, nil
}
