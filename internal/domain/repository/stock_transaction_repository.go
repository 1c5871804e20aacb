package repository

import (
	"context"

	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
)

// StockTransactionRepository persiste el ledger de inventario (solo inserción).
type StockTransactionRepository interface {
	Create(ctx context.Context, tx *entity.StockTransaction) error
	// ListByProduct devuelve las transacciones más recientes primero.
	ListByProduct(ctx context.Context, sellerID, productID string, limit, offset int) ([]*entity.StockTransaction, error)
	// SumByProduct suma QuantityDelta de todas las transacciones del producto.
	SumByProduct(ctx context.Context, sellerID, productID string) (int, error)
}
