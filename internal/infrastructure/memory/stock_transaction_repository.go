package memory

import (
	"context"

	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/domain/repository"
)

var _ repository.StockTransactionRepository = (*StockTransactionRepo)(nil)

// StockTransactionRepo ledger en memoria (solo inserción).
type StockTransactionRepo struct {
	a access
}

// Create agrega una fila al ledger.
func (r *StockTransactionRepo) Create(_ context.Context, t *entity.StockTransaction) error {
	return r.a.write(func(st *state) error {
		st.stockTxs = append(st.stockTxs, *t)
		return nil
	})
}

// ListByProduct devuelve las transacciones del producto, más recientes primero.
func (r *StockTransactionRepo) ListByProduct(_ context.Context, sellerID, productID string, limit, offset int) ([]*entity.StockTransaction, error) {
	out := make([]*entity.StockTransaction, 0)
	err := r.a.read(func(st *state) error {
		matched := 0
		for i := len(st.stockTxs) - 1; i >= 0; i-- {
			t := st.stockTxs[i]
			if t.SellerID != sellerID || t.ProductID != productID {
				continue
			}
			matched++
			if matched <= offset {
				continue
			}
			if limit > 0 && len(out) >= limit {
				break
			}
			out = append(out, &t)
		}
		return nil
	})
	return out, err
}

// SumByProduct suma los deltas del producto.
func (r *StockTransactionRepo) SumByProduct(_ context.Context, sellerID, productID string) (int, error) {
	var sum int
	err := r.a.read(func(st *state) error {
		for _, t := range st.stockTxs {
			if t.SellerID == sellerID && t.ProductID == productID {
				sum += t.QuantityDelta
			}
		}
		return nil
	})
	return sum, err
}
