// Package inventory contiene las reglas puras del ledger de inventario.
package inventory

import (
	"math"

	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
)

// MaxStock tope de unidades por producto (columna INTEGER).
const MaxStock = math.MaxInt32

// ValidateDelta verifica que el delta sea coherente con el tipo de transacción.
// PURCHASE solo suma, SALE solo resta, ADJUSTMENT admite ambos signos.
func ValidateDelta(kind string, delta int) error {
	if delta == 0 {
		return domain.Invalid("la cantidad no puede ser cero")
	}
	if delta > MaxStock || delta < -MaxStock {
		return domain.Invalid("la cantidad supera el máximo de %d unidades", MaxStock)
	}
	switch kind {
	case entity.StockTxPurchase:
		if delta < 0 {
			return domain.Invalid("una compra debe tener cantidad positiva")
		}
	case entity.StockTxSale:
		if delta > 0 {
			return domain.Invalid("una venta debe tener cantidad negativa")
		}
	case entity.StockTxAdjustment:
	default:
		return domain.Invalid("tipo de transacción desconocido: %q", kind)
	}
	return nil
}

// NextStock calcula el nuevo stock. Nunca devuelve un valor negativo:
// si current+delta < 0 retorna *domain.InsufficientStockError. Por encima de MaxStock es ErrInvalidInput.
func NextStock(productID string, current, delta int) (int, error) {
	next := current + delta
	if next < 0 {
		return current, &domain.InsufficientStockError{
			ProductID: productID,
			Available: current,
			Requested: -delta,
		}
	}
	if next > MaxStock {
		return current, domain.Invalid("el stock resultante supera el máximo de %d unidades", MaxStock)
	}
	return next, nil
}

// Status clasifica el stock según el umbral mínimo.
func Status(current, minStock int) string {
	switch {
	case current <= 0:
		return entity.StockStatusOutOfStock
	case current <= minStock:
		return entity.StockStatusLowStock
	default:
		return entity.StockStatusInStock
	}
}
