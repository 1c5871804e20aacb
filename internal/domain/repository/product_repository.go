package repository

import (
	"context"

	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Los Get* devuelven (nil, nil) cuando el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto y bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetBySellerAndSKU(ctx context.Context, sellerID, sku string) (*entity.Product, error)
	// Update modifica datos de catálogo; nunca CurrentStock.
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock fija CurrentStock; solo lo usa el motor de inventario.
	UpdateStock(ctx context.Context, productID string, newStock int) error
	ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Product, error)
	// ListLowStock devuelve productos activos con CurrentStock <= MinStock.
	ListLowStock(ctx context.Context, sellerID string) ([]*entity.Product, error)
}
