package repository

import (
	"context"

	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	ListBySeller(ctx context.Context, sellerID string, limit, offset int) ([]*entity.Customer, error)
}
