package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// ListBySeller devuelve los usuarios del vendedor por fecha de alta.
	ListBySeller(ctx context.Context, sellerID string) ([]*entity.User, error)
	// UpdateStatus cambia el estado; ErrNotFound si el usuario no existe.
	UpdateStatus(ctx context.Context, id, status string, updatedAt time.Time) error
}

// SellerRepository define el puerto de persistencia para Seller (tenant).
type SellerRepository interface {
	Create(ctx context.Context, seller *entity.Seller) error
	GetByID(ctx context.Context, id string) (*entity.Seller, error)
	// Update persiste nombre y plan; ErrNotFound si el vendedor no existe.
	Update(ctx context.Context, seller *entity.Seller) error
}
