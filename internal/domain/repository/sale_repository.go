package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
)

// SaleFilter filtros de listado de ventas. From/To cero significa sin límite.
type SaleFilter struct {
	From   time.Time
	To     time.Time
	Limit  int
	Offset int
}

// SaleRepository define el puerto de persistencia para Sale y SaleItem.
type SaleRepository interface {
	// NextSequence devuelve el siguiente consecutivo entre los números de venta del vendedor
	// que empiezan con dayPrefix (máximo existente + 1).
	NextSequence(ctx context.Context, sellerID, dayPrefix string) (int, error)
	// Create inserta la cabecera; un número de venta repetido devuelve domain.ErrSaleNumberTaken.
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error)
	ListBySeller(ctx context.Context, sellerID string, f SaleFilter) ([]*entity.Sale, error)
}
