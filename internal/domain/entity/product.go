package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de stock (clasificación según MinStock; nunca es un piso obligatorio).
const (
	StockStatusInStock    = "IN_STOCK"
	StockStatusLowStock   = "LOW_STOCK"
	StockStatusOutOfStock = "OUT_OF_STOCK"
)

// Product representa un producto del catálogo de un vendedor.
// CurrentStock es una proyección materializada del ledger: solo la modifica el motor de inventario.
type Product struct {
	ID            string
	SellerID      string
	SKU           string // código único por vendedor
	Name          string
	CurrentStock  int
	PurchasePrice decimal.Decimal // precio de compra (costo)
	SellingPrice  decimal.Decimal // precio de venta
	MinStock      int             // umbral para LOW_STOCK
	Active        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
