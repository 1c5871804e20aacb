package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de descuento aplicables a una venta.
const (
	DiscountNone       = "NONE"
	DiscountPercentage = "PERCENTAGE"
	DiscountFlat       = "FLAT"
)

// Sale representa la cabecera de una venta. Se escribe una sola vez en el checkout.
type Sale struct {
	ID             string
	SellerID       string
	CustomerID     string // vacío si es venta de mostrador
	SaleNumber     string
	Subtotal       decimal.Decimal
	DiscountKind   string
	DiscountValue  decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
	Profit         decimal.Decimal // ganancia bruta, no se reduce por el descuento
	CreatedBy      string
	CreatedAt      time.Time
}

// SaleItem representa una línea de la venta con precios congelados al momento del checkout.
type SaleItem struct {
	ID            string
	SaleID        string
	ProductID     string
	Quantity      int
	SellingPrice  decimal.Decimal
	PurchasePrice decimal.Decimal
	Subtotal      decimal.Decimal // SellingPrice * Quantity
	Profit        decimal.Decimal // (SellingPrice - PurchasePrice) * Quantity
}
