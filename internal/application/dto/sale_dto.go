package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest línea del carrito. Si se omiten los precios se usan los vigentes del producto.
type SaleLineRequest struct {
	ProductID     string           `json:"product_id" validate:"required,uuid"`
	Quantity      int              `json:"quantity" validate:"gt=0"`
	SellingPrice  *decimal.Decimal `json:"selling_price,omitempty" validate:"omitempty,gte=0"`
	PurchasePrice *decimal.Decimal `json:"purchase_price,omitempty" validate:"omitempty,gte=0"`
}

// DiscountRequest descuento de la venta; Kind vacío equivale a NONE.
type DiscountRequest struct {
	Kind  string          `json:"kind" validate:"omitempty,discountkind"`
	Value decimal.Decimal `json:"value"`
}

// SettleSaleRequest body para POST /api/sales.
type SettleSaleRequest struct {
	CustomerID string            `json:"customer_id,omitempty" validate:"omitempty,uuid"`
	Lines      []SaleLineRequest `json:"lines" validate:"dive"`
	Discount   DiscountRequest   `json:"discount"`
}

// SaleItemResponse línea de una venta registrada.
type SaleItemResponse struct {
	ProductID     string          `json:"product_id"`
	Quantity      int             `json:"quantity"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Profit        decimal.Decimal `json:"profit"`
}

// SaleResponse venta con sus líneas.
type SaleResponse struct {
	ID             string             `json:"id"`
	SaleNumber     string             `json:"sale_number"`
	CustomerID     string             `json:"customer_id,omitempty"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	DiscountKind   string             `json:"discount_kind"`
	DiscountValue  decimal.Decimal    `json:"discount_value"`
	DiscountAmount decimal.Decimal    `json:"discount_amount"`
	Total          decimal.Decimal    `json:"total"`
	Profit         decimal.Decimal    `json:"profit"`
	CreatedBy      string             `json:"created_by"`
	CreatedAt      time.Time          `json:"created_at"`
	Items          []SaleItemResponse `json:"items,omitempty"`
}

// SaleListResponse lista paginada de ventas (sin líneas).
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
