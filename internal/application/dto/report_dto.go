package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TopProductDTO producto en el ranking de ingresos.
type TopProductDTO struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	UnitsSold int             `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
	Profit    decimal.Decimal `json:"profit"`
}

// SalesSummaryResponse resumen de ventas de un período.
type SalesSummaryResponse struct {
	From        time.Time       `json:"from"`
	To          time.Time       `json:"to"`
	SaleCount   int             `json:"sale_count"`
	Revenue     decimal.Decimal `json:"revenue"`
	Discounts   decimal.Decimal `json:"discounts"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	UnitsSold   int             `json:"units_sold"`
	TopProducts []TopProductDTO `json:"top_products"`
}
