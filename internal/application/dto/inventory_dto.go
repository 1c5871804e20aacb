package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockChangeRequest body para POST /api/inventory/stock-changes.
type StockChangeRequest struct {
	ProductID         string           `json:"product_id" validate:"required,uuid"`
	QuantityDelta     int              `json:"quantity_delta" validate:"ne=0"`
	Kind              string           `json:"kind" validate:"required,stockkind"`
	UnitPurchasePrice *decimal.Decimal `json:"unit_purchase_price,omitempty" validate:"omitempty,gte=0"`
	Note              string           `json:"note,omitempty" validate:"max=500"`
}

// StockTransactionResponse fila del ledger.
type StockTransactionResponse struct {
	ID                string           `json:"id"`
	ProductID         string           `json:"product_id"`
	QuantityDelta     int              `json:"quantity_delta"`
	Kind              string           `json:"kind"`
	UnitPurchasePrice *decimal.Decimal `json:"unit_purchase_price,omitempty"`
	Note              string           `json:"note,omitempty"`
	Reference         string           `json:"reference,omitempty"`
	CreatedBy         string           `json:"created_by"`
	CreatedAt         time.Time        `json:"created_at"`
}

// StockChangeResponse resultado de aplicar un cambio de stock.
type StockChangeResponse struct {
	Transaction StockTransactionResponse `json:"transaction"`
	NewStock    int                      `json:"new_stock"`
}

// StockTransactionListResponse lista paginada del ledger de un producto.
type StockTransactionListResponse struct {
	Items []StockTransactionResponse `json:"items"`
	Page  PageResponse               `json:"page"`
}

// ReconciliationResponse compara el stock materializado con la suma del ledger.
type ReconciliationResponse struct {
	ProductID    string `json:"product_id"`
	CurrentStock int    `json:"current_stock"`
	LedgerSum    int    `json:"ledger_sum"`
	Balanced     bool   `json:"balanced"`
}

// StockAlertResponse producto en LOW_STOCK u OUT_OF_STOCK.
type StockAlertResponse struct {
	ProductID    string `json:"product_id"`
	SKU          string `json:"sku"`
	Name         string `json:"name"`
	CurrentStock int    `json:"current_stock"`
	MinStock     int    `json:"min_stock"`
	Status       string `json:"status"`
}
