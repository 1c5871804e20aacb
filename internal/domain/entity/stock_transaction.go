package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de stock.
const (
	StockTxPurchase   = "PURCHASE"   // entrada por compra
	StockTxSale       = "SALE"       // salida por venta
	StockTxAdjustment = "ADJUSTMENT" // ajuste manual (+/-)
)

// StockTransaction es una fila inmutable del ledger de inventario.
// La suma de QuantityDelta por producto es igual a Product.CurrentStock.
type StockTransaction struct {
	ID                string
	SellerID          string
	ProductID         string
	QuantityDelta     int // positivo entrada, negativo salida
	Kind              string
	UnitPurchasePrice *decimal.Decimal // snapshot opcional
	Note              string
	Reference         string // ID de la venta en transacciones SALE
	CreatedBy         string
	CreatedAt         time.Time
}
