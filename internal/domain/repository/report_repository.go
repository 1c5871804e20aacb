package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// SalesTotals agregados de ventas en un período.
type SalesTotals struct {
	SaleCount int
	Revenue   decimal.Decimal // Σ total
	Discounts decimal.Decimal // Σ discount_amount
	Profit    decimal.Decimal // Σ profit (bruto)
}

// ProductSales ventas agregadas de un producto.
type ProductSales struct {
	ProductID string
	SKU       string
	Name      string
	UnitsSold int
	Revenue   decimal.Decimal
	Profit    decimal.Decimal
}

// ReportRepository consultas de lectura para reportes. No modifican datos.
type ReportRepository interface {
	GetSalesTotals(ctx context.Context, sellerID string, from, to time.Time) (SalesTotals, error)
	// GetUnitsSold suma cantidades vendidas en el período.
	GetUnitsSold(ctx context.Context, sellerID string, from, to time.Time) (int, error)
	// GetTopProducts ordena por ingreso descendente.
	GetTopProducts(ctx context.Context, sellerID string, from, to time.Time, limit int) ([]ProductSales, error)
}
