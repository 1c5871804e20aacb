package sales

import (
	"context"

	"github.com/jhoicas/Inventario-ventas/internal/application/inventory"
	"github.com/jhoicas/Inventario-ventas/internal/domain/repository"
)

// SaleTxRunner ejecuta una función dentro de una transacción que incluye repos de inventario y ventas.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		txRepo repository.StockTransactionRepository,
		customerRepo repository.CustomerRepository,
		saleRepo repository.SaleRepository,
	) error) error
}

// StockLedger integra la liquidación con el ledger de inventario.
// ApplyStockChangeInTx usa los repositorios del caller (misma transacción);
// si retorna error (ej: ErrInsufficientStock) el caller debe abortar.
type StockLedger interface {
	ApplyStockChangeInTx(
		ctx context.Context,
		productRepo repository.ProductRepository,
		txRepo repository.StockTransactionRepository,
		in inventory.StockChangeInput,
	) (*inventory.StockChangeResult, error)
}

// ReceiptRenderer genera el comprobante de una venta (PDF).
type ReceiptRenderer interface {
	RenderSaleReceipt(ctx context.Context, data ReceiptData) ([]byte, error)
}
