package sales

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/domain/repository"
)

// ReceiptLine línea del comprobante enriquecida con datos del producto.
type ReceiptLine struct {
	entity.SaleItem
	SKU         string
	ProductName string
}

// ReceiptData todo lo necesario para renderizar el comprobante.
type ReceiptData struct {
	Seller   *entity.Seller
	Customer *entity.Customer // nil en venta de mostrador
	Sale     *entity.Sale
	Lines    []ReceiptLine
}

// ReceiptUseCase genera el comprobante PDF de una venta.
type ReceiptUseCase struct {
	saleRepo     repository.SaleRepository
	sellerRepo   repository.SellerRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	renderer     ReceiptRenderer
}

// NewReceiptUseCase construye el caso de uso inyectando todas sus dependencias.
func NewReceiptUseCase(
	saleRepo repository.SaleRepository,
	sellerRepo repository.SellerRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
	renderer ReceiptRenderer,
) *ReceiptUseCase {
	return &ReceiptUseCase{
		saleRepo:     saleRepo,
		sellerRepo:   sellerRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		renderer:     renderer,
	}
}

// SaleReceiptPDF devuelve los bytes del PDF y el nombre de archivo sugerido.
func (uc *ReceiptUseCase) SaleReceiptPDF(ctx context.Context, sellerID, saleID string) ([]byte, string, error) {
	// ── 1. Venta y líneas ─────────────────────────────────────────────────────
	sale, items, err := loadSale(ctx, uc.saleRepo, sellerID, saleID)
	if err != nil {
		return nil, "", err
	}

	// ── 2. Vendedor y cliente ─────────────────────────────────────────────────
	seller, err := uc.sellerRepo.GetByID(ctx, sellerID)
	if err != nil {
		return nil, "", fmt.Errorf("receipt: obtener vendedor: %w", err)
	}
	if seller == nil {
		return nil, "", domain.ErrNotFound
	}
	var customer *entity.Customer
	if sale.CustomerID != "" {
		customer, err = uc.customerRepo.GetByID(ctx, sale.CustomerID)
		if err != nil {
			return nil, "", fmt.Errorf("receipt: obtener cliente: %w", err)
		}
	}

	// ── 3. Líneas con nombre de producto ──────────────────────────────────────
	lines := make([]ReceiptLine, 0, len(items))
	for _, it := range items {
		rl := ReceiptLine{SaleItem: *it, ProductName: "Producto " + it.ProductID}
		if p, pErr := uc.productRepo.GetByID(ctx, it.ProductID); pErr == nil && p != nil {
			rl.SKU = p.SKU
			rl.ProductName = p.Name
		}
		lines = append(lines, rl)
	}

	// ── 4. Render ─────────────────────────────────────────────────────────────
	pdf, err := uc.renderer.RenderSaleReceipt(ctx, ReceiptData{
		Seller:   seller,
		Customer: customer,
		Sale:     sale,
		Lines:    lines,
	})
	if err != nil {
		return nil, "", fmt.Errorf("receipt: generación fallida: %w", err)
	}
	return pdf, fmt.Sprintf("venta_%s.pdf", sale.SaleNumber), nil
}
