package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-ventas/internal/application/dto"
	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/domain/inventory"
)

// ── Lecturas del ledger ──────────────────────────────────────────────────────

// ListTransactions devuelve el ledger de un producto, más reciente primero.
func (uc *LedgerUseCase) ListTransactions(ctx context.Context, sellerID, productID string, page dto.PageRequest) (*dto.StockTransactionListResponse, error) {
	if _, err := uc.ownedProduct(ctx, sellerID, productID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	rows, err := uc.txRepo.ListByProduct(ctx, sellerID, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockTransactionResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, ToTransactionResponse(r))
	}
	return &dto.StockTransactionListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Reconcile compara CurrentStock con la suma de deltas del ledger.
func (uc *LedgerUseCase) Reconcile(ctx context.Context, sellerID, productID string) (*dto.ReconciliationResponse, error) {
	product, err := uc.ownedProduct(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}
	sum, err := uc.txRepo.SumByProduct(ctx, sellerID, productID)
	if err != nil {
		return nil, err
	}
	return &dto.ReconciliationResponse{
		ProductID:    product.ID,
		CurrentStock: product.CurrentStock,
		LedgerSum:    sum,
		Balanced:     sum == product.CurrentStock,
	}, nil
}

// ListAlerts devuelve los productos activos en LOW_STOCK u OUT_OF_STOCK.
func (uc *LedgerUseCase) ListAlerts(ctx context.Context, sellerID string) ([]dto.StockAlertResponse, error) {
	products, err := uc.productRepo.ListLowStock(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockAlertResponse, 0, len(products))
	for _, p := range products {
		status := inventory.Status(p.CurrentStock, p.MinStock)
		if status == entity.StockStatusInStock {
			continue
		}
		out = append(out, dto.StockAlertResponse{
			ProductID:    p.ID,
			SKU:          p.SKU,
			Name:         p.Name,
			CurrentStock: p.CurrentStock,
			MinStock:     p.MinStock,
			Status:       status,
		})
	}
	return out, nil
}

func (uc *LedgerUseCase) ownedProduct(ctx context.Context, sellerID, productID string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.SellerID != sellerID {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// ToTransactionResponse convierte una fila del ledger a DTO.
func ToTransactionResponse(t *entity.StockTransaction) dto.StockTransactionResponse {
	return dto.StockTransactionResponse{
		ID:                t.ID,
		ProductID:         t.ProductID,
		QuantityDelta:     t.QuantityDelta,
		Kind:              t.Kind,
		UnitPurchasePrice: t.UnitPurchasePrice,
		Note:              t.Note,
		Reference:         t.Reference,
		CreatedBy:         t.CreatedBy,
		CreatedAt:         t.CreatedAt,
	}
}
