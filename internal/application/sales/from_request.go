package sales

import (
	"context"

	"github.com/jhoicas/Inventario-ventas/internal/application/dto"
	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/internal/domain/pricing"
)

// SettleSaleFromRequest adapta el request HTTP a SettleSale.
// Las líneas sin precio toman el precio de venta y de compra vigentes del producto.
func (uc *SettleSaleUseCase) SettleSaleFromRequest(ctx context.Context, sellerID, userID string, in dto.SettleSaleRequest) (*dto.SaleResponse, error) {
	lines := make([]pricing.Line, 0, len(in.Lines))
	for _, l := range in.Lines {
		line := pricing.Line{ProductID: l.ProductID, Quantity: l.Quantity}
		if l.SellingPrice == nil || l.PurchasePrice == nil {
			p, err := uc.productRepo.GetByID(ctx, l.ProductID)
			if err != nil {
				return nil, err
			}
			if p == nil || p.SellerID != sellerID {
				return nil, domain.ErrNotFound
			}
			line.SellingPrice = p.SellingPrice
			line.PurchasePrice = p.PurchasePrice
		}
		if l.SellingPrice != nil {
			line.SellingPrice = *l.SellingPrice
		}
		if l.PurchasePrice != nil {
			line.PurchasePrice = *l.PurchasePrice
		}
		lines = append(lines, line)
	}

	res, err := uc.SettleSale(ctx, SettleSaleInput{
		SellerID:   sellerID,
		Lines:      lines,
		Discount:   pricing.Discount{Kind: in.Discount.Kind, Value: in.Discount.Value},
		CustomerID: in.CustomerID,
		ActorID:    userID,
	})
	if err != nil {
		return nil, err
	}
	out := ToSaleResponse(res.Sale)
	out.Items = toItemResponses(res.Items)
	return &out, nil
}
