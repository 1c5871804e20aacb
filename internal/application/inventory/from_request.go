package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-ventas/internal/application/dto"
)

// ApplyStockChangeFromRequest adapta el request HTTP al caso de uso ApplyStockChange.
func (uc *LedgerUseCase) ApplyStockChangeFromRequest(ctx context.Context, sellerID, userID string, in dto.StockChangeRequest) (*dto.StockChangeResponse, error) {
	res, err := uc.ApplyStockChange(ctx, StockChangeInput{
		SellerID:          sellerID,
		ProductID:         in.ProductID,
		QuantityDelta:     in.QuantityDelta,
		Kind:              in.Kind,
		UnitPurchasePrice: in.UnitPurchasePrice,
		Note:              in.Note,
		ActorID:           userID,
	})
	if err != nil {
		return nil, err
	}
	return &dto.StockChangeResponse{
		Transaction: ToTransactionResponse(res.Transaction),
		NewStock:    res.NewStock,
	}, nil
}
