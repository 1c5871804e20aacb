package sales

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-ventas/internal/application/dto"
	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/domain/repository"
)

// QueryUseCase lecturas de ventas registradas.
type QueryUseCase struct {
	saleRepo repository.SaleRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(saleRepo repository.SaleRepository) *QueryUseCase {
	return &QueryUseCase{saleRepo: saleRepo}
}

// GetSale devuelve la venta con sus líneas. Una venta de otro vendedor es ErrNotFound.
func (uc *QueryUseCase) GetSale(ctx context.Context, sellerID, saleID string) (*dto.SaleResponse, error) {
	sale, items, err := loadSale(ctx, uc.saleRepo, sellerID, saleID)
	if err != nil {
		return nil, err
	}
	out := ToSaleResponse(sale)
	out.Items = toItemResponses(items)
	return &out, nil
}

// ListSales lista ventas del vendedor en [from, to), más recientes primero.
func (uc *QueryUseCase) ListSales(ctx context.Context, sellerID string, from, to time.Time, page dto.PageRequest) (*dto.SaleListResponse, error) {
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, domain.Invalid("el rango de fechas es inválido")
	}
	page.DefaultPage()
	list, err := uc.saleRepo.ListBySeller(ctx, sellerID, repository.SaleFilter{
		From: from, To: to, Limit: page.Limit, Offset: page.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, ToSaleResponse(s))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func loadSale(ctx context.Context, repo repository.SaleRepository, sellerID, saleID string) (*entity.Sale, []*entity.SaleItem, error) {
	sale, err := repo.GetByID(ctx, saleID)
	if err != nil {
		return nil, nil, err
	}
	if sale == nil || sale.SellerID != sellerID {
		return nil, nil, domain.ErrNotFound
	}
	items, err := repo.GetItems(ctx, sale.ID)
	if err != nil {
		return nil, nil, err
	}
	return sale, items, nil
}

// ToSaleResponse convierte la cabecera de venta a DTO (sin líneas).
func ToSaleResponse(s *entity.Sale) dto.SaleResponse {
	return dto.SaleResponse{
		ID:             s.ID,
		SaleNumber:     s.SaleNumber,
		CustomerID:     s.CustomerID,
		Subtotal:       s.Subtotal,
		DiscountKind:   s.DiscountKind,
		DiscountValue:  s.DiscountValue,
		DiscountAmount: s.DiscountAmount,
		Total:          s.Total,
		Profit:         s.Profit,
		CreatedBy:      s.CreatedBy,
		CreatedAt:      s.CreatedAt,
	}
}

func toItemResponses(items []*entity.SaleItem) []dto.SaleItemResponse {
	out := make([]dto.SaleItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.SaleItemResponse{
			ProductID:     it.ProductID,
			Quantity:      it.Quantity,
			SellingPrice:  it.SellingPrice,
			PurchasePrice: it.PurchasePrice,
			Subtotal:      it.Subtotal,
			Profit:        it.Profit,
		})
	}
	return out
}
