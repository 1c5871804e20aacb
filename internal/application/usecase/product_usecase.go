package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-ventas/internal/application/dto"
	appinventory "github.com/jhoicas/Inventario-ventas/internal/application/inventory"
	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/domain/inventory"
	"github.com/jhoicas/Inventario-ventas/internal/domain/pricing"
	"github.com/jhoicas/Inventario-ventas/internal/domain/repository"
)

// ProductUseCase casos de uso de catálogo. El stock solo cambia vía el ledger.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner appinventory.TxRunner
	ledger   *appinventory.LedgerUseCase
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner appinventory.TxRunner, ledger *appinventory.LedgerUseCase) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner, ledger: ledger}
}

// Create crea un producto. Si InitialStock > 0 se registra como PURCHASE en la misma transacción.
func (uc *ProductUseCase) Create(ctx context.Context, sellerID, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.SKU == "" || in.Name == "" {
		return nil, domain.Invalid("sku y name son obligatorios")
	}
	if in.PurchasePrice.IsNegative() || in.SellingPrice.IsNegative() {
		return nil, domain.Invalid("los precios no pueden ser negativos")
	}
	if !pricing.ValidAmount(in.PurchasePrice) || !pricing.ValidAmount(in.SellingPrice) {
		return nil, domain.Invalid("los precios admiten máximo %d decimales", pricing.MoneyScale)
	}
	if in.MinStock > inventory.MaxStock {
		return nil, domain.Invalid("min_stock supera el máximo de %d unidades", inventory.MaxStock)
	}
	if in.InitialStock < 0 || in.MinStock < 0 {
		return nil, domain.Invalid("initial_stock y min_stock no pueden ser negativos")
	}

	now := time.Now().UTC()
	product := &entity.Product{
		ID:            uuid.New().String(),
		SellerID:      sellerID,
		SKU:           in.SKU,
		Name:          in.Name,
		PurchasePrice: in.PurchasePrice,
		SellingPrice:  in.SellingPrice,
		MinStock:      in.MinStock,
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		txRepo repository.StockTransactionRepository,
	) error {
		existing, err := productRepo.GetBySellerAndSKU(ctx, sellerID, in.SKU)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if in.InitialStock == 0 {
			return nil
		}
		price := in.PurchasePrice
		res, err := uc.ledger.ApplyStockChangeInTx(ctx, productRepo, txRepo, appinventory.StockChangeInput{
			SellerID:          sellerID,
			ProductID:         product.ID,
			QuantityDelta:     in.InitialStock,
			Kind:              entity.StockTxPurchase,
			UnitPurchasePrice: &price,
			Note:              "stock inicial",
			ActorID:           userID,
		})
		if err != nil {
			return err
		}
		product.CurrentStock = res.NewStock
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto del vendedor.
func (uc *ProductUseCase) GetByID(ctx context.Context, sellerID, id string) (*dto.ProductResponse, error) {
	product, err := uc.owned(ctx, sellerID, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update actualiza nombre, precios, umbral y estado. Nunca el stock.
func (uc *ProductUseCase) Update(ctx context.Context, sellerID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.owned(ctx, sellerID, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if name == "" {
			return nil, domain.Invalid("name no puede estar vacío")
		}
		product.Name = name
	}
	if in.PurchasePrice != nil {
		if in.PurchasePrice.IsNegative() || !pricing.ValidAmount(*in.PurchasePrice) {
			return nil, domain.Invalid("purchase_price debe ser no negativo con máximo %d decimales", pricing.MoneyScale)
		}
		product.PurchasePrice = *in.PurchasePrice
	}
	if in.SellingPrice != nil {
		if in.SellingPrice.IsNegative() || !pricing.ValidAmount(*in.SellingPrice) {
			return nil, domain.Invalid("selling_price debe ser no negativo con máximo %d decimales", pricing.MoneyScale)
		}
		product.SellingPrice = *in.SellingPrice
	}
	if in.MinStock != nil {
		if *in.MinStock < 0 || *in.MinStock > inventory.MaxStock {
			return nil, domain.Invalid("min_stock debe estar entre 0 y %d", inventory.MaxStock)
		}
		product.MinStock = *in.MinStock
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos del vendedor con paginación.
func (uc *ProductUseCase) List(ctx context.Context, sellerID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.ListBySeller(ctx, sellerID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *ProductUseCase) owned(ctx context.Context, sellerID, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil || product.SellerID != sellerID {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		SellerID:      p.SellerID,
		SKU:           p.SKU,
		Name:          p.Name,
		CurrentStock:  p.CurrentStock,
		PurchasePrice: p.PurchasePrice,
		SellingPrice:  p.SellingPrice,
		MinStock:      p.MinStock,
		Status:        inventory.Status(p.CurrentStock, p.MinStock),
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
