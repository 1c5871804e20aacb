package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/domain/inventory"
	"github.com/jhoicas/Inventario-ventas/internal/domain/pricing"
	"github.com/jhoicas/Inventario-ventas/internal/domain/repository"
)

// LedgerUseCase es el único punto que modifica el stock de un producto.
// Cada cambio actualiza CurrentStock y agrega una fila al ledger en la misma transacción,
// con la fila del producto bloqueada (SELECT FOR UPDATE).
type LedgerUseCase struct {
	txRunner    TxRunner
	productRepo repository.ProductRepository
	txRepo      repository.StockTransactionRepository
	now         func() time.Time
}

// NewLedgerUseCase construye el caso de uso. productRepo y txRepo se usan solo para lecturas fuera de tx.
func NewLedgerUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	txRepo repository.StockTransactionRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:    txRunner,
		productRepo: productRepo,
		txRepo:      txRepo,
		now:         time.Now,
	}
}

// StockChangeInput entrada para ApplyStockChange.
type StockChangeInput struct {
	SellerID          string
	ProductID         string
	QuantityDelta     int
	Kind              string
	UnitPurchasePrice *decimal.Decimal
	Note              string
	Reference         string // ID de la venta cuando Kind = SALE
	ActorID           string
}

// StockChangeResult transacción insertada y stock resultante.
type StockChangeResult struct {
	Transaction *entity.StockTransaction
	NewStock    int
}

// ApplyStockChange aplica un delta de stock en su propia transacción.
// Errores: ErrInvalidInput, ErrNotFound, ErrInsufficientStock (*domain.InsufficientStockError).
func (uc *LedgerUseCase) ApplyStockChange(ctx context.Context, in StockChangeInput) (*StockChangeResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	var res *StockChangeResult
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		txRepo repository.StockTransactionRepository,
	) error {
		var err error
		res, err = uc.ApplyStockChangeInTx(ctx, productRepo, txRepo, in)
		return err
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ApplyStockChangeInTx ejecuta el cambio usando los repositorios de la transacción del caller.
// Lo usa la liquidación de ventas para descontar stock dentro de su propia transacción.
func (uc *LedgerUseCase) ApplyStockChangeInTx(
	ctx context.Context,
	productRepo repository.ProductRepository,
	txRepo repository.StockTransactionRepository,
	in StockChangeInput,
) (*StockChangeResult, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	// Bloquea la fila del producto hasta el Commit/Rollback
	product, err := productRepo.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil || product.SellerID != in.SellerID || !product.Active {
		return nil, domain.ErrNotFound
	}

	newStock, err := inventory.NextStock(product.ID, product.CurrentStock, in.QuantityDelta)
	if err != nil {
		return nil, err
	}
	if err := productRepo.UpdateStock(ctx, product.ID, newStock); err != nil {
		return nil, err
	}

	row := &entity.StockTransaction{
		ID:                uuid.New().String(),
		SellerID:          in.SellerID,
		ProductID:         product.ID,
		QuantityDelta:     in.QuantityDelta,
		Kind:              in.Kind,
		UnitPurchasePrice: in.UnitPurchasePrice,
		Note:              in.Note,
		Reference:         in.Reference,
		CreatedBy:         in.ActorID,
		CreatedAt:         uc.now().UTC(),
	}
	if err := txRepo.Create(ctx, row); err != nil {
		return nil, err
	}
	return &StockChangeResult{Transaction: row, NewStock: newStock}, nil
}

func validateInput(in StockChangeInput) error {
	if in.SellerID == "" {
		return domain.Invalid("seller_id es obligatorio")
	}
	if in.ProductID == "" {
		return domain.Invalid("product_id es obligatorio")
	}
	if err := inventory.ValidateDelta(in.Kind, in.QuantityDelta); err != nil {
		return err
	}
	if in.UnitPurchasePrice != nil {
		if in.UnitPurchasePrice.IsNegative() {
			return domain.Invalid("unit_purchase_price no puede ser negativo")
		}
		if !pricing.ValidAmount(*in.UnitPurchasePrice) {
			return domain.Invalid("unit_purchase_price admite máximo %d decimales", pricing.MoneyScale)
		}
	}
	return nil
}
