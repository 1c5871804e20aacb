package sales

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-ventas/internal/application/inventory"
	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/domain/pricing"
	"github.com/jhoicas/Inventario-ventas/internal/domain/repository"
	"github.com/jhoicas/Inventario-ventas/pkg/logger"
)

// NumberingConfig parámetros del número de venta.
type NumberingConfig struct {
	Prefix  string
	Retries int // reintentos completos ante domain.ErrSaleNumberTaken
}

// SettleSaleUseCase liquida un carrito: calcula totales, descuenta stock de todas las líneas
// y persiste la venta en una sola transacción.
type SettleSaleUseCase struct {
	txRunner    SaleTxRunner
	ledger      StockLedger
	productRepo repository.ProductRepository
	numbering   NumberingConfig
	log         *logger.Logger
	now         func() time.Time
}

// NewSettleSaleUseCase construye el caso de uso.
// productRepo se usa solo para completar precios omitidos en SettleSaleFromRequest.
func NewSettleSaleUseCase(
	txRunner SaleTxRunner,
	ledger StockLedger,
	productRepo repository.ProductRepository,
	numbering NumberingConfig,
	log *logger.Logger,
) *SettleSaleUseCase {
	if numbering.Prefix == "" {
		numbering.Prefix = "V"
	}
	if numbering.Retries < 0 {
		numbering.Retries = 0
	}
	if log == nil {
		log = logger.Nop()
	}
	return &SettleSaleUseCase{
		txRunner:    txRunner,
		ledger:      ledger,
		productRepo: productRepo,
		numbering:   numbering,
		log:         log.Named("sales"),
		now:         time.Now,
	}
}

// SettleSaleInput entrada del checkout. CustomerID vacío es venta de mostrador.
type SettleSaleInput struct {
	SellerID   string
	Lines      []pricing.Line
	Discount   pricing.Discount
	CustomerID string
	ActorID    string
}

// SettleSaleResult venta persistida y sus líneas.
type SettleSaleResult struct {
	Sale  *entity.Sale
	Items []*entity.SaleItem
}

// SettleSale ejecuta el checkout.
// Errores: ErrEmptyCart, ErrInvalidInput, ErrNotFound, ErrInsufficientStock, ErrConflict.
func (uc *SettleSaleUseCase) SettleSale(ctx context.Context, in SettleSaleInput) (*SettleSaleResult, error) {
	if in.SellerID == "" {
		return nil, domain.Invalid("seller_id es obligatorio")
	}
	totals, err := pricing.Compute(in.Lines, in.Discount)
	if err != nil {
		return nil, err
	}

	attempts := uc.numbering.Retries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		res, err := uc.settleOnce(ctx, in, totals)
		if err == nil {
			uc.log.Info().
				Str("seller_id", in.SellerID).
				Str("sale_id", res.Sale.ID).
				Str("sale_number", res.Sale.SaleNumber).
				Int("lines", len(res.Items)).
				Msg("venta registrada")
			return res, nil
		}
		if !errors.Is(err, domain.ErrSaleNumberTaken) {
			return nil, err
		}
		uc.log.Warn().
			Str("seller_id", in.SellerID).
			Int("attempt", attempt).
			Msg("número de venta en uso, reintentando")
	}
	return nil, fmt.Errorf("%w: número de venta en uso tras %d intentos", domain.ErrConflict, attempts)
}

func (uc *SettleSaleUseCase) settleOnce(ctx context.Context, in SettleSaleInput, totals pricing.Totals) (*SettleSaleResult, error) {
	now := uc.now().UTC()
	discount := in.Discount.Normalized()
	saleID := uuid.New().String()
	var res *SettleSaleResult

	err := uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		txRepo repository.StockTransactionRepository,
		customerRepo repository.CustomerRepository,
		saleRepo repository.SaleRepository,
	) error {
		if in.CustomerID != "" {
			customer, err := customerRepo.GetByID(ctx, in.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil || customer.SellerID != in.SellerID {
				return domain.ErrNotFound
			}
		}

		// Orden de bloqueo ascendente por ID para evitar deadlocks entre ventas concurrentes
		for _, id := range distinctProductIDs(in.Lines) {
			p, err := productRepo.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if p == nil || p.SellerID != in.SellerID || !p.Active {
				return domain.ErrNotFound
			}
		}

		// Descuento de stock en el orden del carrito
		for _, line := range in.Lines {
			unitCost := line.PurchasePrice
			if _, err := uc.ledger.ApplyStockChangeInTx(ctx, productRepo, txRepo, inventory.StockChangeInput{
				SellerID:          in.SellerID,
				ProductID:         line.ProductID,
				QuantityDelta:     -line.Quantity,
				Kind:              entity.StockTxSale,
				UnitPurchasePrice: &unitCost,
				Reference:         saleID,
				ActorID:           in.ActorID,
			}); err != nil {
				return err
			}
		}

		dayPrefix := NumberDayPrefix(uc.numbering.Prefix, now)
		seq, err := saleRepo.NextSequence(ctx, in.SellerID, dayPrefix)
		if err != nil {
			return err
		}

		sale := &entity.Sale{
			ID:             saleID,
			SellerID:       in.SellerID,
			CustomerID:     in.CustomerID,
			SaleNumber:     FormatSaleNumber(uc.numbering.Prefix, now, seq),
			Subtotal:       totals.Subtotal,
			DiscountKind:   discount.Kind,
			DiscountValue:  discount.Value,
			DiscountAmount: totals.DiscountAmount,
			Total:          totals.Total,
			Profit:         totals.Profit,
			CreatedBy:      in.ActorID,
			CreatedAt:      now,
		}
		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}

		items := make([]*entity.SaleItem, 0, len(in.Lines))
		for i, line := range in.Lines {
			item := &entity.SaleItem{
				ID:            uuid.New().String(),
				SaleID:        saleID,
				ProductID:     line.ProductID,
				Quantity:      line.Quantity,
				SellingPrice:  line.SellingPrice,
				PurchasePrice: line.PurchasePrice,
				Subtotal:      totals.Lines[i].Subtotal,
				Profit:        totals.Lines[i].Profit,
			}
			if err := saleRepo.CreateItem(ctx, item); err != nil {
				return err
			}
			items = append(items, item)
		}
		res = &SettleSaleResult{Sale: sale, Items: items}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func distinctProductIDs(lines []pricing.Line) []string {
	seen := make(map[string]struct{}, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if _, ok := seen[l.ProductID]; ok {
			continue
		}
		seen[l.ProductID] = struct{}{}
		ids = append(ids, l.ProductID)
	}
	sort.Strings(ids)
	return ids
}
