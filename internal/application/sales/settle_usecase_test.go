package sales_test

import (
	"context"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ventas/internal/application/dto"
	"github.com/jhoicas/Inventario-ventas/internal/application/inventory"
	"github.com/jhoicas/Inventario-ventas/internal/application/sales"
	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/domain/pricing"
	"github.com/jhoicas/Inventario-ventas/internal/domain/repository"
	"github.com/jhoicas/Inventario-ventas/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-ventas/pkg/logger"
)

const (
	sellerA = "seller-a"
	sellerB = "seller-b"
)

var saleNumberRe = regexp.MustCompile(`^V-\d{8}-\d{6}$`)

type fixture struct {
	store  *memory.Store
	ledger *inventory.LedgerUseCase
	settle *sales.SettleSaleUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	ledger := inventory.NewLedgerUseCase(store, store.Products(), store.StockTransactions())
	settle := sales.NewSettleSaleUseCase(store, ledger, store.Products(),
		sales.NumberingConfig{Prefix: "V", Retries: 3}, logger.Nop())
	return &fixture{store: store, ledger: ledger, settle: settle}
}

func (f *fixture) product(t *testing.T, sellerID string, stock int, selling, purchase string) *entity.Product {
	t.Helper()
	ctx := context.Background()
	p := &entity.Product{
		ID:            uuid.New().String(),
		SellerID:      sellerID,
		SKU:           "SKU-" + uuid.New().String()[:8],
		Name:          "Producto",
		SellingPrice:  decimal.RequireFromString(selling),
		PurchasePrice: decimal.RequireFromString(purchase),
		Active:        true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}
	require.NoError(t, f.store.Products().Create(ctx, p))
	if stock > 0 {
		_, err := f.ledger.ApplyStockChange(ctx, inventory.StockChangeInput{
			SellerID: sellerID, ProductID: p.ID, QuantityDelta: stock, Kind: entity.StockTxPurchase,
		})
		require.NoError(t, err)
	}
	return p
}

func (f *fixture) stock(t *testing.T, id string) int {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), id)
	require.NoError(t, err)
	return p.CurrentStock
}

func (f *fixture) saleCount(t *testing.T, sellerID string) int {
	t.Helper()
	list, err := f.store.Sales().ListBySeller(context.Background(), sellerID, repository.SaleFilter{})
	require.NoError(t, err)
	return len(list)
}

func line(p *entity.Product, qty int) pricing.Line {
	return pricing.Line{ProductID: p.ID, Quantity: qty, SellingPrice: p.SellingPrice, PurchasePrice: p.PurchasePrice}
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestSettleSale_DescuentoFijo(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(t, sellerA, 10, "100", "70")
	p2 := f.product(t, sellerA, 10, "50", "20")

	res, err := f.settle.SettleSale(context.Background(), sales.SettleSaleInput{
		SellerID: sellerA,
		Lines:    []pricing.Line{line(p1, 2), line(p2, 1)},
		Discount: pricing.Discount{Kind: entity.DiscountFlat, Value: dec("30")},
		ActorID:  "u1",
	})
	require.NoError(t, err)

	assert.True(t, dec("250").Equal(res.Sale.Subtotal))
	assert.True(t, dec("30").Equal(res.Sale.DiscountAmount))
	assert.True(t, dec("220").Equal(res.Sale.Total))
	// ganancia bruta: (100-70)*2 + (50-20)*1 = 90, sin restar el descuento
	assert.True(t, dec("90").Equal(res.Sale.Profit))
	assert.Regexp(t, saleNumberRe, res.Sale.SaleNumber)
	require.Len(t, res.Items, 2)
	assert.True(t, dec("200").Equal(res.Items[0].Subtotal))
	assert.True(t, dec("60").Equal(res.Items[0].Profit))

	assert.Equal(t, 8, f.stock(t, p1.ID))
	assert.Equal(t, 9, f.stock(t, p2.ID))

	rows, err := f.store.StockTransactions().ListByProduct(context.Background(), sellerA, p1.ID, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, -2, rows[0].QuantityDelta)
	assert.Equal(t, entity.StockTxSale, rows[0].Kind)
	assert.Equal(t, res.Sale.ID, rows[0].Reference)
}

func TestSettleSale_PorcentajeFueraDeRango(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, sellerA, 10, "100", "70")

	_, err := f.settle.SettleSale(context.Background(), sales.SettleSaleInput{
		SellerID: sellerA,
		Lines:    []pricing.Line{line(p, 2)},
		Discount: pricing.Discount{Kind: entity.DiscountPercentage, Value: dec("110")},
	})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, 10, f.stock(t, p.ID))
	assert.Equal(t, 0, f.saleCount(t, sellerA))
}

func TestSettleSale_MontosConMasDeDosDecimales(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, sellerA, 10, "10", "4")

	cases := map[string]sales.SettleSaleInput{
		"precio de venta": {SellerID: sellerA, Lines: []pricing.Line{
			{ProductID: p.ID, Quantity: 2, SellingPrice: dec("10.005"), PurchasePrice: dec("4")},
		}},
		"precio de compra": {SellerID: sellerA, Lines: []pricing.Line{
			{ProductID: p.ID, Quantity: 2, SellingPrice: dec("10"), PurchasePrice: dec("4.001")},
		}},
		"descuento fijo": {SellerID: sellerA, Lines: []pricing.Line{line(p, 2)},
			Discount: pricing.Discount{Kind: entity.DiscountFlat, Value: dec("0.001")}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.settle.SettleSale(context.Background(), in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, 10, f.stock(t, p.ID))
	assert.Equal(t, 0, f.saleCount(t, sellerA))

	// Ceros a la derecha no cuentan como decimales extra.
	res, err := f.settle.SettleSale(context.Background(), sales.SettleSaleInput{
		SellerID: sellerA,
		Lines:    []pricing.Line{{ProductID: p.ID, Quantity: 2, SellingPrice: dec("10.500"), PurchasePrice: dec("4")}},
	})
	require.NoError(t, err)
	assert.True(t, dec("21").Equal(res.Items[0].Subtotal))
	assert.True(t, res.Items[0].SellingPrice.Mul(decimal.NewFromInt(2)).Equal(res.Items[0].Subtotal))
}

func TestSettleSale_CarritoVacio(t *testing.T) {
	f := newFixture(t)
	_, err := f.settle.SettleSale(context.Background(), sales.SettleSaleInput{SellerID: sellerA})
	assert.True(t, errors.Is(err, domain.ErrEmptyCart))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestSettleSale_AtomicidadAnteStockInsuficiente(t *testing.T) {
	f := newFixture(t)
	p1 := f.product(t, sellerA, 10, "100", "70")
	p2 := f.product(t, sellerA, 1, "50", "20")

	_, err := f.settle.SettleSale(context.Background(), sales.SettleSaleInput{
		SellerID: sellerA,
		Lines:    []pricing.Line{line(p1, 3), line(p2, 2)},
	})
	require.Error(t, err)
	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, p2.ID, ise.ProductID)

	assert.Equal(t, 10, f.stock(t, p1.ID))
	assert.Equal(t, 1, f.stock(t, p2.ID))
	assert.Equal(t, 0, f.saleCount(t, sellerA))

	rec, err := f.ledger.Reconcile(context.Background(), sellerA, p1.ID)
	require.NoError(t, err)
	assert.True(t, rec.Balanced)
	assert.Equal(t, 10, rec.LedgerSum)
}

func TestSettleSale_LineasRepetidasSumanCantidad(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, sellerA, 3, "10", "5")

	_, err := f.settle.SettleSale(context.Background(), sales.SettleSaleInput{
		SellerID: sellerA,
		Lines:    []pricing.Line{line(p, 2), line(p, 2)},
	})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, 3, f.stock(t, p.ID))
}

func TestSettleSale_ProductoOClienteDeOtroVendedor(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	own := f.product(t, sellerA, 5, "10", "5")
	foreign := f.product(t, sellerB, 5, "10", "5")

	_, err := f.settle.SettleSale(ctx, sales.SettleSaleInput{
		SellerID: sellerA,
		Lines:    []pricing.Line{line(own, 1), line(foreign, 1)},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, 5, f.stock(t, own.ID))
	assert.Equal(t, 5, f.stock(t, foreign.ID))

	c := &entity.Customer{ID: uuid.New().String(), SellerID: sellerB, Name: "Ajeno"}
	require.NoError(t, f.store.Customers().Create(ctx, c))
	_, err = f.settle.SettleSale(ctx, sales.SettleSaleInput{
		SellerID:   sellerA,
		Lines:      []pricing.Line{line(own, 1)},
		CustomerID: c.ID,
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, 5, f.stock(t, own.ID))
}

func TestSettleSale_NumeracionConsecutiva(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, sellerA, 10, "10", "5")
	ctx := context.Background()

	first, err := f.settle.SettleSale(ctx, sales.SettleSaleInput{SellerID: sellerA, Lines: []pricing.Line{line(p, 1)}})
	require.NoError(t, err)
	second, err := f.settle.SettleSale(ctx, sales.SettleSaleInput{SellerID: sellerA, Lines: []pricing.Line{line(p, 1)}})
	require.NoError(t, err)

	assert.Regexp(t, `-000001$`, first.Sale.SaleNumber)
	assert.Regexp(t, `-000002$`, second.Sale.SaleNumber)

	// cada vendedor tiene su propia secuencia
	q := f.product(t, sellerB, 10, "10", "5")
	other, err := f.settle.SettleSale(ctx, sales.SettleSaleInput{SellerID: sellerB, Lines: []pricing.Line{line(q, 1)}})
	require.NoError(t, err)
	assert.Regexp(t, `-000001$`, other.Sale.SaleNumber)
}

func TestSettleSale_ConcurrenciaUltimaUnidad(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, sellerA, 1, "10", "5")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.settle.SettleSale(context.Background(), sales.SettleSaleInput{
				SellerID: sellerA,
				Lines:    []pricing.Line{line(p, 1)},
			})
		}(i)
	}
	wg.Wait()

	ok, failed := 0, 0
	for _, err := range errs {
		if err == nil {
			ok++
			continue
		}
		failed++
		assert.True(t, errors.Is(err, domain.ErrInsufficientStock) || errors.Is(err, domain.ErrConflict), "err = %v", err)
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 0, f.stock(t, p.ID))
	assert.Equal(t, 1, f.saleCount(t, sellerA))
}

// ── Reintentos ante colisión del número de venta ─────────────────────────────

type flakyRunner struct {
	*memory.Store
	failures int
	calls    int
}

func (r *flakyRunner) RunSale(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	txRepo repository.StockTransactionRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return r.Store.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		txRepo repository.StockTransactionRepository,
		customerRepo repository.CustomerRepository,
		saleRepo repository.SaleRepository,
	) error {
		return fn(productRepo, txRepo, customerRepo, &flakySales{SaleRepository: saleRepo, r: r})
	})
}

type flakySales struct {
	repository.SaleRepository
	r *flakyRunner
}

func (s *flakySales) Create(ctx context.Context, sale *entity.Sale) error {
	s.r.calls++
	if s.r.calls <= s.r.failures {
		return domain.ErrSaleNumberTaken
	}
	return s.SaleRepository.Create(ctx, sale)
}

func TestSettleSale_ReintentaAnteNumeroEnUso(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, sellerA, 5, "10", "5")
	runner := &flakyRunner{Store: f.store, failures: 2}
	uc := sales.NewSettleSaleUseCase(runner, f.ledger, f.store.Products(),
		sales.NumberingConfig{Prefix: "V", Retries: 3}, logger.Nop())

	res, err := uc.SettleSale(context.Background(), sales.SettleSaleInput{SellerID: sellerA, Lines: []pricing.Line{line(p, 2)}})
	require.NoError(t, err)
	assert.Equal(t, 3, runner.calls)
	assert.NotEmpty(t, res.Sale.SaleNumber)

	// los intentos fallidos no dejaron rastro en el ledger
	assert.Equal(t, 3, f.stock(t, p.ID))
	rec, err := f.ledger.Reconcile(context.Background(), sellerA, p.ID)
	require.NoError(t, err)
	assert.True(t, rec.Balanced)
}

func TestSettleSale_AgotaReintentosDevuelveConflict(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, sellerA, 5, "10", "5")
	runner := &flakyRunner{Store: f.store, failures: 100}
	uc := sales.NewSettleSaleUseCase(runner, f.ledger, f.store.Products(),
		sales.NumberingConfig{Prefix: "V", Retries: 2}, logger.Nop())

	_, err := uc.SettleSale(context.Background(), sales.SettleSaleInput{SellerID: sellerA, Lines: []pricing.Line{line(p, 1)}})
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Equal(t, 3, runner.calls)
	assert.Equal(t, 5, f.stock(t, p.ID))
}

// ── Adaptador HTTP ───────────────────────────────────────────────────────────

func TestSettleSaleFromRequest_PreciosPorDefecto(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, sellerA, 5, "19.90", "12.00")
	override := dec("15")

	out, err := f.settle.SettleSaleFromRequest(context.Background(), sellerA, "u1", dto.SettleSaleRequest{
		Lines: []dto.SaleLineRequest{
			{ProductID: p.ID, Quantity: 1},
			{ProductID: p.ID, Quantity: 2, SellingPrice: &override},
		},
		Discount: dto.DiscountRequest{Kind: entity.DiscountPercentage, Value: dec("10")},
	})
	require.NoError(t, err)
	require.Len(t, out.Items, 2)
	assert.True(t, dec("19.90").Equal(out.Items[0].SellingPrice))
	assert.True(t, dec("12").Equal(out.Items[0].PurchasePrice))
	assert.True(t, dec("15").Equal(out.Items[1].SellingPrice))
	assert.True(t, dec("12").Equal(out.Items[1].PurchasePrice))
	// subtotal 19.90 + 30 = 49.90; 10% = 4.99
	assert.True(t, dec("49.90").Equal(out.Subtotal))
	assert.True(t, dec("4.99").Equal(out.DiscountAmount))
	assert.True(t, dec("44.91").Equal(out.Total))
	assert.Equal(t, 2, f.stock(t, p.ID))
}

func TestSettleSaleFromRequest_ProductoAjeno(t *testing.T) {
	f := newFixture(t)
	p := f.product(t, sellerB, 5, "10", "5")

	_, err := f.settle.SettleSaleFromRequest(context.Background(), sellerA, "u1", dto.SettleSaleRequest{
		Lines: []dto.SaleLineRequest{{ProductID: p.ID, Quantity: 1}},
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
