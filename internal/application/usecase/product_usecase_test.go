package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ventas/internal/application/dto"
	"github.com/jhoicas/Inventario-ventas/internal/application/inventory"
	"github.com/jhoicas/Inventario-ventas/internal/application/usecase"
	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/infrastructure/memory"
)

func newProductUC() (*usecase.ProductUseCase, *inventory.LedgerUseCase, *memory.Store) {
	store := memory.NewStore()
	ledger := inventory.NewLedgerUseCase(store, store.Products(), store.StockTransactions())
	return usecase.NewProductUseCase(store.Products(), store, ledger), ledger, store
}

func TestProductCreate_StockInicialQuedaEnElLedger(t *testing.T) {
	uc, ledger, store := newProductUC()
	ctx := context.Background()

	p, err := uc.Create(ctx, "s1", "u1", dto.CreateProductRequest{
		SKU: " CAF-01 ", Name: "Café 500g",
		PurchasePrice: decimal.NewFromInt(8), SellingPrice: decimal.NewFromInt(12),
		InitialStock: 7, MinStock: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, "CAF-01", p.SKU)
	assert.Equal(t, 7, p.CurrentStock)
	assert.Equal(t, entity.StockStatusInStock, p.Status)

	rows, err := store.StockTransactions().ListByProduct(ctx, "s1", p.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, entity.StockTxPurchase, rows[0].Kind)
	assert.Equal(t, 7, rows[0].QuantityDelta)

	rec, err := ledger.Reconcile(ctx, "s1", p.ID)
	require.NoError(t, err)
	assert.True(t, rec.Balanced)
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	uc, _, _ := newProductUC()
	ctx := context.Background()
	in := dto.CreateProductRequest{SKU: "A1", Name: "Uno"}

	_, err := uc.Create(ctx, "s1", "u1", in)
	require.NoError(t, err)
	_, err = uc.Create(ctx, "s1", "u1", in)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))

	// mismo SKU en otro vendedor es válido
	_, err = uc.Create(ctx, "s2", "u2", in)
	assert.NoError(t, err)
}

func TestProduct_PreciosConMasDeDosDecimales(t *testing.T) {
	uc, _, _ := newProductUC()
	ctx := context.Background()

	_, err := uc.Create(ctx, "s1", "u1", dto.CreateProductRequest{
		SKU: "A1", Name: "Uno", SellingPrice: decimal.RequireFromString("10.005"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	p, err := uc.Create(ctx, "s1", "u1", dto.CreateProductRequest{SKU: "A1", Name: "Uno", SellingPrice: decimal.NewFromInt(10)})
	require.NoError(t, err)
	cost := decimal.RequireFromString("4.001")
	_, err = uc.Update(ctx, "s1", p.ID, dto.UpdateProductRequest{PurchasePrice: &cost})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_NoTocaStock(t *testing.T) {
	uc, _, _ := newProductUC()
	ctx := context.Background()
	p, err := uc.Create(ctx, "s1", "u1", dto.CreateProductRequest{SKU: "A1", Name: "Uno", InitialStock: 4})
	require.NoError(t, err)

	name := "Uno renovado"
	minStock := 10
	price := decimal.RequireFromString("3.50")
	out, err := uc.Update(ctx, "s1", p.ID, dto.UpdateProductRequest{Name: &name, MinStock: &minStock, SellingPrice: &price})
	require.NoError(t, err)
	assert.Equal(t, "Uno renovado", out.Name)
	assert.Equal(t, 4, out.CurrentStock)
	assert.Equal(t, entity.StockStatusLowStock, out.Status)
	assert.True(t, price.Equal(out.SellingPrice))

	neg := -1
	_, err = uc.Update(ctx, "s1", p.ID, dto.UpdateProductRequest{MinStock: &neg})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = uc.Update(ctx, "s2", p.ID, dto.UpdateProductRequest{Name: &name})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestProductList_SoloDelVendedor(t *testing.T) {
	uc, _, _ := newProductUC()
	ctx := context.Background()
	for _, sku := range []string{"A", "B", "C"} {
		_, err := uc.Create(ctx, "s1", "u1", dto.CreateProductRequest{SKU: sku, Name: sku})
		require.NoError(t, err)
	}
	_, err := uc.Create(ctx, "s2", "u2", dto.CreateProductRequest{SKU: "Z", Name: "Z"})
	require.NoError(t, err)

	list, err := uc.List(ctx, "s1", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 3)
	assert.Equal(t, "C", list.Items[0].SKU)
	assert.Equal(t, entity.StockStatusOutOfStock, list.Items[0].Status)
}

func TestCustomerUseCase_CrearYAislar(t *testing.T) {
	store := memory.NewStore()
	uc := usecase.NewCustomerUseCase(store.Customers())
	ctx := context.Background()

	c, err := uc.Create(ctx, "s1", dto.CreateCustomerRequest{Name: "  Ana  ", Email: "ana@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", c.Name)

	_, err = uc.GetByID(ctx, "s2", c.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = uc.Create(ctx, "s1", dto.CreateCustomerRequest{Name: " "})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	list, err := uc.List(ctx, "s1", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Items, 1)
}
