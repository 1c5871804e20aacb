package inventory_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/domain/inventory"
)

func TestValidateDelta_ReglasPorTipo(t *testing.T) {
	cases := []struct {
		name  string
		kind  string
		delta int
		ok    bool
	}{
		{"compra positiva", entity.StockTxPurchase, 10, true},
		{"compra negativa", entity.StockTxPurchase, -1, false},
		{"venta negativa", entity.StockTxSale, -3, true},
		{"venta positiva", entity.StockTxSale, 3, false},
		{"ajuste positivo", entity.StockTxAdjustment, 2, true},
		{"ajuste negativo", entity.StockTxAdjustment, -2, true},
		{"delta cero", entity.StockTxAdjustment, 0, false},
		{"tipo desconocido", "TRANSFER", 1, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := inventory.ValidateDelta(tc.kind, tc.delta)
			if tc.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestNextStock_NuncaNegativo(t *testing.T) {
	next, err := inventory.NextStock("p1", 5, -3)
	require.NoError(t, err)
	assert.Equal(t, 2, next)

	next, err = inventory.NextStock("p1", 2, -5)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, 2, next, "el stock no cambia cuando se rechaza")

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "p1", stockErr.ProductID)
	assert.Equal(t, 2, stockErr.Available)
	assert.Equal(t, 5, stockErr.Requested)
}

func TestStock_TopeMaximo(t *testing.T) {
	assert.ErrorIs(t, inventory.ValidateDelta(entity.StockTxPurchase, inventory.MaxStock+1), domain.ErrInvalidInput)
	assert.ErrorIs(t, inventory.ValidateDelta(entity.StockTxAdjustment, -inventory.MaxStock-1), domain.ErrInvalidInput)
	assert.NoError(t, inventory.ValidateDelta(entity.StockTxPurchase, inventory.MaxStock))

	next, err := inventory.NextStock("p1", inventory.MaxStock-1, 2)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, inventory.MaxStock-1, next)

	next, err = inventory.NextStock("p1", inventory.MaxStock-1, 1)
	require.NoError(t, err)
	assert.Equal(t, inventory.MaxStock, next)
}

func TestNextStock_SecuenciaIgualASumaDeDeltas(t *testing.T) {
	deltas := []int{10, -3, -7, 4, -5, 1, -1}
	stock, sum := 0, 0
	for _, d := range deltas {
		next, err := inventory.NextStock("p1", stock, d)
		if err != nil {
			assert.Equal(t, stock, next)
			continue
		}
		stock = next
		sum += d
		assert.GreaterOrEqual(t, stock, 0)
		assert.Equal(t, sum, stock)
	}
}

func TestStatus_Clasificacion(t *testing.T) {
	assert.Equal(t, entity.StockStatusOutOfStock, inventory.Status(0, 5))
	assert.Equal(t, entity.StockStatusLowStock, inventory.Status(5, 5))
	assert.Equal(t, entity.StockStatusLowStock, inventory.Status(1, 5))
	assert.Equal(t, entity.StockStatusInStock, inventory.Status(6, 5))
	assert.Equal(t, entity.StockStatusInStock, inventory.Status(1, 0))
}
