package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ventas/internal/application/dto"
	"github.com/jhoicas/Inventario-ventas/internal/application/usecase"
	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/internal/domain/access"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/infrastructure/memory"
)

func TestSellerRename(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Sellers().Create(ctx, &entity.Seller{ID: "s1", Name: "Tienda", Tier: entity.TierStandard}))
	uc := usecase.NewSellerUseCase(store.Sellers())

	out, err := uc.Rename(ctx, "s1", dto.UpdateSellerRequest{Name: "  Tienda Centro "})
	require.NoError(t, err)
	assert.Equal(t, "Tienda Centro", out.Name)
	assert.Equal(t, entity.TierStandard, out.Tier)
	assert.Contains(t, out.Features, access.FeatureReports)
	assert.NotContains(t, out.Features, access.FeatureExports)

	got, err := uc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "Tienda Centro", got.Name)

	_, err = uc.Rename(ctx, "s1", dto.UpdateSellerRequest{Name: "   "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
