package access_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Inventario-ventas/internal/domain/access"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
)

func TestAllowed_Matriz(t *testing.T) {
	cases := []struct {
		role, tier, feature string
		want                bool
	}{
		{entity.RoleOwner, entity.TierFree, access.FeatureSales, true},
		{entity.RoleOwner, entity.TierFree, access.FeatureReports, false},
		{entity.RoleOwner, entity.TierStandard, access.FeatureReports, true},
		{entity.RoleOwner, entity.TierStandard, access.FeatureExports, false},
		{entity.RoleOwner, entity.TierPremium, access.FeatureExports, true},
		{entity.RoleOperations, entity.TierPremium, access.FeatureSales, true},
		{entity.RoleOperations, entity.TierPremium, access.FeatureReports, false},
		{entity.RoleOperations, entity.TierFree, access.FeatureCustomers, false},
		{entity.RoleSupport, entity.TierPremium, access.FeatureReports, true},
		{entity.RoleSupport, entity.TierPremium, access.FeatureSales, false},
		{entity.RoleAdmin, entity.TierFree, access.FeatureExports, true},
		{entity.RoleAdmin, "", access.FeatureInventory, true},
		{"GUEST", entity.TierPremium, access.FeatureInventory, false},
		{entity.RoleOwner, "GOLD", access.FeatureInventory, false},
		{entity.RoleOwner, entity.TierPremium, "BILLING", false},
	}
	for _, tc := range cases {
		got := access.Allowed(tc.role, tc.tier, tc.feature)
		assert.Equal(t, tc.want, got, "role=%s tier=%s feature=%s", tc.role, tc.tier, tc.feature)
	}
}

func TestValidRoleYTier(t *testing.T) {
	assert.True(t, access.ValidRole(entity.RoleSupport))
	assert.False(t, access.ValidRole("vendedor"))
	assert.True(t, access.ValidTier(entity.TierStandard))
	assert.False(t, access.ValidTier(""))
}

func TestTierFeatures(t *testing.T) {
	assert.Equal(t, []string{access.FeatureInventory, access.FeatureSales}, access.TierFeatures(entity.TierFree))
	assert.Len(t, access.TierFeatures(entity.TierPremium), 5)
	assert.Empty(t, access.TierFeatures("GOLD"))
}
