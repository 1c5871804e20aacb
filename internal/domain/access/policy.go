// Package access evalúa permisos como función pura de (rol, plan, funcionalidad).
// Se evalúa en el borde HTTP antes de invocar los casos de uso; el núcleo solo valida tenant.
package access

import "github.com/jhoicas/Inventario-ventas/internal/domain/entity"

// Funcionalidades protegidas.
const (
	FeatureInventory = "INVENTORY"
	FeatureSales     = "SALES"
	FeatureCustomers = "CUSTOMERS"
	FeatureReports   = "REPORTS"
	FeatureExports   = "EXPORTS"
)

type set map[string]struct{}

func newSet(items ...string) set {
	s := make(set, len(items))
	for _, it := range items {
		s[it] = struct{}{}
	}
	return s
}

func (s set) has(v string) bool {
	_, ok := s[v]
	return ok
}

var allFeatures = newSet(FeatureInventory, FeatureSales, FeatureCustomers, FeatureReports, FeatureExports)

// Funcionalidades incluidas en cada plan (acumulativas).
var tierFeatures = map[string]set{
	entity.TierFree:     newSet(FeatureInventory, FeatureSales),
	entity.TierStandard: newSet(FeatureInventory, FeatureSales, FeatureCustomers, FeatureReports),
	entity.TierPremium:  allFeatures,
}

// Funcionalidades accesibles por rol.
var roleFeatures = map[string]set{
	entity.RoleOwner:      allFeatures,
	entity.RoleOperations: newSet(FeatureInventory, FeatureSales, FeatureCustomers),
	entity.RoleSupport:    newSet(FeatureReports),
	entity.RoleAdmin:      allFeatures,
}

// Allowed informa si el rol, con el plan dado, puede usar la funcionalidad.
// ADMIN no depende del plan del vendedor.
func Allowed(role, tier, feature string) bool {
	rf, ok := roleFeatures[role]
	if !ok || !rf.has(feature) {
		return false
	}
	if role == entity.RoleAdmin {
		return true
	}
	tf, ok := tierFeatures[tier]
	return ok && tf.has(feature)
}

// ValidRole informa si el rol existe.
func ValidRole(role string) bool {
	_, ok := roleFeatures[role]
	return ok
}

// ValidTier informa si el plan existe.
func ValidTier(tier string) bool {
	_, ok := tierFeatures[tier]
	return ok
}

// featureOrder orden estable para listar funcionalidades.
var featureOrder = []string{FeatureInventory, FeatureSales, FeatureCustomers, FeatureReports, FeatureExports}

// TierFeatures lista las funcionalidades incluidas en el plan; vacío si el plan no existe.
func TierFeatures(tier string) []string {
	tf := tierFeatures[tier]
	out := make([]string, 0, len(featureOrder))
	for _, f := range featureOrder {
		if tf.has(f) {
			out = append(out, f)
		}
	}
	return out
}
