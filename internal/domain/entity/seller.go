package entity

import "time"

// Planes de suscripción.
const (
	TierFree     = "FREE"
	TierStandard = "STANDARD"
	TierPremium  = "PREMIUM"
)

// Seller representa un tenant (tienda) del sistema.
type Seller struct {
	ID        string
	Name      string
	Tier      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
