package entity

import "time"

// Roles válidos para User.
const (
	RoleOperations = "OPERATIONS"
	RoleOwner      = "OWNER"
	RoleSupport    = "SUPPORT"
	RoleAdmin      = "ADMIN"
)

// Estados de User.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema (pertenece a un Seller).
type User struct {
	ID           string
	SellerID     string
	Email        string
	PasswordHash string // bcrypt hash
	Name         string
	Role         string
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
