package entity

import "time"

// Customer representa un cliente del vendedor.
type Customer struct {
	ID        string
	SellerID  string
	Name      string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
