package dto

import "time"

// SellerResponse perfil del vendedor con las funcionalidades habilitadas por su plan.
type SellerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Tier      string    `json:"tier"`
	Features  []string  `json:"features"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UpdateSellerRequest cambia el nombre de la tienda.
type UpdateSellerRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}
