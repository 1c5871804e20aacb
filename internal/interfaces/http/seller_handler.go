package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ventas/internal/application/dto"
	"github.com/jhoicas/Inventario-ventas/internal/application/usecase"
)

// SellerHandler perfil de la tienda autenticada.
type SellerHandler struct {
	base
	uc *usecase.SellerUseCase
}

// NewSellerHandler construye el handler.
func NewSellerHandler(b base, uc *usecase.SellerUseCase) *SellerHandler {
	return &SellerHandler{base: b, uc: uc}
}

// Get godoc
// @Summary      Perfil del vendedor
// @Tags         seller
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SellerResponse
// @Router       /api/seller [get]
func (h *SellerHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetSellerID(c))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Renombrar tienda
// @Tags         seller
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateSellerRequest  true  "Nuevo nombre"
// @Success      200   {object}  dto.SellerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/seller [put]
func (h *SellerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateSellerRequest
	if ok, err := h.bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.Rename(c.UserContext(), GetSellerID(c), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}
