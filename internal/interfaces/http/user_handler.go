package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ventas/internal/application/dto"
	"github.com/jhoicas/Inventario-ventas/internal/application/usecase"
)

// UserHandler administra el equipo del vendedor.
type UserHandler struct {
	base
	uc *usecase.UserUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(b base, uc *usecase.UserUseCase) *UserHandler {
	return &UserHandler{base: b, uc: uc}
}

// Create godoc
// @Summary      Crear usuario del equipo
// @Description  Solo OWNER o ADMIN. Roles asignables: OPERATIONS, SUPPORT.
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUserRequest  true  "Datos del usuario"
// @Success      201   {object}  dto.StaffUserResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users [post]
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if ok, err := h.bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateStaff(c.UserContext(), GetSellerID(c), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar usuarios del vendedor
// @Tags         users
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserListResponse
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetSellerID(c))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Activar o desactivar usuario
// @Tags         users
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del usuario"
// @Param        body  body  dto.UpdateUserStatusRequest  true  "Nuevo estado"
// @Success      200   {object}  dto.StaffUserResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/users/{id}/status [patch]
func (h *UserHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateUserStatusRequest
	if ok, err := h.bind(c, &in); !ok {
		return err
	}
	out, err := h.uc.SetStatus(c.UserContext(), GetSellerID(c), GetUserID(c), c.Params("id"), in.Status)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}
