package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ventas/internal/application/dto"
	"github.com/jhoicas/Inventario-ventas/internal/domain/access"
)

// RequireFeature verifica con la política de acceso que el rol y el plan del token habiliten
// la funcionalidad. Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 Unauthorized → no hay seller_id en el contexto.
//   - 403 FEATURE_NOT_AVAILABLE → rol o plan sin acceso a la funcionalidad.
func RequireFeature(feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetSellerID(c) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "seller_id no encontrado en el token",
			})
		}
		if !access.Allowed(GetRole(c), GetTier(c), feature) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FEATURE_NOT_AVAILABLE",
				Message: "la funcionalidad '" + feature + "' no está disponible para su rol o plan",
			})
		}
		return c.Next()
	}
}
