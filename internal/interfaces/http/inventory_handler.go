package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ventas/internal/application/dto"
	"github.com/jhoicas/Inventario-ventas/internal/application/inventory"
)

// InventoryHandler maneja el ledger de inventario.
type InventoryHandler struct {
	base
	ledger *inventory.LedgerUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(b base, ledger *inventory.LedgerUseCase) *InventoryHandler {
	return &InventoryHandler{base: b, ledger: ledger}
}

// ApplyStockChange godoc
// @Summary      Registrar cambio de stock (PURCHASE, SALE, ADJUSTMENT)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockChangeRequest  true  "product_id, quantity_delta, kind"
// @Success      201   {object}  dto.StockChangeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-changes [post]
func (h *InventoryHandler) ApplyStockChange(c *fiber.Ctx) error {
	var in dto.StockChangeRequest
	if ok, err := h.bind(c, &in); !ok {
		return err
	}
	out, err := h.ledger.ApplyStockChangeFromRequest(c.UserContext(), GetSellerID(c), GetUserID(c), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTransactions godoc
// @Summary      Ledger de un producto (más recientes primero)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.StockTransactionListResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/transactions [get]
func (h *InventoryHandler) ListTransactions(c *fiber.Ctx) error {
	out, err := h.ledger.ListTransactions(c.UserContext(), GetSellerID(c), c.Params("id"), page(c))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// Reconcile godoc
// @Summary      Conciliar stock materializado contra la suma del ledger
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.ReconciliationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/reconciliation [get]
func (h *InventoryHandler) Reconcile(c *fiber.Ctx) error {
	out, err := h.ledger.Reconcile(c.UserContext(), GetSellerID(c), c.Params("id"))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// Alerts godoc
// @Summary      Productos con stock bajo o agotado
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StockAlertResponse
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.ledger.ListAlerts(c.UserContext(), GetSellerID(c))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}
