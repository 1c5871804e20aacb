package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ventas/internal/application/reports"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler maneja reportes y exportaciones.
type ReportHandler struct {
	base
	summary *reports.SummaryUseCase
	export  *reports.ExportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(b base, summary *reports.SummaryUseCase, export *reports.ExportUseCase) *ReportHandler {
	return &ReportHandler{base: b, summary: summary, export: export}
}

// Summary godoc
// @Summary      Resumen de ventas del período (por defecto el mes en curso)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta inclusive (YYYY-MM-DD)"
// @Success      200   {object}  dto.SalesSummaryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.summary.GetSummary(c.UserContext(), GetSellerID(c), from, to)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// SalesXLSX godoc
// @Summary      Exportar ventas del período a XLSX
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta inclusive (YYYY-MM-DD)"
// @Success      200   {file}  binary
// @Router       /api/reports/sales.xlsx [get]
func (h *ReportHandler) SalesXLSX(c *fiber.Ctx) error {
	from, to, err := dateRange(c)
	if err != nil {
		return h.errs.respond(c, err)
	}
	data, filename, err := h.export.ExportSales(c.UserContext(), GetSellerID(c), from, to)
	if err != nil {
		return h.errs.respond(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Attachment(filename)
	return c.Send(data)
}
