package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ventas/internal/application/dto"
	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/pkg/validator"
)

// base dependencias comunes de los handlers.
type base struct {
	v    validator.Validator
	errs errorMapper
}

// bind parsea el body JSON y lo valida. Si falla ya escribió la respuesta y devuelve false.
func (b base) bind(c *fiber.Ctx, out any) (bool, error) {
	if err := c.BodyParser(out); err != nil {
		return false, badBody(c)
	}
	if err := b.v.Validate(out); err != nil {
		return false, b.errs.respond(c, err)
	}
	return true, nil
}

// page lee ?limit=&offset= aplicando los valores por defecto.
func page(c *fiber.Ctx) dto.PageRequest {
	p := dto.PageRequest{Limit: c.QueryInt("limit", 0), Offset: c.QueryInt("offset", 0)}
	p.DefaultPage()
	return p
}

// dateRange lee ?from=&to= (YYYY-MM-DD o RFC3339). Con fecha sin hora, to incluye ese día completo.
func dateRange(c *fiber.Ctx) (time.Time, time.Time, error) {
	from, err := parseDate(c.Query("from"), false)
	if err != nil {
		return time.Time{}, time.Time{}, domain.Invalid("from: %v", err)
	}
	to, err := parseDate(c.Query("to"), true)
	if err != nil {
		return time.Time{}, time.Time{}, domain.Invalid("to: %v", err)
	}
	return from, to, nil
}

func parseDate(s string, endOfDay bool) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1)
	}
	return t, nil
}
