// Package pricing calcula subtotal, descuento, total y ganancia de una venta.
//
// La ganancia agregada NO se reduce por el descuento: el descuento afecta el ingreso,
// el margen bruto se reporta independiente de las promociones.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// MoneyScale decimales con los que se persisten los montos.
const MoneyScale = 2

// ValidAmount informa si el monto cabe en MoneyScale decimales sin redondear (10.50 sí, 10.005 no).
func ValidAmount(d decimal.Decimal) bool {
	return d.Equal(d.Round(MoneyScale))
}

// Discount política de descuento de la venta.
type Discount struct {
	Kind  string // NONE, PERCENTAGE, FLAT
	Value decimal.Decimal
}

// NoDiscount es la política por defecto.
var NoDiscount = Discount{Kind: entity.DiscountNone}

// Validate verifica rangos: PERCENTAGE en [0,100], FLAT >= 0, ambos con máximo 2 decimales.
func (d Discount) Validate() error {
	switch d.Kind {
	case "", entity.DiscountNone:
		return nil
	}
	if !ValidAmount(d.Value) {
		return domain.Invalid("el valor del descuento admite máximo %d decimales", MoneyScale)
	}
	switch d.Kind {
	case entity.DiscountPercentage:
		if d.Value.IsNegative() || d.Value.GreaterThan(hundred) {
			return domain.Invalid("el porcentaje de descuento debe estar entre 0 y 100")
		}
	case entity.DiscountFlat:
		if d.Value.IsNegative() {
			return domain.Invalid("el descuento fijo no puede ser negativo")
		}
	default:
		return domain.Invalid("tipo de descuento desconocido: %q", d.Kind)
	}
	return nil
}

// Normalized devuelve la política con Kind explícito (vacío => NONE, valor en cero).
func (d Discount) Normalized() Discount {
	if d.Kind == "" || d.Kind == entity.DiscountNone {
		return NoDiscount
	}
	return d
}

// Amount aplica la política sobre el subtotal. FLAT se topa en el subtotal.
func (d Discount) Amount(subtotal decimal.Decimal) decimal.Decimal {
	switch d.Kind {
	case entity.DiscountPercentage:
		return subtotal.Mul(d.Value).Div(hundred).Round(2)
	case entity.DiscountFlat:
		return decimal.Min(d.Value, subtotal)
	default:
		return decimal.Zero
	}
}

// Line línea de carrito con precios ya resueltos.
type Line struct {
	ProductID     string
	Quantity      int
	SellingPrice  decimal.Decimal
	PurchasePrice decimal.Decimal
}

// LineTotals montos derivados de una línea.
type LineTotals struct {
	Subtotal decimal.Decimal
	Profit   decimal.Decimal
}

// Totals resultado del cálculo de la venta.
type Totals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
	Profit         decimal.Decimal
	Lines          []LineTotals // mismo orden que las líneas de entrada
}

// ValidateLines exige carrito no vacío, cantidades positivas y precios no negativos de máximo 2 decimales.
func ValidateLines(lines []Line) error {
	if len(lines) == 0 {
		return domain.ErrEmptyCart
	}
	for i, l := range lines {
		if l.ProductID == "" {
			return domain.Invalid("línea %d: product_id requerido", i+1)
		}
		if l.Quantity <= 0 {
			return domain.Invalid("línea %d: la cantidad debe ser mayor que cero", i+1)
		}
		if l.SellingPrice.IsNegative() || l.PurchasePrice.IsNegative() {
			return domain.Invalid("línea %d: los precios no pueden ser negativos", i+1)
		}
		if !ValidAmount(l.SellingPrice) || !ValidAmount(l.PurchasePrice) {
			return domain.Invalid("línea %d: los precios admiten máximo %d decimales", i+1, MoneyScale)
		}
	}
	return nil
}

// Compute valida el carrito y la política de descuento y calcula los totales.
func Compute(lines []Line, discount Discount) (Totals, error) {
	if err := ValidateLines(lines); err != nil {
		return Totals{}, err
	}
	if err := discount.Validate(); err != nil {
		return Totals{}, err
	}

	out := Totals{Lines: make([]LineTotals, 0, len(lines))}
	for _, l := range lines {
		qty := decimal.NewFromInt(int64(l.Quantity))
		lt := LineTotals{
			Subtotal: l.SellingPrice.Mul(qty),
			Profit:   l.SellingPrice.Sub(l.PurchasePrice).Mul(qty),
		}
		out.Subtotal = out.Subtotal.Add(lt.Subtotal)
		out.Profit = out.Profit.Add(lt.Profit)
		out.Lines = append(out.Lines, lt)
	}
	out.DiscountAmount = discount.Normalized().Amount(out.Subtotal)
	out.Total = out.Subtotal.Sub(out.DiscountAmount)
	return out, nil
}
