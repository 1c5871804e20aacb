// Package validator envuelve go-playground/validator con las reglas propias del dominio
// y traduce los errores a domain.ErrInvalidInput.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
)

// Validator valida structs de entrada.
type Validator interface {
	Validate(s any) error
}

// DefaultValidator implementación basada en go-playground/validator.
type DefaultValidator struct {
	v *validator.Validate
}

// New crea el validador con las reglas stockkind y discountkind registradas.
func New() (*DefaultValidator, error) {
	v := validator.New()

	// Los nombres de campo en los mensajes son los del JSON.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})

	// decimal.Decimal se valida como número (permite gte/lte/gt).
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	if err := v.RegisterValidation("stockkind", oneOf(entity.StockTxPurchase, entity.StockTxSale, entity.StockTxAdjustment)); err != nil {
		return nil, fmt.Errorf("register stockkind validator: %w", err)
	}
	if err := v.RegisterValidation("discountkind", oneOf(entity.DiscountNone, entity.DiscountPercentage, entity.DiscountFlat)); err != nil {
		return nil, fmt.Errorf("register discountkind validator: %w", err)
	}
	return &DefaultValidator{v: v}, nil
}

// MustNew igual que New pero hace panic si falla el registro.
func MustNew() *DefaultValidator {
	v, err := New()
	if err != nil {
		panic(err)
	}
	return v
}

// Validate valida s; los errores de reglas se devuelven envolviendo domain.ErrInvalidInput.
func (d *DefaultValidator) Validate(s any) error {
	err := d.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldPath(fe)+" "+message(fe))
	}
	return domain.Invalid("%s", strings.Join(msgs, "; "))
}

// fieldPath quita el nombre del struct raíz: "SettleSaleRequest.lines[0].quantity" -> "lines[0].quantity".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es obligatorio"
	case "uuid":
		return "debe ser un UUID válido"
	case "email":
		return "debe ser un email válido"
	case "min":
		return fmt.Sprintf("debe tener al menos %s", fe.Param())
	case "max":
		return fmt.Sprintf("debe tener como máximo %s", fe.Param())
	case "gt":
		return fmt.Sprintf("debe ser mayor que %s", fe.Param())
	case "gte":
		return fmt.Sprintf("debe ser mayor o igual a %s", fe.Param())
	case "lte":
		return fmt.Sprintf("debe ser menor o igual a %s", fe.Param())
	case "ne":
		return fmt.Sprintf("debe ser distinto de %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("debe ser uno de [%s]", fe.Param())
	case "stockkind":
		return "debe ser PURCHASE, SALE o ADJUSTMENT"
	case "discountkind":
		return "debe ser NONE, PERCENTAGE o FLAT"
	default:
		return "es inválido"
	}
}

func oneOf(values ...string) validator.Func {
	return func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		for _, v := range values {
			if s == v {
				return true
			}
		}
		return false
	}
}
