package memory

import (
	"context"
	"strings"

	"github.com/jhoicas/Inventario-ventas/internal/application/sales"
	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas en memoria.
type SaleRepo struct {
	a access
}

// NextSequence devuelve el máximo consecutivo usado con dayPrefix + 1.
func (r *SaleRepo) NextSequence(_ context.Context, sellerID, dayPrefix string) (int, error) {
	maxSeq := 0
	err := r.a.read(func(st *state) error {
		for _, s := range st.sales {
			if s.SellerID != sellerID || !strings.HasPrefix(s.SaleNumber, dayPrefix) {
				continue
			}
			if n, ok := sales.ParseSequence(dayPrefix, s.SaleNumber); ok && n > maxSeq {
				maxSeq = n
			}
		}
		return nil
	})
	return maxSeq + 1, err
}

// Create inserta la cabecera; número repetido en el vendedor devuelve ErrSaleNumberTaken.
func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.sales[s.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, existing := range st.sales {
			if existing.SellerID == s.SellerID && existing.SaleNumber == s.SaleNumber {
				return domain.ErrSaleNumberTaken
			}
		}
		st.sales[s.ID] = *s
		st.saleOrder = append(st.saleOrder, s.ID)
		return nil
	})
}

// CreateItem inserta una línea de la venta.
func (r *SaleRepo) CreateItem(_ context.Context, it *entity.SaleItem) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.sales[it.SaleID]; !ok {
			return domain.ErrNotFound
		}
		st.saleItems[it.SaleID] = append(st.saleItems[it.SaleID], *it)
		return nil
	})
}

// GetByID obtiene una venta; (nil, nil) si no existe.
func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.a.read(func(st *state) error {
		if s, ok := st.sales[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

// GetItems devuelve las líneas en el orden del carrito.
func (r *SaleRepo) GetItems(_ context.Context, saleID string) ([]*entity.SaleItem, error) {
	out := make([]*entity.SaleItem, 0)
	err := r.a.read(func(st *state) error {
		for _, it := range st.saleItems[saleID] {
			it := it
			out = append(out, &it)
		}
		return nil
	})
	return out, err
}

// ListBySeller lista ventas del vendedor en [From, To), más recientes primero.
func (r *SaleRepo) ListBySeller(_ context.Context, sellerID string, f repository.SaleFilter) ([]*entity.Sale, error) {
	out := make([]*entity.Sale, 0)
	err := r.a.read(func(st *state) error {
		matched := 0
		for i := len(st.saleOrder) - 1; i >= 0; i-- {
			s := st.sales[st.saleOrder[i]]
			if s.SellerID != sellerID || !inRange(s, f) {
				continue
			}
			matched++
			if matched <= f.Offset {
				continue
			}
			if f.Limit > 0 && len(out) >= f.Limit {
				break
			}
			out = append(out, &s)
		}
		return nil
	})
	return out, err
}

func inRange(s entity.Sale, f repository.SaleFilter) bool {
	if !f.From.IsZero() && s.CreatedAt.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && !s.CreatedAt.Before(f.To) {
		return false
	}
	return true
}
