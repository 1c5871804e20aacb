package memory

import (
	"context"

	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo clientes en memoria.
type CustomerRepo struct {
	a access
}

// Create persiste un cliente.
func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.customers[c.ID]; ok {
			return domain.ErrDuplicate
		}
		st.customers[c.ID] = *c
		st.customerIDs = append(st.customerIDs, c.ID)
		return nil
	})
}

// GetByID obtiene un cliente; (nil, nil) si no existe.
func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.a.read(func(st *state) error {
		if c, ok := st.customers[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

// ListBySeller lista clientes del vendedor, más recientes primero.
func (r *CustomerRepo) ListBySeller(_ context.Context, sellerID string, limit, offset int) ([]*entity.Customer, error) {
	out := make([]*entity.Customer, 0)
	err := r.a.read(func(st *state) error {
		matched := 0
		for i := len(st.customerIDs) - 1; i >= 0; i-- {
			c := st.customers[st.customerIDs[i]]
			if c.SellerID != sellerID {
				continue
			}
			matched++
			if matched <= offset {
				continue
			}
			if limit > 0 && len(out) >= limit {
				break
			}
			out = append(out, &c)
		}
		return nil
	})
	return out, err
}
