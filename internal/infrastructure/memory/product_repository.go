package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	a access
}

// Create persiste un nuevo producto; SKU repetido en el vendedor devuelve ErrDuplicate.
func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.a.write(func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, existing := range st.products {
			if existing.SellerID == p.SellerID && existing.SKU == p.SKU {
				return domain.ErrDuplicate
			}
		}
		st.products[p.ID] = *p
		st.productOrder = append(st.productOrder, p.ID)
		return nil
	})
}

// GetByID obtiene un producto por ID; (nil, nil) si no existe.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.read(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate en memoria equivale a GetByID: la transacción ya tiene el lock exclusivo.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

// GetBySellerAndSKU obtiene un producto por vendedor y SKU.
func (r *ProductRepo) GetBySellerAndSKU(_ context.Context, sellerID, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.a.read(func(st *state) error {
		for _, p := range st.products {
			if p.SellerID == sellerID && p.SKU == sku {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

// Update actualiza datos de catálogo conservando CurrentStock.
func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.a.write(func(st *state) error {
		cur, ok := st.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Name = p.Name
		cur.PurchasePrice = p.PurchasePrice
		cur.SellingPrice = p.SellingPrice
		cur.MinStock = p.MinStock
		cur.Active = p.Active
		cur.UpdatedAt = p.UpdatedAt
		st.products[p.ID] = cur
		return nil
	})
}

// UpdateStock fija CurrentStock.
func (r *ProductRepo) UpdateStock(_ context.Context, productID string, newStock int) error {
	return r.a.write(func(st *state) error {
		cur, ok := st.products[productID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.CurrentStock = newStock
		cur.UpdatedAt = time.Now().UTC()
		st.products[productID] = cur
		return nil
	})
}

// ListBySeller lista productos del vendedor, más recientes primero.
func (r *ProductRepo) ListBySeller(_ context.Context, sellerID string, limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0)
	err := r.a.read(func(st *state) error {
		matched := 0
		for i := len(st.productOrder) - 1; i >= 0; i-- {
			p := st.products[st.productOrder[i]]
			if p.SellerID != sellerID {
				continue
			}
			matched++
			if matched <= offset {
				continue
			}
			if limit > 0 && len(out) >= limit {
				break
			}
			out = append(out, &p)
		}
		return nil
	})
	return out, err
}

// ListLowStock devuelve productos activos con CurrentStock <= MinStock.
func (r *ProductRepo) ListLowStock(_ context.Context, sellerID string) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0)
	err := r.a.read(func(st *state) error {
		for _, id := range st.productOrder {
			p := st.products[id]
			if p.SellerID == sellerID && p.Active && p.CurrentStock <= p.MinStock {
				out = append(out, &p)
			}
		}
		return nil
	})
	return out, err
}
