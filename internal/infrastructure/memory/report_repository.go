package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregados de ventas calculados sobre el estado en memoria.
type ReportRepo struct {
	a access
}

func (r *ReportRepo) eachSale(st *state, sellerID string, from, to time.Time, fn func(s entity.Sale)) {
	f := repository.SaleFilter{From: from, To: to}
	for _, id := range st.saleOrder {
		s := st.sales[id]
		if s.SellerID == sellerID && inRange(s, f) {
			fn(s)
		}
	}
}

// GetSalesTotals conteo, ingresos, descuentos y ganancia del período.
func (r *ReportRepo) GetSalesTotals(_ context.Context, sellerID string, from, to time.Time) (repository.SalesTotals, error) {
	var out repository.SalesTotals
	err := r.a.read(func(st *state) error {
		r.eachSale(st, sellerID, from, to, func(s entity.Sale) {
			out.SaleCount++
			out.Revenue = out.Revenue.Add(s.Total)
			out.Discounts = out.Discounts.Add(s.DiscountAmount)
			out.Profit = out.Profit.Add(s.Profit)
		})
		return nil
	})
	return out, err
}

// GetUnitsSold suma las cantidades vendidas del período.
func (r *ReportRepo) GetUnitsSold(_ context.Context, sellerID string, from, to time.Time) (int, error) {
	units := 0
	err := r.a.read(func(st *state) error {
		r.eachSale(st, sellerID, from, to, func(s entity.Sale) {
			for _, it := range st.saleItems[s.ID] {
				units += it.Quantity
			}
		})
		return nil
	})
	return units, err
}

// GetTopProducts ranking por ingreso (subtotal de línea) descendente.
func (r *ReportRepo) GetTopProducts(_ context.Context, sellerID string, from, to time.Time, limit int) ([]repository.ProductSales, error) {
	agg := make(map[string]*repository.ProductSales)
	err := r.a.read(func(st *state) error {
		r.eachSale(st, sellerID, from, to, func(s entity.Sale) {
			for _, it := range st.saleItems[s.ID] {
				ps, ok := agg[it.ProductID]
				if !ok {
					p := st.products[it.ProductID]
					ps = &repository.ProductSales{ProductID: it.ProductID, SKU: p.SKU, Name: p.Name,
						Revenue: decimal.Zero, Profit: decimal.Zero}
					agg[it.ProductID] = ps
				}
				ps.UnitsSold += it.Quantity
				ps.Revenue = ps.Revenue.Add(it.Subtotal)
				ps.Profit = ps.Profit.Add(it.Profit)
			}
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make([]repository.ProductSales, 0, len(agg))
	for _, ps := range agg {
		out = append(out, *ps)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Revenue.Equal(out[j].Revenue) {
			return out[i].Revenue.GreaterThan(out[j].Revenue)
		}
		return out[i].ProductID < out[j].ProductID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
