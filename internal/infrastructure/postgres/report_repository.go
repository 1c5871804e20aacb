package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-ventas/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de agregación sobre sales y sale_items. Solo lectura.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el repositorio de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GetSalesTotals conteo, ingresos, descuentos y ganancia del período [from, to).
func (r *ReportRepo) GetSalesTotals(ctx context.Context, sellerID string, from, to time.Time) (repository.SalesTotals, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(total), 0), COALESCE(SUM(discount_amount), 0), COALESCE(SUM(profit), 0)
		FROM sales
		WHERE seller_id = $1 AND created_at >= $2 AND created_at < $3`
	var out repository.SalesTotals
	err := r.q.QueryRow(ctx, query, sellerID, from, to).Scan(&out.SaleCount, &out.Revenue, &out.Discounts, &out.Profit)
	if err != nil {
		return repository.SalesTotals{}, fmt.Errorf("sales totals: %w", err)
	}
	return out, nil
}

// GetUnitsSold suma las cantidades vendidas en el período.
func (r *ReportRepo) GetUnitsSold(ctx context.Context, sellerID string, from, to time.Time) (int, error) {
	query := `
		SELECT COALESCE(SUM(si.quantity), 0)
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		WHERE s.seller_id = $1 AND s.created_at >= $2 AND s.created_at < $3`
	var units int
	if err := r.q.QueryRow(ctx, query, sellerID, from, to).Scan(&units); err != nil {
		return 0, fmt.Errorf("units sold: %w", err)
	}
	return units, nil
}

// GetTopProducts ranking por ingreso de línea descendente.
func (r *ReportRepo) GetTopProducts(ctx context.Context, sellerID string, from, to time.Time, limit int) ([]repository.ProductSales, error) {
	query := `
		SELECT p.id, p.sku, p.name, SUM(si.quantity), SUM(si.subtotal), SUM(si.profit)
		FROM sale_items si
		JOIN sales s ON s.id = si.sale_id
		JOIN products p ON p.id = si.product_id
		WHERE s.seller_id = $1 AND s.created_at >= $2 AND s.created_at < $3
		GROUP BY p.id, p.sku, p.name
		ORDER BY SUM(si.subtotal) DESC, p.id
		LIMIT $4`
	rows, err := r.q.Query(ctx, query, sellerID, from, to, nullLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	out := make([]repository.ProductSales, 0)
	for rows.Next() {
		var ps repository.ProductSales
		if err := rows.Scan(&ps.ProductID, &ps.SKU, &ps.Name, &ps.UnitsSold, &ps.Revenue, &ps.Profit); err != nil {
			return nil, fmt.Errorf("scan top product: %w", err)
		}
		out = append(out, ps)
	}
	return out, rows.Err()
}
