package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const (
	saleColumns = `id, seller_id, COALESCE(customer_id::text, ''), sale_number, subtotal, discount_kind,
		discount_value, discount_amount, total, profit, COALESCE(created_by, ''), created_at`
	saleNumberConstraint = "uq_sales_seller_number"
)

// SaleRepo implementación de SaleRepository en PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el repositorio. Pasar pool o tx.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// NextSequence máximo consecutivo del día + 1. El consecutivo es todo lo que sigue al prefijo
// del día: 6 dígitos como mínimo, más a partir de 1000000.
func (r *SaleRepo) NextSequence(ctx context.Context, sellerID, dayPrefix string) (int, error) {
	query := `
		SELECT COALESCE(MAX(CAST(substr(sale_number, length($3) + 1) AS bigint)), 0) + 1
		FROM sales
		WHERE seller_id = $1
		  AND sale_number LIKE $2 || '%'
		  AND substr(sale_number, length($3) + 1) ~ '^[0-9]{6,18}$'`
	var next int
	if err := r.q.QueryRow(ctx, query, sellerID, escapeLike(dayPrefix), dayPrefix).Scan(&next); err != nil {
		return 0, fmt.Errorf("next sale sequence: %w", err)
	}
	return next, nil
}

// Create inserta la cabecera de la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (id, seller_id, customer_id, sale_number, subtotal, discount_kind, discount_value,
		                   discount_amount, total, profit, created_by, created_at)
		VALUES ($1, $2, NULLIF($3, '')::uuid, $4, $5, $6, $7, $8, $9, $10, NULLIF($11, ''), $12)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.SellerID, s.CustomerID, s.SaleNumber, s.Subtotal, s.DiscountKind, s.DiscountValue,
		s.DiscountAmount, s.Total, s.Profit, s.CreatedBy, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			if constraintName(err) == saleNumberConstraint {
				return domain.ErrSaleNumberTaken
			}
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem inserta una línea; line_no conserva el orden del carrito.
func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, sale_id, line_no, product_id, quantity, selling_price, purchase_price, subtotal, profit)
		VALUES ($1, $2, (SELECT COUNT(*) + 1 FROM sale_items WHERE sale_id = $2), $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		it.ID, it.SaleID, it.ProductID, it.Quantity, it.SellingPrice, it.PurchasePrice, it.Subtotal, it.Profit,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene una venta por ID.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// GetItems devuelve las líneas en el orden del carrito.
func (r *SaleRepo) GetItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, selling_price, purchase_price, subtotal, profit
		FROM sale_items WHERE sale_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.SaleItem, 0)
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.SellingPrice,
			&it.PurchasePrice, &it.Subtotal, &it.Profit); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		out = append(out, &it)
	}
	return out, rows.Err()
}

// ListBySeller lista ventas del vendedor en [From, To), más recientes primero.
func (r *SaleRepo) ListBySeller(ctx context.Context, sellerID string, f repository.SaleFilter) ([]*entity.Sale, error) {
	var (
		sb   strings.Builder
		args = []any{sellerID}
	)
	sb.WriteString(`SELECT ` + saleColumns + ` FROM sales WHERE seller_id = $1`)
	if !f.From.IsZero() {
		args = append(args, f.From)
		fmt.Fprintf(&sb, ` AND created_at >= $%d`, len(args))
	}
	if !f.To.IsZero() {
		args = append(args, f.To)
		fmt.Fprintf(&sb, ` AND created_at < $%d`, len(args))
	}
	args = append(args, nullLimit(f.Limit), f.Offset)
	fmt.Fprintf(&sb, ` ORDER BY created_at DESC, sale_number DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	out := make([]*entity.Sale, 0)
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.SellerID, &s.CustomerID, &s.SaleNumber, &s.Subtotal, &s.DiscountKind,
		&s.DiscountValue, &s.DiscountAmount, &s.Total, &s.Profit, &s.CreatedBy, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// escapeLike escapa los comodines de LIKE en un prefijo literal.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
