package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Inventario-ventas/internal/application/inventory"
	"github.com/jhoicas/Inventario-ventas/internal/application/sales"
	"github.com/jhoicas/Inventario-ventas/internal/domain"
	"github.com/jhoicas/Inventario-ventas/internal/domain/repository"
	"github.com/jhoicas/Inventario-ventas/pkg/config"
)

var (
	_ inventory.TxRunner = (*TxRunner)(nil)
	_ sales.SaleTxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
	opts pgx.TxOptions
}

// NewTxRunner construye el runner; isolation es read_committed o serializable.
func NewTxRunner(pool *pgxpool.Pool, isolation string) *TxRunner {
	return &TxRunner{pool: pool, opts: pgx.TxOptions{IsoLevel: isoLevel(isolation)}}
}

func isoLevel(isolation string) pgx.TxIsoLevel {
	if isolation == config.IsolationSerializable {
		return pgx.Serializable
	}
	return pgx.ReadCommitted
}

// Run inicia una transacción con los repos del ledger.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	txRepo repository.StockTransactionRepository,
) error) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		return fn(NewProductRepository(tx), NewStockTransactionRepository(tx))
	})
}

// RunSale inicia una transacción con los repos de inventario, clientes y ventas (checkout).
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	txRepo repository.StockTransactionRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return r.withTx(ctx, func(tx pgx.Tx) error {
		return fn(
			NewProductRepository(tx),
			NewStockTransactionRepository(tx),
			NewCustomerRepository(tx),
			NewSaleRepository(tx),
		)
	})
}

// withTx hace Commit si fn termina sin error y Rollback en cualquier otro caso.
// Fallos de serialización y deadlocks se devuelven como domain.ErrConflict.
func (r *TxRunner) withTx(ctx context.Context, fn func(tx pgx.Tx) error) (err error) {
	tx, err := r.pool.BeginTx(ctx, r.opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
			if isRetryable(err) && !errors.Is(err, domain.ErrConflict) {
				err = fmt.Errorf("%w: %w", domain.ErrConflict, err)
			}
		}
	}()

	if err = fn(tx); err != nil {
		return err
	}
	if err = tx.Commit(ctx); err != nil {
		err = fmt.Errorf("commit transaction: %w", err)
	}
	return err
}
