package main

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ventas/internal/application/inventory"
	"github.com/jhoicas/Inventario-ventas/internal/application/sales"
	"github.com/jhoicas/Inventario-ventas/internal/domain/repository"
	"github.com/jhoicas/Inventario-ventas/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-ventas/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-ventas/pkg/config"
)

// txRunner lo implementan postgres.TxRunner y memory.Store.
type txRunner interface {
	inventory.TxRunner
	sales.SaleTxRunner
}

// storage repos y runner de transacciones del driver elegido.
type storage struct {
	tx        txRunner
	products  repository.ProductRepository
	stockTxs  repository.StockTransactionRepository
	customers repository.CustomerRepository
	sales     repository.SaleRepository
	users     repository.UserRepository
	sellers   repository.SellerRepository
	reports   repository.ReportRepository
	health    func(c *fiber.Ctx) error
	close     func()
}

func openStorage(ctx context.Context, cfg *config.Config) (*storage, error) {
	switch cfg.App.StorageDriver {
	case config.StorageMemory:
		s := memory.NewStore()
		return &storage{
			tx:        s,
			products:  s.Products(),
			stockTxs:  s.StockTransactions(),
			customers: s.Customers(),
			sales:     s.Sales(),
			users:     s.Users(),
			sellers:   s.Sellers(),
			reports:   s.Reports(),
			close:     func() {},
		}, nil
	case config.StoragePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		return &storage{
			tx:        postgres.NewTxRunner(pool, cfg.DB.Isolation),
			products:  postgres.NewProductRepository(pool),
			stockTxs:  postgres.NewStockTransactionRepository(pool),
			customers: postgres.NewCustomerRepository(pool),
			sales:     postgres.NewSaleRepository(pool),
			users:     postgres.NewUserRepository(pool),
			sellers:   postgres.NewSellerRepository(pool),
			reports:   postgres.NewReportRepository(pool),
			health: func(c *fiber.Ctx) error {
				if err := pool.Ping(c.UserContext()); err != nil {
					return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "db": err.Error()})
				}
				return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
			},
			close: pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("driver de almacenamiento desconocido %q", cfg.App.StorageDriver)
	}
}
