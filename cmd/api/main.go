package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Inventario-ventas/internal/application/auth"
	"github.com/jhoicas/Inventario-ventas/internal/application/inventory"
	"github.com/jhoicas/Inventario-ventas/internal/application/reports"
	"github.com/jhoicas/Inventario-ventas/internal/application/sales"
	"github.com/jhoicas/Inventario-ventas/internal/application/usecase"
	infraexcel "github.com/jhoicas/Inventario-ventas/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/Inventario-ventas/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/Inventario-ventas/internal/interfaces/http"
	"github.com/jhoicas/Inventario-ventas/pkg/config"
	"github.com/jhoicas/Inventario-ventas/pkg/logger"
	"github.com/jhoicas/Inventario-ventas/pkg/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.StorageDriver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	store, err := openStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacenamiento")
	}
	defer store.close()

	ledgerUC := inventory.NewLedgerUseCase(store.tx, store.products, store.stockTxs)
	settleUC := sales.NewSettleSaleUseCase(store.tx, ledgerUC, store.products, sales.NumberingConfig{
		Prefix:  cfg.Sales.NumberPrefix,
		Retries: cfg.Sales.NumberRetries,
	}, log)
	summaryUC := reports.NewSummaryUseCase(store.reports)

	// PDF del comprobante y XLSX de ventas
	receiptUC := sales.NewReceiptUseCase(store.sales, store.sellers, store.customers, store.products,
		infrapdf.NewReceiptRenderer())
	exportUC := reports.NewExportUseCase(store.sales, summaryUC, infraexcel.NewSalesWorkbookWriter())

	authUC := auth.NewAuthUseCase(store.users, store.sellers, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  usecase.NewProductUseCase(store.products, store.tx, ledgerUC),
		CustomerUC: usecase.NewCustomerUseCase(store.customers),
		UserUC:     usecase.NewUserUseCase(store.users),
		SellerUC:   usecase.NewSellerUseCase(store.sellers),
		Ledger:     ledgerUC,
		SettleSale: settleUC,
		SaleQuery:  sales.NewQueryUseCase(store.sales),
		Receipt:    receiptUC,
		Summary:    summaryUC,
		Export:     exportUC,
		Validator:  validator.MustNew(),
		Logger:     log,
		JWTSecret:  cfg.JWT.Secret,
		Users:      store.users,
		Health:     store.health,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
