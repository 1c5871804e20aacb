package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-ventas/internal/application/auth"
	"github.com/jhoicas/Inventario-ventas/internal/application/inventory"
	"github.com/jhoicas/Inventario-ventas/internal/application/reports"
	"github.com/jhoicas/Inventario-ventas/internal/application/sales"
	"github.com/jhoicas/Inventario-ventas/internal/application/usecase"
	"github.com/jhoicas/Inventario-ventas/internal/domain/access"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/pkg/logger"
	"github.com/jhoicas/Inventario-ventas/pkg/validator"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	ProductUC  *usecase.ProductUseCase
	CustomerUC *usecase.CustomerUseCase
	UserUC     *usecase.UserUseCase
	SellerUC   *usecase.SellerUseCase
	Ledger     *inventory.LedgerUseCase
	SettleSale *sales.SettleSaleUseCase
	SaleQuery  *sales.QueryUseCase
	Receipt    *sales.ReceiptUseCase
	Summary    *reports.SummaryUseCase
	Export     *reports.ExportUseCase
	Validator  validator.Validator
	Logger     *logger.Logger
	JWTSecret  string
	// Users opcional; si se indica, cada request protegido verifica que el usuario siga activo.
	Users UserLookup
	// Health opcional; si es nil /health responde siempre ok.
	Health func(c *fiber.Ctx) error
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	b := base{v: deps.Validator, errs: errorMapper{log: log.Named("http")}}

	app.Get("/health", healthHandler(deps.Health))

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(b, deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	guards := []fiber.Handler{AuthMiddleware(deps.JWTSecret)}
	if deps.Users != nil {
		guards = append(guards, RequireActiveUser(deps.Users))
	}
	protected := api.Group("/", guards...)

	writers := RequireRole(entity.RoleOwner, entity.RoleAdmin)
	operators := RequireRole(entity.RoleOwner, entity.RoleOperations, entity.RoleAdmin)

	// Perfil de la tienda
	sellerHandler := NewSellerHandler(b, deps.SellerUC)
	protected.Get("/seller", sellerHandler.Get)
	protected.Put("/seller", writers, sellerHandler.Update)

	// Equipo del vendedor
	users := protected.Group("/users", writers)
	userHandler := NewUserHandler(b, deps.UserUC)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Patch("/:id/status", userHandler.UpdateStatus)

	// Products
	products := protected.Group("/products", RequireFeature(access.FeatureInventory))
	productHandler := NewProductHandler(b, deps.ProductUC)
	products.Post("/", writers, productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", writers, productHandler.Update)

	// Inventory ledger
	inv := protected.Group("/inventory", RequireFeature(access.FeatureInventory))
	inventoryHandler := NewInventoryHandler(b, deps.Ledger)
	inv.Post("/stock-changes", operators, inventoryHandler.ApplyStockChange)
	inv.Get("/products/:id/transactions", inventoryHandler.ListTransactions)
	inv.Get("/products/:id/reconciliation", inventoryHandler.Reconcile)
	inv.Get("/alerts", inventoryHandler.Alerts)

	// Customers
	customers := protected.Group("/customers", RequireFeature(access.FeatureCustomers))
	customerHandler := NewCustomerHandler(b, deps.CustomerUC)
	customers.Post("/", customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	// Sales
	salesGroup := protected.Group("/sales", RequireFeature(access.FeatureSales))
	saleHandler := NewSaleHandler(b, deps.SettleSale, deps.SaleQuery, deps.Receipt)
	salesGroup.Post("/", operators, saleHandler.Settle)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/receipt", saleHandler.Receipt)

	// Reports
	reportHandler := NewReportHandler(b, deps.Summary, deps.Export)
	protected.Get("/reports/summary", RequireFeature(access.FeatureReports), reportHandler.Summary)
	protected.Get("/reports/sales.xlsx", RequireFeature(access.FeatureExports), reportHandler.SalesXLSX)
}

func healthHandler(check func(c *fiber.Ctx) error) fiber.Handler {
	if check != nil {
		return check
	}
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
