package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-ventas/internal/application/auth"
	"github.com/jhoicas/Inventario-ventas/internal/application/dto"
	"github.com/jhoicas/Inventario-ventas/internal/application/inventory"
	"github.com/jhoicas/Inventario-ventas/internal/application/reports"
	"github.com/jhoicas/Inventario-ventas/internal/application/sales"
	"github.com/jhoicas/Inventario-ventas/internal/application/usecase"
	"github.com/jhoicas/Inventario-ventas/internal/domain/entity"
	"github.com/jhoicas/Inventario-ventas/internal/infrastructure/excel"
	"github.com/jhoicas/Inventario-ventas/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-ventas/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Inventario-ventas/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Inventario-ventas/pkg/jwt"
	"github.com/jhoicas/Inventario-ventas/pkg/logger"
	"github.com/jhoicas/Inventario-ventas/pkg/validator"
)

// testEnv API completa sobre el almacenamiento en memoria.
type testEnv struct {
	app    *fiber.App
	store  *memory.Store
	authUC *auth.AuthUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()
	ledger := inventory.NewLedgerUseCase(store, store.Products(), store.StockTransactions())
	settle := sales.NewSettleSaleUseCase(store, ledger, store.Products(), sales.NumberingConfig{Prefix: "V", Retries: 3}, logger.Nop())
	summary := reports.NewSummaryUseCase(store.Reports())
	authUC := auth.NewAuthUseCase(store.Users(), store.Sellers(), auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  usecase.NewProductUseCase(store.Products(), store, ledger),
		CustomerUC: usecase.NewCustomerUseCase(store.Customers()),
		UserUC:     usecase.NewUserUseCase(store.Users()),
		SellerUC:   usecase.NewSellerUseCase(store.Sellers()),
		Ledger:     ledger,
		SettleSale: settle,
		SaleQuery:  sales.NewQueryUseCase(store.Sales()),
		Receipt: sales.NewReceiptUseCase(store.Sales(), store.Sellers(), store.Customers(), store.Products(),
			pdf.NewReceiptRenderer()),
		Summary:   summary,
		Export:    reports.NewExportUseCase(store.Sales(), summary, excel.NewSalesWorkbookWriter()),
		Validator: validator.MustNew(),
		Logger:    logger.Nop(),
		JWTSecret: testJWTSecret,
		Users:     store.Users(),
	})
	return &testEnv{app: app, store: store, authUC: authUC}
}

// seller crea un vendedor con el plan dado y devuelve el token de su OWNER.
func (e *testEnv) seller(t *testing.T, email, tier string) (string, string) {
	t.Helper()
	s, _, err := e.authUC.RegisterSeller(context.Background(), auth.RegisterSellerInput{
		SellerName: "Tienda " + email, Tier: tier, Email: email, Password: "password123",
	})
	require.NoError(t, err)
	resp := e.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: "password123"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	decode(t, resp, &out)
	return s.ID, "Bearer " + out.Token
}

// staffToken registra un usuario activo del vendedor con el rol dado y firma su token.
func (e *testEnv) staffToken(t *testing.T, sellerID, role, tier string) string {
	t.Helper()
	id := uuid.New().String()
	require.NoError(t, e.store.Users().Create(context.Background(), &entity.User{
		ID: id, SellerID: sellerID, Email: id + "@equipo.com", Name: role, Role: role, Status: entity.UserStatusActive,
	}))
	tok, err := pkgjwt.Generate(testJWTSecret, testIssuer, testExpMin, pkgjwt.Identity{
		UserID: id, SellerID: sellerID, Role: role, Tier: tier,
	})
	require.NoError(t, err)
	return "Bearer " + tok
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

func (e *testEnv) product(t *testing.T, token, sku string, stock int, price, cost string) dto.ProductResponse {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/api/products", token, dto.CreateProductRequest{
		SKU: sku, Name: "Producto " + sku, InitialStock: stock,
		SellingPrice: decimal.RequireFromString(price), PurchasePrice: decimal.RequireFromString(cost),
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var out dto.ProductResponse
	decode(t, resp, &out)
	return out
}

// ──────────────────────────────────────────────────────────────────────────────

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodGet, "/health", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestLogin_CredencialesIncorrectas_401(t *testing.T) {
	env := newTestEnv(t)
	env.seller(t, "dueno@uno.com", entity.TierFree)

	resp := env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "dueno@uno.com", Password: "otra-clave"})
	var body dto.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_CREDENTIALS", body.Code)

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "nadie@uno.com", Password: "password123"})
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestSalesFlow_LiquidaYConsulta(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seller(t, "dueno@uno.com", entity.TierPremium)
	p := env.product(t, token, "C-001", 10, "49.90", "30")
	assert.Equal(t, 10, p.CurrentStock)
	assert.Equal(t, entity.StockStatusInStock, p.Status)

	resp := env.do(t, http.MethodPost, "/api/sales", token, dto.SettleSaleRequest{
		Lines:    []dto.SaleLineRequest{{ProductID: p.ID, Quantity: 1}},
		Discount: dto.DiscountRequest{Kind: entity.DiscountPercentage, Value: decimal.NewFromInt(10)},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sale dto.SaleResponse
	decode(t, resp, &sale)
	assert.True(t, decimal.RequireFromString("44.91").Equal(sale.Total), sale.Total.String())
	assert.True(t, decimal.RequireFromString("4.99").Equal(sale.DiscountAmount))
	assert.Regexp(t, `^V-\d{8}-000001$`, sale.SaleNumber)

	resp = env.do(t, http.MethodGet, "/api/sales/"+sale.ID, token, nil)
	var got dto.SaleResponse
	decode(t, resp, &got)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, got.Items, 1)

	resp = env.do(t, http.MethodGet, "/api/products/"+p.ID, token, nil)
	var after dto.ProductResponse
	decode(t, resp, &after)
	assert.Equal(t, 9, after.CurrentStock)

	resp = env.do(t, http.MethodGet, "/api/inventory/products/"+p.ID+"/reconciliation", token, nil)
	var rec dto.ReconciliationResponse
	decode(t, resp, &rec)
	assert.True(t, rec.Balanced)
	assert.Equal(t, 9, rec.LedgerSum)

	resp = env.do(t, http.MethodGet, "/api/sales/"+sale.ID+"/receipt", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	resp = env.do(t, http.MethodGet, "/api/reports/sales.xlsx", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "ventas_")

	resp = env.do(t, http.MethodGet, "/api/reports/summary", token, nil)
	var sum dto.SalesSummaryResponse
	decode(t, resp, &sum)
	assert.Equal(t, 1, sum.SaleCount)
	assert.Equal(t, 1, sum.UnitsSold)
}

func TestSettle_StockInsuficiente_409(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seller(t, "dueno@uno.com", entity.TierFree)
	p := env.product(t, token, "A", 2, "10", "5")

	resp := env.do(t, http.MethodPost, "/api/sales", token, dto.SettleSaleRequest{
		Lines: []dto.SaleLineRequest{{ProductID: p.ID, Quantity: 3}},
	})
	var body dto.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Contains(t, body.Message, p.ID)
}

func TestSettle_Validaciones_400(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seller(t, "dueno@uno.com", entity.TierFree)
	p := env.product(t, token, "A", 2, "10", "5")

	cases := map[string]dto.SettleSaleRequest{
		"carrito vacío":      {},
		"cantidad cero":      {Lines: []dto.SaleLineRequest{{ProductID: p.ID, Quantity: 0}}},
		"descuento inválido": {Lines: []dto.SaleLineRequest{{ProductID: p.ID, Quantity: 1}}, Discount: dto.DiscountRequest{Kind: "BOGO"}},
		"porcentaje > 100": {Lines: []dto.SaleLineRequest{{ProductID: p.ID, Quantity: 1}},
			Discount: dto.DiscountRequest{Kind: entity.DiscountPercentage, Value: decimal.NewFromInt(150)}},
		"product_id no UUID":  {Lines: []dto.SaleLineRequest{{ProductID: "x", Quantity: 1}}},
		"customer_id no UUID": {CustomerID: "x", Lines: []dto.SaleLineRequest{{ProductID: p.ID, Quantity: 1}}},
		"precio con 3 decimales": {Lines: []dto.SaleLineRequest{{ProductID: p.ID, Quantity: 2,
			SellingPrice: decPtr("10.005"), PurchasePrice: decPtr("4")}}},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			resp := env.do(t, http.MethodPost, "/api/sales", token, in)
			var body dto.ErrorResponse
			decode(t, resp, &body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, "VALIDATION", body.Code)
		})
	}
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestIDsInvalidos(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.seller(t, "dueno@ids.com", entity.TierPremium)

	resp := env.do(t, http.MethodPost, "/api/inventory/stock-changes", token, dto.StockChangeRequest{
		ProductID: "x", QuantityDelta: 1, Kind: entity.StockTxPurchase,
	})
	var body dto.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body.Code)

	for _, path := range []string{"/api/products/x", "/api/sales/x", "/api/customers/x", "/api/sales/x/receipt"} {
		resp = env.do(t, http.MethodGet, path, token, nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, path)
	}
}

func TestTenantIsolation_404(t *testing.T) {
	env := newTestEnv(t)
	_, tokenA := env.seller(t, "a@uno.com", entity.TierPremium)
	_, tokenB := env.seller(t, "b@dos.com", entity.TierPremium)
	p := env.product(t, tokenA, "A", 5, "10", "5")

	resp := env.do(t, http.MethodGet, "/api/products/"+p.ID, tokenB, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/sales", tokenB, dto.SettleSaleRequest{
		Lines: []dto.SaleLineRequest{{ProductID: p.ID, Quantity: 1}},
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStockChange_RolesYDuplicados(t *testing.T) {
	env := newTestEnv(t)
	sellerID, token := env.seller(t, "dueno@uno.com", entity.TierStandard)
	p := env.product(t, token, "A", 1, "10", "5")

	resp := env.do(t, http.MethodPost, "/api/products", token, dto.CreateProductRequest{SKU: "A", Name: "Otro"})
	var dup dto.ErrorResponse
	decode(t, resp, &dup)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", dup.Code)

	ops := env.staffToken(t, sellerID, entity.RoleOperations, entity.TierStandard)
	resp = env.do(t, http.MethodPost, "/api/inventory/stock-changes", ops, dto.StockChangeRequest{
		ProductID: p.ID, QuantityDelta: 4, Kind: entity.StockTxPurchase,
	})
	var change dto.StockChangeResponse
	decode(t, resp, &change)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 5, change.NewStock)

	// OPERATIONS no puede crear productos; SUPPORT no accede a ventas.
	resp = env.do(t, http.MethodPost, "/api/products", ops, dto.CreateProductRequest{SKU: "B", Name: "B"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	support := env.staffToken(t, sellerID, entity.RoleSupport, entity.TierStandard)
	resp = env.do(t, http.MethodGet, "/api/sales", support, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/reports/summary", support, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// El plan STANDARD no incluye exportaciones.
	resp = env.do(t, http.MethodGet, "/api/reports/sales.xlsx", token, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestUsers_AltaLoginYDesactivacion(t *testing.T) {
	env := newTestEnv(t)
	_, owner := env.seller(t, "dueno@equipo.com", entity.TierFree)

	resp := env.do(t, http.MethodPost, "/api/users", owner, dto.CreateUserRequest{
		Email: "Caja@Equipo.com", Password: "password123", Name: "Caja 1", Role: entity.RoleOperations,
	})
	var staff dto.StaffUserResponse
	decode(t, resp, &staff)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "caja@equipo.com", staff.Email)
	assert.Equal(t, entity.UserStatusActive, staff.Status)

	// ADMIN no es asignable desde la API.
	resp = env.do(t, http.MethodPost, "/api/users", owner, dto.CreateUserRequest{
		Email: "otro@equipo.com", Password: "password123", Name: "Otro", Role: entity.RoleAdmin,
	})
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "caja@equipo.com", Password: "password123"})
	var login dto.LoginResponse
	decode(t, resp, &login)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.RoleOperations, login.User.Role)
	ops := "Bearer " + login.Token

	// OPERATIONS no administra el equipo.
	resp = env.do(t, http.MethodGet, "/api/users", ops, nil)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodGet, "/api/users", owner, nil)
	var list dto.UserListResponse
	decode(t, resp, &list)
	require.Len(t, list.Items, 2)
	assert.Equal(t, entity.RoleOwner, list.Items[0].Role)

	resp = env.do(t, http.MethodPatch, "/api/users/"+staff.ID+"/status", owner, dto.UpdateUserStatusRequest{Status: entity.UserStatusInactive})
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	// El token emitido antes de la desactivación deja de servir.
	resp = env.do(t, http.MethodGet, "/api/products", ops, nil)
	var inactive dto.ErrorResponse
	decode(t, resp, &inactive)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "USER_INACTIVE", inactive.Code)

	resp = env.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: "caja@equipo.com", Password: "password123"})
	var errBody dto.ErrorResponse
	decode(t, resp, &errBody)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "USER_INACTIVE", errBody.Code)

	// Usuario de otro vendedor.
	_, other := env.seller(t, "dueno@otra.com", entity.TierFree)
	resp = env.do(t, http.MethodPatch, "/api/users/"+staff.ID+"/status", other, dto.UpdateUserStatusRequest{Status: entity.UserStatusActive})
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestSeller_PerfilYRenombre(t *testing.T) {
	env := newTestEnv(t)
	sellerID, owner := env.seller(t, "dueno@perfil.com", entity.TierFree)

	resp := env.do(t, http.MethodGet, "/api/seller", owner, nil)
	var profile dto.SellerResponse
	decode(t, resp, &profile)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, sellerID, profile.ID)
	assert.Equal(t, []string{"INVENTORY", "SALES"}, profile.Features)

	support := env.staffToken(t, sellerID, entity.RoleSupport, entity.TierFree)
	resp = env.do(t, http.MethodPut, "/api/seller", support, dto.UpdateSellerRequest{Name: "X"})
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = env.do(t, http.MethodPut, "/api/seller", owner, dto.UpdateSellerRequest{Name: "Nueva"})
	decode(t, resp, &profile)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Nueva", profile.Name)
}

func TestRequireActiveUser_TokenDeUsuarioInexistente(t *testing.T) {
	env := newTestEnv(t)
	sellerID, _ := env.seller(t, "dueno@fantasma.com", entity.TierFree)

	resp := env.do(t, http.MethodGet, "/api/products", tokenFor(t, sellerID, entity.RoleOwner, entity.TierFree), nil)
	var body dto.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "INVALID_TOKEN", body.Code)
}
