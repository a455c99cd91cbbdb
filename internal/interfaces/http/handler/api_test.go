package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/moldshop/erp/internal/application/catalog"
	financeapp "github.com/moldshop/erp/internal/application/finance"
	identityapp "github.com/moldshop/erp/internal/application/identity"
	partnerapp "github.com/moldshop/erp/internal/application/partner"
	productionapp "github.com/moldshop/erp/internal/application/production"
	reportapp "github.com/moldshop/erp/internal/application/report"
	tradeapp "github.com/moldshop/erp/internal/application/trade"
	"github.com/moldshop/erp/internal/domain/catalog"
	"github.com/moldshop/erp/internal/domain/partner"
	"github.com/moldshop/erp/internal/infrastructure/auth"
	"github.com/moldshop/erp/internal/infrastructure/config"
	"github.com/moldshop/erp/internal/infrastructure/persistence"
	"github.com/moldshop/erp/internal/infrastructure/storage"
	"github.com/moldshop/erp/internal/interfaces/http/dto"
	"github.com/moldshop/erp/internal/interfaces/http/handler"
	"github.com/moldshop/erp/internal/interfaces/http/middleware"
	"github.com/moldshop/erp/internal/interfaces/http/router"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

type apiFixture struct {
	engine    *gin.Engine
	database  *persistence.Database
	products  *persistence.GormProductRepository
	customers *persistence.GormCustomerRepository
	token     string
}

type failingPinger struct{}

func (failingPinger) Ping(context.Context) error { return errors.New("connection refused") }

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	database, err := persistence.NewDatabase(&config.DatabaseConfig{Driver: "sqlite", Path: ":memory:"}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	require.NoError(t, database.AutoMigrate())

	db := database.DB
	log := zap.NewNop()
	products := persistence.NewGormProductRepository(db)
	customers := persistence.NewGormCustomerRepository(db)
	suppliers := persistence.NewGormSupplierRepository(db)
	molds := persistence.NewGormMoldRepository(db)
	machines := persistence.NewGormMachineRepository(db)
	ledger := persistence.NewGormTransactionRepository(db)
	sequence := persistence.NewGormOrderSequenceRepository(db)
	txManager := persistence.NewGormTxManager(db)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "handler-test-secret-of-sufficient-size",
		AccessTokenExpiration: time.Hour,
		Issuer:                "moldshop-erp",
	})
	blacklist := auth.NewInMemoryTokenBlacklist()
	authService := identityapp.NewAuthService(persistence.NewGormUserRepository(db), auth.NewBcryptHasher(bcrypt.MinCost), jwtService, blacklist, log)
	_, err = authService.EnsureDefaultAdmin(context.Background(), config.AuthConfig{AdminUsername: "admin", AdminPassword: "s3cret-pass"})
	require.NoError(t, err)

	h := router.Handlers{
		Auth:            handler.NewAuthHandler(authService),
		Product:         handler.NewProductHandler(catalogapp.NewProductService(products, suppliers)),
		Customer:        handler.NewCustomerHandler(partnerapp.NewCustomerService(customers)),
		Supplier:        handler.NewSupplierHandler(partnerapp.NewSupplierService(suppliers)),
		Mold:            handler.NewMoldHandler(productionapp.NewMoldService(molds, products)),
		Machine:         handler.NewMachineHandler(productionapp.NewMachineService(machines)),
		ProductionOrder: handler.NewProductionOrderHandler(productionapp.NewProductionOrderService(persistence.NewGormProductionOrderRepository(db), molds, machines, products, sequence, txManager, log)),
		SalesOrder:      handler.NewSalesOrderHandler(tradeapp.NewSalesOrderService(persistence.NewGormSalesOrderRepository(db), customers, products, ledger, sequence, txManager, log)),
		PurchaseOrder:   handler.NewPurchaseOrderHandler(tradeapp.NewPurchaseOrderService(persistence.NewGormPurchaseOrderRepository(db), suppliers, products, ledger, sequence, txManager, log)),
		Transaction:     handler.NewTransactionHandler(financeapp.NewLedgerService(ledger)),
		Report:          handler.NewReportHandler(reportapp.NewReportService(persistence.NewGormReportRepository(db), nil, storage.NewMemoryArchive("reports"), log)),
		System:          handler.NewSystemHandler("moldshop-erp", "test", database),
	}

	engine := gin.New()
	engine.Use(middleware.RequestID())
	router.Mount(engine, h, router.Guards{
		Authenticated: gin.HandlersChain{middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
			Logger:         log,
		})},
		AdminOnly: middleware.RequireRole(log, "admin"),
	})

	f := &apiFixture{engine: engine, database: database, products: products, customers: customers}
	f.token = f.login(t, "admin", "s3cret-pass")
	return f
}

func (f *apiFixture) login(t *testing.T, username, password string) string {
	t.Helper()
	rec := f.send(http.MethodPost, "/api/v1/auth/login", "", jsonBody(map[string]string{"username": username, "password": password}), gin.MIMEJSON)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var body struct {
		Data identityapp.LoginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Data.Token.AccessToken
}

func (f *apiFixture) send(method, path, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set(middleware.AuthHeaderKey, middleware.BearerPrefix+token)
	}
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func (f *apiFixture) json(method, path string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		body = jsonBody(payload)
	}
	return f.send(method, path, f.token, body, gin.MIMEJSON)
}

func (f *apiFixture) form(path string, values url.Values) *httptest.ResponseRecorder {
	return f.send(http.MethodPost, path, f.token, bytes.NewBufferString(values.Encode()), gin.MIMEPOSTForm)
}

func (f *apiFixture) product(t *testing.T, sku string, qty int64, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(catalog.ProductDetails{Name: "Part " + sku, SKU: sku, UnitPrice: decimal.RequireFromString(price)}, qty)
	require.NoError(t, err)
	require.NoError(t, f.products.Save(context.Background(), p))
	return p
}

func (f *apiFixture) customer(t *testing.T) *partner.Customer {
	t.Helper()
	c, err := partner.NewCustomer("Acme Packaging", "", partner.Contact{})
	require.NoError(t, err)
	require.NoError(t, f.customers.Save(context.Background(), c))
	return c
}

func (f *apiFixture) stock(t *testing.T, id uuid.UUID) int64 {
	t.Helper()
	p, err := f.products.FindByID(context.Background(), id)
	require.NoError(t, err)
	return p.Quantity
}

func jsonBody(v any) *bytes.Buffer {
	data, _ := json.Marshal(v)
	return bytes.NewBuffer(data)
}

// decodeData unmarshals the data field of a success envelope into out
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, out any) {
	t.Helper()
	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), rec.Body.String())
	require.True(t, envelope.Success, rec.Body.String())
	require.NoError(t, json.Unmarshal(envelope.Data, out))
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) *dto.ErrorInfo {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	require.NotNil(t, resp.Error, rec.Body.String())
	return resp.Error
}

func TestAuth(t *testing.T) {
	f := newAPIFixture(t)

	t.Run("me returns the signed-in user", func(t *testing.T) {
		rec := f.json(http.MethodGet, "/api/v1/auth/me", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var user identityapp.UserResponse
		decodeData(t, rec, &user)
		assert.Equal(t, "admin", user.Username)
		assert.Equal(t, "admin", user.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := f.send(http.MethodPost, "/api/v1/auth/login", "", jsonBody(map[string]string{"username": "admin", "password": "nope"}), gin.MIMEJSON)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("login form answers with JSON", func(t *testing.T) {
		values := url.Values{"username": {"admin"}, "password": {"s3cret-pass"}}
		rec := f.send(http.MethodPost, "/api/v1/auth/login", "", bytes.NewBufferString(values.Encode()), gin.MIMEPOSTForm)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp identityapp.LoginResponse
		decodeData(t, rec, &resp)
		assert.NotEmpty(t, resp.Token.AccessToken)
	})

	t.Run("protected routes need a token", func(t *testing.T) {
		for _, path := range []string{"/api/products", "/api/v1/products", "/api/v1/reports/dashboard"} {
			rec := f.send(http.MethodGet, path, "", nil, "")
			assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		}
	})

	t.Run("logout revokes the token", func(t *testing.T) {
		token := f.login(t, "admin", "s3cret-pass")
		require.Equal(t, http.StatusOK, f.send(http.MethodGet, "/api/v1/auth/me", token, nil, "").Code)

		require.Equal(t, http.StatusNoContent, f.send(http.MethodPost, "/api/v1/auth/logout", token, nil, "").Code)

		rec := f.send(http.MethodGet, "/api/v1/auth/me", token, nil, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, dto.ErrCodeTokenRevoked, decodeError(t, rec).Code)
	})
}

func TestProducts(t *testing.T) {
	f := newAPIFixture(t)

	t.Run("json create", func(t *testing.T) {
		rec := f.json(http.MethodPost, "/api/v1/products", map[string]any{
			"name":       "Bottle Cap 28mm",
			"sku":        "CAP-28",
			"category":   "closures",
			"quantity":   500,
			"unit_price": "0.12",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

		var product catalogapp.ProductResponse
		decodeData(t, rec, &product)
		assert.Equal(t, "CAP-28", product.SKU)
		assert.Equal(t, "Closures", product.Category)
		assert.Equal(t, int64(500), product.Quantity)
		assert.True(t, decimal.RequireFromString("60").Equal(product.StockValue))

		rec = f.json(http.MethodGet, "/api/v1/products/"+product.ID.String(), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("form create redirects to the listing", func(t *testing.T) {
		rec := f.form("/api/v1/products", url.Values{
			"name":       {"Hinge Clip"},
			"sku":        {"CLIP-01"},
			"quantity":   {"40"},
			"unit_price": {"1.50"},
		})
		assert.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
		assert.Equal(t, "/api/v1/products", rec.Header().Get("Location"))
	})

	t.Run("form with a non-numeric quantity", func(t *testing.T) {
		rec := f.form("/api/v1/products", url.Values{"name": {"X"}, "sku": {"X-1"}, "quantity": {"lots"}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		info := decodeError(t, rec)
		assert.Equal(t, dto.ErrCodeValidation, info.Code)
		require.Len(t, info.Details, 1)
		assert.Equal(t, "quantity", info.Details[0].Field)
	})

	t.Run("missing required fields", func(t *testing.T) {
		rec := f.json(http.MethodPost, "/api/v1/products", map[string]any{"quantity": 1})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		info := decodeError(t, rec)
		assert.Equal(t, dto.ErrCodeValidation, info.Code)
		fields := make([]string, 0, len(info.Details))
		for _, d := range info.Details {
			fields = append(fields, d.Field)
		}
		assert.ElementsMatch(t, []string{"name", "sku"}, fields)
	})

	t.Run("duplicate sku", func(t *testing.T) {
		rec := f.json(http.MethodPost, "/api/v1/products", map[string]any{"name": "Again", "sku": "CAP-28", "unit_price": "1"})
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("bad and unknown ids", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, f.json(http.MethodGet, "/api/v1/products/not-a-uuid", nil).Code)
		assert.Equal(t, http.StatusNotFound, f.json(http.MethodGet, "/api/v1/products/"+uuid.NewString(), nil).Code)
	})

	t.Run("list pages the results", func(t *testing.T) {
		rec := f.json(http.MethodGet, "/api/v1/products?page=1&page_size=1", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp dto.Response
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		require.NotNil(t, resp.Meta)
		assert.Equal(t, int64(2), resp.Meta.Total)
		assert.Equal(t, 2, resp.Meta.TotalPages)
	})

	t.Run("invalid list filter", func(t *testing.T) {
		rec := f.json(http.MethodGet, "/api/v1/products?supplier_id=nope", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestProducts_PublicListing(t *testing.T) {
	f := newAPIFixture(t)
	p := f.product(t, "LID-90", 12, "2.25")

	rec := f.json(http.MethodGet, "/api/products", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Len(t, rows[0], 5)
	assert.Equal(t, p.ID.String(), rows[0]["id"])
	assert.Equal(t, "Part LID-90", rows[0]["name"])
	assert.Equal(t, "LID-90", rows[0]["sku"])
	assert.Equal(t, 2.25, rows[0]["unit_price"])
	assert.Equal(t, float64(12), rows[0]["quantity"])

	body := rec.Body.String()
	assert.Less(t, strings.Index(body, `"id"`), strings.Index(body, `"name"`))
	assert.Less(t, strings.Index(body, `"unit_price"`), strings.Index(body, `"quantity"`))
}

func TestProducts_DeleteRequiresAdmin(t *testing.T) {
	f := newAPIFixture(t)
	p := f.product(t, "DEL-1", 1, "1")

	rec := f.json(http.MethodDelete, "/api/v1/products/"+p.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, http.StatusNotFound, f.json(http.MethodGet, "/api/v1/products/"+p.ID.String(), nil).Code)
}

func TestSalesOrders(t *testing.T) {
	f := newAPIFixture(t)
	cap28 := f.product(t, "CAP-28", 100, "0.50")
	clip := f.product(t, "CLIP-01", 10, "2.00")
	customer := f.customer(t)

	t.Run("form with parallel line arrays", func(t *testing.T) {
		rec := f.form("/api/v1/sales-orders", url.Values{
			"customer_id":  {customer.ID.String()},
			"notes":        {"rush"},
			"product_id[]": {cap28.ID.String(), "", clip.ID.String()},
			"quantity[]":   {"20", "", "3"},
			"unit_price[]": {"0.50", "", "2.00"},
		})
		require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())
		assert.Equal(t, "/api/v1/sales-orders", rec.Header().Get("Location"))

		list := f.json(http.MethodGet, "/api/v1/sales-orders?customer_id="+customer.ID.String(), nil)
		require.Equal(t, http.StatusOK, list.Code)
		var orders []tradeapp.SalesOrderResponse
		decodeData(t, list, &orders)
		require.Len(t, orders, 1)
		assert.Equal(t, "pending", orders[0].Status)
		assert.True(t, decimal.RequireFromString("16").Equal(orders[0].TotalAmount))
	})

	t.Run("line without a quantity", func(t *testing.T) {
		rec := f.form("/api/v1/sales-orders", url.Values{
			"customer_id":  {customer.ID.String()},
			"product_id[]": {cap28.ID.String()},
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("blank price on a completed form writes nothing", func(t *testing.T) {
		rec := f.form("/api/v1/sales-orders", url.Values{
			"customer_id":  {customer.ID.String()},
			"status":       {"completed"},
			"product_id[]": {cap28.ID.String()},
			"quantity[]":   {"2"},
			"unit_price[]": {""},
		})
		require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		info := decodeError(t, rec)
		assert.Equal(t, dto.ErrCodeValidation, info.Code)
		require.NotEmpty(t, info.Details)
		assert.Equal(t, "unit_price[0]", info.Details[0].Field)
		assert.Equal(t, int64(100), f.stock(t, cap28.ID))
	})

	t.Run("json line without a price", func(t *testing.T) {
		rec := f.json(http.MethodPost, "/api/v1/sales-orders", map[string]any{
			"customer_id": customer.ID,
			"status":      "completed",
			"items": []map[string]any{
				{"product_id": cap28.ID, "quantity": 2},
			},
		})
		require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		info := decodeError(t, rec)
		require.NotEmpty(t, info.Details)
		assert.Equal(t, "unit_price", info.Details[0].Field)
		assert.Equal(t, int64(100), f.stock(t, cap28.ID))
	})

	t.Run("complete debits stock and cannot repeat", func(t *testing.T) {
		rec := f.json(http.MethodPost, "/api/v1/sales-orders", map[string]any{
			"customer_id": customer.ID,
			"items": []map[string]any{
				{"product_id": clip.ID, "quantity": 4, "unit_price": "2.00"},
			},
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var order tradeapp.SalesOrderResponse
		decodeData(t, rec, &order)

		rec = f.json(http.MethodPost, "/api/v1/sales-orders/"+order.ID.String()+"/complete", nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, int64(6), f.stock(t, clip.ID))

		rec = f.json(http.MethodPost, "/api/v1/sales-orders/"+order.ID.String()+"/complete", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, dto.ErrCodeInvalidState, decodeError(t, rec).Code)

		rec = f.json(http.MethodPost, "/api/v1/sales-orders/"+order.ID.String()+"/cancel", nil)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("unknown customer", func(t *testing.T) {
		rec := f.json(http.MethodPost, "/api/v1/sales-orders", map[string]any{"customer_id": uuid.New()})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		info := decodeError(t, rec)
		require.Len(t, info.Details, 1)
		assert.Equal(t, "customer_id", info.Details[0].Field)
	})

	t.Run("ledger records the income", func(t *testing.T) {
		rec := f.json(http.MethodGet, "/api/v1/transactions/summary", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var summary financeapp.SummaryResponse
		decodeData(t, rec, &summary)
		assert.True(t, decimal.RequireFromString("24").Equal(summary.TotalIncome), summary.TotalIncome.String())
		assert.Equal(t, int64(2), summary.Count)
	})
}

func TestPurchaseOrders_Receive(t *testing.T) {
	f := newAPIFixture(t)
	resin := f.product(t, "PP-RESIN", 0, "3.10")

	rec := f.json(http.MethodPost, "/api/v1/suppliers", map[string]any{"name": "Polymer Supply"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var supplier partnerapp.SupplierResponse
	decodeData(t, rec, &supplier)

	rec = f.json(http.MethodPost, "/api/v1/purchase-orders", map[string]any{"supplier_id": supplier.ID})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = f.form("/api/v1/purchase-orders", url.Values{
		"supplier_id":  {supplier.ID.String()},
		"product_id[]": {resin.ID.String()},
		"quantity[]":   {"250"},
		"unit_price[]": {"3.10"},
	})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	rec = f.json(http.MethodGet, "/api/v1/purchase-orders", nil)
	var orders []tradeapp.PurchaseOrderResponse
	decodeData(t, rec, &orders)
	require.Len(t, orders, 1)

	rec = f.json(http.MethodPost, "/api/v1/purchase-orders/"+orders[0].ID.String()+"/receive", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, int64(250), f.stock(t, resin.ID))
}

func TestProductionOrders_Lifecycle(t *testing.T) {
	f := newAPIFixture(t)
	cap28 := f.product(t, "CAP-28", 0, "0.50")

	rec := f.json(http.MethodPost, "/api/v1/molds", map[string]any{
		"code":         "M-CAP28",
		"name":         "28mm cap, 8 cavity",
		"product_id":   cap28.ID,
		"cavity_count": 8,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var mold productionapp.MoldResponse
	decodeData(t, rec, &mold)

	rec = f.form("/api/v1/machines", url.Values{"code": {"IMM-01"}, "name": {"Engel 200t"}, "tonnage": {"200"}})
	require.Equal(t, http.StatusSeeOther, rec.Code, rec.Body.String())

	rec = f.json(http.MethodPost, "/api/v1/production-orders", map[string]any{
		"product_id":       cap28.ID,
		"mold_id":          mold.ID,
		"planned_quantity": 1000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var order productionapp.ProductionOrderResponse
	decodeData(t, rec, &order)
	assert.Equal(t, "planned", order.Status)
	base := "/api/v1/production-orders/" + order.ID.String()

	// Inspection before completion is out of order
	rec = f.json(http.MethodPost, base+"/quality", map[string]any{"result": "passed", "inspector": "QA"})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = f.json(http.MethodPost, base+"/start", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, rec, &order)
	assert.Equal(t, "Part CAP-28", order.ProductName)

	// Completion figures are all required
	rec = f.form(base+"/complete", url.Values{})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Equal(t, "produced_quantity", decodeError(t, rec).Details[0].Field)

	rec = f.json(http.MethodPost, base+"/complete", map[string]any{"produced_quantity": 960})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Equal(t, dto.ErrCodeValidation, decodeError(t, rec).Code)

	rec = f.json(http.MethodGet, base, nil)
	decodeData(t, rec, &order)
	assert.Equal(t, "in_progress", order.Status)

	rec = f.json(http.MethodPost, base+"/complete", map[string]any{
		"produced_quantity": 960,
		"scrap_quantity":    40,
		"raw_material_used": "12.5",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, rec, &order)
	assert.True(t, decimal.RequireFromString("0.96").Equal(order.YieldRate))
	assert.Equal(t, "Part CAP-28", order.ProductName)
	assert.Equal(t, int64(0), f.stock(t, cap28.ID))

	rec = f.form(base+"/quality", url.Values{"result": {"passed"}, "inspector": {"QA"}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, int64(960), f.stock(t, cap28.ID))
}

func TestReports(t *testing.T) {
	f := newAPIFixture(t)
	f.product(t, "LOW-1", 2, "1.00")

	t.Run("dashboard", func(t *testing.T) {
		rec := f.json(http.MethodGet, "/api/v1/reports/dashboard", nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var body map[string]any
		decodeData(t, rec, &body)
		assert.Equal(t, float64(1), body["total_products"])
		assert.Equal(t, float64(1), body["low_stock"])
		assert.Equal(t, []any{}, body["recent_orders"])
	})

	t.Run("export downloads a workbook", func(t *testing.T) {
		rec := f.json(http.MethodGet, "/api/v1/reports/export", nil)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment; filename=")
		assert.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
		assert.True(t, strings.HasPrefix(rec.Header().Get(handler.ArchiveKeyHeader), "reports/"))
		assert.NotEmpty(t, rec.Header().Get(handler.ArchiveURLHeader))
		assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("PK")))
	})
}

func TestHealth(t *testing.T) {
	f := newAPIFixture(t)

	rec := f.send(http.MethodGet, "/health", "", nil, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var health handler.HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, "connected", health.Database)

	engine := gin.New()
	engine.GET("/health", handler.NewSystemHandler("moldshop-erp", "test", failingPinger{}).Health)
	rec = httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
