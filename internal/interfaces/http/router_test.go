package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bentonit-ledger/internal/application/dto"
	"github.com/jhoicas/bentonit-ledger/internal/application/ledger"
	"github.com/jhoicas/bentonit-ledger/internal/application/usecase"
	"github.com/jhoicas/bentonit-ledger/internal/infrastructure/metrics"
	"github.com/jhoicas/bentonit-ledger/internal/infrastructure/sqlite"
	apphttp "github.com/jhoicas/bentonit-ledger/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

type api struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func newAPI(t *testing.T) *api {
	t.Helper()
	db, err := sqlite.Open("file:api_" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, sqlite.AutoMigrate(context.Background(), db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	tx := sqlite.NewTxRunner(db)
	reg := prometheus.NewRegistry()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		Ledger:      ledger.NewService(tx, metrics.NewLedgerMetrics(reg), zerolog.Nop(), ledger.Config{}),
		ProductUC:   usecase.NewProductUseCase(tx),
		WarehouseUC: usecase.NewWarehouseUseCase(tx),
		PartnerUC:   usecase.NewPartnerUseCase(tx),
		JWTSecret:   testJWTSecret,
		Metrics:     reg,
	})
	return &api{t: t, app: app, token: tokenForRole(t, "admin")}
}

func (a *api) as(role string) *api {
	return &api{t: a.t, app: a.app, token: tokenForRole(a.t, role)}
}

func (a *api) do(method, path string, body any) (int, []byte) {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if a.token != "" {
		req.Header.Set("Authorization", a.token)
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp.StatusCode, out
}

// create hace POST y devuelve el id del recurso creado.
func (a *api) create(path string, body any) string {
	a.t.Helper()
	status, raw := a.do(http.MethodPost, path, body)
	require.Equal(a.t, http.StatusCreated, status, string(raw))
	var out struct {
		ID string `json:"id"`
	}
	require.NoError(a.t, json.Unmarshal(raw, &out))
	return out.ID
}

func decode[T any](t *testing.T, raw []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v), string(raw))
	return v
}

type fixture struct {
	product, central, norte, partner string
}

func (a *api) seed() fixture {
	return fixture{
		product: a.create("/api/products", map[string]any{"name": "Bentonita sódica", "price": "10.00"}),
		central: a.create("/api/warehouses", map[string]any{"name": "Central"}),
		norte:   a.create("/api/warehouses", map[string]any{"name": "Norte"}),
		partner: a.create("/api/partners", map[string]any{"name": "Perforaciones SA"}),
	}
}

func (a *api) quantity(productID, warehouseID string) int64 {
	a.t.Helper()
	status, raw := a.do(http.MethodGet, "/api/stock?product_id="+productID+"&warehouse_id="+warehouseID, nil)
	require.Equal(a.t, http.StatusOK, status, string(raw))
	return decode[dto.QuantityResponse](a.t, raw).Quantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Rutas públicas
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_HealthYMetricsSonPublicos(t *testing.T) {
	a := newAPI(t)
	a.token = ""

	status, _ := a.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = a.do(http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = a.do(http.MethodGet, "/api/products", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Recepciones y traslados
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_RecepcionYTraslado(t *testing.T) {
	a := newAPI(t)
	f := a.seed()

	a.create("/api/invoices", map[string]any{"product_id": f.product, "warehouse_id": f.central, "quantity": 100})
	assert.Equal(t, int64(100), a.quantity(f.product, f.central))

	moveID := a.create("/api/movements", map[string]any{
		"product_id": f.product, "from_warehouse_id": f.central, "to_warehouse_id": f.norte, "quantity": 40,
	})
	assert.Equal(t, int64(60), a.quantity(f.product, f.central))
	assert.Equal(t, int64(0), a.quantity(f.product, f.norte))

	status, raw := a.do(http.MethodPatch, "/api/movements/"+moveID+"/status", map[string]any{"status": "delivered"})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.True(t, decode[dto.StatusChangeResponse](t, raw).Changed)
	assert.Equal(t, int64(40), a.quantity(f.product, f.norte))

	// repetir delivered no acredita de nuevo
	status, raw = a.do(http.MethodPatch, "/api/movements/"+moveID+"/status", map[string]any{"status": "delivered"})
	require.Equal(t, http.StatusOK, status)
	assert.False(t, decode[dto.StatusChangeResponse](t, raw).Changed)
	assert.Equal(t, int64(40), a.quantity(f.product, f.norte))

	status, raw = a.do(http.MethodPatch, "/api/movements/"+moveID+"/status", map[string]any{"status": "cancelled"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_TRANSITION", decode[dto.ErrorResponse](t, raw).Code)

	status, raw = a.do(http.MethodGet, "/api/stock/products/"+f.product, nil)
	require.Equal(t, http.StatusOK, status)
	stock := decode[dto.ProductStockResponse](t, raw)
	assert.Equal(t, int64(100), stock.Total)
	assert.Len(t, stock.Entries, 2)

	status, raw = a.do(http.MethodGet, "/api/movements?warehouse_id="+f.norte, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decode[[]dto.MovementResponse](t, raw), 1)
}

func TestRouter_ErroresDeTraslado(t *testing.T) {
	a := newAPI(t)
	f := a.seed()
	a.create("/api/invoices", map[string]any{"product_id": f.product, "warehouse_id": f.central, "quantity": 100})

	status, raw := a.do(http.MethodPost, "/api/movements", map[string]any{
		"product_id": f.product, "from_warehouse_id": f.central, "to_warehouse_id": f.norte, "quantity": 400, "status": "delivered",
	})
	require.Equal(t, http.StatusConflict, status)
	e := decode[dto.ErrorResponse](t, raw)
	assert.Equal(t, "INSUFFICIENT_STOCK", e.Code)
	assert.Equal(t, "100", e.Details["available"])
	assert.Equal(t, "400", e.Details["requested"])
	assert.Equal(t, int64(100), a.quantity(f.product, f.central))
	assert.Equal(t, int64(0), a.quantity(f.product, f.norte))

	status, raw = a.do(http.MethodPost, "/api/movements", map[string]any{
		"product_id": f.product, "from_warehouse_id": f.central, "to_warehouse_id": f.central, "quantity": 1,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "SAME_WAREHOUSE", decode[dto.ErrorResponse](t, raw).Code)

	status, raw = a.do(http.MethodPost, "/api/movements", map[string]any{
		"product_id": f.product, "from_warehouse_id": f.central, "to_warehouse_id": f.norte, "quantity": 0,
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_QUANTITY", decode[dto.ErrorResponse](t, raw).Code)

	status, raw = a.do(http.MethodPost, "/api/movements", map[string]any{"quantity": 5})
	assert.Equal(t, http.StatusBadRequest, status)
	e = decode[dto.ErrorResponse](t, raw)
	assert.Equal(t, "VALIDATION", e.Code)
	assert.Equal(t, "es requerido", e.Details["product_id"])

	status, _ = a.do(http.MethodGet, "/api/movements/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRouter_CantidadNoNumericaEsInvalida(t *testing.T) {
	a := newAPI(t)
	f := a.seed()

	for _, q := range []any{"abc", 2.5, true} {
		status, raw := a.do(http.MethodPost, "/api/invoices", map[string]any{"product_id": f.product, "warehouse_id": f.central, "quantity": q})
		assert.Equal(t, http.StatusBadRequest, status, "%v", q)
		assert.Equal(t, "INVALID_QUANTITY", decode[dto.ErrorResponse](t, raw).Code, "%v", q)
	}

	status, raw := a.do(http.MethodPost, "/api/movements", map[string]any{
		"product_id": f.product, "from_warehouse_id": f.central, "to_warehouse_id": f.norte, "quantity": "diez",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_QUANTITY", decode[dto.ErrorResponse](t, raw).Code)
	assert.Equal(t, int64(0), a.quantity(f.product, f.central))

	// otros campos mal tipados siguen siendo INVALID_BODY
	status, raw = a.do(http.MethodPost, "/api/invoices", map[string]any{"product_id": 7, "warehouse_id": f.central, "quantity": 1})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, raw).Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Pedidos
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_FlujoDePedido(t *testing.T) {
	a := newAPI(t)
	f := a.seed()
	a.create("/api/invoices", map[string]any{"product_id": f.product, "warehouse_id": f.central, "quantity": 20})

	orderID := a.create("/api/orders", map[string]any{"partner_id": f.partner, "warehouse_id": f.central})

	status, raw := a.do(http.MethodPost, "/api/orders/"+orderID+"/items", map[string]any{"product_id": f.product, "quantity": 3})
	require.Equal(t, http.StatusCreated, status, string(raw))
	status, raw = a.do(http.MethodPost, "/api/orders/"+orderID+"/items", map[string]any{"product_id": f.product, "quantity": 2})
	require.Equal(t, http.StatusCreated, status, string(raw))
	res := decode[dto.LineItemResultResponse](t, raw)
	assert.Equal(t, int64(5), res.Item.Quantity)
	assert.True(t, res.Payment.Amount.Equal(decimal.NewFromInt(50)), res.Payment.Amount.String())

	// bodeguero no puede aprobar
	status, _ = a.as("bodeguero").do(http.MethodPost, "/api/orders/"+orderID+"/approve", nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = a.as("bodeguero").do(http.MethodPatch, "/api/orders/"+orderID+"/status", map[string]any{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, int64(20), a.quantity(f.product, f.central))

	status, raw = a.as("manager").do(http.MethodPost, "/api/orders/"+orderID+"/approve", nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.True(t, decode[dto.StatusChangeResponse](t, raw).Changed)
	assert.Equal(t, int64(15), a.quantity(f.product, f.central))

	// aprobar de nuevo no descuenta
	status, raw = a.do(http.MethodPost, "/api/orders/"+orderID+"/approve", nil)
	require.Equal(t, http.StatusOK, status)
	assert.False(t, decode[dto.StatusChangeResponse](t, raw).Changed)
	assert.Equal(t, int64(15), a.quantity(f.product, f.central))

	status, raw = a.do(http.MethodPost, "/api/orders/"+orderID+"/items", map[string]any{"product_id": f.product, "quantity": 1})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INVALID_TRANSITION", decode[dto.ErrorResponse](t, raw).Code)

	status, raw = a.do(http.MethodPost, "/api/orders/"+orderID+"/pay", nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, "paid", decode[dto.PaymentResponse](t, raw).Status)

	status, raw = a.do(http.MethodGet, "/api/orders/"+orderID, nil)
	require.Equal(t, http.StatusOK, status)
	detail := decode[dto.OrderDetailResponse](t, raw)
	assert.Equal(t, "approved", detail.Order.Status)
	assert.NotNil(t, detail.Order.StockDeductedAt)
	require.Len(t, detail.Items, 1)
	require.NotNil(t, detail.Payment)
	assert.Equal(t, testEmployeeID, *detail.Order.EmployeeID)

	status, _ = a.do(http.MethodDelete, "/api/orders/"+orderID, nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestRouter_AprobacionSinStockNoDescuentaNada(t *testing.T) {
	a := newAPI(t)
	f := a.seed()
	other := a.create("/api/products", map[string]any{"name": "Caolín", "price": "4.00"})
	a.create("/api/invoices", map[string]any{"product_id": f.product, "warehouse_id": f.central, "quantity": 10})
	a.create("/api/invoices", map[string]any{"product_id": other, "warehouse_id": f.central, "quantity": 1})

	orderID := a.create("/api/orders", map[string]any{"partner_id": f.partner})
	a.do(http.MethodPost, "/api/orders/"+orderID+"/items", map[string]any{"product_id": f.product, "quantity": 4})
	a.do(http.MethodPost, "/api/orders/"+orderID+"/items", map[string]any{"product_id": other, "quantity": 2})

	status, raw := a.do(http.MethodPost, "/api/orders/"+orderID+"/approve", nil)
	require.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, raw).Code)
	assert.Equal(t, int64(10), a.quantity(f.product, f.central))
	assert.Equal(t, int64(1), a.quantity(other, f.central))
}

func TestRouter_EntregaDelPedido(t *testing.T) {
	a := newAPI(t)
	f := a.seed()
	orderID := a.create("/api/orders", map[string]any{"partner_id": f.partner})

	status, raw := a.do(http.MethodPut, "/api/orders/"+orderID+"/delivery", map[string]any{
		"method": "transportadora", "address": "Km 4 vía Girardot", "cost": "35.00",
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	d := decode[dto.DeliveryResponse](t, raw)
	assert.Equal(t, orderID, d.OrderID)
	assert.Equal(t, "pending", d.Status)

	status, raw = a.as(apphttp.RoleStorekeeper).do(http.MethodPut, "/api/orders/"+orderID+"/delivery", map[string]any{
		"method": "transportadora", "address": "Km 4 vía Girardot", "status": "shipped", "cost": "40.00",
	})
	require.Equal(t, http.StatusOK, status, string(raw))
	assert.Equal(t, d.ID, decode[dto.DeliveryResponse](t, raw).ID)

	status, raw = a.do(http.MethodGet, "/api/orders/"+orderID, nil)
	require.Equal(t, http.StatusOK, status)
	detail := decode[dto.OrderDetailResponse](t, raw)
	require.NotNil(t, detail.Delivery)
	assert.Equal(t, "shipped", detail.Delivery.Status)
	assert.True(t, detail.Delivery.Cost.Equal(decimal.NewFromInt(40)), detail.Delivery.Cost.String())
	require.NotNil(t, detail.Order.DeliveryID)
	assert.Equal(t, d.ID, *detail.Order.DeliveryID)

	status, raw = a.do(http.MethodPut, "/api/orders/"+orderID+"/delivery", map[string]any{
		"method": "moto", "address": "Calle 1", "status": "perdida",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, raw).Code)

	status, raw = a.do(http.MethodPut, "/api/orders/"+orderID+"/delivery", map[string]any{
		"method": "moto", "address": "Calle 1", "cost": "-1",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, raw).Code)

	status, _ = a.do(http.MethodPut, "/api/orders/"+uuid.NewString()+"/delivery", map[string]any{"method": "moto", "address": "Calle 1"})
	assert.Equal(t, http.StatusNotFound, status)
}

func TestRouter_CrearPedidoValidaEstado(t *testing.T) {
	a := newAPI(t)
	f := a.seed()

	status, raw := a.do(http.MethodPost, "/api/orders", map[string]any{"partner_id": f.partner, "status": "approved"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, raw).Code)

	status, _ = a.do(http.MethodPost, "/api/orders", map[string]any{"partner_id": uuid.NewString()})
	assert.Equal(t, http.StatusNotFound, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo
// ──────────────────────────────────────────────────────────────────────────────

func TestRouter_Catalogo(t *testing.T) {
	a := newAPI(t)
	f := a.seed()
	a.create("/api/invoices", map[string]any{"product_id": f.product, "warehouse_id": f.norte, "quantity": 7})

	status, raw := a.do(http.MethodGet, "/api/products?search=S%C3%93DICA", nil)
	require.Equal(t, http.StatusOK, status)
	list := decode[dto.ProductListResponse](t, raw)
	require.Len(t, list.Items, 1)
	assert.Equal(t, int64(7), list.Items[0].TotalStock)

	status, raw = a.do(http.MethodPost, "/api/warehouses", map[string]any{"name": "Central"})
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "DUPLICATE", decode[dto.ErrorResponse](t, raw).Code)

	status, _ = a.do(http.MethodDelete, "/api/warehouses/"+f.norte, nil)
	assert.Equal(t, http.StatusConflict, status)
	status, _ = a.do(http.MethodDelete, "/api/warehouses/"+f.central, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status, raw = a.do(http.MethodPost, "/api/partners", map[string]any{"name": "X", "email": "no-es-email"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, decode[dto.ErrorResponse](t, raw).Details, "email")
}
