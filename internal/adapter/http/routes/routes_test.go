package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"marketplace_escrow/internal/adapter/http/handlers/mocks"
	"marketplace_escrow/internal/adapter/http/middleware"
	"marketplace_escrow/internal/config"
	"marketplace_escrow/internal/domain/entities"
	"marketplace_escrow/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const testSecret = "s3cret"

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Port: 8080, AllowedOrigins: []string{"*"}},
		Store:  config.StoreConfig{Driver: config.StoreSQLite, DSN: ":memory:", AutoMigrate: true},
		Payments: config.PaymentsConfig{
			MockMode:        true,
			PaymentMethodID: "account_money",
		},
		Events: config.EventsConfig{Sinks: []string{config.EventSinkLog}},
		Auth:   config.AuthConfig{Disabled: true, WebhookSecret: testSecret},
	}
}

type mockedApp struct {
	app        *App
	settlement *mocks.MockISettlementUseCase
	storno     *mocks.MockIStornoUseCase
	escrows    *mocks.MockIEscrowUseCase
}

func newMockedApp(t *testing.T) mockedApp {
	ctrl := gomock.NewController(t)
	m := mockedApp{
		settlement: mocks.NewMockISettlementUseCase(ctrl),
		storno:     mocks.NewMockIStornoUseCase(ctrl),
		escrows:    mocks.NewMockIEscrowUseCase(ctrl),
	}
	m.app = &App{
		Config:     testConfig(),
		Logger:     zap.NewNop(),
		Drafts:     mocks.NewMockIDraftUseCase(ctrl),
		Escrows:    m.escrows,
		Finalize:   mocks.NewMockIFinalizeUseCase(ctrl),
		Settlement: m.settlement,
		Hours:      mocks.NewMockIHoursUseCase(ctrl),
		Storno:     m.storno,
	}
	return m
}

func serve(t *testing.T, router http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestNewRouter_Ping(t *testing.T) {
	m := newMockedApp(t)
	router, err := NewRouter(m.app)
	require.NoError(t, err)

	w := serve(t, router, http.MethodGet, "/v1/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")
}

func TestNewRouter_Authentication(t *testing.T) {
	m := newMockedApp(t)
	router, err := NewRouter(m.app)
	require.NoError(t, err)

	t.Run("missing actor", func(t *testing.T) {
		w := serve(t, router, http.MethodGet, "/v1/orders/o-1", "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("customer reaches order routes", func(t *testing.T) {
		m.settlement.EXPECT().
			GetOrder(gomock.Any(), entities.Actor{UserID: "cust-1", Role: entities.RoleCustomer}, "o-1").
			Return(entities.Order{ID: "o-1", Status: entities.OrderStatusPaymentReceivedClearing}, nil)

		w := serve(t, router, http.MethodGet, "/v1/orders/o-1", "", map[string]string{middleware.HeaderUserID: "cust-1"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("admin routes reject customers", func(t *testing.T) {
		w := serve(t, router, http.MethodGet, "/v1/admin/storno-requests", "", map[string]string{
			middleware.HeaderUserID:   "cust-1",
			middleware.HeaderUserRole: string(entities.RoleCustomer),
		})
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin lists storno requests", func(t *testing.T) {
		m.storno.EXPECT().
			ListRequests(gomock.Any(), entities.Actor{UserID: "adm-1", Role: entities.RoleAdmin}, entities.StornoStatus(""), gomock.Any()).
			Return(nil, nil)

		w := serve(t, router, http.MethodGet, "/v1/admin/storno-requests", "", map[string]string{
			middleware.HeaderUserID:   "adm-1",
			middleware.HeaderUserRole: string(entities.RoleAdmin),
		})
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestNewRouter_InternalRoutesRequireSecret(t *testing.T) {
	m := newMockedApp(t)
	router, err := NewRouter(m.app)
	require.NoError(t, err)

	w := serve(t, router, http.MethodPost, "/v1/internal/clearing/sweep", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(t, router, http.MethodPost, "/v1/webhooks/payments", `{}`, map[string]string{middleware.HeaderWebhookSecret: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	m.settlement.EXPECT().
		SweepClearing(gomock.Any(), gomock.Any(), 0).
		Return(usecase.SweepResult{Scanned: 2, Released: 2}, nil)

	w = serve(t, router, http.MethodPost, "/v1/internal/clearing/sweep", "", map[string]string{middleware.HeaderWebhookSecret: testSecret})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBuild_SQLiteDraftRoundTrip(t *testing.T) {
	app, err := Build(context.Background(), testConfig(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	assert.Nil(t, app.Sweeper)

	router, err := NewRouter(app)
	require.NoError(t, err)

	customer := map[string]string{middleware.HeaderUserID: "cust-1"}
	body := `{"id":"d-1","category":"cleaning","provider_id":"prov-1","price_amount":10000,"currency":"brl","buyer_service_fee":500}`

	w := serve(t, router, http.MethodPost, "/v1/drafts", body, customer)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = serve(t, router, http.MethodGet, "/v1/drafts/d-1", "", customer)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"currency":"BRL"`)

	w = serve(t, router, http.MethodGet, "/v1/drafts/d-1", "", map[string]string{middleware.HeaderUserID: "cust-2"})
	assert.NotEqual(t, http.StatusOK, w.Code)
}

func TestBuildStore_UnsupportedDriver(t *testing.T) {
	cfg := testConfig()
	cfg.Store.Driver = "mysql"

	_, _, err := BuildStore(context.Background(), cfg, zap.NewNop())
	assert.ErrorContains(t, err, "unsupported store driver")
}

func TestMigrate_SQLite(t *testing.T) {
	assert.NoError(t, Migrate(context.Background(), testConfig(), zap.NewNop()))
}

func TestBuild_CheckoutWebhookReplayAfterRelease(t *testing.T) {
	app, err := Build(context.Background(), testConfig(), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	router, err := NewRouter(app)
	require.NoError(t, err)

	customer := map[string]string{middleware.HeaderUserID: "cust-1"}
	system := map[string]string{middleware.HeaderWebhookSecret: testSecret}

	w := serve(t, router, http.MethodPost, "/v1/drafts",
		`{"id":"d-1","category":"cleaning","provider_id":"prov-1","price_amount":10000,"currency":"BRL","buyer_service_fee":500}`, customer)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = serve(t, router, http.MethodPost, "/v1/internal/escrows", `{"id":"esc-1","amount":10500,"currency":"BRL"}`, system)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	notification := `{"type":"checkout.succeeded","draft_id":"d-1","escrow_id":"esc-1","processor_payment_id":"123"}`
	orderID := func(w *httptest.ResponseRecorder) string {
		var body struct {
			Order struct {
				OrderID string `json:"order_id"`
				Created bool   `json:"created"`
			} `json:"order"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		return body.Order.OrderID
	}

	w = serve(t, router, http.MethodPost, "/v1/webhooks/payments", notification, system)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	first := orderID(w)
	require.NotEmpty(t, first)

	w = serve(t, router, http.MethodPost, "/v1/orders/"+first+"/release", "", customer)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = serve(t, router, http.MethodPost, "/v1/webhooks/payments", notification, system)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, first, orderID(w))
}
