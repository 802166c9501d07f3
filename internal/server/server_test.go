package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Chinmay1190/cricket-gear-hub/internal/cart"
	"github.com/Chinmay1190/cricket-gear-hub/internal/catalog"
	"github.com/Chinmay1190/cricket-gear-hub/internal/clock"
	"github.com/Chinmay1190/cricket-gear-hub/internal/config"
	"github.com/Chinmay1190/cricket-gear-hub/internal/db"
	"github.com/Chinmay1190/cricket-gear-hub/internal/events"
	"github.com/Chinmay1190/cricket-gear-hub/internal/invoice/export"
	"github.com/Chinmay1190/cricket-gear-hub/internal/invoice/render"
	"github.com/Chinmay1190/cricket-gear-hub/internal/newsletter"
	"github.com/Chinmay1190/cricket-gear-hub/internal/order"
	"github.com/Chinmay1190/cricket-gear-hub/internal/user"
	"github.com/Chinmay1190/cricket-gear-hub/internal/wishlist"
)

type testEnv struct {
	server *Server
	engine *gin.Engine
	db     *gorm.DB
	node   *snowflake.Node
	users  *user.Service
	orders *order.Service
	carts  *cart.Service
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	log := zap.NewNop()
	cfg := config.Config{
		Environment: "test",
		JWTSecret:   "test-secret",
		JWTExpiry:   time.Hour,
		ServiceName: "cricket-gear-hub",
	}

	catalogSvc := catalog.NewService(catalog.ServiceParam{DB: conn, Log: log})
	cartSvc := cart.NewService(cart.ServiceParam{DB: conn, Log: log, GenID: node, Catalog: catalogSvc})
	wishlistSvc := wishlist.NewService(wishlist.ServiceParam{DB: conn, Log: log, GenID: node})
	userSvc := user.NewService(user.ServiceParam{DB: conn, Log: log, GenID: node, Clock: clock.SystemClock{}, Config: cfg})
	newsletterSvc := newsletter.NewService(newsletter.ServiceParam{DB: conn, Log: log, GenID: node})
	orderSvc := order.NewService(order.ServiceParam{
		DB:     conn,
		Log:    log,
		GenID:  node,
		Clock:  clock.SystemClock{},
		Cart:   cartSvc,
		Outbox: events.NewOutbox(conn, node),
	})

	exporter, err := export.New(render.NewRenderer())
	if err != nil {
		t.Fatalf("exporter: %v", err)
	}

	srv := NewServer(ServerParam{
		Config:     cfg,
		DB:         conn,
		Log:        log,
		Catalog:    catalogSvc,
		Cart:       cartSvc,
		Wishlist:   wishlistSvc,
		Order:      orderSvc,
		User:       userSvc,
		Newsletter: newsletterSvc,
		Exporter:   exporter,
	})

	return &testEnv{
		server: srv,
		engine: NewEngine(cfg, log, srv),
		db:     conn,
		node:   node,
		users:  userSvc,
		orders: orderSvc,
		carts:  cartSvc,
	}
}

func (e *testEnv) seedProduct(t *testing.T, name string, price float64) catalog.Product {
	t.Helper()
	product := catalog.Product{
		ID:           e.node.Generate(),
		Name:         name,
		Slug:         uuid.NewString(),
		Brand:        "SG",
		CategorySlug: "bats",
		Price:        price,
		InStock:      true,
		StockCount:   10,
	}
	if err := e.db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func (e *testEnv) registerUser(t *testing.T, email string) *user.Session {
	t.Helper()
	session, err := e.users.Register(t.Context(), email, "str0ng-password", "Test User")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	return session
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.engine.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":        "buyer@example.com",
		"password":     "str0ng-password",
		"display_name": "Buyer",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("register status = %d, body %s", w.Code, w.Body.String())
	}

	var registered struct {
		Data user.Session `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &registered); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	if registered.Data.Token == "" {
		t.Fatalf("expected a session token")
	}

	w = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "buyer@example.com",
		"password": "str0ng-password",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login status = %d, body %s", w.Code, w.Body.String())
	}

	w = env.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "buyer@example.com",
		"password": "wrong-password",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d, want 401", w.Code)
	}
}

func TestCartRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/cart", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
}

func TestCheckoutFlow(t *testing.T) {
	env := newTestEnv(t)
	product := env.seedProduct(t, "Kashmir Willow Bat", 1500)
	session := env.registerUser(t, "checkout@example.com")
	token := session.Token

	w := env.do(t, http.MethodPost, "/api/cart/items", token, map[string]any{
		"product_id": product.ID.String(),
		"size":       "SH",
		"quantity":   1,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("add to cart status = %d, body %s", w.Code, w.Body.String())
	}

	w = env.do(t, http.MethodPost, "/api/orders", token, map[string]string{
		"shipping_name":        "Buyer",
		"shipping_email":       "checkout@example.com",
		"shipping_address":     "12 Pavilion Road",
		"shipping_city":        "Mumbai",
		"shipping_state":       "Maharashtra",
		"shipping_postal_code": "400001",
		"payment_method":       "upi",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("checkout status = %d, body %s", w.Code, w.Body.String())
	}

	var placed struct {
		Data order.Order `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &placed); err != nil {
		t.Fatalf("decode checkout response: %v", err)
	}
	if placed.Data.Subtotal != 1500 {
		t.Fatalf("subtotal = %v, want 1500", placed.Data.Subtotal)
	}
	if placed.Data.Tax != 270 {
		t.Fatalf("tax = %v, want 270", placed.Data.Tax)
	}
	if placed.Data.Shipping != 199 {
		t.Fatalf("shipping = %v, want 199", placed.Data.Shipping)
	}
	if placed.Data.Total != 1969 {
		t.Fatalf("total = %v, want 1969", placed.Data.Total)
	}

	w = env.do(t, http.MethodGet, "/api/orders/"+placed.Data.ID.String(), token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get order status = %d, body %s", w.Code, w.Body.String())
	}

	// second checkout with the now-empty cart must fail
	w = env.do(t, http.MethodPost, "/api/orders", token, map[string]string{
		"shipping_name":        "Buyer",
		"shipping_email":       "checkout@example.com",
		"shipping_address":     "12 Pavilion Road",
		"shipping_city":        "Mumbai",
		"shipping_state":       "Maharashtra",
		"shipping_postal_code": "400001",
		"payment_method":       "upi",
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("empty cart checkout status = %d, want 422", w.Code)
	}
}
