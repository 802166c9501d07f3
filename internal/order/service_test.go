package order

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Chinmay1190/cricket-gear-hub/internal/cart"
	"github.com/Chinmay1190/cricket-gear-hub/internal/catalog"
	"github.com/Chinmay1190/cricket-gear-hub/internal/clock"
	"github.com/Chinmay1190/cricket-gear-hub/internal/events"
)

var fixedNow = time.Date(2026, 3, 9, 10, 30, 0, 0, time.UTC)

type testEnv struct {
	svc  *Service
	cart *cart.Service
	db   *gorm.DB
	node *snowflake.Node
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&catalog.Product{}, &cart.Item{}, &Order{}, &OrderItem{}, &events.Event{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	log := zap.NewNop()
	catalogSvc := catalog.NewService(catalog.ServiceParam{DB: conn, Log: log})
	cartSvc := cart.NewService(cart.ServiceParam{DB: conn, Log: log, GenID: node, Catalog: catalogSvc})
	svc := NewService(ServiceParam{
		DB:     conn,
		Log:    log,
		GenID:  node,
		Clock:  clock.Fixed{At: fixedNow},
		Cart:   cartSvc,
		Outbox: events.NewOutbox(conn, node),
	})

	return &testEnv{svc: svc, cart: cartSvc, db: conn, node: node}
}

func (e *testEnv) fillCart(t *testing.T, userID snowflake.ID, price float64, qty int) {
	t.Helper()
	product := catalog.Product{
		ID:           e.node.Generate(),
		Name:         "Test Bat",
		Slug:         uuid.NewString(),
		Brand:        "SG",
		CategorySlug: "bats",
		Price:        price,
		InStock:      true,
		StockCount:   50,
	}
	if err := e.db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	if _, err := e.cart.Add(t.Context(), userID, product.ID, "SH", qty); err != nil {
		t.Fatalf("fill cart: %v", err)
	}
}

func validRequest() CheckoutRequest {
	return CheckoutRequest{
		Name:          "Rohit Kumar",
		Email:         "rohit@example.com",
		Address:       "7 Stadium Lane",
		City:          "Pune",
		State:         "Maharashtra",
		PostalCode:    "411001",
		PaymentMethod: "upi",
	}
}

func TestCheckout(t *testing.T) {
	env := newTestEnv(t)
	userID := env.node.Generate()
	env.fillCart(t, userID, 1500, 1)
	ctx := t.Context()

	placed, err := env.svc.Checkout(ctx, userID, validRequest())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if placed.Status != StatusPending {
		t.Fatalf("status = %q, want pending", placed.Status)
	}
	if placed.Subtotal != 1500 || placed.Tax != 270 || placed.Shipping != 199 || placed.Total != 1969 {
		t.Fatalf("totals = %v/%v/%v/%v", placed.Subtotal, placed.Tax, placed.Shipping, placed.Total)
	}
	if !strings.HasPrefix(placed.OrderNumber, "CG-20260309-") {
		t.Fatalf("order number = %q, want CG-20260309-XXXXXX", placed.OrderNumber)
	}
	if len(placed.OrderNumber) != len("CG-20260309-000000") {
		t.Fatalf("order number %q has the wrong shape", placed.OrderNumber)
	}
	if len(placed.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(placed.Items))
	}

	// the cart is emptied in the same transaction
	lines, err := env.cart.Lines(ctx, userID)
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("cart still has %d lines after checkout", len(lines))
	}

	// and an order_created event is stored exactly once
	var count int64
	if err := env.db.Model(&events.Event{}).
		Where("type = ?", events.EventOrderCreated).
		Count(&count).Error; err != nil {
		t.Fatalf("count events: %v", err)
	}
	if count != 1 {
		t.Fatalf("order_created events = %d, want 1", count)
	}

	if _, err := env.svc.Checkout(ctx, userID, validRequest()); !errors.Is(err, ErrEmptyCart) {
		t.Fatalf("second checkout: got %v, want ErrEmptyCart", err)
	}
}

func TestCheckoutValidation(t *testing.T) {
	env := newTestEnv(t)
	userID := env.node.Generate()
	env.fillCart(t, userID, 1500, 1)
	ctx := t.Context()

	req := validRequest()
	req.PaymentMethod = "cheque"
	if _, err := env.svc.Checkout(ctx, userID, req); !errors.Is(err, ErrInvalidPaymentMethod) {
		t.Fatalf("bad payment method: got %v", err)
	}

	req = validRequest()
	req.City = "   "
	if _, err := env.svc.Checkout(ctx, userID, req); !errors.Is(err, ErrInvalidAddress) {
		t.Fatalf("blank city: got %v", err)
	}

	// the cart survives failed validation
	lines, err := env.cart.Lines(ctx, userID)
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	if len(lines) != 1 {
		t.Fatalf("cart lines = %d, want 1", len(lines))
	}
}

func TestGetByIDScopedToUser(t *testing.T) {
	env := newTestEnv(t)
	userID := env.node.Generate()
	env.fillCart(t, userID, 1500, 1)
	ctx := t.Context()

	placed, err := env.svc.Checkout(ctx, userID, validRequest())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}

	if _, err := env.svc.GetByID(ctx, env.node.Generate(), placed.ID.String()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("other user: got %v, want ErrNotFound", err)
	}
	if _, err := env.svc.GetByID(ctx, userID, "not-a-number"); !errors.Is(err, ErrInvalidID) {
		t.Fatalf("bad id: got %v, want ErrInvalidID", err)
	}

	got, err := env.svc.GetByID(ctx, userID, placed.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.OrderNumber != placed.OrderNumber {
		t.Fatalf("order number = %q, want %q", got.OrderNumber, placed.OrderNumber)
	}
	if len(got.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(got.Items))
	}
}

func TestUpdateStatusTransitions(t *testing.T) {
	env := newTestEnv(t)
	userID := env.node.Generate()
	env.fillCart(t, userID, 1500, 1)
	ctx := t.Context()

	placed, err := env.svc.Checkout(ctx, userID, validRequest())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	rawID := placed.ID.String()

	for _, next := range []Status{StatusConfirmed, StatusShipped, StatusDelivered} {
		placed, err = env.svc.UpdateStatus(ctx, userID, rawID, next)
		if err != nil {
			t.Fatalf("advance to %s: %v", next, err)
		}
		if placed.Status != next {
			t.Fatalf("status = %q, want %q", placed.Status, next)
		}
	}

	// delivered orders can no longer be cancelled
	if _, err := env.svc.UpdateStatus(ctx, userID, rawID, StatusCancelled); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("cancel delivered: got %v, want ErrInvalidTransition", err)
	}

	// skipping a stage is rejected
	userID2 := env.node.Generate()
	env.fillCart(t, userID2, 1500, 1)
	second, err := env.svc.Checkout(ctx, userID2, validRequest())
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	if _, err := env.svc.UpdateStatus(ctx, userID2, second.ID.String(), StatusShipped); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("skip confirmed: got %v, want ErrInvalidTransition", err)
	}

	// pending orders may be cancelled
	if _, err := env.svc.UpdateStatus(ctx, userID2, second.ID.String(), StatusCancelled); err != nil {
		t.Fatalf("cancel pending: %v", err)
	}
}
