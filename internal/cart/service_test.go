package cart

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Chinmay1190/cricket-gear-hub/internal/catalog"
)

func newTestService(t *testing.T) (*Service, *gorm.DB, *snowflake.Node) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&catalog.Product{}, &Item{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	catalogSvc := catalog.NewService(catalog.ServiceParam{DB: conn, Log: zap.NewNop()})
	svc := NewService(ServiceParam{DB: conn, Log: zap.NewNop(), GenID: node, Catalog: catalogSvc})
	return svc, conn, node
}

func seedProduct(t *testing.T, conn *gorm.DB, node *snowflake.Node, price float64, inStock bool) catalog.Product {
	t.Helper()
	product := catalog.Product{
		ID:           node.Generate(),
		Name:         "Test Bat",
		Slug:         uuid.NewString(),
		Brand:        "SG",
		CategorySlug: "bats",
		Price:        price,
		InStock:      inStock,
		StockCount:   10,
	}
	if err := conn.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func TestAddMergesSameProductAndSize(t *testing.T) {
	svc, conn, node := newTestService(t)
	product := seedProduct(t, conn, node, 1500, true)
	userID := node.Generate()
	ctx := t.Context()

	first, err := svc.Add(ctx, userID, product.ID, "SH", 1)
	if err != nil {
		t.Fatalf("first add: %v", err)
	}
	second, err := svc.Add(ctx, userID, product.ID, "SH", 2)
	if err != nil {
		t.Fatalf("second add: %v", err)
	}

	if second.ID != first.ID {
		t.Fatalf("expected the same line to be merged")
	}
	if second.Quantity != 3 {
		t.Fatalf("quantity = %d, want 3", second.Quantity)
	}

	// a different size is a separate line
	other, err := svc.Add(ctx, userID, product.ID, "LH", 1)
	if err != nil {
		t.Fatalf("add other size: %v", err)
	}
	if other.ID == first.ID {
		t.Fatalf("expected a new line for a different size")
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	svc, conn, node := newTestService(t)
	product := seedProduct(t, conn, node, 1500, true)
	outOfStock := seedProduct(t, conn, node, 900, false)
	userID := node.Generate()
	ctx := t.Context()

	if _, err := svc.Add(ctx, userID, product.ID, "", 0); err != ErrInvalidQuantity {
		t.Fatalf("zero quantity: got %v, want ErrInvalidQuantity", err)
	}
	if _, err := svc.Add(ctx, userID, node.Generate(), "", 1); err != ErrInvalidProduct {
		t.Fatalf("unknown product: got %v, want ErrInvalidProduct", err)
	}
	if _, err := svc.Add(ctx, userID, outOfStock.ID, "", 1); err != ErrOutOfStock {
		t.Fatalf("out of stock: got %v, want ErrOutOfStock", err)
	}
}

func TestUpdateQuantityZeroRemoves(t *testing.T) {
	svc, conn, node := newTestService(t)
	product := seedProduct(t, conn, node, 1500, true)
	userID := node.Generate()
	ctx := t.Context()

	item, err := svc.Add(ctx, userID, product.ID, "", 2)
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.UpdateQuantity(ctx, userID, item.ID, 0); err != nil {
		t.Fatalf("update to zero: %v", err)
	}

	lines, err := svc.Lines(ctx, userID)
	if err != nil {
		t.Fatalf("lines: %v", err)
	}
	if len(lines) != 0 {
		t.Fatalf("expected empty cart, got %d lines", len(lines))
	}

	if err := svc.UpdateQuantity(ctx, userID, item.ID, 1); err != ErrItemNotFound {
		t.Fatalf("update removed line: got %v, want ErrItemNotFound", err)
	}
}

func TestSummarizeTotals(t *testing.T) {
	line := func(price float64, qty int) Line {
		return Line{
			Item:    Item{Quantity: qty},
			Product: catalog.Product{Price: price},
		}
	}

	tests := []struct {
		name     string
		lines    []Line
		subtotal float64
		tax      float64
		shipping float64
	}{
		{name: "empty cart", lines: nil, subtotal: 0, tax: 0, shipping: 0},
		{name: "below threshold", lines: []Line{line(1500, 1)}, subtotal: 1500, tax: 270, shipping: 199},
		{name: "at threshold still pays", lines: []Line{line(2000, 1)}, subtotal: 2000, tax: 360, shipping: 199},
		{name: "above threshold ships free", lines: []Line{line(2450, 2)}, subtotal: 4900, tax: 882, shipping: 0},
		{name: "tax rounds to the rupee", lines: []Line{line(333, 1)}, subtotal: 333, tax: 60, shipping: 199},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			summary := Summarize(tc.lines)
			if summary.Subtotal != tc.subtotal {
				t.Fatalf("subtotal = %v, want %v", summary.Subtotal, tc.subtotal)
			}
			if summary.Tax != tc.tax {
				t.Fatalf("tax = %v, want %v", summary.Tax, tc.tax)
			}
			if summary.Shipping != tc.shipping {
				t.Fatalf("shipping = %v, want %v", summary.Shipping, tc.shipping)
			}
			want := tc.subtotal + tc.tax + tc.shipping
			if summary.Total != want {
				t.Fatalf("total = %v, want %v", summary.Total, want)
			}
		})
	}
}
