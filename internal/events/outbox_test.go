package events

import (
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestOutbox(t *testing.T) (*Outbox, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&Event{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	return NewOutbox(conn, node), conn
}

func TestPublishDedupes(t *testing.T) {
	outbox, conn := newTestOutbox(t)
	ctx := t.Context()
	userID := snowflake.ID(42)

	payload := map[string]any{"order_id": "1001"}
	if err := outbox.Publish(ctx, userID, EventOrderCreated, payload, "order_created:1001"); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if err := outbox.Publish(ctx, userID, EventOrderCreated, payload, "order_created:1001"); err != nil {
		t.Fatalf("repeat publish: %v", err)
	}

	var count int64
	if err := conn.Model(&Event{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("events = %d, want 1 after dedupe", count)
	}
}

func TestPublishWithoutDedupeKeyAlwaysStores(t *testing.T) {
	outbox, conn := newTestOutbox(t)
	ctx := t.Context()
	userID := snowflake.ID(42)

	for i := 0; i < 2; i++ {
		if err := outbox.Publish(ctx, userID, EventOrderStatusChanged, map[string]any{"to": "shipped"}, ""); err != nil {
			t.Fatalf("publish %d: %v", i, err)
		}
	}

	var count int64
	if err := conn.Model(&Event{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 2 {
		t.Fatalf("events = %d, want 2", count)
	}
}

func TestPublishValidation(t *testing.T) {
	outbox, _ := newTestOutbox(t)
	ctx := t.Context()

	if err := outbox.Publish(ctx, 1, "  ", nil, ""); err == nil {
		t.Fatalf("expected an error for a blank event type")
	}
	if err := outbox.PublishTx(ctx, nil, 1, EventOrderCreated, nil, ""); err == nil {
		t.Fatalf("expected an error for a missing transaction")
	}
}
