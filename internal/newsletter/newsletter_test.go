package newsletter

import (
	"errors"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&Subscriber{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		t.Fatalf("snowflake node: %v", err)
	}

	return NewService(ServiceParam{DB: conn, Log: zap.NewNop(), GenID: node}), conn
}

func TestSubscribeIsIdempotent(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := t.Context()

	if err := svc.Subscribe(ctx, "Fan@Example.com"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if err := svc.Subscribe(ctx, "fan@example.com"); err != nil {
		t.Fatalf("repeat subscribe: %v", err)
	}

	var count int64
	if err := conn.Model(&Subscriber{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("subscribers = %d, want 1", count)
	}

	var stored Subscriber
	if err := conn.First(&stored).Error; err != nil {
		t.Fatalf("load subscriber: %v", err)
	}
	if stored.Email != "fan@example.com" {
		t.Fatalf("email stored as %q, want lowercased", stored.Email)
	}
	if stored.UnsubscribeToken == "" {
		t.Fatalf("expected an unsubscribe token")
	}
}

func TestSubscribeRejectsMalformedEmail(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := t.Context()

	for _, email := range []string{"", "no-at-sign", "@example.com", "fan@", "fan@nodot"} {
		if err := svc.Subscribe(ctx, email); !errors.Is(err, ErrInvalidEmail) {
			t.Fatalf("Subscribe(%q) = %v, want ErrInvalidEmail", email, err)
		}
	}
}

func TestUnsubscribe(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := t.Context()

	if err := svc.Subscribe(ctx, "fan@example.com"); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	var stored Subscriber
	if err := conn.First(&stored).Error; err != nil {
		t.Fatalf("load subscriber: %v", err)
	}

	if err := svc.Unsubscribe(ctx, stored.UnsubscribeToken); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}

	var count int64
	if err := conn.Model(&Subscriber{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("subscribers = %d, want 0", count)
	}

	// unknown and blank tokens are ignored
	if err := svc.Unsubscribe(ctx, "no-such-token"); err != nil {
		t.Fatalf("unknown token: %v", err)
	}
	if err := svc.Unsubscribe(ctx, "  "); err != nil {
		t.Fatalf("blank token: %v", err)
	}
}
