// Package events stores storefront domain events in a transactional outbox
// table for downstream processing.
package events

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	EventOrderCreated       = "order_created"
	EventOrderStatusChanged = "order_status_changed"
)

// Event is one stored outbox row.
type Event struct {
	ID        snowflake.ID      `gorm:"primaryKey"`
	UserID    snowflake.ID      `gorm:"index"`
	Type      string            `gorm:"type:text;not null"`
	Payload   datatypes.JSONMap `gorm:"type:jsonb"`
	DedupeKey string            `gorm:"type:text;index"`
	Published bool              `gorm:"not null;default:false"`
	CreatedAt time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Event) TableName() string { return "storefront_events" }

type Outbox struct {
	db    *gorm.DB
	genID *snowflake.Node
}

func NewOutbox(db *gorm.DB, genID *snowflake.Node) *Outbox {
	return &Outbox{db: db, genID: genID}
}

// Publish stores an event using the default connection.
func (o *Outbox) Publish(ctx context.Context, userID snowflake.ID, eventType string, payload map[string]any, dedupeKey string) error {
	return o.publish(ctx, o.db, userID, eventType, payload, dedupeKey)
}

// PublishTx stores an event inside an existing transaction.
func (o *Outbox) PublishTx(ctx context.Context, tx *gorm.DB, userID snowflake.ID, eventType string, payload map[string]any, dedupeKey string) error {
	if tx == nil {
		return errors.New("missing_transaction")
	}
	return o.publish(ctx, tx, userID, eventType, payload, dedupeKey)
}

func (o *Outbox) publish(ctx context.Context, db *gorm.DB, userID snowflake.ID, eventType string, payload map[string]any, dedupeKey string) error {
	eventType = strings.TrimSpace(eventType)
	if eventType == "" {
		return errors.New("missing_event_type")
	}

	dedupeKey = strings.TrimSpace(dedupeKey)
	if dedupeKey != "" {
		var count int64
		if err := db.WithContext(ctx).Model(&Event{}).
			Where("dedupe_key = ?", dedupeKey).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
	}

	body := datatypes.JSONMap{}
	for key, value := range payload {
		if strings.TrimSpace(key) == "" {
			continue
		}
		body[key] = value
	}

	return db.WithContext(ctx).Create(&Event{
		ID:        o.genID.Generate(),
		UserID:    userID,
		Type:      eventType,
		Payload:   body,
		DedupeKey: dedupeKey,
		CreatedAt: time.Now().UTC(),
	}).Error
}
