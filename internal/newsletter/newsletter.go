package newsletter

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/google/uuid"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var ErrInvalidEmail = errors.New("invalid_email")

type Subscriber struct {
	ID               snowflake.ID `gorm:"primaryKey" json:"id"`
	Email            string       `gorm:"type:text;not null;uniqueIndex" json:"email"`
	UnsubscribeToken string       `gorm:"type:text;not null" json:"-"`
	CreatedAt        time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Subscriber) TableName() string { return "newsletter_subscribers" }

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
}

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

func NewService(p ServiceParam) *Service {
	return &Service{db: p.DB, log: p.Log.Named("newsletter.service"), genID: p.GenID}
}

// Subscribe registers an email address. Subscribing twice is an idempotent
// success.
func (s *Service) Subscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 || !strings.Contains(email[at:], ".") {
		return ErrInvalidEmail
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&Subscriber{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return s.db.WithContext(ctx).Create(&Subscriber{
		ID:               s.genID.Generate(),
		Email:            email,
		UnsubscribeToken: uuid.NewString(),
		CreatedAt:        time.Now().UTC(),
	}).Error
}

// Unsubscribe removes a subscriber by their opt-out token. Unknown tokens
// are ignored.
func (s *Service) Unsubscribe(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	return s.db.WithContext(ctx).
		Where("unsubscribe_token = ?", token).
		Delete(&Subscriber{}).Error
}

var Module = fx.Module("newsletter.service",
	fx.Provide(NewService),
)
