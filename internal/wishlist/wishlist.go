package wishlist

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Chinmay1190/cricket-gear-hub/internal/catalog"
)

var ErrEntryNotFound = errors.New("wishlist_entry_not_found")

type Entry struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID    snowflake.ID `gorm:"not null;index:idx_wishlist_user_product,unique,priority:1" json:"-"`
	ProductID snowflake.ID `gorm:"not null;index:idx_wishlist_user_product,unique,priority:2" json:"product_id"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Entry) TableName() string { return "wishlist_entries" }

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
	return &Service{db: p.DB, log: p.Log.Named("wishlist.service"), genID: p.GenID}
}

// Add saves a product to the user's wishlist. Adding an already-saved
// product is a no-op success.
func (s *Service) Add(ctx context.Context, userID, productID snowflake.ID) error {
	var existing Entry
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	entry := Entry{
		ID:        s.genID.Generate(),
		UserID:    userID,
		ProductID: productID,
		CreatedAt: time.Now().UTC(),
	}
	return s.db.WithContext(ctx).Create(&entry).Error
}

func (s *Service) Remove(ctx context.Context, userID, productID snowflake.ID) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&Entry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// List returns the user's saved products, newest first.
func (s *Service) List(ctx context.Context, userID snowflake.ID) ([]catalog.Product, error) {
	var entries []Entry
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []catalog.Product{}, nil
	}

	ids := make([]snowflake.ID, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ProductID)
	}

	var products []catalog.Product
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}

	// Preserve wishlist order.
	byID := make(map[snowflake.ID]catalog.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	ordered := make([]catalog.Product, 0, len(products))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}

var Module = fx.Module("wishlist.service",
	fx.Provide(NewService),
)
