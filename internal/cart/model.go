package cart

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Item is one cart line for a signed-in user. The same product in two
// different sizes occupies two lines.
type Item struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	UserID    snowflake.ID `gorm:"not null;index:idx_cart_user_product,unique,priority:1" json:"-"`
	ProductID snowflake.ID `gorm:"not null;index:idx_cart_user_product,unique,priority:2" json:"product_id"`
	Size      string       `gorm:"type:text;not null;default:'';index:idx_cart_user_product,unique,priority:3" json:"size,omitempty"`
	Quantity  int          `gorm:"not null" json:"quantity"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
	UpdatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

func (Item) TableName() string { return "cart_items" }
