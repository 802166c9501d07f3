package catalog

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Category struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:text;not null" json:"name"`
	Slug      string       `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Image     string       `gorm:"type:text" json:"image,omitempty"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

func (Category) TableName() string { return "categories" }

type PlayerLevel string

const (
	LevelBeginner     PlayerLevel = "beginner"
	LevelIntermediate PlayerLevel = "intermediate"
	LevelProfessional PlayerLevel = "professional"
)

// Product is one storefront listing. Images, sizes and specifications are
// stored as JSON documents.
type Product struct {
	ID             snowflake.ID      `gorm:"primaryKey" json:"id"`
	Name           string            `gorm:"type:text;not null" json:"name"`
	Slug           string            `gorm:"type:text;not null;uniqueIndex" json:"slug"`
	Brand          string            `gorm:"type:text;not null;index" json:"brand"`
	CategorySlug   string            `gorm:"type:text;not null;index" json:"category"`
	Description    string            `gorm:"type:text" json:"description"`
	Price          float64           `gorm:"not null" json:"price"`
	OriginalPrice  float64           `gorm:"not null;default:0" json:"original_price,omitempty"`
	Rating         float64           `gorm:"not null;default:0" json:"rating"`
	Reviews        int               `gorm:"not null;default:0" json:"reviews"`
	Image          string            `gorm:"type:text" json:"image"`
	Images         datatypes.JSON    `gorm:"type:jsonb" json:"images,omitempty"`
	Badge          string            `gorm:"type:text" json:"badge,omitempty"`
	Specifications datatypes.JSONMap `gorm:"type:jsonb" json:"specifications,omitempty"`
	Sizes          datatypes.JSON    `gorm:"type:jsonb" json:"sizes,omitempty"`
	PlayerLevel    PlayerLevel       `gorm:"type:text" json:"player_level,omitempty"`
	WillowType     string            `gorm:"type:text" json:"willow_type,omitempty"`
	InStock        bool              `gorm:"not null" json:"in_stock"`
	StockCount     int               `gorm:"not null;default:0" json:"stock_count,omitempty"`
	CreatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

func (Product) TableName() string { return "products" }
