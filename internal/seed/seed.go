package seed

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Chinmay1190/cricket-gear-hub/internal/catalog"
)

// EnsureCatalog seeds the starter categories and products for startup
// bootstrap. Existing rows (matched by slug) are left untouched.
func EnsureCatalog(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCategoriesTx(ctx, tx, node); err != nil {
			return err
		}
		return ensureProductsTx(ctx, tx, node)
	})
}

func ensureCategoriesTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	categories := []catalog.Category{
		{Name: "Cricket Bats", Slug: "bats"},
		{Name: "Cricket Balls", Slug: "balls"},
		{Name: "Protective Gear", Slug: "protective"},
		{Name: "Clothing & Shoes", Slug: "clothing"},
		{Name: "Accessories", Slug: "accessories"},
	}

	for _, category := range categories {
		var existing catalog.Category
		err := tx.WithContext(ctx).Where("slug = ?", category.Slug).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		category.ID = node.Generate()
		if err := tx.WithContext(ctx).Create(&category).Error; err != nil {
			return err
		}
	}
	return nil
}

func ensureProductsTx(ctx context.Context, tx *gorm.DB, node *snowflake.Node) error {
	products := []catalog.Product{
		{
			Name:          "SG Sunny Tonny Classic",
			Slug:          "sg-sunny-tonny-classic",
			Brand:         "SG",
			CategorySlug:  "bats",
			Description:   "English willow bat with a traditional shape and full profile.",
			Price:         12999,
			OriginalPrice: 15999,
			Rating:        4.7,
			Reviews:       182,
			Badge:         "Bestseller",
			Sizes:         datatypes.JSON([]byte(`["SH","LH"]`)),
			PlayerLevel:   catalog.LevelProfessional,
			WillowType:    "English Willow",
			InStock:       true,
			StockCount:    14,
		},
		{
			Name:         "SS Ton Gladiator",
			Slug:         "ss-ton-gladiator",
			Brand:        "SS",
			CategorySlug: "bats",
			Description:  "Kashmir willow bat suited for club and league play.",
			Price:        4499,
			Rating:       4.3,
			Reviews:      96,
			Sizes:        datatypes.JSON([]byte(`["SH","LH","Harrow"]`)),
			PlayerLevel:  catalog.LevelIntermediate,
			WillowType:   "Kashmir Willow",
			InStock:      true,
			StockCount:   25,
		},
		{
			Name:         "Kookaburra Turf Red",
			Slug:         "kookaburra-turf-red",
			Brand:        "Kookaburra",
			CategorySlug: "balls",
			Description:  "Four-piece leather ball for first-class matches.",
			Price:        1899,
			Rating:       4.8,
			Reviews:      240,
			Badge:        "Match Grade",
			InStock:      true,
			StockCount:   60,
		},
		{
			Name:         "SG Test Batting Gloves",
			Slug:         "sg-test-batting-gloves",
			Brand:        "SG",
			CategorySlug: "protective",
			Description:  "Premium calf leather palms with flexible sausage fingers.",
			Price:        2799,
			Rating:       4.5,
			Reviews:      133,
			Sizes:        datatypes.JSON([]byte(`["Youth","Adult"]`)),
			PlayerLevel:  catalog.LevelProfessional,
			InStock:      true,
			StockCount:   32,
		},
		{
			Name:         "GM Original Batting Pads",
			Slug:         "gm-original-batting-pads",
			Brand:        "GM",
			CategorySlug: "protective",
			Description:  "Lightweight cane-reinforced pads with ergonomic bolsters.",
			Price:        3599,
			Rating:       4.4,
			Reviews:      77,
			Sizes:        datatypes.JSON([]byte(`["Youth","Adult"]`)),
			InStock:      true,
			StockCount:   18,
		},
		{
			Name:         "MRF Genius Grand Edition Kit Bag",
			Slug:         "mrf-genius-kit-bag",
			Brand:        "MRF",
			CategorySlug: "accessories",
			Description:  "Wheeled duffle with ventilated shoe compartment.",
			Price:        5299,
			Rating:       4.6,
			Reviews:      54,
			InStock:      true,
			StockCount:   9,
		},
	}

	for _, product := range products {
		var existing catalog.Product
		err := tx.WithContext(ctx).Where("slug = ?", product.Slug).First(&existing).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		product.ID = node.Generate()
		if err := tx.WithContext(ctx).Create(&product).Error; err != nil {
			return err
		}
	}
	return nil
}
