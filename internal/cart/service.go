package cart

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Chinmay1190/cricket-gear-hub/internal/catalog"
)

var (
	ErrInvalidProduct  = errors.New("invalid_product")
	ErrInvalidQuantity = errors.New("invalid_quantity")
	ErrItemNotFound    = errors.New("cart_item_not_found")
	ErrOutOfStock      = errors.New("out_of_stock")
)

// Shipping policy shared with checkout: orders above the threshold ship free.
const (
	TaxRate               = 0.18
	FreeShippingThreshold = 2000.0
	FlatShippingFee       = 199.0
)

// Line is a cart item joined with its product for display.
type Line struct {
	Item    Item            `json:"item"`
	Product catalog.Product `json:"product"`
}

// Summary mirrors the order-summary box: subtotal, GST, shipping preview.
type Summary struct {
	Lines    []Line  `json:"lines"`
	Subtotal float64 `json:"subtotal"`
	Tax      float64 `json:"tax"`
	Shipping float64 `json:"shipping"`
	Total    float64 `json:"total"`
}

type Service struct {
	db      *gorm.DB
	log     *zap.Logger
	genID   *snowflake.Node
	catalog *catalog.Service
}

type ServiceParam struct {
	fx.In

	DB      *gorm.DB
	Log     *zap.Logger
	GenID   *snowflake.Node
	Catalog *catalog.Service
}

func NewService(p ServiceParam) *Service {
	return &Service{
		db:      p.DB,
		log:     p.Log.Named("cart.service"),
		genID:   p.GenID,
		catalog: p.Catalog,
	}
}

// Add puts a product into the user's cart, merging quantity into an existing
// line for the same product and size.
func (s *Service) Add(ctx context.Context, userID snowflake.ID, productID snowflake.ID, size string, quantity int) (*Item, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := s.catalog.GetByID(ctx, int64(productID))
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			return nil, ErrInvalidProduct
		}
		return nil, err
	}
	if !product.InStock {
		return nil, ErrOutOfStock
	}

	size = strings.TrimSpace(size)
	now := time.Now().UTC()

	var item Item
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ? AND product_id = ? AND size = ?", userID, productID, size).
			First(&item).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			item = Item{
				ID:        s.genID.Generate(),
				UserID:    userID,
				ProductID: productID,
				Size:      size,
				Quantity:  quantity,
				CreatedAt: now,
				UpdatedAt: now,
			}
			return tx.Create(&item).Error
		}
		if err != nil {
			return err
		}
		item.Quantity += quantity
		item.UpdatedAt = now
		return tx.Model(&Item{}).Where("id = ?", item.ID).
			Updates(map[string]any{"quantity": item.Quantity, "updated_at": now}).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateQuantity sets a line's quantity; zero removes the line.
func (s *Service) UpdateQuantity(ctx context.Context, userID, itemID snowflake.ID, quantity int) error {
	if quantity < 0 {
		return ErrInvalidQuantity
	}
	if quantity == 0 {
		return s.Remove(ctx, userID, itemID)
	}

	result := s.db.WithContext(ctx).Model(&Item{}).
		Where("id = ? AND user_id = ?", itemID, userID).
		Updates(map[string]any{"quantity": quantity, "updated_at": time.Now().UTC()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *Service) Remove(ctx context.Context, userID, itemID snowflake.ID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", itemID, userID).
		Delete(&Item{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *Service) Clear(ctx context.Context, userID snowflake.ID) error {
	return s.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&Item{}).Error
}

// Lines returns the user's cart joined with product data, oldest line first.
func (s *Service) Lines(ctx context.Context, userID snowflake.ID) ([]Line, error) {
	var items []Item
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, err
	}

	lines := make([]Line, 0, len(items))
	for _, item := range items {
		product, err := s.catalog.GetByID(ctx, int64(item.ProductID))
		if err != nil {
			if errors.Is(err, catalog.ErrProductNotFound) {
				continue
			}
			return nil, err
		}
		lines = append(lines, Line{Item: item, Product: *product})
	}
	return lines, nil
}

// Summarize computes the order-summary amounts for the user's cart.
func (s *Service) Summarize(ctx context.Context, userID snowflake.ID) (Summary, error) {
	lines, err := s.Lines(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(lines), nil
}

// Summarize derives the displayed totals from cart lines. Amounts are
// whole-rupee; tax is 18% GST rounded to the rupee.
func Summarize(lines []Line) Summary {
	var subtotal float64
	for _, line := range lines {
		subtotal += float64(line.Item.Quantity) * line.Product.Price
	}

	tax := roundRupee(subtotal * TaxRate)
	shipping := FlatShippingFee
	if subtotal == 0 || subtotal > FreeShippingThreshold {
		shipping = 0
	}

	return Summary{
		Lines:    lines,
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal + tax + shipping,
	}
}

func roundRupee(v float64) float64 {
	return float64(int64(v + 0.5))
}
