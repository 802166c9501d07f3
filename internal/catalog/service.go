package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Chinmay1190/cricket-gear-hub/internal/cache"
)

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrProductNotFound = errors.New("product_not_found")
)

const categoryCacheTTL = 5 * time.Minute

// ListRequest carries the product listing filters and sort.
type ListRequest struct {
	Category string   `form:"category"`
	Brands   []string `form:"brand"`
	Levels   []string `form:"level"`
	Willow   []string `form:"willow"`
	Search   string   `form:"q"`
	MinPrice float64  `form:"min_price"`
	MaxPrice float64  `form:"max_price"`
	Sort     string   `form:"sort"`
	Page     int      `form:"page"`
	PageSize int      `form:"page_size"`
}

type ListResponse struct {
	Products []Product `json:"products"`
	Total    int64     `json:"total"`
	Page     int       `json:"page"`
	PageSize int       `json:"page_size"`
}

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	categoryCache cache.Cache[string, []Category]
}

type ServiceParam struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

func NewService(p ServiceParam) *Service {
	return &Service{
		db:            p.DB,
		log:           p.Log.Named("catalog.service"),
		categoryCache: cache.NewTTLCache[string, []Category](),
	}
}

func (s *Service) List(ctx context.Context, req ListRequest) (ListResponse, error) {
	query := s.db.WithContext(ctx).Model(&Product{})

	if category := strings.TrimSpace(req.Category); category != "" {
		query = query.Where("category_slug = ?", category)
	}
	if len(req.Brands) > 0 {
		query = query.Where("brand IN ?", req.Brands)
	}
	if len(req.Levels) > 0 {
		query = query.Where("player_level IN ?", req.Levels)
	}
	if len(req.Willow) > 0 {
		query = query.Where("willow_type IN ?", req.Willow)
	}
	if search := strings.TrimSpace(req.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where(
			"LOWER(name) LIKE ? OR LOWER(brand) LIKE ? OR LOWER(description) LIKE ?",
			like, like, like,
		)
	}
	if req.MinPrice > 0 {
		query = query.Where("price >= ?", req.MinPrice)
	}
	if req.MaxPrice > 0 {
		query = query.Where("price <= ?", req.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return ListResponse{}, err
	}

	switch req.Sort {
	case "price-low":
		query = query.Order("price ASC")
	case "price-high":
		query = query.Order("price DESC")
	case "rating":
		query = query.Order("rating DESC")
	case "newest":
		query = query.Order("created_at DESC")
	default: // popularity
		query = query.Order("reviews DESC")
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 || pageSize > 100 {
		pageSize = 24
	}
	query = query.Offset((page - 1) * pageSize).Limit(pageSize)

	var products []Product
	if err := query.Find(&products).Error; err != nil {
		return ListResponse{}, err
	}

	return ListResponse{
		Products: products,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *Service) GetBySlug(ctx context.Context, slug string) (*Product, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, ErrInvalidID
	}

	var product Product
	err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (*Product, error) {
	var product Product
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&product).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Categories lists all categories, cached on the hot path.
func (s *Service) Categories(ctx context.Context) ([]Category, error) {
	if cached, ok := s.categoryCache.Get("all"); ok {
		return cached, nil
	}

	var categories []Category
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	s.categoryCache.Set("all", categories, categoryCacheTTL)
	return categories, nil
}
