package order

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/Chinmay1190/cricket-gear-hub/internal/cart"
	"github.com/Chinmay1190/cricket-gear-hub/internal/clock"
	"github.com/Chinmay1190/cricket-gear-hub/internal/events"
)

var (
	ErrInvalidID            = errors.New("invalid_order_id")
	ErrNotFound             = errors.New("order_not_found")
	ErrEmptyCart            = errors.New("empty_cart")
	ErrInvalidAddress       = errors.New("invalid_address")
	ErrInvalidPaymentMethod = errors.New("invalid_payment_method")
	ErrInvalidTransition    = errors.New("invalid_status_transition")
)

// CheckoutRequest carries the shipping and payment details for placing an
// order from the user's cart.
type CheckoutRequest struct {
	Name          string `json:"shipping_name"`
	Email         string `json:"shipping_email"`
	Phone         string `json:"shipping_phone"`
	Address       string `json:"shipping_address"`
	City          string `json:"shipping_city"`
	State         string `json:"shipping_state"`
	PostalCode    string `json:"shipping_postal_code"`
	PaymentMethod string `json:"payment_method"`
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	genID  *snowflake.Node
	clock  clock.Clock
	cart   *cart.Service
	outbox *events.Outbox
}

type ServiceParam struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	GenID  *snowflake.Node
	Clock  clock.Clock
	Cart   *cart.Service
	Outbox *events.Outbox
}

func NewService(p ServiceParam) *Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("order.service"),
		genID:  p.GenID,
		clock:  p.Clock,
		cart:   p.Cart,
		outbox: p.Outbox,
	}
}

// Checkout places an order from the user's cart: totals are computed with
// 18% GST and the free-shipping rule, the cart is cleared, and an
// order_created event is stored, all in one transaction.
func (s *Service) Checkout(ctx context.Context, userID snowflake.ID, req CheckoutRequest) (*Order, error) {
	method := PaymentMethod(strings.ToLower(strings.TrimSpace(req.PaymentMethod)))
	if !method.Valid() {
		return nil, ErrInvalidPaymentMethod
	}
	if err := validateAddress(req); err != nil {
		return nil, err
	}

	summary, err := s.cart.Summarize(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(summary.Lines) == 0 {
		return nil, ErrEmptyCart
	}

	now := s.clock.Now()
	orderID := s.genID.Generate()
	placed := &Order{
		ID:                 orderID,
		UserID:             userID,
		OrderNumber:        orderNumber(orderID, now),
		Status:             StatusPending,
		Subtotal:           summary.Subtotal,
		Tax:                summary.Tax,
		Shipping:           summary.Shipping,
		Total:              summary.Total,
		ShippingName:       strings.TrimSpace(req.Name),
		ShippingEmail:      strings.TrimSpace(req.Email),
		ShippingPhone:      strings.TrimSpace(req.Phone),
		ShippingAddress:    strings.TrimSpace(req.Address),
		ShippingCity:       strings.TrimSpace(req.City),
		ShippingState:      strings.TrimSpace(req.State),
		ShippingPostalCode: strings.TrimSpace(req.PostalCode),
		PaymentMethod:      method,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	items := make([]OrderItem, 0, len(summary.Lines))
	for _, line := range summary.Lines {
		items = append(items, OrderItem{
			ID:           s.genID.Generate(),
			OrderID:      orderID,
			ProductID:    line.Product.ID,
			ProductName:  line.Product.Name,
			ProductImage: line.Product.Image,
			Size:         line.Item.Size,
			Quantity:     line.Item.Quantity,
			Price:        line.Product.Price,
			CreatedAt:    now,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(placed).Error; err != nil {
			return err
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&cart.Item{}).Error; err != nil {
			return err
		}
		return s.outbox.PublishTx(ctx, tx, userID, events.EventOrderCreated, map[string]any{
			"order_id":     placed.ID.String(),
			"order_number": placed.OrderNumber,
			"total":        placed.Total,
		}, "order_created:"+placed.ID.String())
	})
	if err != nil {
		return nil, err
	}

	placed.Items = items
	s.log.Info("order placed",
		zap.String("order_number", placed.OrderNumber),
		zap.Float64("total", placed.Total),
	)
	return placed, nil
}

// GetByID loads one order with its items, scoped to the requesting user.
func (s *Service) GetByID(ctx context.Context, userID snowflake.ID, rawID string) (*Order, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(rawID))
	if err != nil {
		return nil, ErrInvalidID
	}

	var placed Order
	err = s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&placed).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Where("order_id = ?", id).
		Order("created_at ASC, id ASC").
		Find(&placed.Items).Error; err != nil {
		return nil, err
	}
	return &placed, nil
}

// List returns the user's orders, newest first, without items.
func (s *Service) List(ctx context.Context, userID snowflake.ID) ([]Order, error) {
	var orders []Order
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

// UpdateStatus advances an order through its lifecycle.
func (s *Service) UpdateStatus(ctx context.Context, userID snowflake.ID, rawID string, next Status) (*Order, error) {
	placed, err := s.GetByID(ctx, userID, rawID)
	if err != nil {
		return nil, err
	}
	if !CanTransition(placed.Status, next) {
		return nil, ErrInvalidTransition
	}

	now := s.clock.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Order{}).
			Where("id = ?", placed.ID).
			Updates(map[string]any{"status": next, "updated_at": now}).Error; err != nil {
			return err
		}
		return s.outbox.PublishTx(ctx, tx, userID, events.EventOrderStatusChanged, map[string]any{
			"order_id": placed.ID.String(),
			"from":     string(placed.Status),
			"to":       string(next),
		}, "")
	})
	if err != nil {
		return nil, err
	}

	placed.Status = next
	placed.UpdatedAt = now
	return placed, nil
}

// orderNumber derives the human-readable order number shown on invoices,
// e.g. CG-20260309-428371.
func orderNumber(id snowflake.ID, at time.Time) string {
	return fmt.Sprintf("CG-%s-%06d", at.Format("20060102"), id.Int64()%1_000_000)
}

func validateAddress(req CheckoutRequest) error {
	required := []string{req.Name, req.Email, req.Address, req.City, req.State, req.PostalCode}
	for _, field := range required {
		if strings.TrimSpace(field) == "" {
			return ErrInvalidAddress
		}
	}
	return nil
}
