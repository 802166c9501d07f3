package order

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

var statusRank = map[Status]int{
	StatusPending:   0,
	StatusConfirmed: 1,
	StatusShipped:   2,
	StatusDelivered: 3,
}

// CanTransition reports whether an order may move from to next. Forward-only
// through the fulfilment stages; cancellation only before shipment.
func CanTransition(from, to Status) bool {
	if to == StatusCancelled {
		return from == StatusPending || from == StatusConfirmed
	}
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank == fromRank+1
}

type PaymentMethod string

const (
	PaymentCOD        PaymentMethod = "cod"
	PaymentCard       PaymentMethod = "card"
	PaymentUPI        PaymentMethod = "upi"
	PaymentNetBanking PaymentMethod = "netbanking"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCOD, PaymentCard, PaymentUPI, PaymentNetBanking:
		return true
	}
	return false
}

// Order is one placed storefront order. Amounts are whole-rupee values and
// total = subtotal + tax + shipping holds at creation.
type Order struct {
	ID                 snowflake.ID  `gorm:"primaryKey" json:"id"`
	UserID             snowflake.ID  `gorm:"not null;index" json:"-"`
	OrderNumber        string        `gorm:"type:text;not null;uniqueIndex" json:"order_number"`
	Status             Status        `gorm:"type:text;not null" json:"status"`
	Subtotal           float64       `gorm:"not null" json:"subtotal"`
	Tax                float64       `gorm:"not null" json:"tax"`
	Shipping           float64       `gorm:"not null" json:"shipping"`
	Total              float64       `gorm:"not null" json:"total"`
	ShippingName       string        `gorm:"type:text;not null" json:"shipping_name"`
	ShippingEmail      string        `gorm:"type:text;not null" json:"shipping_email"`
	ShippingPhone      string        `gorm:"type:text" json:"shipping_phone,omitempty"`
	ShippingAddress    string        `gorm:"type:text;not null" json:"shipping_address"`
	ShippingCity       string        `gorm:"type:text;not null" json:"shipping_city"`
	ShippingState      string        `gorm:"type:text;not null" json:"shipping_state"`
	ShippingPostalCode string        `gorm:"type:text;not null" json:"shipping_postal_code"`
	PaymentMethod      PaymentMethod `gorm:"type:text;not null" json:"payment_method"`
	CreatedAt          time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt          time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`

	Items []OrderItem `gorm:"-" json:"items,omitempty"`
}

func (Order) TableName() string { return "orders" }

// OrderItem is one purchased line. The line total is derived at display time,
// never stored.
type OrderItem struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	OrderID      snowflake.ID `gorm:"not null;index" json:"-"`
	ProductID    snowflake.ID `gorm:"not null" json:"product_id"`
	ProductName  string       `gorm:"type:text;not null" json:"product_name"`
	ProductImage string       `gorm:"type:text" json:"product_image,omitempty"`
	Size         string       `gorm:"type:text" json:"size,omitempty"`
	Quantity     int          `gorm:"not null" json:"quantity"`
	Price        float64      `gorm:"not null" json:"price"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"-"`
}

func (OrderItem) TableName() string { return "order_items" }

// Amount is the derived line total.
func (i OrderItem) Amount() float64 {
	return float64(i.Quantity) * i.Price
}
