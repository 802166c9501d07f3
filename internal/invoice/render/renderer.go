package render

import "time"

// RenderInput is the deterministic input used for invoice rendering.
type RenderInput struct {
	Order OrderView
	Items []LineItemView
}

type OrderView struct {
	OrderNumber        string
	Status             string
	Subtotal           float64
	Tax                float64
	Shipping           float64
	Total              float64
	ShippingName       string
	ShippingEmail      string
	ShippingPhone      string
	ShippingAddress    string
	ShippingCity       string
	ShippingState      string
	ShippingPostalCode string
	PaymentMethod      string
	CreatedAt          time.Time
}

type LineItemView struct {
	ProductName  string
	ProductImage string
	Size         string
	Quantity     int
	UnitPrice    float64
}

// Amount is the derived line total, computed at render time and never stored.
func (li LineItemView) Amount() float64 {
	return float64(li.Quantity) * li.UnitPrice
}

type Renderer interface {
	RenderHTML(input RenderInput) (string, error)
}
