// Package invoice wires the order domain into the invoice rendering and
// export pipeline.
package invoice

import (
	"github.com/Chinmay1190/cricket-gear-hub/internal/invoice/render"
	"github.com/Chinmay1190/cricket-gear-hub/internal/order"
)

// BuildRenderInput maps an order and its items onto the renderer's views.
// The order is borrowed read-only; amounts pass through untouched.
func BuildRenderInput(placed *order.Order) render.RenderInput {
	items := make([]render.LineItemView, 0, len(placed.Items))
	for _, item := range placed.Items {
		items = append(items, render.LineItemView{
			ProductName:  item.ProductName,
			ProductImage: item.ProductImage,
			Size:         item.Size,
			Quantity:     item.Quantity,
			UnitPrice:    item.Price,
		})
	}

	return render.RenderInput{
		Order: render.OrderView{
			OrderNumber:        placed.OrderNumber,
			Status:             string(placed.Status),
			Subtotal:           placed.Subtotal,
			Tax:                placed.Tax,
			Shipping:           placed.Shipping,
			Total:              placed.Total,
			ShippingName:       placed.ShippingName,
			ShippingEmail:      placed.ShippingEmail,
			ShippingPhone:      placed.ShippingPhone,
			ShippingAddress:    placed.ShippingAddress,
			ShippingCity:       placed.ShippingCity,
			ShippingState:      placed.ShippingState,
			ShippingPostalCode: placed.ShippingPostalCode,
			PaymentMethod:      string(placed.PaymentMethod),
			CreatedAt:          placed.CreatedAt,
		},
		Items: items,
	}
}
