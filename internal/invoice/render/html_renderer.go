package render

import (
	"bytes"
	"html/template"

	"github.com/Chinmay1190/cricket-gear-hub/internal/invoice/format"
)

// Seller identity printed on every invoice. Fixed business details, not
// configurable per order.
const (
	sellerName    = "CRICKETGEAR"
	sellerTagline = "India's Premier Cricket Equipment Store"
	sellerGSTIN   = "27AABCC1234D1Z5"
)

const invoiceTemplate = `<div class="print-invoice">
  <div class="invoice-header">
    <div class="seller">
      <h1 class="seller-name">` + sellerName + `</h1>
      <p class="seller-tagline">` + sellerTagline + `</p>
      <div class="seller-contact">
        <p>123 Sports Complex, MG Road</p>
        <p>Mumbai, Maharashtra 400001</p>
        <p>Phone: +91 98765 43210 | Email: support@cricketgear.in</p>
        <p>GSTIN: ` + sellerGSTIN + `</p>
      </div>
    </div>
    <div class="invoice-meta">
      <h2 class="invoice-title">TAX INVOICE</h2>
      <div class="meta-rows">
        <div><span class="muted">Invoice No: </span><strong>{{.Order.OrderNumber}}</strong></div>
        <div><span class="muted">Date: </span><strong>{{date .Order.CreatedAt}}</strong></div>
        <div><span class="muted">Status: </span><strong>{{status .Order.Status}}</strong></div>
      </div>
    </div>
  </div>

  <div class="address-grid">
    <div class="address-block">
      <h3 class="block-title">Bill To</h3>
      <p class="recipient">{{.Order.ShippingName}}</p>
      <p class="address-line">{{.Order.ShippingAddress}}</p>
      <p class="address-line">{{.Order.ShippingCity}}, {{.Order.ShippingState}} {{.Order.ShippingPostalCode}}</p>
      {{if .Order.ShippingPhone}}<p class="address-line">Phone: {{.Order.ShippingPhone}}</p>{{end}}
      <p class="address-line">Email: {{.Order.ShippingEmail}}</p>
    </div>
    <div class="address-block">
      <h3 class="block-title">Ship To</h3>
      <p class="recipient">{{.Order.ShippingName}}</p>
      <p class="address-line">{{.Order.ShippingAddress}}</p>
      <p class="address-line">{{.Order.ShippingCity}}, {{.Order.ShippingState}} {{.Order.ShippingPostalCode}}</p>
    </div>
  </div>

  <div class="payment-method">
    <span class="muted">Payment Method: </span><strong>{{payment .Order.PaymentMethod}}</strong>
  </div>

  <table class="items">
    <thead>
      <tr>
        <th class="col-index">#</th>
        <th class="col-desc">Description</th>
        <th class="col-qty">Qty</th>
        <th class="col-price">Unit Price</th>
        <th class="col-amount">Amount</th>
      </tr>
    </thead>
    <tbody>
      {{range $i, $item := .Items}}
      <tr>
        <td>{{inc $i}}</td>
        <td class="item-desc">
          {{if $item.ProductImage}}<img class="item-thumb" src="{{$item.ProductImage}}" alt="{{$item.ProductName}}" />{{else}}<span class="item-thumb item-thumb-empty"></span>{{end}}
          <span class="item-name">{{$item.ProductName}}</span>
          {{if $item.Size}}<span class="item-size">Size: {{$item.Size}}</span>{{end}}
        </td>
        <td class="num-center">{{$item.Quantity}}</td>
        <td class="num-right">{{currency $item.UnitPrice}}</td>
        <td class="num-right item-amount">{{currency $item.Amount}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>

  <div class="totals-wrap">
    <div class="totals">
      <div class="totals-row"><span class="muted">Subtotal</span><span>{{currency .Order.Subtotal}}</span></div>
      <div class="totals-row"><span class="muted">CGST (9%)</span><span>{{currency .TaxHalf}}</span></div>
      <div class="totals-row"><span class="muted">SGST (9%)</span><span>{{currency .TaxHalf}}</span></div>
      <div class="totals-row"><span class="muted">Shipping</span><span>{{if .FreeShipping}}FREE{{else}}{{currency .Order.Shipping}}{{end}}</span></div>
      <div class="totals-row grand-total"><span>Total</span><span>{{currency .Order.Total}}</span></div>
    </div>
  </div>

  <div class="words">
    <p><span class="muted">Amount in words: </span><em>Rupees {{words .Order.Total}} Only</em></p>
  </div>

  <div class="invoice-footer">
    <div class="terms">
      <h4 class="block-title">Terms &amp; Conditions</h4>
      <ul>
        <li>7-day return policy for unused items</li>
        <li>All products are 100% authentic</li>
        <li>Subject to Mumbai jurisdiction</li>
      </ul>
    </div>
    <div class="signature">
      <p class="muted">For CricketGear</p>
      <div class="signature-line"><p>Authorized Signatory</p></div>
    </div>
  </div>

  <div class="disclaimer">
    <p>This is a computer-generated invoice and does not require a physical signature.</p>
    <p>Thank you for shopping with CricketGear!</p>
  </div>
</div>
`

type HTMLRenderer struct {
	tpl *template.Template
}

func NewRenderer() Renderer {
	funcs := template.FuncMap{
		"currency": format.Currency,
		"words":    format.AmountInWords,
		"date":     format.LongDate,
		"payment":  format.PaymentMethodLabel,
		"status":   format.StatusLabel,
		"inc":      func(i int) int { return i + 1 },
	}
	return &HTMLRenderer{
		tpl: template.Must(template.New("invoice").Funcs(funcs).Parse(invoiceTemplate)),
	}
}

type templateData struct {
	RenderInput

	// TaxHalf drives the CGST/SGST lines. The split is a display convention
	// over the order's single tax figure, not a tax recomputation.
	TaxHalf      float64
	FreeShipping bool
}

func (r *HTMLRenderer) RenderHTML(input RenderInput) (string, error) {
	data := templateData{
		RenderInput:  input,
		TaxHalf:      input.Order.Tax / 2,
		FreeShipping: input.Order.Shipping == 0,
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
