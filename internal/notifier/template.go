package notifier

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	texttemplate "text/template"
)

// Message is a rendered confirmation email, ready for any sender.
type Message struct {
	To      string
	Subject string
	HTML    string
	Text    string
}

type Renderer struct {
	appURL string
	html   *template.Template
	text   *texttemplate.Template
}

// NewRenderer builds the confirmation templates once. appURL is the public
// storefront base used for the view-order link.
func NewRenderer(appURL string) *Renderer {
	funcs := map[string]interface{}{
		"money": formatMoney,
	}
	return &Renderer{
		appURL: strings.TrimRight(appURL, "/"),
		html:   template.Must(template.New("confirmation").Funcs(funcs).Parse(confirmationHTML)),
		text:   texttemplate.Must(texttemplate.New("confirmation").Funcs(funcs).Parse(confirmationText)),
	}
}

type lineView struct {
	Name     string
	Quantity int
	Total    float64
}

type emailView struct {
	EmailPayload
	OrderRef string
	Lines    []lineView
	OrderURL string
}

// Render produces both bodies from a normalized payload. All user-supplied
// text passes through html/template, so markup in names or addresses comes
// out escaped, not executed.
func (r *Renderer) Render(p EmailPayload) (Message, error) {
	view := emailView{
		EmailPayload: p,
		OrderRef:     p.OrderID,
		OrderURL:     fmt.Sprintf("%s/orders/%s", r.appURL, p.OrderID),
	}
	if view.OrderRef == "" {
		view.OrderRef = "N/A"
	}
	for _, item := range p.Items {
		view.Lines = append(view.Lines, lineView{
			Name:     fmt.Sprintf("%s x%d", item.Name, item.Quantity),
			Quantity: item.Quantity,
			Total:    item.Price * float64(item.Quantity),
		})
	}

	var htmlBuf bytes.Buffer
	if err := r.html.Execute(&htmlBuf, view); err != nil {
		return Message{}, fmt.Errorf("render html body: %w", err)
	}

	var textBuf bytes.Buffer
	if err := r.text.Execute(&textBuf, view); err != nil {
		return Message{}, fmt.Errorf("render text body: %w", err)
	}

	return Message{
		To:      p.Customer.Email,
		Subject: fmt.Sprintf("Order Confirmation - Order #%s", view.OrderRef),
		HTML:    htmlBuf.String(),
		Text:    textBuf.String(),
	}, nil
}

func formatMoney(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.2f", v)
}

const confirmationHTML = `<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8" />
  <style>
    body { margin: 0; padding: 0; background: #f5f5f7; font-family: Arial, sans-serif; color: #222; }
    .container { background: #ffffff; max-width: 620px; margin: 0 auto; }
    .header { background: #d87d4a; color: #fff; text-align: center; padding: 40px 30px; }
    .section { padding: 32px; }
    .address-box { background: #fafafa; padding: 16px; font-size: 14px; border: 1px solid #ececec; }
    .items-table { width: 100%; border-collapse: collapse; margin-top: 10px; }
    .items-table th { text-align: left; padding: 8px 4px; font-size: 13px; color: #555; border-bottom: 1px solid #e5e5e5; }
    .items-table td { padding: 10px 4px; font-size: 14px; border-bottom: 1px solid #f1f1f1; }
    .grand-total { font-size: 22px; font-weight: 800; margin-top: 14px; color: #d87d4a; }
    .footer { text-align: center; font-size: 12px; color: #555; padding: 28px; }
  </style>
</head>
<body>
<div class="container">
  <div class="header">
    <h1>Order Confirmed</h1>
    <span>Thanks for your purchase, {{.Customer.Name}}!</span>
  </div>
  <div class="section">
    <h2>Shipping To</h2>
    <div class="address-box">
      {{.Customer.Name}}<br>
      {{.Shipping.Address}}<br>
      {{.Shipping.City}}, {{.Shipping.Country}} {{.Shipping.Zip}}
    </div>
    <h2>Order #{{.OrderRef}}</h2>
    <table class="items-table">
      <thead>
        <tr><th>Item</th><th>Qty</th><th>Price</th></tr>
      </thead>
      <tbody>
        {{range .Lines}}<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>${{money .Total}}</td></tr>
        {{end}}
      </tbody>
    </table>
    <div class="totals">
      <p>Subtotal: ${{money .Totals.Subtotal}}</p>
      <p>Shipping: ${{money .Totals.Shipping}}</p>
      <p>Tax: ${{money .Totals.Taxes}}</p>
      <p class="grand-total">Total: ${{money .Totals.GrandTotal}}</p>
    </div>
    <a href="{{.OrderURL}}">View Order Status</a>
  </div>
  <div class="footer">
    Questions? Contact support@audiophile.com<br>
    You'll receive a shipping update soon.
  </div>
</div>
</body>
</html>
`

const confirmationText = `Hello {{.Customer.Name}}!

Your Order is Confirmed!

Order #{{.OrderRef}}

Shipping Address:
{{.Customer.Name}}
{{.Shipping.Address}}
{{.Shipping.City}}, {{.Shipping.Country}} {{.Shipping.Zip}}

Items:
{{range .Lines}}{{.Name}} - ${{money .Total}}
{{end}}
Payment Summary:
Subtotal: ${{money .Totals.Subtotal}}
Shipping: ${{money .Totals.Shipping}}
Tax: ${{money .Totals.Taxes}}
Grand Total: ${{money .Totals.GrandTotal}}

View Your Order: {{.OrderURL}}

You'll receive another email when your order ships!
`
