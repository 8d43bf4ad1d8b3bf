package notification

import (
	"html/template"
	"strings"
	"time"

	"github.com/MuhamadAgungGumelar/storefront-be/internal/modules/store/models"
	"github.com/shopspring/decimal"
)

type templateView struct {
	Data
	StoreName string
	StoreURL  string
	TrackURL  string
	Subject   string
}

var templates = template.Must(template.New("notification").Funcs(template.FuncMap{
	"money": formatMoney,
	"label": func(s models.Status) string { return s.Label() },
	"date":  func(t time.Time) string { return t.Format("2 Jan 2006, 15:04") },
}).Parse(layout + bodies))

const layout = `
{{define "header"}}<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #8B5E3C; color: white; padding: 20px; text-align: center; border-radius: 5px 5px 0 0; }
        .content { padding: 20px; background: #fdf8f3; border: 1px solid #e8dccf; border-top: none; }
        table.items { width: 100%; border-collapse: collapse; margin: 15px 0; }
        table.items td { padding: 8px; border-bottom: 1px solid #e8dccf; }
        .total { font-weight: bold; text-align: right; }
        .button { display: inline-block; padding: 10px 18px; background: #8B5E3C; color: white; text-decoration: none; border-radius: 4px; }
        .footer { padding: 15px; text-align: center; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h2>{{.Subject}}</h2></div>
        <div class="content">{{end}}

{{define "footer"}}
        </div>
        <div class="footer"><p>{{.StoreName}}</p></div>
    </div>
</body>
</html>{{end}}

{{define "items"}}
            <table class="items">
                {{range .Order.Items}}<tr><td>{{.Name}} x {{.Quantity}}</td><td class="total">{{money .LineTotal}}</td></tr>
                {{end}}{{if .Order.VoucherCode}}<tr><td>Voucher {{.Order.VoucherCode}}</td><td class="total">-{{money .Order.DiscountAmount}}</td></tr>
                {{end}}<tr><td>Total</td><td class="total">{{money .Order.Total}}</td></tr>
            </table>{{end}}

{{define "address"}}
            <p>{{.Order.Address}}{{if .Order.Landmark}} ({{.Order.Landmark}}){{end}}<br>{{.Order.City}}, {{.Order.State}}</p>{{end}}
`

const bodies = `
{{define "order-confirmed"}}{{template "header" .}}
            <p>Hi {{.Order.CustomerName}},</p>
            <p>We have received your payment and your order is confirmed. Your tracking code is <strong>{{.Order.TrackingCode}}</strong>.</p>
            {{template "items" .}}
            <p>We will deliver to:</p>
            {{template "address" .}}
            <p><a class="button" href="{{.TrackURL}}">Track your order</a></p>
{{template "footer" .}}{{end}}

{{define "status-changed"}}{{template "header" .}}
            <p>Hi {{.Order.CustomerName}},</p>
            <p>Your order <strong>{{.Order.TrackingCode}}</strong> has moved{{if .PreviousStatus}} from {{label .PreviousStatus}}{{end}} to <strong>{{label .Order.Status}}</strong>.</p>
            {{if .Note}}<p>{{.Note}}</p>{{end}}
            <p><a class="button" href="{{.TrackURL}}">Track your order</a></p>
{{template "footer" .}}{{end}}

{{define "promo-followup"}}{{template "header" .}}
            <p>Hi {{.Order.CustomerName}},</p>
            <p>We hope you are enjoying your purchase. Every piece we sell is made by hand, and we would love to see you again.</p>
            <p><a class="button" href="{{.StoreURL}}">Visit the store</a></p>
{{template "footer" .}}{{end}}

{{define "new-order-alert"}}{{template "header" .}}
            <p>A new order has been paid.</p>
            <p>
                Tracking code: <strong>{{.Order.TrackingCode}}</strong><br>
                Customer: {{.Order.CustomerName}} ({{.Order.Phone}}{{if .Order.Email}}, {{.Order.Email}}{{end}})<br>
                Placed: {{date .Order.CreatedAt}}
            </p>
            {{template "items" .}}
            {{template "address" .}}
{{template "footer" .}}{{end}}

{{define "receipt"}}{{template "header" .}}
            <p>Hi {{.Order.CustomerName}},</p>
            <p>Here is the receipt for order <strong>{{.Order.TrackingCode}}</strong>, placed on {{date .Order.CreatedAt}}.</p>
            {{template "items" .}}
            <p>Status: {{label .Order.Status}}</p>
{{template "footer" .}}{{end}}
`

// formatMoney renders an amount as naira with thousands separators
func formatMoney(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	intPart, frac, _ := strings.Cut(s, ".")
	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := "₦" + b.String() + "." + frac
	if neg {
		out = "-" + out
	}
	return out
}
