package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Invoice {{.ID}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 32px;
      font-family: "Helvetica Neue", Arial, sans-serif;
      color: #111827;
      background: #ffffff;
    }
    .invoice {
      max-width: 820px;
      margin: 0 auto;
    }
    .header {
      display: flex;
      justify-content: space-between;
      align-items: flex-start;
      border-bottom: 2px solid #111827;
      padding-bottom: 16px;
      margin-bottom: 24px;
    }
    .meta {
      text-align: right;
      font-size: 14px;
    }
    .label {
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.04em;
      font-size: 11px;
    }
    .status { text-transform: capitalize; }
    table {
      width: 100%;
      border-collapse: collapse;
      font-size: 14px;
    }
    th, td {
      padding: 10px;
      border-bottom: 1px solid #e5e7eb;
      text-align: left;
    }
    th {
      text-transform: uppercase;
      font-size: 11px;
      letter-spacing: 0.04em;
      color: #6b7280;
    }
    .totals {
      margin-top: 12px;
      display: flex;
      justify-content: flex-end;
      font-size: 16px;
    }
    .totals strong { margin-left: 12px; }
  </style>
</head>
<body>
  <div class="invoice">
    <div class="header">
      <div>
        <div class="label">Billed To</div>
        <div><strong>{{.Customer.Name}}</strong></div>
        {{if .Customer.Email}}<div>{{.Customer.Email}}</div>{{end}}
        {{if .Customer.Phone}}<div>{{.Customer.Phone}}</div>{{end}}
      </div>
      <div class="meta">
        <div class="label">Invoice</div>
        <div><strong>{{.ID}}</strong></div>
        <div class="status">Status: {{.Status}}</div>
        <div>Date: {{.Date}}</div>
      </div>
    </div>

    <table>
      <thead>
        <tr>
          <th>Product</th>
          <th>Description</th>
          <th>Quantity</th>
          <th>Rate</th>
          <th>Amount</th>
        </tr>
      </thead>
      <tbody>
        {{range .Items}}
        <tr>
          <td>{{.Product}}</td>
          <td>{{.Description}}</td>
          <td>{{formatQuantity .Quantity}}</td>
          <td>{{formatMoney .Rate}}</td>
          <td>{{formatMoney .Amount}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
    <div class="totals">
      <span>Total</span>
      <strong>{{formatMoney .TotalAmount}}</strong>
    </div>
  </div>
</body>
</html>
`

type HTMLRenderer struct {
	tpl *template.Template
}

func NewRenderer() Renderer {
	funcs := template.FuncMap{
		"formatMoney":    formatMoney,
		"formatQuantity": formatQuantity,
	}
	return &HTMLRenderer{
		tpl: template.Must(template.New("invoice").Funcs(funcs).Parse(invoiceHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderHTML(view InvoiceView) (string, error) {
	if view.Customer.Name == "" {
		view.Customer.Name = "Customer"
	}
	if view.Date == "" {
		view.Date = "-"
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

func formatQuantity(value float64) string {
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", value), "0"), ".")
}
