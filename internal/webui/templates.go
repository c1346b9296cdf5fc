package webui

import (
	"fmt"
	"html/template"
)

const layoutHTML = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>{{block "title" .}}Invoice Manager{{end}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      font-family: "Helvetica Neue", Arial, sans-serif;
      color: #111827;
      background: #f9fafb;
    }
    nav {
      display: flex;
      gap: 24px;
      align-items: center;
      padding: 14px 32px;
      background: #111827;
    }
    nav .brand { color: #ffffff; font-weight: 600; margin-right: 16px; }
    nav a { color: #d1d5db; text-decoration: none; font-size: 14px; }
    nav a:hover { color: #ffffff; }
    main { max-width: 960px; margin: 24px auto; padding: 0 16px; }
    .toolbar { display: flex; justify-content: space-between; margin-bottom: 16px; }
    .toolbar input[type=text] { padding: 8px; width: 260px; border: 1px solid #d1d5db; border-radius: 4px; }
    table { width: 100%; border-collapse: collapse; background: #ffffff; font-size: 14px; }
    th, td { padding: 10px; border-bottom: 1px solid #e5e7eb; text-align: left; }
    th { text-transform: uppercase; font-size: 11px; letter-spacing: 0.04em; color: #6b7280; }
    .empty { padding: 32px; text-align: center; color: #6b7280; background: #ffffff; }
    .pager { display: flex; gap: 8px; align-items: center; margin-top: 12px; font-size: 14px; }
    .pager span.disabled { color: #9ca3af; }
    .actions form { display: inline; }
    button, .button {
      padding: 6px 12px; border: 1px solid #d1d5db; border-radius: 4px;
      background: #ffffff; cursor: pointer; font-size: 13px; text-decoration: none; color: #111827;
    }
    button.primary { background: #111827; color: #ffffff; border-color: #111827; }
    .drawer {
      position: fixed; top: 0; right: 0; height: 100%; width: 340px;
      background: #ffffff; border-left: 1px solid #e5e7eb; padding: 24px;
      box-shadow: -4px 0 12px rgba(0,0,0,0.08);
    }
    .drawer label { display: block; margin: 12px 0 4px; font-size: 13px; color: #374151; }
    .drawer input, .drawer select { width: 100%; padding: 8px; border: 1px solid #d1d5db; border-radius: 4px; }
    .error { color: #b91c1c; font-size: 13px; margin-top: 8px; }
    .items th, .items td { font-size: 13px; }
    .totals { display: flex; justify-content: flex-end; margin-top: 12px; font-size: 15px; }
    .totals strong { margin-left: 12px; }
    .form-grid { display: grid; grid-template-columns: 1fr 1fr 1fr; gap: 12px; }
    .form-grid label { display: block; font-size: 13px; color: #374151; margin-bottom: 4px; }
    .form-grid input, .form-grid select { width: 100%; padding: 8px; border: 1px solid #d1d5db; border-radius: 4px; }
    .card { background: #ffffff; border: 1px solid #e5e7eb; border-radius: 6px; padding: 24px; }
    .status { text-transform: capitalize; }
  </style>
</head>
<body>
  <nav>
    <span class="brand">Invoice Manager</span>
    <a href="/">Home</a>
    <a href="/invoices">Invoices</a>
    <a href="/customers">Customers</a>
    <a href="/products">Products</a>
  </nav>
  <main>
    {{block "content" .}}{{end}}
  </main>
</body>
</html>`

const homeHTML = `{{define "title"}}Invoice Manager{{end}}
{{define "content"}}
<div class="card">
  <h1>Invoice Manager</h1>
  <p>Track customers, products and the invoices that tie them together.</p>
  <p>
    <a class="button" href="/invoices">Invoices</a>
    <a class="button" href="/customers">Customers</a>
    <a class="button" href="/products">Products</a>
  </p>
</div>
{{end}}`

const customersHTML = `{{define "title"}}Customers{{end}}
{{define "content"}}
<div class="toolbar">
  <form method="get" action="/customers">
    <input type="text" name="q" value="{{.Page.Search}}" placeholder="Search customers..." />
    <button type="submit">Search</button>
  </form>
  <a class="button" href="/customers?new=1">Add customer</a>
</div>

{{if .Page.Empty}}
<div class="empty">No customers found.</div>
{{else}}
<table>
  <thead>
    <tr><th>Name</th><th>Email</th><th>Phone</th><th></th></tr>
  </thead>
  <tbody>
    {{range .Page.Items}}
    <tr>
      <td>{{.Name}}</td>
      <td>{{.Email}}</td>
      <td>{{.Phone}}</td>
      <td class="actions">
        <a class="button" href="/customers?edit={{.ID}}">Edit</a>
        <form method="post" action="/customers/{{.ID}}/delete">
          <button type="submit">Delete</button>
        </form>
      </td>
    </tr>
    {{end}}
  </tbody>
</table>
{{end}}

<div class="pager">
  {{if .Page.HasPrev}}<a class="button" href="{{.PrevURL}}">Previous</a>{{else}}<span class="disabled">Previous</span>{{end}}
  <span>Page {{.Page.Number}} of {{.Page.TotalPages}}</span>
  {{if .Page.HasNext}}<a class="button" href="{{.NextURL}}">Next</a>{{else}}<span class="disabled">Next</span>{{end}}
</div>

{{if .DrawerOpen}}
<div class="drawer">
  <a class="button" href="/customers">Close</a>
  <h2>{{if .Form.ID}}Edit Customer{{else}}Add New Customer{{end}}</h2>
  <form method="post" action="/customers/form">
    <input type="hidden" name="id" value="{{.Form.ID}}" />
    <label>Name</label>
    <input type="text" name="name" value="{{.Form.Name}}" placeholder="Name" />
    <label>Email</label>
    <input type="email" name="email" value="{{.Form.Email}}" placeholder="Email" />
    <label>Phone</label>
    <input type="tel" name="phone" value="{{.Form.Phone}}" placeholder="Phone" />
    {{if .Form.Error}}<p class="error">{{.Form.Error}}</p>{{end}}
    <p><button class="primary" type="submit">Submit</button></p>
  </form>
</div>
{{end}}
{{end}}`

const productsHTML = `{{define "title"}}Products{{end}}
{{define "content"}}
<div class="toolbar">
  <form method="get" action="/products">
    <input type="text" name="q" value="{{.Page.Search}}" placeholder="Search products..." />
    <button type="submit">Search</button>
  </form>
  <a class="button" href="/products?new=1">Add product</a>
</div>

{{if .Page.Empty}}
<div class="empty">No products found.</div>
{{else}}
<table>
  <thead>
    <tr><th>Name</th><th>Rate</th><th></th></tr>
  </thead>
  <tbody>
    {{range .Page.Items}}
    <tr>
      <td>{{.Name}}</td>
      <td>{{amount .Rate}}</td>
      <td class="actions">
        <a class="button" href="/products?edit={{.ID}}">Edit</a>
        <form method="post" action="/products/{{.ID}}/delete">
          <button type="submit">Delete</button>
        </form>
      </td>
    </tr>
    {{end}}
  </tbody>
</table>
{{end}}

<div class="pager">
  {{if .Page.HasPrev}}<a class="button" href="{{.PrevURL}}">Previous</a>{{else}}<span class="disabled">Previous</span>{{end}}
  <span>Page {{.Page.Number}} of {{.Page.TotalPages}}</span>
  {{if .Page.HasNext}}<a class="button" href="{{.NextURL}}">Next</a>{{else}}<span class="disabled">Next</span>{{end}}
</div>

{{if .DrawerOpen}}
<div class="drawer">
  <a class="button" href="/products">Close</a>
  <h2>{{if .Form.ID}}Edit Product{{else}}Add New Product{{end}}</h2>
  <form method="post" action="/products/form">
    <input type="hidden" name="id" value="{{.Form.ID}}" />
    <label>Name</label>
    <input type="text" name="name" value="{{.Form.Name}}" placeholder="Name" />
    <label>Rate</label>
    <input type="number" step="0.01" min="0" name="rate" value="{{.Form.Rate}}" placeholder="Rate" />
    {{if .Form.Error}}<p class="error">{{.Form.Error}}</p>{{end}}
    <p><button class="primary" type="submit">Submit</button></p>
  </form>
</div>
{{end}}
{{end}}`

const invoicesHTML = `{{define "title"}}Invoices{{end}}
{{define "content"}}
<div class="toolbar">
  <form method="get" action="/invoices">
    <input type="text" name="q" value="{{.Page.Search}}" placeholder="Search invoices..." />
    <button type="submit">Search</button>
  </form>
  <a class="button" href="/invoices/new">New invoice</a>
</div>

{{if .Page.Empty}}
<div class="empty">No invoices found.</div>
{{else}}
<table>
  <thead>
    <tr><th>Customer</th><th>Date</th><th>Total</th><th>Status</th><th></th></tr>
  </thead>
  <tbody>
    {{range .Page.Items}}
    <tr>
      <td>{{.Customer}}</td>
      <td>{{.Date}}</td>
      <td>{{amount .TotalAmount}}</td>
      <td>
        <form method="post" action="/invoices/{{.ID}}/status">
          <select name="status" onchange="this.form.submit()" class="status">
            {{$current := .Status}}
            {{range $.Statuses}}
            <option value="{{.}}" {{if eq . $current}}selected{{end}}>{{.}}</option>
            {{end}}
          </select>
        </form>
      </td>
      <td class="actions">
        <a class="button" href="/invoices/{{.ID}}/edit">Edit</a>
        <a class="button" href="/invoices/{{.ID}}/print">Print</a>
        <form method="post" action="/invoices/{{.ID}}/delete">
          <button type="submit">Delete</button>
        </form>
      </td>
    </tr>
    {{end}}
  </tbody>
</table>
{{end}}

<div class="pager">
  {{if .Page.HasPrev}}<a class="button" href="{{.PrevURL}}">Previous</a>{{else}}<span class="disabled">Previous</span>{{end}}
  <span>Page {{.Page.Number}} of {{.Page.TotalPages}}</span>
  {{if .Page.HasNext}}<a class="button" href="{{.NextURL}}">Next</a>{{else}}<span class="disabled">Next</span>{{end}}
</div>
{{end}}`

// The invoice form is a single HTML form: the nested add-customer and
// add-product drawers live inside it as action buttons, so the working
// items state survives every round-trip.
const invoiceFormHTML = `{{define "title"}}{{if .IsEdit}}Edit Invoice{{else}}New Invoice{{end}}{{end}}
{{define "content"}}
<div class="card">
  <h2>{{if .IsEdit}}Edit Invoice{{else}}New Invoice{{end}}</h2>
  <form method="post" action="/invoices/form">
    <input type="hidden" name="id" value="{{.ID}}" />
    <div class="form-grid">
      <div>
        <label>Customer</label>
        <select name="customer">
          <option value="" disabled {{if not .Customer}}selected{{end}}>Select a customer</option>
          {{$customer := .Customer}}
          {{range .Customers}}
          <option value="{{.Name}}" {{if eq .Name $customer}}selected{{end}}>{{.Name}}</option>
          {{end}}
        </select>
        <button type="submit" name="action" value="open_add_customer">Add new +</button>
      </div>
      <div>
        <label>Requested By Date</label>
        <input type="date" name="date" value="{{.Date}}" />
      </div>
      <div>
        <label>Status</label>
        <select name="status">
          {{$status := .Status}}
          {{range .Statuses}}
          <option value="{{.}}" {{if eq . $status}}selected{{end}}>{{.}}</option>
          {{end}}
        </select>
      </div>
    </div>

    <h3>Invoice Items</h3>
    <table class="items">
      <thead>
        <tr><th>Product</th><th>Description</th><th>Quantity</th><th>Rate</th><th>Amount</th><th></th></tr>
      </thead>
      <tbody>
        {{$products := .Products}}
        {{range $i, $item := .Items}}
        <tr>
          <td>
            <select name="item_product">
              <option value="" {{if not $item.Product}}selected{{end}}>Select a product</option>
              {{range $products}}
              <option value="{{.Name}}" {{if eq .Name $item.Product}}selected{{end}}>{{.Name}}</option>
              {{end}}
            </select>
          </td>
          <td><input type="text" name="item_description" value="{{$item.Description}}" /></td>
          <td><input type="number" step="0.01" min="0.01" name="item_quantity" value="{{$item.Quantity}}" /></td>
          <td>{{amount $item.Rate}}</td>
          <td>{{amount $item.Amount}}</td>
          <td><button type="submit" name="action" value="remove_item:{{$i}}">Remove</button></td>
        </tr>
        {{end}}
      </tbody>
    </table>
    <p>
      <button type="submit" name="action" value="add_item">Add item</button>
      <button type="submit" name="action" value="open_add_product">Add new product +</button>
    </p>

    <div class="totals">Total <strong>{{amount .TotalAmount}}</strong></div>
    {{if .Error}}<p class="error">{{.Error}}</p>{{end}}
    <p>
      <button class="primary" type="submit" name="action" value="save">{{if .IsEdit}}Update Invoice{{else}}Create Invoice{{end}}</button>
      <a class="button" href="/invoices">Cancel</a>
    </p>

    {{if eq .NestedDrawer "customer"}}
    <div class="drawer">
      <button type="submit" name="action" value="close_drawer">Close</button>
      <h2>Add New Customer</h2>
      <label>Name</label>
      <input type="text" name="new_customer_name" value="{{.NestedName}}" placeholder="Name" />
      <label>Email</label>
      <input type="email" name="new_customer_email" value="{{.NestedEmail}}" placeholder="Email" />
      <label>Phone</label>
      <input type="tel" name="new_customer_phone" value="{{.NestedPhone}}" placeholder="Phone" />
      {{if .NestedError}}<p class="error">{{.NestedError}}</p>{{end}}
      <p><button class="primary" type="submit" name="action" value="create_customer">Submit</button></p>
    </div>
    {{end}}
    {{if eq .NestedDrawer "product"}}
    <div class="drawer">
      <button type="submit" name="action" value="close_drawer">Close</button>
      <h2>Add New Product</h2>
      <label>Name</label>
      <input type="text" name="new_product_name" value="{{.NestedName}}" placeholder="Name" />
      <label>Rate</label>
      <input type="number" step="0.01" min="0" name="new_product_rate" value="{{.NestedRate}}" placeholder="Rate" />
      {{if .NestedError}}<p class="error">{{.NestedError}}</p>{{end}}
      <p><button class="primary" type="submit" name="action" value="create_product">Submit</button></p>
    </div>
    {{end}}
  </form>
</div>
{{end}}`

var funcMap = template.FuncMap{
	"amount": func(v float64) string { return fmt.Sprintf("%.2f", v) },
}

func mustPage(page string) *template.Template {
	t := template.Must(template.New("layout").Funcs(funcMap).Parse(layoutHTML))
	return template.Must(t.Parse(page))
}

var pageTemplates = map[string]*template.Template{
	"home":        mustPage(homeHTML),
	"customers":   mustPage(customersHTML),
	"products":    mustPage(productsHTML),
	"invoices":    mustPage(invoicesHTML),
	"invoiceForm": mustPage(invoiceFormHTML),
}
