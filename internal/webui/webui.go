// Package webui serves the server-rendered pages: the entity tables with
// search and pagination, the customer and product form drawers, and the
// invoice form with its nested add-customer and add-product drawers.
package webui

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	customerdomain "github.com/namaaror/invoice-manage/internal/customer/domain"
	"github.com/namaaror/invoice-manage/internal/entitystore"
	invoicedomain "github.com/namaaror/invoice-manage/internal/invoice/domain"
	"github.com/namaaror/invoice-manage/internal/invoice/render"
	"github.com/namaaror/invoice-manage/internal/listview"
	productdomain "github.com/namaaror/invoice-manage/internal/product/domain"
)

// Module registers the page routes on the shared gin engine.
var Module = fx.Module("webui",
	fx.Provide(render.NewRenderer),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes),
)

type HandlerParam struct {
	fx.In

	Log         *zap.Logger
	CustomerSvc customerdomain.Service
	ProductSvc  productdomain.Service
	InvoiceSvc  invoicedomain.Service
	Renderer    render.Renderer
}

// Handler renders the pages and accepts their form submissions.
type Handler struct {
	log         *zap.Logger
	customerSvc customerdomain.Service
	productSvc  productdomain.Service
	invoiceSvc  invoicedomain.Service
	renderer    render.Renderer
}

func NewHandler(p HandlerParam) *Handler {
	return &Handler{
		log:         p.Log.Named("webui"),
		customerSvc: p.CustomerSvc,
		productSvc:  p.ProductSvc,
		invoiceSvc:  p.InvoiceSvc,
		renderer:    p.Renderer,
	}
}

func RegisterRoutes(engine *gin.Engine, h *Handler) {
	engine.GET("/", h.HomePage)

	engine.GET("/customers", h.CustomersPage)
	engine.POST("/customers/form", h.SubmitCustomerForm)
	engine.POST("/customers/:id/delete", h.DeleteCustomer)

	engine.GET("/products", h.ProductsPage)
	engine.POST("/products/form", h.SubmitProductForm)
	engine.POST("/products/:id/delete", h.DeleteProduct)

	engine.GET("/invoices", h.InvoicesPage)
	engine.GET("/invoices/new", h.NewInvoicePage)
	engine.GET("/invoices/:id/edit", h.EditInvoicePage)
	engine.GET("/invoices/:id/print", h.PrintInvoicePage)
	engine.POST("/invoices/form", h.SubmitInvoiceForm)
	engine.POST("/invoices/:id/status", h.UpdateInvoiceStatus)
	engine.POST("/invoices/:id/delete", h.DeleteInvoice)
}

func (h *Handler) render(c *gin.Context, page string, data any) {
	tmpl, ok := pageTemplates[page]
	if !ok {
		c.String(http.StatusInternalServerError, "unknown page")
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := tmpl.ExecuteTemplate(c.Writer, "layout", data); err != nil {
		h.log.Error("render page", zap.String("page", page), zap.Error(err))
	}
}

// listURL rebuilds a list page URL, omitting default query parameters.
func listURL(path, search string, page int) string {
	v := url.Values{}
	if strings.TrimSpace(search) != "" {
		v.Set("q", search)
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	if len(v) == 0 {
		return path
	}
	return path + "?" + v.Encode()
}

func (h *Handler) HomePage(c *gin.Context) {
	h.render(c, "home", nil)
}

// --- customers ---

type customerFormData struct {
	ID    string
	Name  string
	Email string
	Phone string
	Error string
}

type customersPageData struct {
	Page       listview.Page[customerdomain.Customer]
	Form       customerFormData
	DrawerOpen bool
	PrevURL    string
	NextURL    string
}

func (h *Handler) customersPageData(ctx context.Context, req customerdomain.ListRequest) customersPageData {
	page := customerdomain.PageOf(h.customerSvc.All(ctx), req)
	return customersPageData{
		Page:    page,
		PrevURL: listURL("/customers", page.Search, page.Number-1),
		NextURL: listURL("/customers", page.Search, page.Number+1),
	}
}

func (h *Handler) CustomersPage(c *gin.Context) {
	ctx := c.Request.Context()
	var req customerdomain.ListRequest
	_ = c.ShouldBindQuery(&req)

	if editID := c.Query("edit"); editID != "" {
		h.customerSvc.Select(editID)
	} else {
		h.customerSvc.ClearSelection()
	}

	data := h.customersPageData(ctx, req)
	if cust, ok := h.customerSvc.Selection().Entity(); ok {
		data.DrawerOpen = true
		data.Form = customerFormData{ID: cust.ID, Name: cust.Name, Email: cust.Email, Phone: cust.Phone}
	} else if c.Query("new") != "" {
		data.DrawerOpen = true
	}
	h.render(c, "customers", data)
}

func (h *Handler) SubmitCustomerForm(c *gin.Context) {
	ctx := c.Request.Context()
	form := customerFormData{
		ID:    strings.TrimSpace(c.PostForm("id")),
		Name:  strings.TrimSpace(c.PostForm("name")),
		Email: strings.TrimSpace(c.PostForm("email")),
		Phone: strings.TrimSpace(c.PostForm("phone")),
	}

	var err error
	if form.ID == "" {
		_, err = h.customerSvc.Create(ctx, customerdomain.CreateRequest{
			Name: form.Name, Email: form.Email, Phone: form.Phone,
		})
	} else {
		_, err = h.customerSvc.Update(ctx, customerdomain.UpdateRequest{
			ID: form.ID, Name: form.Name, Email: form.Email, Phone: form.Phone,
		})
	}
	if err != nil {
		form.Error = errorMessage(err)
		data := h.customersPageData(ctx, customerdomain.ListRequest{})
		data.DrawerOpen = true
		data.Form = form
		h.render(c, "customers", data)
		return
	}

	h.customerSvc.ClearSelection()
	c.Redirect(http.StatusSeeOther, "/customers")
}

func (h *Handler) DeleteCustomer(c *gin.Context) {
	if err := h.customerSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.log.Warn("delete customer", zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/customers")
}

// --- products ---

type productFormData struct {
	ID    string
	Name  string
	Rate  string
	Error string
}

type productsPageData struct {
	Page       listview.Page[productdomain.Product]
	Form       productFormData
	DrawerOpen bool
	PrevURL    string
	NextURL    string
}

func (h *Handler) productsPageData(ctx context.Context, req productdomain.ListRequest) productsPageData {
	page := productdomain.PageOf(h.productSvc.All(ctx), req)
	return productsPageData{
		Page:    page,
		PrevURL: listURL("/products", page.Search, page.Number-1),
		NextURL: listURL("/products", page.Search, page.Number+1),
	}
}

func (h *Handler) ProductsPage(c *gin.Context) {
	ctx := c.Request.Context()
	var req productdomain.ListRequest
	_ = c.ShouldBindQuery(&req)

	if editID := c.Query("edit"); editID != "" {
		h.productSvc.Select(editID)
	} else {
		h.productSvc.ClearSelection()
	}

	data := h.productsPageData(ctx, req)
	if prod, ok := h.productSvc.Selection().Entity(); ok {
		data.DrawerOpen = true
		data.Form = productFormData{ID: prod.ID, Name: prod.Name, Rate: strconv.FormatFloat(prod.Rate, 'f', -1, 64)}
	} else if c.Query("new") != "" {
		data.DrawerOpen = true
	}
	h.render(c, "products", data)
}

func (h *Handler) SubmitProductForm(c *gin.Context) {
	ctx := c.Request.Context()
	form := productFormData{
		ID:   strings.TrimSpace(c.PostForm("id")),
		Name: strings.TrimSpace(c.PostForm("name")),
		Rate: strings.TrimSpace(c.PostForm("rate")),
	}

	rate, err := strconv.ParseFloat(form.Rate, 64)
	if form.Rate == "" || err != nil {
		err = productdomain.ErrInvalidRate
	} else if form.ID == "" {
		_, err = h.productSvc.Create(ctx, productdomain.CreateRequest{Name: form.Name, Rate: rate})
	} else {
		_, err = h.productSvc.Update(ctx, productdomain.UpdateRequest{ID: form.ID, Name: form.Name, Rate: rate})
	}
	if err != nil {
		form.Error = errorMessage(err)
		data := h.productsPageData(ctx, productdomain.ListRequest{})
		data.DrawerOpen = true
		data.Form = form
		h.render(c, "products", data)
		return
	}

	h.productSvc.ClearSelection()
	c.Redirect(http.StatusSeeOther, "/products")
}

func (h *Handler) DeleteProduct(c *gin.Context) {
	if err := h.productSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.log.Warn("delete product", zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/products")
}

// --- invoices ---

type invoicesPageData struct {
	Page     listview.Page[invoicedomain.Invoice]
	Statuses []invoicedomain.Status
	PrevURL  string
	NextURL  string
}

func (h *Handler) InvoicesPage(c *gin.Context) {
	ctx := c.Request.Context()
	var req invoicedomain.ListRequest
	_ = c.ShouldBindQuery(&req)
	h.invoiceSvc.ClearSelection()

	page := invoicedomain.PageOf(h.invoiceSvc.All(ctx), req)
	h.render(c, "invoices", invoicesPageData{
		Page:     page,
		Statuses: invoicedomain.Statuses(),
		PrevURL:  listURL("/invoices", page.Search, page.Number-1),
		NextURL:  listURL("/invoices", page.Search, page.Number+1),
	})
}

type invoiceItemForm struct {
	Product     string
	Description string
	Quantity    float64
	Rate        float64
	Amount      float64
}

type invoiceFormData struct {
	ID          string
	IsEdit      bool
	Customer    string
	Date        string
	Status      invoicedomain.Status
	Items       []invoiceItemForm
	TotalAmount float64
	Customers   []customerdomain.Customer
	Products    []productdomain.Product
	Statuses    []invoicedomain.Status
	Error       string

	NestedDrawer string
	NestedError  string
	NestedName   string
	NestedEmail  string
	NestedPhone  string
	NestedRate   string
}

func (h *Handler) invoiceFormChoices(ctx context.Context, data *invoiceFormData) {
	data.Customers = h.customerSvc.All(ctx)
	data.Products = h.productSvc.All(ctx)
	data.Statuses = invoicedomain.Statuses()
}

// refreshItems re-derives each row's rate from the named product and every
// amount from quantity times rate, matching what a save would persist.
func (h *Handler) refreshItems(ctx context.Context, data *invoiceFormData) {
	total := 0.0
	for i := range data.Items {
		item := &data.Items[i]
		item.Rate = 0
		if item.Product != "" {
			if prod, err := h.productSvc.GetByName(ctx, item.Product); err == nil {
				item.Rate = prod.Rate
			}
		}
		item.Amount = item.Quantity * item.Rate
		total += item.Amount
	}
	data.TotalAmount = total
}

func (h *Handler) NewInvoicePage(c *gin.Context) {
	ctx := c.Request.Context()
	h.invoiceSvc.ClearSelection()

	data := invoiceFormData{Status: invoicedomain.StatusPending}
	h.invoiceFormChoices(ctx, &data)
	h.render(c, "invoiceForm", data)
}

func (h *Handler) EditInvoicePage(c *gin.Context) {
	ctx := c.Request.Context()
	h.invoiceSvc.Select(c.Param("id"))

	sel := h.invoiceSvc.Selection()
	inv, ok := sel.Entity()
	if !ok || sel.Mode() != entitystore.Editing {
		c.Redirect(http.StatusSeeOther, "/invoices")
		return
	}

	data := invoiceFormData{
		ID:          inv.ID,
		IsEdit:      true,
		Customer:    inv.Customer,
		Date:        inv.Date,
		Status:      inv.Status,
		TotalAmount: inv.TotalAmount,
	}
	for _, item := range inv.Items {
		data.Items = append(data.Items, invoiceItemForm(item))
	}
	h.invoiceFormChoices(ctx, &data)
	h.render(c, "invoiceForm", data)
}

// parseInvoiceForm rebuilds the form's working state from the posted fields.
func parseInvoiceForm(c *gin.Context) invoiceFormData {
	data := invoiceFormData{
		ID:       strings.TrimSpace(c.PostForm("id")),
		Customer: strings.TrimSpace(c.PostForm("customer")),
		Date:     strings.TrimSpace(c.PostForm("date")),
		Status:   invoicedomain.Status(strings.TrimSpace(c.PostForm("status"))),

		NestedName:  strings.TrimSpace(c.PostForm("new_customer_name")),
		NestedEmail: strings.TrimSpace(c.PostForm("new_customer_email")),
		NestedPhone: strings.TrimSpace(c.PostForm("new_customer_phone")),
	}
	data.IsEdit = data.ID != ""
	if data.Status == "" {
		data.Status = invoicedomain.StatusPending
	}

	products := c.PostFormArray("item_product")
	descriptions := c.PostFormArray("item_description")
	quantities := c.PostFormArray("item_quantity")
	for i := range products {
		item := invoiceItemForm{Product: products[i]}
		if i < len(descriptions) {
			item.Description = descriptions[i]
		}
		if i < len(quantities) {
			item.Quantity, _ = strconv.ParseFloat(quantities[i], 64)
		}
		data.Items = append(data.Items, item)
	}
	return data
}

func (data *invoiceFormData) itemInputs() []invoicedomain.ItemInput {
	items := make([]invoicedomain.ItemInput, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, invoicedomain.ItemInput{
			Product:     item.Product,
			Description: item.Description,
			Quantity:    item.Quantity,
		})
	}
	return items
}

func (h *Handler) SubmitInvoiceForm(c *gin.Context) {
	ctx := c.Request.Context()
	data := parseInvoiceForm(c)
	action := c.PostForm("action")

	switch {
	case action == "add_item":
		data.Items = append(data.Items, invoiceItemForm{Quantity: 1})

	case strings.HasPrefix(action, "remove_item:"):
		if i, err := strconv.Atoi(strings.TrimPrefix(action, "remove_item:")); err == nil && i >= 0 && i < len(data.Items) {
			data.Items = append(data.Items[:i], data.Items[i+1:]...)
		}

	case action == "open_add_customer":
		data.NestedDrawer = "customer"

	case action == "open_add_product":
		data.NestedDrawer = "product"

	case action == "close_drawer":
		data.NestedDrawer = ""

	case action == "create_customer":
		cust, err := h.customerSvc.Create(ctx, customerdomain.CreateRequest{
			Name:  data.NestedName,
			Email: data.NestedEmail,
			Phone: data.NestedPhone,
		})
		if err != nil {
			data.NestedDrawer = "customer"
			data.NestedError = errorMessage(err)
			break
		}
		data.Customer = cust.Name
		data.NestedName, data.NestedEmail, data.NestedPhone = "", "", ""

	case action == "create_product":
		data.NestedName = strings.TrimSpace(c.PostForm("new_product_name"))
		data.NestedRate = strings.TrimSpace(c.PostForm("new_product_rate"))
		rate, parseErr := strconv.ParseFloat(data.NestedRate, 64)
		if data.NestedRate == "" || parseErr != nil {
			data.NestedDrawer = "product"
			data.NestedError = errorMessage(productdomain.ErrInvalidRate)
			break
		}
		prod, err := h.productSvc.Create(ctx, productdomain.CreateRequest{Name: data.NestedName, Rate: rate})
		if err != nil {
			data.NestedDrawer = "product"
			data.NestedError = errorMessage(err)
			break
		}
		// Adopt the new product in the first row still missing one.
		adopted := false
		for i := range data.Items {
			if data.Items[i].Product == "" {
				data.Items[i].Product = prod.Name
				adopted = true
				break
			}
		}
		if !adopted {
			data.Items = append(data.Items, invoiceItemForm{Product: prod.Name, Quantity: 1})
		}
		data.NestedName, data.NestedRate = "", ""

	default: // save
		var err error
		if data.IsEdit {
			_, err = h.invoiceSvc.Update(ctx, invoicedomain.UpdateRequest{
				ID:       data.ID,
				Customer: data.Customer,
				Items:    data.itemInputs(),
				Date:     data.Date,
				Status:   data.Status,
			})
		} else {
			_, err = h.invoiceSvc.Create(ctx, invoicedomain.CreateRequest{
				Customer: data.Customer,
				Items:    data.itemInputs(),
				Date:     data.Date,
				Status:   data.Status,
			})
		}
		if err == nil {
			h.invoiceSvc.ClearSelection()
			c.Redirect(http.StatusSeeOther, "/invoices")
			return
		}
		data.Error = errorMessage(err)
	}

	h.refreshItems(ctx, &data)
	h.invoiceFormChoices(ctx, &data)
	h.render(c, "invoiceForm", data)
}

// PrintInvoicePage serves the standalone printable invoice document. The
// customer details come from the current customer list; a deleted customer
// prints with just the denormalized name.
func (h *Handler) PrintInvoicePage(c *gin.Context) {
	ctx := c.Request.Context()
	inv, err := h.invoiceSvc.GetByID(ctx, c.Param("id"))
	if err != nil {
		c.Redirect(http.StatusSeeOther, "/invoices")
		return
	}

	view := render.InvoiceView{
		ID:          inv.ID,
		Customer:    render.CustomerView{Name: inv.Customer},
		Date:        inv.Date,
		Status:      string(inv.Status),
		TotalAmount: inv.TotalAmount,
	}
	for _, cust := range h.customerSvc.All(ctx) {
		if cust.Name == inv.Customer {
			view.Customer.Email = cust.Email
			view.Customer.Phone = cust.Phone
			break
		}
	}
	for _, item := range inv.Items {
		view.Items = append(view.Items, render.ItemView(item))
	}

	html, err := h.renderer.RenderHTML(view)
	if err != nil {
		h.log.Error("render invoice document", zap.String("invoice_id", inv.ID), zap.Error(err))
		c.String(http.StatusInternalServerError, "render failed")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

func (h *Handler) UpdateInvoiceStatus(c *gin.Context) {
	_, err := h.invoiceSvc.UpdateStatus(c.Request.Context(), invoicedomain.UpdateStatusRequest{
		ID:     c.Param("id"),
		Status: invoicedomain.Status(strings.TrimSpace(c.PostForm("status"))),
	})
	if err != nil {
		h.log.Warn("update invoice status", zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/invoices")
}

func (h *Handler) DeleteInvoice(c *gin.Context) {
	if err := h.invoiceSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.log.Warn("delete invoice", zap.Error(err))
	}
	c.Redirect(http.StatusSeeOther, "/invoices")
}

// errorMessage translates domain errors into the inline messages the forms
// display next to their fields.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, customerdomain.ErrInvalidName), errors.Is(err, productdomain.ErrInvalidName):
		return "Name is required."
	case errors.Is(err, customerdomain.ErrInvalidEmail):
		return "Enter a valid email address."
	case errors.Is(err, customerdomain.ErrInvalidPhone):
		return "Enter a valid phone number."
	case errors.Is(err, productdomain.ErrInvalidRate):
		return "Rate must be a non-negative number."
	case errors.Is(err, invoicedomain.ErrInvalidCustomer):
		return "Select a customer."
	case errors.Is(err, invoicedomain.ErrNoItems):
		return "Add at least one item."
	case errors.Is(err, invoicedomain.ErrInvalidProduct):
		return "Every item needs a product."
	case errors.Is(err, invoicedomain.ErrInvalidQuantity):
		return "Quantities must be greater than zero."
	case errors.Is(err, invoicedomain.ErrUnknownProduct):
		return "One of the items references a product that no longer exists."
	case errors.Is(err, invoicedomain.ErrInvalidDate):
		return "Enter the date as yyyy-mm-dd."
	case errors.Is(err, invoicedomain.ErrInvalidStatus):
		return "Pick a valid status."
	case errors.Is(err, customerdomain.ErrNotFound),
		errors.Is(err, productdomain.ErrNotFound),
		errors.Is(err, invoicedomain.ErrNotFound),
		errors.Is(err, entitystore.ErrNotFound):
		return "That record no longer exists."
	default:
		return "Something went wrong. Please try again."
	}
}
