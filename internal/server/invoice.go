package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	invoicedomain "github.com/namaaror/invoice-manage/internal/invoice/domain"
)

type invoiceItemRequest struct {
	Product     string   `json:"product"`
	Description string   `json:"description"`
	Quantity    float64  `json:"quantity"`
	Rate        *float64 `json:"rate"`
}

type invoiceRequest struct {
	Customer string               `json:"customer"`
	Items    []invoiceItemRequest `json:"items"`
	Date     string               `json:"date"`
	Status   string               `json:"status"`
}

type invoiceStatusRequest struct {
	Status string `json:"status"`
}

func (r invoiceRequest) items() []invoicedomain.ItemInput {
	items := make([]invoicedomain.ItemInput, 0, len(r.Items))
	for _, item := range r.Items {
		items = append(items, invoicedomain.ItemInput{
			Product:     item.Product,
			Description: item.Description,
			Quantity:    item.Quantity,
			Rate:        item.Rate,
		})
	}
	return items
}

// @Summary      Create Invoice
// @Description  Create a new invoice; item amounts and the total are derived server-side
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        request body invoiceRequest true "Create Invoice Request"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices [post]
func (s *Server) CreateInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Create(c.Request.Context(), invoicedomain.CreateRequest{
		Customer: strings.TrimSpace(req.Customer),
		Items:    req.items(),
		Date:     strings.TrimSpace(req.Date),
		Status:   invoicedomain.Status(strings.TrimSpace(req.Status)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      List Invoices
// @Description  List invoices with search and pagination
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        q     query     string  false  "Search"
// @Param        page  query     int     false  "Page"
// @Success      200  {object}  invoicedomain.ListResponse
// @Router       /invoices [get]
func (s *Server) ListInvoices(c *gin.Context) {
	var query invoicedomain.ListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.List(c.Request.Context(), query)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Get Invoice
// @Description  Get invoice by ID
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices/{id} [get]
func (s *Server) GetInvoiceByID(c *gin.Context) {
	resp, err := s.invoiceSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Invoice
// @Description  Replace invoice fields; amounts and the total are rederived
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id       path      string          true  "Invoice ID"
// @Param        request  body      invoiceRequest  true  "Update Invoice Request"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices/{id} [put]
func (s *Server) UpdateInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.Update(c.Request.Context(), invoicedomain.UpdateRequest{
		ID:       strings.TrimSpace(c.Param("id")),
		Customer: strings.TrimSpace(req.Customer),
		Items:    req.items(),
		Date:     strings.TrimSpace(req.Date),
		Status:   invoicedomain.Status(strings.TrimSpace(req.Status)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Update Invoice Status
// @Description  Set an invoice's delivery status
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id       path      string                true  "Invoice ID"
// @Param        request  body      invoiceStatusRequest  true  "Status Request"
// @Success      200  {object}  invoicedomain.Invoice
// @Router       /invoices/{id}/status [patch]
func (s *Server) UpdateInvoiceStatus(c *gin.Context) {
	var req invoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.invoiceSvc.UpdateStatus(c.Request.Context(), invoicedomain.UpdateStatusRequest{
		ID:     strings.TrimSpace(c.Param("id")),
		Status: invoicedomain.Status(strings.TrimSpace(req.Status)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

// @Summary      Delete Invoice
// @Description  Delete invoice by ID; unknown ids are ignored
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Invoice ID"
// @Success      200  {object}  map[string]string
// @Router       /invoices/{id} [delete]
func (s *Server) DeleteInvoice(c *gin.Context) {
	if err := s.invoiceSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
