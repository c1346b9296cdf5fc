// Package render produces the standalone printable invoice document served
// next to the invoice pages.
package render

// CustomerView carries the customer details printed in the header. Invoices
// reference customers by name, so a deleted customer leaves only the name.
type CustomerView struct {
	Name  string
	Email string
	Phone string
}

// ItemView is one printed line item.
type ItemView struct {
	Product     string
	Description string
	Quantity    float64
	Rate        float64
	Amount      float64
}

// InvoiceView is the deterministic input used for invoice rendering.
type InvoiceView struct {
	ID          string
	Customer    CustomerView
	Date        string
	Status      string
	Items       []ItemView
	TotalAmount float64
}

type Renderer interface {
	RenderHTML(view InvoiceView) (string, error)
}
