package domain

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/namaaror/invoice-manage/internal/entitystore"
	"github.com/namaaror/invoice-manage/internal/listview"
)

// StorageKey is the blob key customer records persist under.
const StorageKey = "customers"

// Customer is one customer record. Invoices reference customers by name,
// not by id, so deleting a customer never touches existing invoices.
type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// SearchFields lists the text fields the list view's search matches on.
func (c Customer) SearchFields() []string {
	return []string{c.Name, c.Email, c.Phone}
}

type CreateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type UpdateRequest struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

type ListRequest struct {
	Query string `form:"q"`
	Page  int    `form:"page"`
}

type ListResponse struct {
	Customers  []Customer `json:"customers"`
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
	Total      int        `json:"total"`
	HasPrev    bool       `json:"has_prev"`
	HasNext    bool       `json:"has_next"`
}

// Service is the customer entity store: a write-through list plus the
// selection pointer driving the form drawer.
type Service interface {
	LoadAll(ctx context.Context) error
	List(ctx context.Context, req ListRequest) (ListResponse, error)
	All(ctx context.Context) []Customer
	GetByID(ctx context.Context, id string) (Customer, error)
	Create(ctx context.Context, req CreateRequest) (Customer, error)
	Update(ctx context.Context, req UpdateRequest) (Customer, error)
	Delete(ctx context.Context, id string) error
	Select(id string)
	ClearSelection()
	Selection() entitystore.Selection[Customer]
}

var (
	ErrInvalidID    = errors.New("invalid_id")
	ErrInvalidName  = errors.New("invalid_name")
	ErrInvalidEmail = errors.New("invalid_email")
	ErrInvalidPhone = errors.New("invalid_phone")
	ErrNotFound     = errors.New("customer_not_found")
)

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)
	phonePattern = regexp.MustCompile(`^\+?[0-9]{7,15}$`)
)

// Validate applies the form's required-field rules: non-empty name, a
// plausible email and a plausible phone number.
func Validate(c Customer) error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrInvalidName
	}
	if !emailPattern.MatchString(strings.TrimSpace(c.Email)) {
		return ErrInvalidEmail
	}
	phone := strings.NewReplacer(" ", "", "-", "", "(", "", ")", "").Replace(c.Phone)
	if !phonePattern.MatchString(phone) {
		return ErrInvalidPhone
	}
	return nil
}

// PageOf derives the filtered, paginated view over a customer list.
func PageOf(customers []Customer, req ListRequest) listview.Page[Customer] {
	return listview.Build(customers, listview.Query{Search: req.Query, Page: req.Page}, Customer.SearchFields)
}
