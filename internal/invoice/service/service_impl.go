package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/namaaror/invoice-manage/internal/blobstore"
	"github.com/namaaror/invoice-manage/internal/cache"
	"github.com/namaaror/invoice-manage/internal/clock"
	"github.com/namaaror/invoice-manage/internal/entitystore"
	invoicedomain "github.com/namaaror/invoice-manage/internal/invoice/domain"
	productdomain "github.com/namaaror/invoice-manage/internal/product/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	ProductSvc productdomain.Service
	RateCache  *cache.TTLCache[string, float64]
}

type Service struct {
	log        *zap.Logger
	clock      clock.Clock
	productSvc productdomain.Service
	rateCache  *cache.TTLCache[string, float64]
	store      *entitystore.Store[invoicedomain.Invoice]
}

func NewService(p ServiceParam) invoicedomain.Service {
	return &Service{
		log:        p.Log.Named("invoice.service"),
		clock:      p.Clock,
		productSvc: p.ProductSvc,
		rateCache:  p.RateCache,
		store: entitystore.New(entitystore.Config[invoicedomain.Invoice]{
			Persistence: blobstore.NewCollection[invoicedomain.Invoice](p.DB, p.Log, invoicedomain.StorageKey),
			GenID:       entitystore.SnowflakeIDs{Node: p.GenID},
			IDOf:        func(inv invoicedomain.Invoice) string { return inv.ID },
			WithID: func(inv invoicedomain.Invoice, id string) invoicedomain.Invoice {
				inv.ID = id
				return inv
			},
		}),
	}
}

// NewRateCache provides the product-rate lookup cache. The short TTL bounds
// how long a renamed or repriced product can serve a stale rate.
func NewRateCache() *cache.TTLCache[string, float64] {
	return cache.NewTTLCache[string, float64](30 * time.Second)
}

func (s *Service) LoadAll(ctx context.Context) error {
	return s.store.LoadAll(ctx)
}

func (s *Service) List(ctx context.Context, req invoicedomain.ListRequest) (invoicedomain.ListResponse, error) {
	page := invoicedomain.PageOf(s.store.List(), req)
	return invoicedomain.ListResponse{
		Invoices:   page.Items,
		Page:       page.Number,
		TotalPages: page.TotalPages,
		Total:      page.Total,
		HasPrev:    page.HasPrev,
		HasNext:    page.HasNext,
	}, nil
}

// All returns every invoice, unfiltered.
func (s *Service) All(ctx context.Context) []invoicedomain.Invoice {
	return s.store.List()
}

func (s *Service) GetByID(ctx context.Context, id string) (invoicedomain.Invoice, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidID
	}
	invoice, ok := s.store.Get(id)
	if !ok {
		return invoicedomain.Invoice{}, invoicedomain.ErrNotFound
	}
	return invoice, nil
}

func (s *Service) Create(ctx context.Context, req invoicedomain.CreateRequest) (invoicedomain.Invoice, error) {
	invoice, err := s.compose(ctx, "", req.Customer, req.Items, req.Date, req.Status)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	stored, err := s.store.Add(ctx, invoice)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	s.log.Info("invoice created",
		zap.String("invoice_id", stored.ID),
		zap.String("customer", stored.Customer),
		zap.Float64("total_amount", stored.TotalAmount),
	)
	return stored, nil
}

func (s *Service) Update(ctx context.Context, req invoicedomain.UpdateRequest) (invoicedomain.Invoice, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidID
	}
	invoice, err := s.compose(ctx, id, req.Customer, req.Items, req.Date, req.Status)
	if err != nil {
		return invoicedomain.Invoice{}, err
	}

	stored, err := s.store.Update(ctx, invoice)
	if err == entitystore.ErrNotFound {
		return invoicedomain.Invoice{}, invoicedomain.ErrNotFound
	}
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	s.log.Info("invoice updated",
		zap.String("invoice_id", stored.ID),
		zap.Float64("total_amount", stored.TotalAmount),
	)
	return stored, nil
}

func (s *Service) UpdateStatus(ctx context.Context, req invoicedomain.UpdateStatusRequest) (invoicedomain.Invoice, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidID
	}
	if !req.Status.Valid() {
		return invoicedomain.Invoice{}, invoicedomain.ErrInvalidStatus
	}

	invoice, ok := s.store.Get(id)
	if !ok {
		return invoicedomain.Invoice{}, invoicedomain.ErrNotFound
	}
	invoice.Status = req.Status

	stored, err := s.store.Update(ctx, invoice)
	if err == entitystore.ErrNotFound {
		return invoicedomain.Invoice{}, invoicedomain.ErrNotFound
	}
	if err != nil {
		return invoicedomain.Invoice{}, err
	}
	s.log.Info("invoice status updated",
		zap.String("invoice_id", stored.ID),
		zap.String("status", string(stored.Status)),
	)
	return stored, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.store.Remove(ctx, strings.TrimSpace(id))
}

func (s *Service) Select(id string) {
	if invoice, ok := s.store.Get(strings.TrimSpace(id)); ok {
		s.store.Select(invoice)
		return
	}
	s.store.ClearSelection()
}

func (s *Service) ClearSelection() {
	s.store.ClearSelection()
}

func (s *Service) Selection() entitystore.Selection[invoicedomain.Invoice] {
	return s.store.Selection()
}

// compose builds a validated invoice from raw inputs: rates are sourced
// from the product catalog where the client did not send one, amounts and
// the total are recomputed, and defaults (today's date, pending status)
// fill empty fields.
func (s *Service) compose(ctx context.Context, id, customer string, inputs []invoicedomain.ItemInput, date string, status invoicedomain.Status) (invoicedomain.Invoice, error) {
	items := make([]invoicedomain.InvoiceItem, 0, len(inputs))
	for _, input := range inputs {
		rate, err := s.resolveRate(ctx, input)
		if err != nil {
			return invoicedomain.Invoice{}, err
		}
		items = append(items, invoicedomain.InvoiceItem{
			Product:     strings.TrimSpace(input.Product),
			Description: strings.TrimSpace(input.Description),
			Quantity:    input.Quantity,
			Rate:        rate,
		})
	}
	items, total := invoicedomain.NormalizeItems(items)

	if strings.TrimSpace(date) == "" {
		date = s.clock.Now().Format(invoicedomain.DateLayout)
	}
	if status == "" {
		status = invoicedomain.StatusPending
	}

	invoice := invoicedomain.Invoice{
		ID:          id,
		Customer:    strings.TrimSpace(customer),
		Items:       items,
		TotalAmount: total,
		Date:        date,
		Status:      status,
	}
	if err := invoicedomain.Validate(invoice); err != nil {
		return invoicedomain.Invoice{}, err
	}
	return invoice, nil
}

// resolveRate prefers an explicitly submitted rate; otherwise it looks the
// product up by name, the way the form fills the rate when a product is
// picked from the dropdown.
func (s *Service) resolveRate(ctx context.Context, input invoicedomain.ItemInput) (float64, error) {
	if input.Rate != nil {
		return *input.Rate, nil
	}

	name := strings.ToLower(strings.TrimSpace(input.Product))
	if name == "" {
		return 0, invoicedomain.ErrInvalidProduct
	}
	if rate, ok := s.rateCache.Get(name); ok {
		return rate, nil
	}

	product, err := s.productSvc.GetByName(ctx, name)
	if err != nil {
		if err == productdomain.ErrNotFound {
			return 0, invoicedomain.ErrUnknownProduct
		}
		return 0, err
	}
	s.rateCache.Set(name, product.Rate)
	return product.Rate, nil
}
