package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/namaaror/invoice-manage/internal/blobstore"
	customerdomain "github.com/namaaror/invoice-manage/internal/customer/domain"
	"github.com/namaaror/invoice-manage/internal/entitystore"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
}

type Service struct {
	log   *zap.Logger
	store *entitystore.Store[customerdomain.Customer]
}

func NewService(p ServiceParam) customerdomain.Service {
	return &Service{
		log: p.Log.Named("customer.service"),
		store: entitystore.New(entitystore.Config[customerdomain.Customer]{
			Persistence: blobstore.NewCollection[customerdomain.Customer](p.DB, p.Log, customerdomain.StorageKey),
			GenID:       entitystore.SnowflakeIDs{Node: p.GenID},
			IDOf:        func(c customerdomain.Customer) string { return c.ID },
			WithID: func(c customerdomain.Customer, id string) customerdomain.Customer {
				c.ID = id
				return c
			},
		}),
	}
}

func (s *Service) LoadAll(ctx context.Context) error {
	return s.store.LoadAll(ctx)
}

func (s *Service) List(ctx context.Context, req customerdomain.ListRequest) (customerdomain.ListResponse, error) {
	page := customerdomain.PageOf(s.store.List(), req)
	return customerdomain.ListResponse{
		Customers:  page.Items,
		Page:       page.Number,
		TotalPages: page.TotalPages,
		Total:      page.Total,
		HasPrev:    page.HasPrev,
		HasNext:    page.HasNext,
	}, nil
}

// All returns every customer, unfiltered, for the invoice form's dropdown.
func (s *Service) All(ctx context.Context) []customerdomain.Customer {
	return s.store.List()
}

func (s *Service) GetByID(ctx context.Context, id string) (customerdomain.Customer, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return customerdomain.Customer{}, customerdomain.ErrInvalidID
	}
	customer, ok := s.store.Get(id)
	if !ok {
		return customerdomain.Customer{}, customerdomain.ErrNotFound
	}
	return customer, nil
}

func (s *Service) Create(ctx context.Context, req customerdomain.CreateRequest) (customerdomain.Customer, error) {
	customer := customerdomain.Customer{
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(req.Email),
		Phone: strings.TrimSpace(req.Phone),
	}
	if err := customerdomain.Validate(customer); err != nil {
		return customerdomain.Customer{}, err
	}

	stored, err := s.store.Add(ctx, customer)
	if err != nil {
		return customerdomain.Customer{}, err
	}
	s.log.Info("customer created", zap.String("customer_id", stored.ID), zap.String("name", stored.Name))
	return stored, nil
}

func (s *Service) Update(ctx context.Context, req customerdomain.UpdateRequest) (customerdomain.Customer, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return customerdomain.Customer{}, customerdomain.ErrInvalidID
	}
	customer := customerdomain.Customer{
		ID:    id,
		Name:  strings.TrimSpace(req.Name),
		Email: strings.TrimSpace(req.Email),
		Phone: strings.TrimSpace(req.Phone),
	}
	if err := customerdomain.Validate(customer); err != nil {
		return customerdomain.Customer{}, err
	}

	stored, err := s.store.Update(ctx, customer)
	if err == entitystore.ErrNotFound {
		return customerdomain.Customer{}, customerdomain.ErrNotFound
	}
	if err != nil {
		return customerdomain.Customer{}, err
	}
	s.log.Info("customer updated", zap.String("customer_id", stored.ID))
	return stored, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	// Stale ids are silently ignored; existing invoices keep their
	// denormalized customer name either way.
	return s.store.Remove(ctx, strings.TrimSpace(id))
}

func (s *Service) Select(id string) {
	if customer, ok := s.store.Get(strings.TrimSpace(id)); ok {
		s.store.Select(customer)
		return
	}
	s.store.ClearSelection()
}

func (s *Service) ClearSelection() {
	s.store.ClearSelection()
}

func (s *Service) Selection() entitystore.Selection[customerdomain.Customer] {
	return s.store.Selection()
}
