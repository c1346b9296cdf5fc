package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/namaaror/invoice-manage/internal/blobstore"
	"github.com/namaaror/invoice-manage/internal/cache"
	"github.com/namaaror/invoice-manage/internal/entitystore"
	productdomain "github.com/namaaror/invoice-manage/internal/product/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ServiceParam struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node

	// RateCache holds the invoice side's rate lookups; repricing or
	// deleting a product must evict its entry so no invoice saves a
	// stale rate.
	RateCache *cache.TTLCache[string, float64] `optional:"true"`
}

type Service struct {
	log       *zap.Logger
	rateCache *cache.TTLCache[string, float64]
	store     *entitystore.Store[productdomain.Product]
}

func NewService(p ServiceParam) productdomain.Service {
	return &Service{
		log:       p.Log.Named("product.service"),
		rateCache: p.RateCache,
		store: entitystore.New(entitystore.Config[productdomain.Product]{
			Persistence: blobstore.NewCollection[productdomain.Product](p.DB, p.Log, productdomain.StorageKey),
			GenID:       entitystore.SnowflakeIDs{Node: p.GenID},
			IDOf:        func(prod productdomain.Product) string { return prod.ID },
			WithID: func(prod productdomain.Product, id string) productdomain.Product {
				prod.ID = id
				return prod
			},
		}),
	}
}

func (s *Service) LoadAll(ctx context.Context) error {
	return s.store.LoadAll(ctx)
}

func (s *Service) List(ctx context.Context, req productdomain.ListRequest) (productdomain.ListResponse, error) {
	page := productdomain.PageOf(s.store.List(), req)
	return productdomain.ListResponse{
		Products:   page.Items,
		Page:       page.Number,
		TotalPages: page.TotalPages,
		Total:      page.Total,
		HasPrev:    page.HasPrev,
		HasNext:    page.HasNext,
	}, nil
}

// All returns every product, unfiltered, for the invoice form's dropdown.
func (s *Service) All(ctx context.Context) []productdomain.Product {
	return s.store.List()
}

func (s *Service) GetByID(ctx context.Context, id string) (productdomain.Product, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return productdomain.Product{}, productdomain.ErrInvalidID
	}
	product, ok := s.store.Get(id)
	if !ok {
		return productdomain.Product{}, productdomain.ErrNotFound
	}
	return product, nil
}

// GetByName resolves a product by its denormalized name, the reference the
// invoice form stores. Names are matched case-insensitively.
func (s *Service) GetByName(ctx context.Context, name string) (productdomain.Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return productdomain.Product{}, productdomain.ErrInvalidName
	}
	for _, product := range s.store.List() {
		if strings.EqualFold(product.Name, name) {
			return product, nil
		}
	}
	return productdomain.Product{}, productdomain.ErrNotFound
}

func (s *Service) Create(ctx context.Context, req productdomain.CreateRequest) (productdomain.Product, error) {
	product := productdomain.Product{
		Name: strings.TrimSpace(req.Name),
		Rate: req.Rate,
	}
	if err := productdomain.Validate(product); err != nil {
		return productdomain.Product{}, err
	}

	stored, err := s.store.Add(ctx, product)
	if err != nil {
		return productdomain.Product{}, err
	}
	s.log.Info("product created", zap.String("product_id", stored.ID), zap.String("name", stored.Name))
	return stored, nil
}

func (s *Service) Update(ctx context.Context, req productdomain.UpdateRequest) (productdomain.Product, error) {
	id := strings.TrimSpace(req.ID)
	if id == "" {
		return productdomain.Product{}, productdomain.ErrInvalidID
	}
	product := productdomain.Product{
		ID:   id,
		Name: strings.TrimSpace(req.Name),
		Rate: req.Rate,
	}
	if err := productdomain.Validate(product); err != nil {
		return productdomain.Product{}, err
	}

	previous, _ := s.store.Get(id)

	stored, err := s.store.Update(ctx, product)
	if err == entitystore.ErrNotFound {
		return productdomain.Product{}, productdomain.ErrNotFound
	}
	if err != nil {
		return productdomain.Product{}, err
	}
	s.invalidateRate(previous.Name, stored.Name)
	s.log.Info("product updated", zap.String("product_id", stored.ID))
	return stored, nil
}

func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if product, ok := s.store.Get(id); ok {
		s.invalidateRate(product.Name)
	}
	return s.store.Remove(ctx, id)
}

// invalidateRate evicts cached rate lookups for the given product names.
// Keys are lowercased the way the invoice side caches them.
func (s *Service) invalidateRate(names ...string) {
	if s.rateCache == nil {
		return
	}
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" {
			s.rateCache.Delete(name)
		}
	}
}

func (s *Service) Select(id string) {
	if product, ok := s.store.Get(strings.TrimSpace(id)); ok {
		s.store.Select(product)
		return
	}
	s.store.ClearSelection()
}

func (s *Service) ClearSelection() {
	s.store.ClearSelection()
}

func (s *Service) Selection() entitystore.Selection[productdomain.Product] {
	return s.store.Selection()
}
