package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/namaaror/invoice-manage/internal/config"
	customerdomain "github.com/namaaror/invoice-manage/internal/customer/domain"
	invoicedomain "github.com/namaaror/invoice-manage/internal/invoice/domain"
	"github.com/namaaror/invoice-manage/internal/logger"
	productdomain "github.com/namaaror/invoice-manage/internal/product/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Server owns the JSON API handlers and their route registration.
type Server struct {
	cfg         config.Config
	log         *zap.Logger
	engine      *gin.Engine
	customerSvc customerdomain.Service
	productSvc  productdomain.Service
	invoiceSvc  invoicedomain.Service
}

type ServerParam struct {
	fx.In

	Cfg         config.Config
	Log         *zap.Logger
	Engine      *gin.Engine
	CustomerSvc customerdomain.Service
	ProductSvc  productdomain.Service
	InvoiceSvc  invoicedomain.Service
}

func NewServer(p ServerParam) *Server {
	return &Server{
		cfg:         p.Cfg,
		log:         p.Log.Named("server"),
		engine:      p.Engine,
		customerSvc: p.CustomerSvc,
		productSvc:  p.ProductSvc,
		invoiceSvc:  p.InvoiceSvc,
	}
}

// NewEngine builds the shared gin engine with logging, recovery and CORS.
func NewEngine(cfg config.Config, log *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(logger.GinMiddleware(log))
	r.Use(gin.Recovery())
	r.Use(MutationRateLimit(120, time.Minute))
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		MaxAge:          12 * time.Hour,
	}))
	return r
}

// RegisterAPIRoutes mounts the JSON API.
func (s *Server) RegisterAPIRoutes() {
	api := s.engine.Group("/api")

	api.GET("/customers", s.ListCustomers)
	api.POST("/customers", s.CreateCustomer)
	api.GET("/customers/:id", s.GetCustomerByID)
	api.PUT("/customers/:id", s.UpdateCustomer)
	api.DELETE("/customers/:id", s.DeleteCustomer)

	api.GET("/products", s.ListProducts)
	api.POST("/products", s.CreateProduct)
	api.GET("/products/:id", s.GetProductByID)
	api.PUT("/products/:id", s.UpdateProduct)
	api.DELETE("/products/:id", s.DeleteProduct)

	api.GET("/invoices", s.ListInvoices)
	api.POST("/invoices", s.CreateInvoice)
	api.GET("/invoices/:id", s.GetInvoiceByID)
	api.PUT("/invoices/:id", s.UpdateInvoice)
	api.PATCH("/invoices/:id/status", s.UpdateInvoiceStatus)
	api.DELETE("/invoices/:id", s.DeleteInvoice)

	api.POST("/testing/cleanup", s.TestCleanup)

	api.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// HydrateStores loads every entity list from persistence, the one-time
// load-on-mount step.
func (s *Server) HydrateStores(ctx context.Context) error {
	if err := s.customerSvc.LoadAll(ctx); err != nil {
		return err
	}
	if err := s.productSvc.LoadAll(ctx); err != nil {
		return err
	}
	return s.invoiceSvc.LoadAll(ctx)
}

// RunHTTP starts the HTTP listener under the fx lifecycle.
func RunHTTP(lc fx.Lifecycle, cfg config.Config, log *zap.Logger, engine *gin.Engine) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server starting", zap.String("addr", cfg.HTTPAddr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Error("http server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return srv.Shutdown(ctx)
		},
	})
}

// Module wires the engine and server into the fx graph.
var Module = fx.Module("server",
	fx.Provide(NewEngine),
	fx.Provide(NewServer),
	fx.Invoke(func(s *Server) error {
		if err := s.HydrateStores(context.Background()); err != nil {
			return err
		}
		s.RegisterAPIRoutes()
		return nil
	}),
	fx.Invoke(RunHTTP),
)
