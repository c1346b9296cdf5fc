package main

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/namaaror/invoice-manage/internal/clock"
	"github.com/namaaror/invoice-manage/internal/config"
	"github.com/namaaror/invoice-manage/internal/customer"
	customerdomain "github.com/namaaror/invoice-manage/internal/customer/domain"
	"github.com/namaaror/invoice-manage/internal/invoice"
	invoicedomain "github.com/namaaror/invoice-manage/internal/invoice/domain"
	"github.com/namaaror/invoice-manage/internal/logger"
	"github.com/namaaror/invoice-manage/internal/migration"
	"github.com/namaaror/invoice-manage/internal/product"
	productdomain "github.com/namaaror/invoice-manage/internal/product/domain"
	"github.com/namaaror/invoice-manage/internal/seed"
	"github.com/namaaror/invoice-manage/internal/server"
	"github.com/namaaror/invoice-manage/internal/webui"
	"github.com/namaaror/invoice-manage/pkg/db"
)

var version = "dev"

func main() {
	app := fx.New(
		config.Module,
		logger.Module,
		fx.Provide(func() *snowflake.Node {
			node, err := snowflake.NewNode(1)
			if err != nil {
				panic(err)
			}
			return node
		}),
		db.Module,
		clock.Module,
		fx.Invoke(func(conn *gorm.DB) error {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := migration.RunMigrations(sqlDB); err != nil {
				return err
			}
			return seed.EnsureStorageKeys(conn)
		}),
		customer.Module,
		product.Module,
		invoice.Module,
		server.Module,
		webui.Module,
		fx.Invoke(func(cfg config.Config, customerSvc customerdomain.Service, productSvc productdomain.Service, invoiceSvc invoicedomain.Service) error {
			if !cfg.SeedSample {
				return nil
			}
			return seed.EnsureSampleData(context.Background(), customerSvc, productSvc, invoiceSvc)
		}),
	)
	app.Run()
}
