package invoice

import (
	"github.com/namaaror/invoice-manage/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(service.NewRateCache),
	fx.Provide(service.NewService),
)
