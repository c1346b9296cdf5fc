package customer

import (
	"github.com/namaaror/invoice-manage/internal/customer/service"
	"go.uber.org/fx"
)

var Module = fx.Module("customer.service",
	fx.Provide(service.NewService),
)
