package warehouse

import (
	"go.uber.org/fx"

	"github.com/bharatstack/gstbill/internal/warehouse/repository"
	"github.com/bharatstack/gstbill/internal/warehouse/service"
)

var Module = fx.Module("warehouse.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
