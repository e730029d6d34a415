package merchant

import (
	"go.uber.org/fx"

	"github.com/bharatstack/gstbill/internal/merchant/repository"
	"github.com/bharatstack/gstbill/internal/merchant/service"
)

var Module = fx.Module("merchant.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
