package hsn

import (
	"go.uber.org/fx"

	"github.com/bharatstack/gstbill/internal/hsn/repository"
	"github.com/bharatstack/gstbill/internal/hsn/service"
)

var Module = fx.Module("hsn.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
