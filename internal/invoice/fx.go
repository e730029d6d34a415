package invoice

import (
	"go.uber.org/fx"

	"github.com/bharatstack/gstbill/internal/invoice/render"
	"github.com/bharatstack/gstbill/internal/invoice/repository"
	"github.com/bharatstack/gstbill/internal/invoice/service"
)

var Module = fx.Module("invoice.service",
	fx.Provide(render.NewRenderer),
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
