package sequence

import (
	"go.uber.org/fx"

	"github.com/bharatstack/gstbill/internal/sequence/repository"
	"github.com/bharatstack/gstbill/internal/sequence/service"
)

var Module = fx.Module("sequence.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
