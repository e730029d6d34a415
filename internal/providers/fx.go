package providers

import (
	"go.uber.org/fx"

	"github.com/bharatstack/gstbill/internal/providers/pdf"
)

var Module = fx.Module("providers",
	pdf.Module,
)
