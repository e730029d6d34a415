// Package pdf renders invoice documents and shipping labels with maroto.
package pdf

import (
	"context"

	"go.uber.org/fx"

	"github.com/bharatstack/gstbill/internal/invoice/render"
)

type Provider interface {
	// RenderInvoice produces the printable PDF for a tax invoice or
	// credit note, from the same view model the HTML renderer consumes.
	RenderInvoice(ctx context.Context, input render.RenderInput) ([]byte, error)

	// RenderShippingLabel produces a parcel label for the dispatch.
	RenderShippingLabel(ctx context.Context, input LabelInput) ([]byte, error)
}

type marotoProvider struct{}

func New() Provider {
	return &marotoProvider{}
}

var Module = fx.Module("providers.pdf",
	fx.Provide(New),
)
