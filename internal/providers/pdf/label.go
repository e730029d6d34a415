package pdf

import (
	"context"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// LabelInput carries everything printed on a parcel label.
type LabelInput struct {
	OrderNumber   string
	InvoiceNumber string

	ToName    string
	ToAddress []string
	ToPhone   string

	FromName    string
	FromAddress []string

	Weight string
	COD    bool
}

func (p *marotoProvider) RenderShippingLabel(ctx context.Context, input LabelInput) ([]byte, error) {
	cfg := config.NewBuilder().Build()
	m := maroto.New(cfg)

	m.AddRow(14,
		text.NewCol(8, "Order "+input.OrderNumber, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
		}),
		text.NewCol(4, paymentMode(input.COD), props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Align: align.Right,
		}),
	)

	if input.OrderNumber != "" {
		m.AddRow(20, code.NewBarCol(12, input.OrderNumber, props.Barcode{
			Center:  true,
			Percent: 70,
		}))
	}

	m.AddRow(2, line.NewCol(12))

	m.AddRow(30,
		col.New(12).Add(
			text.New("Deliver to", props.Text{Size: 9, Style: fontstyle.Bold}),
			text.New(input.ToName, props.Text{Top: 5, Size: 12, Style: fontstyle.Bold}),
			text.New(strings.Join(input.ToAddress, ", "), props.Text{Top: 12, Size: 10}),
			text.New(phoneLine(input.ToPhone), props.Text{Top: 19, Size: 10}),
		),
	)

	m.AddRow(2, line.NewCol(12))

	m.AddRow(20,
		col.New(8).Add(
			text.New("Shipped by", props.Text{Size: 8, Style: fontstyle.Bold}),
			text.New(input.FromName, props.Text{Top: 4, Size: 8}),
			text.New(strings.Join(input.FromAddress, ", "), props.Text{Top: 8, Size: 8}),
		),
		col.New(4).Add(
			text.New("Invoice: "+input.InvoiceNumber, props.Text{Size: 8, Align: align.Right}),
			text.New(weightLine(input.Weight), props.Text{Top: 4, Size: 8, Align: align.Right}),
		),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func paymentMode(cod bool) string {
	if cod {
		return "COD"
	}
	return "PREPAID"
}

func phoneLine(phone string) string {
	if phone == "" {
		return ""
	}
	return "Phone: " + phone
}

func weightLine(weight string) string {
	if weight == "" {
		return ""
	}
	return "Weight: " + weight
}
