package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/bharatstack/gstbill/internal/invoice/format"
	"github.com/bharatstack/gstbill/internal/invoice/render"
)

func (p *marotoProvider) RenderInvoice(ctx context.Context, input render.RenderInput) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	title := "TAX INVOICE"
	if input.Invoice.IsCreditNote {
		title = "CREDIT NOTE"
	}
	m.AddRow(12,
		text.NewCol(12, title, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)

	m.AddRow(28,
		col.New(6).Add(
			text.New(input.Seller.LegalName, props.Text{Style: fontstyle.Bold, Size: 10}),
			text.New(strings.Join(input.Seller.AddressLines, ", "), props.Text{Top: 5, Size: 9}),
			text.New(input.Seller.StateName+" ("+input.Seller.StateCode+")", props.Text{Top: 10, Size: 9}),
			text.New("GSTIN: "+input.Seller.GSTIN, props.Text{Top: 15, Size: 9, Style: fontstyle.Bold}),
		),
		col.New(6).Add(
			text.New("Invoice no: "+input.Invoice.Number, props.Text{Size: 9, Align: align.Right}),
			text.New("Date: "+format.Date(input.Invoice.Date), props.Text{Top: 5, Size: 9, Align: align.Right}),
			text.New("Order: "+input.Invoice.OrderNumber, props.Text{Top: 10, Size: 9, Align: align.Right}),
			text.New("Place of supply: "+input.Invoice.PlaceOfSupply, props.Text{Top: 15, Size: 9, Align: align.Right}),
		),
	)

	if input.Invoice.IsCreditNote && input.Invoice.OriginalNumber != "" {
		m.AddRow(6,
			text.NewCol(12, "Against invoice "+input.Invoice.OriginalNumber, props.Text{Size: 9}),
		)
	}

	m.AddRow(24,
		col.New(6).Add(
			text.New("Bill to", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.New(input.Customer.Name, props.Text{Top: 5, Size: 9}),
			text.New(strings.Join(input.Customer.AddressLines, ", "), props.Text{Top: 10, Size: 9}),
			text.New(customerGSTINLine(input.Customer.GSTIN), props.Text{Top: 15, Size: 9}),
		),
		col.New(6),
	)

	m.AddRow(2, line.NewCol(12))

	addLineTable(m, input)
	addSummaryTable(m, input)
	addTotals(m, input)

	m.AddRow(14,
		col.New(7).Add(
			text.New("Amount in words:", props.Text{Size: 8, Style: fontstyle.Bold}),
			text.New(input.Totals.AmountInWords, props.Text{Top: 4, Size: 8}),
		),
		col.New(5).Add(
			text.New("For "+input.Seller.LegalName, props.Text{Size: 8, Align: align.Right}),
			text.New(signatoryLine(input.Seller.SignatoryName), props.Text{Top: 9, Size: 8, Align: align.Right}),
		),
	)

	if input.Seller.BankAccountNo != "" {
		m.AddRow(10,
			text.NewCol(12, bankLine(input.Seller), props.Text{Size: 8}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

// addLineTable writes the item rows. Intra-state documents split the tax
// into CGST and SGST columns, inter-state documents show a single IGST
// column.
func addLineTable(m core.Maroto, input render.RenderInput) {
	header := props.Text{Style: fontstyle.Bold, Size: 8}
	headerRight := props.Text{Style: fontstyle.Bold, Size: 8, Align: align.Right}

	if input.Totals.IntraState {
		m.AddRow(8,
			text.NewCol(3, "Item", header),
			text.NewCol(1, "HSN", header),
			text.NewCol(1, "Qty", headerRight),
			text.NewCol(2, "Taxable", headerRight),
			text.NewCol(1, "Rate", headerRight),
			text.NewCol(1, "CGST", headerRight),
			text.NewCol(1, "SGST", headerRight),
			text.NewCol(2, "Total", headerRight),
		)
	} else {
		m.AddRow(8,
			text.NewCol(3, "Item", header),
			text.NewCol(2, "HSN", header),
			text.NewCol(1, "Qty", headerRight),
			text.NewCol(2, "Taxable", headerRight),
			text.NewCol(1, "Rate", headerRight),
			text.NewCol(1, "IGST", headerRight),
			text.NewCol(2, "Total", headerRight),
		)
	}

	cell := props.Text{Size: 8}
	cellRight := props.Text{Size: 8, Align: align.Right}
	for _, item := range input.Lines {
		qty := fmt.Sprintf("%d", item.Quantity)
		if input.Totals.IntraState {
			m.AddRow(7,
				text.NewCol(3, item.Title, cell),
				text.NewCol(1, item.HSNCode, cell),
				text.NewCol(1, qty, cellRight),
				text.NewCol(2, format.Rupees(item.TaxableValue), cellRight),
				text.NewCol(1, format.Percent(item.GSTRate), cellRight),
				text.NewCol(1, format.Rupees(item.CGST), cellRight),
				text.NewCol(1, format.Rupees(item.SGST), cellRight),
				text.NewCol(2, format.Rupees(item.TotalAmount), cellRight),
			)
		} else {
			m.AddRow(7,
				text.NewCol(3, item.Title, cell),
				text.NewCol(2, item.HSNCode, cell),
				text.NewCol(1, qty, cellRight),
				text.NewCol(2, format.Rupees(item.TaxableValue), cellRight),
				text.NewCol(1, format.Percent(item.GSTRate), cellRight),
				text.NewCol(1, format.Rupees(item.IGST), cellRight),
				text.NewCol(2, format.Rupees(item.TotalAmount), cellRight),
			)
		}
	}

	m.AddRow(2, line.NewCol(12))
}

func addSummaryTable(m core.Maroto, input render.RenderInput) {
	if len(input.Summary) == 0 {
		return
	}

	m.AddRow(8,
		text.NewCol(12, "Tax summary", props.Text{Style: fontstyle.Bold, Size: 8}),
	)
	for _, row := range input.Summary {
		var taxes string
		if input.Totals.IntraState {
			taxes = "CGST " + format.Rupees(row.CGST) + "  SGST " + format.Rupees(row.SGST)
		} else {
			taxes = "IGST " + format.Rupees(row.IGST)
		}
		m.AddRow(6,
			text.NewCol(2, format.Percent(row.GSTRate), props.Text{Size: 8}),
			text.NewCol(4, "Taxable "+format.Rupees(row.TaxableValue), props.Text{Size: 8}),
			text.NewCol(6, taxes, props.Text{Size: 8, Align: align.Right}),
		)
	}

	m.AddRow(2, line.NewCol(12))
}

func addTotals(m core.Maroto, input render.RenderInput) {
	totals := input.Totals

	addTotalRow(m, "Subtotal", format.Rupees(totals.Subtotal), false)
	if totals.IntraState {
		addTotalRow(m, "CGST", format.Rupees(totals.TotalCGST), false)
		addTotalRow(m, "SGST", format.Rupees(totals.TotalSGST), false)
	} else {
		addTotalRow(m, "IGST", format.Rupees(totals.TotalIGST), false)
	}
	if !totals.ShippingCharge.IsZero() {
		addTotalRow(m, "Shipping", format.Rupees(totals.ShippingCharge), false)
	}
	if !totals.DiscountAmount.IsZero() {
		addTotalRow(m, "Discount", "-"+format.Rupees(totals.DiscountAmount), false)
	}
	if !totals.RoundOff.IsZero() {
		addTotalRow(m, "Round off", format.Rupees(totals.RoundOff), false)
	}
	addTotalRow(m, "Grand total", format.Rupees(totals.GrandTotal), true)
}

func addTotalRow(m core.Maroto, label, value string, bold bool) {
	style := fontstyle.Normal
	if bold {
		style = fontstyle.Bold
	}
	m.AddRow(6,
		col.New(7),
		text.NewCol(3, label, props.Text{Size: 8, Style: style}),
		text.NewCol(2, value, props.Text{Size: 8, Style: style, Align: align.Right}),
	)
}

func customerGSTINLine(gstin string) string {
	if gstin == "" {
		return "Unregistered customer"
	}
	return "GSTIN: " + gstin
}

func signatoryLine(name string) string {
	if name == "" {
		return "Authorised signatory"
	}
	return name + ", Authorised signatory"
}

func bankLine(seller render.SellerView) string {
	parts := []string{"Bank: " + seller.BankName, "A/c: " + seller.BankAccountNo}
	if seller.BankIFSC != "" {
		parts = append(parts, "IFSC: "+seller.BankIFSC)
	}
	return strings.Join(parts, "  ")
}
