package service

import (
	"context"
	"errors"
	"strings"

	"github.com/bharatstack/gstbill/internal/gst"
	"github.com/bharatstack/gstbill/internal/invoice/domain"
	"github.com/bharatstack/gstbill/internal/invoice/format"
	"github.com/bharatstack/gstbill/internal/invoice/render"
	merchantdomain "github.com/bharatstack/gstbill/internal/merchant/domain"
	"github.com/bharatstack/gstbill/internal/merchantctx"
	"github.com/bharatstack/gstbill/internal/providers/pdf"
)

func (s *Service) RenderInvoice(ctx context.Context, id string) (string, error) {
	if s.renderer == nil {
		return "", errors.New("renderer_not_configured")
	}
	input, err := s.renderInput(ctx, id)
	if err != nil {
		return "", err
	}
	return s.renderer.RenderHTML(*input)
}

func (s *Service) RenderInvoicePDF(ctx context.Context, id string) ([]byte, error) {
	if s.pdf == nil {
		return nil, errors.New("pdf_provider_not_configured")
	}
	input, err := s.renderInput(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.pdf.RenderInvoice(ctx, *input)
}

func (s *Service) RenderShippingLabel(ctx context.Context, id string) ([]byte, error) {
	if s.pdf == nil {
		return nil, errors.New("pdf_provider_not_configured")
	}

	assembled, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	profile, err := s.merchants.Get(ctx)
	if err != nil {
		return nil, err
	}

	inv := &assembled.Invoice
	shipping := inv.ShippingAddress
	return s.pdf.RenderShippingLabel(ctx, pdf.LabelInput{
		OrderNumber:   inv.OrderNumber,
		InvoiceNumber: inv.InvoiceNumber,
		ToName:        inv.CustomerName,
		ToAddress: addressLines(
			jsonString(shipping, "address1"),
			jsonString(shipping, "address2"),
			jsonString(shipping, "city"),
			jsonString(shipping, "province")+" "+jsonString(shipping, "zip"),
		),
		ToPhone:     inv.CustomerPhone,
		FromName:    profile.LegalName,
		FromAddress: addressLines(profile.AddressLine1, profile.AddressLine2, profile.City, profile.PinCode),
	})
}

// renderInput builds the full document view model for one invoice.
func (s *Service) renderInput(ctx context.Context, id string) (*render.RenderInput, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	assembled, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	profile, err := s.merchants.Get(ctx)
	if err != nil {
		return nil, err
	}

	originalNumber := ""
	if assembled.Invoice.OriginalInvoiceID != nil {
		original, err := s.repo.FindByID(ctx, s.db, merchantID.Int64(), *assembled.Invoice.OriginalInvoiceID)
		if err != nil {
			return nil, err
		}
		if original != nil {
			originalNumber = original.InvoiceNumber
		}
	}

	return &render.RenderInput{
		Seller:   buildSellerView(profile),
		Invoice:  buildInvoiceView(&assembled.Invoice, originalNumber),
		Customer: buildCustomerView(&assembled.Invoice),
		Lines:    buildLineViews(assembled.Lines),
		Summary:  buildSummaryViews(assembled.TaxSummary),
		Totals:   buildTotalsView(&assembled.Invoice),
	}, nil
}

func buildSellerView(p *merchantdomain.Profile) render.SellerView {
	return render.SellerView{
		LegalName:     p.LegalName,
		TradingName:   p.TradingName,
		GSTIN:         p.GSTIN,
		AddressLines:  addressLines(p.AddressLine1, p.AddressLine2, p.City, p.PinCode),
		StateName:     p.StateName,
		StateCode:     p.StateCode,
		Phone:         p.Phone,
		Email:         p.Email,
		BankName:      p.BankName,
		BankAccountNo: p.BankAccountNo,
		BankIFSC:      p.BankIFSC,
		SignatoryName: p.SignatoryName,
	}
}

func buildInvoiceView(inv *domain.Invoice, originalNumber string) render.InvoiceView {
	return render.InvoiceView{
		Number:          inv.InvoiceNumber,
		Date:            inv.InvoiceDate,
		IsCreditNote:    inv.IsCreditNote,
		OriginalNumber:  originalNumber,
		OrderNumber:     inv.OrderNumber,
		TransactionType: string(inv.TransactionType),
		PlaceOfSupply:   placeOfSupply(inv),
	}
}

func buildCustomerView(inv *domain.Invoice) render.CustomerView {
	shipping := inv.ShippingAddress
	return render.CustomerView{
		Name:  inv.CustomerName,
		Email: inv.CustomerEmail,
		Phone: inv.CustomerPhone,
		GSTIN: inv.CustomerGSTIN,
		AddressLines: addressLines(
			jsonString(shipping, "address1"),
			jsonString(shipping, "address2"),
			jsonString(shipping, "city"),
			jsonString(shipping, "province")+" "+jsonString(shipping, "zip"),
		),
	}
}

func buildLineViews(lines []domain.InvoiceLineItem) []render.LineView {
	views := make([]render.LineView, 0, len(lines))
	for _, line := range lines {
		views = append(views, render.LineView{
			Title:        line.Title,
			SKU:          line.SKU,
			HSNCode:      line.HSNCode,
			Quantity:     line.Quantity,
			UnitPrice:    line.UnitPrice,
			Discount:     line.Discount,
			TaxableValue: line.TaxableValue,
			GSTRate:      line.GSTRate,
			CGST:         line.CGST,
			SGST:         line.SGST,
			IGST:         line.IGST,
			TotalAmount:  line.TotalAmount,
		})
	}
	return views
}

func buildSummaryViews(rows []gst.TaxSummaryRow) []render.SummaryView {
	views := make([]render.SummaryView, 0, len(rows))
	for _, row := range rows {
		views = append(views, render.SummaryView{
			GSTRate:      row.GSTRate,
			TaxableValue: row.TaxableValue,
			CGST:         row.CGST,
			SGST:         row.SGST,
			IGST:         row.IGST,
			TotalTax:     row.TotalTax,
		})
	}
	return views
}

func buildTotalsView(inv *domain.Invoice) render.TotalsView {
	return render.TotalsView{
		Subtotal:       inv.Subtotal,
		TotalCGST:      inv.TotalCGST,
		TotalSGST:      inv.TotalSGST,
		TotalIGST:      inv.TotalIGST,
		ShippingCharge: inv.ShippingCharge,
		ShippingTax:    inv.ShippingTax,
		DiscountAmount: inv.DiscountAmount,
		RoundOff:       inv.RoundOff,
		GrandTotal:     inv.GrandTotal,
		AmountInWords:  format.AmountInWords(inv.GrandTotal),
		IntraState:     inv.TransactionType == gst.IntraState,
	}
}

func placeOfSupply(inv *domain.Invoice) string {
	province := jsonString(inv.ShippingAddress, "province")
	if province == "" {
		province = jsonString(inv.BillingAddress, "province")
	}
	if inv.BuyerStateCode != gst.UnknownStateCode {
		return province + " (" + inv.BuyerStateCode + ")"
	}
	return province
}

func addressLines(lines ...string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func jsonString(data map[string]any, key string) string {
	if data == nil {
		return ""
	}
	value, ok := data[key]
	if !ok {
		return ""
	}
	s, ok := value.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
