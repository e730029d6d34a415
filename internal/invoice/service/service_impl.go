package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/bharatstack/gstbill/internal/clock"
	"github.com/bharatstack/gstbill/internal/gst"
	hsndomain "github.com/bharatstack/gstbill/internal/hsn/domain"
	"github.com/bharatstack/gstbill/internal/invoice/domain"
	"github.com/bharatstack/gstbill/internal/invoice/render"
	merchantdomain "github.com/bharatstack/gstbill/internal/merchant/domain"
	"github.com/bharatstack/gstbill/internal/merchantctx"
	"github.com/bharatstack/gstbill/internal/metrics"
	"github.com/bharatstack/gstbill/internal/providers/pdf"
	"github.com/bharatstack/gstbill/internal/ratelimit"
	sequencedomain "github.com/bharatstack/gstbill/internal/sequence/domain"
	warehousedomain "github.com/bharatstack/gstbill/internal/warehouse/domain"
	"github.com/bharatstack/gstbill/pkg/db"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       domain.Repository
	Merchants  merchantdomain.Service
	Warehouses warehousedomain.Service
	HSN        hsndomain.Service
	Sequences  sequencedomain.Service
	Renderer   render.Renderer
	PDF        pdf.Provider
	Guard      *ratelimit.IssuanceGuard `optional:"true"`
	Metrics    *metrics.Metrics
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	repo       domain.Repository
	genID      *snowflake.Node
	clock      clock.Clock
	merchants  merchantdomain.Service
	warehouses warehousedomain.Service
	hsn        hsndomain.Service
	sequences  sequencedomain.Service
	renderer   render.Renderer
	pdf        pdf.Provider
	guard      *ratelimit.IssuanceGuard
	metrics    *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("invoice.service"),
		repo:       p.Repo,
		genID:      p.GenID,
		clock:      p.Clock,
		merchants:  p.Merchants,
		warehouses: p.Warehouses,
		hsn:        p.HSN,
		sequences:  p.Sequences,
		renderer:   p.Renderer,
		pdf:        p.PDF,
		guard:      p.Guard,
		metrics:    p.Metrics,
	}
}

func (s *Service) Generate(ctx context.Context, req domain.GenerateRequest) (*domain.Assembled, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	order := req.Order
	if strings.TrimSpace(order.ID) == "" || len(order.LineItems) == 0 {
		s.metrics.RecordGenerateFailure("invalid_order")
		return nil, domain.ErrInvalidOrder
	}

	if s.guard.Enabled() {
		allowed, err := s.guard.AllowMerchant(ctx, merchantID.Int64())
		if err != nil {
			// Redis being down should not stop invoicing.
			s.log.Warn("issuance rate check failed", zap.Error(err))
		} else if !allowed {
			s.metrics.RecordGenerateFailure("rate_limited")
			return nil, domain.ErrRateLimited
		}

		token, locked, err := s.guard.LockOrder(ctx, merchantID.Int64(), order.ID)
		if err != nil {
			s.log.Warn("issuance lock failed", zap.Error(err))
		} else if !locked {
			return nil, domain.ErrIssuanceInFlight
		} else {
			defer func() {
				if err := s.guard.ReleaseOrder(ctx, merchantID.Int64(), order.ID, token); err != nil {
					s.log.Warn("issuance lock release failed", zap.Error(err))
				}
			}()
		}
	}

	// A missing profile is a configuration error, never silently
	// defaulted: the profile carries the GSTIN and seller state that make
	// the document a tax invoice at all.
	profile, err := s.merchants.Get(ctx)
	if err != nil {
		s.metrics.RecordGenerateFailure("profile")
		return nil, err
	}

	warehouse, err := s.pickWarehouse(ctx, req.WarehouseID)
	if err != nil {
		s.metrics.RecordGenerateFailure("warehouse")
		return nil, err
	}

	sellerState := profile.StateName
	sellerCode := profile.StateCode
	var warehouseID *int64
	if warehouse != nil {
		sellerState = warehouse.StateName
		sellerCode = warehouse.StateCode
		warehouseID = &warehouse.ID
	}

	buyerState := strings.TrimSpace(order.ShippingAddress.Province)
	if buyerState == "" {
		buyerState = strings.TrimSpace(order.BillingAddress.Province)
	}

	txType, err := gst.DetermineTransactionType(sellerState, buyerState)
	if err != nil {
		s.metrics.RecordGenerateFailure("jurisdiction")
		return nil, err
	}

	resolver, err := s.hsn.ResolverForMerchant(ctx)
	if err != nil {
		return nil, err
	}
	fallback := hsndomain.Resolution{
		HSNCode: profile.DefaultHSNCode,
		GSTRate: profile.DefaultGSTRate,
	}

	lineResults := make([]gst.LineResult, 0, len(order.LineItems))
	for _, line := range order.LineItems {
		unitPrice, err := parseAmount(line.Price)
		if err != nil {
			s.metrics.RecordGenerateFailure("invalid_order")
			return nil, domain.ErrInvalidOrder
		}
		discount, err := parseOptionalAmount(line.TotalDiscount)
		if err != nil {
			s.metrics.RecordGenerateFailure("invalid_order")
			return nil, domain.ErrInvalidOrder
		}
		if line.Quantity <= 0 {
			s.metrics.RecordGenerateFailure("invalid_order")
			return nil, domain.ErrInvalidOrder
		}

		resolution := resolver.Resolve(line.ProductID, line.CollectionIDs, fallback)
		lineResults = append(lineResults, gst.CalculateLineItem(gst.LineItem{
			ProductID: line.ProductID,
			VariantID: line.VariantID,
			Title:     line.Title,
			SKU:       line.SKU,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
			Discount:  discount,
		}, resolution.GSTRate, resolution.HSNCode, txType, profile.PriceIncludesTax))
	}

	shippingCharge := decimal.Zero
	for _, sl := range order.ShippingLines {
		price, err := parseOptionalAmount(sl.Price)
		if err != nil {
			s.metrics.RecordGenerateFailure("invalid_order")
			return nil, domain.ErrInvalidOrder
		}
		shippingCharge = shippingCharge.Add(price)
	}
	shipping := gst.CalculateShipping(shippingCharge, txType, profile.PriceIncludesTax)

	discountAmount := decimal.Zero
	for _, dc := range order.DiscountCodes {
		amount, err := parseOptionalAmount(dc.Amount)
		if err != nil {
			s.metrics.RecordGenerateFailure("invalid_order")
			return nil, domain.ErrInvalidOrder
		}
		discountAmount = discountAmount.Add(amount)
	}

	totals := gst.CalculateTotals(lineResults, shipping, shippingCharge, discountAmount)
	summary := gst.SummarizeByRate(lineResults)
	report := gst.Validate(lineResults, totals)

	now := s.clock.Now()
	inv := &domain.Invoice{
		ID:               s.genID.Generate().Int64(),
		MerchantID:       merchantID.Int64(),
		Status:           domain.InvoiceStatusIssued,
		OrderID:          strings.TrimSpace(order.ID),
		OrderNumber:      strings.TrimSpace(order.Number),
		InvoiceDate:      now,
		CustomerName:     customerName(order),
		CustomerEmail:    strings.TrimSpace(order.Customer.Email),
		CustomerPhone:    strings.TrimSpace(order.Customer.Phone),
		CustomerGSTIN:    strings.ToUpper(strings.TrimSpace(order.Customer.GSTIN)),
		BillingAddress:   addressMap(order.BillingAddress),
		ShippingAddress:  addressMap(order.ShippingAddress),
		WarehouseID:      warehouseID,
		SellerStateCode:  sellerCode,
		BuyerStateCode:   gst.StateCode(buyerState),
		TransactionType:  txType,
		PriceIncludesTax: profile.PriceIncludesTax,
		Subtotal:         totals.Subtotal,
		TotalCGST:        totals.TotalCGST,
		TotalSGST:        totals.TotalSGST,
		TotalIGST:        totals.TotalIGST,
		ShippingCharge:   totals.ShippingCharge,
		ShippingTax:      totals.ShippingTax,
		ShippingHSN:      shipping.HSNCode,
		DiscountAmount:   totals.DiscountAmount,
		RoundOff:         totals.RoundOff,
		GrandTotal:       totals.GrandTotal,
		Valid:            report.Valid,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if len(report.Problems) > 0 {
		if raw, err := json.Marshal(report.Problems); err == nil {
			inv.ValidationProblems = datatypes.JSON(raw)
		}
	}

	lines := s.buildLines(inv, lineResults, now)

	err = s.db.Transaction(func(tx *gorm.DB) error {
		existing, err := s.repo.FindActiveByOrder(ctx, tx, merchantID.Int64(), inv.OrderID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrAlreadyInvoiced
		}

		// Numbering happens inside the invoice transaction so a failed
		// insert never burns a sequence number.
		number, err := s.sequences.NextInTx(ctx, tx)
		if err != nil {
			return err
		}
		inv.InvoiceNumber = number

		if err := s.repo.Create(ctx, tx, inv); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrAlreadyInvoiced
			}
			return err
		}
		return s.repo.CreateLines(ctx, tx, lines)
	})
	if err != nil {
		if err == domain.ErrAlreadyInvoiced {
			s.metrics.RecordGenerateFailure("already_invoiced")
		}
		return nil, err
	}

	s.metrics.RecordInvoiceIssued(string(txType))
	if !report.Valid {
		s.metrics.RecordInvoiceFlagged()
		s.log.Warn("invoice issued with validation problems",
			zap.String("invoice_number", inv.InvoiceNumber),
			zap.Strings("problems", report.Problems),
		)
	}
	s.log.Info("invoice issued",
		zap.String("invoice_number", inv.InvoiceNumber),
		zap.String("order_id", inv.OrderID),
		zap.String("transaction_type", string(txType)),
		zap.String("grand_total", inv.GrandTotal.String()),
	)

	return &domain.Assembled{
		Invoice:    *inv,
		Lines:      lines,
		TaxSummary: summary,
		Report:     report,
	}, nil
}

func (s *Service) GenerateCreditNote(ctx context.Context, invoiceID string) (*domain.Assembled, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	id, err := snowflake.ParseString(strings.TrimSpace(invoiceID))
	if err != nil {
		return nil, domain.ErrInvoiceNotFound
	}

	var note *domain.Invoice
	var noteLines []domain.InvoiceLineItem

	err = s.db.Transaction(func(tx *gorm.DB) error {
		original, err := s.repo.FindByID(ctx, tx, merchantID.Int64(), id.Int64())
		if err != nil {
			return err
		}
		if original == nil {
			return domain.ErrInvoiceNotFound
		}
		if original.IsCreditNote {
			return domain.ErrNotCreditable
		}
		if original.Status == domain.InvoiceStatusCancelled {
			return domain.ErrInvoiceCancelled
		}

		existing, err := s.repo.FindByOriginal(ctx, tx, merchantID.Int64(), original.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrCreditNoteExists
		}

		originalLines, err := s.repo.FindLines(ctx, tx, merchantID.Int64(), original.ID)
		if err != nil {
			return err
		}

		now := s.clock.Now()
		originalID := original.ID

		n := *original
		n.ID = s.genID.Generate().Int64()
		// The credit note number is derived from the invoice number, not
		// drawn from the sequence.
		n.InvoiceNumber = sequencedomain.CreditNoteNumber(original.InvoiceNumber)
		n.IsCreditNote = true
		n.OriginalInvoiceID = &originalID
		n.InvoiceDate = now
		n.Subtotal = original.Subtotal.Neg()
		n.TotalCGST = original.TotalCGST.Neg()
		n.TotalSGST = original.TotalSGST.Neg()
		n.TotalIGST = original.TotalIGST.Neg()
		n.ShippingCharge = original.ShippingCharge.Neg()
		n.ShippingTax = original.ShippingTax.Neg()
		n.DiscountAmount = original.DiscountAmount.Neg()
		n.RoundOff = original.RoundOff.Neg()
		n.GrandTotal = original.GrandTotal.Neg()
		n.CreatedAt = now
		n.UpdatedAt = now

		lines := make([]domain.InvoiceLineItem, 0, len(originalLines))
		for _, line := range originalLines {
			l := line
			l.ID = s.genID.Generate().Int64()
			l.InvoiceID = n.ID
			l.TaxableValue = line.TaxableValue.Neg()
			l.CGST = line.CGST.Neg()
			l.SGST = line.SGST.Neg()
			l.IGST = line.IGST.Neg()
			l.TotalTax = line.TotalTax.Neg()
			l.TotalAmount = line.TotalAmount.Neg()
			l.CreatedAt = now
			lines = append(lines, l)
		}

		if err := s.repo.Create(ctx, tx, &n); err != nil {
			if db.IsDuplicateKeyErr(err) {
				return domain.ErrCreditNoteExists
			}
			return err
		}
		if err := s.repo.CreateLines(ctx, tx, lines); err != nil {
			return err
		}

		note = &n
		noteLines = lines
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordCreditNoteIssued()
	s.log.Info("credit note issued",
		zap.String("credit_note_number", note.InvoiceNumber),
		zap.Int64("original_invoice_id", *note.OriginalInvoiceID),
	)

	report := gst.Report{Valid: note.Valid}
	if len(note.ValidationProblems) > 0 {
		_ = json.Unmarshal(note.ValidationProblems, &report.Problems)
	}

	return &domain.Assembled{
		Invoice:    *note,
		Lines:      noteLines,
		TaxSummary: summarizeLines(noteLines),
		Report:     report,
	}, nil
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Invoice, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}
	return s.repo.FindAll(ctx, s.db, merchantID.Int64(), req)
}

func (s *Service) Get(ctx context.Context, id string) (*domain.Assembled, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvoiceNotFound
	}

	inv, err := s.repo.FindByID(ctx, s.db, merchantID.Int64(), invoiceID.Int64())
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrInvoiceNotFound
	}

	lines, err := s.repo.FindLines(ctx, s.db, merchantID.Int64(), inv.ID)
	if err != nil {
		return nil, err
	}

	report := gst.Report{Valid: inv.Valid}
	if len(inv.ValidationProblems) > 0 {
		_ = json.Unmarshal(inv.ValidationProblems, &report.Problems)
	}

	return &domain.Assembled{
		Invoice:    *inv,
		Lines:      lines,
		TaxSummary: summarizeLines(lines),
		Report:     report,
	}, nil
}

func (s *Service) Cancel(ctx context.Context, id string) (*domain.Invoice, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	invoiceID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil {
		return nil, domain.ErrInvoiceNotFound
	}

	inv, err := s.repo.FindByID(ctx, s.db, merchantID.Int64(), invoiceID.Int64())
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, domain.ErrInvoiceNotFound
	}
	if inv.Status == domain.InvoiceStatusCancelled {
		return nil, domain.ErrInvoiceCancelled
	}

	if err := s.repo.UpdateStatus(ctx, s.db, merchantID.Int64(), inv.ID, domain.InvoiceStatusCancelled); err != nil {
		return nil, err
	}
	inv.Status = domain.InvoiceStatusCancelled
	return inv, nil
}

func (s *Service) Stats(ctx context.Context) (*domain.Stats, error) {
	merchantID, ok := merchantctx.MerchantIDFromContext(ctx)
	if !ok || merchantID == 0 {
		return nil, domain.ErrInvalidMerchant
	}

	invoices, err := s.repo.Count(ctx, s.db, merchantID.Int64(), false)
	if err != nil {
		return nil, err
	}
	creditNotes, err := s.repo.Count(ctx, s.db, merchantID.Int64(), true)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	thisMonth, err := s.repo.CountSince(ctx, s.db, merchantID.Int64(), monthStart)
	if err != nil {
		return nil, err
	}

	preview, err := s.sequences.Peek(ctx)
	if err != nil {
		return nil, err
	}

	return &domain.Stats{
		TotalInvoices:    invoices,
		TotalCreditNotes: creditNotes,
		IssuedThisMonth:  thisMonth,
		CurrentSequence:  preview.CurrentSequence,
		NextNumber:       preview.NextNumber,
		CurrentFY:        preview.FiscalYear,
	}, nil
}

func (s *Service) pickWarehouse(ctx context.Context, override *string) (*warehousedomain.Warehouse, error) {
	if override != nil && strings.TrimSpace(*override) != "" {
		return s.warehouses.Get(ctx, *override)
	}
	return s.warehouses.Default(ctx)
}

func (s *Service) buildLines(inv *domain.Invoice, results []gst.LineResult, now time.Time) []domain.InvoiceLineItem {
	lines := make([]domain.InvoiceLineItem, 0, len(results))
	for _, r := range results {
		lines = append(lines, domain.InvoiceLineItem{
			ID:           s.genID.Generate().Int64(),
			MerchantID:   inv.MerchantID,
			InvoiceID:    inv.ID,
			ProductID:    r.ProductID,
			VariantID:    r.VariantID,
			Title:        r.Title,
			SKU:          r.SKU,
			Quantity:     r.Quantity,
			UnitPrice:    r.UnitPrice,
			Discount:     r.Discount,
			HSNCode:      r.HSNCode,
			GSTRate:      r.GSTRate,
			TaxableValue: r.TaxableValue,
			CGST:         r.CGST,
			SGST:         r.SGST,
			IGST:         r.IGST,
			TotalTax:     r.TotalTax,
			TotalAmount:  r.TotalAmount,
			CreatedAt:    now,
		})
	}
	return lines
}

// summarizeLines rebuilds the rate-wise summary from persisted lines by
// mapping them back through the calculator's aggregation.
func summarizeLines(lines []domain.InvoiceLineItem) []gst.TaxSummaryRow {
	results := make([]gst.LineResult, 0, len(lines))
	for _, line := range lines {
		results = append(results, gst.LineResult{
			Calculation: gst.Calculation{
				TaxableValue: line.TaxableValue,
				CGST:         line.CGST,
				SGST:         line.SGST,
				IGST:         line.IGST,
				TotalTax:     line.TotalTax,
				GSTRate:      line.GSTRate,
				HSNCode:      line.HSNCode,
			},
		})
	}
	return gst.SummarizeByRate(results)
}

func customerName(order domain.Order) string {
	name := strings.TrimSpace(strings.TrimSpace(order.Customer.FirstName) + " " + strings.TrimSpace(order.Customer.LastName))
	if name == "" {
		name = strings.TrimSpace(order.ShippingAddress.Name)
	}
	return name
}

func addressMap(a domain.OrderAddress) datatypes.JSONMap {
	return datatypes.JSONMap{
		"name":     a.Name,
		"address1": a.Address1,
		"address2": a.Address2,
		"city":     a.City,
		"province": a.Province,
		"zip":      a.Zip,
		"country":  a.Country,
		"phone":    a.Phone,
	}
}

func parseAmount(value string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(value))
}

// parseOptionalAmount treats an empty string as zero.
func parseOptionalAmount(value string) (decimal.Decimal, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(trimmed)
}
