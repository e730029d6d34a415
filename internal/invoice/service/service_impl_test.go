package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/bharatstack/gstbill/internal/clock"
	"github.com/bharatstack/gstbill/internal/config"
	"github.com/bharatstack/gstbill/internal/gst"
	hsndomain "github.com/bharatstack/gstbill/internal/hsn/domain"
	hsnrepository "github.com/bharatstack/gstbill/internal/hsn/repository"
	hsnservice "github.com/bharatstack/gstbill/internal/hsn/service"
	"github.com/bharatstack/gstbill/internal/invoice/domain"
	"github.com/bharatstack/gstbill/internal/invoice/render"
	"github.com/bharatstack/gstbill/internal/invoice/repository"
	merchantdomain "github.com/bharatstack/gstbill/internal/merchant/domain"
	merchantrepository "github.com/bharatstack/gstbill/internal/merchant/repository"
	merchantservice "github.com/bharatstack/gstbill/internal/merchant/service"
	"github.com/bharatstack/gstbill/internal/merchantctx"
	"github.com/bharatstack/gstbill/internal/providers/pdf"
	sequencedomain "github.com/bharatstack/gstbill/internal/sequence/domain"
	sequencerepository "github.com/bharatstack/gstbill/internal/sequence/repository"
	sequenceservice "github.com/bharatstack/gstbill/internal/sequence/service"
	warehousedomain "github.com/bharatstack/gstbill/internal/warehouse/domain"
	warehouserepository "github.com/bharatstack/gstbill/internal/warehouse/repository"
	warehouseservice "github.com/bharatstack/gstbill/internal/warehouse/service"
)

type fixture struct {
	svc        domain.Service
	merchants  merchantdomain.Service
	warehouses warehousedomain.Service
	hsn        hsndomain.Service
	clock      *clock.FakeClock
	ctx        context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&domain.Invoice{},
		&domain.InvoiceLineItem{},
		&merchantdomain.Profile{},
		&warehousedomain.Warehouse{},
		&hsndomain.Mapping{},
		&sequencedomain.SequenceState{},
	))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	log := zap.NewNop()
	fake := clock.NewFakeClock(time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC))

	merchants := merchantservice.New(merchantservice.Params{
		DB:        db,
		Log:       log,
		GenID:     node,
		Repo:      merchantrepository.Provide(),
		Invoicing: config.NewStaticInvoicingConfigHolder(config.DefaultInvoicingConfig()),
	})
	warehouses := warehouseservice.New(warehouseservice.Params{
		DB:    db,
		Log:   log,
		GenID: node,
		Repo:  warehouserepository.Provide(),
	})
	hsnSvc := hsnservice.New(hsnservice.Params{
		DB:    db,
		Log:   log,
		GenID: node,
		Repo:  hsnrepository.Provide(),
	})
	sequences := sequenceservice.New(sequenceservice.Params{
		DB:    db,
		Log:   log,
		GenID: node,
		Clock: fake,
		Repo:  sequencerepository.Provide(),
	})

	svc := New(Params{
		DB:         db,
		Log:        log,
		GenID:      node,
		Clock:      fake,
		Repo:       repository.Provide(),
		Merchants:  merchants,
		Warehouses: warehouses,
		HSN:        hsnSvc,
		Sequences:  sequences,
		Renderer:   render.NewRenderer(),
		PDF:        pdf.New(),
		Metrics:    nil,
	})

	ctx := merchantctx.WithMerchantID(context.Background(), node.Generate())
	return &fixture{
		svc:        svc,
		merchants:  merchants,
		warehouses: warehouses,
		hsn:        hsnSvc,
		clock:      fake,
		ctx:        ctx,
	}
}

func (f *fixture) seedProfile(t *testing.T) {
	t.Helper()
	_, err := f.merchants.Upsert(f.ctx, merchantdomain.UpsertRequest{
		LegalName:     "Acme Traders Pvt Ltd",
		GSTIN:         "29ABCDE1234F1Z5",
		StateName:     "Karnataka",
		AddressLine1:  "14 MG Road",
		City:          "Bengaluru",
		PinCode:       "560001",
		BankName:      "HDFC Bank",
		BankAccountNo: "50100123456789",
		BankIFSC:      "HDFC0000123",
		SignatoryName: "A. Kumar",
	})
	require.NoError(t, err)
}

func sampleOrder(province string) domain.Order {
	return domain.Order{
		ID:     "ord-1001",
		Number: "#1001",
		Customer: domain.OrderCustomer{
			FirstName: "Priya",
			LastName:  "Sharma",
			Email:     "priya@example.com",
		},
		ShippingAddress: domain.OrderAddress{
			Address1: "22 Residency Road",
			City:     "Bengaluru",
			Province: province,
			Zip:      "560025",
			Country:  "India",
		},
		BillingAddress: domain.OrderAddress{Province: province},
		LineItems: []domain.OrderLineItem{
			{
				ProductID: "prod-1",
				Title:     "Cotton Kurta",
				SKU:       "KUR-01",
				Quantity:  2,
				Price:     "118.00",
			},
		},
		ShippingLines: []domain.ShippingLine{{Price: "59.00"}},
	}
}

func TestGenerateIntraStateInvoice(t *testing.T) {
	f := newFixture(t)
	f.seedProfile(t)

	assembled, err := f.svc.Generate(f.ctx, domain.GenerateRequest{Order: sampleOrder("Karnataka")})
	require.NoError(t, err)

	inv := assembled.Invoice
	assert.Equal(t, "INV-2024-25-06-00001", inv.InvoiceNumber)
	assert.Equal(t, gst.IntraState, inv.TransactionType)
	assert.Equal(t, "29", inv.SellerStateCode)
	assert.Equal(t, "29", inv.BuyerStateCode)

	// 2 x 118.00 inclusive of 18%: taxable 200, CGST 18, SGST 18.
	// Shipping 59.00 inclusive: taxable 50, 4.50 per side, tax 9.00.
	assert.Equal(t, "200.00", inv.Subtotal.StringFixed(2))
	assert.Equal(t, "22.50", inv.TotalCGST.StringFixed(2))
	assert.Equal(t, "22.50", inv.TotalSGST.StringFixed(2))
	assert.Equal(t, "0.00", inv.TotalIGST.StringFixed(2))
	assert.Equal(t, "59.00", inv.ShippingCharge.StringFixed(2))
	assert.Equal(t, "9.00", inv.ShippingTax.StringFixed(2))
	assert.Equal(t, gst.FreightHSNCode, inv.ShippingHSN)
	assert.Equal(t, "304", inv.GrandTotal.String())
	assert.Equal(t, "0.00", inv.RoundOff.StringFixed(2))
	assert.True(t, inv.Valid)

	require.Len(t, assembled.Lines, 1)
	line := assembled.Lines[0]
	assert.Equal(t, "200.00", line.TaxableValue.StringFixed(2))
	assert.Equal(t, "18.00", line.CGST.StringFixed(2))
	assert.Equal(t, "99999", line.HSNCode)
	assert.Equal(t, "236.00", line.TotalAmount.StringFixed(2))

	require.Len(t, assembled.TaxSummary, 1)
	assert.Equal(t, "18", assembled.TaxSummary[0].GSTRate.String())
}

func TestGenerateIsIdempotentPerOrder(t *testing.T) {
	f := newFixture(t)
	f.seedProfile(t)

	_, err := f.svc.Generate(f.ctx, domain.GenerateRequest{Order: sampleOrder("Karnataka")})
	require.NoError(t, err)

	_, err = f.svc.Generate(f.ctx, domain.GenerateRequest{Order: sampleOrder("Karnataka")})
	assert.ErrorIs(t, err, domain.ErrAlreadyInvoiced)
}

func TestGenerateInterStateViaWarehouse(t *testing.T) {
	f := newFixture(t)
	f.seedProfile(t)

	// Default warehouse dispatches from Maharashtra; the buyer is in
	// Karnataka, so the supply is inter-state even though the merchant
	// is registered in Karnataka.
	_, err := f.warehouses.Create(f.ctx, warehousedomain.UpsertRequest{
		Name:      "Mumbai DC",
		StateName: "Maharashtra",
	})
	require.NoError(t, err)

	assembled, err := f.svc.Generate(f.ctx, domain.GenerateRequest{Order: sampleOrder("Karnataka")})
	require.NoError(t, err)

	inv := assembled.Invoice
	assert.Equal(t, gst.InterState, inv.TransactionType)
	assert.Equal(t, "27", inv.SellerStateCode)
	assert.Equal(t, "0.00", inv.TotalCGST.StringFixed(2))
	assert.Equal(t, "45.00", inv.TotalIGST.StringFixed(2))
	assert.NotNil(t, inv.WarehouseID)
}

func TestGenerateUsesHSNMapping(t *testing.T) {
	f := newFixture(t)
	f.seedProfile(t)

	productID := "prod-1"
	_, err := f.hsn.Create(f.ctx, hsndomain.CreateRequest{
		ProductID: &productID,
		HSNCode:   "6109",
		GSTRate:   "5",
	})
	require.NoError(t, err)

	order := sampleOrder("Karnataka")
	order.LineItems[0].Price = "105.00"
	order.LineItems[0].Quantity = 1
	order.ShippingLines = nil

	assembled, err := f.svc.Generate(f.ctx, domain.GenerateRequest{Order: order})
	require.NoError(t, err)

	line := assembled.Lines[0]
	assert.Equal(t, "6109", line.HSNCode)
	assert.Equal(t, "5", line.GSTRate.String())
	assert.Equal(t, "100.00", line.TaxableValue.StringFixed(2))
	assert.Equal(t, "2.50", line.CGST.StringFixed(2))
}

func TestGenerateWithoutProfileFails(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Generate(f.ctx, domain.GenerateRequest{Order: sampleOrder("Karnataka")})
	assert.ErrorIs(t, err, merchantdomain.ErrProfileNotFound)
}

func TestGenerateRejectsEmptyOrder(t *testing.T) {
	f := newFixture(t)
	f.seedProfile(t)

	_, err := f.svc.Generate(f.ctx, domain.GenerateRequest{Order: domain.Order{ID: "ord-x"}})
	assert.ErrorIs(t, err, domain.ErrInvalidOrder)
}

func TestGenerateUnknownBuyerState(t *testing.T) {
	f := newFixture(t)
	f.seedProfile(t)

	_, err := f.svc.Generate(f.ctx, domain.GenerateRequest{Order: sampleOrder("Atlantis")})
	assert.ErrorIs(t, err, gst.ErrUnknownState)
}

func TestGenerateCreditNote(t *testing.T) {
	f := newFixture(t)
	f.seedProfile(t)

	assembled, err := f.svc.Generate(f.ctx, domain.GenerateRequest{Order: sampleOrder("Karnataka")})
	require.NoError(t, err)
	invoiceID := snowflake.ID(assembled.Invoice.ID).String()

	note, err := f.svc.GenerateCreditNote(f.ctx, invoiceID)
	require.NoError(t, err)

	assert.Equal(t, "CN-2024-25-06-00001", note.Invoice.InvoiceNumber)
	assert.True(t, note.Invoice.IsCreditNote)
	require.NotNil(t, note.Invoice.OriginalInvoiceID)
	assert.Equal(t, assembled.Invoice.ID, *note.Invoice.OriginalInvoiceID)
	assert.Equal(t, "-304", note.Invoice.GrandTotal.String())

	require.Len(t, note.Lines, 1)
	assert.Equal(t, "-200.00", note.Lines[0].TaxableValue.StringFixed(2))

	// Only one credit note per invoice.
	_, err = f.svc.GenerateCreditNote(f.ctx, invoiceID)
	assert.ErrorIs(t, err, domain.ErrCreditNoteExists)

	// A credit note cannot itself be credited.
	_, err = f.svc.GenerateCreditNote(f.ctx, snowflake.ID(note.Invoice.ID).String())
	assert.ErrorIs(t, err, domain.ErrNotCreditable)
}

func TestStats(t *testing.T) {
	f := newFixture(t)
	f.seedProfile(t)

	assembled, err := f.svc.Generate(f.ctx, domain.GenerateRequest{Order: sampleOrder("Karnataka")})
	require.NoError(t, err)
	_, err = f.svc.GenerateCreditNote(f.ctx, snowflake.ID(assembled.Invoice.ID).String())
	require.NoError(t, err)

	stats, err := f.svc.Stats(f.ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.TotalInvoices)
	assert.Equal(t, int64(1), stats.TotalCreditNotes)
	assert.Equal(t, int64(1), stats.CurrentSequence)
	assert.Equal(t, "INV-2024-25-06-00002", stats.NextNumber)
	assert.Equal(t, "2024-25", stats.CurrentFY)
}

func TestRenderInvoice(t *testing.T) {
	f := newFixture(t)
	f.seedProfile(t)

	assembled, err := f.svc.Generate(f.ctx, domain.GenerateRequest{Order: sampleOrder("Karnataka")})
	require.NoError(t, err)

	html, err := f.svc.RenderInvoice(f.ctx, snowflake.ID(assembled.Invoice.ID).String())
	require.NoError(t, err)

	assert.Contains(t, html, "Tax Invoice")
	assert.Contains(t, html, "INV-2024-25-06-00001")
	assert.Contains(t, html, "29ABCDE1234F1Z5")
	assert.Contains(t, html, "₹304.00")
	assert.Contains(t, html, "RUPEES THREE HUNDRED AND FOUR ONLY")

	pdfBytes, err := f.svc.RenderInvoicePDF(f.ctx, snowflake.ID(assembled.Invoice.ID).String())
	require.NoError(t, err)
	assert.True(t, len(pdfBytes) > 0)

	label, err := f.svc.RenderShippingLabel(f.ctx, snowflake.ID(assembled.Invoice.ID).String())
	require.NoError(t, err)
	assert.True(t, len(label) > 0)
}

func TestCancelInvoice(t *testing.T) {
	f := newFixture(t)
	f.seedProfile(t)

	assembled, err := f.svc.Generate(f.ctx, domain.GenerateRequest{Order: sampleOrder("Karnataka")})
	require.NoError(t, err)
	invoiceID := snowflake.ID(assembled.Invoice.ID).String()

	cancelled, err := f.svc.Cancel(f.ctx, invoiceID)
	require.NoError(t, err)
	assert.Equal(t, domain.InvoiceStatusCancelled, cancelled.Status)

	_, err = f.svc.Cancel(f.ctx, invoiceID)
	assert.ErrorIs(t, err, domain.ErrInvoiceCancelled)

	// Cancelling frees the order for a fresh invoice.
	regenerated, err := f.svc.Generate(f.ctx, domain.GenerateRequest{Order: sampleOrder("Karnataka")})
	require.NoError(t, err)
	assert.Equal(t, "INV-2024-25-06-00002", regenerated.Invoice.InvoiceNumber)
}
