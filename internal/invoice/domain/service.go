package domain

import (
	"context"
	"errors"

	"github.com/bharatstack/gstbill/internal/gst"
)

type Service interface {
	// Generate assembles, numbers, and persists the invoice for an order
	// in one transaction. Generating twice for the same order fails with
	// ErrAlreadyInvoiced.
	Generate(ctx context.Context, req GenerateRequest) (*Assembled, error)

	// GenerateCreditNote issues a full reversal of an existing invoice.
	GenerateCreditNote(ctx context.Context, invoiceID string) (*Assembled, error)

	// RenderInvoice renders the stored invoice as a printable HTML
	// document using the merchant's current profile details.
	RenderInvoice(ctx context.Context, id string) (string, error)

	// RenderInvoicePDF renders the same document as a PDF.
	RenderInvoicePDF(ctx context.Context, id string) ([]byte, error)

	// RenderShippingLabel produces a parcel label PDF for the order the
	// invoice covers.
	RenderShippingLabel(ctx context.Context, id string) ([]byte, error)

	List(ctx context.Context, req ListRequest) ([]Invoice, error)
	Get(ctx context.Context, id string) (*Assembled, error)
	Cancel(ctx context.Context, id string) (*Invoice, error)
	Stats(ctx context.Context) (*Stats, error)
}

type GenerateRequest struct {
	Order       Order   `json:"order"`
	WarehouseID *string `json:"warehouse_id"`
}

type ListRequest struct {
	IsCreditNote *bool
	Status       string
	SortBy       string
	OrderBy      string
	Limit        int
}

// Assembled is an invoice with its lines and the derived views that are
// not persisted: the rate-wise tax summary and the advisory validation
// report.
type Assembled struct {
	Invoice    Invoice            `json:"invoice"`
	Lines      []InvoiceLineItem  `json:"lines"`
	TaxSummary []gst.TaxSummaryRow `json:"tax_summary"`
	Report     gst.Report         `json:"report"`
}

// Stats summarizes a merchant's invoicing activity.
type Stats struct {
	TotalInvoices    int64  `json:"total_invoices"`
	TotalCreditNotes int64  `json:"total_credit_notes"`
	IssuedThisMonth  int64  `json:"issued_this_month"`
	CurrentSequence  int64  `json:"current_sequence"`
	NextNumber       string `json:"next_number"`
	CurrentFY        string `json:"current_fiscal_year"`
}

var (
	ErrInvalidMerchant   = errors.New("invalid_merchant")
	ErrInvalidOrder      = errors.New("invalid_order")
	ErrAlreadyInvoiced   = errors.New("order_already_invoiced")
	ErrInvoiceNotFound   = errors.New("invoice_not_found")
	ErrNotCreditable     = errors.New("invoice_not_creditable")
	ErrCreditNoteExists  = errors.New("credit_note_exists")
	ErrInvoiceCancelled  = errors.New("invoice_cancelled")
	ErrRateLimited       = errors.New("issuance_rate_limited")
	ErrIssuanceInFlight  = errors.New("issuance_in_flight")
)
