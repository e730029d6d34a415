// Package render turns an assembled invoice into a printable document.
package render

import (
	"time"

	"github.com/shopspring/decimal"
)

// Renderer renders an invoice view model to HTML.
type Renderer interface {
	RenderHTML(input RenderInput) (string, error)
}

// RenderInput is the full view model for one invoice document.
type RenderInput struct {
	Seller   SellerView
	Invoice  InvoiceView
	Customer CustomerView
	Lines    []LineView
	Summary  []SummaryView
	Totals   TotalsView
}

type SellerView struct {
	LegalName     string
	TradingName   string
	GSTIN         string
	AddressLines  []string
	StateName     string
	StateCode     string
	Phone         string
	Email         string
	BankName      string
	BankAccountNo string
	BankIFSC      string
	SignatoryName string
}

type InvoiceView struct {
	Number          string
	Date            time.Time
	IsCreditNote    bool
	OriginalNumber  string
	OrderNumber     string
	TransactionType string
	PlaceOfSupply   string
}

type CustomerView struct {
	Name         string
	Email        string
	Phone        string
	GSTIN        string
	AddressLines []string
}

type LineView struct {
	Title        string
	SKU          string
	HSNCode      string
	Quantity     int64
	UnitPrice    decimal.Decimal
	Discount     decimal.Decimal
	TaxableValue decimal.Decimal
	GSTRate      decimal.Decimal
	CGST         decimal.Decimal
	SGST         decimal.Decimal
	IGST         decimal.Decimal
	TotalAmount  decimal.Decimal
}

type SummaryView struct {
	GSTRate      decimal.Decimal
	TaxableValue decimal.Decimal
	CGST         decimal.Decimal
	SGST         decimal.Decimal
	IGST         decimal.Decimal
	TotalTax     decimal.Decimal
}

type TotalsView struct {
	Subtotal       decimal.Decimal
	TotalCGST      decimal.Decimal
	TotalSGST      decimal.Decimal
	TotalIGST      decimal.Decimal
	ShippingCharge decimal.Decimal
	ShippingTax    decimal.Decimal
	DiscountAmount decimal.Decimal
	RoundOff       decimal.Decimal
	GrandTotal     decimal.Decimal
	AmountInWords  string
	IntraState     bool
}
