// Package domain contains persistence models and contracts for invoicing.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"

	"github.com/bharatstack/gstbill/internal/gst"
)

// InvoiceStatus represents invoice lifecycle states.
type InvoiceStatus string

const (
	InvoiceStatusIssued    InvoiceStatus = "ISSUED"
	InvoiceStatusCancelled InvoiceStatus = "CANCELLED"
)

// Invoice is an issued tax invoice or credit note. The monetary columns
// are the reconciled totals at issue time; per line tax lives on
// InvoiceLineItem and the rate-wise summary is recomputed from those
// lines when rendering.
type Invoice struct {
	ID         int64 `json:"id" gorm:"primaryKey"`
	MerchantID int64 `json:"merchant_id" gorm:"column:merchant_id;not null;index;uniqueIndex:ux_invoices_merchant_number,priority:1"`

	InvoiceNumber string        `json:"invoice_number" gorm:"type:text;not null;uniqueIndex:ux_invoices_merchant_number,priority:2"`
	Status        InvoiceStatus `json:"status" gorm:"type:text;not null;default:'ISSUED'"`
	IsCreditNote  bool          `json:"is_credit_note" gorm:"not null;default:false"`
	// OriginalInvoiceID links a credit note back to the invoice it reverses.
	OriginalInvoiceID *int64 `json:"original_invoice_id,omitempty" gorm:"index"`

	OrderID     string    `json:"order_id" gorm:"type:text;not null;index"`
	OrderNumber string    `json:"order_number" gorm:"type:text"`
	InvoiceDate time.Time `json:"invoice_date" gorm:"not null"`

	CustomerName    string            `json:"customer_name" gorm:"type:text"`
	CustomerEmail   string            `json:"customer_email" gorm:"type:text"`
	CustomerPhone   string            `json:"customer_phone" gorm:"type:text"`
	CustomerGSTIN   string            `json:"customer_gstin" gorm:"type:text"`
	BillingAddress  datatypes.JSONMap `json:"billing_address" gorm:"type:jsonb"`
	ShippingAddress datatypes.JSONMap `json:"shipping_address" gorm:"type:jsonb"`

	WarehouseID     *int64              `json:"warehouse_id,omitempty" gorm:"index"`
	SellerStateCode string              `json:"seller_state_code" gorm:"type:text;not null"`
	BuyerStateCode  string              `json:"buyer_state_code" gorm:"type:text;not null"`
	TransactionType gst.TransactionType `json:"transaction_type" gorm:"type:text;not null"`

	PriceIncludesTax bool `json:"price_includes_tax" gorm:"not null;default:true"`

	Subtotal       decimal.Decimal `json:"subtotal" gorm:"type:numeric(14,2);not null"`
	TotalCGST      decimal.Decimal `json:"total_cgst" gorm:"column:total_cgst;type:numeric(14,2);not null"`
	TotalSGST      decimal.Decimal `json:"total_sgst" gorm:"column:total_sgst;type:numeric(14,2);not null"`
	TotalIGST      decimal.Decimal `json:"total_igst" gorm:"column:total_igst;type:numeric(14,2);not null"`
	ShippingCharge decimal.Decimal `json:"shipping_charge" gorm:"type:numeric(14,2);not null"`
	ShippingTax    decimal.Decimal `json:"shipping_tax" gorm:"type:numeric(14,2);not null"`
	ShippingHSN    string          `json:"shipping_hsn" gorm:"type:text"`
	DiscountAmount decimal.Decimal `json:"discount_amount" gorm:"type:numeric(14,2);not null"`
	RoundOff       decimal.Decimal `json:"round_off" gorm:"type:numeric(14,2);not null"`
	GrandTotal     decimal.Decimal `json:"grand_total" gorm:"type:numeric(14,2);not null"`

	Valid              bool           `json:"valid" gorm:"not null;default:true"`
	ValidationProblems datatypes.JSON `json:"validation_problems,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Invoice) TableName() string { return "invoices" }

// InvoiceLineItem is one order line with its tax breakdown frozen at
// issue time.
type InvoiceLineItem struct {
	ID         int64 `json:"id" gorm:"primaryKey"`
	MerchantID int64 `json:"merchant_id" gorm:"column:merchant_id;not null;index"`
	InvoiceID  int64 `json:"invoice_id" gorm:"not null;index"`

	ProductID string `json:"product_id" gorm:"type:text"`
	VariantID string `json:"variant_id" gorm:"type:text"`
	Title     string `json:"title" gorm:"type:text;not null"`
	SKU       string `json:"sku" gorm:"type:text"`

	Quantity  int64           `json:"quantity" gorm:"not null"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:numeric(14,2);not null"`
	Discount  decimal.Decimal `json:"discount" gorm:"type:numeric(14,2);not null"`

	HSNCode      string          `json:"hsn_code" gorm:"type:text;not null"`
	GSTRate      decimal.Decimal `json:"gst_rate" gorm:"type:numeric(5,2);not null"`
	TaxableValue decimal.Decimal `json:"taxable_value" gorm:"type:numeric(14,2);not null"`
	CGST         decimal.Decimal `json:"cgst" gorm:"column:cgst;type:numeric(14,2);not null"`
	SGST         decimal.Decimal `json:"sgst" gorm:"column:sgst;type:numeric(14,2);not null"`
	IGST         decimal.Decimal `json:"igst" gorm:"column:igst;type:numeric(14,2);not null"`
	TotalTax     decimal.Decimal `json:"total_tax" gorm:"type:numeric(14,2);not null"`
	TotalAmount  decimal.Decimal `json:"total_amount" gorm:"type:numeric(14,2);not null"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (InvoiceLineItem) TableName() string { return "invoice_line_items" }
