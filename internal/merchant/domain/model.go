// Package domain contains the merchant tax profile model and contracts.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Profile holds the seller-side details stamped on every invoice: legal
// identity, GSTIN, place of business, and per-merchant tax defaults.
// One row per merchant.
type Profile struct {
	ID         int64 `json:"id" gorm:"primaryKey"`
	MerchantID int64 `json:"merchant_id" gorm:"column:merchant_id;not null;uniqueIndex:ux_merchant_profiles_merchant"`

	LegalName   string `json:"legal_name" gorm:"type:text;not null"`
	TradingName string `json:"trading_name" gorm:"type:text"`
	GSTIN       string `json:"gstin" gorm:"type:text;not null"`

	AddressLine1 string `json:"address_line1" gorm:"type:text"`
	AddressLine2 string `json:"address_line2" gorm:"type:text"`
	City         string `json:"city" gorm:"type:text"`
	StateName    string `json:"state_name" gorm:"type:text;not null"`
	StateCode    string `json:"state_code" gorm:"type:text;not null"`
	PinCode      string `json:"pin_code" gorm:"type:text"`
	Country      string `json:"country" gorm:"type:text;not null;default:'India'"`
	Phone        string `json:"phone" gorm:"type:text"`
	Email        string `json:"email" gorm:"type:text"`

	DefaultHSNCode   string          `json:"default_hsn_code" gorm:"type:text;not null"`
	DefaultGSTRate   decimal.Decimal `json:"default_gst_rate" gorm:"type:numeric(5,2);not null"`
	PriceIncludesTax bool            `json:"price_includes_tax" gorm:"not null;default:true"`

	BankName      string `json:"bank_name" gorm:"type:text"`
	BankAccountNo string `json:"bank_account_no" gorm:"type:text"`
	BankIFSC      string `json:"bank_ifsc" gorm:"type:text"`
	SignatoryName string `json:"signatory_name" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Profile) TableName() string { return "merchant_profiles" }
