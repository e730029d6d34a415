package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	FindByMerchant(ctx context.Context, db *gorm.DB, merchantID int64) (*Profile, error)
	Create(ctx context.Context, db *gorm.DB, p *Profile) error
	Update(ctx context.Context, db *gorm.DB, p *Profile) error
}

type Service interface {
	// Get returns the merchant's profile. Invoice generation treats a
	// missing profile as a hard failure, so callers must surface
	// ErrProfileNotFound instead of substituting defaults.
	Get(ctx context.Context) (*Profile, error)
	Upsert(ctx context.Context, req UpsertRequest) (*Profile, error)
}

type UpsertRequest struct {
	LegalName   string `json:"legal_name"`
	TradingName string `json:"trading_name"`
	GSTIN       string `json:"gstin"`

	AddressLine1 string `json:"address_line1"`
	AddressLine2 string `json:"address_line2"`
	City         string `json:"city"`
	StateName    string `json:"state_name"`
	PinCode      string `json:"pin_code"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`

	DefaultHSNCode   string `json:"default_hsn_code"`
	DefaultGSTRate   string `json:"default_gst_rate"`
	PriceIncludesTax *bool  `json:"price_includes_tax"`

	BankName      string `json:"bank_name"`
	BankAccountNo string `json:"bank_account_no"`
	BankIFSC      string `json:"bank_ifsc"`
	SignatoryName string `json:"signatory_name"`
}

var (
	ErrInvalidMerchant  = errors.New("invalid_merchant")
	ErrProfileNotFound  = errors.New("profile_not_found")
	ErrInvalidLegalName = errors.New("invalid_legal_name")
	ErrInvalidGSTIN     = errors.New("invalid_gstin")
	ErrInvalidState     = errors.New("invalid_state")
	ErrInvalidGSTRate   = errors.New("invalid_gst_rate")
)
