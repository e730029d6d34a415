package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repository interface {
	FindByMerchant(ctx context.Context, db *gorm.DB, merchantID int64) (*SequenceState, error)
	FindByMerchantForUpdate(ctx context.Context, tx *gorm.DB, merchantID int64) (*SequenceState, error)
	Create(ctx context.Context, db *gorm.DB, st *SequenceState) error
	Update(ctx context.Context, db *gorm.DB, st *SequenceState) error
}

type Service interface {
	// Next issues and consumes the next invoice number in its own
	// transaction.
	Next(ctx context.Context) (string, error)

	// NextInTx issues the next number inside the caller's transaction,
	// so the number and the invoice it belongs to commit or roll back
	// together.
	NextInTx(ctx context.Context, tx *gorm.DB) (string, error)

	// Peek previews the next number without consuming it. Concurrent
	// issuance can overtake a peeked number.
	Peek(ctx context.Context) (*Preview, error)

	Get(ctx context.Context) (*SequenceState, error)
	UpdateSettings(ctx context.Context, req UpdateSettingsRequest) (*SequenceState, error)
}

// Preview describes the number Peek would issue next.
type Preview struct {
	NextNumber      string         `json:"next_number"`
	Prefix          string         `json:"prefix"`
	FiscalYear      string         `json:"fiscal_year"`
	ResetFrequency  ResetFrequency `json:"reset_frequency"`
	CurrentSequence int64          `json:"current_sequence"`
	WillReset       bool           `json:"will_reset"`
}

type UpdateSettingsRequest struct {
	Prefix         *string `json:"prefix"`
	ResetFrequency *string `json:"reset_frequency"`
}

var (
	ErrInvalidMerchant       = errors.New("invalid_merchant")
	ErrInvalidPrefix         = errors.New("invalid_prefix")
	ErrInvalidResetFrequency = errors.New("invalid_reset_frequency")
)
