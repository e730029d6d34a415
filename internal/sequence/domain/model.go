// Package domain contains the invoice numbering state and period logic.
package domain

import "time"

// ResetFrequency controls when the running counter restarts from zero.
type ResetFrequency string

const (
	ResetNever     ResetFrequency = "NEVER"
	ResetMonthly   ResetFrequency = "MONTHLY"
	ResetQuarterly ResetFrequency = "QUARTERLY"
	ResetYearly    ResetFrequency = "YEARLY"
)

// ValidResetFrequency reports whether f is one of the supported values.
func ValidResetFrequency(f ResetFrequency) bool {
	switch f {
	case ResetNever, ResetMonthly, ResetQuarterly, ResetYearly:
		return true
	}
	return false
}

// SequenceState is the per-merchant numbering counter. One row per
// merchant; issuance locks the row so concurrent invoices never share
// or skip a number.
type SequenceState struct {
	ID             int64          `json:"id" gorm:"primaryKey"`
	MerchantID     int64          `json:"merchant_id" gorm:"column:merchant_id;not null;uniqueIndex:ux_sequence_states_merchant"`
	Prefix         string         `json:"prefix" gorm:"type:text;not null;default:'INV'"`
	ResetFrequency ResetFrequency `json:"reset_frequency" gorm:"type:text;not null;default:'YEARLY'"`
	LastNumber     int64          `json:"last_number" gorm:"not null;default:0"`
	LastIssuedAt   time.Time      `json:"last_issued_at" gorm:"not null"`
	CreatedAt      time.Time      `json:"created_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt      time.Time      `json:"updated_at" gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (SequenceState) TableName() string { return "sequence_states" }
