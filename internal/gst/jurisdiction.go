// Package gst implements the GST calculation core: jurisdiction
// resolution, per-line and shipping tax computation, invoice totals with
// rounding reconciliation, and the advisory validation report.
//
// Everything in this package is pure computation. All monetary values are
// shopspring decimals rounded to two places, half away from zero.
package gst

import (
	"errors"
	"strings"
)

// TransactionType classifies an order as intra-state (CGST+SGST) or
// inter-state (IGST).
type TransactionType string

const (
	IntraState TransactionType = "INTRA_STATE"
	InterState TransactionType = "INTER_STATE"
)

// ErrUnknownState is returned when a state name normalizes to the empty
// string. Without this guard two empty names would compare equal and be
// misclassified as intra-state.
var ErrUnknownState = errors.New("unknown state")

// DetermineTransactionType resolves the tax jurisdiction from the seller
// and buyer state names. Names are free text; comparison is
// case/whitespace-insensitive.
func DetermineTransactionType(sellerState, buyerState string) (TransactionType, error) {
	seller := normalizeState(sellerState)
	buyer := normalizeState(buyerState)

	if seller == "" || buyer == "" {
		return "", ErrUnknownState
	}

	if seller == buyer {
		return IntraState, nil
	}
	return InterState, nil
}

func normalizeState(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}
