package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FiscalYearLabel returns the Indian fiscal year containing t, written
// as start year plus two-digit end year, e.g. "2024-25". The fiscal
// year runs April through March.
func FiscalYearLabel(t time.Time) string {
	year := t.Year()
	if t.Month() < time.April {
		year--
	}
	return fmt.Sprintf("%d-%02d", year, (year+1)%100)
}

// MonthSegment returns the two-digit calendar month of t.
func MonthSegment(t time.Time) string {
	return fmt.Sprintf("%02d", int(t.Month()))
}

// ShouldReset reports whether the counter restarts when moving from the
// period of last to the period of now.
//
// QUARTERLY boundaries are calendar quarters (Jan, Apr, Jul, Oct) while
// YEARLY follows the fiscal year. Merchants on quarterly resets see the
// counter restart on 1 January even though the fiscal year rolls in
// April.
func ShouldReset(last, now time.Time, freq ResetFrequency) bool {
	switch freq {
	case ResetMonthly:
		return last.Year() != now.Year() || last.Month() != now.Month()
	case ResetQuarterly:
		return last.Year() != now.Year() || calendarQuarter(last) != calendarQuarter(now)
	case ResetYearly:
		return FiscalYearLabel(last) != FiscalYearLabel(now)
	}
	return false
}

func calendarQuarter(t time.Time) int {
	return (int(t.Month()) - 1) / 3
}

// FormatNumber renders a full invoice number, e.g. INV-2024-25-03-00007.
func FormatNumber(prefix, fiscalYear, month string, n int64) string {
	return fmt.Sprintf("%s-%s-%s-%05d", prefix, fiscalYear, month, n)
}

// CreditNoteNumber derives a credit note number from an invoice number
// by swapping the prefix segment for CN. Numbers that do not look like
// ours get CN- prepended instead.
func CreditNoteNumber(invoiceNumber string) string {
	parts := strings.Split(invoiceNumber, "-")
	if len(parts) >= 4 {
		parts[0] = "CN"
		return strings.Join(parts, "-")
	}
	return "CN-" + invoiceNumber
}

// ParsedNumber is the decomposition of a generated invoice number.
type ParsedNumber struct {
	Prefix     string
	FiscalYear string
	Month      string
	Sequence   int64
}

// ParseNumber splits a number produced by FormatNumber. The fiscal year
// spans two segments, so a well-formed number has five.
func ParseNumber(number string) (ParsedNumber, bool) {
	parts := strings.Split(number, "-")
	if len(parts) != 5 {
		return ParsedNumber{}, false
	}
	seq, err := strconv.ParseInt(parts[4], 10, 64)
	if err != nil {
		return ParsedNumber{}, false
	}
	return ParsedNumber{
		Prefix:     parts[0],
		FiscalYear: parts[1] + "-" + parts[2],
		Month:      parts[3],
		Sequence:   seq,
	}, true
}
