package format

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func amt(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return d
}

func TestINRGrouping(t *testing.T) {
	cases := map[string]string{
		"0":          "₹0.00",
		"5":          "₹5.00",
		"999.5":      "₹999.50",
		"1000":       "₹1,000.00",
		"99999":      "₹99,999.00",
		"100000":     "₹1,00,000.00",
		"1234567.89": "₹12,34,567.89",
		"10000000":   "₹1,00,00,000.00",
		"-236":       "-₹236.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, INR(amt(t, in)), "input %s", in)
	}
}

func TestDate(t *testing.T) {
	assert.Equal(t, "05/03/2025", Date(time.Date(2025, time.March, 5, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "-", Date(time.Time{}))
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "18%", Percent(amt(t, "18")))
	assert.Equal(t, "2.5%", Percent(amt(t, "2.50")))
}

func TestAmountInWords(t *testing.T) {
	cases := map[string]string{
		"0":          "RUPEES ZERO ONLY",
		"7":          "RUPEES SEVEN ONLY",
		"19":         "RUPEES NINETEEN ONLY",
		"42":         "RUPEES FORTY TWO ONLY",
		"100":        "RUPEES ONE HUNDRED ONLY",
		"236":        "RUPEES TWO HUNDRED AND THIRTY SIX ONLY",
		"1001":       "RUPEES ONE THOUSAND AND ONE ONLY",
		"123456.78":  "RUPEES ONE LAKH TWENTY THREE THOUSAND FOUR HUNDRED AND FIFTY SIX AND PAISE SEVENTY EIGHT ONLY",
		"10000000":   "RUPEES ONE CRORE ONLY",
		"20300400.5": "RUPEES TWO CRORE THREE LAKH FOUR HUNDRED AND PAISE FIFTY ONLY",
	}
	for in, want := range cases {
		assert.Equal(t, want, AmountInWords(amt(t, in)), "input %s", in)
	}
}
