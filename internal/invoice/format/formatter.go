// Package format renders money, dates, and amounts-in-words for Indian
// tax invoices.
package format

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// INR formats an amount with the rupee sign and Indian digit grouping,
// e.g. ₹12,34,567.89. The last three integer digits group together and
// every two digits after that.
func INR(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2)

	intPart := fixed[:len(fixed)-3]
	fracPart := fixed[len(fixed)-2:]

	grouped := groupIndian(intPart)
	if neg {
		return "-₹" + grouped + "." + fracPart
	}
	return "₹" + grouped + "." + fracPart
}

// Rupees formats like INR but with an ASCII "Rs." prefix, for outputs
// whose fonts have no rupee glyph.
func Rupees(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2)

	intPart := fixed[:len(fixed)-3]
	fracPart := fixed[len(fixed)-2:]

	grouped := groupIndian(intPart)
	if neg {
		return "-Rs." + grouped + "." + fracPart
	}
	return "Rs." + grouped + "." + fracPart
}

func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}

// Date renders DD/MM/YYYY, the convention on Indian invoices.
func Date(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("02/01/2006")
}

// Percent renders a GST rate without trailing zeros, e.g. "18%" or "2.5%".
func Percent(rate decimal.Decimal) string {
	return rate.String() + "%"
}

var (
	onesWords = []string{
		"", "ONE", "TWO", "THREE", "FOUR", "FIVE", "SIX", "SEVEN", "EIGHT", "NINE",
		"TEN", "ELEVEN", "TWELVE", "THIRTEEN", "FOURTEEN", "FIFTEEN", "SIXTEEN",
		"SEVENTEEN", "EIGHTEEN", "NINETEEN",
	}
	tensWords = []string{
		"", "", "TWENTY", "THIRTY", "FORTY", "FIFTY", "SIXTY", "SEVENTY", "EIGHTY", "NINETY",
	}
)

// AmountInWords spells out an amount in the Indian numbering system,
// e.g. "RUPEES ONE LAKH TWENTY THREE THOUSAND FOUR HUNDRED AND
// FIFTY SIX AND PAISE SEVENTY EIGHT ONLY". Amounts beyond 99 crore fall
// back to the numeric form.
func AmountInWords(amount decimal.Decimal) string {
	if amount.IsNegative() {
		return "MINUS " + AmountInWords(amount.Neg())
	}

	rupees := amount.Truncate(0)
	paise := amount.Sub(rupees).Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	if !rupees.LessThan(decimal.New(1, 9)) {
		return "RUPEES " + amount.StringFixed(2) + " ONLY"
	}
	r := rupees.IntPart()

	var b strings.Builder
	b.WriteString("RUPEES ")
	if r == 0 {
		b.WriteString("ZERO")
	} else {
		b.WriteString(indianWords(r))
	}
	if paise > 0 {
		b.WriteString(" AND PAISE ")
		b.WriteString(indianWords(paise))
	}
	b.WriteString(" ONLY")
	return b.String()
}

// indianWords converts n (1 to 99,99,99,999) into words using crore,
// lakh, and thousand groupings.
func indianWords(n int64) string {
	var parts []string

	if crore := n / 10000000; crore > 0 {
		parts = append(parts, twoDigitWords(crore), "CRORE")
		n %= 10000000
	}
	if lakh := n / 100000; lakh > 0 {
		parts = append(parts, twoDigitWords(lakh), "LAKH")
		n %= 100000
	}
	if thousand := n / 1000; thousand > 0 {
		parts = append(parts, twoDigitWords(thousand), "THOUSAND")
		n %= 1000
	}
	if hundred := n / 100; hundred > 0 {
		parts = append(parts, onesWords[hundred], "HUNDRED")
		n %= 100
	}
	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "AND")
		}
		parts = append(parts, twoDigitWords(n))
	}
	return strings.Join(parts, " ")
}

func twoDigitWords(n int64) string {
	if n < 20 {
		return onesWords[n]
	}
	if n%10 == 0 {
		return tensWords[n/10]
	}
	return fmt.Sprintf("%s %s", tensWords[n/10], onesWords[n%10])
}
