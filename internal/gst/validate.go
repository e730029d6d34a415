package gst

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Report is the result of the post-hoc cross-check over a computed
// invoice. Problems are human-readable and ordered; callers decide
// whether any of them blocks finalization. The engine never fails an
// invoice on these conditions itself.
type Report struct {
	Valid    bool     `json:"valid"`
	Problems []string `json:"problems,omitempty"`
}

// Validate runs the advisory cross-checks over a fully computed invoice:
// structural CGST/SGST+IGST mixing, the round-off bound, negative
// amounts, and rates outside the enumerated slabs.
func Validate(lines []LineResult, totals Totals) Report {
	var problems []string

	hasCGSTSGST := totals.TotalCGST.IsPositive() || totals.TotalSGST.IsPositive()
	hasIGST := totals.TotalIGST.IsPositive()
	if hasCGSTSGST && hasIGST {
		problems = append(problems, "invoice cannot have both CGST/SGST and IGST")
	}

	if totals.RoundOff.Abs().GreaterThan(one) {
		problems = append(problems, "round off amount exceeds acceptable range (±1 rupee)")
	}

	for i, line := range lines {
		if line.TaxableValue.IsNegative() {
			problems = append(problems, fmt.Sprintf("line item %d has negative taxable value", i+1))
		}
		if line.TotalTax.IsNegative() {
			problems = append(problems, fmt.Sprintf("line item %d has negative tax amount", i+1))
		}
	}

	for i, line := range lines {
		if !isValidRate(line.GSTRate) {
			problems = append(problems, fmt.Sprintf("line item %d has invalid GST rate: %s%%", i+1, line.GSTRate))
		}
	}

	return Report{
		Valid:    len(problems) == 0,
		Problems: problems,
	}
}

func isValidRate(rate decimal.Decimal) bool {
	for _, valid := range ValidRates {
		if rate.Equal(valid) {
			return true
		}
	}
	return false
}
