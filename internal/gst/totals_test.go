package gst

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func calcLine(t *testing.T, qty int64, price, rate string, txType TransactionType) LineResult {
	t.Helper()
	return CalculateLineItem(LineItem{
		ProductID: "prod",
		Quantity:  qty,
		UnitPrice: d(t, price),
		Discount:  decimal.Zero,
	}, d(t, rate), "9999", txType, true)
}

func TestCalculateTotals_ReconciliationIdentity(t *testing.T) {
	lines := []LineResult{
		calcLine(t, 2, "118.00", "18", IntraState),
		calcLine(t, 1, "99.99", "5", IntraState),
		calcLine(t, 3, "37.50", "12", IntraState),
	}
	shippingCharge := d(t, "49.00")
	shipping := CalculateShipping(shippingCharge, IntraState, true)
	discount := d(t, "25.00")

	totals := CalculateTotals(lines, shipping, shippingCharge, discount)

	totalTax := totals.TotalCGST.Add(totals.TotalSGST).Add(totals.TotalIGST)
	reconciled := totals.Subtotal.
		Add(totalTax).
		Add(totals.ShippingCharge).
		Sub(totals.DiscountAmount).
		Add(totals.RoundOff)

	assert.True(t, reconciled.Equal(totals.GrandTotal),
		"subtotal + tax + shipping - discount + round_off = %s, want %s", reconciled, totals.GrandTotal)
}

func TestCalculateTotals_GrandTotalIsWholeRupees(t *testing.T) {
	lines := []LineResult{calcLine(t, 1, "153.33", "18", InterState)}
	shipping := CalculateShipping(decimal.Zero, InterState, true)

	totals := CalculateTotals(lines, shipping, decimal.Zero, decimal.Zero)

	assert.True(t, totals.GrandTotal.Equal(totals.GrandTotal.Round(0)))
	assert.True(t, totals.RoundOff.Abs().LessThanOrEqual(one), "round off %s exceeds one rupee", totals.RoundOff)
}

func TestCalculateTotals_RoundOffBoundHolds(t *testing.T) {
	prices := []string{"1.01", "3.33", "99.99", "118.00", "777.77", "1234.56"}
	rates := []string{"0", "5", "12", "18", "28"}

	for _, price := range prices {
		for _, rate := range rates {
			lines := []LineResult{calcLine(t, 3, price, rate, IntraState)}
			shippingCharge := d(t, "57.21")
			shipping := CalculateShipping(shippingCharge, IntraState, true)

			totals := CalculateTotals(lines, shipping, shippingCharge, d(t, "10.10"))

			require.True(t, totals.RoundOff.Abs().LessThanOrEqual(one),
				"price=%s rate=%s round_off=%s", price, rate, totals.RoundOff)
		}
	}
}

func TestCalculateTotals_ShippingTaxIncludedInTaxTotals(t *testing.T) {
	lines := []LineResult{calcLine(t, 1, "118.00", "18", IntraState)}
	shippingCharge := d(t, "118.00")
	shipping := CalculateShipping(shippingCharge, IntraState, true)

	totals := CalculateTotals(lines, shipping, shippingCharge, decimal.Zero)

	// 9.00 CGST per side from the line plus 9.00 from shipping.
	assert.Equal(t, "18.00", totals.TotalCGST.StringFixed(2))
	assert.Equal(t, "18.00", totals.TotalSGST.StringFixed(2))
	assert.Equal(t, "18.00", totals.ShippingTax.StringFixed(2))
}

func TestSummarizeByRate_GroupsAndSortsAscending(t *testing.T) {
	lines := []LineResult{
		calcLine(t, 1, "118.00", "18", IntraState),
		calcLine(t, 2, "105.00", "5", IntraState),
		calcLine(t, 1, "236.00", "18", IntraState),
	}

	rows := SummarizeByRate(lines)

	require.Len(t, rows, 2)
	assert.Equal(t, "5", rows[0].GSTRate.String())
	assert.Equal(t, "18", rows[1].GSTRate.String())

	// Both 18% lines folded into one row: 100 + 200 taxable.
	assert.Equal(t, "300.00", rows[1].TaxableValue.StringFixed(2))
	assert.Equal(t, "27.00", rows[1].CGST.StringFixed(2))
	assert.Equal(t, "27.00", rows[1].SGST.StringFixed(2))
	assert.Equal(t, "54.00", rows[1].TotalTax.StringFixed(2))
}

func TestSummarizeByRate_ExactRateMatch(t *testing.T) {
	// 18 and 18.0 are the same number and must group together; 18.5 is
	// its own row.
	lines := []LineResult{
		calcLine(t, 1, "118.00", "18", IntraState),
		calcLine(t, 1, "118.00", "18.0", IntraState),
		calcLine(t, 1, "118.50", "18.5", IntraState),
	}

	rows := SummarizeByRate(lines)

	require.Len(t, rows, 2)
	assert.Equal(t, "200.00", rows[0].TaxableValue.StringFixed(2))
}

func TestSummarizeByRate_Empty(t *testing.T) {
	assert.Empty(t, SummarizeByRate(nil))
}
