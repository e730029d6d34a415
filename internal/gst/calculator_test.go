package gst

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	v, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return v
}

func TestCalculateLineItem_InclusiveIntraState(t *testing.T) {
	// 2 × 118.00 tax-inclusive at 18% intra-state extracts a taxable
	// value of 200.00 and an even CGST/SGST split.
	item := LineItem{
		ProductID: "prod-1",
		Title:     "Cotton Kurta",
		Quantity:  2,
		UnitPrice: d(t, "118.00"),
		Discount:  decimal.Zero,
	}

	result := CalculateLineItem(item, d(t, "18"), "6203", IntraState, true)

	assert.Equal(t, "200.00", result.TaxableValue.StringFixed(2))
	assert.Equal(t, "18.00", result.CGST.StringFixed(2))
	assert.Equal(t, "18.00", result.SGST.StringFixed(2))
	assert.Equal(t, "0.00", result.IGST.StringFixed(2))
	assert.Equal(t, "36.00", result.TotalTax.StringFixed(2))
	assert.Equal(t, "236.00", result.TotalAmount.StringFixed(2))
	assert.Equal(t, "6203", result.HSNCode)
}

func TestCalculateLineItem_InclusiveInterState(t *testing.T) {
	item := LineItem{
		ProductID: "prod-1",
		Quantity:  2,
		UnitPrice: d(t, "118.00"),
		Discount:  decimal.Zero,
	}

	result := CalculateLineItem(item, d(t, "18"), "6203", InterState, true)

	assert.Equal(t, "200.00", result.TaxableValue.StringFixed(2))
	assert.Equal(t, "0.00", result.CGST.StringFixed(2))
	assert.Equal(t, "0.00", result.SGST.StringFixed(2))
	assert.Equal(t, "36.00", result.IGST.StringFixed(2))
	assert.Equal(t, "236.00", result.TotalAmount.StringFixed(2))
}

func TestCalculateLineItem_ExclusivePrice(t *testing.T) {
	item := LineItem{
		ProductID: "prod-2",
		Quantity:  1,
		UnitPrice: d(t, "500.00"),
		Discount:  decimal.Zero,
	}

	result := CalculateLineItem(item, d(t, "12"), "9403", InterState, false)

	assert.Equal(t, "500.00", result.TaxableValue.StringFixed(2))
	assert.Equal(t, "60.00", result.IGST.StringFixed(2))
	assert.Equal(t, "560.00", result.TotalAmount.StringFixed(2))
}

func TestCalculateLineItem_DiscountAppliedBeforeTaxExtraction(t *testing.T) {
	// 3 × 118.00 − 118.00 discount leaves 236.00 inclusive, so the
	// discounted amount is what gets de-taxed.
	item := LineItem{
		ProductID: "prod-3",
		Quantity:  3,
		UnitPrice: d(t, "118.00"),
		Discount:  d(t, "118.00"),
	}

	result := CalculateLineItem(item, d(t, "18"), "6203", IntraState, true)

	assert.Equal(t, "200.00", result.TaxableValue.StringFixed(2))
	assert.Equal(t, "18.00", result.CGST.StringFixed(2))
	assert.Equal(t, "18.00", result.SGST.StringFixed(2))
}

func TestCalculateLineItem_ZeroRateKeepsRate(t *testing.T) {
	item := LineItem{
		ProductID: "prod-4",
		Quantity:  1,
		UnitPrice: d(t, "100.00"),
		Discount:  decimal.Zero,
	}

	result := CalculateLineItem(item, decimal.Zero, "0101", IntraState, true)

	assert.Equal(t, "100.00", result.TaxableValue.StringFixed(2))
	assert.Equal(t, "0.00", result.TotalTax.StringFixed(2))
	// Zero-rated lines keep their rate, unlike the zero-shipping case.
	assert.True(t, result.GSTRate.IsZero())
}

func TestCalculateLineItem_ExactlyOneTaxSide(t *testing.T) {
	item := LineItem{
		ProductID: "prod-5",
		Quantity:  5,
		UnitPrice: d(t, "99.99"),
		Discount:  d(t, "13.37"),
	}

	for _, txType := range []TransactionType{IntraState, InterState} {
		result := CalculateLineItem(item, d(t, "28"), "8517", txType, true)

		hasCGSTSGST := result.CGST.IsPositive() || result.SGST.IsPositive()
		hasIGST := result.IGST.IsPositive()
		assert.NotEqual(t, hasCGSTSGST, hasIGST, "exactly one of CGST/SGST or IGST must be set for %s", txType)
	}
}

func TestCalculateShipping_Inclusive(t *testing.T) {
	result := CalculateShipping(d(t, "118.00"), InterState, true)

	assert.Equal(t, "100.00", result.TaxableValue.StringFixed(2))
	assert.Equal(t, "18.00", result.IGST.StringFixed(2))
	assert.Equal(t, "18.00", result.TotalTax.StringFixed(2))
	assert.Equal(t, "18", result.GSTRate.String())
	assert.Equal(t, FreightHSNCode, result.HSNCode)
}

func TestCalculateShipping_IntraStateSplit(t *testing.T) {
	result := CalculateShipping(d(t, "100.00"), IntraState, false)

	assert.Equal(t, "100.00", result.TaxableValue.StringFixed(2))
	assert.Equal(t, "9.00", result.CGST.StringFixed(2))
	assert.Equal(t, "9.00", result.SGST.StringFixed(2))
	assert.Equal(t, "0.00", result.IGST.StringFixed(2))
}

func TestCalculateShipping_ZeroChargeIsAllZeroWithZeroRate(t *testing.T) {
	// No shipping charge means no shipping tax line at all, so the rate
	// is reported as 0 rather than 18.
	for _, charge := range []string{"0", "-10.00"} {
		result := CalculateShipping(d(t, charge), IntraState, true)

		assert.True(t, result.TaxableValue.IsZero())
		assert.True(t, result.TotalTax.IsZero())
		assert.True(t, result.GSTRate.IsZero())
		assert.Equal(t, FreightHSNCode, result.HSNCode)
	}
}
