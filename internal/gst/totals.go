package gst

import (
	"sort"

	"github.com/shopspring/decimal"
)

// Totals aggregates all line results plus shipping tax into invoice
// totals. RoundOff is the correction that makes
//
//	Subtotal + TotalCGST + TotalSGST + TotalIGST + ShippingCharge
//	  - DiscountAmount + RoundOff == GrandTotal
//
// hold exactly, with GrandTotal a whole rupee amount and |RoundOff| <= 1.
type Totals struct {
	Subtotal       decimal.Decimal `json:"subtotal"`
	TotalCGST      decimal.Decimal `json:"total_cgst"`
	TotalSGST      decimal.Decimal `json:"total_sgst"`
	TotalIGST      decimal.Decimal `json:"total_igst"`
	ShippingCharge decimal.Decimal `json:"shipping_charge"`
	ShippingTax    decimal.Decimal `json:"shipping_tax"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	RoundOff       decimal.Decimal `json:"round_off"`
	GrandTotal     decimal.Decimal `json:"grand_total"`
}

// TaxSummaryRow aggregates the line results sharing one GST rate for the
// invoice's rate-wise summary table. Shipping is not part of the summary.
type TaxSummaryRow struct {
	GSTRate      decimal.Decimal `json:"gst_rate"`
	TaxableValue decimal.Decimal `json:"taxable_value"`
	CGST         decimal.Decimal `json:"cgst_amount"`
	SGST         decimal.Decimal `json:"sgst_amount"`
	IGST         decimal.Decimal `json:"igst_amount"`
	TotalTax     decimal.Decimal `json:"total_tax"`
}

// CalculateTotals combines the line results and the shipping calculation
// into invoice totals. The grand total is rounded to the nearest rupee
// and the difference recorded as the round-off.
func CalculateTotals(lines []LineResult, shipping Calculation, shippingCharge, discountAmount decimal.Decimal) Totals {
	subtotal := decimal.Zero
	totalCGST := shipping.CGST
	totalSGST := shipping.SGST
	totalIGST := shipping.IGST

	for _, line := range lines {
		subtotal = subtotal.Add(line.TaxableValue)
		totalCGST = totalCGST.Add(line.CGST)
		totalSGST = totalSGST.Add(line.SGST)
		totalIGST = totalIGST.Add(line.IGST)
	}

	totalTax := totalCGST.Add(totalSGST).Add(totalIGST)
	beforeRounding := subtotal.Add(totalTax).Add(shippingCharge).Sub(discountAmount)

	grandTotal := beforeRounding.Round(0)
	roundOff := grandTotal.Sub(beforeRounding)

	return Totals{
		Subtotal:       roundMoney(subtotal),
		TotalCGST:      roundMoney(totalCGST),
		TotalSGST:      roundMoney(totalSGST),
		TotalIGST:      roundMoney(totalIGST),
		ShippingCharge: roundMoney(shippingCharge),
		ShippingTax:    shipping.TotalTax,
		DiscountAmount: roundMoney(discountAmount),
		RoundOff:       roundMoney(roundOff),
		GrandTotal:     grandTotal,
	}
}

// SummarizeByRate groups the line results by exact GST rate and returns
// one row per distinct rate, sorted ascending.
func SummarizeByRate(lines []LineResult) []TaxSummaryRow {
	byRate := make(map[string]*TaxSummaryRow)
	for _, line := range lines {
		key := line.GSTRate.String()
		row, ok := byRate[key]
		if !ok {
			row = &TaxSummaryRow{
				GSTRate:      line.GSTRate,
				TaxableValue: decimal.Zero,
				CGST:         decimal.Zero,
				SGST:         decimal.Zero,
				IGST:         decimal.Zero,
				TotalTax:     decimal.Zero,
			}
			byRate[key] = row
		}
		row.TaxableValue = row.TaxableValue.Add(line.TaxableValue)
		row.CGST = row.CGST.Add(line.CGST)
		row.SGST = row.SGST.Add(line.SGST)
		row.IGST = row.IGST.Add(line.IGST)
		row.TotalTax = row.TotalTax.Add(line.TotalTax)
	}

	rows := make([]TaxSummaryRow, 0, len(byRate))
	for _, row := range byRate {
		rows = append(rows, TaxSummaryRow{
			GSTRate:      row.GSTRate,
			TaxableValue: roundMoney(row.TaxableValue),
			CGST:         roundMoney(row.CGST),
			SGST:         roundMoney(row.SGST),
			IGST:         roundMoney(row.IGST),
			TotalTax:     roundMoney(row.TotalTax),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].GSTRate.LessThan(rows[j].GSTRate)
	})
	return rows
}
