package gst

import "github.com/shopspring/decimal"

// FreightHSNCode is the SAC code reported for shipping charges.
const FreightHSNCode = "996511"

// ShippingGSTRate is the statutory rate applied to shipping charges.
var ShippingGSTRate = decimal.NewFromInt(18)

// ValidRates are the enumerated GST slabs. Rates outside this set are
// computed as given and reported by Validate, never rejected at compute
// time.
var ValidRates = []decimal.Decimal{
	decimal.Zero,
	decimal.NewFromInt(5),
	decimal.NewFromInt(12),
	decimal.NewFromInt(18),
	decimal.NewFromInt(28),
}

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	hundred = decimal.NewFromInt(100)
)

// Calculation holds the tax split for one taxable amount. Exactly one of
// CGST+SGST or IGST is non-zero when tax applies.
type Calculation struct {
	TaxableValue decimal.Decimal `json:"taxable_value"`
	CGST         decimal.Decimal `json:"cgst_amount"`
	SGST         decimal.Decimal `json:"sgst_amount"`
	IGST         decimal.Decimal `json:"igst_amount"`
	TotalTax     decimal.Decimal `json:"total_tax"`
	GSTRate      decimal.Decimal `json:"gst_rate"`
	HSNCode      string          `json:"hsn_code"`
}

// LineItem is one order line handed to the calculator. UnitPrice and
// Discount arrive parsed from the order source's decimal strings.
type LineItem struct {
	ProductID string
	VariantID string
	Title     string
	SKU       string
	Quantity  int64
	UnitPrice decimal.Decimal
	Discount  decimal.Decimal
}

// LineResult is the computed tax breakdown for one order line.
type LineResult struct {
	Calculation

	ProductID   string          `json:"product_id"`
	VariantID   string          `json:"variant_id,omitempty"`
	Title       string          `json:"title"`
	SKU         string          `json:"sku,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Discount    decimal.Decimal `json:"discount"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// CalculateLineItem computes taxable value and the tax split for one
// order line.
//
// The per-line discount is subtracted before the tax-inclusive reverse
// calculation, so a discounted inclusive price is treated as still
// containing tax on the discounted amount. Each monetary output is
// rounded to two places independently; the residual error this leaves in
// the totals is reconciled by CalculateTotals via the round-off.
func CalculateLineItem(item LineItem, rate decimal.Decimal, hsnCode string, txType TransactionType, priceIncludesTax bool) LineResult {
	linePrice := item.UnitPrice.Mul(decimal.NewFromInt(item.Quantity)).Sub(item.Discount)

	taxableValue := linePrice
	if priceIncludesTax {
		taxableValue = linePrice.Div(one.Add(rate.Div(hundred)))
	}

	cgst, sgst, igst := splitTax(taxableValue, rate, txType)

	totalTax := cgst.Add(sgst).Add(igst)
	totalAmount := taxableValue.Add(totalTax)

	return LineResult{
		Calculation: Calculation{
			TaxableValue: roundMoney(taxableValue),
			CGST:         roundMoney(cgst),
			SGST:         roundMoney(sgst),
			IGST:         roundMoney(igst),
			TotalTax:     roundMoney(totalTax),
			GSTRate:      rate,
			HSNCode:      hsnCode,
		},
		ProductID:   item.ProductID,
		VariantID:   item.VariantID,
		Title:       item.Title,
		SKU:         item.SKU,
		Quantity:    item.Quantity,
		UnitPrice:   item.UnitPrice,
		Discount:    item.Discount,
		TotalAmount: roundMoney(totalAmount),
	}
}

// CalculateShipping computes the tax split for the order's shipping
// charge at the fixed statutory rate.
//
// A zero or negative charge yields the all-zero result with GSTRate 0:
// no shipping charge means no shipping tax line, not a 0%-rated one.
// Line items behave differently on purpose and keep their rate at zero
// taxable value.
func CalculateShipping(charge decimal.Decimal, txType TransactionType, priceIncludesTax bool) Calculation {
	if charge.Sign() <= 0 {
		return Calculation{
			TaxableValue: decimal.Zero,
			CGST:         decimal.Zero,
			SGST:         decimal.Zero,
			IGST:         decimal.Zero,
			TotalTax:     decimal.Zero,
			GSTRate:      decimal.Zero,
			HSNCode:      FreightHSNCode,
		}
	}

	taxableValue := charge
	if priceIncludesTax {
		taxableValue = charge.Div(one.Add(ShippingGSTRate.Div(hundred)))
	}

	cgst, sgst, igst := splitTax(taxableValue, ShippingGSTRate, txType)

	return Calculation{
		TaxableValue: roundMoney(taxableValue),
		CGST:         roundMoney(cgst),
		SGST:         roundMoney(sgst),
		IGST:         roundMoney(igst),
		TotalTax:     roundMoney(cgst.Add(sgst).Add(igst)),
		GSTRate:      ShippingGSTRate,
		HSNCode:      FreightHSNCode,
	}
}

func splitTax(taxableValue, rate decimal.Decimal, txType TransactionType) (cgst, sgst, igst decimal.Decimal) {
	if txType == IntraState {
		half := taxableValue.Mul(rate.Div(two)).Div(hundred)
		return half, half, decimal.Zero
	}
	return decimal.Zero, decimal.Zero, taxableValue.Mul(rate).Div(hundred)
}

// roundMoney rounds to two places, half away from zero.
func roundMoney(v decimal.Decimal) decimal.Decimal {
	return v.Round(2)
}
