package render

import (
	"bytes"
	"html/template"

	"github.com/bharatstack/gstbill/internal/invoice/format"
)

const invoiceHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>{{if .Invoice.IsCreditNote}}Credit Note{{else}}Tax Invoice{{end}} {{.Invoice.Number}}</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 24px;
      font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
      color: #1a1f36;
      font-size: 13px;
    }
    .document {
      max-width: 800px;
      margin: 0 auto;
      border: 1px solid #333;
    }
    .doc-title {
      text-align: center;
      font-size: 16px;
      font-weight: 700;
      text-transform: uppercase;
      padding: 10px;
      border-bottom: 1px solid #333;
    }
    .grid-2 {
      display: flex;
      border-bottom: 1px solid #333;
    }
    .cell {
      flex: 1;
      padding: 10px;
    }
    .cell + .cell { border-left: 1px solid #333; }
    .label {
      font-size: 10px;
      text-transform: uppercase;
      color: #555;
      font-weight: 600;
    }
    .value { margin-bottom: 6px; }
    table {
      width: 100%;
      border-collapse: collapse;
    }
    th, td {
      border-bottom: 1px solid #ccc;
      padding: 6px 8px;
      font-size: 12px;
    }
    th {
      background: #f2f2f2;
      text-transform: uppercase;
      font-size: 10px;
      text-align: left;
    }
    .num { text-align: right; }
    .totals td { border-bottom: none; padding: 3px 8px; }
    .grand td {
      border-top: 1px solid #333;
      font-weight: 700;
      font-size: 14px;
    }
    .words {
      padding: 10px;
      border-top: 1px solid #333;
      font-size: 12px;
    }
    .footer {
      display: flex;
      border-top: 1px solid #333;
    }
    .signature {
      text-align: right;
      padding-top: 40px;
      font-weight: 600;
    }
  </style>
</head>
<body>
  <div class="document">
    <div class="doc-title">{{if .Invoice.IsCreditNote}}Credit Note{{else}}Tax Invoice{{end}}</div>

    <div class="grid-2">
      <div class="cell">
        <div class="label">Sold by</div>
        <div class="value">
          <strong>{{.Seller.LegalName}}</strong><br>
          {{range .Seller.AddressLines}}{{.}}<br>{{end}}
          {{.Seller.StateName}} ({{.Seller.StateCode}})
        </div>
        <div class="label">GSTIN</div>
        <div class="value">{{.Seller.GSTIN}}</div>
      </div>
      <div class="cell">
        <div class="label">{{if .Invoice.IsCreditNote}}Credit note number{{else}}Invoice number{{end}}</div>
        <div class="value">{{.Invoice.Number}}</div>
        {{if .Invoice.OriginalNumber}}
        <div class="label">Against invoice</div>
        <div class="value">{{.Invoice.OriginalNumber}}</div>
        {{end}}
        <div class="label">Date</div>
        <div class="value">{{formatDate .Invoice.Date}}</div>
        {{if .Invoice.OrderNumber}}
        <div class="label">Order</div>
        <div class="value">{{.Invoice.OrderNumber}}</div>
        {{end}}
        <div class="label">Place of supply</div>
        <div class="value">{{.Invoice.PlaceOfSupply}}</div>
      </div>
    </div>

    <div class="grid-2">
      <div class="cell">
        <div class="label">Bill to</div>
        <div class="value">
          <strong>{{.Customer.Name}}</strong><br>
          {{range .Customer.AddressLines}}{{.}}<br>{{end}}
        </div>
        {{if .Customer.GSTIN}}
        <div class="label">Customer GSTIN</div>
        <div class="value">{{.Customer.GSTIN}}</div>
        {{end}}
      </div>
    </div>

    <table>
      <thead>
        <tr>
          <th>Item</th>
          <th>HSN</th>
          <th class="num">Qty</th>
          <th class="num">Rate</th>
          <th class="num">Taxable</th>
          <th class="num">GST</th>
          {{if .Totals.IntraState}}
          <th class="num">CGST</th>
          <th class="num">SGST</th>
          {{else}}
          <th class="num">IGST</th>
          {{end}}
          <th class="num">Amount</th>
        </tr>
      </thead>
      <tbody>
        {{range .Lines}}
        <tr>
          <td>{{.Title}}{{if .SKU}}<br><small>{{.SKU}}</small>{{end}}</td>
          <td>{{.HSNCode}}</td>
          <td class="num">{{.Quantity}}</td>
          <td class="num">{{inr .UnitPrice}}</td>
          <td class="num">{{inr .TaxableValue}}</td>
          <td class="num">{{percent .GSTRate}}</td>
          {{if $.Totals.IntraState}}
          <td class="num">{{inr .CGST}}</td>
          <td class="num">{{inr .SGST}}</td>
          {{else}}
          <td class="num">{{inr .IGST}}</td>
          {{end}}
          <td class="num">{{inr .TotalAmount}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>

    {{if .Summary}}
    <table>
      <thead>
        <tr>
          <th>GST rate</th>
          <th class="num">Taxable value</th>
          <th class="num">CGST</th>
          <th class="num">SGST</th>
          <th class="num">IGST</th>
          <th class="num">Total tax</th>
        </tr>
      </thead>
      <tbody>
        {{range .Summary}}
        <tr>
          <td>{{percent .GSTRate}}</td>
          <td class="num">{{inr .TaxableValue}}</td>
          <td class="num">{{inr .CGST}}</td>
          <td class="num">{{inr .SGST}}</td>
          <td class="num">{{inr .IGST}}</td>
          <td class="num">{{inr .TotalTax}}</td>
        </tr>
        {{end}}
      </tbody>
    </table>
    {{end}}

    <table class="totals">
      <tbody>
        <tr><td></td><td class="num">Subtotal</td><td class="num">{{inr .Totals.Subtotal}}</td></tr>
        {{if .Totals.IntraState}}
        <tr><td></td><td class="num">CGST</td><td class="num">{{inr .Totals.TotalCGST}}</td></tr>
        <tr><td></td><td class="num">SGST</td><td class="num">{{inr .Totals.TotalSGST}}</td></tr>
        {{else}}
        <tr><td></td><td class="num">IGST</td><td class="num">{{inr .Totals.TotalIGST}}</td></tr>
        {{end}}
        {{if not .Totals.ShippingCharge.IsZero}}
        <tr><td></td><td class="num">Shipping (incl. tax)</td><td class="num">{{inr .Totals.ShippingCharge}}</td></tr>
        {{end}}
        {{if not .Totals.DiscountAmount.IsZero}}
        <tr><td></td><td class="num">Discount</td><td class="num">-{{inr .Totals.DiscountAmount}}</td></tr>
        {{end}}
        {{if not .Totals.RoundOff.IsZero}}
        <tr><td></td><td class="num">Round off</td><td class="num">{{inr .Totals.RoundOff}}</td></tr>
        {{end}}
        <tr class="grand"><td></td><td class="num">Grand total</td><td class="num">{{inr .Totals.GrandTotal}}</td></tr>
      </tbody>
    </table>

    <div class="words">{{.Totals.AmountInWords}}</div>

    <div class="footer">
      <div class="cell">
        {{if .Seller.BankName}}
        <div class="label">Bank details</div>
        <div class="value">
          {{.Seller.BankName}}<br>
          A/C {{.Seller.BankAccountNo}}<br>
          IFSC {{.Seller.BankIFSC}}
        </div>
        {{end}}
      </div>
      <div class="cell">
        <div class="label">For {{.Seller.LegalName}}</div>
        <div class="signature">{{if .Seller.SignatoryName}}{{.Seller.SignatoryName}}{{end}}<br>Authorised signatory</div>
      </div>
    </div>
  </div>
</body>
</html>
`

type HTMLRenderer struct {
	tpl *template.Template
}

func NewRenderer() Renderer {
	funcs := template.FuncMap{
		"inr":        format.INR,
		"formatDate": format.Date,
		"percent":    format.Percent,
	}
	return &HTMLRenderer{
		tpl: template.Must(template.New("invoice").Funcs(funcs).Parse(invoiceHTMLTemplate)),
	}
}

func (r *HTMLRenderer) RenderHTML(input RenderInput) (string, error) {
	if input.Totals.AmountInWords == "" {
		input.Totals.AmountInWords = format.AmountInWords(input.Totals.GrandTotal)
	}

	var buf bytes.Buffer
	if err := r.tpl.Execute(&buf, input); err != nil {
		return "", err
	}
	return buf.String(), nil
}
