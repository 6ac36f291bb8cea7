// Package pricing derives line and quotation totals from unit prices,
// quantities and tax rates.
package pricing

import (
	"github.com/sangkips/quotedesk-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Amounts are kept to two decimal places.
const places = 2

var hundred = decimal.NewFromInt(100)

// Line is one priced row of a quotation
type Line struct {
	Quantity      int
	SalePrice     decimal.Decimal
	PurchasePrice decimal.Decimal
	TaxRate       decimal.Decimal // percent, e.g. 18
}

// LineTotals holds the derived amounts of a single line
type LineTotals struct {
	Net   decimal.Decimal
	Tax   decimal.Decimal
	Total decimal.Decimal
}

// Totals holds the derived amounts of a whole quotation. Lines is parallel
// to the input slice.
type Totals struct {
	Lines    []LineTotals
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
	Purchase decimal.Decimal
}

// ComputeLine prices a single line.
//
// With exclusive tax the sale price is net: tax = price*qty*rate/100 and
// total = net + tax. With inclusive tax the sale price already carries tax,
// so the gross amount is split back into net and tax and total = gross.
func ComputeLine(l Line, taxType enum.TaxType) LineTotals {
	amount := l.SalePrice.Mul(decimal.NewFromInt(int64(l.Quantity)))

	if taxType == enum.TaxTypeInclusive {
		tax := amount.Mul(l.TaxRate).Div(hundred.Add(l.TaxRate)).Round(places)
		return LineTotals{
			Net:   amount.Sub(tax).Round(places),
			Tax:   tax,
			Total: amount.Round(places),
		}
	}

	tax := amount.Mul(l.TaxRate).Div(hundred).Round(places)
	return LineTotals{
		Net:   amount.Round(places),
		Tax:   tax,
		Total: amount.Add(tax).Round(places),
	}
}

// Compute prices every line and sums the quotation level amounts
func Compute(lines []Line, taxType enum.TaxType) Totals {
	totals := Totals{
		Lines:    make([]LineTotals, len(lines)),
		Subtotal: decimal.Zero,
		Tax:      decimal.Zero,
		Total:    decimal.Zero,
		Purchase: decimal.Zero,
	}

	for i, l := range lines {
		lt := ComputeLine(l, taxType)
		totals.Lines[i] = lt
		totals.Subtotal = totals.Subtotal.Add(lt.Net)
		totals.Tax = totals.Tax.Add(lt.Tax)
		totals.Total = totals.Total.Add(lt.Total)
		totals.Purchase = totals.Purchase.Add(l.PurchasePrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	totals.Purchase = totals.Purchase.Round(places)

	return totals
}

// Margin returns total-purchase and that margin as a percentage of total.
// The percentage is zero when total is not positive.
func Margin(total, purchase decimal.Decimal) (margin, percentage decimal.Decimal) {
	margin = total.Sub(purchase).Round(places)
	if !total.IsPositive() {
		return margin, decimal.Zero
	}
	return margin, margin.Div(total).Mul(hundred).Round(places)
}
