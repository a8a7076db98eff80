package normalize

import (
	"math"

	"github.com/shirakawa-dev/denpyo/internal/entity"
)

// NormalizeTaxRate maps percentage-style rates ("10") to fractions ("0.10").
// Any value above 1 is interpreted as a percentage and divided by 100; values
// at or below 1 pass through unchanged, so the normalization is idempotent
// and must be applied exactly once per item.
func NormalizeTaxRate(rate float64) float64 {
	if rate > 1 {
		return rate / 100
	}
	return rate
}

// Totals is the document-level result of a recompute pass.
type Totals struct {
	Subtotal    int
	TaxAmount   int
	TotalAmount int
}

// RecomputeAmounts recomputes per-item amounts and tax plus document totals.
//
// Each item's amount is quantity*unitPrice; its tax is floor(amount*rate)
// with the item's own rate taking precedence over the document default.
// Monetary rounding is always floor.
//
// A nonzero OCR-supplied total is preserved over the recomputed sum.
// A nonzero current-invoice amount (carried-forward billing) overrides the
// total outright, above even the OCR total.
func RecomputeAmounts(items []entity.LineItem, defaultRate float64, ocrTotal, currentInvoiceAmount int) ([]entity.LineItem, Totals) {
	defaultRate = NormalizeTaxRate(defaultRate)

	out := make([]entity.LineItem, len(items))
	var totals Totals
	for i, item := range items {
		if item.Quantity > 0 && item.UnitPrice > 0 {
			item.Amount = item.Quantity * item.UnitPrice
		}
		rate := defaultRate
		if item.TaxRate > 0 {
			rate = NormalizeTaxRate(item.TaxRate)
		}
		item.TaxRate = rate
		item.TaxAmount = int(math.Floor(float64(item.Amount) * rate))
		totals.Subtotal += item.Amount
		totals.TaxAmount += item.TaxAmount
		out[i] = item
	}

	totals.TotalAmount = totals.Subtotal + totals.TaxAmount
	if ocrTotal != 0 {
		totals.TotalAmount = ocrTotal
	}
	if currentInvoiceAmount != 0 {
		totals.TotalAmount = currentInvoiceAmount
	}
	return out, totals
}
