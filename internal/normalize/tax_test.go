package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shirakawa-dev/denpyo/internal/entity"
)

func TestNormalizeTaxRate(t *testing.T) {
	assert.InDelta(t, 0.10, NormalizeTaxRate(10), 1e-9)
	assert.InDelta(t, 0.08, NormalizeTaxRate(8), 1e-9)
	assert.InDelta(t, 0.10, NormalizeTaxRate(0.10), 1e-9)
	assert.InDelta(t, 1.0, NormalizeTaxRate(1.0), 1e-9)
	assert.InDelta(t, 0.0, NormalizeTaxRate(0), 1e-9)

	// applying twice must not divide twice
	assert.InDelta(t, 0.10, NormalizeTaxRate(NormalizeTaxRate(10)), 1e-9)
}

func TestRecomputeAmountsBasic(t *testing.T) {
	items := []entity.LineItem{
		{ItemName: "ノートPC", Quantity: 2, UnitPrice: 50000},
		{ItemName: "マウス", Quantity: 3, UnitPrice: 1500},
	}

	out, totals := RecomputeAmounts(items, 0.10, 0, 0)

	assert.Equal(t, 100000, out[0].Amount)
	assert.Equal(t, 10000, out[0].TaxAmount)
	assert.Equal(t, 4500, out[1].Amount)
	assert.Equal(t, 450, out[1].TaxAmount)
	assert.Equal(t, 104500, totals.Subtotal)
	assert.Equal(t, 10450, totals.TaxAmount)
	assert.Equal(t, 114950, totals.TotalAmount)
}

func TestRecomputeAmountsFloorRounding(t *testing.T) {
	items := []entity.LineItem{
		{ItemName: "軽減税率品", Quantity: 1, UnitPrice: 1001, TaxRate: 0.08},
	}

	out, totals := RecomputeAmounts(items, 0.10, 0, 0)

	// 1001 * 0.08 = 80.08 → floor → 80
	assert.Equal(t, 80, out[0].TaxAmount)
	assert.Equal(t, 80, totals.TaxAmount)
}

func TestRecomputeAmountsPercentageItemRate(t *testing.T) {
	items := []entity.LineItem{
		{ItemName: "品", Quantity: 1, UnitPrice: 1000, TaxRate: 8},
	}

	out, _ := RecomputeAmounts(items, 0.10, 0, 0)

	assert.InDelta(t, 0.08, out[0].TaxRate, 1e-9)
	assert.Equal(t, 80, out[0].TaxAmount)
}

func TestRecomputeAmountsOCRTotalWins(t *testing.T) {
	items := []entity.LineItem{
		{ItemName: "品", Quantity: 1, UnitPrice: 1000},
	}

	_, totals := RecomputeAmounts(items, 0.10, 1234, 0)

	assert.Equal(t, 1000, totals.Subtotal)
	assert.Equal(t, 1234, totals.TotalAmount)
}

func TestRecomputeAmountsCurrentInvoiceAmountOverridesAll(t *testing.T) {
	items := []entity.LineItem{
		{ItemName: "品", Quantity: 1, UnitPrice: 1000},
	}

	_, totals := RecomputeAmounts(items, 0.10, 1234, 99999)

	assert.Equal(t, 99999, totals.TotalAmount)
}

func TestRecomputeAmountsKeepsExplicitAmountWhenIncomplete(t *testing.T) {
	items := []entity.LineItem{
		{ItemName: "一式", Quantity: 0, UnitPrice: 0, Amount: 30000},
	}

	out, totals := RecomputeAmounts(items, 0.10, 0, 0)

	assert.Equal(t, 30000, out[0].Amount)
	assert.Equal(t, 3000, out[0].TaxAmount)
	assert.Equal(t, 33000, totals.TotalAmount)
}

func TestRecomputeAmountsEmpty(t *testing.T) {
	out, totals := RecomputeAmounts(nil, 0.10, 0, 0)
	assert.NotNil(t, out)
	assert.Empty(t, out)
	assert.Equal(t, Totals{}, totals)
}
