package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shirakawa-dev/denpyo/internal/ocr"
)

func tableFromRows(rows [][]string) ocr.Table {
	var t ocr.Table
	for r, row := range rows {
		for c, content := range row {
			t.Cells = append(t.Cells, ocr.Cell{RowIndex: r, ColumnIndex: c, Content: content})
		}
	}
	return t
}

func TestItemsFromTablesBasicRow(t *testing.T) {
	o := testOrchestrator()
	res := ocr.Result{Tables: []ocr.Table{tableFromRows([][]string{
		{"品名", "数量", "単価", "金額"},
		{"ノートPC", "2", "¥50,000", "¥100,000"},
	})}}

	items := o.extractItems(res)

	require.Len(t, items, 1)
	assert.Equal(t, "ノートPC", items[0].ItemName)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 50000, items[0].UnitPrice)
	assert.Equal(t, 100000, items[0].Amount)
}

func TestItemsFromTablesInfersAmount(t *testing.T) {
	o := testOrchestrator()
	res := ocr.Result{Tables: []ocr.Table{tableFromRows([][]string{
		{"品名", "数量", "単価"},
		{"保守サポート", "3", "5,000"},
	})}}

	items := o.extractItems(res)

	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 5000, items[0].UnitPrice)
	assert.Equal(t, 15000, items[0].Amount)
}

func TestItemsFromTablesInfersUnitPriceAndQuantity(t *testing.T) {
	o := testOrchestrator()
	res := ocr.Result{Tables: []ocr.Table{tableFromRows([][]string{
		{"品名", "金額"},
		{"設置作業費", "¥30,000"},
	})}}

	items := o.extractItems(res)

	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 30000, items[0].UnitPrice)
	assert.Equal(t, 30000, items[0].Amount)
}

func TestItemsFromTablesSkipsHeaderAndEmptyRows(t *testing.T) {
	o := testOrchestrator()
	res := ocr.Result{Tables: []ocr.Table{tableFromRows([][]string{
		{"品名", "数量", "単価", "金額"},
		{"小計", "", "", "¥130,000"}, // header word as name
		{"", "1", "", "¥20,000"},     // no name
		{"メモ", "", "", ""},             // no money value
	})}}

	items := o.extractItems(res)

	assert.Empty(t, items)
}

func TestItemsFromTablesRowOrderPreserved(t *testing.T) {
	o := testOrchestrator()
	table := ocr.Table{Cells: []ocr.Cell{
		// shuffled cell order must not affect row order
		{RowIndex: 2, ColumnIndex: 0, Content: "プリンタ"},
		{RowIndex: 1, ColumnIndex: 1, Content: "1"},
		{RowIndex: 0, ColumnIndex: 0, Content: "品名"},
		{RowIndex: 1, ColumnIndex: 0, Content: "デスク"},
		{RowIndex: 2, ColumnIndex: 1, Content: "¥45,000"},
		{RowIndex: 1, ColumnIndex: 2, Content: "¥12,000"},
	}}

	items := o.extractItems(ocr.Result{Tables: []ocr.Table{table}})

	require.Len(t, items, 2)
	assert.Equal(t, "デスク", items[0].ItemName)
	assert.Equal(t, "プリンタ", items[1].ItemName)
}

func TestItemsFromPagesFallback(t *testing.T) {
	o := testOrchestrator()
	res := ocr.Result{Pages: []ocr.Page{{
		Lines: []ocr.Line{
			{Content: "コンサルティング費用 ¥200,000"},
		},
	}}}

	items := o.extractItems(res)

	require.Len(t, items, 1)
	assert.Equal(t, "コンサルティング費用", items[0].ItemName)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 200000, items[0].UnitPrice)
	assert.Equal(t, 200000, items[0].Amount)
}

func TestItemsFromPagesYenSuffix(t *testing.T) {
	o := testOrchestrator()
	res := ocr.Result{Pages: []ocr.Page{{
		Lines: []ocr.Line{
			{Content: "出張費 35,000円"},
		},
	}}}

	items := o.extractItems(res)

	require.Len(t, items, 1)
	assert.Equal(t, "出張費", items[0].ItemName)
	assert.Equal(t, 35000, items[0].Amount)
}

func TestItemsFromPagesNameFromPreviousLine(t *testing.T) {
	o := testOrchestrator()
	res := ocr.Result{Pages: []ocr.Page{{
		Lines: []ocr.Line{
			{Content: "サーバー構築一式"},
			{Content: "¥450,000"},
		},
	}}}

	items := o.extractItems(res)

	require.Len(t, items, 1)
	assert.Equal(t, "サーバー構築一式", items[0].ItemName)
	assert.Equal(t, 450000, items[0].Amount)
}

func TestItemsFromPagesIgnoresSmallAmounts(t *testing.T) {
	o := testOrchestrator()
	res := ocr.Result{Pages: []ocr.Page{{
		Lines: []ocr.Line{
			{Content: "ページ番号 2"},
			{Content: "手数料 800円"},
		},
	}}}

	assert.Empty(t, o.extractItems(res))
}

func TestTableStrategyWinsOverPages(t *testing.T) {
	o := testOrchestrator()
	res := ocr.Result{
		Tables: []ocr.Table{tableFromRows([][]string{
			{"品名", "金額"},
			{"ライセンス費", "¥60,000"},
		})},
		Pages: []ocr.Page{{
			Lines: []ocr.Line{{Content: "コンサルティング費用 ¥200,000"}},
		}},
	}

	items := o.extractItems(res)

	require.Len(t, items, 1)
	assert.Equal(t, "ライセンス費", items[0].ItemName)
}
