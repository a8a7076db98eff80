package normalize

import (
	"regexp"
	"sort"
	"strings"

	"github.com/shirakawa-dev/denpyo/internal/entity"
	"github.com/shirakawa-dev/denpyo/internal/ocr"
)

var (
	reYenSuffix      = regexp.MustCompile(`([0-9０-９][0-9０-９,，]*)\s*円`)
	reYenPrefix      = regexp.MustCompile(`[¥￥]\s*([0-9０-９][0-9０-９,，]*)`)
	reTrailingNumber = regexp.MustCompile(`([0-9０-９][0-9０-９,，]*)\s*$`)
)

// extractItems reconstructs line items. The table strategy runs first; the
// page/line fallback only runs when tables yielded nothing. Discovery order
// is preserved.
func (o *Orchestrator) extractItems(res ocr.Result) []entity.LineItem {
	items := o.itemsFromTables(res.Tables)
	if len(items) == 0 {
		items = o.itemsFromPages(res.Pages)
	}
	return items
}

// itemsFromTables walks each table's cell grid row by row. Row 0 is the
// header row and is skipped. The first non-numeric cell of a row is the item
// name; numeric cells are classified by magnitude, with a second large value
// falling back to the unit-price slot.
func (o *Orchestrator) itemsFromTables(tables []ocr.Table) []entity.LineItem {
	var items []entity.LineItem
	for ti, t := range tables {
		for _, row := range gridRows(t) {
			item, explicitQty := o.assembleRow(row)
			if item.ItemName == "" || o.vocab.IsHeaderText(item.ItemName) {
				continue
			}
			if item.Amount == 0 && item.UnitPrice == 0 {
				continue
			}
			fixSwappedMoneyColumns(&item, explicitQty)
			inferMissingColumn(&item)
			o.logger.Debug("items.table_row",
				"table", ti, "name", item.ItemName,
				"quantity", item.Quantity, "unit_price", item.UnitPrice, "amount", item.Amount,
			)
			items = append(items, item)
		}
	}
	return items
}

// assembleRow classifies the cells of one data row into a line item.
func (o *Orchestrator) assembleRow(cells []string) (entity.LineItem, bool) {
	var item entity.LineItem
	explicitQty := false
	for _, content := range cells {
		content = strings.TrimSpace(content)
		if content == "" {
			continue
		}
		if !IsNumericOnly(content) {
			if item.ItemName == "" {
				item.ItemName = content
			}
			continue
		}
		n := ExtractNumber(content)
		if n == 0 {
			continue
		}
		switch o.vocab.ClassifyAmount(n) {
		case RoleAmount:
			if item.Amount == 0 {
				item.Amount = n
			} else if item.UnitPrice == 0 {
				// second large value fallback
				item.UnitPrice = n
			}
		case RoleQuantity:
			if item.Quantity == 0 {
				item.Quantity = n
				explicitQty = true
			}
		case RoleUnitPrice:
			if item.UnitPrice == 0 {
				item.UnitPrice = n
			}
		}
	}
	return item, explicitQty
}

// fixSwappedMoneyColumns undoes a mis-ordered amount/unit-price assignment.
// When both money slots were filled by magnitude alone, the arithmetic
// quantity*amount == unitPrice proves the two landed in each other's slots.
func fixSwappedMoneyColumns(item *entity.LineItem, explicitQty bool) {
	if !explicitQty || item.Quantity == 0 || item.Amount == 0 || item.UnitPrice == 0 {
		return
	}
	if item.Amount != item.Quantity*item.UnitPrice && item.Quantity*item.Amount == item.UnitPrice {
		item.Amount, item.UnitPrice = item.UnitPrice, item.Amount
	}
}

// inferMissingColumn derives whichever of quantity/unit price/amount is
// absent from the other two.
func inferMissingColumn(item *entity.LineItem) {
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if item.Amount == 0 && item.UnitPrice > 0 {
		item.Amount = item.Quantity * item.UnitPrice
	}
	if item.UnitPrice == 0 && item.Amount > 0 {
		item.UnitPrice = item.Amount / item.Quantity
	}
}

// gridRows groups a table's flat cell list into rows ordered top to bottom,
// cells left to right, with the header row (row 0) dropped.
func gridRows(t ocr.Table) [][]string {
	byRow := make(map[int][]ocr.Cell)
	for _, c := range t.Cells {
		if c.RowIndex == 0 {
			continue
		}
		byRow[c.RowIndex] = append(byRow[c.RowIndex], c)
	}
	rowIdx := make([]int, 0, len(byRow))
	for r := range byRow {
		rowIdx = append(rowIdx, r)
	}
	sort.Ints(rowIdx)

	rows := make([][]string, 0, len(rowIdx))
	for _, r := range rowIdx {
		cells := byRow[r]
		sort.Slice(cells, func(i, j int) bool { return cells[i].ColumnIndex < cells[j].ColumnIndex })
		row := make([]string, len(cells))
		for i, c := range cells {
			row[i] = c.Content
		}
		rows = append(rows, row)
	}
	return rows
}

// itemsFromPages is the free-text fallback: scan each line for an amount
// (円 suffix, ¥ prefix, or a trailing bare number) above the floor, and take
// the item name from the text preceding the match, or from the previous line
// when that is empty. Quantity defaults to 1; free text has no quantity
// column.
func (o *Orchestrator) itemsFromPages(pages []ocr.Page) []entity.LineItem {
	var items []entity.LineItem
	for _, page := range pages {
		for i, line := range page.Lines {
			content := strings.TrimSpace(line.Content)
			if content == "" {
				continue
			}
			amountText, start := matchLineAmount(content)
			if amountText == "" {
				continue
			}
			n := ExtractNumber(amountText)
			if n <= o.vocab.PageAmountFloor {
				continue
			}
			name := strings.Trim(strings.TrimSpace(content[:start]), ":：・")
			if name == "" && i > 0 {
				prev := strings.TrimSpace(page.Lines[i-1].Content)
				if prev != "" && !IsNumericOnly(prev) && !o.vocab.IsHeaderText(prev) {
					name = prev
				}
			}
			if name == "" || o.vocab.IsHeaderText(name) || IsNumericOnly(name) {
				continue
			}
			o.logger.Debug("items.page_line", "name", name, "amount", n)
			items = append(items, entity.LineItem{
				ItemName:  name,
				Quantity:  1,
				UnitPrice: n,
				Amount:    n,
			})
		}
	}
	return items
}

// matchLineAmount finds the amount expression in a free-text line and returns
// the numeric text plus the byte offset where the whole match begins.
func matchLineAmount(content string) (string, int) {
	if loc := reYenSuffix.FindStringSubmatchIndex(content); loc != nil {
		return content[loc[2]:loc[3]], loc[0]
	}
	if loc := reYenPrefix.FindStringSubmatchIndex(content); loc != nil {
		return content[loc[2]:loc[3]], loc[0]
	}
	if loc := reTrailingNumber.FindStringSubmatchIndex(content); loc != nil {
		return content[loc[2]:loc[3]], loc[0]
	}
	return "", 0
}
