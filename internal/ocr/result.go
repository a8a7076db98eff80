// Package ocr models the raw analyze result produced by the upstream OCR
// engine. None of the three sections (fields, tables, pages) is guaranteed to
// be present or internally consistent, so every accessor is absent-tolerant.
package ocr

import (
	"encoding/json"
	"fmt"
)

// Result is the engine-provided analyze result.
type Result struct {
	Fields FieldMap `json:"fields,omitempty"`
	Tables []Table  `json:"tables,omitempty"`
	Pages  []Page   `json:"pages,omitempty"`
}

// Table is a flat list of cells; callers regroup them into a 2D grid.
type Table struct {
	Cells []Cell `json:"cells"`
}

// Cell is one recognized table cell.
type Cell struct {
	RowIndex    int    `json:"rowIndex"`
	ColumnIndex int    `json:"columnIndex"`
	Content     string `json:"content"`
}

// Page is a sequence of recognized text lines with layout geometry.
type Page struct {
	Lines []Line  `json:"lines"`
	Width float64 `json:"width"`
}

// Line is one recognized text line. BoundingBox follows the engine's polygon
// convention: [x1, y1, x2, y2, ...] starting at the top-left corner.
type Line struct {
	Content     string    `json:"content"`
	BoundingBox []float64 `json:"boundingBox,omitempty"`
}

// X returns the left edge of the line's bounding polygon, 0 when geometry is
// missing.
func (l Line) X() float64 {
	if len(l.BoundingBox) == 0 {
		return 0
	}
	return l.BoundingBox[0]
}

// Decode parses raw engine JSON. Unknown keys are ignored; a missing section
// simply leaves the corresponding slice/map empty.
func Decode(data []byte) (Result, error) {
	var r Result
	if err := json.Unmarshal(data, &r); err != nil {
		return Result{}, fmt.Errorf("decode ocr result: %w", err)
	}
	return r, nil
}
