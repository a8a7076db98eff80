// Package normalize reconstructs a structured invoice/quote/receipt draft
// from the heterogeneous analyze result of the upstream OCR engine.
package normalize

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Vocabulary holds the textual conventions the heuristics key on. The
// defaults encode Japanese business-document conventions; every marker is
// data, not code, so tests and future localization can swap them out.
type Vocabulary struct {
	// Honorific is the customer marker (御中). Whichever party carries it is
	// the addressee of the document.
	Honorific string `yaml:"honorific"`

	// SalutationSuffix (様分) identifies text that is customer-facing
	// salutation rather than a real subject.
	SalutationSuffix string `yaml:"salutation_suffix"`

	// SubjectLabel (件名) precedes the document subject on quotes/invoices.
	SubjectLabel string `yaml:"subject_label"`

	// HeaderWords are column-header words of item tables.
	HeaderWords []string `yaml:"header_words"`

	// LegalEntityMarkers identify company names (株式会社 and friends).
	LegalEntityMarkers []string `yaml:"legal_entity_markers"`

	// AdminUnitMarkers are administrative-unit suffixes used for address
	// detection (prefecture/ward/city).
	AdminUnitMarkers []string `yaml:"admin_unit_markers"`

	// AmountThreshold and QuantityCeiling bound the magnitude-based role
	// classification: >= AmountThreshold is money, < QuantityCeiling is a
	// quantity, anything between is a unit price.
	AmountThreshold int `yaml:"amount_threshold"`
	QuantityCeiling int `yaml:"quantity_ceiling"`

	// PageAmountFloor is the minimum value the page/line fallback accepts as
	// a line-item amount; smaller trailing numbers are usually dates or
	// counts.
	PageAmountFloor int `yaml:"page_amount_floor"`
}

// DefaultVocabulary returns the stock Japanese-document vocabulary.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Honorific:        "御中",
		SalutationSuffix: "様分",
		SubjectLabel:     "件名",
		HeaderWords: []string{
			"品名", "商品名", "品目", "項目", "品番",
			"数量", "単価", "金額", "摘要", "備考", "内容", "小計", "合計",
		},
		LegalEntityMarkers: []string{
			"株式会社", "有限会社", "合同会社", "(株)", "(有)", "(同)", "㈱", "㈲",
		},
		AdminUnitMarkers: []string{
			"都", "道", "府", "県", "市", "区", "町", "村",
		},
		AmountThreshold: 10_000,
		QuantityCeiling: 1_000,
		PageAmountFloor: 1_000,
	}
}

// LoadVocabulary reads a YAML override file on top of the defaults. Fields
// absent from the file keep their default values.
func LoadVocabulary(path string) (Vocabulary, error) {
	v := DefaultVocabulary()
	if path == "" {
		return v, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return v, fmt.Errorf("read vocabulary: %w", err)
	}
	if err := yaml.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("parse vocabulary: %w", err)
	}
	if v.AmountThreshold <= 0 {
		v.AmountThreshold = DefaultVocabulary().AmountThreshold
	}
	if v.QuantityCeiling <= 0 {
		v.QuantityCeiling = DefaultVocabulary().QuantityCeiling
	}
	if v.PageAmountFloor <= 0 {
		v.PageAmountFloor = DefaultVocabulary().PageAmountFloor
	}
	return v, nil
}
