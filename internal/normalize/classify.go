package normalize

import (
	"regexp"
	"strings"
)

// 2-4 / 2-4 / 3-4 digit hyphenated pattern (03-1234-5678, 0120-444-444)
var rePhone = regexp.MustCompile(`\d{2,4}-\d{2,4}-\d{3,4}`)

// IsHeaderText reports whether text contains any item-table column-header
// word (品名, 数量, 単価, ...).
func (v Vocabulary) IsHeaderText(text string) bool {
	for _, w := range v.HeaderWords {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// IsAddressText reports whether text looks like a Japanese address: it
// contains an administrative-unit marker and is not an addressee line.
func (v Vocabulary) IsAddressText(text string) bool {
	if strings.Contains(text, v.Honorific) {
		return false
	}
	for _, m := range v.AdminUnitMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}

// IsPhoneNumber reports whether text contains a hyphenated phone number.
func (v Vocabulary) IsPhoneNumber(text string) bool {
	return rePhone.MatchString(text)
}

// FindPhoneNumber returns the first hyphenated phone number in text, "" when
// none.
func (v Vocabulary) FindPhoneNumber(text string) string {
	return rePhone.FindString(text)
}

// IsCompanyName reports whether text carries a legal-entity marker without
// the honorific; lines with the honorific name the customer, not a company
// block.
func (v Vocabulary) IsCompanyName(text string) bool {
	if strings.Contains(text, v.Honorific) {
		return false
	}
	for _, m := range v.LegalEntityMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
