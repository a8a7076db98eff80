package normalize

import (
	"regexp"
	"strconv"
	"strings"
)

// Role is the line-item column a bare number is assumed to belong to.
type Role int

const (
	RoleQuantity Role = iota
	RoleUnitPrice
	RoleAmount
)

func (r Role) String() string {
	switch r {
	case RoleQuantity:
		return "quantity"
	case RoleUnitPrice:
		return "unit_price"
	case RoleAmount:
		return "amount"
	default:
		return "unknown"
	}
}

// currency glyphs, separators and whitespace removed before parsing
var currencyStripper = strings.NewReplacer(
	",", "", "，", "",
	"¥", "", "￥", "", "円", "",
	" ", "", "　", "", "\t", "",
)

var reNumeric = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)

// foldWidth maps full-width digits and the full-width decimal point to their
// ASCII forms. OCR output mixes widths freely.
func foldWidth(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= '０' && r <= '９':
			b.WriteRune('0' + (r - '０'))
		case r == '．':
			b.WriteRune('.')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// stripCurrency folds widths and removes commas, whitespace and yen glyphs.
func stripCurrency(text string) string {
	return currencyStripper.Replace(foldWidth(strings.TrimSpace(text)))
}

// ExtractNumber parses a noisy numeric string ("¥50,000", "２０００円") into
// an integer. Decimals are floored. Returns 0 when unparseable; the input
// domain has no negative numbers.
func ExtractNumber(text string) int {
	s := stripCurrency(text)
	if s == "" || !reNumeric.MatchString(s) {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return int(f)
}

// IsNumericOnly reports whether text is digits and decimal points only once
// currency formatting is stripped.
func IsNumericOnly(text string) bool {
	s := stripCurrency(text)
	return s != "" && reNumeric.MatchString(s)
}

// ClassifyAmount assigns a column role to a bare number by magnitude. The
// thresholds come from the vocabulary and can be tuned per deployment.
func (v Vocabulary) ClassifyAmount(n int) Role {
	switch {
	case n >= v.AmountThreshold:
		return RoleAmount
	case n < v.QuantityCeiling:
		return RoleQuantity
	default:
		return RoleUnitPrice
	}
}
