package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractNumber(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want int
	}{
		{name: "plain digits", in: "1200", want: 1200},
		{name: "comma separated", in: "50,000", want: 50000},
		{name: "yen prefix", in: "¥100,000", want: 100000},
		{name: "fullwidth yen prefix", in: "￥3,300", want: 3300},
		{name: "yen suffix", in: "2000円", want: 2000},
		{name: "fullwidth digits", in: "２０００", want: 2000},
		{name: "fullwidth comma", in: "1，500", want: 1500},
		{name: "surrounding whitespace", in: "  8,800 ", want: 8800},
		{name: "ideographic space", in: "¥　1,000", want: 1000},
		{name: "decimal floors", in: "1200.5", want: 1200},
		{name: "empty", in: "", want: 0},
		{name: "text", in: "ノートPC", want: 0},
		{name: "mixed text and digits", in: "税込1000", want: 0},
		{name: "negative unsupported", in: "-500", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractNumber(tt.in))
		})
	}
}

func TestIsNumericOnly(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1200", true},
		{"¥50,000", true},
		{"2000円", true},
		{"２０００", true},
		{"12.5", true},
		{"", false},
		{"ノートPC", false},
		{"第2回", false},
		{"03-1234-5678", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsNumericOnly(tt.in), "input %q", tt.in)
	}
}

func TestClassifyAmount(t *testing.T) {
	v := DefaultVocabulary()

	tests := []struct {
		n    int
		want Role
	}{
		{1, RoleQuantity},
		{999, RoleQuantity},
		{1000, RoleUnitPrice},
		{9999, RoleUnitPrice},
		{10000, RoleAmount},
		{1500000, RoleAmount},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, v.ClassifyAmount(tt.n), "value %d", tt.n)
	}
}

func TestClassifyAmountTunableThresholds(t *testing.T) {
	v := DefaultVocabulary()
	v.AmountThreshold = 100
	v.QuantityCeiling = 10

	assert.Equal(t, RoleQuantity, v.ClassifyAmount(9))
	assert.Equal(t, RoleUnitPrice, v.ClassifyAmount(50))
	assert.Equal(t, RoleAmount, v.ClassifyAmount(100))
}
