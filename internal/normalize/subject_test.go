package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shirakawa-dev/denpyo/internal/ocr"
)

func pageWithLines(lines ...string) ocr.Result {
	p := ocr.Page{}
	for _, l := range lines {
		p.Lines = append(p.Lines, ocr.Line{Content: l})
	}
	return ocr.Result{Pages: []ocr.Page{p}}
}

func TestExtractSubject(t *testing.T) {
	o := testOrchestrator()

	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{
			name:  "same line with fullwidth colon",
			lines: []string{"件名：Webサイト制作"},
			want:  "Webサイト制作",
		},
		{
			name:  "same line with ascii colon and space",
			lines: []string{"件名: システム保守契約"},
			want:  "システム保守契約",
		},
		{
			name:  "label only, next line carries the subject",
			lines: []string{"件名", "サーバー移行作業"},
			want:  "サーバー移行作業",
		},
		{
			name:  "next line repeating the label is ignored",
			lines: []string{"お見積り", "件名", "件名"},
			want:  "",
		},
		{
			name:  "salutation text is discarded, not substituted",
			lines: []string{"件名", "ABC商事様分", "件名：本当の件名"},
			want:  "",
		},
		{
			name:  "first match wins",
			lines: []string{"件名：最初の件名", "件名：二番目の件名"},
			want:  "最初の件名",
		},
		{
			name:  "no label",
			lines: []string{"請求書", "合計 ¥100,000"},
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, o.extractSubject(pageWithLines(tt.lines...)))
		})
	}
}

func TestExtractSubjectNoPages(t *testing.T) {
	o := testOrchestrator()
	assert.Equal(t, "", o.extractSubject(ocr.Result{}))
}
