package normalize

import (
	"strings"

	"github.com/shirakawa-dev/denpyo/internal/ocr"
)

// extractSubject scans page lines for the subject label (件名) and returns
// the associated text. The remainder of the labeled line wins; when that is
// empty the next line is used unless it repeats the label. First successful
// extraction in document order wins. A value carrying the salutation suffix
// (様分) is customer-facing text, not a subject, and is discarded outright,
// leaving the subject empty.
func (o *Orchestrator) extractSubject(res ocr.Result) string {
	for _, page := range res.Pages {
		for i, line := range page.Lines {
			content := strings.TrimSpace(line.Content)
			idx := strings.Index(content, o.vocab.SubjectLabel)
			if idx < 0 {
				continue
			}
			subject := trimLabelSeparators(content[idx+len(o.vocab.SubjectLabel):])
			if subject == "" && i+1 < len(page.Lines) {
				next := strings.TrimSpace(page.Lines[i+1].Content)
				if next != "" && !strings.Contains(next, o.vocab.SubjectLabel) {
					subject = next
				}
			}
			if subject == "" {
				continue
			}
			if strings.Contains(subject, o.vocab.SalutationSuffix) {
				o.logger.Debug("subject.rejected_salutation", "text", subject)
				return ""
			}
			return subject
		}
	}
	return ""
}

// trimLabelSeparators strips the colon/space punctuation that follows the
// subject label.
func trimLabelSeparators(s string) string {
	return strings.TrimSpace(strings.TrimLeft(s, " 　:：・"))
}
