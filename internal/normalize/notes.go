package normalize

import (
	"strconv"
	"strings"

	"github.com/shirakawa-dev/denpyo/constants"
	"github.com/shirakawa-dev/denpyo/internal/ocr"
)

// buildNotes assembles the composite free-text notes field from subsidiary
// structured fields. The block ordering is a fixed contract for golden-output
// compatibility: subject line, cash received/change, receipt number, parking
// block, bank-transfer block, then any externally supplied notes, each on its
// own line.
func (o *Orchestrator) buildNotes(res ocr.Result, subject string, extra []string) string {
	f := res.Fields
	var lines []string
	appendIf := func(label, value string) {
		if value != "" {
			lines = append(lines, label+": "+value)
		}
	}

	if subject != "" {
		lines = append(lines, "件名: "+subject)
	}
	appendIf("お預り金額", yenOrRaw(f.First("cashReceived", "amountReceived")))
	appendIf("お釣り", yenOrRaw(f.First("changeAmount", "change")))
	appendIf("領収書番号", f.First("receiptNumber", "receiptNo"))

	if constants.ReceiptType(f.Get("receiptType")) == constants.ReceiptTypeParking {
		lines = append(lines, "【駐車場利用明細】")
		appendIf("施設名", f.First("parkingFacilityName", "facilityName"))
		appendIf("入庫", f.First("entryTime", "parkingEntryTime"))
		appendIf("出庫", f.First("exitTime", "parkingExitTime"))
		appendIf("駐車時間", f.First("parkingDuration", "duration"))
		appendIf("基本料金", yenOrRaw(f.Get("baseFee")))
		appendIf("追加料金", yenOrRaw(f.Get("additionalFee")))
	}

	if f.Has("bankName") || f.Has("branchName") || f.Has("accountNumber") {
		lines = append(lines, "【お振込先】")
		appendIf("銀行名", f.Get("bankName"))
		appendIf("支店名", f.Get("branchName"))
		appendIf("口座種別", f.Get("accountType"))
		appendIf("口座番号", f.Get("accountNumber"))
		appendIf("口座名義", f.Get("accountHolder"))
	}

	for _, n := range extra {
		if n = strings.TrimSpace(n); n != "" {
			lines = append(lines, n)
		}
	}
	return strings.Join(lines, "\n")
}

// yenOrRaw renders a monetary field as ¥n,nnn when it parses, otherwise
// passes the raw text through.
func yenOrRaw(value string) string {
	if value == "" {
		return ""
	}
	if n := ExtractNumber(value); n > 0 {
		return "¥" + groupDigits(n)
	}
	return value
}

// groupDigits inserts thousands separators.
func groupDigits(n int) string {
	s := strconv.Itoa(n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
