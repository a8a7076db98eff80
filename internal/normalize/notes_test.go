package normalize

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shirakawa-dev/denpyo/internal/ocr"
)

func TestBuildNotesBlockOrdering(t *testing.T) {
	o := testOrchestrator()
	res := ocr.Result{Fields: ocr.NewFieldMap(map[string]string{
		"cashReceived":  "10000",
		"changeAmount":  "1200",
		"receiptNumber": "No.20240315-007",
		"bankName":      "サンプル銀行",
		"branchName":    "本店",
		"accountNumber": "1234567",
		"accountHolder": "カ)サンプル",
	})}

	notes := o.buildNotes(res, "駐車場代", []string{"3月分", "担当: 田中"})

	want := strings.Join([]string{
		"件名: 駐車場代",
		"お預り金額: ¥10,000",
		"お釣り: ¥1,200",
		"領収書番号: No.20240315-007",
		"【お振込先】",
		"銀行名: サンプル銀行",
		"支店名: 本店",
		"口座番号: 1234567",
		"口座名義: カ)サンプル",
		"3月分",
		"担当: 田中",
	}, "\n")
	assert.Equal(t, want, notes)
}

func TestBuildNotesParkingBlock(t *testing.T) {
	o := testOrchestrator()
	res := ocr.Result{Fields: ocr.NewFieldMap(map[string]string{
		"receiptType":         "parking",
		"parkingFacilityName": "タイムズ新宿第3",
		"entryTime":           "2024-03-15 09:12",
		"exitTime":            "2024-03-15 11:45",
		"parkingDuration":     "2時間33分",
		"baseFee":             "440",
		"additionalFee":       "880",
	})}

	notes := o.buildNotes(res, "", nil)

	want := strings.Join([]string{
		"【駐車場利用明細】",
		"施設名: タイムズ新宿第3",
		"入庫: 2024-03-15 09:12",
		"出庫: 2024-03-15 11:45",
		"駐車時間: 2時間33分",
		"基本料金: ¥440",
		"追加料金: ¥880",
	}, "\n")
	assert.Equal(t, want, notes)
}

func TestBuildNotesParkingBlockRequiresDiscriminator(t *testing.T) {
	o := testOrchestrator()
	res := ocr.Result{Fields: ocr.NewFieldMap(map[string]string{
		"parkingFacilityName": "タイムズ新宿第3",
	})}

	assert.Equal(t, "", o.buildNotes(res, "", nil))
}

func TestBuildNotesEmpty(t *testing.T) {
	o := testOrchestrator()
	assert.Equal(t, "", o.buildNotes(ocr.Result{}, "", nil))
	assert.Equal(t, "", o.buildNotes(ocr.Result{}, "", []string{"  ", ""}))
}
