package constants

// ReceiptType discriminates receipt sub-layouts that carry extra structured fields.
type ReceiptType string

const (
	ReceiptTypeGeneral ReceiptType = "general"
	ReceiptTypeParking ReceiptType = "parking"
)

// UnknownPartyName is the placeholder stored when neither OCR field nor page scan
// resolved a party name. A human corrects it later; ingestion never rejects.
const UnknownPartyName = "不明"
