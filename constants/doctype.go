package constants

import "strings"

// DocType is the canonical document type for rows in draft_documents.
type DocType string

// Stable values (store these exact strings in DB).
const (
	DocTypeInvoice DocType = "INVOICE"
	DocTypeQuote   DocType = "QUOTE"
	DocTypeReceipt DocType = "RECEIPT"
)

var allDocTypes = []DocType{DocTypeInvoice, DocTypeQuote, DocTypeReceipt}

// DocTypeStrings returns the allowed doc_type values for validation and schemas.
func DocTypeStrings() []string {
	result := make([]string, len(allDocTypes))
	for i, dt := range allDocTypes {
		result[i] = string(dt)
	}
	return result
}

// ParseDocType canonicalizes user input; unknown input falls back to INVOICE.
func ParseDocType(input string) (DocType, bool) {
	switch strings.ToUpper(strings.TrimSpace(input)) {
	case "INVOICE", "請求書":
		return DocTypeInvoice, true
	case "QUOTE", "QUOTATION", "ESTIMATE", "見積書":
		return DocTypeQuote, true
	case "RECEIPT", "領収書":
		return DocTypeReceipt, true
	default:
		return DocTypeInvoice, false
	}
}
