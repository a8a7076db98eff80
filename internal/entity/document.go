package entity

import (
	"time"

	"github.com/google/uuid"

	"github.com/shirakawa-dev/denpyo/constants"
)

// Party is one of the two business parties on a document. After
// reconciliation at most one of the two carries the honorific marker, and it
// is always the customer.
type Party struct {
	Name    string `json:"name"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

// LineItem is one reconstructed item row. After recompute,
// Amount == Quantity*UnitPrice within rounding tolerance and
// TaxAmount == floor(Amount * normalized rate).
type LineItem struct {
	ItemName  string  `json:"itemName"`
	Quantity  int     `json:"quantity"`
	UnitPrice int     `json:"unitPrice"`
	Amount    int     `json:"amount"`
	TaxRate   float64 `json:"taxRate,omitempty"`
	TaxAmount int     `json:"taxAmount,omitempty"`
}

// DraftDocument is the assembled record for one OCR ingestion. It is built
// once per call and never mutated after being handed to persistence.
type DraftDocument struct {
	ID          uuid.UUID              `json:"id,omitempty"`
	DocType     constants.DocType      `json:"docType"`
	Subject     string                 `json:"subject"`
	Vendor      Party                  `json:"vendor"`
	Customer    Party                  `json:"customer"`
	Items       []LineItem             `json:"items"`
	Subtotal    int                    `json:"subtotal"`
	TaxRate     float64                `json:"taxRate,omitempty"`
	TaxAmount   int                    `json:"taxAmount"`
	TotalAmount int                    `json:"totalAmount"`
	Notes       string                 `json:"notes,omitempty"`
	Status      constants.ReviewStatus `json:"status,omitempty"`
	CreatedAt   time.Time              `json:"createdAt,omitempty"`
}
