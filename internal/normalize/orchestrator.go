package normalize

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/shirakawa-dev/denpyo/constants"
	"github.com/shirakawa-dev/denpyo/internal/entity"
	"github.com/shirakawa-dev/denpyo/internal/ocr"
)

// Config holds behavior defaults for the orchestrator.
type Config struct {
	DefaultTaxRate float64 // document-level rate when neither fields nor caller supply one
}

// Orchestrator runs the rule-based normalization passes. It is a pure
// function of its input plus the vocabulary: no mutable state is shared
// across calls, so one instance serves concurrent requests.
type Orchestrator struct {
	vocab  Vocabulary
	cfg    Config
	logger *slog.Logger
}

// Options are per-call hints supplied by the ingesting route.
type Options struct {
	DocType    constants.DocType
	TaxRate    float64  // overrides the fields-supplied document rate when > 0
	ExtraNotes []string // appended to the notes block last, one per line
}

// Result is the outward contract of a normalization call. A failed call
// still returns a well-formed value; ingestion never rejects a document
// outright.
type Result struct {
	Success bool                  `json:"success"`
	Data    *entity.DraftDocument `json:"data,omitempty"`
	Errors  []string              `json:"errors,omitempty"`
}

func NewOrchestrator(vocab Vocabulary, cfg Config, logger *slog.Logger) *Orchestrator {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.DefaultTaxRate <= 0 {
		cfg.DefaultTaxRate = 0.10
	}
	return &Orchestrator{vocab: vocab, cfg: cfg, logger: logger}
}

// Normalize reconstructs a draft document from a raw analyze result. The
// passes (party reconciliation, item extraction, subject/notes) are
// independent and best-effort; a single recover at this level converts any
// escaped panic into a structured failure instead of crashing the request.
func (o *Orchestrator) Normalize(raw ocr.Result, opts Options) (result Result) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error("normalize.panic", "panic", r)
			result = Result{Success: false, Errors: []string{fmt.Sprintf("normalize: %v", r)}}
		}
	}()

	docType := opts.DocType
	if docType == "" {
		docType, _ = constants.ParseDocType(raw.Fields.First("docType", "documentType"))
	}

	o.logger.Info("normalize.start",
		"doc_type", docType,
		"fields", raw.Fields.Len(), "tables", len(raw.Tables), "pages", len(raw.Pages),
	)

	vendor, customer := o.reconcileParties(raw)
	items := o.extractItems(raw)
	subject := o.extractSubject(raw)
	notes := o.buildNotes(raw, subject, opts.ExtraNotes)

	rate := o.documentTaxRate(raw.Fields, opts.TaxRate)
	ocrTotal := ExtractNumber(raw.Fields.First("totalAmount", "total"))
	currentAmount := ExtractNumber(raw.Fields.First("currentInvoiceAmount", "currentBillingAmount"))

	items, totals := RecomputeAmounts(items, rate, ocrTotal, currentAmount)

	doc := &entity.DraftDocument{
		DocType:     docType,
		Subject:     subject,
		Vendor:      vendor,
		Customer:    customer,
		Items:       items,
		Subtotal:    totals.Subtotal,
		TaxRate:     NormalizeTaxRate(rate),
		TaxAmount:   totals.TaxAmount,
		TotalAmount: totals.TotalAmount,
		Notes:       notes,
	}

	o.logger.Info("normalize.ok",
		"doc_type", docType, "vendor", vendor.Name, "customer", customer.Name,
		"items", len(items), "subtotal", totals.Subtotal, "total", totals.TotalAmount,
	)
	return Result{Success: true, Data: doc}
}

// documentTaxRate picks the document-level tax rate: caller option first,
// then the fields section, then the configured default. Values are left
// un-normalized here; RecomputeAmounts normalizes exactly once.
func (o *Orchestrator) documentTaxRate(f ocr.FieldMap, override float64) float64 {
	if override > 0 {
		return override
	}
	if s := f.First("taxRate", "consumptionTaxRate"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v > 0 {
			return v
		}
	}
	return o.cfg.DefaultTaxRate
}
