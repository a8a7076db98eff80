// Package pipeline wires normalization to persistence: one ingestion call
// runs the orchestrator, validates the draft, flags review candidates, and
// stores the record.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/shirakawa-dev/denpyo/constants"
	"github.com/shirakawa-dev/denpyo/internal/entity"
	"github.com/shirakawa-dev/denpyo/internal/normalize"
	"github.com/shirakawa-dev/denpyo/internal/ocr"
	"github.com/shirakawa-dev/denpyo/internal/repository"
)

// Config holds behavior flags for the ingestion pipeline.
type Config struct {
	SkipPersist bool // one-shot CLI mode: normalize without a database
}

type Pipeline struct {
	Logger       *slog.Logger
	Cfg          Config
	Orchestrator *normalize.Orchestrator
	DocsRepo     repository.DocumentRepository
}

func NewPipeline(logger *slog.Logger, cfg Config, orch *normalize.Orchestrator, docs repository.DocumentRepository) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{Logger: logger, Cfg: cfg, Orchestrator: orch, DocsRepo: docs}
}

// Run executes one OCR ingestion: raw analyze JSON in, persisted draft out.
// A failed or partial extraction still produces a stored record a human can
// correct later; only persistence/validation errors propagate.
func (p *Pipeline) Run(ctx context.Context, rawJSON []byte, opts normalize.Options) (normalize.Result, error) {
	raw, err := ocr.Decode(rawJSON)
	if err != nil {
		// Undecodable input degrades to an empty analyze result: the
		// orchestrator then emits a placeholder draft, matching the
		// always-produce-a-record policy.
		p.Logger.Warn("pipeline.decode_failed", "err", err)
		raw = ocr.Result{}
	}

	result := p.Orchestrator.Normalize(raw, opts)
	if !result.Success || result.Data == nil {
		p.Logger.Error("pipeline.normalize_failed", "errors", result.Errors)
		if result.Data == nil {
			result.Data = placeholderDraft(opts.DocType)
			result.Data.Status = constants.ReviewStatusFailed
		}
	}

	doc := result.Data
	if doc.Status == "" {
		doc.Status = reviewStatus(doc)
	}

	if p.Cfg.SkipPersist {
		return result, nil
	}

	payload, err := json.Marshal(doc)
	if err != nil {
		return result, fmt.Errorf("encode draft: %w", err)
	}
	if err := ValidateJSONAgainstSchema(BuildDraftJSONSchema(), payload); err != nil {
		return result, fmt.Errorf("validate draft: %w", err)
	}

	stored, err := p.DocsRepo.Insert(ctx, doc)
	if err != nil {
		return result, fmt.Errorf("persist draft: %w", err)
	}
	result.Data = stored

	p.Logger.Info("pipeline.ok",
		"id", stored.ID, "doc_type", stored.DocType, "status", stored.Status,
		"vendor", stored.Vendor.Name, "items", len(stored.Items), "total", stored.TotalAmount,
	)
	return result, nil
}

// reviewStatus flags drafts a human should look at: unresolved vendor or no
// line items.
func reviewStatus(doc *entity.DraftDocument) constants.ReviewStatus {
	if doc.Vendor.Name == constants.UnknownPartyName || len(doc.Items) == 0 {
		return constants.ReviewStatusReview
	}
	return constants.ReviewStatusClean
}

// placeholderDraft is stored when orchestration failed outright.
func placeholderDraft(docType constants.DocType) *entity.DraftDocument {
	if docType == "" {
		docType = constants.DocTypeInvoice
	}
	return &entity.DraftDocument{
		DocType:  docType,
		Vendor:   entity.Party{Name: constants.UnknownPartyName},
		Customer: entity.Party{Name: constants.UnknownPartyName},
		Items:    []entity.LineItem{},
	}
}
