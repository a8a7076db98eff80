package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

// draft_documents is a single-table document store: denormalized header
// columns for listing/filtering, full draft JSON as the payload.
const createDraftDocuments = `
CREATE TABLE IF NOT EXISTS draft_documents (
	id            TEXT PRIMARY KEY,
	doc_type      TEXT NOT NULL,
	subject       TEXT NOT NULL DEFAULT '',
	vendor_name   TEXT NOT NULL DEFAULT '',
	customer_name TEXT NOT NULL DEFAULT '',
	subtotal      INTEGER NOT NULL DEFAULT 0,
	tax_amount    INTEGER NOT NULL DEFAULT 0,
	total_amount  INTEGER NOT NULL DEFAULT 0,
	status        TEXT NOT NULL DEFAULT 'CLEAN',
	payload       TEXT NOT NULL,
	created_at    TIMESTAMP NOT NULL
)`

const createDraftDocumentsIdx = `
CREATE INDEX IF NOT EXISTS idx_draft_documents_created_at
ON draft_documents (created_at)`

// Migrate bootstraps the schema. Idempotent; runs at startup.
func Migrate(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	for _, stmt := range []string{createDraftDocuments, createDraftDocumentsIdx} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate draft_documents: %w", err)
		}
	}
	logger.Debug("schema migration complete")
	return nil
}
