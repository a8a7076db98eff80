package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/shirakawa-dev/denpyo/internal/common"
	"github.com/shirakawa-dev/denpyo/internal/entity"
)

// DocumentRepository persists and retrieves draft documents.
type DocumentRepository interface {
	Insert(ctx context.Context, doc *entity.DraftDocument) (*entity.DraftDocument, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.DraftDocument, error)
	List(ctx context.Context, fromDate, toDate *time.Time, limit, offset int) ([]*entity.DraftDocument, error)
}

type documentRepository struct {
	db     *sql.DB
	driver string
	logger *slog.Logger
}

func NewDocumentRepository(db *sql.DB, driver string, logger *slog.Logger) DocumentRepository {
	if logger == nil {
		logger = slog.Default()
	}
	return &documentRepository{db: db, driver: driver, logger: logger}
}

func (r *documentRepository) Insert(ctx context.Context, doc *entity.DraftDocument) (*entity.DraftDocument, error) {
	stored := *doc
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	payload, err := json.Marshal(&stored)
	if err != nil {
		return nil, fmt.Errorf("marshal draft: %w", err)
	}

	const q = `
		INSERT INTO draft_documents
		(id, doc_type, subject, vendor_name, customer_name, subtotal, tax_amount, total_amount, status, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = r.db.ExecContext(ctx, rebind(r.driver, q),
		stored.ID.String(),
		string(stored.DocType),
		stored.Subject,
		stored.Vendor.Name,
		stored.Customer.Name,
		stored.Subtotal,
		stored.TaxAmount,
		stored.TotalAmount,
		string(stored.Status),
		string(payload),
		stored.CreatedAt,
	)
	if err != nil {
		r.logger.Error("failed to insert draft document", "id", stored.ID, "error", err)
		return nil, common.WrapError(err, "insert draft document")
	}
	return &stored, nil
}

func (r *documentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.DraftDocument, error) {
	const q = `SELECT payload FROM draft_documents WHERE id = ?`
	var payload string
	err := r.db.QueryRowContext(ctx, rebind(r.driver, q), id.String()).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		r.logger.Error("failed to load draft document", "id", id, "error", err)
		return nil, common.WrapError(err, "load draft document")
	}
	return decodeDraft(payload)
}

func (r *documentRepository) List(ctx context.Context, fromDate, toDate *time.Time, limit, offset int) ([]*entity.DraftDocument, error) {
	q := `SELECT payload FROM draft_documents WHERE 1=1`
	args := make([]any, 0, 4)
	if fromDate != nil {
		q += ` AND created_at >= ?`
		args = append(args, *fromDate)
	}
	if toDate != nil {
		q += ` AND created_at <= ?`
		args = append(args, *toDate)
	}
	q += ` ORDER BY created_at DESC, id LIMIT ? OFFSET ?`
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, rebind(r.driver, q), args...)
	if err != nil {
		r.logger.Error("failed to list draft documents", "error", err)
		return nil, common.WrapError(err, "list draft documents")
	}
	defer rows.Close()

	var result []*entity.DraftDocument
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, common.WrapError(err, "scan draft document")
		}
		doc, err := decodeDraft(payload)
		if err != nil {
			return nil, err
		}
		result = append(result, doc)
	}
	return result, rows.Err()
}

func decodeDraft(payload string) (*entity.DraftDocument, error) {
	var doc entity.DraftDocument
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, fmt.Errorf("decode draft payload: %w", err)
	}
	return &doc, nil
}
