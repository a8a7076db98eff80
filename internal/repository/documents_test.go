package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/shirakawa-dev/denpyo/constants"
	"github.com/shirakawa-dev/denpyo/internal/common"
	"github.com/shirakawa-dev/denpyo/internal/entity"
)

func testRepo(t *testing.T) DocumentRepository {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	db.SetMaxOpenConns(1)
	require.NoError(t, Migrate(context.Background(), db, slog.New(slog.DiscardHandler)))
	return NewDocumentRepository(db, "sqlite", slog.New(slog.DiscardHandler))
}

func sampleDraft() *entity.DraftDocument {
	return &entity.DraftDocument{
		DocType:  constants.DocTypeInvoice,
		Subject:  "3月分機器納入",
		Vendor:   entity.Party{Name: "株式会社テスト"},
		Customer: entity.Party{Name: "サンプル商事 御中"},
		Items: []entity.LineItem{
			{ItemName: "ノートPC", Quantity: 2, UnitPrice: 50000, Amount: 100000, TaxRate: 0.10, TaxAmount: 10000},
		},
		Subtotal:    100000,
		TaxRate:     0.10,
		TaxAmount:   10000,
		TotalAmount: 110000,
		Status:      constants.ReviewStatusClean,
	}
}

func TestInsertAndGetByID(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	stored, err := repo.Insert(ctx, sampleDraft())
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, stored.ID)
	require.False(t, stored.CreatedAt.IsZero())

	got, err := repo.GetByID(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, got.ID)
	assert.Equal(t, "3月分機器納入", got.Subject)
	assert.Equal(t, "株式会社テスト", got.Vendor.Name)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 100000, got.Items[0].Amount)
	assert.Equal(t, 110000, got.TotalAmount)
	assert.Equal(t, constants.ReviewStatusClean, got.Status)
}

func TestInsertKeepsCallerID(t *testing.T) {
	repo := testRepo(t)
	id := uuid.New()
	doc := sampleDraft()
	doc.ID = id

	stored, err := repo.Insert(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, id, stored.ID)
}

func TestGetByIDNotFound(t *testing.T) {
	repo := testRepo(t)

	_, err := repo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestListWindowAndPaging(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		doc := sampleDraft()
		doc.Subject = []string{"1月分", "2月分", "3月分"}[i]
		doc.CreatedAt = base.AddDate(0, i-2, 0)
		_, err := repo.Insert(ctx, doc)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, nil, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	// newest first
	assert.Equal(t, "3月分", all[0].Subject)
	assert.Equal(t, "1月分", all[2].Subject)

	from := base.AddDate(0, -1, -1)
	windowed, err := repo.List(ctx, &from, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, windowed, 2)

	page, err := repo.List(ctx, nil, nil, 1, 1)
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "2月分", page[0].Subject)
}
