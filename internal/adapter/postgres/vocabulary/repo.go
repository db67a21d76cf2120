// Package vocabulary implements the VocabularyItem repository using PostgreSQL.
// Fixed-shape queries use raw SQL constants; the filtered list query is built
// dynamically with squirrel.
package vocabulary

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/vokabel-backend/internal/adapter/postgres"
	"github.com/heartmarshall/vokabel-backend/internal/domain"
)

// Repo provides vocabulary persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new vocabulary repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

const itemColumns = `id, user_id, german, spanish, status, last_reviewed, created_at, updated_at`

const createSQL = `
INSERT INTO vocabulary_items (id, user_id, german, spanish, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)
RETURNING ` + itemColumns

const createBatchSQL = `
INSERT INTO vocabulary_items (id, user_id, german, spanish, status, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $6)`

const getByIDSQL = `
SELECT ` + itemColumns + `
FROM vocabulary_items
WHERE id = $1 AND user_id = $2`

const listByUserSQL = `
SELECT ` + itemColumns + `
FROM vocabulary_items
WHERE user_id = $1
ORDER BY created_at DESC`

const updateTextSQL = `
UPDATE vocabulary_items
SET german = $3, spanish = $4, updated_at = now()
WHERE id = $1 AND user_id = $2
RETURNING ` + itemColumns

const updateStatusSQL = `
UPDATE vocabulary_items
SET status = $3, last_reviewed = $4, updated_at = now()
WHERE id = $1 AND user_id = $2
RETURNING ` + itemColumns

const deleteSQL = `DELETE FROM vocabulary_items WHERE id = $1 AND user_id = $2`

const countByStatusSQL = `
SELECT status, count(*) AS count
FROM vocabulary_items
WHERE user_id = $1
GROUP BY status
ORDER BY status`

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns an item by primary key filtered by user_id.
func (r *Repo) GetByID(ctx context.Context, userID, itemID uuid.UUID) (domain.VocabularyItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, getByIDSQL, itemID, userID)
	item, err := scanItem(row)
	if err != nil {
		return domain.VocabularyItem{}, postgres.MapError(err, "vocabulary_item", itemID)
	}

	return item, nil
}

// ListByUser returns the user's full collection, newest first.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.VocabularyItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, listByUserSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list vocabulary_items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// List returns the user's items narrowed by the filter, newest first.
func (r *Repo) List(ctx context.Context, userID uuid.UUID, filter domain.VocabularyFilter) ([]domain.VocabularyItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	builder := sq.Select("id", "user_id", "german", "spanish", "status", "last_reviewed", "created_at", "updated_at").
		From("vocabulary_items").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": *filter.Status})
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		builder = builder.Where(sq.Or{
			sq.ILike{"german": pattern},
			sq.ILike{"spanish": pattern},
		})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		builder = builder.Offset(uint64(filter.Offset))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list vocabulary_items: %w", err)
	}
	defer rows.Close()

	return scanItems(rows)
}

// CountByStatus returns how many items the user has at each status.
func (r *Repo) CountByStatus(ctx context.Context, userID uuid.UUID) ([]domain.StatusCount, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	rows, err := querier.Query(ctx, countByStatusSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("count vocabulary_items by status: %w", err)
	}
	defer rows.Close()

	var counts []domain.StatusCount
	for rows.Next() {
		var sc domain.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		counts = append(counts, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}

	if counts == nil {
		counts = []domain.StatusCount{}
	}

	return counts, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new item and returns the persisted domain.VocabularyItem.
func (r *Repo) Create(ctx context.Context, item domain.VocabularyItem) (domain.VocabularyItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, createSQL,
		item.ID, item.UserID, item.German, item.Spanish, item.Status, item.CreatedAt,
	)
	created, err := scanItem(row)
	if err != nil {
		return domain.VocabularyItem{}, postgres.MapError(err, "vocabulary_item", item.ID)
	}

	return created, nil
}

// CreateBatch inserts many items in a single round trip via pgx batching.
// Returns the number of rows inserted.
func (r *Repo) CreateBatch(ctx context.Context, items []domain.VocabularyItem) (int, error) {
	if len(items) == 0 {
		return 0, nil
	}

	querier := postgres.QuerierFromCtx(ctx, r.pool)

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(createBatchSQL,
			item.ID, item.UserID, item.German, item.Spanish, item.Status, item.CreatedAt,
		)
	}

	results := querier.SendBatch(ctx, batch)
	defer results.Close()

	inserted := 0
	for i := range items {
		tag, err := results.Exec()
		if err != nil {
			return inserted, postgres.MapError(err, "vocabulary_item", items[i].ID)
		}
		inserted += int(tag.RowsAffected())
	}

	return inserted, nil
}

// UpdateText modifies the word pair of an item.
func (r *Repo) UpdateText(ctx context.Context, userID, itemID uuid.UUID, german, spanish string) (domain.VocabularyItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, updateTextSQL, itemID, userID, german, spanish)
	item, err := scanItem(row)
	if err != nil {
		return domain.VocabularyItem{}, postgres.MapError(err, "vocabulary_item", itemID)
	}

	return item, nil
}

// UpdateStatus persists the outcome of a review attempt: the new status and
// the attempt timestamp.
func (r *Repo) UpdateStatus(ctx context.Context, userID, itemID uuid.UUID, params domain.StatusUpdateParams) (domain.VocabularyItem, error) {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	row := querier.QueryRow(ctx, updateStatusSQL, itemID, userID, params.Status, params.LastReviewed)
	item, err := scanItem(row)
	if err != nil {
		return domain.VocabularyItem{}, postgres.MapError(err, "vocabulary_item", itemID)
	}

	return item, nil
}

// Delete removes an item. Returns domain.ErrNotFound if 0 rows affected.
func (r *Repo) Delete(ctx context.Context, userID, itemID uuid.UUID) error {
	querier := postgres.QuerierFromCtx(ctx, r.pool)

	tag, err := querier.Exec(ctx, deleteSQL, itemID, userID)
	if err != nil {
		return postgres.MapError(err, "vocabulary_item", itemID)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("vocabulary_item %s: %w", itemID, domain.ErrNotFound)
	}

	return nil
}

// ---------------------------------------------------------------------------
// Scanning helpers
// ---------------------------------------------------------------------------

func scanItem(row pgx.Row) (domain.VocabularyItem, error) {
	var item domain.VocabularyItem
	err := row.Scan(
		&item.ID, &item.UserID, &item.German, &item.Spanish,
		&item.Status, &item.LastReviewed, &item.CreatedAt, &item.UpdatedAt,
	)
	if err != nil {
		return domain.VocabularyItem{}, err
	}
	return item, nil
}

func scanItems(rows pgx.Rows) ([]domain.VocabularyItem, error) {
	var items []domain.VocabularyItem
	for rows.Next() {
		var item domain.VocabularyItem
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.German, &item.Spanish,
			&item.Status, &item.LastReviewed, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan vocabulary_item: %w", err)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vocabulary_items: %w", err)
	}

	if items == nil {
		items = []domain.VocabularyItem{}
	}

	return items, nil
}
