package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vincent/forexledger/internal/domain"
	"github.com/vincent/forexledger/internal/usecase"
)

const entryColumns = `id, book_id, transaction_type, foreign_amount,
	twd_amount, related_book_id, related_book_foreign_amount,
	creator, created_at`

const insertEntrySQL = `
	INSERT INTO entries (` + entryColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool *pgxpool.Pool
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{pool: pool}
}

// Create persists one entry inside a transaction.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.Entry) error {
	_, err := txQuerier(tx).Exec(ctx, insertEntrySQL, entryArgs(entry)...)

	return err
}

// CreateBatch persists several entries inside one transaction. Used for the
// two halves of a cross-book transfer.
func (r *EntryRepository) CreateBatch(ctx context.Context, tx usecase.Transaction, entries []*domain.Entry) error {
	batch := &pgx.Batch{}
	for _, entry := range entries {
		batch.Queue(insertEntrySQL, entryArgs(entry)...)
	}

	results := txQuerier(tx).(pgx.Tx).SendBatch(ctx, batch)
	defer results.Close()

	for range entries {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}

	return results.Close()
}

// ListByBook lists a book's entries, newest first.
func (r *EntryRepository) ListByBook(ctx context.Context, bookID string, limit, offset int) ([]*domain.Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+entryColumns+`
		FROM entries
		WHERE book_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		bookID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*domain.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func entryArgs(entry *domain.Entry) []any {
	return []any{
		entry.ID,
		entry.BookID,
		string(entry.TransactionType),
		decimalToNumeric(entry.ForeignAmount),
		int64PtrToInt8(entry.TwdAmount),
		strPtrToText(entry.RelatedBookID),
		decimalPtrToNumeric(entry.RelatedBookForeignAmount),
		entry.Creator,
		timeToPgTimestamptz(entry.CreatedAt),
	}
}

func scanEntry(row pgx.Row) (*domain.Entry, error) {
	var (
		entry           domain.Entry
		transactionType string
		foreignAmount   pgtype.Numeric
		twdAmount       pgtype.Int8
		relatedBookID   pgtype.Text
		relatedAmount   pgtype.Numeric
		createdAt       pgtype.Timestamptz
	)

	err := row.Scan(
		&entry.ID,
		&entry.BookID,
		&transactionType,
		&foreignAmount,
		&twdAmount,
		&relatedBookID,
		&relatedAmount,
		&entry.Creator,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	entry.TransactionType = domain.TransactionType(transactionType)
	entry.ForeignAmount = numericToDecimal(foreignAmount)
	entry.TwdAmount = int8ToInt64Ptr(twdAmount)
	entry.RelatedBookID = textToStrPtr(relatedBookID)
	entry.RelatedBookForeignAmount = numericToDecimalPtr(relatedAmount)
	entry.CreatedAt = createdAt.Time

	return &entry, nil
}

func strPtrToText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}

	return pgtype.Text{String: *s, Valid: true}
}

func textToStrPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}

	return &t.String
}
