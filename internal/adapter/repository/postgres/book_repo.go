package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/vincent/forexledger/internal/domain"
	"github.com/vincent/forexledger/internal/usecase"
)

// querier is the subset of pgx shared by a pool and a transaction.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const bookColumns = `id, name, bank, currency, creator,
	balance, remaining_twd_fund, break_even_point, twd_profit, profit_rate,
	created_at, updated_at`

// BookRepository implements usecase.BookRepository.
type BookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository creates a new BookRepository.
func NewBookRepository(pool *pgxpool.Pool) *BookRepository {
	return &BookRepository{pool: pool}
}

// Create creates a new book.
func (r *BookRepository) Create(ctx context.Context, book *domain.Book) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO books (`+bookColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		book.ID,
		book.Name,
		book.Bank,
		book.Currency,
		book.Creator,
		decimalToNumeric(book.Balance),
		book.RemainingTwdFund,
		decimalToNumeric(book.BreakEvenPoint),
		int64PtrToInt8(book.TwdProfit),
		decimalPtrToNumeric(book.ProfitRate),
		timeToPgTimestamptz(book.CreatedAt),
		timeToPgTimestamptz(book.UpdatedAt),
	)

	return err
}

// GetByID retrieves a book by ID.
func (r *BookRepository) GetByID(ctx context.Context, id string) (*domain.Book, error) {
	return scanBook(r.pool.QueryRow(ctx, `
		SELECT `+bookColumns+`
		FROM books
		WHERE id = $1`,
		id,
	))
}

// GetByCreator retrieves all books owned by a creator, oldest first.
func (r *BookRepository) GetByCreator(ctx context.Context, creator string) ([]*domain.Book, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bookColumns+`
		FROM books
		WHERE creator = $1
		ORDER BY created_at`,
		creator,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBooks(rows)
}

// GetByIDs retrieves multiple books by ID inside a transaction.
func (r *BookRepository) GetByIDs(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Book, error) {
	rows, err := txQuerier(tx).Query(ctx, `
		SELECT `+bookColumns+`
		FROM books
		WHERE id = ANY($1)
		ORDER BY id`,
		ids,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanBooks(rows)
}

// SaveAll persists the mutable fields of every book inside a transaction.
func (r *BookRepository) SaveAll(ctx context.Context, tx usecase.Transaction, books []*domain.Book) error {
	batch := &pgx.Batch{}
	for _, book := range books {
		batch.Queue(`
			UPDATE books
			SET balance = $2,
			    remaining_twd_fund = $3,
			    break_even_point = $4,
			    twd_profit = $5,
			    profit_rate = $6,
			    updated_at = $7
			WHERE id = $1`,
			book.ID,
			decimalToNumeric(book.Balance),
			book.RemainingTwdFund,
			decimalToNumeric(book.BreakEvenPoint),
			int64PtrToInt8(book.TwdProfit),
			decimalPtrToNumeric(book.ProfitRate),
			timeToPgTimestamptz(book.UpdatedAt),
		)
	}

	results := txQuerier(tx).(pgx.Tx).SendBatch(ctx, batch)
	defer results.Close()

	for range books {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}

	return results.Close()
}

func scanBooks(rows pgx.Rows) ([]*domain.Book, error) {
	var books []*domain.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}

	return books, rows.Err()
}

func scanBook(row pgx.Row) (*domain.Book, error) {
	var (
		book           domain.Book
		balance        pgtype.Numeric
		breakEvenPoint pgtype.Numeric
		twdProfit      pgtype.Int8
		profitRate     pgtype.Numeric
		createdAt      pgtype.Timestamptz
		updatedAt      pgtype.Timestamptz
	)

	err := row.Scan(
		&book.ID,
		&book.Name,
		&book.Bank,
		&book.Currency,
		&book.Creator,
		&balance,
		&book.RemainingTwdFund,
		&breakEvenPoint,
		&twdProfit,
		&profitRate,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookNotFound
		}

		return nil, err
	}

	book.Balance = numericToDecimal(balance)
	book.BreakEvenPoint = numericToDecimal(breakEvenPoint)
	book.TwdProfit = int8ToInt64Ptr(twdProfit)
	book.ProfitRate = numericToDecimalPtr(profitRate)
	book.CreatedAt = createdAt.Time
	book.UpdatedAt = updatedAt.Time

	return &book, nil
}

// txQuerier unwraps the pgx transaction behind a usecase.Transaction.
func txQuerier(tx usecase.Transaction) querier {
	return tx.(*Tx).PgxTx()
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func decimalPtrToNumeric(d *decimal.Decimal) pgtype.Numeric {
	if d == nil {
		return pgtype.Numeric{}
	}

	return decimalToNumeric(*d)
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func numericToDecimalPtr(n pgtype.Numeric) *decimal.Decimal {
	if !n.Valid {
		return nil
	}

	d := numericToDecimal(n)

	return &d
}

func int64PtrToInt8(v *int64) pgtype.Int8 {
	if v == nil {
		return pgtype.Int8{}
	}

	return pgtype.Int8{Int64: *v, Valid: true}
}

func int8ToInt64Ptr(v pgtype.Int8) *int64 {
	if !v.Valid {
		return nil
	}

	return &v.Int64
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}
