package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vincent/forexledger/internal/domain"
)

const rateColumns = `bank, currency, buying_rate, selling_rate, updated_at`

// ExchangeRateRepository implements usecase.ExchangeRateRepository.
type ExchangeRateRepository struct {
	pool *pgxpool.Pool
}

// NewExchangeRateRepository creates a new ExchangeRateRepository.
func NewExchangeRateRepository(pool *pgxpool.Pool) *ExchangeRateRepository {
	return &ExchangeRateRepository{pool: pool}
}

// Upsert inserts or refreshes one row per (bank, currency) pair.
func (r *ExchangeRateRepository) Upsert(ctx context.Context, rates []*domain.ExchangeRate) error {
	batch := &pgx.Batch{}
	for _, rate := range rates {
		batch.Queue(`
			INSERT INTO exchange_rates (`+rateColumns+`)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (bank, currency) DO UPDATE
			SET buying_rate = EXCLUDED.buying_rate,
			    selling_rate = EXCLUDED.selling_rate,
			    updated_at = EXCLUDED.updated_at`,
			rate.Bank,
			rate.Currency,
			decimalToNumeric(rate.BuyingRate),
			decimalToNumeric(rate.SellingRate),
			timeToPgTimestamptz(rate.UpdatedAt),
		)
	}

	results := r.pool.SendBatch(ctx, batch)
	defer results.Close()

	for range rates {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}

	return results.Close()
}

// GetByPair retrieves the rate for one (bank, currency) pair.
func (r *ExchangeRateRepository) GetByPair(ctx context.Context, pair domain.RatePair) (*domain.ExchangeRate, error) {
	rate, err := scanRate(r.pool.QueryRow(ctx, `
		SELECT `+rateColumns+`
		FROM exchange_rates
		WHERE bank = $1 AND currency = $2`,
		pair.Bank, pair.Currency,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRateNotFound
		}

		return nil, err
	}

	return rate, nil
}

// GetByPairs retrieves rates for several pairs in one round trip. Pairs with
// no stored rate are simply absent from the result.
func (r *ExchangeRateRepository) GetByPairs(ctx context.Context, pairs []domain.RatePair) (map[domain.RatePair]*domain.ExchangeRate, error) {
	result := make(map[domain.RatePair]*domain.ExchangeRate, len(pairs))
	if len(pairs) == 0 {
		return result, nil
	}

	banks := make([]string, 0, len(pairs))
	currencies := make([]string, 0, len(pairs))
	for _, p := range pairs {
		banks = append(banks, p.Bank)
		currencies = append(currencies, p.Currency)
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+rateColumns+`
		FROM exchange_rates
		WHERE (bank, currency) IN (
			SELECT UNNEST($1::text[]), UNNEST($2::text[])
		)`,
		banks, currencies,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		rate, err := scanRate(rows)
		if err != nil {
			return nil, err
		}
		result[rate.Pair()] = rate
	}

	return result, rows.Err()
}

// ListByBank lists a bank's rates ordered by currency.
func (r *ExchangeRateRepository) ListByBank(ctx context.Context, bank string) ([]*domain.ExchangeRate, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+rateColumns+`
		FROM exchange_rates
		WHERE bank = $1
		ORDER BY currency`,
		bank,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rates []*domain.ExchangeRate
	for rows.Next() {
		rate, err := scanRate(rows)
		if err != nil {
			return nil, err
		}
		rates = append(rates, rate)
	}

	return rates, rows.Err()
}

func scanRate(row pgx.Row) (*domain.ExchangeRate, error) {
	var (
		rate        domain.ExchangeRate
		buyingRate  pgtype.Numeric
		sellingRate pgtype.Numeric
		updatedAt   pgtype.Timestamptz
	)

	err := row.Scan(
		&rate.Bank,
		&rate.Currency,
		&buyingRate,
		&sellingRate,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rate.BuyingRate = numericToDecimal(buyingRate)
	rate.SellingRate = numericToDecimal(sellingRate)
	rate.UpdatedAt = updatedAt.Time

	return &rate, nil
}
