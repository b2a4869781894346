package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/vincent/forexledger/internal/domain"
	"github.com/vincent/forexledger/internal/infrastructure/metrics"
)

const rateCacheTTL = 10 * time.Minute

// RateUseCase keeps the exchange rate table fresh and serves lookups through
// a cache in front of the persisted table.
type RateUseCase struct {
	rateRepo   ExchangeRateRepository
	rateSource RateSource
	cache      Cache
	metrics    *metrics.Metrics
}

// NewRateUseCase creates a new RateUseCase. cache may be nil; lookups then go
// straight to the repository.
func NewRateUseCase(rateRepo ExchangeRateRepository, rateSource RateSource, cache Cache) *RateUseCase {
	return &RateUseCase{
		rateRepo:   rateRepo,
		rateSource: rateSource,
		cache:      cache,
	}
}

// WithMetrics attaches operation counters. Safe to skip in tests.
func (uc *RateUseCase) WithMetrics(m *metrics.Metrics) *RateUseCase {
	uc.metrics = m
	return uc
}

// RefreshRates downloads a bank's published rates, upserts them into the
// table and invalidates the bank's cache entry. Returns the number of rates
// stored.
func (uc *RateUseCase) RefreshRates(ctx context.Context, bank string) (int, error) {
	if err := domain.ValidateBank(bank); err != nil {
		return 0, err
	}

	bank = strings.ToUpper(strings.TrimSpace(bank))

	rates, err := uc.rateSource.FetchRates(ctx, bank)
	if err != nil {
		if uc.metrics != nil {
			uc.metrics.RateFetchErrors.WithLabelValues(bank).Inc()
		}
		return 0, err
	}

	if len(rates) == 0 {
		return 0, nil
	}

	if err := uc.rateRepo.Upsert(ctx, rates); err != nil {
		return 0, err
	}

	if uc.cache != nil {
		// Stale cache is worse than a cold one; eviction failure is not.
		_ = uc.cache.Delete(ctx, rateCacheKey(bank))
	}

	if uc.metrics != nil {
		uc.metrics.RateRefreshes.WithLabelValues(bank).Inc()
		uc.metrics.RatesStored.Set(float64(len(rates)))
	}

	return len(rates), nil
}

// ListRatesByBank returns a bank's current rates, served from cache when
// possible.
func (uc *RateUseCase) ListRatesByBank(ctx context.Context, bank string) ([]*domain.ExchangeRate, error) {
	if err := domain.ValidateBank(bank); err != nil {
		return nil, err
	}

	bank = strings.ToUpper(strings.TrimSpace(bank))

	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, rateCacheKey(bank)); err == nil && cached != "" {
			var rates []*domain.ExchangeRate
			if err := json.Unmarshal([]byte(cached), &rates); err == nil {
				if uc.metrics != nil {
					uc.metrics.RateCacheHits.Inc()
				}
				return rates, nil
			}
		}

		if uc.metrics != nil {
			uc.metrics.RateCacheMisses.Inc()
		}
	}

	rates, err := uc.rateRepo.ListByBank(ctx, bank)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil && len(rates) > 0 {
		if encoded, err := json.Marshal(rates); err == nil {
			_ = uc.cache.Set(ctx, rateCacheKey(bank), string(encoded), rateCacheTTL)
		}
	}

	return rates, nil
}

// GetBuyingRate returns one bank's buying rate for a currency.
func (uc *RateUseCase) GetBuyingRate(ctx context.Context, bank, currency string) (*domain.ExchangeRate, error) {
	return uc.rateRepo.GetByPair(ctx, domain.RatePair{
		Bank:     strings.ToUpper(strings.TrimSpace(bank)),
		Currency: strings.ToUpper(strings.TrimSpace(currency)),
	})
}

func rateCacheKey(bank string) string {
	return "rates:" + bank
}
