package ratesource

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"

	"github.com/vincent/forexledger/internal/domain"
)

// Client fetches published bank rates over HTTP. Transient failures are
// retried with exponential backoff; a 4xx response is permanent.
type Client struct {
	baseURL    string
	httpClient *http.Client

	maxElapsedTime time.Duration
}

// NewClient creates a new rate source client.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		httpClient:     &http.Client{Timeout: 10 * time.Second},
		maxElapsedTime: 30 * time.Second,
	}
}

type rateRow struct {
	Currency    string          `json:"currency"`
	BuyingRate  decimal.Decimal `json:"buying_rate"`
	SellingRate decimal.Decimal `json:"selling_rate"`
}

// FetchRates downloads the bank's current rate sheet.
func (c *Client) FetchRates(ctx context.Context, bank string) ([]*domain.ExchangeRate, error) {
	var rows []rateRow

	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = c.maxElapsedTime

	err := backoff.Retry(func() error {
		var err error
		rows, err = c.fetch(ctx, bank)
		return err
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	rates := make([]*domain.ExchangeRate, 0, len(rows))
	for _, row := range rows {
		rates = append(rates, &domain.ExchangeRate{
			Bank:        bank,
			Currency:    strings.ToUpper(row.Currency),
			BuyingRate:  row.BuyingRate,
			SellingRate: row.SellingRate,
			UpdatedAt:   now,
		})
	}

	return rates, nil
}

func (c *Client) fetch(ctx context.Context, bank string) ([]rateRow, error) {
	url := fmt.Sprintf("%s/api/rates/%s", c.baseURL, strings.ToLower(bank))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, backoff.Permanent(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, backoff.Permanent(fmt.Errorf("rate source rejected request: %s", resp.Status))
	default:
		return nil, fmt.Errorf("rate source returned %s", resp.Status)
	}

	var rows []rateRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, backoff.Permanent(fmt.Errorf("failed to decode rate sheet: %w", err))
	}

	return rows, nil
}
