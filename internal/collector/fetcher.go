package collector

import (
	"context"
	"errors"
	"time"

	"MarketDashboard/internal/interval"
	"MarketDashboard/internal/model"
)

// ErrProviderUnavailable wraps any failure reported by a quote provider.
var ErrProviderUnavailable = errors.New("quote provider unavailable")

// Fetcher defines the interface for fetching historical price bars.
// Series are returned in ascending time order; an empty series is not an error.
type Fetcher interface {
	FetchHistory(ctx context.Context, symbol string, q interval.Query) ([]model.PriceBar, error)
	FetchRange(ctx context.Context, symbol string, start, end time.Time, iv interval.SamplingInterval) ([]model.PriceBar, error)
	Name() string
}
