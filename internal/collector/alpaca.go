package collector

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"

	"MarketDashboard/internal/interval"
	"MarketDashboard/internal/model"
)

// Compile-time interface checks.
var (
	_ Fetcher = (*YahooFetcher)(nil)
	_ Fetcher = (*AlpacaFetcher)(nil)
	_ Fetcher = (*MockFetcher)(nil)
)

// AlpacaFetcher implements Fetcher using the Alpaca market-data API.
// Alpaca serves listed equities only; index tickers fail per symbol.
type AlpacaFetcher struct {
	client *marketdata.Client
	now    func() time.Time
}

// NewAlpacaFetcher creates a fetcher for the given credentials. dataURL may be empty.
func NewAlpacaFetcher(apiKey, apiSecret, dataURL string) *AlpacaFetcher {
	opts := marketdata.ClientOpts{
		APIKey:    apiKey,
		APISecret: apiSecret,
	}
	if dataURL != "" {
		opts.BaseURL = dataURL
	}
	return &AlpacaFetcher{
		client: marketdata.NewClient(opts),
		now:    time.Now,
	}
}

func (f *AlpacaFetcher) Name() string { return "alpaca" }

func (f *AlpacaFetcher) FetchHistory(ctx context.Context, symbol string, q interval.Query) ([]model.PriceBar, error) {
	end := f.now()
	return f.FetchRange(ctx, symbol, q.Period.Since(end), end, q.Interval)
}

func (f *AlpacaFetcher) FetchRange(ctx context.Context, symbol string, start, end time.Time, iv interval.SamplingInterval) ([]model.PriceBar, error) {
	if strings.HasPrefix(symbol, "^") {
		return nil, fmt.Errorf("%w: alpaca does not serve index %s", ErrProviderUnavailable, symbol)
	}
	tf, err := alpacaTimeFrame(iv)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw, err := f.client.GetBars(strings.ToUpper(symbol), marketdata.GetBarsRequest{
		TimeFrame: tf,
		Start:     start,
		End:       end,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: alpaca bars: %v", ErrProviderUnavailable, err)
	}

	bars := make([]model.PriceBar, 0, len(raw))
	for _, b := range raw {
		bars = append(bars, model.PriceBar{
			Time:   b.Timestamp,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: float64(b.Volume),
		})
	}
	return bars, nil
}

func alpacaTimeFrame(iv interval.SamplingInterval) (marketdata.TimeFrame, error) {
	switch iv {
	case interval.OneMinute:
		return marketdata.OneMin, nil
	case interval.OneHour:
		return marketdata.OneHour, nil
	case interval.OneDay:
		return marketdata.OneDay, nil
	case interval.OneWeek:
		return marketdata.NewTimeFrame(1, marketdata.Week), nil
	case interval.OneMonth:
		return marketdata.NewTimeFrame(1, marketdata.Month), nil
	}
	return marketdata.TimeFrame{}, fmt.Errorf("%w: %q", interval.ErrUnknownInterval, iv)
}
