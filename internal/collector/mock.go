package collector

import (
	"context"
	"time"

	"MarketDashboard/internal/interval"
	"MarketDashboard/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price  float64
	Count  int
	Bars   map[string][]model.PriceBar // per-symbol override
	Errors map[string]error            // per-symbol failure
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchHistory(_ context.Context, symbol string, _ interval.Query) ([]model.PriceBar, error) {
	return m.lookup(symbol)
}

func (m *MockFetcher) FetchRange(_ context.Context, symbol string, _, _ time.Time, _ interval.SamplingInterval) ([]model.PriceBar, error) {
	return m.lookup(symbol)
}

func (m *MockFetcher) lookup(symbol string) ([]model.PriceBar, error) {
	if err, ok := m.Errors[symbol]; ok {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	count := m.Count
	if count == 0 {
		count = 30
	}
	return generateMockBars(m.Price, count), nil
}

func generateMockBars(basePrice float64, count int) []model.PriceBar {
	bars := make([]model.PriceBar, count)
	start := time.Now().AddDate(0, 0, -count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.PriceBar{
			Time:   start.AddDate(0, 0, i),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
