package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"MarketDashboard/internal/collector"
	"MarketDashboard/internal/config"
	"MarketDashboard/internal/interval"
	"MarketDashboard/internal/model"
	"MarketDashboard/internal/news"
)

// MockQuotes implements collector.Fetcher for testing.
type MockQuotes struct {
	mock.Mock
}

func (m *MockQuotes) Name() string { return "mock-quotes" }

func (m *MockQuotes) FetchHistory(ctx context.Context, symbol string, q interval.Query) ([]model.PriceBar, error) {
	args := m.Called(ctx, symbol, q)
	bars, _ := args.Get(0).([]model.PriceBar)
	return bars, args.Error(1)
}

func (m *MockQuotes) FetchRange(ctx context.Context, symbol string, start, end time.Time, iv interval.SamplingInterval) ([]model.PriceBar, error) {
	args := m.Called(ctx, symbol, start, end, iv)
	bars, _ := args.Get(0).([]model.PriceBar)
	return bars, args.Error(1)
}

// MockHeadlines implements HeadlineSource for testing.
type MockHeadlines struct {
	mock.Mock
}

func (m *MockHeadlines) TopHeadlines(ctx context.Context, category string) ([]model.Article, error) {
	args := m.Called(ctx, category)
	articles, _ := args.Get(0).([]model.Article)
	return articles, args.Error(1)
}

func createTestBars(closes ...float64) []model.PriceBar {
	base := time.Date(2025, 3, 5, 14, 30, 0, 0, time.UTC)
	bars := make([]model.PriceBar, len(closes))
	for i, c := range closes {
		bars[i] = model.PriceBar{
			Time:   base.Add(time.Duration(i) * time.Minute),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: float64(1000 * (i + 1)),
		}
	}
	return bars
}

var wednesdayMorning = time.Date(2025, 3, 5, 15, 0, 0, 0, time.UTC) // 10:00 EST

func newTestService(q *MockQuotes, h *MockHeadlines) *Service {
	svc := &Service{
		Quotes:          q,
		IndexList:       config.DefaultIndices,
		Timezone:        "America/New_York",
		RefreshInterval: 30 * time.Second,
		DefaultSymbol:   "AAPL",
		Now:             func() time.Time { return wednesdayMorning },
	}
	if h != nil {
		svc.News = h
	}
	return svc
}

func TestIndices_OneFailureDoesNotAbortOthers(t *testing.T) {
	q := new(MockQuotes)
	minute, _ := interval.Resolve("Minute")
	q.On("FetchHistory", mock.Anything, "^GSPC", minute).Return(createTestBars(100, 110), nil)
	q.On("FetchHistory", mock.Anything, "^IXIC", minute).Return(nil, errors.New("connection reset"))
	q.On("FetchHistory", mock.Anything, "^DJI", minute).Return(createTestBars(200, 190), nil)
	q.On("FetchHistory", mock.Anything, "^FTSE", minute).Return(createTestBars(50, 50, 55), nil)

	view, err := newTestService(q, nil).Indices(context.Background(), "Minute")
	require.NoError(t, err)
	require.Len(t, view.Panels, 4)
	q.AssertExpectations(t)

	assert.Equal(t, "Minute Change", view.ChangeLabel)

	sp := view.Panels[0]
	assert.Empty(t, sp.Warning)
	assert.InDelta(t, 110, sp.Price, 1e-9)
	assert.InDelta(t, 10, sp.ChangePct, 1e-9)
	require.NotNil(t, sp.Chart)
	assert.Equal(t, "S&P 500 - Minute Trend", sp.Chart.Title)
	assert.Equal(t, []float64{100, 110}, sp.Chart.Values)

	nasdaq := view.Panels[1]
	assert.Equal(t, "NASDAQ data unavailable: connection reset", nasdaq.Warning)
	assert.Nil(t, nasdaq.Chart)

	assert.InDelta(t, 190, view.Panels[2].Price, 1e-9)
	assert.InDelta(t, -5, view.Panels[2].ChangePct, 1e-9)
	assert.InDelta(t, 55, view.Panels[3].Price, 1e-9)
	assert.InDelta(t, 10, view.Panels[3].ChangePct, 1e-9)
}

func TestIndices_EmptySeriesRendersNotice(t *testing.T) {
	q := new(MockQuotes)
	q.On("FetchHistory", mock.Anything, mock.Anything, mock.Anything).Return([]model.PriceBar{}, nil)

	view, err := newTestService(q, nil).Indices(context.Background(), "Daily")
	require.NoError(t, err)
	for _, p := range view.Panels {
		assert.Equal(t, fmt.Sprintf("No data available for %s.", p.Name), p.Notice)
		assert.Nil(t, p.Chart)
		assert.Zero(t, p.ChangePct)
		assert.Empty(t, p.Warning)
	}
}

func TestIndices_DefaultAndUnknownTrend(t *testing.T) {
	q := new(MockQuotes)
	q.On("FetchHistory", mock.Anything, mock.Anything, mock.Anything).Return(createTestBars(1, 2), nil)
	svc := newTestService(q, nil)

	view, err := svc.Indices(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, interval.Default, view.Trend)
	assert.Equal(t, interval.Labels(), view.Trends)

	_, err = svc.Indices(context.Background(), "Fortnightly")
	assert.ErrorIs(t, err, interval.ErrUnknownLabel)
}

func TestStock_DefaultsAndSuccess(t *testing.T) {
	q := new(MockQuotes)
	bars := createTestBars(10, 11, 12, 13, 14, 15, 16)
	q.On("FetchRange", mock.Anything, "AAPL", mock.Anything, mock.Anything, interval.OneDay).Return(bars, nil)

	svc := newTestService(q, nil)
	view := svc.Stock(context.Background(), StockRequest{})

	assert.Equal(t, "AAPL", view.Symbol)
	assert.Equal(t, "2025-03-05", view.End)
	assert.Equal(t, "2024-03-05", view.Start)
	assert.Empty(t, view.Warning)
	require.Len(t, view.Recent, 5)
	assert.InDelta(t, 12, view.Recent[0].Close, 1e-9)
	require.NotNil(t, view.Summary)
	assert.InDelta(t, 16, view.Summary.Last, 1e-9)
	require.NotNil(t, view.CloseChart)
	require.NotNil(t, view.VolumeChart)
	assert.Len(t, view.VolumeChart.Values, len(bars))
	assert.Equal(t, "AAPL Trading Volume", view.VolumeChart.Title)
}

func TestStock_EmptyAndFailure(t *testing.T) {
	q := new(MockQuotes)
	q.On("FetchRange", mock.Anything, "NOPE", mock.Anything, mock.Anything, mock.Anything).Return([]model.PriceBar{}, nil)
	q.On("FetchRange", mock.Anything, "FAIL", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
	svc := newTestService(q, nil)

	empty := svc.Stock(context.Background(), StockRequest{Symbol: " nope "})
	assert.Equal(t, "NOPE", empty.Symbol)
	assert.Equal(t, noStockData, empty.Warning)
	assert.Nil(t, empty.Summary)

	failed := svc.Stock(context.Background(), StockRequest{Symbol: "FAIL"})
	assert.Equal(t, "FAIL data unavailable: timeout", failed.Warning)
}

func TestIndexPanel_FlatChangeIsSerialized(t *testing.T) {
	out, err := json.Marshal(IndexPanel{Name: "FTSE 100", Symbol: "^FTSE", Price: 8000})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"change_pct":0`)
	assert.Contains(t, string(out), `"price":8000`)
}

func TestStock_UnknownYahooSymbolShowsNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer srv.Close()
	yahoo := collector.NewYahooFetcher("")
	yahoo.BaseURL = srv.URL

	svc := newTestService(new(MockQuotes), nil)
	svc.Quotes = yahoo
	view := svc.Stock(context.Background(), StockRequest{Symbol: "notaticker"})
	assert.Equal(t, noStockData, view.Warning)
}

func TestStock_InvertedRangeSkipsFetch(t *testing.T) {
	q := new(MockQuotes)
	svc := newTestService(q, nil)
	view := svc.Stock(context.Background(), StockRequest{
		Symbol: "AAPL",
		Start:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	assert.Equal(t, noStockData, view.Warning)

	view = svc.Stock(context.Background(), StockRequest{Symbol: "brk b", Invalid: true})
	assert.Equal(t, "BRK B", view.Symbol)
	assert.Equal(t, noStockData, view.Warning)
	q.AssertNotCalled(t, "FetchRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestNewsFeed_FailureAndEmptyLookTheSame(t *testing.T) {
	failing := new(MockHeadlines)
	failing.On("TopHeadlines", mock.Anything, "science").Return(nil, fmt.Errorf("%w: status 500", news.ErrProviderUnavailable))
	empty := new(MockHeadlines)
	empty.On("TopHeadlines", mock.Anything, "science").Return([]model.Article{}, nil)

	a, err := newTestService(new(MockQuotes), failing).NewsFeed(context.Background(), "science")
	require.NoError(t, err)
	b, err := newTestService(new(MockQuotes), empty).NewsFeed(context.Background(), "science")
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.Equal(t, noRecentNews, a.Notice)
}

func TestNewsFeed_Articles(t *testing.T) {
	h := new(MockHeadlines)
	h.On("TopHeadlines", mock.Anything, "business").Return([]model.Article{{Title: "Stocks rally", SourceName: "Reuters"}}, nil)

	view, err := newTestService(new(MockQuotes), h).NewsFeed(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "business", view.Category)
	assert.Empty(t, view.Notice)
	require.Len(t, view.Articles, 1)
	assert.Equal(t, "Stocks rally", view.Articles[0].Title)
}

func TestNewsFeed_NoSourceAndUnknownCategory(t *testing.T) {
	svc := newTestService(new(MockQuotes), nil)
	view, err := svc.NewsFeed(context.Background(), "health")
	require.NoError(t, err)
	assert.Equal(t, noRecentNews, view.Notice)

	_, err = svc.NewsFeed(context.Background(), "sports")
	assert.ErrorIs(t, err, news.ErrUnknownCategory)
}

func TestPage_RefreshArmedOnlyWhenOpen(t *testing.T) {
	q := new(MockQuotes)
	q.On("FetchHistory", mock.Anything, mock.Anything, mock.Anything).Return(createTestBars(1, 2), nil)
	q.On("FetchRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(createTestBars(1, 2), nil)
	svc := newTestService(q, nil)

	page, err := svc.Page(context.Background(), PageRequest{})
	require.NoError(t, err)
	assert.True(t, page.Session.Open)
	assert.Equal(t, 30, page.RefreshSeconds)
	assert.Equal(t, TabIndices, page.Tab)
	assert.NotNil(t, page.Indices)
	assert.NotNil(t, page.Stock)
	assert.NotNil(t, page.News)

	svc.Now = func() time.Time { return time.Date(2025, 3, 8, 15, 0, 0, 0, time.UTC) } // Saturday
	page, err = svc.Page(context.Background(), PageRequest{Tab: TabNews})
	require.NoError(t, err)
	assert.False(t, page.Session.Open)
	assert.Zero(t, page.RefreshSeconds)
	assert.Equal(t, TabNews, page.Tab)
}

func TestPage_InvalidTimezoneIsClosed(t *testing.T) {
	q := new(MockQuotes)
	q.On("FetchHistory", mock.Anything, mock.Anything, mock.Anything).Return(createTestBars(1, 2), nil)
	q.On("FetchRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(createTestBars(1, 2), nil)
	svc := newTestService(q, nil)
	svc.Timezone = "Bogus/Zone"

	page, err := svc.Page(context.Background(), PageRequest{})
	require.NoError(t, err)
	assert.False(t, page.Session.Open)
	assert.Zero(t, page.RefreshSeconds)
}

func TestStock_WeeklyInterval(t *testing.T) {
	q := new(MockQuotes)
	q.On("FetchRange", mock.Anything, "MSFT", mock.Anything, mock.Anything, interval.OneWeek).Return(createTestBars(1, 2, 3), nil)

	view := newTestService(q, nil).Stock(context.Background(), StockRequest{Symbol: "msft", Interval: interval.OneWeek})
	q.AssertExpectations(t)
	assert.Equal(t, "1 week", view.Interval)
	assert.Equal(t, "2025-03-05", view.CloseChart.Labels[0])
}
