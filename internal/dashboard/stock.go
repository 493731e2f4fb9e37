package dashboard

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"MarketDashboard/internal/calculator"
	"MarketDashboard/internal/interval"
	"MarketDashboard/internal/model"
)

const (
	// DateLayout is the form used for stock date inputs.
	DateLayout = "2006-01-02"

	recentRows      = 5
	defaultLookback = 365
	noStockData     = "No data found. Please check the stock symbol and date range."
)

// StockRequest selects one symbol over [Start, End). Zero fields take defaults.
// Invalid marks inputs that could not be parsed; the view then carries the
// no-data warning instead of fetching.
type StockRequest struct {
	Symbol   string
	Start    time.Time
	End      time.Time
	Interval interval.SamplingInterval
	Invalid  bool
}

// StockView is the "Stock Data" tab.
type StockView struct {
	Symbol      string              `json:"symbol"`
	Start       string              `json:"start"`
	End         string              `json:"end"`
	Interval    string              `json:"interval"`
	Recent      []model.PriceBar    `json:"recent,omitempty"`
	Summary     *calculator.Summary `json:"summary,omitempty"`
	CloseChart  *Series             `json:"close_chart,omitempty"`
	VolumeChart *Series             `json:"volume_chart,omitempty"`
	Warning     string              `json:"warning,omitempty"`
}

// DefaultStockRequest fills empty fields: the configured symbol and one year ending today.
func (s *Service) DefaultStockRequest(req StockRequest) StockRequest {
	req.Symbol = strings.ToUpper(strings.TrimSpace(req.Symbol))
	if req.Symbol == "" {
		req.Symbol = s.DefaultSymbol
	}
	if req.End.IsZero() {
		y, m, d := s.now().In(s.Location()).Date()
		req.End = time.Date(y, m, d, 0, 0, 0, 0, s.Location())
	}
	if req.Start.IsZero() {
		req.Start = req.End.AddDate(0, 0, -defaultLookback)
	}
	if req.Interval == "" {
		req.Interval = interval.OneDay
	}
	return req
}

// Stock fetches bars for one symbol, daily unless the request says otherwise.
// Failures are reported in the view.
func (s *Service) Stock(ctx context.Context, req StockRequest) *StockView {
	req = s.DefaultStockRequest(req)
	view := &StockView{
		Symbol:   req.Symbol,
		Start:    req.Start.Format(DateLayout),
		End:      req.End.Format(DateLayout),
		Interval: req.Interval.Describe(),
	}

	if req.Invalid || !req.Start.Before(req.End) {
		view.Warning = noStockData
		return view
	}

	bars, err := s.Quotes.FetchRange(ctx, req.Symbol, req.Start, req.End, req.Interval)
	if err != nil {
		log.Printf("[WARN] stock %s: %v", req.Symbol, err)
		view.Warning = fmt.Sprintf("%s data unavailable: %v", req.Symbol, err)
		return view
	}
	if len(bars) == 0 {
		view.Warning = noStockData
		return view
	}

	loc := s.Location()
	view.Recent = calculator.Tail(bars, recentRows)
	view.Summary, _ = calculator.Summarize(bars)
	view.CloseChart = closeSeries(req.Symbol+" Closing Price", "Price", bars, req.Interval, loc)
	view.VolumeChart = volumeSeries(req.Symbol+" Trading Volume", bars, req.Interval, loc)
	return view
}
