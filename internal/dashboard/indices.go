package dashboard

import (
	"context"
	"fmt"
	"log"

	"MarketDashboard/internal/calculator"
	"MarketDashboard/internal/interval"
)

// IndexPanel is the rendered state of one index. Exactly one of Chart,
// Notice or Warning is set.
type IndexPanel struct {
	Name      string  `json:"name"`
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	ChangePct float64 `json:"change_pct"`
	Chart     *Series `json:"chart,omitempty"`
	Notice    string  `json:"notice,omitempty"`
	Warning   string  `json:"warning,omitempty"`
}

// IndicesView is the "Market Indices" tab.
type IndicesView struct {
	Trend       string         `json:"trend"`
	Trends      []string       `json:"trends"`
	Query       interval.Query `json:"query"`
	ChangeLabel string         `json:"change_label"`
	Panels      []IndexPanel   `json:"panels"`
}

// Indices fetches every configured index for the trend label. A failing
// index only affects its own panel.
func (s *Service) Indices(ctx context.Context, trend string) (*IndicesView, error) {
	if trend == "" {
		trend = interval.Default
	}
	q, err := interval.Resolve(trend)
	if err != nil {
		return nil, err
	}

	view := &IndicesView{
		Trend:       trend,
		Trends:      interval.Labels(),
		Query:       q,
		ChangeLabel: trend + " Change",
		Panels:      make([]IndexPanel, 0, len(s.IndexList)),
	}
	loc := s.Location()

	for _, idx := range s.IndexList {
		panel := IndexPanel{Name: idx.Name, Symbol: idx.Symbol}

		bars, err := s.Quotes.FetchHistory(ctx, idx.Symbol, q)
		if err != nil {
			log.Printf("[WARN] index %s (%s): %v", idx.Name, idx.Symbol, err)
			panel.Warning = fmt.Sprintf("%s data unavailable: %v", idx.Name, err)
			view.Panels = append(view.Panels, panel)
			continue
		}
		if len(bars) == 0 {
			panel.Notice = fmt.Sprintf("No data available for %s.", idx.Name)
			view.Panels = append(view.Panels, panel)
			continue
		}

		panel.Price, _ = calculator.LastClose(bars)
		if pct, err := calculator.PercentChange(bars); err != nil {
			log.Printf("[WARN] index %s change: %v", idx.Symbol, err)
		} else {
			panel.ChangePct = pct
		}
		panel.Chart = closeSeries(fmt.Sprintf("%s - %s Trend", idx.Name, trend), "Closing Price", bars, q.Interval, loc)
		view.Panels = append(view.Panels, panel)
	}

	return view, nil
}
