package dashboard

import (
	"context"
	"time"

	"MarketDashboard/internal/session"
)

// Tab names, in display order.
const (
	TabIndices = "Market Indices"
	TabStock   = "Stock Data"
	TabNews    = "Market News"
)

// Tabs lists the page tabs in display order.
func Tabs() []string { return []string{TabIndices, TabStock, TabNews} }

// PageRequest carries the UI selections for one render.
type PageRequest struct {
	Trend    string
	Stock    StockRequest
	Category string
	Tab      string
}

// Page is everything needed to render the dashboard once.
type Page struct {
	Title          string         `json:"title"`
	Session        session.Status `json:"session"`
	RefreshSeconds int            `json:"refresh_seconds"`
	GeneratedAt    time.Time      `json:"generated_at"`
	Tab            string         `json:"tab"`
	Indices        *IndicesView   `json:"indices"`
	Stock          *StockView     `json:"stock"`
	News           *NewsView      `json:"news"`
}

// Page computes the whole dashboard. It is the single entry point used by
// each refresh, whether from the browser or a scheduled driver.
func (s *Service) Page(ctx context.Context, req PageRequest) (*Page, error) {
	st := s.Session()

	indices, err := s.Indices(ctx, req.Trend)
	if err != nil {
		return nil, err
	}
	feed, err := s.NewsFeed(ctx, req.Category)
	if err != nil {
		return nil, err
	}

	tab := req.Tab
	switch tab {
	case TabIndices, TabStock, TabNews:
	default:
		tab = TabIndices
	}

	return &Page{
		Title:          "Stock Market Dashboard",
		Session:        st,
		RefreshSeconds: s.RefreshSeconds(st),
		GeneratedAt:    s.now(),
		Tab:            tab,
		Indices:        indices,
		Stock:          s.Stock(ctx, req.Stock),
		News:           feed,
	}, nil
}
