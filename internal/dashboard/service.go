// Package dashboard composes the indices, stock and news views from the
// quote and headline providers. Every call is independent; nothing is kept
// between refreshes.
package dashboard

import (
	"context"
	"time"

	"MarketDashboard/internal/collector"
	"MarketDashboard/internal/config"
	"MarketDashboard/internal/model"
	"MarketDashboard/internal/session"
)

// HeadlineSource returns headlines for a category.
type HeadlineSource interface {
	TopHeadlines(ctx context.Context, category string) ([]model.Article, error)
}

// Service builds dashboard views.
type Service struct {
	Quotes          collector.Fetcher
	News            HeadlineSource
	IndexList       []config.Index
	Timezone        string
	RefreshInterval time.Duration
	DefaultSymbol   string
	Now             func() time.Time
}

// NewService wires a Service from configuration.
func NewService(quotes collector.Fetcher, headlines HeadlineSource, cfg *config.Config) *Service {
	return &Service{
		Quotes:          quotes,
		News:            headlines,
		IndexList:       cfg.Market.Indices,
		Timezone:        cfg.Market.Timezone,
		RefreshInterval: cfg.RefreshInterval(),
		DefaultSymbol:   cfg.Market.DefaultSymbol,
		Now:             time.Now,
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// Location is the market timezone, or UTC when the configured zone is unusable.
func (s *Service) Location() *time.Location {
	if loc, err := time.LoadLocation(s.Timezone); err == nil && s.Timezone != "" {
		return loc
	}
	return time.UTC
}

// Session reports whether the market is open right now.
func (s *Service) Session() session.Status {
	return session.Check(s.Timezone, s.now())
}

// RefreshSeconds is the auto-refresh period to arm for st, or 0 when closed.
func (s *Service) RefreshSeconds(st session.Status) int {
	if !st.Open {
		return 0
	}
	return int(s.RefreshInterval / time.Second)
}
