package dashboard

import (
	"context"
	"fmt"
	"log"

	"MarketDashboard/internal/model"
	"MarketDashboard/internal/news"
)

const noRecentNews = "No recent news found. Make sure the API key is valid."

// NewsView is the "Market News" tab.
type NewsView struct {
	Category   string          `json:"category"`
	Categories []string        `json:"categories"`
	Articles   []model.Article `json:"articles"`
	Notice     string          `json:"notice,omitempty"`
}

// NewsFeed fetches headlines for a category. A provider failure and an
// empty result produce the same notice; the failure is only logged.
func (s *Service) NewsFeed(ctx context.Context, category string) (*NewsView, error) {
	if category == "" {
		category = news.DefaultCategory
	}
	if !news.ValidCategory(category) {
		return nil, fmt.Errorf("%w: %q", news.ErrUnknownCategory, category)
	}

	view := &NewsView{
		Category:   category,
		Categories: news.Categories(),
		Articles:   []model.Article{},
	}

	var articles []model.Article
	var err error
	if s.News != nil {
		articles, err = s.News.TopHeadlines(ctx, category)
	} else {
		err = news.ErrMissingAPIKey
	}
	if err != nil {
		log.Printf("[WARN] news %s: %v", category, err)
	}
	if len(articles) == 0 {
		view.Notice = noRecentNews
		return view, nil
	}
	view.Articles = articles
	return view, nil
}
