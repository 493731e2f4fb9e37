// Package news fetches categorized top headlines from NewsAPI.
package news

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"MarketDashboard/internal/model"
)

const defaultBaseURL = "https://newsapi.org"

var (
	ErrUnknownCategory     = errors.New("unknown news category")
	ErrMissingAPIKey       = errors.New("news api key not configured")
	ErrProviderUnavailable = errors.New("news provider unavailable")
)

var categories = []string{"business", "technology", "general", "science", "health"}

// Categories returns the supported categories in display order.
func Categories() []string {
	return append([]string(nil), categories...)
}

// DefaultCategory is preselected in the UI.
const DefaultCategory = "business"

// ValidCategory reports whether c is one of Categories.
func ValidCategory(c string) bool {
	for _, v := range categories {
		if v == c {
			return true
		}
	}
	return false
}

// DisplayName capitalizes a category for selectors, e.g. "Technology".
func DisplayName(category string) string {
	if category == "" {
		return ""
	}
	return strings.ToUpper(category[:1]) + category[1:]
}

// Client calls the NewsAPI top-headlines endpoint.
type Client struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewClient creates a client with optional proxy support.
func NewClient(baseURL, apiKey, proxyURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   10 * time.Second,
			Transport: transport,
		},
	}
}

type topHeadlinesResponse struct {
	Status   string `json:"status"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Articles []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
	} `json:"articles"`
}

// TopHeadlines returns English headlines for a category. An empty list with a
// nil error means the provider had nothing to report.
func (c *Client) TopHeadlines(ctx context.Context, category string) ([]model.Article, error) {
	if !ValidCategory(category) {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	if c.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("category", category)
	params.Set("language", "en")
	u := c.BaseURL + "/v2/top-headlines?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Api-Key", c.APIKey)
	req.Header.Set("User-Agent", "MarketDashboard/1.0")

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrProviderUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr topHeadlinesResponse
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			return nil, fmt.Errorf("%w: status %d: %s", ErrProviderUnavailable, resp.StatusCode, apiErr.Message)
		}
		return nil, fmt.Errorf("%w: status %d", ErrProviderUnavailable, resp.StatusCode)
	}

	var result topHeadlinesResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrProviderUnavailable, err)
	}
	if result.Status != "" && result.Status != "ok" {
		return nil, fmt.Errorf("%w: %s: %s", ErrProviderUnavailable, result.Code, result.Message)
	}

	articles := make([]model.Article, 0, len(result.Articles))
	for _, a := range result.Articles {
		// publishedAt is RFC 3339; a bad value leaves the zero time
		published, _ := time.Parse(time.RFC3339, a.PublishedAt)
		articles = append(articles, model.Article{
			Title:       a.Title,
			URL:         a.URL,
			PublishedAt: published,
			SourceName:  a.Source.Name,
			Description: a.Description,
		})
	}
	return articles, nil
}
