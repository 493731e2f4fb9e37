package api

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"MarketDashboard/internal/dashboard"
	"MarketDashboard/internal/interval"
	"MarketDashboard/internal/news"
)

const maxInputRunes = 100

// Validator checks query parameters before they reach the dashboard.
type Validator struct {
	symbolRegex *regexp.Regexp
}

var (
	validatorInstance *Validator
	validatorOnce     sync.Once
)

// GetValidator returns the shared validator.
func GetValidator() *Validator {
	validatorOnce.Do(func() {
		validatorInstance = &Validator{
			// Tickers, index carets and exchange suffixes: AAPL, ^GSPC, BRK-B, VOD.L, EURUSD=X
			symbolRegex: regexp.MustCompile(`^\^?[A-Z0-9][A-Z0-9.\-=]{0,14}$`),
		}
	})
	return validatorInstance
}

// ValidateTrend returns the trend label, or an error naming the allowed ones.
func (v *Validator) ValidateTrend(trend string) (string, error) {
	trend = sanitizeInput(trend)
	if trend == "" {
		return interval.Default, nil
	}
	if _, err := interval.Resolve(trend); err != nil {
		return "", fmt.Errorf("invalid trend %q, supported values: %s", trend, strings.Join(interval.Labels(), ", "))
	}
	return trend, nil
}

// ValidateCategory returns the news category, or an error naming the allowed ones.
func (v *Validator) ValidateCategory(category string) (string, error) {
	category = strings.ToLower(sanitizeInput(category))
	if category == "" {
		return news.DefaultCategory, nil
	}
	if !news.ValidCategory(category) {
		return "", fmt.Errorf("invalid category %q, supported values: %s", category, strings.Join(news.Categories(), ", "))
	}
	return category, nil
}

// ValidateStockRequest parses symbol, YYYY-MM-DD dates and the sampling
// interval code. Empty values are left zero so the dashboard applies its defaults.
func (v *Validator) ValidateStockRequest(symbol, start, end, iv string, loc *time.Location) (dashboard.StockRequest, error) {
	var req dashboard.StockRequest

	req.Symbol = strings.ToUpper(sanitizeInput(symbol))
	if req.Symbol != "" && !v.symbolRegex.MatchString(req.Symbol) {
		return req, errors.New("symbol must be 1-15 letters, digits, '.', '-' or '=', optionally prefixed by '^'")
	}

	var err error
	if req.Start, err = parseDate("start", start, loc); err != nil {
		return req, err
	}
	if req.End, err = parseDate("end", end, loc); err != nil {
		return req, err
	}
	if iv = sanitizeInput(iv); iv != "" {
		if req.Interval, err = interval.ParseSamplingInterval(iv); err != nil {
			return req, fmt.Errorf("invalid interval %q, supported values: 1m, 1h, 1d, 1wk, 1mo", iv)
		}
	}
	return req, nil
}

// PageStockRequest is the lenient form used by the HTML page: the symbol is
// passed through as typed and unparseable dates or intervals mark the
// request Invalid so the stock view shows its no-data warning.
func (v *Validator) PageStockRequest(symbol, start, end, iv string, loc *time.Location) dashboard.StockRequest {
	req := dashboard.StockRequest{Symbol: sanitizeInput(symbol)}

	var err error
	if req.Start, err = parseDate("start", start, loc); err != nil {
		req.Invalid = true
	}
	if req.End, err = parseDate("end", end, loc); err != nil {
		req.Invalid = true
	}
	if iv = sanitizeInput(iv); iv != "" {
		if req.Interval, err = interval.ParseSamplingInterval(iv); err != nil {
			req.Invalid = true
		}
	}
	return req
}

func parseDate(name, value string, loc *time.Location) (time.Time, error) {
	value = sanitizeInput(value)
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.ParseInLocation(dashboard.DateLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s must be a date in YYYY-MM-DD form", name)
	}
	return t, nil
}

// sanitizeInput trims whitespace, drops control characters and caps the length.
func sanitizeInput(input string) string {
	input = strings.TrimSpace(input)
	input = strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, input)
	if r := []rune(input); len(r) > maxInputRunes {
		input = string(r[:maxInputRunes])
	}
	return input
}
