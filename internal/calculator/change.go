package calculator

import (
	"errors"

	"MarketDashboard/internal/model"
)

// ErrEmptySeries is returned when a computation needs at least one bar.
var ErrEmptySeries = errors.New("no bars provided")

// PercentChange returns the move from the first to the last close, in percent.
func PercentChange(bars []model.PriceBar) (float64, error) {
	if len(bars) == 0 {
		return 0, ErrEmptySeries
	}
	first := bars[0].Close
	if first == 0 {
		return 0, errors.New("first close is zero")
	}
	last := bars[len(bars)-1].Close
	return (last - first) / first * 100, nil
}

// LastClose returns the most recent closing price.
func LastClose(bars []model.PriceBar) (float64, error) {
	if len(bars) == 0 {
		return 0, ErrEmptySeries
	}
	return bars[len(bars)-1].Close, nil
}
