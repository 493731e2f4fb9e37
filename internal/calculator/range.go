package calculator

import (
	"math"

	"MarketDashboard/internal/model"
)

// Summary describes a bar series over its whole span.
type Summary struct {
	High        float64 `json:"high"`
	Low         float64 `json:"low"`
	Last        float64 `json:"last"`
	ChangePct   float64 `json:"change_pct"`
	TotalVolume float64 `json:"total_volume"`
}

// PriceRange scans all bars and returns the highest high and lowest low.
func PriceRange(bars []model.PriceBar) (high, low float64, err error) {
	if len(bars) == 0 {
		return 0, 0, ErrEmptySeries
	}
	high = math.Inf(-1)
	low = math.Inf(1)
	for _, b := range bars {
		if b.High > high {
			high = b.High
		}
		if b.Low < low {
			low = b.Low
		}
	}
	return high, low, nil
}

// Summarize computes the range, last close, change and summed volume.
func Summarize(bars []model.PriceBar) (*Summary, error) {
	high, low, err := PriceRange(bars)
	if err != nil {
		return nil, err
	}
	s := &Summary{High: high, Low: low, Last: bars[len(bars)-1].Close}
	if pct, err := PercentChange(bars); err == nil {
		s.ChangePct = pct
	}
	for _, b := range bars {
		s.TotalVolume += b.Volume
	}
	return s, nil
}

// Tail returns the last n bars, or all of them when fewer exist.
func Tail(bars []model.PriceBar, n int) []model.PriceBar {
	if n <= 0 {
		return nil
	}
	if len(bars) <= n {
		return bars
	}
	return bars[len(bars)-n:]
}
