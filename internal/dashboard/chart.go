package dashboard

import (
	"time"

	"MarketDashboard/internal/interval"
	"MarketDashboard/internal/model"
)

// Series is one chart line or bar set, ready for the client-side plotter.
type Series struct {
	Title  string    `json:"title"`
	XLabel string    `json:"x_label"`
	YLabel string    `json:"y_label"`
	Labels []string  `json:"labels"`
	Values []float64 `json:"values"`
}

func labelLayout(iv interval.SamplingInterval) string {
	switch iv {
	case interval.OneMinute, interval.OneHour:
		return "01-02 15:04"
	default:
		return "2006-01-02"
	}
}

func closeSeries(title, yLabel string, bars []model.PriceBar, iv interval.SamplingInterval, loc *time.Location) *Series {
	s := newSeries(title, yLabel, bars, iv, loc)
	s.Values = model.Closes(bars)
	return s
}

func volumeSeries(title string, bars []model.PriceBar, iv interval.SamplingInterval, loc *time.Location) *Series {
	s := newSeries(title, "Volume", bars, iv, loc)
	for _, b := range bars {
		s.Values = append(s.Values, b.Volume)
	}
	return s
}

func newSeries(title, yLabel string, bars []model.PriceBar, iv interval.SamplingInterval, loc *time.Location) *Series {
	layout := labelLayout(iv)
	s := &Series{
		Title:  title,
		XLabel: "Date",
		YLabel: yLabel,
		Labels: make([]string, 0, len(bars)),
		Values: make([]float64, 0, len(bars)),
	}
	for _, b := range bars {
		s.Labels = append(s.Labels, b.Time.In(loc).Format(layout))
	}
	return s
}
