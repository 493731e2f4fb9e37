package render

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"MarketDashboard/internal/dashboard"
	"MarketDashboard/internal/news"
)

const (
	liveBanner   = "Live updates enabled (Market is open)"
	pausedBanner = "Market is closed. Live updates paused."
	footer       = "Built with Go, Yahoo Finance & NewsAPI"
)

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// Sparkline compresses values into at most width block characters.
func Sparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}
	if len(values) > width {
		step := float64(len(values)) / float64(width)
		sampled := make([]float64, width)
		for i := range sampled {
			sampled[i] = values[int(float64(i)*step)]
		}
		sampled[width-1] = values[len(values)-1]
		values = sampled
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	var b strings.Builder
	for _, v := range values {
		i := 0
		if hi > lo {
			i = int((v - lo) / (hi - lo) * float64(len(sparkRunes)-1))
		}
		b.WriteRune(sparkRunes[i])
	}
	return b.String()
}

// WriteText renders every tab of p as plain text.
func WriteText(w io.Writer, p *dashboard.Page) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s  (%s)\n", p.Title, p.GeneratedAt.Format("2006-01-02 15:04:05"))
	if p.Session.Open {
		fmt.Fprintf(&b, "%s, refreshing every %ds\n\n", liveBanner, p.RefreshSeconds)
	} else {
		fmt.Fprintf(&b, "%s\n\n", pausedBanner)
	}

	if p.Indices != nil {
		writeIndices(&b, p.Indices)
	}
	if p.Stock != nil {
		writeStock(&b, p.Stock)
	}
	if p.News != nil {
		writeNews(&b, p.News)
	}
	b.WriteString(footer + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func writeIndices(b *strings.Builder, v *dashboard.IndicesView) {
	fmt.Fprintf(b, "== %s: %s (%s) ==\n", dashboard.TabIndices, v.Trend, v.ChangeLabel)
	tw := tabwriter.NewWriter(b, 0, 0, 2, ' ', 0)
	for _, p := range v.Panels {
		switch {
		case p.Warning != "":
			fmt.Fprintf(tw, "%s\t%s\t! %s\n", p.Name, p.Symbol, p.Warning)
		case p.Notice != "":
			fmt.Fprintf(tw, "%s\t%s\t%s\n", p.Name, p.Symbol, p.Notice)
		default:
			var spark string
			if p.Chart != nil {
				spark = Sparkline(p.Chart.Values, 30)
			}
			fmt.Fprintf(tw, "%s\t%s\t%.2f\t%+.2f%%\t%s\n", p.Name, p.Symbol, p.Price, p.ChangePct, spark)
		}
	}
	tw.Flush()
	b.WriteString("\n")
}

func writeStock(b *strings.Builder, v *dashboard.StockView) {
	fmt.Fprintf(b, "== %s: %s %s to %s ==\n", dashboard.TabStock, v.Symbol, v.Start, v.End)
	if v.Warning != "" {
		fmt.Fprintf(b, "! %s\n\n", v.Warning)
		return
	}
	tw := tabwriter.NewWriter(b, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "Date\tOpen\tHigh\tLow\tClose\tVolume\t")
	for _, bar := range v.Recent {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.0f\t\n",
			bar.Time.Format(dashboard.DateLayout), bar.Open, bar.High, bar.Low, bar.Close, bar.Volume)
	}
	tw.Flush()
	if s := v.Summary; s != nil {
		fmt.Fprintf(b, "Range %.2f - %.2f, last %.2f (%+.2f%%)\n", s.Low, s.High, s.Last, s.ChangePct)
	}
	if v.CloseChart != nil {
		fmt.Fprintf(b, "Close  %s\n", Sparkline(v.CloseChart.Values, 60))
	}
	b.WriteString("\n")
}

func writeNews(b *strings.Builder, v *dashboard.NewsView) {
	fmt.Fprintf(b, "== %s: %s ==\n", dashboard.TabNews, news.DisplayName(v.Category))
	if v.Notice != "" {
		fmt.Fprintf(b, "%s\n\n", v.Notice)
		return
	}
	for _, a := range v.Articles {
		published := "unknown"
		if !a.PublishedAt.IsZero() {
			published = a.PublishedAt.Format("2006-01-02 15:04 MST")
		}
		fmt.Fprintf(b, "* %s\n  %s | %s\n  %s\n", a.Title, a.SourceName, published, a.URL)
	}
	b.WriteString("\n")
}
