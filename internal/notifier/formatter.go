package notifier

import (
	"fmt"
	"html"
	"strings"

	"MarketDashboard/internal/dashboard"
	"MarketDashboard/internal/news"
	"MarketDashboard/internal/session"
)

const maxHeadlines = 5

// FormatSession formats the market session status.
func FormatSession(st session.Status) string {
	var b strings.Builder
	if st.Open {
		b.WriteString("📡 <b>Market is open</b>\n")
	} else {
		b.WriteString("⚠️ <b>Market is closed</b>\n")
	}
	if st.Timezone != "" {
		fmt.Fprintf(&b, "Zone: %s\n", html.EscapeString(st.Timezone))
	}
	if !st.OpensAt.IsZero() {
		fmt.Fprintf(&b, "Session: %s - %s\n", st.OpensAt.Format("15:04"), st.ClosesAt.Format("15:04 MST"))
	}
	fmt.Fprintf(&b, "Checked: %s", st.CheckedAt.Format("2006-01-02 15:04:05 MST"))
	return b.String()
}

// FormatIndices formats the indices view as a compact table.
func FormatIndices(v *dashboard.IndicesView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 <b>Global Market Indices</b> | %s\n\n", html.EscapeString(v.Trend))
	for _, p := range v.Panels {
		name := html.EscapeString(p.Name)
		switch {
		case p.Warning != "":
			fmt.Fprintf(&b, "%s: ⚠️ %s\n", name, html.EscapeString(p.Warning))
		case p.Notice != "":
			fmt.Fprintf(&b, "%s: %s\n", name, html.EscapeString(p.Notice))
		default:
			arrow := "🔺"
			if p.ChangePct < 0 {
				arrow = "🔻"
			}
			fmt.Fprintf(&b, "%s <b>%s</b>: %.2f (%+.2f%%)\n", arrow, name, p.Price, p.ChangePct)
		}
	}
	fmt.Fprintf(&b, "\n<i>%s</i>", html.EscapeString(v.ChangeLabel))
	return b.String()
}

// FormatStock formats the single-stock view.
func FormatStock(v *dashboard.StockView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📉 <b>%s</b> | %s to %s\n\n", html.EscapeString(v.Symbol), v.Start, v.End)
	if v.Warning != "" {
		b.WriteString(html.EscapeString(v.Warning))
		return b.String()
	}
	b.WriteString("<pre>")
	b.WriteString("Date         Close     Volume\n")
	for _, bar := range v.Recent {
		fmt.Fprintf(&b, "%s %9.2f %10.0f\n", bar.Time.Format(dashboard.DateLayout), bar.Close, bar.Volume)
	}
	b.WriteString("</pre>")
	if s := v.Summary; s != nil {
		fmt.Fprintf(&b, "\nHigh %.2f | Low %.2f | Last %.2f (%+.2f%%)", s.High, s.Low, s.Last, s.ChangePct)
	}
	return b.String()
}

// FormatNews formats the first few headlines of a news view.
func FormatNews(v *dashboard.NewsView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📰 <b>%s News</b>\n\n", html.EscapeString(news.DisplayName(v.Category)))
	if v.Notice != "" {
		b.WriteString(html.EscapeString(v.Notice))
		return b.String()
	}
	for i, a := range v.Articles {
		if i == maxHeadlines {
			break
		}
		title := html.EscapeString(a.Title)
		if a.URL != "" {
			fmt.Fprintf(&b, "• <a href=\"%s\">%s</a>", html.EscapeString(a.URL), title)
		} else {
			fmt.Fprintf(&b, "• %s", title)
		}
		if a.SourceName != "" {
			fmt.Fprintf(&b, " <i>(%s)</i>", html.EscapeString(a.SourceName))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
