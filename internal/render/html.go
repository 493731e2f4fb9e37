// Package render turns a dashboard.Page into HTML for browsers and plain
// text for terminals.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/url"
	"slices"
	"sort"

	"MarketDashboard/internal/dashboard"
	"MarketDashboard/internal/news"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// PageTemplate is the name of the top-level HTML template.
const PageTemplate = "page"

var funcs = template.FuncMap{
	"displayName": news.DisplayName,
}

var templates = template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.tmpl"))

// Templates returns the parsed HTML templates, suitable for gin's SetHTMLTemplate.
func Templates() *template.Template {
	return templates
}

// TabLink is one entry of the tab bar. Href keeps the other selections.
type TabLink struct {
	Name   string
	Href   template.URL
	Active bool
}

type chartSpec struct {
	ID     string            `json:"id"`
	Kind   string            `json:"kind"`
	Color  string            `json:"color"`
	Series *dashboard.Series `json:"series"`
}

// HiddenField carries a selection of another view through a form submit.
type HiddenField struct {
	Name  string
	Value string
}

// HTMLData is the template input: the page plus precomputed links and charts.
type HTMLData struct {
	*dashboard.Page
	TabLinks []TabLink
	Charts   []chartSpec

	state url.Values
}

// KeepFields returns the current selections except the ones a form edits
// itself, sorted by name.
func (d *HTMLData) KeepFields(own ...string) []HiddenField {
	names := make([]string, 0, len(d.state))
	for k := range d.state {
		if !slices.Contains(own, k) {
			names = append(names, k)
		}
	}
	sort.Strings(names)

	fields := make([]HiddenField, 0, len(names))
	for _, k := range names {
		fields = append(fields, HiddenField{Name: k, Value: d.state.Get(k)})
	}
	return fields
}

var panelColors = []string{"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b"}

// NewHTMLData prepares p for the page template.
func NewHTMLData(p *dashboard.Page) *HTMLData {
	d := &HTMLData{Page: p, Charts: []chartSpec{}}

	state := url.Values{}
	if p.Indices != nil {
		state.Set("trend", p.Indices.Trend)
		for i, panel := range p.Indices.Panels {
			if panel.Chart == nil {
				continue
			}
			d.Charts = append(d.Charts, chartSpec{
				ID:     fmt.Sprintf("index-%d", i),
				Kind:   "line",
				Color:  panelColors[i%len(panelColors)],
				Series: panel.Chart,
			})
		}
	}
	if p.Stock != nil {
		state.Set("symbol", p.Stock.Symbol)
		state.Set("start", p.Stock.Start)
		state.Set("end", p.Stock.End)
		if p.Stock.CloseChart != nil {
			d.Charts = append(d.Charts, chartSpec{ID: "stock-close", Kind: "line", Color: "#1f77b4", Series: p.Stock.CloseChart})
		}
		if p.Stock.VolumeChart != nil {
			d.Charts = append(d.Charts, chartSpec{ID: "stock-volume", Kind: "bar", Color: "#7f7f7f", Series: p.Stock.VolumeChart})
		}
	}
	if p.News != nil {
		state.Set("category", p.News.Category)
	}
	d.state = state

	for _, name := range dashboard.Tabs() {
		q := url.Values{}
		for k, v := range state {
			q[k] = v
		}
		q.Set("tab", name)
		d.TabLinks = append(d.TabLinks, TabLink{
			Name:   name,
			Href:   template.URL("?" + q.Encode()),
			Active: name == p.Tab,
		})
	}
	return d
}

// WriteHTML renders p as a complete HTML document.
func WriteHTML(w io.Writer, p *dashboard.Page) error {
	if err := templates.ExecuteTemplate(w, PageTemplate, NewHTMLData(p)); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
