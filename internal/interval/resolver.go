// Package interval maps trend labels to historical data queries.
package interval

import (
	"errors"
	"fmt"
	"time"
)

// ErrUnknownLabel is returned for a trend label outside the fixed table.
var ErrUnknownLabel = errors.New("unknown trend label")

// ErrUnknownInterval is returned for a sampling code outside the provider vocabulary.
var ErrUnknownInterval = errors.New("unknown sampling interval")

// SamplingInterval is the spacing between bars, encoded as the provider code.
type SamplingInterval string

const (
	OneMinute SamplingInterval = "1m"
	OneHour   SamplingInterval = "1h"
	OneDay    SamplingInterval = "1d"
	OneWeek   SamplingInterval = "1wk"
	OneMonth  SamplingInterval = "1mo"
)

var intervalNames = map[SamplingInterval]string{
	OneMinute: "1 minute",
	OneHour:   "1 hour",
	OneDay:    "1 day",
	OneWeek:   "1 week",
	OneMonth:  "1 month",
}

// Describe returns the human form, e.g. "1 week".
func (s SamplingInterval) Describe() string {
	if n, ok := intervalNames[s]; ok {
		return n
	}
	return string(s)
}

// ParseSamplingInterval validates a provider code.
func ParseSamplingInterval(code string) (SamplingInterval, error) {
	s := SamplingInterval(code)
	if _, ok := intervalNames[s]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownInterval, code)
	}
	return s, nil
}

// LookbackPeriod is the history span ending now, encoded as the provider range code.
type LookbackPeriod string

const (
	OneDayBack   LookbackPeriod = "1d"
	FiveDaysBack LookbackPeriod = "5d"
	ThreeMonths  LookbackPeriod = "3mo"
	OneYearBack  LookbackPeriod = "1y"
)

var periodSpans = map[LookbackPeriod]struct {
	name                string
	years, months, days int
}{
	OneDayBack:   {name: "1 day", days: 1},
	FiveDaysBack: {name: "5 days", days: 5},
	ThreeMonths:  {name: "3 months", months: 3},
	OneYearBack:  {name: "1 year", years: 1},
}

// Describe returns the human form, e.g. "3 months".
func (p LookbackPeriod) Describe() string {
	if s, ok := periodSpans[p]; ok {
		return s.name
	}
	return string(p)
}

// Since returns the start of the lookback span ending at now.
func (p LookbackPeriod) Since(now time.Time) time.Time {
	s := periodSpans[p]
	return now.AddDate(-s.years, -s.months, -s.days)
}

// Query is the (sampling interval, lookback period) pair for one trend label.
type Query struct {
	Interval SamplingInterval `json:"interval"`
	Period   LookbackPeriod   `json:"period"`
}

// Default is the label preselected in the UI.
const Default = "Minute"

var table = []struct {
	label string
	query Query
}{
	{"Minute", Query{OneMinute, OneDayBack}},
	{"Hourly", Query{OneHour, OneDayBack}},
	{"Daily", Query{OneDay, FiveDaysBack}},
	{"Weekly", Query{OneWeek, ThreeMonths}},
	{"Monthly", Query{OneMonth, OneYearBack}},
}

var byLabel = func() map[string]Query {
	m := make(map[string]Query, len(table))
	for _, e := range table {
		m[e.label] = e.query
	}
	return m
}()

// Resolve returns the query for a trend label.
func Resolve(label string) (Query, error) {
	q, ok := byLabel[label]
	if !ok {
		return Query{}, fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	return q, nil
}

// Labels returns the recognised labels in display order.
func Labels() []string {
	out := make([]string, len(table))
	for i, e := range table {
		out[i] = e.label
	}
	return out
}
