package interval

import (
	"errors"
	"testing"
	"time"
)

func TestResolve_Table(t *testing.T) {
	tests := []struct {
		label    string
		interval string
		period   string
	}{
		{"Minute", "1 minute", "1 day"},
		{"Hourly", "1 hour", "1 day"},
		{"Daily", "1 day", "5 days"},
		{"Weekly", "1 week", "3 months"},
		{"Monthly", "1 month", "1 year"},
	}
	for _, tt := range tests {
		q, err := Resolve(tt.label)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.label, err)
		}
		if got := q.Interval.Describe(); got != tt.interval {
			t.Errorf("%s: interval = %q, want %q", tt.label, got, tt.interval)
		}
		if got := q.Period.Describe(); got != tt.period {
			t.Errorf("%s: period = %q, want %q", tt.label, got, tt.period)
		}
	}
}

func TestResolve_ProviderCodes(t *testing.T) {
	q, err := Resolve("Weekly")
	if err != nil {
		t.Fatal(err)
	}
	if q.Interval != OneWeek || string(q.Interval) != "1wk" {
		t.Errorf("interval code = %q", q.Interval)
	}
	if q.Period != ThreeMonths || string(q.Period) != "3mo" {
		t.Errorf("period code = %q", q.Period)
	}
}

func TestResolve_UnknownLabel(t *testing.T) {
	for _, label := range []string{"Unknown", "", "minute", "Yearly"} {
		if _, err := Resolve(label); !errors.Is(err, ErrUnknownLabel) {
			t.Errorf("%q: expected ErrUnknownLabel, got %v", label, err)
		}
	}
}

func TestResolve_Deterministic(t *testing.T) {
	for _, label := range Labels() {
		first, err := Resolve(label)
		if err != nil {
			t.Fatalf("%s: %v", label, err)
		}
		for i := 0; i < 10; i++ {
			again, _ := Resolve(label)
			if again != first {
				t.Fatalf("%s: call %d returned %+v, want %+v", label, i, again, first)
			}
		}
	}
}

func TestLabels_OrderAndDefault(t *testing.T) {
	labels := Labels()
	want := []string{"Minute", "Hourly", "Daily", "Weekly", "Monthly"}
	if len(labels) != len(want) {
		t.Fatalf("got %d labels", len(labels))
	}
	for i := range want {
		if labels[i] != want[i] {
			t.Errorf("labels[%d] = %q, want %q", i, labels[i], want[i])
		}
	}
	if labels[0] != Default {
		t.Errorf("Default = %q, first label %q", Default, labels[0])
	}

	// Callers must not be able to mutate the table through the slice.
	labels[0] = "Mutated"
	if Labels()[0] != "Minute" {
		t.Error("Labels returned shared backing storage")
	}
}

func TestParseSamplingInterval(t *testing.T) {
	for _, code := range []string{"1m", "1h", "1d", "1wk", "1mo"} {
		if _, err := ParseSamplingInterval(code); err != nil {
			t.Errorf("%q: %v", code, err)
		}
	}
	if _, err := ParseSamplingInterval("2d"); !errors.Is(err, ErrUnknownInterval) {
		t.Errorf("expected ErrUnknownInterval, got %v", err)
	}
}

func TestLookbackPeriod_Since(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		p    LookbackPeriod
		want time.Time
	}{
		{OneDayBack, time.Date(2025, 6, 14, 12, 0, 0, 0, time.UTC)},
		{FiveDaysBack, time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)},
		{ThreeMonths, time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)},
		{OneYearBack, time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		if got := tt.p.Since(now); !got.Equal(tt.want) {
			t.Errorf("%s: Since = %v, want %v", tt.p, got, tt.want)
		}
	}
}
