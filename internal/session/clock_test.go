package session

import (
	"errors"
	"testing"
	"time"
)

func mustLoad(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	if err != nil {
		t.Skipf("tzdata for %s unavailable: %v", name, err)
	}
	return loc
}

func TestIsMarketOpen_NewYork(t *testing.T) {
	ny := mustLoad(t, "America/New_York")
	tests := []struct {
		name string
		at   time.Time
		want bool
	}{
		{"wednesday mid-morning", time.Date(2025, 3, 5, 10, 0, 0, 0, ny), true},
		{"open bound inclusive", time.Date(2025, 3, 5, 9, 30, 0, 0, ny), true},
		{"one ns before open", time.Date(2025, 3, 5, 9, 29, 59, 999999999, ny), false},
		{"last ns before close", time.Date(2025, 3, 5, 15, 59, 59, 999999999, ny), true},
		{"close bound exclusive", time.Date(2025, 3, 5, 16, 0, 0, 0, ny), false},
		{"saturday 10:00", time.Date(2025, 3, 8, 10, 0, 0, 0, ny), false},
		{"sunday 10:00", time.Date(2025, 3, 9, 10, 0, 0, 0, ny), false},
		{"monday 09:45", time.Date(2025, 3, 10, 9, 45, 0, 0, ny), true},
		{"friday 15:00", time.Date(2025, 3, 7, 15, 0, 0, 0, ny), true},
	}
	for _, tt := range tests {
		got, err := IsMarketOpen("America/New_York", tt.at)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s: IsMarketOpen = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsMarketOpen_ConvertsFromUTC(t *testing.T) {
	mustLoad(t, "America/New_York")
	// 14:30 UTC on a summer Wednesday is 10:30 EDT.
	summer := time.Date(2025, 7, 9, 14, 30, 0, 0, time.UTC)
	if open, _ := IsMarketOpen("America/New_York", summer); !open {
		t.Error("expected open at 10:30 EDT")
	}
	// 14:00 UTC on a winter Wednesday is 09:00 EST.
	winter := time.Date(2025, 1, 8, 14, 0, 0, 0, time.UTC)
	if open, _ := IsMarketOpen("America/New_York", winter); open {
		t.Error("expected closed at 09:00 EST")
	}
}

func TestIsMarketOpen_DSTTransitionDay(t *testing.T) {
	ny := mustLoad(t, "America/New_York")
	// 2025-03-10 is the Monday after the spring-forward Sunday.
	opensAt, closesAt := Window(ny, time.Date(2025, 3, 10, 12, 0, 0, 0, ny))
	if _, off := opensAt.Zone(); off != -4*3600 {
		t.Errorf("expected EDT offset on open, got %d", off)
	}
	if got := closesAt.Sub(opensAt); got != 6*time.Hour+30*time.Minute {
		t.Errorf("session length = %v, want 6h30m", got)
	}
}

func TestIsMarketOpen_OtherZone(t *testing.T) {
	london := mustLoad(t, "Europe/London")
	at := time.Date(2025, 3, 5, 10, 0, 0, 0, london)
	open, err := IsMarketOpen("Europe/London", at)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !open {
		t.Error("window is evaluated in the given zone")
	}
}

func TestIsMarketOpen_InvalidTimezone(t *testing.T) {
	for _, name := range []string{"Mars/Olympus_Mons", ""} {
		_, err := IsMarketOpen(name, time.Now())
		if !errors.Is(err, ErrInvalidTimezone) {
			t.Errorf("%q: expected ErrInvalidTimezone, got %v", name, err)
		}
	}
}

func TestCheck_InvalidTimezoneIsClosed(t *testing.T) {
	st := Check("Not/AZone", time.Now())
	if st.Open {
		t.Error("invalid zone must report closed")
	}
	if st.Timezone != "Not/AZone" {
		t.Errorf("timezone = %q", st.Timezone)
	}
}

func TestCheck_ReportsWindow(t *testing.T) {
	ny := mustLoad(t, "America/New_York")
	at := time.Date(2025, 3, 5, 11, 0, 0, 0, ny)
	st := Check("America/New_York", at)
	if !st.Open {
		t.Fatal("expected open")
	}
	if st.OpensAt.Hour() != 9 || st.OpensAt.Minute() != 30 {
		t.Errorf("OpensAt = %v", st.OpensAt)
	}
	if st.ClosesAt.Hour() != 16 {
		t.Errorf("ClosesAt = %v", st.ClosesAt)
	}
}
