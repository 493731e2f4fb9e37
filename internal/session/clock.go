package session

import (
	"errors"
	"fmt"
	"log"
	"time"
)

// ErrInvalidTimezone is returned when the zone name is not a known IANA identifier.
var ErrInvalidTimezone = errors.New("invalid timezone")

// Regular trading hours, local exchange time.
const (
	openHour    = 9
	openMinute  = 30
	closeHour   = 16
	closeMinute = 0
)

// Status is the result of a session check at a given instant.
type Status struct {
	Open      bool      `json:"open"`
	Timezone  string    `json:"timezone"`
	CheckedAt time.Time `json:"checked_at"`
	OpensAt   time.Time `json:"opens_at"`
	ClosesAt  time.Time `json:"closes_at"`
}

// Window returns the regular session bounds on now's calendar day in loc.
func Window(loc *time.Location, now time.Time) (opensAt, closesAt time.Time) {
	y, m, d := now.In(loc).Date()
	opensAt = time.Date(y, m, d, openHour, openMinute, 0, 0, loc)
	closesAt = time.Date(y, m, d, closeHour, closeMinute, 0, 0, loc)
	return opensAt, closesAt
}

// IsMarketOpen reports whether now falls within [09:30, 16:00) on a weekday
// in the named timezone. Market holidays are not considered.
func IsMarketOpen(timezoneName string, now time.Time) (bool, error) {
	loc, err := loadLocation(timezoneName)
	if err != nil {
		return false, err
	}
	return isOpenIn(loc, now), nil
}

// Check is IsMarketOpen with a closed default: an unknown zone never arms a refresh.
func Check(timezoneName string, now time.Time) Status {
	st := Status{Timezone: timezoneName, CheckedAt: now}
	loc, err := loadLocation(timezoneName)
	if err != nil {
		log.Printf("[WARN] session check: %v, treating market as closed", err)
		return st
	}
	st.Open = isOpenIn(loc, now)
	st.OpensAt, st.ClosesAt = Window(loc, now)
	return st
}

func isOpenIn(loc *time.Location, now time.Time) bool {
	local := now.In(loc)
	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	opensAt, closesAt := Window(loc, now)
	return !local.Before(opensAt) && local.Before(closesAt)
}

func loadLocation(name string) (*time.Location, error) {
	// time.LoadLocation maps "" to UTC; an exchange always has a named zone.
	if name == "" {
		return nil, fmt.Errorf("%w: empty name", ErrInvalidTimezone)
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidTimezone, name, err)
	}
	return loc, nil
}
