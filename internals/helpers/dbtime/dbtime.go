// Package dbtime holds the barangay-local clock and the date formats accepted by the API.
package dbtime

import (
	"strings"
	"sync"
	"time"

	"bisig_backend/internals/configs"
)

const DateLayout = "2006-01-02"

var (
	locOnce sync.Once
	loc     *time.Location
)

// Location returns APP_TIMEZONE (default Asia/Manila), falling back to UTC.
func Location() *time.Location {
	locOnce.Do(func() {
		l, err := time.LoadLocation(configs.GetEnv("APP_TIMEZONE", "Asia/Manila"))
		if err != nil {
			l = time.UTC
		}
		loc = l
	})
	return loc
}

// Now can be swapped in tests.
var Now = func() time.Time { return time.Now().In(Location()) }

func Year() int { return Now().Year() }

// Today is local midnight.
func Today() time.Time {
	n := Now()
	return time.Date(n.Year(), n.Month(), n.Day(), 0, 0, 0, 0, n.Location())
}

// ParseDate accepts YYYY-MM-DD or RFC3339.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(DateLayout, s, Location()); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// ParseDatePtr treats nil and "" as absent.
func ParseDatePtr(s *string) (*time.Time, error) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil, nil
	}
	t, err := ParseDate(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func FormatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.In(Location()).Format(DateLayout)
	return &s
}

// YearBounds returns [Jan 1 year, Jan 1 year+1) in local time.
func YearBounds(year int) (time.Time, time.Time) {
	start := time.Date(year, 1, 1, 0, 0, 0, 0, Location())
	return start, start.AddDate(1, 0, 0)
}
