package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Month is the canonical calendar-month key shared by budgets, transactions
// and reports: year*12 + (month-1). Months are always UTC.
type Month int

var monthNames = func() map[string]time.Month {
	names := make(map[string]time.Month, 24)
	for m := time.January; m <= time.December; m++ {
		full := strings.ToLower(m.String())
		names[full] = m
		names[full[:3]] = m
	}
	return names
}()

// NewMonth returns the key for the given year and month.
func NewMonth(year int, month time.Month) Month {
	return Month(year*12 + int(month) - 1)
}

// MonthOf buckets an instant into its UTC calendar month.
func MonthOf(t time.Time) Month {
	t = t.UTC()
	return NewMonth(t.Year(), t.Month())
}

// ParseMonth parses user input into a Month.
//
// Accepted forms are "2025-01", "January 2025", "Jan 2025" and a bare month
// name such as "january", which resolves to the year of now. Month names are
// case-insensitive.
func ParseMonth(s string, now time.Time) (Month, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidMonth
	}

	if t, err := time.Parse("2006-1", s); err == nil {
		return NewMonth(t.Year(), t.Month()), nil
	}

	fields := strings.Fields(strings.ToLower(s))
	name, ok := monthNames[fields[0]]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}

	switch len(fields) {
	case 1:
		return NewMonth(now.UTC().Year(), name), nil
	case 2:
		year, err := strconv.Atoi(fields[1])
		if err != nil || year < 1 || year > 9999 {
			return 0, fmt.Errorf("%w: bad year in %q", ErrInvalidMonth, s)
		}
		return NewMonth(year, name), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
}

// Year returns the calendar year of m.
func (m Month) Year() int {
	return int(m) / 12
}

// Month returns the calendar month of m.
func (m Month) Month() time.Month {
	return time.Month(int(m)%12 + 1)
}

// Start is the first instant of m.
func (m Month) Start() time.Time {
	return time.Date(m.Year(), m.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// End is the first instant after m.
func (m Month) End() time.Time {
	return (m + 1).Start()
}

// Contains reports whether t falls inside m.
func (m Month) Contains(t time.Time) bool {
	return MonthOf(t) == m
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year(), int(m.Month()))
}
