package coverflex

import (
	"fmt"
	"time"
)

const dateFormat = "2006-01-02"

// DateRange is an inclusive [From, To] query window. Ranges are normalized
// to day boundaries (00:00:00.000 through 23:59:59.999) before use.
type DateRange struct {
	From time.Time
	To   time.Time
}

// ParseRange parses "YYYY-MM-DD" bounds in loc and normalizes them to day
// boundaries. From must not be after To.
func ParseRange(from, to string, loc *time.Location) (DateRange, error) {
	f, err := time.ParseInLocation(dateFormat, from, loc)
	if err != nil {
		return DateRange{}, fmt.Errorf("parsing from date %q: %w", from, err)
	}
	t, err := time.ParseInLocation(dateFormat, to, loc)
	if err != nil {
		return DateRange{}, fmt.Errorf("parsing to date %q: %w", to, err)
	}
	if f.After(t) {
		return DateRange{}, fmt.Errorf("from date %s is after to date %s", from, to)
	}
	return NormalizeRange(DateRange{From: f, To: t}), nil
}

// NormalizeRange widens a range to day boundaries: From at 00:00:00.000 and
// To at 23:59:59.999 of their respective calendar days.
func NormalizeRange(r DateRange) DateRange {
	fy, fm, fd := r.From.Date()
	ty, tm, td := r.To.Date()
	return DateRange{
		From: time.Date(fy, fm, fd, 0, 0, 0, 0, r.From.Location()),
		To:   time.Date(ty, tm, td, 23, 59, 59, int(999*time.Millisecond), r.To.Location()),
	}
}

// YearRange returns the full calendar year in loc, normalized.
func YearRange(year int, loc *time.Location) DateRange {
	return NormalizeRange(DateRange{
		From: time.Date(year, time.January, 1, 0, 0, 0, 0, loc),
		To:   time.Date(year, time.December, 31, 0, 0, 0, 0, loc),
	})
}

// fromISO / toISO render the bounds the way the benefit-operations endpoint
// expects: full UTC instants with millisecond precision.
func (r DateRange) fromISO() string {
	return r.From.UTC().Format("2006-01-02T15:04:05.000Z")
}

func (r DateRange) toISO() string {
	return r.To.UTC().Format("2006-01-02T15:04:05.000Z")
}

// fromDay / toDay render date-only bounds by truncating the UTC instant.
// The meal-movements endpoint only accepts calendar days, unlike the benefit
// endpoint; the shifted effective window this produces mirrors the upstream
// API's own behavior.
func (r DateRange) fromDay() string {
	return r.From.UTC().Format(dateFormat)
}

func (r DateRange) toDay() string {
	return r.To.UTC().Format(dateFormat)
}
