package ledger

import (
	"fmt"
	"time"
)

const (
	hoursInDay      = 24
	dateLayout      = "2006-01-02"
	yearMonthLayout = "2006-01"
)

// Day returns the calendar day of t as midnight UTC. Every date stored in the
// ledger goes through Day so comparisons never depend on the clock's zone.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, s)
}

func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// DaysBetween returns the calendar difference between days (to - from).
func DaysBetween(from, to time.Time) int {
	return int(Day(to).Sub(Day(from)) / (hoursInDay * time.Hour))
}

// YearMonth is a calendar month with no day component.
type YearMonth struct {
	Year  int
	Month time.Month
}

func NewYearMonth(year int, month time.Month) YearMonth {
	return YearMonth{Year: year, Month: month}
}

func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

func ParseYearMonth(s string) (YearMonth, error) {
	t, err := time.Parse(yearMonthLayout, s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid year-month %q: %w", s, err)
	}
	return YearMonthOf(t), nil
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

func (ym YearMonth) Contains(t time.Time) bool {
	return t.Year() == ym.Year && t.Month() == ym.Month
}

// Bounds returns the first and the last instant of the month.
func (ym YearMonth) Bounds() (time.Time, time.Time) {
	first := Date(ym.Year, ym.Month, 1)
	last := first.AddDate(0, 1, 0).Add(-time.Nanosecond)
	return first, last
}

func (ym YearMonth) IsZero() bool {
	return ym.Year == 0 && ym.Month == 0
}
