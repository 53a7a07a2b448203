// Package calendar holds the date values the life calendar is laid out with.
//
// Date is a plain (year, month, day) triple without a clock or location. All
// arithmetic returns new values, so row and column cursors are expressed as
// sequences derived from a start date rather than variables mutated in place.
package calendar

import (
	"fmt"
	"iter"
	"time"
)

// Date is an immutable calendar day.
type Date struct {
	year  int
	month time.Month
	day   int
}

// Make builds a Date, normalizing out-of-range values the way time.Date does
// (31 April becomes 1 May).
func Make(year int, month time.Month, day int) Date {
	return FromTime(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// FromTime returns the calendar day of t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

func (d Date) Year() int { return d.year }
func (d Date) Month() time.Month { return d.month }
func (d Date) Day() int { return d.day }
func (d Date) IsZero() bool { return d == Date{} }
func (d Date) Time() time.Time { return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC) }
func (d Date) Equal(o Date) bool { return d == o }
func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool { return d.Compare(o) > 0 }

// Compare returns -1, 0 or +1 depending on whether d is before, equal to or
// after o.
func (d Date) Compare(o Date) int {
	switch {
	case d.year != o.year:
		return sign(d.year - o.year)
	case d.month != o.month:
		return sign(int(d.month) - int(o.month))
	default:
		return sign(d.day - o.day)
	}
}

// String formats the date as DD-MM-YYYY, the form used in batch file names.
func (d Date) String() string {
	return fmt.Sprintf("%02d-%02d-%04d", d.day, int(d.month), d.year)
}

// Format formats the date with a time layout string.
func (d Date) Format(layout string) string {
	return d.Time().Format(layout)
}

// AddMonths moves the date by n months. Month overflow rolls into the year and
// the day is clamped to the last day of the target month, so 31 January plus
// one month is the last day of February.
func (d Date) AddMonths(n int) Date {
	total := d.year*12 + int(d.month-1) + n
	y := floorDiv(total, 12)
	m := time.Month(total-y*12) + 1
	return Date{year: y, month: m, day: clampDay(y, m, d.day)}
}

// AddYears moves the date by n years with the same clamping as AddMonths
// (29 February becomes 28 February in common years).
func (d Date) AddYears(n int) Date {
	return d.AddMonths(12 * n)
}

// AddDays moves the date by n days.
func (d Date) AddDays(n int) Date {
	return Make(d.year, d.month, d.day+n)
}

// Months yields n dates starting at start, one month apart. The sequence can
// be ranged over any number of times.
func Months(start Date, n int) iter.Seq2[int, Date] {
	return func(yield func(int, Date) bool) {
		for i := 0; i < n; i++ {
			if !yield(i, start.AddMonths(i)) {
				return
			}
		}
	}
}

// Years yields n dates starting at start, one year apart.
func Years(start Date, n int) iter.Seq2[int, Date] {
	return func(yield func(int, Date) bool) {
		for i := 0; i < n; i++ {
			if !yield(i, start.AddYears(i)) {
				return
			}
		}
	}
}

func daysInMonth(y int, m time.Month) int {
	// Day 0 of next month is last day of this month.
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func clampDay(y int, m time.Month, d int) int {
	if d < 1 {
		return 1
	}
	if last := daysInMonth(y, m); d > last {
		return last
	}
	return d
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	default:
		return 0
	}
}
