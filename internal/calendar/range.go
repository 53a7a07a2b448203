package calendar

import (
	"errors"
	"fmt"
	"iter"
	"time"

	"github.com/tartampluch/go-life-calendar/internal/config"
)

// ErrInvalidRange is returned when a range ends before it starts.
var ErrInvalidRange = errors.New(config.ErrInvalidRange)

// Range is an inclusive span of days.
type Range struct {
	Start Date
	End   Date
}

// NewRange validates that start is not after end.
func NewRange(start, end Date) (Range, error) {
	if end.Before(start) {
		return Range{}, fmt.Errorf("%w: %s > %s", ErrInvalidRange, start, end)
	}
	return Range{Start: start, End: end}, nil
}

// Len is the number of days in the range, both ends included.
func (r Range) Len() int {
	if r.End.Before(r.Start) {
		return 0
	}
	return int(r.End.Time().Sub(r.Start.Time()).Hours()/24) + 1
}

// Days yields every day from Start to End inclusive.
func (r Range) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := r.Start; !d.After(r.End); d = d.AddDays(1) {
			if !yield(d) {
				return
			}
		}
	}
}

// AnniversaryWithin reports whether month/day, placed in from's year or the
// following one, falls in [from, to). Checking the next year as well catches
// windows that cross the new year, such as 28 December to 4 January.
//
// The candidate is normalized like time.Date, so 29 February in a common year
// counts as 1 March.
func AnniversaryWithin(from, to Date, month time.Month, day int) bool {
	for _, y := range []int{from.Year(), from.Year() + 1} {
		candidate := Make(y, month, day)
		if !candidate.Before(from) && candidate.Before(to) {
			return true
		}
	}
	return false
}

// IsCurrentWeek reports whether the anniversary month/day falls within the
// week starting at ref.
func IsCurrentWeek(ref Date, month time.Month, day int) bool {
	days := int(config.CurrentWeekLength.Hours() / 24)
	return AnniversaryWithin(ref, ref.AddDays(days), month, day)
}

// Within reports whether d lies in [from, to).
func Within(d, from, to Date) bool {
	return !d.Before(from) && d.Before(to)
}
