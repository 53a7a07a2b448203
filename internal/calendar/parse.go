package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tartampluch/go-life-calendar/internal/config"
)

// ErrInvalidDateFormat is returned for strings that are not a valid
// DD/MM/YYYY or DD-MM-YYYY date, including out-of-range days and months.
var ErrInvalidDateFormat = errors.New(config.ErrInvalidDateFormat)

// Single-digit day and month fields are accepted, the year must have four
// digits. time.Parse rejects month 13 and day 31 of a 30-day month.
var inputLayouts = []string{
	"2/1/2006",
	"2-1-2006",
}

// Parse reads a date given as DD/MM/YYYY or DD-MM-YYYY. Surrounding
// whitespace is ignored; separators cannot be mixed.
func Parse(text string) (Date, error) {
	stripped := strings.TrimSpace(text)
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, stripped); err == nil {
			return FromTime(t), nil
		}
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, text)
}

// ParseVCardDate handles the vCard BDAY forms that carry a year. Truncated
// dates such as --01-02 are rejected: a life calendar needs the birth year.
func ParseVCardDate(value string) (Date, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	value = strings.TrimSpace(value)
	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return FromTime(t), nil
		}
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, value)
}
