package engine

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-life-calendar/internal/config"
)

// BirthdayCalendar encodes a VCALENDAR with one all-day event per birthday
// covered by a calendar of span years: the birth itself, then every
// anniversary up to span-1. UIDs are derived from the subject UID and the
// year, so re-exporting the same subject yields the same events.
func BirthdayCalendar(subject Subject, span int, now time.Time) ([]byte, error) {
	span, err := normalizeSpan(span)
	if err != nil {
		return nil, err
	}
	if subject.UID == "" {
		subject = NewSubject(subject.Name, subject.Birth)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	dtStamp := ical.NewProp(config.PropDTStamp)
	dtStamp.SetDateTime(now.UTC())

	for age := range span {
		day := subject.Birth.AddYears(age)

		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, subject.UID, day.Year(), config.ICalDomain))
		event.Props.SetText(config.PropSummary, eventSummary(subject.Name, age))
		event.Props.Set(dtStamp)

		start := ical.NewProp(config.PropDTStart)
		start.SetDate(day.Time())
		event.Props.Set(start)

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Debug(config.MsgICSWritten,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyName, subject.Name,
		config.LogKeyEvents, span,
	)
	return buf.Bytes(), nil
}

func eventSummary(name string, age int) string {
	if age == 0 {
		return fmt.Sprintf(config.FallbackSummaryDay, name)
	}
	return fmt.Sprintf(config.FallbackSummary, name, age)
}
