package engine

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-life-calendar/internal/calendar"
	"github.com/tartampluch/go-life-calendar/internal/config"
)

// ErrNoBirthday is returned when no card in a vCard stream carries a birth
// date with a year.
var ErrNoBirthday = errors.New(config.ErrNoBirthday)

// Subject is the person a calendar is drawn for.
type Subject struct {
	// UID is a stable hash of the name and birth date.
	UID   string
	Name  string
	Birth calendar.Date
}

// NewSubject builds a subject and derives its UID.
func NewSubject(name string, birth calendar.Date) Subject {
	if name == "" {
		name = config.FallbackName
	}
	input := fmt.Sprintf(config.FormatHashInput, name, birth.Format(config.DateFormatFullDash), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return Subject{
		UID:   fmt.Sprintf("%x", hash[:config.UIDHashLength]),
		Name:  name,
		Birth: birth,
	}
}

// ReadSubject returns the first card of a vCard stream with a full BDAY.
// Cards with no BDAY, or one without a year, are skipped. Malformed input
// aborts the read with an ErrVCardParse error.
//
// When no card qualifies, ErrNoBirthday is returned together with a Subject
// holding only the first card's name, so callers that know the birth date
// from elsewhere can still use it.
func ReadSubject(ctx context.Context, r io.Reader) (Subject, error) {
	decoder := vcard.NewDecoder(r)
	var first string
	for {
		if err := ctx.Err(); err != nil {
			return Subject{}, err
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			return Subject{Name: first}, ErrNoBirthday
		}
		if err != nil {
			// A broken card can leave the decoder mid-stream; stop rather than loop.
			return Subject{}, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
		}

		name := cardName(card)
		if first == "" {
			first = name
		}
		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}
		birth, err := calendar.ParseVCardDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyName, name,
				config.LogKeyError, err,
			)
			continue
		}
		return NewSubject(name, birth), nil
	}
}

// cardName prefers FN over the structured N property.
func cardName(card vcard.Card) string {
	if fn := card.Get(config.VCardFN); fn != nil && fn.Value != "" {
		return fn.Value
	}
	if n := card.Get(config.VCardN); n != nil && n.Value != "" {
		return n.Value
	}
	return config.FallbackName
}
