// Package locale translates the labels drawn on calendar pages.
package locale

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-life-calendar/internal/config"
	"github.com/tartampluch/go-life-calendar/internal/render"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// ErrUnknownLanguage is returned when no bundled locale matches the request.
var ErrUnknownLanguage = errors.New(config.ErrUnknownLanguage)

// Translator looks labels up in the embedded locale bundle.
type Translator struct {
	lang      string
	localizer *i18n.Localizer
}

var _ render.Labels = (*Translator)(nil)

// New loads the embedded locales and selects lang. Region subtags are
// ignored, so "fr-CA" resolves to the French labels.
func New(lang string) (*Translator, error) {
	if lang == "" {
		lang = config.DefaultLanguage
	}
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", ErrUnknownLanguage, lang, err)
	}
	base, _ := tag.Base()

	bundle, available, err := loadBundle()
	if err != nil {
		return nil, err
	}
	if !slices.Contains(available, base.String()) {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownLanguage, lang, strings.Join(available, ", "))
	}

	return &Translator{
		lang:      base.String(),
		localizer: i18n.NewLocalizer(bundle, base.String()),
	}, nil
}

// Languages lists the codes of the embedded locales.
func Languages() []string {
	_, langs, err := loadBundle()
	if err != nil {
		return nil
	}
	return langs
}

func loadBundle() (*i18n.Bundle, []string, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	var detected []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}
		code := strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json")
		if code == "" {
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, nil, fmt.Errorf("%s %s: %w", config.ErrLocaleLoad, name, err)
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, code,
			config.LogKeyFile, name,
		)
		detected = append(detected, code)
	}
	return bundle, detected, nil
}

// Lang is the selected language code.
func (t *Translator) Lang() string { return t.lang }

// MonthAbbrev returns the short month name used for column headers.
func (t *Translator) MonthAbbrev(m time.Month) string {
	key := config.TKeyMonthPrefix + strconv.Itoa(int(m))
	if msg := t.Text(key); msg != key {
		return msg
	}
	return m.String()[:3]
}

// Text translates key, returning key itself when it is missing.
func (t *Translator) Text(key string) string {
	if t == nil || t.localizer == nil {
		return key
	}
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}
