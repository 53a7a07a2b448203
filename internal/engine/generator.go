// Package engine turns a birth date into finished calendar documents.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/tartampluch/go-life-calendar/internal/calendar"
	"github.com/tartampluch/go-life-calendar/internal/config"
	"github.com/tartampluch/go-life-calendar/internal/render"
)

// ErrInvalidSpan is returned for a negative life span.
var ErrInvalidSpan = errors.New(config.ErrInvalidSpan)

// Request describes one document.
type Request struct {
	Path  string
	Title string
	Birth calendar.Date

	// Span is the number of years covered. Zero means config.DefaultLifeSpan.
	Span int

	// CalendarYears starts every row on 1 January instead of the birthday.
	CalendarYears bool
}

// RangeRequest describes a batch with one document per day of [Start, End].
type RangeRequest struct {
	Dir           string
	Title         string
	Start         calendar.Date
	End           calendar.Date
	Span          int
	CalendarYears bool
}

// Generator drives a Renderer over documents opened by a SurfaceFactory.
type Generator struct {
	Factory  render.SurfaceFactory
	Renderer *render.Renderer
	Clock    Clock

	// Progress receives a progress bar during GenerateRange when non-nil.
	Progress io.Writer
}

// NewGenerator returns a generator using the system clock.
func NewGenerator(factory render.SurfaceFactory, renderer *render.Renderer) *Generator {
	return &Generator{
		Factory:  factory,
		Renderer: renderer,
		Clock:    RealClock{},
	}
}

// Generate writes the document described by req and returns its path. The
// title is checked before the surface is created; on any later failure the
// surface is discarded so no partial file remains.
func (g *Generator) Generate(ctx context.Context, req Request) (_ string, err error) {
	if err := render.ValidateTitle(req.Title); err != nil {
		return "", err
	}
	span, err := normalizeSpan(req.Span)
	if err != nil {
		return "", err
	}

	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyFile, req.Path,
	)
	log.DebugContext(ctx, config.MsgGenStarted, config.LogKeyDOB, req.Birth.String())

	geo := g.Renderer.Geometry
	starts := PageStarts(req.Birth, span, geo.Rows, req.CalendarYears)

	s, err := g.Factory.Create(req.Path, geo.DocWidth, geo.DocHeight)
	if err != nil {
		return "", wrapSurface(err)
	}
	defer func() {
		if err != nil {
			if derr := s.Discard(); derr != nil {
				log.Warn(config.MsgSurfaceDiscard, config.LogKeyError, derr)
			}
		}
	}()

	today := calendar.FromTime(g.now())
	for k, pageStart := range starts {
		if err = ctx.Err(); err != nil {
			return "", err
		}
		page := render.Page{
			Title: req.Title,
			Start: pageStart,
			Birth: req.Birth,
			Today: today,
		}
		if err = g.Renderer.DrawPage(s, page); err != nil {
			return "", fmt.Errorf("page %d: %w", k+1, err)
		}
		log.DebugContext(ctx, config.MsgPageDrawn,
			config.LogKeyPage, k+1,
			config.LogKeyStart, pageStart.String(),
		)
	}

	if err = s.Close(); err != nil {
		return "", wrapSurface(err)
	}

	log.InfoContext(ctx, config.MsgGenSuccess,
		config.LogKeyPages, len(starts),
		config.LogKeyDuration, time.Since(start).Milliseconds(),
	)
	return req.Path, nil
}

// GenerateRange writes one document per day from Start to End inclusive,
// using each day as the birth date. Documents are produced in date order and
// the first failure stops the batch; the paths written before it are
// returned with the error.
func (g *Generator) GenerateRange(ctx context.Context, req RangeRequest) ([]string, error) {
	days, err := calendar.NewRange(req.Start, req.End)
	if err != nil {
		return nil, err
	}
	if err := render.ValidateTitle(req.Title); err != nil {
		return nil, err
	}
	if _, err := normalizeSpan(req.Span); err != nil {
		return nil, err
	}

	log := slog.With(config.LogKeyComponent, config.CompEngine)
	log.InfoContext(ctx, config.MsgBatchStarted,
		config.LogKeyStart, req.Start.String(),
		config.LogKeyEnd, req.End.String(),
		config.LogKeyDays, days.Len(),
	)

	bar := g.progressBar(days.Len())
	if bar != nil {
		defer func() { _ = bar.Close() }()
	}

	written := make([]string, 0, days.Len())
	for d := range days.Days() {
		if err := ctx.Err(); err != nil {
			log.Warn(config.MsgBatchAborted, config.LogKeyError, err)
			return written, err
		}
		path, err := g.Generate(ctx, Request{
			Path:          filepath.Join(req.Dir, RangeFileName(d)),
			Title:         req.Title,
			Birth:         d,
			Span:          req.Span,
			CalendarYears: req.CalendarYears,
		})
		if err != nil {
			log.Warn(config.MsgBatchAborted,
				config.LogKeyDOB, d.String(),
				config.LogKeyError, err,
			)
			return written, err
		}
		written = append(written, path)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	return written, nil
}

func (g *Generator) progressBar(total int) *progressbar.ProgressBar {
	if g.Progress == nil {
		return nil
	}
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(g.Progress),
		progressbar.OptionSetDescription(config.MsgProgressDesc),
		progressbar.OptionSetWidth(20),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)
}

func (g *Generator) now() time.Time {
	if g.Clock == nil {
		return time.Now()
	}
	return g.Clock.Now()
}

// PageStarts returns the first row date of every page of a document covering
// span years with rows years per page. Page k starts k*rows years after the
// birthday, or on 1 January of that year when calendarYears is set.
func PageStarts(birth calendar.Date, span, rows int, calendarYears bool) []calendar.Date {
	if span <= 0 || rows <= 0 {
		return nil
	}
	first := birth
	if calendarYears {
		first = calendar.Make(birth.Year(), time.January, 1)
	}

	pages := (span + rows - 1) / rows
	starts := make([]calendar.Date, pages)
	for k := range starts {
		starts[k] = first.AddYears(k * rows)
	}
	return starts
}

// RangeFileName names the batch document for birth date d.
func RangeFileName(d calendar.Date) string {
	return fmt.Sprintf(config.RangeNameFormat, d.Format(config.DateFormatDash))
}

func normalizeSpan(span int) (int, error) {
	switch {
	case span == 0:
		return config.DefaultLifeSpan, nil
	case span < 0:
		return 0, fmt.Errorf("%w: %d", ErrInvalidSpan, span)
	default:
		return span, nil
	}
}

func wrapSurface(err error) error {
	if errors.Is(err, render.ErrSurface) {
		return err
	}
	return fmt.Errorf("%w: %w", render.ErrSurface, err)
}
