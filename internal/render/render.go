// Package render draws one life calendar page onto a Surface.
//
// The renderer owns no drawing backend. It computes where the title, labels
// and boxes go from a precomputed layout.Geometry and walks the row and column
// dates of the page, so it can be tested against a recording surface.
package render

import (
	"errors"
	"fmt"
	"iter"
	"time"
	"unicode/utf8"

	"github.com/tartampluch/go-life-calendar/internal/calendar"
	"github.com/tartampluch/go-life-calendar/internal/config"
	"github.com/tartampluch/go-life-calendar/internal/layout"
)

// ErrTitleTooLong is returned for titles longer than config.MaxTitleSize.
var ErrTitleTooLong = errors.New(config.ErrTitleTooLong)

// Labels supplies the localized text drawn on a page.
type Labels interface {
	MonthAbbrev(m time.Month) string
	Text(key string) string
}

// Style holds colours and font sizes.
type Style struct {
	FontFace string

	Background Color
	Ink        Color
	BoxFill    Color

	BirthdayColour Color
	NewYearColour  Color
	TodayColour    Color

	TitleSize  float64
	LabelSize  float64
	LegendSize float64

	// Legend draws a key for every enabled highlight in the top band.
	Legend bool
}

// DefaultStyle is black on white with grey highlight shades.
func DefaultStyle() Style {
	return Style{
		Background:     White,
		Ink:            Black,
		BoxFill:        White,
		BirthdayColour: Grey(0.5),
		NewYearColour:  Grey(0.8),
		TodayColour:    Color{255, 214, 102},
		TitleSize:      config.BigFontSize,
		LabelSize:      config.TinyFontSize,
		LegendSize:     config.SmallFontSize,
	}
}

// Highlight toggles the shaded cells. All are off by default.
type Highlight struct {
	Birthday bool
	NewYear  bool
	Today    bool
}

// Any reports whether at least one highlight is enabled.
func (h Highlight) Any() bool {
	return h.Birthday || h.NewYear || h.Today
}

// Page is one sheet: Rows consecutive years starting at Start.
type Page struct {
	Title string
	Start calendar.Date
	Birth calendar.Date // anchors the birthday highlight
	Today calendar.Date // anchors the today highlight
}

// Cell is one box of the grid. It stands for the month starting at Date.
type Cell struct {
	Row  int
	Col  int
	Date calendar.Date
	Fill Color
}

// Renderer draws pages that share one geometry.
type Renderer struct {
	Geometry  layout.Geometry
	Style     Style
	Labels    Labels
	Highlight Highlight
}

// New returns a renderer with the default style.
func New(g layout.Geometry, labels Labels) *Renderer {
	return &Renderer{
		Geometry: g,
		Style:    DefaultStyle(),
		Labels:   labels,
	}
}

// ValidateTitle rejects titles longer than config.MaxTitleSize characters.
func ValidateTitle(title string) error {
	if n := utf8.RuneCountInString(title); n > config.MaxTitleSize {
		return fmt.Errorf("%w: got %d", ErrTitleTooLong, n)
	}
	return nil
}

// DrawPage draws p and finalizes it with ShowPage. The title is validated
// before anything is drawn.
func (r *Renderer) DrawPage(s Surface, p Page) error {
	if err := ValidateTitle(p.Title); err != nil {
		return err
	}
	g := r.Geometry

	s.SetFillColor(r.Style.Background)
	s.Rect(0, 0, g.DocWidth, g.DocHeight, Fill)

	r.drawTitle(s, p.Title)
	if r.Style.Legend && r.Highlight.Any() {
		r.drawLegend(s)
	}
	r.drawColumnHeaders(s, p.Start)
	r.drawRows(s, p)

	return s.ShowPage()
}

func (r *Renderer) drawTitle(s Surface, title string) {
	g := r.Geometry
	s.SetFont(Font{Face: r.Style.FontFace, Weight: WeightBold, Size: r.Style.TitleSize})
	s.SetFillColor(r.Style.Ink)
	w, h := s.TextExtents(title)
	s.Text(g.DocWidth/2-w/2, g.YMargin/2-h/2, title)
}

// drawColumnHeaders labels each column with the month it starts in. The
// header cursor is independent of the row cursor.
func (r *Renderer) drawColumnHeaders(s Surface, start calendar.Date) {
	g := r.Geometry
	s.SetFont(Font{Face: r.Style.FontFace, Size: r.Style.LabelSize})
	s.SetFillColor(r.Style.Ink)
	for col, d := range calendar.Months(start, g.Columns) {
		text := r.monthAbbrev(d.Month())
		w, _ := s.TextExtents(text)
		x, _ := g.Cell(0, col)
		s.Text(x+g.BoxSize/2-w/2, g.YMargin-g.BoxSize+config.LabelNudge, text)
	}
}

func (r *Renderer) drawRows(s Surface, p Page) {
	g := r.Geometry
	italic := Font{Face: r.Style.FontFace, Slant: SlantItalic, Size: r.Style.LabelSize}

	for row, rowDate := range calendar.Years(p.Start, g.Rows) {
		s.SetFont(italic)
		s.SetFillColor(r.Style.Ink)
		label := fmt.Sprintf("%04d", rowDate.Year())
		w, h := s.TextExtents(label)
		_, y := g.Cell(row, 0)
		s.Text(g.XMargin-w-g.BoxSize+config.LabelNudge, y+g.BoxSize/2+h/2, label)

		for cell := range r.rowCells(row, rowDate, p) {
			x, y := g.Cell(cell.Row, cell.Col)
			r.drawBox(s, x, y, cell.Fill)
		}
	}
}

func (r *Renderer) drawBox(s Surface, x, y float64, fill Color) {
	s.SetLineWidth(r.Geometry.BoxLineWidth)
	s.SetStrokeColor(r.Style.Ink)
	s.SetFillColor(fill)
	s.Rect(x, y, r.Geometry.BoxSize, r.Geometry.BoxSize, FillStroke)
}

// Cells yields every cell of p row by row, left to right.
func (r *Renderer) Cells(p Page) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for row, rowDate := range calendar.Years(p.Start, r.Geometry.Rows) {
			for cell := range r.rowCells(row, rowDate, p) {
				if !yield(cell) {
					return
				}
			}
		}
	}
}

func (r *Renderer) rowCells(row int, rowDate calendar.Date, p Page) iter.Seq[Cell] {
	return func(yield func(Cell) bool) {
		for col := 0; col < r.Geometry.Columns; col++ {
			from := rowDate.AddMonths(col)
			to := rowDate.AddMonths(col + 1)
			c := Cell{Row: row, Col: col, Date: from, Fill: r.cellFill(from, to, p)}
			if !yield(c) {
				return
			}
		}
	}
}

// cellFill picks the colour of the cell covering [from, to). Birthday takes
// precedence over new year, which takes precedence over today.
func (r *Renderer) cellFill(from, to calendar.Date, p Page) Color {
	h := r.Highlight
	switch {
	case h.Birthday && !p.Birth.IsZero() && calendar.AnniversaryWithin(from, to, p.Birth.Month(), p.Birth.Day()):
		return r.Style.BirthdayColour
	case h.NewYear && calendar.AnniversaryWithin(from, to, time.January, 1):
		return r.Style.NewYearColour
	case h.Today && !p.Today.IsZero() && calendar.Within(p.Today, from, to):
		return r.Style.TodayColour
	default:
		return r.Style.BoxFill
	}
}

func (r *Renderer) monthAbbrev(m time.Month) string {
	if r.Labels != nil {
		return r.Labels.MonthAbbrev(m)
	}
	return m.String()[:3]
}

func (r *Renderer) text(key, fallback string) string {
	if r.Labels != nil {
		if t := r.Labels.Text(key); t != "" && t != key {
			return t
		}
	}
	return fallback
}
