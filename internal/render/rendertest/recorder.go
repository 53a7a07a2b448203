// Package rendertest provides an in-memory render.Surface that records every
// drawing call for assertions.
package rendertest

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"github.com/tartampluch/go-life-calendar/internal/render"
)

// Op kinds recorded by Recorder.
const (
	OpFillColor   = "fill-color"
	OpStrokeColor = "stroke-color"
	OpLineWidth   = "line-width"
	OpRect        = "rect"
	OpLine        = "line"
	OpFont        = "font"
	OpText        = "text"
	OpShowPage    = "show-page"
)

// Glyph metrics used by TextExtents: every rune is half an em wide and text
// is CapHeight em tall.
const (
	GlyphWidth = 0.5
	CapHeight  = 0.7
)

// Op is one recorded call. Only the fields relevant to Kind are set.
type Op struct {
	Kind  string
	X, Y  float64
	W, H  float64
	Color render.Color
	Font  render.Font
	Paint render.PaintOp
	Text  string
}

// Recorder implements render.Surface.
type Recorder struct {
	Path          string
	Width, Height float64
	Ops           []Op
	Closed        bool
	Discarded     bool

	// FailShowPage makes the n-th ShowPage call (1-based) fail.
	FailShowPage int

	font  render.Font
	pages int
}

var _ render.Surface = (*Recorder)(nil)

func (r *Recorder) SetFillColor(c render.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpFillColor, Color: c})
}

func (r *Recorder) SetStrokeColor(c render.Color) {
	r.Ops = append(r.Ops, Op{Kind: OpStrokeColor, Color: c})
}

func (r *Recorder) SetLineWidth(w float64) {
	r.Ops = append(r.Ops, Op{Kind: OpLineWidth, W: w})
}

func (r *Recorder) Rect(x, y, w, h float64, op render.PaintOp) {
	r.Ops = append(r.Ops, Op{Kind: OpRect, X: x, Y: y, W: w, H: h, Paint: op})
}

func (r *Recorder) Line(x1, y1, x2, y2 float64) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, X: x1, Y: y1, W: x2 - x1, H: y2 - y1})
}

func (r *Recorder) SetFont(f render.Font) {
	r.font = f
	r.Ops = append(r.Ops, Op{Kind: OpFont, Font: f})
}

func (r *Recorder) TextExtents(text string) (w, h float64) {
	return float64(utf8.RuneCountInString(text)) * r.font.Size * GlyphWidth, r.font.Size * CapHeight
}

func (r *Recorder) Text(x, y float64, text string) {
	r.Ops = append(r.Ops, Op{Kind: OpText, X: x, Y: y, Text: text, Font: r.font})
}

func (r *Recorder) ShowPage() error {
	r.pages++
	if r.FailShowPage > 0 && r.pages == r.FailShowPage {
		return fmt.Errorf("%w: page %d", render.ErrSurface, r.pages)
	}
	r.Ops = append(r.Ops, Op{Kind: OpShowPage})
	return nil
}

func (r *Recorder) Close() error {
	r.Closed = true
	return nil
}

func (r *Recorder) Discard() error {
	r.Discarded = true
	return nil
}

// Pages counts the finalized pages.
func (r *Recorder) Pages() int {
	return len(r.Filter(OpShowPage))
}

// Filter returns the ops of the given kind in call order.
func (r *Recorder) Filter(kind string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

// Texts returns the strings drawn, in order.
func (r *Recorder) Texts() []string {
	var out []string
	for _, op := range r.Filter(OpText) {
		out = append(out, op.Text)
	}
	return out
}

// PageOps splits the recorded ops at every ShowPage.
func (r *Recorder) PageOps() [][]Op {
	var pages [][]Op
	var cur []Op
	for _, op := range r.Ops {
		if op.Kind == OpShowPage {
			pages = append(pages, cur)
			cur = nil
			continue
		}
		cur = append(cur, op)
	}
	return pages
}

// Factory hands out Recorders and remembers them in creation order.
type Factory struct {
	mu        sync.Mutex
	Surfaces  []*Recorder
	CreateErr error

	// FailShowPage is copied into every Recorder created.
	FailShowPage int
}

var _ render.SurfaceFactory = (*Factory)(nil)

func (f *Factory) Create(path string, width, height float64) (render.Surface, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	rec := &Recorder{Path: path, Width: width, Height: height, FailShowPage: f.FailShowPage}
	f.Surfaces = append(f.Surfaces, rec)
	return rec, nil
}

// Paths lists the paths of every surface created.
func (f *Factory) Paths() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.Surfaces))
	for _, s := range f.Surfaces {
		out = append(out, s.Path)
	}
	return out
}
