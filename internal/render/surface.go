package render

import (
	"errors"

	"github.com/tartampluch/go-life-calendar/internal/config"
)

// ErrSurface wraps failures reported by a drawing backend.
var ErrSurface = errors.New(config.ErrSurface)

// Color is an RGB colour with 8-bit channels.
type Color struct {
	R, G, B uint8
}

var (
	White = Color{255, 255, 255}
	Black = Color{0, 0, 0}
)

// Grey returns a neutral colour of the given intensity in [0, 1].
func Grey(level float64) Color {
	v := uint8(level*255 + 0.5)
	return Color{v, v, v}
}

// PaintOp selects how a shape is painted.
type PaintOp int

const (
	Fill PaintOp = iota
	Stroke
	FillStroke
)

// Weight and Slant select a font variant.
type (
	Weight int
	Slant  int
)

const (
	WeightNormal Weight = iota
	WeightBold
)

const (
	SlantNormal Slant = iota
	SlantItalic
)

// Font describes the face used for subsequent text. An empty Face lets the
// surface use its default family.
type Font struct {
	Face   string
	Weight Weight
	Slant  Slant
	Size   float64
}

// Surface is the drawing capability the renderer needs. Coordinates are in
// layout units with the origin at the top-left corner; Text positions the
// baseline. Text is painted with the current fill colour.
//
// Implementations may buffer errors and report them from ShowPage or Close.
type Surface interface {
	SetFillColor(c Color)
	SetStrokeColor(c Color)
	SetLineWidth(w float64)
	Rect(x, y, w, h float64, op PaintOp)
	Line(x1, y1, x2, y2 float64)
	SetFont(f Font)
	TextExtents(text string) (w, h float64)
	Text(x, y float64, text string)

	// ShowPage finalizes the current page; drawing afterwards starts a new one.
	ShowPage() error
	// Close finishes the document and makes it visible at its path.
	Close() error
	// Discard abandons the document without leaving a file behind.
	Discard() error
}

// SurfaceFactory opens a paged surface of the given size that will be saved
// at path.
type SurfaceFactory interface {
	Create(path string, width, height float64) (Surface, error)
}
