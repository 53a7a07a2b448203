// Package layout computes the page geometry of the life calendar grid.
//
// The geometry is plain arithmetic over a Layout: it does not depend on any
// date, so it is computed once and shared read-only by every page.
package layout

import (
	"errors"
	"fmt"

	"github.com/tartampluch/go-life-calendar/internal/config"
)

// ErrLayout is returned when a Layout cannot produce a usable grid.
var ErrLayout = errors.New(config.ErrLayout)

// Layout is the immutable page configuration, in layout units (1/72 inch).
type Layout struct {
	DocWidth     float64
	DocHeight    float64
	Rows         int
	Columns      int
	YMargin      float64
	BoxMargin    float64
	HeaderOffset float64 // room reserved under the column headers
	XOffset      float64 // shifts the centred grid right to leave space for year labels
	BoxLineWidth float64
}

// Default returns the reference 26in x 40in layout with 20 rows of 12 months.
func Default() Layout {
	return Layout{
		DocWidth:     config.DocWidth,
		DocHeight:    config.DocHeight,
		Rows:         config.NumRows,
		Columns:      config.NumColumns,
		YMargin:      config.YMargin,
		BoxMargin:    config.BoxMargin,
		HeaderOffset: config.HeaderOffset,
		XOffset:      config.XOffset,
		BoxLineWidth: config.BoxLineWidth,
	}
}

// Geometry holds the derived, read-only values used to place every element of
// a page.
type Geometry struct {
	DocWidth     float64
	DocHeight    float64
	BoxSize      float64
	BoxMargin    float64
	BoxLineWidth float64
	XMargin      float64
	YMargin      float64
	Rows         int
	Columns      int
}

// BoxSize is the side of one square so that rows boxes and their margins fill
// the page below the top band.
func BoxSize(docHeight, yMargin float64, rows int, boxMargin, headerOffset float64) float64 {
	return (docHeight-(yMargin+headerOffset))/float64(rows) - boxMargin
}

// XMargin centres columns boxes horizontally and shifts them by offset.
func XMargin(docWidth, boxSize, boxMargin float64, columns int, offset float64) float64 {
	return (docWidth-(boxSize+boxMargin)*float64(columns))/2 + offset
}

// CellPosition returns the top-left corner of cell (row, col). Columns advance
// along x and rows along y, each by one box plus its margin.
func CellPosition(row, col int, xMargin, yMargin, boxSize, boxMargin float64) (x, y float64) {
	step := boxSize + boxMargin
	return xMargin + float64(col)*step, yMargin + float64(row)*step
}

// New validates l and derives its Geometry.
func New(l Layout) (Geometry, error) {
	switch {
	case l.DocWidth <= 0 || l.DocHeight <= 0:
		return Geometry{}, fmt.Errorf("%w: page size %gx%g", ErrLayout, l.DocWidth, l.DocHeight)
	case l.Rows <= 0 || l.Columns <= 0:
		return Geometry{}, fmt.Errorf("%w: grid %dx%d", ErrLayout, l.Rows, l.Columns)
	case l.YMargin < 0 || l.BoxMargin < 0 || l.BoxLineWidth < 0:
		return Geometry{}, fmt.Errorf("%w: negative margin or line width", ErrLayout)
	}

	box := BoxSize(l.DocHeight, l.YMargin, l.Rows, l.BoxMargin, l.HeaderOffset)
	if box <= 0 {
		return Geometry{}, fmt.Errorf("%w: box size %g is not positive", ErrLayout, box)
	}
	x := XMargin(l.DocWidth, box, l.BoxMargin, l.Columns, l.XOffset)
	if x < 0 || x+(box+l.BoxMargin)*float64(l.Columns) > l.DocWidth {
		return Geometry{}, fmt.Errorf("%w: %d columns of %g do not fit a page %g wide", ErrLayout, l.Columns, box, l.DocWidth)
	}

	return Geometry{
		DocWidth:     l.DocWidth,
		DocHeight:    l.DocHeight,
		BoxSize:      box,
		BoxMargin:    l.BoxMargin,
		BoxLineWidth: l.BoxLineWidth,
		XMargin:      x,
		YMargin:      l.YMargin,
		Rows:         l.Rows,
		Columns:      l.Columns,
	}, nil
}

// Cell returns the top-left corner of cell (row, col).
func (g Geometry) Cell(row, col int) (x, y float64) {
	return CellPosition(row, col, g.XMargin, g.YMargin, g.BoxSize, g.BoxMargin)
}

// GridWidth is the horizontal extent of all columns including their margins.
func (g Geometry) GridWidth() float64 {
	return (g.BoxSize + g.BoxMargin) * float64(g.Columns)
}
