package layout_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-life-calendar/internal/config"
	"github.com/tartampluch/go-life-calendar/internal/layout"
)

const tolerance = 1e-9

func TestDefaultGeometry(t *testing.T) {
	g, err := layout.New(layout.Default())
	require.NoError(t, err)

	assert.Greater(t, g.BoxSize, 0.0)
	assert.InDelta(t, 121.2, g.BoxSize, tolerance)
	assert.InDelta(t, 222.8, g.XMargin, tolerance)
	assert.Equal(t, config.NumRows, g.Rows)
	assert.Equal(t, config.NumColumns, g.Columns)

	// The grid is centred: both side margins (without the fixed offset) add
	// up with the grid to the page width.
	side := g.XMargin - config.XOffset
	assert.InDelta(t, float64(config.DocWidth), g.GridWidth()+2*side, tolerance)

	// The last row still fits on the page.
	_, y := g.Cell(g.Rows-1, 0)
	assert.Less(t, y+g.BoxSize, g.DocHeight)
}

func TestBoxSizeFormula(t *testing.T) {
	got := layout.BoxSize(2880, 300, 20, 6, 36)
	assert.InDelta(t, (2880.0-(300+36))/20-6, got, tolerance)
}

func TestCellPosition(t *testing.T) {
	tests := []struct {
		row, col int
		x, y     float64
	}{
		{0, 0, 10, 20},
		{0, 1, 15, 20},
		{1, 0, 10, 25},
		{3, 2, 20, 35},
	}
	for _, tt := range tests {
		x, y := layout.CellPosition(tt.row, tt.col, 10, 20, 4, 1)
		assert.InDelta(t, tt.x, x, tolerance)
		assert.InDelta(t, tt.y, y, tolerance)
	}
}

func TestNew_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*layout.Layout)
	}{
		{"too many rows", func(l *layout.Layout) { l.Rows = 1000 }},
		{"margin eats the page", func(l *layout.Layout) { l.YMargin = 3000 }},
		{"zero rows", func(l *layout.Layout) { l.Rows = 0 }},
		{"zero columns", func(l *layout.Layout) { l.Columns = 0 }},
		{"no width", func(l *layout.Layout) { l.DocWidth = 0 }},
		{"too wide", func(l *layout.Layout) { l.Columns = 52 }},
		{"negative margin", func(l *layout.Layout) { l.BoxMargin = -1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := layout.Default()
			tt.mutate(&l)
			_, err := layout.New(l)
			assert.ErrorIs(t, err, layout.ErrLayout)
		})
	}
}

func TestParse_OverridesWithUnits(t *testing.T) {
	src := []byte(`
page {
  width  = 26 * inch
  height = 40 * inch
}
grid {
  rows       = 10
  box_margin = 2 * mm
}
`)
	l, err := layout.Parse(src, "test.hcl", layout.Default())
	require.NoError(t, err)

	assert.InDelta(t, 1872.0, l.DocWidth, tolerance)
	assert.InDelta(t, 2880.0, l.DocHeight, tolerance)
	assert.Equal(t, 10, l.Rows)
	assert.Equal(t, config.NumColumns, l.Columns, "absent attributes keep the base value")
	assert.InDelta(t, 2*config.UnitsPerMM, l.BoxMargin, 1e-6)

	_, err = layout.New(l)
	assert.NoError(t, err)
}

func TestParse_Errors(t *testing.T) {
	_, err := layout.Parse([]byte(`grid { rows = `), "broken.hcl", layout.Default())
	assert.ErrorIs(t, err, layout.ErrLayout)

	_, err = layout.Parse([]byte(`grid { colour = "red" }`), "unknown.hcl", layout.Default())
	assert.ErrorIs(t, err, layout.ErrLayout)

	_, err = layout.Parse([]byte(`grid { rows = "many" }`), "type.hcl", layout.Default())
	assert.ErrorIs(t, err, layout.ErrLayout)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "layout.hcl")
	require.NoError(t, os.WriteFile(path, []byte("grid {\n  columns = 6\n}\n"), 0o644))

	l, err := layout.LoadFile(path, layout.Default())
	require.NoError(t, err)
	assert.Equal(t, 6, l.Columns)

	_, err = layout.LoadFile(filepath.Join(t.TempDir(), "missing.hcl"), layout.Default())
	assert.ErrorIs(t, err, layout.ErrLayout)
}
