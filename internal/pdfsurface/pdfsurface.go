// Package pdfsurface implements render.Surface on top of gofpdf.
//
// Documents are built in memory and written to a temporary file next to the
// target when closed, then renamed into place. A discarded or failed document
// never leaves a partial file at its path.
package pdfsurface

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"
	"github.com/tartampluch/go-life-calendar/internal/config"
	"github.com/tartampluch/go-life-calendar/internal/render"
)

// ErrMissingFonts is returned when only some of the TTF faces are given.
var ErrMissingFonts = errors.New(config.ErrMissingFonts)

// Fonts lists TrueType files for the three faces the calendar uses. When all
// are empty the core Helvetica family is used.
type Fonts struct {
	Regular string
	Bold    string
	Italic  string
}

func (f Fonts) empty() bool {
	return f.Regular == "" && f.Bold == "" && f.Italic == ""
}

func (f Fonts) complete() bool {
	return f.Regular != "" && f.Bold != "" && f.Italic != ""
}

// Factory creates PDF surfaces. The zero value uses core fonts.
type Factory struct {
	Fonts Fonts
}

var _ render.SurfaceFactory = Factory{}

// Validate checks that the font configuration is usable without creating a
// document.
func (f Factory) Validate() error {
	if f.Fonts.empty() {
		return nil
	}
	if !f.Fonts.complete() {
		return ErrMissingFonts
	}
	for _, p := range []string{f.Fonts.Regular, f.Fonts.Bold, f.Fonts.Italic} {
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("%s: %w", config.ErrFontSetup, err)
		}
	}
	return nil
}

// Create opens a document whose pages are width x height points.
func (f Factory) Create(path string, width, height float64) (render.Surface, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator(config.AppName, true)

	s := &Surface{pdf: pdf, path: path}
	if f.Fonts.empty() {
		s.family = config.CoreFontFamily
		s.translate = pdf.UnicodeTranslatorFromDescriptor("")
	} else {
		s.family = config.TTFFontFamily
		s.translate = func(text string) string { return text }
		faces := []struct{ style, path string }{
			{"", f.Fonts.Regular},
			{"B", f.Fonts.Bold},
			{"I", f.Fonts.Italic},
		}
		for _, face := range faces {
			data, err := os.ReadFile(face.path)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", config.ErrFontSetup, err)
			}
			pdf.AddUTF8FontFromBytes(s.family, face.style, data)
		}
	}
	pdf.SetFont(s.family, "", config.SmallFontSize)
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", render.ErrSurface, config.ErrFontSetup, err)
	}
	return s, nil
}

// Surface is a single PDF document being drawn.
type Surface struct {
	pdf       *gofpdf.Fpdf
	path      string
	family    string
	translate func(string) string

	fontSize float64
	pageOpen bool
	pages    int
	done     bool
}

var _ render.Surface = (*Surface)(nil)

func (s *Surface) ensurePage() {
	if !s.pageOpen {
		s.pdf.AddPage()
		s.pageOpen = true
	}
}

// SetFillColor also sets the text colour.
func (s *Surface) SetFillColor(c render.Color) {
	s.pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	s.pdf.SetTextColor(int(c.R), int(c.G), int(c.B))
}

func (s *Surface) SetStrokeColor(c render.Color) {
	s.pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
}

func (s *Surface) SetLineWidth(w float64) {
	s.pdf.SetLineWidth(w)
}

func (s *Surface) Rect(x, y, w, h float64, op render.PaintOp) {
	s.ensurePage()
	s.pdf.Rect(x, y, w, h, paintStyle(op))
}

func (s *Surface) Line(x1, y1, x2, y2 float64) {
	s.ensurePage()
	s.pdf.Line(x1, y1, x2, y2)
}

func (s *Surface) SetFont(f render.Font) {
	family := f.Face
	if family == "" {
		family = s.family
	}
	s.fontSize = f.Size
	s.pdf.SetFont(family, fontStyle(f), f.Size)
}

// TextExtents measures the advance width with the font metrics. gofpdf has no
// glyph bounding boxes, so the height is the cap height estimate.
func (s *Surface) TextExtents(text string) (w, h float64) {
	return s.pdf.GetStringWidth(s.translate(text)), s.fontSize * config.CapHeightRatio
}

func (s *Surface) Text(x, y float64, text string) {
	s.ensurePage()
	s.pdf.Text(x, y, s.translate(text))
}

// ShowPage finishes the current page, adding a blank one if nothing was drawn.
func (s *Surface) ShowPage() error {
	s.ensurePage()
	s.pageOpen = false
	s.pages++
	if err := s.pdf.Error(); err != nil {
		return fmt.Errorf("%w: page %d: %w", render.ErrSurface, s.pages, err)
	}
	return nil
}

// Pages is the number of pages shown so far.
func (s *Surface) Pages() int { return s.pages }

// Close writes the document to its path.
func (s *Surface) Close() error {
	if s.done {
		return nil
	}
	s.done = true
	if err := s.pdf.Error(); err != nil {
		return fmt.Errorf("%w: %w", render.ErrSurface, err)
	}
	if err := writeAtomic(s.path, s.pdf); err != nil {
		return fmt.Errorf("%w: %w", render.ErrSurface, err)
	}
	slog.Debug(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompSurface,
		config.LogKeyFile, s.path,
		config.LogKeyPages, s.pages,
	)
	return nil
}

// Discard drops the in-memory document. Nothing has been written to the
// target path before Close, so there is nothing to remove.
func (s *Surface) Discard() error {
	if s.done {
		return nil
	}
	s.done = true
	slog.Debug(config.MsgSurfaceDiscard,
		config.LogKeyComponent, config.CompSurface,
		config.LogKeyFile, s.path,
	)
	return nil
}

func writeAtomic(path string, pdf *gofpdf.Fpdf) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if err = pdf.Output(tmp); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = os.Chmod(tmp.Name(), config.FilePermPublic); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func paintStyle(op render.PaintOp) string {
	switch op {
	case render.Stroke:
		return "D"
	case render.FillStroke:
		return "FD"
	default:
		return "F"
	}
}

func fontStyle(f render.Font) string {
	style := ""
	if f.Weight == render.WeightBold {
		style += "B"
	}
	if f.Slant == render.SlantItalic {
		style += "I"
	}
	return style
}
