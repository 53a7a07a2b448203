package layout

import (
	"fmt"
	"log/slog"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/tartampluch/go-life-calendar/internal/config"
	"github.com/zclconf/go-cty/cty"
)

// fileConfig mirrors an HCL layout file:
//
//	page {
//	  width  = 26 * inch
//	  height = 40 * inch
//	}
//	grid {
//	  rows    = 20
//	  columns = 12
//	}
//
// Every attribute is optional; absent ones keep the base layout value.
type fileConfig struct {
	Page *pageBlock `hcl:"page,block"`
	Grid *gridBlock `hcl:"grid,block"`
}

type pageBlock struct {
	Width  *float64 `hcl:"width,optional"`
	Height *float64 `hcl:"height,optional"`
}

type gridBlock struct {
	Rows         *int     `hcl:"rows,optional"`
	Columns      *int     `hcl:"columns,optional"`
	YMargin      *float64 `hcl:"y_margin,optional"`
	BoxMargin    *float64 `hcl:"box_margin,optional"`
	HeaderOffset *float64 `hcl:"header_offset,optional"`
	XOffset      *float64 `hcl:"x_offset,optional"`
	LineWidth    *float64 `hcl:"line_width,optional"`
}

// unitContext lets layout files express lengths in physical units.
func unitContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"inch": cty.NumberFloatVal(config.UnitsPerInch),
			"mm":   cty.NumberFloatVal(config.UnitsPerMM),
			"cm":   cty.NumberFloatVal(config.UnitsPerMM * 10),
		},
	}
}

// LoadFile reads an HCL layout file and applies it on top of base. The result
// is not validated; pass it to New.
func LoadFile(path string, base Layout) (Layout, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return Layout{}, fmt.Errorf("%w: failed to parse HCL file %s: %s", ErrLayout, path, diags.Error())
	}
	return decode(file.Body, path, base)
}

// Parse is LoadFile for in-memory sources; filename is used in diagnostics.
func Parse(src []byte, filename string, base Layout) (Layout, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return Layout{}, fmt.Errorf("%w: failed to parse HCL file %s: %s", ErrLayout, filename, diags.Error())
	}
	return decode(file.Body, filename, base)
}

func decode(body hcl.Body, path string, base Layout) (Layout, error) {
	var fc fileConfig
	if diags := gohcl.DecodeBody(body, unitContext(), &fc); diags.HasErrors() {
		return Layout{}, fmt.Errorf("%w: failed to decode HCL file %s: %s", ErrLayout, path, diags.Error())
	}

	l := base
	if p := fc.Page; p != nil {
		setFloat(&l.DocWidth, p.Width)
		setFloat(&l.DocHeight, p.Height)
	}
	if g := fc.Grid; g != nil {
		setInt(&l.Rows, g.Rows)
		setInt(&l.Columns, g.Columns)
		setFloat(&l.YMargin, g.YMargin)
		setFloat(&l.BoxMargin, g.BoxMargin)
		setFloat(&l.HeaderOffset, g.HeaderOffset)
		setFloat(&l.XOffset, g.XOffset)
		setFloat(&l.BoxLineWidth, g.LineWidth)
	}

	slog.Debug(config.MsgLayoutLoaded,
		config.LogKeyComponent, config.CompLayout,
		config.LogKeyFile, path,
	)
	return l, nil
}

func setFloat(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}
