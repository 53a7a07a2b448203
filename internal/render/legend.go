package render

import "github.com/tartampluch/go-life-calendar/internal/config"

type legendItem struct {
	key      string
	fallback string
	colour   Color
}

func (r *Renderer) legendItems() []legendItem {
	var items []legendItem
	if r.Highlight.Birthday {
		items = append(items, legendItem{config.TKeyLegendBday, "Month of your birthday", r.Style.BirthdayColour})
	}
	if r.Highlight.NewYear {
		items = append(items, legendItem{config.TKeyLegendNewYear, "First month of the new year", r.Style.NewYearColour})
	}
	if r.Highlight.Today {
		items = append(items, legendItem{config.TKeyLegendToday, "This month", r.Style.TodayColour})
	}
	return items
}

// drawLegend lays the key out left to right in the top band, starting a
// quarter of the grid margin in from the top-left corner.
func (r *Renderer) drawLegend(s Surface) {
	g := r.Geometry
	swatch := r.Style.LabelSize
	x := g.XMargin / 4
	y := g.XMargin / 4

	s.SetFont(Font{Face: r.Style.FontFace, Size: r.Style.LegendSize})
	for _, item := range r.legendItems() {
		r.drawSwatch(s, x, y, swatch, item.colour)
		x += swatch * 1.5

		desc := r.text(item.key, item.fallback)
		s.SetFillColor(r.Style.Ink)
		w, h := s.TextExtents(desc)
		s.Text(x, y+swatch/2+h/2, desc)
		x += w + swatch*2
	}
}

func (r *Renderer) drawSwatch(s Surface, x, y, size float64, fill Color) {
	s.SetLineWidth(r.Geometry.BoxLineWidth)
	s.SetStrokeColor(r.Style.Ink)
	s.SetFillColor(fill)
	s.Rect(x, y, size, size, FillStroke)
}
