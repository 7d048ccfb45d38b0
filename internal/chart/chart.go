// Package chart renders group summaries with gonum/plot.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/KaramelBytes/rosterlens/internal/analysis"
	"github.com/KaramelBytes/rosterlens/internal/dataset"
)

// ErrNoData is returned when nothing plottable remains.
var ErrNoData = errors.New("no data to plot")

// Bar plots one bar per group with a defined value. Groups whose statistic is
// undefined are left out rather than drawn as zero.
func Bar(values []analysis.StatValue, title, ylabel string) (*plot.Plot, error) {
	var ys plotter.Values
	var names []string
	for _, v := range values {
		if !v.Defined {
			continue
		}
		ys = append(ys, v.Value)
		names = append(names, displayKey(v.Key))
	}
	if len(ys) == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = ylabel
	bars, err := plotter.NewBarChart(ys, vg.Points(24))
	if err != nil {
		return nil, fmt.Errorf("bar chart: %w", err)
	}
	bars.Color = plotutil.Color(0)
	p.Add(bars)
	p.NominalX(names...)
	return p, nil
}

// Box plots the value distribution of every cross-tab cell: one slot per
// interval on X, one colored box per group within the slot.
func Box(ct *analysis.CrossTab, title string) (*plot.Plot, error) {
	if ct == nil || len(ct.Cells) == 0 {
		return nil, ErrNoData
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = ct.BinColumn + " interval"
	p.Y.Label.Text = ct.ValueColumn

	slot := make(map[string]int, len(ct.Intervals))
	for i, iv := range ct.Intervals {
		slot[iv] = i
	}
	n := float64(len(ct.Groups))
	const spread = 0.8
	drawn := 0
	for gi, g := range ct.Groups {
		drawnGroup := false
		for _, c := range ct.Cells {
			if c.Group != g || len(c.Values) == 0 {
				continue
			}
			loc := float64(slot[c.Interval])
			if n > 1 {
				loc += (float64(gi)/(n-1) - 0.5) * spread
			}
			box, err := plotter.NewBoxPlot(vg.Points(10), loc, plotter.Values(c.Values))
			if err != nil {
				return nil, fmt.Errorf("box %s/%s: %w", g, c.Interval, err)
			}
			box.FillColor = plotutil.Color(gi)
			p.Add(box)
			drawn++
			drawnGroup = true
		}
		if drawnGroup {
			p.Legend.Add(displayKey(g), swatch{plotutil.Color(gi)})
		}
	}
	if drawn == 0 {
		return nil, ErrNoData
	}
	p.Legend.Top = true
	p.NominalX(ct.Intervals...)
	return p, nil
}

// Scatter plots yCol against xCol with one colored series per group, in the
// order groups first appear. Records missing either number are skipped.
func Scatter(records []dataset.Record, groupCol, xCol, yCol, title string) (*plot.Plot, error) {
	var order []string
	points := make(map[string]plotter.XYs)
	for _, r := range records {
		x, okx := dataset.ParseFloat(r[xCol])
		y, oky := dataset.ParseFloat(r[yCol])
		if !okx || !oky {
			continue
		}
		g := r[groupCol]
		if _, seen := points[g]; !seen {
			order = append(order, g)
		}
		points[g] = append(points[g], plotter.XY{X: x, Y: y})
	}
	if len(order) == 0 {
		return nil, ErrNoData
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xCol
	p.Y.Label.Text = yCol
	for gi, g := range order {
		sc, err := plotter.NewScatter(points[g])
		if err != nil {
			return nil, fmt.Errorf("scatter %s: %w", g, err)
		}
		sc.GlyphStyle.Color = plotutil.Color(gi)
		sc.GlyphStyle.Shape = plotutil.Shape(gi)
		p.Add(sc)
		p.Legend.Add(displayKey(g), sc)
	}
	p.Legend.Top = true
	return p, nil
}

// Save writes the plot; the format follows the file extension (png, svg, pdf).
func Save(p *plot.Plot, path string, widthIn, heightIn float64) error {
	if widthIn <= 0 {
		widthIn = 8
	}
	if heightIn <= 0 {
		heightIn = 5
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	if err := p.Save(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch, path); err != nil {
		return fmt.Errorf("save chart: %w", err)
	}
	return nil
}

// swatch is a legend entry filled with a group's box color.
type swatch struct{ fill color.Color }

func (s swatch) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(s.fill, c.ClipPolygonY(pts))
}

func displayKey(k string) string {
	if k == "" {
		return "(blank)"
	}
	return k
}
