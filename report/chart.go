// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"image/color"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/pkg/errors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/mohamed-arabi16/multi-thread-server/results"
	"github.com/mohamed-arabi16/multi-thread-server/summary"
)

// Chart geometry. PNG output is 1280x960 pixels.
const (
	chartWidth  = 6.4 * vg.Inch
	chartHeight = 4.8 * vg.Inch
	chartDPI    = 200
	pointRad    = 3
)

// A Line is the series drawn for one group value of a chart.
type Line struct {
	Label  string
	Points plotter.XYs // Sorted by X
}

// Lines partitions the rows of s by policy and returns one Line per
// policy, in policy order. Each line plots the sweep value against
// the metric yColumn, sorted by sweep value.
func Lines(s *summary.Summary, yColumn string) ([]Line, error) {
	if !isMetric(yColumn) {
		return nil, errors.Errorf("unknown metric %q", yColumn)
	}
	sweeps := s.Sweeps()
	var lines []Line
	for _, p := range s.Policies() {
		var pts plotter.XYs
		for _, x := range sweeps {
			r, ok := s.Lookup(p, x)
			if !ok {
				continue
			}
			y, _ := r.Value(yColumn)
			pts = append(pts, plotter.XY{X: float64(x), Y: y})
		}
		lines = append(lines, Line{Label: p, Points: pts})
	}
	return lines, nil
}

// RenderLineChart draws yColumn against xColumn with one
// marker-connected line per distinct value of groupColumn and writes
// it as a PNG image to path, replacing any existing file.
//
// xColumn must be the sweep column of s and groupColumn must be
// results.Policy. An empty summary produces a chart with no lines.
func RenderLineChart(s *summary.Summary, xColumn, yColumn, groupColumn, title, path string) error {
	if xColumn != s.GroupColumn {
		return errors.Errorf("chart x column %q is not the sweep column %q", xColumn, s.GroupColumn)
	}
	if groupColumn != results.Policy {
		return errors.Errorf("cannot group chart lines by %q", groupColumn)
	}
	lines, err := Lines(s, yColumn)
	if err != nil {
		return err
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xColumn
	p.Y.Label.Text = yColumn
	p.Legend.Top = true
	p.Legend.Left = true
	p.Legend.Padding = 1 * vg.Millimeter

	grid := plotter.NewGrid()
	dashes := []vg.Length{vg.Points(3), vg.Points(3)}
	grid.Vertical.Dashes, grid.Horizontal.Dashes = dashes, dashes
	grid.Vertical.Width, grid.Horizontal.Width = vg.Points(0.5), vg.Points(0.5)
	p.Add(grid)

	colors := lineColors(len(lines))
	for i, l := range lines {
		line, points, err := plotter.NewLinePoints(l.Points)
		if err != nil {
			return errors.Wrapf(err, "plotting %s", l.Label)
		}
		line.Color = colors[i]
		line.Width = vg.Points(1.5)
		points.Color = colors[i]
		points.Shape = plotutil.Shape(i)
		points.Radius = vg.Points(pointRad)
		p.Add(line, points)
		p.Legend.Add(l.Label, line, points)
	}
	if ticks := sweepTicks(lines); len(ticks) > 0 {
		p.X.Tick.Marker = plot.ConstantTicks(ticks)
	}

	return savePNG(p, path)
}

// LineChart is RenderLineChart with the sweep column of s on the x
// axis and one line per policy.
func LineChart(s *summary.Summary, yColumn, title, path string) error {
	return RenderLineChart(s, s.GroupColumn, yColumn, results.Policy, title, path)
}

func isMetric(col string) bool {
	for _, m := range summary.Metrics {
		if m == col {
			return true
		}
	}
	return false
}

// lineColors returns n distinct colors, preferring a qualitative
// brewer palette.
func lineColors(n int) []color.Color {
	// Qualitative palettes have between 3 and 9 colors.
	if n <= 9 {
		k := n
		if k < 3 {
			k = 3
		}
		if pal, err := brewer.GetPalette(brewer.TypeQualitative, "Set1", k); err == nil {
			return pal.Colors()[:n]
		}
	}
	colors := make([]color.Color, n)
	for i := range colors {
		colors[i] = plotutil.Color(i)
	}
	return colors
}

// sweepTicks returns one labeled tick per distinct x value.
func sweepTicks(lines []Line) []plot.Tick {
	seen := make(map[float64]bool)
	var ticks []plot.Tick
	for _, l := range lines {
		for _, pt := range l.Points {
			if seen[pt.X] {
				continue
			}
			seen[pt.X] = true
			ticks = append(ticks, plot.Tick{Value: pt.X, Label: strconv.FormatFloat(pt.X, 'f', -1, 64)})
		}
	}
	sort.Slice(ticks, func(i, j int) bool { return ticks[i].Value < ticks[j].Value })
	return ticks
}

func savePNG(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		return err
	}
	can := vgimg.PngCanvas{Canvas: vgimg.NewWith(vgimg.UseWH(chartWidth, chartHeight),
		vgimg.UseDPI(chartDPI), vgimg.UseBackgroundColor(color.White))}
	p.Draw(draw.New(can))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := can.WriteTo(f); err != nil {
		f.Close()
		return errors.Wrapf(err, "writing %s", path)
	}
	return f.Close()
}
