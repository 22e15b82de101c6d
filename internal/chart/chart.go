// Package chart renders the analysis figures as PNG files with gonum/plot.
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
)

// Chart errors.
var (
	ErrNoData         = errors.New("no data to plot")
	ErrLengthMismatch = errors.New("labels and values differ in length")
)

const (
	barWidth = vg.Length(18)
	boxWidth = vg.Length(40)
)

// Renderer writes charts into a directory at a fixed size.
type Renderer struct {
	dir    string
	width  vg.Length
	height vg.Length
}

// NewRenderer creates a renderer; width and height are in inches.
func NewRenderer(dir string, widthIn, heightIn float64) *Renderer {
	return &Renderer{
		dir:    dir,
		width:  vg.Length(widthIn) * vg.Inch,
		height: vg.Length(heightIn) * vg.Inch,
	}
}

// Group is one labelled sample for a box plot.
type Group struct {
	Label  string
	Values []float64
}

// Line draws ys against xs with point markers.
func (r *Renderer) Line(name, title, xLabel, yLabel string, xs, ys []float64) (string, error) {
	if len(xs) == 0 {
		return "", fmt.Errorf("%s: %w", name, ErrNoData)
	}

	if len(xs) != len(ys) {
		return "", fmt.Errorf("%s: %w", name, ErrLengthMismatch)
	}

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i].X = xs[i]
		pts[i].Y = ys[i]
	}

	p := newPlot(title, xLabel, yLabel)

	line, points, err := plotter.NewLinePoints(pts)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}

	line.Color = plotutil.Color(0)
	points.Color = plotutil.Color(0)
	points.Shape = plotutil.Shape(0)

	p.Add(line, points)

	return r.save(p, name)
}

// Bars draws one vertical bar per label.
func (r *Renderer) Bars(name, title, yLabel string, labels []string, values []float64) (string, error) {
	return r.bars(name, title, yLabel, labels, values, false)
}

// HorizontalBars draws one horizontal bar per label, first label at the top.
func (r *Renderer) HorizontalBars(name, title, xLabel string, labels []string, values []float64) (string, error) {
	n := len(labels)
	rev := make([]string, n)
	revValues := make([]float64, len(values))

	for i := range labels {
		rev[n-1-i] = labels[i]
	}

	for i := range values {
		revValues[len(values)-1-i] = values[i]
	}

	return r.bars(name, title, xLabel, rev, revValues, true)
}

func (r *Renderer) bars(name, title, valueLabel string, labels []string, values []float64, horizontal bool) (string, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("%s: %w", name, ErrNoData)
	}

	if len(labels) != len(values) {
		return "", fmt.Errorf("%s: %w", name, ErrLengthMismatch)
	}

	p := newPlot(title, "", valueLabel)

	bars, err := plotter.NewBarChart(plotter.Values(values), barWidth)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}

	bars.Color = plotutil.Color(0)
	bars.LineStyle.Width = vg.Length(0)
	bars.Horizontal = horizontal

	p.Add(bars)

	if horizontal {
		p.X.Label.Text, p.Y.Label.Text = valueLabel, ""
		p.NominalY(labels...)
	} else {
		p.NominalX(labels...)
		p.X.Tick.Label.Rotation = 0.5
		p.X.Tick.Label.XAlign = -0.9
	}

	return r.save(p, name)
}

// BoxPlot draws one box per group. With logScale non-positive values are dropped.
// Groups left without values are skipped.
func (r *Renderer) BoxPlot(name, title, yLabel string, groups []Group, logScale bool) (string, error) {
	p := newPlot(title, "", yLabel)

	labels := make([]string, 0, len(groups))

	for i, g := range groups {
		values := g.Values
		if logScale {
			values = positive(values)
		}

		if len(values) == 0 {
			continue
		}

		box, err := plotter.NewBoxPlot(boxWidth, float64(len(labels)), plotter.Values(values))
		if err != nil {
			return "", fmt.Errorf("%s: %w", name, err)
		}

		box.FillColor = withAlpha(plotutil.Color(i), 0x80)

		p.Add(box)

		labels = append(labels, g.Label)
	}

	if len(labels) == 0 {
		return "", fmt.Errorf("%s: %w", name, ErrNoData)
	}

	p.NominalX(labels...)

	if logScale {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}

	return r.save(p, name)
}

func (r *Renderer) save(p *plot.Plot, name string) (string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create chart directory: %w", err)
	}

	path := filepath.Join(r.dir, name)

	if err := p.Save(r.width, r.height, path); err != nil {
		return "", fmt.Errorf("failed to save chart %s: %w", name, err)
	}

	return path, nil
}

func newPlot(title, xLabel, yLabel string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	return p
}

func positive(values []float64) []float64 {
	out := make([]float64, 0, len(values))

	for _, v := range values {
		if v > 0 {
			out = append(out, v)
		}
	}

	return out
}

func withAlpha(c color.Color, a uint8) color.Color {
	r, g, b, _ := c.RGBA()

	return color.NRGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: a}
}
