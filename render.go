/*
Copyright © 2018 the GeoPlot authors.
This file is part of GeoPlot.

GeoPlot is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

GeoPlot is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with GeoPlot.  If not, see <http://www.gnu.org/licenses/>.
*/

package geoplot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/plotextra"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/spatialmodel/geoplot/mapproj"
)

// Renderer draws scalar fields from a Dataset onto a projected map.
type Renderer struct {
	// Width is the width of the output image in pixels.
	Width int

	// HighCutQuantile is the quantile of the data above which values
	// share the overflow color scale, so that a few outliers do not
	// wash out the rest of the map. Values of 1 or greater disable
	// the overflow scale.
	HighCutQuantile float64

	// EdgeSegments is the number of segments each grid cell edge is
	// divided into before projection, so that cell outlines follow
	// curved graticules.
	EdgeSegments int

	// Log is the logger for this renderer. It defaults to the logrus
	// standard logger.
	Log logrus.FieldLogger
}

// NewRenderer creates a Renderer with default settings.
func NewRenderer() *Renderer {
	return &Renderer{
		Width:           800,
		HighCutQuantile: 0.999,
		EdgeSegments:    4,
		Log:             logrus.StandardLogger(),
	}
}

// Map is a rendered map image and the color scale used to produce it.
type Map struct {
	I        *image.RGBA
	ColorMap *plotextra.BrokenColorMap

	// Min, Max, and HighCut describe the color scale: data values
	// between Min and HighCut use the main scale and values between
	// HighCut and Max use the overflow scale.
	Min, Max, HighCut float64

	bounds *geom.Bounds // bounds in projected plane units
	canvas draw.Canvas
	scale  float64
}

// Render draws one vertical layer of the named variable, projecting
// each grid cell with the given transform. Cells with NaN values and
// cells the projection cannot represent are left blank.
func (r *Renderer) Render(d *Dataset, varName string, layer int, tr mapproj.Transform) (*Map, error) {
	data, err := d.Layer(varName, layer)
	if err != nil {
		return nil, err
	}
	min, max := MinMax(data)
	if math.IsInf(min, 1) {
		return nil, fmt.Errorf("geoplot: variable %s layer %d has no finite values", varName, layer)
	}
	highCut := r.highCut(data.Elements, min, max)
	cm, err := newColorMap(min, max, highCut)
	if err != nil {
		return nil, err
	}

	rings, bounds, err := r.projectCells(d, tr)
	if err != nil {
		return nil, err
	}

	width := r.Width
	if width <= 0 {
		width = 800
	}
	height := int(float64(width) * (bounds.Max.Y - bounds.Min.Y) / (bounds.Max.X - bounds.Min.X))
	if height < 1 {
		height = 1
	}
	I := image.NewRGBA(image.Rect(0, 0, width, height))
	c := draw.New(vgimg.NewWith(vgimg.UseImage(I)))
	m := &Map{
		I:        I,
		ColorMap: cm,
		Min:      min,
		Max:      max,
		HighCut:  highCut,
		bounds:   bounds,
		canvas:   c,
		scale: math.Min(float64(c.Max.X-c.Min.X)/(bounds.Max.X-bounds.Min.X),
			float64(c.Max.Y-c.Min.Y)/(bounds.Max.Y-bounds.Min.Y)),
	}

	nx := d.Nx()
	var drawn int
	for j := 0; j < d.Ny(); j++ {
		for i := 0; i < nx; i++ {
			ring := rings[j*nx+i]
			if ring == nil {
				continue
			}
			v := data.Get(j, i)
			if math.IsNaN(v) {
				continue
			}
			col, err := cm.At(v)
			if err != nil {
				return nil, fmt.Errorf("geoplot: coloring value %g: %v", v, err)
			}
			m.fill(ring, col)
			drawn++
		}
	}
	r.log().WithFields(logrus.Fields{
		"dataset":    d.Name,
		"variable":   varName,
		"layer":      layer,
		"projection": tr.Kind(),
		"cells":      drawn,
	}).Info("rendered map")
	return m, nil
}

func (r *Renderer) log() logrus.FieldLogger {
	if r.Log != nil {
		return r.Log
	}
	return logrus.StandardLogger()
}

// highCut returns the value separating the main color scale from the
// overflow scale.
func (r *Renderer) highCut(vals []float64, min, max float64) float64 {
	if r.HighCutQuantile >= 1 {
		return max
	}
	finite := make([]float64, 0, len(vals))
	for _, v := range vals {
		if !math.IsNaN(v) {
			finite = append(finite, v)
		}
	}
	sort.Float64s(finite)
	cut := stat.Quantile(r.HighCutQuantile, stat.Empirical, finite, nil)
	if cut <= min || cut > max {
		return max
	}
	return cut
}

func newColorMap(min, max, highCut float64) (*plotextra.BrokenColorMap, error) {
	if max == min { // degenerate range; paint everything with one color
		max = min + 1
		highCut = max
	}
	overflow, err := moreland.NewLuminance([]color.Color{
		color.NRGBA{G: 176, A: 255},
		color.NRGBA{G: 255, A: 255},
	})
	if err != nil {
		return nil, fmt.Errorf("geoplot: creating color map: %v", err)
	}
	cm := &plotextra.BrokenColorMap{
		Base:     moreland.ExtendedBlackBody(),
		OverFlow: palette.Reverse(overflow),
	}
	cm.SetMin(min)
	cm.SetMax(max)
	cm.SetHighCut(highCut)
	return cm, nil
}

// projectCells projects the outline of every grid cell, returning one
// ring per cell in row-major order and the bounds of the projected
// grid. Cells the projection cannot represent, and cells that wrap
// across the projection's longitude cut, get nil rings.
func (r *Renderer) projectCells(d *Dataset, tr mapproj.Transform) ([][]geom.Point, *geom.Bounds, error) {
	segments := r.EdgeSegments
	if segments < 1 {
		segments = 1
	}
	nx, ny := d.Nx(), d.Ny()
	rings := make([][]geom.Point, ny*nx)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			p, _ := d.CellPolygon(j, i)
			ring := projectRing(densify(p[0], segments), tr)
			rings[j*nx+i] = ring
		}
	}

	bounds := ringBounds(rings)
	if bounds == nil {
		return nil, nil, fmt.Errorf("geoplot: projection %s cannot represent any cell of the grid", tr.Kind())
	}
	// Cells spanning the longitude cut project to rings stretching
	// across the whole map; drop anything much wider than a typical
	// cell.
	maxW := (bounds.Max.X - bounds.Min.X) / float64(nx) * 10
	maxH := (bounds.Max.Y - bounds.Min.Y) / float64(ny) * 10
	var dropped bool
	for k, ring := range rings {
		if ring == nil {
			continue
		}
		b := ringBounds([][]geom.Point{ring})
		if b.Max.X-b.Min.X > maxW || b.Max.Y-b.Min.Y > maxH {
			rings[k] = nil
			dropped = true
		}
	}
	if dropped {
		if bounds = ringBounds(rings); bounds == nil {
			return nil, nil, fmt.Errorf("geoplot: projection %s cannot represent any cell of the grid", tr.Kind())
		}
	}
	return rings, bounds, nil
}

// densify splits each segment of a ring into n parts.
func densify(ring []geom.Point, n int) []geom.Point {
	out := make([]geom.Point, 0, (len(ring)-1)*n+1)
	for k := 0; k < len(ring)-1; k++ {
		p0, p1 := ring[k], ring[k+1]
		for s := 0; s < n; s++ {
			f := float64(s) / float64(n)
			out = append(out, geom.Point{
				X: p0.X + f*(p1.X-p0.X),
				Y: p0.Y + f*(p1.Y-p0.Y),
			})
		}
	}
	return append(out, ring[len(ring)-1])
}

// projectRing applies the transform to every vertex of a ring,
// returning nil if any vertex cannot be projected.
func projectRing(ring []geom.Point, tr mapproj.Transform) []geom.Point {
	out := make([]geom.Point, len(ring))
	for k, p := range ring {
		x, y, err := tr.Forward(p.X, p.Y)
		if err != nil {
			return nil
		}
		out[k] = geom.Point{X: x, Y: y}
	}
	return out
}

func ringBounds(rings [][]geom.Point) *geom.Bounds {
	var b *geom.Bounds
	for _, ring := range rings {
		for _, p := range ring {
			if b == nil {
				b = &geom.Bounds{Min: p, Max: p}
				continue
			}
			b.Min.X = math.Min(b.Min.X, p.X)
			b.Min.Y = math.Min(b.Min.Y, p.Y)
			b.Max.X = math.Max(b.Max.X, p.X)
			b.Max.Y = math.Max(b.Max.Y, p.Y)
		}
	}
	return b
}

// coordinates transforms projected-plane coordinates to coordinates on
// the canvas.
func (m *Map) coordinates(p geom.Point) vg.Point {
	return vg.Point{
		X: m.canvas.Min.X + vg.Length(m.scale*(p.X-m.bounds.Min.X)),
		Y: m.canvas.Min.Y + vg.Length(m.scale*(p.Y-m.bounds.Min.Y)),
	}
}

func (m *Map) fill(ring []geom.Point, c color.Color) {
	var path vg.Path
	for i, p := range ring {
		if i == 0 {
			path.Move(m.coordinates(p))
		} else {
			path.Line(m.coordinates(p))
		}
	}
	path.Close()
	m.canvas.SetColor(c)
	m.canvas.Fill(path)
}

// WriteTo writes the map to w in PNG format.
func (m *Map) WriteTo(w io.Writer) error {
	return png.Encode(w, m.I)
}

// Legend writes a PNG color bar for the map's color scale to w. If the
// scale has an overflow section, the bar is broken at the cutoff.
func (m *Map) Legend(w io.Writer, label string) error {
	p, err := plot.New()
	if err != nil {
		return fmt.Errorf("geoplot: creating map legend: %v", err)
	}
	p.Add(&plotter.ColorBar{ColorMap: m.ColorMap})
	if m.HighCut < m.Max {
		p.X.Scale = plotextra.BrokenScale{
			HighCut:         m.HighCut,
			HighCutFraction: 0.9,
		}
		p.X.Tick.Marker = plotextra.BrokenTicks{
			HighCut: m.HighCut,
		}
	}
	p.HideY()
	p.X.Padding = 0
	p.X.Label.Text = label

	img := vgimg.New(300, 40)
	dc := draw.New(img)
	p.Draw(dc)
	pngc := vgimg.PngCanvas{Canvas: img}
	if _, err := pngc.WriteTo(w); err != nil {
		return fmt.Errorf("geoplot: writing map legend: %v", err)
	}
	return nil
}
