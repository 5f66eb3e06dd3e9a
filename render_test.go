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
	"bytes"
	"image/color"
	"io/ioutil"
	"math"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/ctessum/sparse"
	"github.com/spatialmodel/geoplot/mapproj"
)

func newTestRenderer() *Renderer {
	r := NewRenderer()
	log := logrus.New()
	log.Out = ioutil.Discard
	r.Log = log
	return r
}

func TestRender(t *testing.T) {
	d := testDataset(t)
	tr, err := mapproj.Resolve("PlateCarree")
	if err != nil {
		t.Fatal(err)
	}
	m, err := newTestRenderer().Render(d, "temperature", 0, tr)
	if err != nil {
		t.Fatal(err)
	}
	b := m.I.Bounds()
	if b.Dx() != 800 {
		t.Errorf("image width is %d; want 800", b.Dx())
	}
	// The grid covers the whole globe, so the projected plane is
	// twice as wide as it is tall.
	if b.Dy() != 400 {
		t.Errorf("image height is %d; want 400", b.Dy())
	}
	if m.Min != 0 || m.Max != 11 {
		t.Errorf("color scale spans (%g, %g); want (0, 11)", m.Min, m.Max)
	}

	var painted bool
	white := color.RGBA{255, 255, 255, 255}
	for x := 0; x < b.Dx() && !painted; x += 10 {
		for y := 0; y < b.Dy(); y += 10 {
			if m.I.RGBAAt(x, y) != white {
				painted = true
				break
			}
		}
	}
	if !painted {
		t.Error("no cells were painted")
	}
}

func TestRenderNaNCells(t *testing.T) {
	temperature := sparse.ZerosDense(3, 4)
	for i := range temperature.Elements {
		temperature.Elements[i] = float64(i)
	}
	temperature.Set(math.NaN(), 1, 1)
	d, err := LoadUniformGrid("test",
		map[string]*sparse.DenseArray{"temperature": temperature},
		[]float64{-135, -45, 45, 135},
		[]float64{-60, 0, 60},
		GeometryGeographic,
	)
	if err != nil {
		t.Fatal(err)
	}
	tr, err := mapproj.Resolve("PlateCarree")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := newTestRenderer().Render(d, "temperature", 0, tr); err != nil {
		t.Fatal(err)
	}
}

// Cells on the far hemisphere cannot be projected and must be skipped
// rather than failing the whole map.
func TestRenderOrthographic(t *testing.T) {
	d := testDataset(t)
	tr, err := mapproj.Resolve([]interface{}{"Orthographic", []float64{0, 0}})
	if err != nil {
		t.Fatal(err)
	}
	m, err := newTestRenderer().Render(d, "temperature", 0, tr)
	if err != nil {
		t.Fatal(err)
	}
	if m.I.Bounds().Dx() != 800 {
		t.Errorf("image width is %d; want 800", m.I.Bounds().Dx())
	}
}

func TestRenderErrors(t *testing.T) {
	d := testDataset(t)
	tr, err := mapproj.Resolve("PlateCarree")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := newTestRenderer().Render(d, "humidity", 0, tr); err == nil {
		t.Error("no error for a nonexistent variable")
	}
	if _, err := newTestRenderer().Render(d, "temperature", 3, tr); err == nil {
		t.Error("no error for a nonexistent layer")
	}

	allNaN := sparse.ZerosDense(3, 4)
	for i := range allNaN.Elements {
		allNaN.Elements[i] = math.NaN()
	}
	dn, err := LoadUniformGrid("test",
		map[string]*sparse.DenseArray{"v": allNaN},
		[]float64{-135, -45, 45, 135},
		[]float64{-60, 0, 60},
		GeometryGeographic,
	)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := newTestRenderer().Render(dn, "v", 0, tr); err == nil {
		t.Error("no error for a variable with no finite values")
	}
}

func TestMapWriteTo(t *testing.T) {
	d := testDataset(t)
	tr, err := mapproj.Resolve("PlateCarree")
	if err != nil {
		t.Fatal(err)
	}
	m, err := newTestRenderer().Render(d, "temperature", 0, tr)
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := m.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("output is not a PNG image")
	}
}

func TestMapLegend(t *testing.T) {
	d := testDataset(t)
	tr, err := mapproj.Resolve("PlateCarree")
	if err != nil {
		t.Fatal(err)
	}
	// A low cutoff quantile exercises the broken color scale.
	r := newTestRenderer()
	r.HighCutQuantile = 0.5
	m, err := r.Render(d, "temperature", 0, tr)
	if err != nil {
		t.Fatal(err)
	}
	if m.HighCut >= m.Max {
		t.Errorf("high cut %g is not below the maximum %g", m.HighCut, m.Max)
	}
	var buf bytes.Buffer
	if err := m.Legend(&buf, "temperature (K)"); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Error("legend is not a PNG image")
	}
}
