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
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ctessum/cdf"
)

// writeTestNetCDF writes a small NetCDF file with a 3×4 geographic
// grid, one 2-d variable, one 3-d variable, and one integer variable.
func writeTestNetCDF(t *testing.T, filename string) {
	t.Helper()
	h := cdf.NewHeader([]string{"lev", "lat", "lon"}, []int{2, 3, 4})
	h.AddAttribute("", "title", "test data")

	h.AddVariable("lon", []string{"lon"}, []float64{0})
	h.AddAttribute("lon", "units", "degrees_east")
	h.AddVariable("lat", []string{"lat"}, []float64{0})
	h.AddAttribute("lat", "units", "degrees_north")

	h.AddVariable("temperature", []string{"lat", "lon"}, []float64{0})
	h.AddAttribute("temperature", "units", "K")
	h.AddAttribute("temperature", "_FillValue", []float64{-9999})

	h.AddVariable("wind", []string{"lev", "lat", "lon"}, []float32{0})
	h.AddAttribute("wind", "units", "m s-1")

	h.AddVariable("mask", []string{"lat", "lon"}, []int32{0})

	h.Define()
	for _, err := range h.Check() {
		t.Fatal(err)
	}
	ff, err := os.Create(filename)
	if err != nil {
		t.Fatal(err)
	}
	defer ff.Close()
	f, err := cdf.Create(ff, h)
	if err != nil {
		t.Fatal(err)
	}

	write := func(v string, end []int, buf interface{}) {
		w := f.Writer(v, make([]int, len(end)), end)
		if _, err := w.Write(buf); err != nil {
			t.Fatal(err)
		}
	}
	write("lon", []int{4}, []float64{-135, -45, 45, 135})
	write("lat", []int{3}, []float64{-60, 0, 60})

	temperature := make([]float64, 12)
	for i := range temperature {
		temperature[i] = float64(i)
	}
	temperature[5] = -9999 // cell (1, 1) has no data
	write("temperature", []int{3, 4}, temperature)

	wind := make([]float32, 24)
	for i := range wind {
		wind[i] = float32(i)
	}
	write("wind", []int{2, 3, 4}, wind)

	mask := make([]int32, 12)
	write("mask", []int{3, 4}, mask)
}

func TestReadNetCDF(t *testing.T) {
	dir, err := ioutil.TempDir("", "geoplot")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	filename := filepath.Join(dir, "test.nc")
	writeTestNetCDF(t, filename)

	d, err := ReadNetCDF(filename)
	if err != nil {
		t.Fatal(err)
	}
	// mask is not floating point, so only two variables survive.
	if want := []string{"temperature", "wind"}; !reflect.DeepEqual(d.VarNames(), want) {
		t.Fatalf("variables are %v; want %v", d.VarNames(), want)
	}
	if !reflect.DeepEqual(d.LonCenters(), []float64{-135, -45, 45, 135}) {
		t.Errorf("longitudes are %v", d.LonCenters())
	}
	if !reflect.DeepEqual(d.LatCenters(), []float64{-60, 0, 60}) {
		t.Errorf("latitudes are %v", d.LatCenters())
	}

	temperature, err := d.Var("temperature")
	if err != nil {
		t.Fatal(err)
	}
	if got := temperature.Get(0, 2); got != 2 {
		t.Errorf("temperature(0, 2) = %g; want 2", got)
	}
	if got := temperature.Get(1, 1); !math.IsNaN(got) {
		t.Errorf("temperature(1, 1) = %g; want NaN for the fill value", got)
	}

	n, err := d.Layers("wind")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("wind has %d layers; want 2", n)
	}
	wind, err := d.Layer("wind", 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := wind.Get(0, 0); got != 12 {
		t.Errorf("wind(1, 0, 0) = %g; want 12", got)
	}

	if got := d.Units("temperature"); got != "K" {
		t.Errorf("temperature units are %q; want K", got)
	}
	if got := d.Attr("title"); got != "test data" {
		t.Errorf("title is %v; want \"test data\"", got)
	}
}

func TestReadNetCDFVars(t *testing.T) {
	dir, err := ioutil.TempDir("", "geoplot")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	filename := filepath.Join(dir, "test.nc")
	writeTestNetCDF(t, filename)

	d, err := ReadNetCDFVars(filename, "temperature")
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"temperature"}; !reflect.DeepEqual(d.VarNames(), want) {
		t.Errorf("variables are %v; want %v", d.VarNames(), want)
	}

	if _, err := ReadNetCDFVars(filename, "humidity"); err == nil {
		t.Error("no error for a nonexistent variable")
	}
	if _, err := ReadNetCDFVars(filename, "mask"); err == nil {
		t.Error("no error for a non-floating-point variable")
	}
	if _, err := ReadNetCDF(filepath.Join(dir, "nothere.nc")); err == nil {
		t.Error("no error for a nonexistent file")
	}
}
