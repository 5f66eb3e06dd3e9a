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

package geoplotutil

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/lnashier/viper"
)

// writeTestFile writes a NetCDF file with a 3×4 geographic grid and
// one variable.
func writeTestFile(t *testing.T, filename string) {
	t.Helper()
	h := cdf.NewHeader([]string{"lat", "lon"}, []int{3, 4})
	h.AddVariable("lon", []string{"lon"}, []float64{0})
	h.AddAttribute("lon", "units", "degrees_east")
	h.AddVariable("lat", []string{"lat"}, []float64{0})
	h.AddAttribute("lat", "units", "degrees_north")
	h.AddVariable("temperature", []string{"lat", "lon"}, []float64{0})
	h.AddAttribute("temperature", "units", "K")
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
	write := func(v string, end []int, buf []float64) {
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
	write("temperature", []int{3, 4}, temperature)
}

// execute runs the root command with the given arguments and returns
// its output.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	var buf bytes.Buffer
	Root.SetOutput(&buf)
	Root.SetArgs(args)
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestVersion(t *testing.T) {
	out := execute(t, "version")
	if !strings.Contains(out, "GeoPlot v") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestProjections(t *testing.T) {
	out := execute(t, "projections")
	for _, want := range []string{"Robinson", "Mercator", "max_latitude=84"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not mention %s:\n%s", want, out)
		}
	}
}

func TestDraw(t *testing.T) {
	dir, err := ioutil.TempDir("", "geoplotutil")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	input := filepath.Join(dir, "test.nc")
	writeTestFile(t, input)
	output := filepath.Join(dir, "map.png")
	legend := filepath.Join(dir, "legend.png")

	execute(t, "draw",
		"--InputFile", input,
		"--Variable", "temperature",
		"--Projection", "Robinson",
		"--OutputFile", output,
		"--LegendFile", legend,
	)
	for _, filename := range []string{output, legend} {
		b, err := ioutil.ReadFile(filename)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(b, []byte("\x89PNG")) {
			t.Errorf("%s is not a PNG image", filename)
		}
	}
}

func TestDrawErrors(t *testing.T) {
	cfg := viper.New()
	if err := Draw(cfg); err == nil {
		t.Error("no error for an empty input file")
	}
	cfg.Set("InputFile", "/nonexistent.nc")
	if err := Draw(cfg); err == nil {
		t.Error("no error for a nonexistent input file")
	}
}

func TestInfo(t *testing.T) {
	dir, err := ioutil.TempDir("", "geoplotutil")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	input := filepath.Join(dir, "test.nc")
	writeTestFile(t, input)

	out := execute(t, "info", "--InputFile", input)
	for _, want := range []string{"3×4", "temperature (K)", "0 to 11"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not mention %q:\n%s", want, out)
		}
	}
}

func TestSetConfig(t *testing.T) {
	dir, err := ioutil.TempDir("", "geoplotutil")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	cfgFile := filepath.Join(dir, "config.toml")
	if err := ioutil.WriteFile(cfgFile, []byte("Width = 400\n"), 0644); err != nil {
		t.Fatal(err)
	}
	Cfg.Set("config", cfgFile)
	defer Cfg.Set("config", "")
	if err := setConfig(); err != nil {
		t.Fatal(err)
	}
	if got := Cfg.GetInt("Width"); got != 400 {
		t.Errorf("Width = %d; want 400 from the configuration file", got)
	}
}
