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
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/ctessum/cdf"
	"github.com/ctessum/sparse"
)

// Attribute names read from NetCDF variables and from the file itself.
var varAttrNames = []string{"units", "long_name", "standard_name", "description"}
var globalAttrNames = []string{"title", "history", "institution", "source", "Conventions"}

// ReadNetCDF reads all gridded floating-point variables from a NetCDF
// (classic format) file into a Dataset. The file must contain 1-d
// latitude and longitude coordinate variables in degrees, and its
// gridded variables must have latitude and longitude as their two
// fastest-varying dimensions, in that order.
func ReadNetCDF(filename string) (*Dataset, error) {
	return ReadNetCDFVars(filename)
}

// ReadNetCDFVars is like ReadNetCDF but reads only the named
// variables. If no names are given, all gridded variables are read.
func ReadNetCDFVars(filename string, varNames ...string) (*Dataset, error) {
	ff, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("geoplot: opening NetCDF file: %v", err)
	}
	defer ff.Close()
	nc, err := cdf.Open(ff)
	if err != nil {
		return nil, fmt.Errorf("geoplot: reading NetCDF file %s: %v", filename, err)
	}

	lonVar, latVar, err := coordVars(nc)
	if err != nil {
		return nil, fmt.Errorf("geoplot: %s: %v", filename, err)
	}
	lonCenters, err := readNCFVar(nc, lonVar)
	if err != nil {
		return nil, fmt.Errorf("geoplot: %s: %v", filename, err)
	}
	latCenters, err := readNCFVar(nc, latVar)
	if err != nil {
		return nil, fmt.Errorf("geoplot: %s: %v", filename, err)
	}
	lonDim := nc.Header.Dimensions(lonVar)[0]
	latDim := nc.Header.Dimensions(latVar)[0]

	want := make(map[string]bool, len(varNames))
	for _, v := range varNames {
		want[v] = true
	}

	vars := make(map[string]*sparse.DenseArray)
	varAttrs := make(map[string]map[string]interface{})
	for _, v := range nc.Header.Variables() {
		if v == lonVar || v == latVar {
			continue
		}
		if len(want) > 0 && !want[v] {
			continue
		}
		dims := nc.Header.Dimensions(v)
		if !griddedOn(dims, latDim, lonDim) {
			if want[v] {
				return nil, fmt.Errorf("geoplot: %s: variable %s is not gridded on (%s, %s)",
					filename, v, latDim, lonDim)
			}
			continue
		}
		data, err := readNCFVar(nc, v)
		if err != nil {
			return nil, fmt.Errorf("geoplot: %s: variable %s: %v", filename, v, err)
		}
		if data == nil { // not floating point
			continue
		}
		arr := sparse.ZerosDense(nc.Header.Lengths(v)...)
		copy(arr.Elements, data)
		vars[v] = arr
		varAttrs[v] = readAttrs(nc, v, varAttrNames)
	}
	for v := range want {
		if _, ok := vars[v]; !ok {
			return nil, fmt.Errorf("geoplot: %s: missing variable %s", filename, v)
		}
	}
	if len(vars) == 0 {
		return nil, fmt.Errorf("geoplot: %s: no gridded variables", filename)
	}

	d, err := LoadUniformGrid(filepath.Base(filename), vars, lonCenters, latCenters, GeometryGeographic)
	if err != nil {
		return nil, err
	}
	d.SetAttrs(readAttrs(nc, "", globalAttrNames))
	for v, attrs := range varAttrs {
		d.SetVarAttrs(v, attrs)
	}
	return d, nil
}

// griddedOn reports whether the two fastest-varying dimensions of a
// variable are the latitude and longitude dimensions, in that order.
func griddedOn(dims []string, latDim, lonDim string) bool {
	if len(dims) < 2 || len(dims) > 3 {
		return false
	}
	return dims[len(dims)-2] == latDim && dims[len(dims)-1] == lonDim
}

// coordVars finds the longitude and latitude coordinate variables: 1-d
// variables that share a name with their dimension and are
// recognizable by name, standard_name, or units.
func coordVars(nc *cdf.File) (lonVar, latVar string, err error) {
	for _, v := range nc.Header.Variables() {
		dims := nc.Header.Dimensions(v)
		if len(dims) != 1 || dims[0] != v {
			continue
		}
		switch {
		case isCoord(nc, v, "lon", "longitude", "degrees_east"):
			lonVar = v
		case isCoord(nc, v, "lat", "latitude", "degrees_north"):
			latVar = v
		}
	}
	if lonVar == "" || latVar == "" {
		return "", "", fmt.Errorf("missing longitude or latitude coordinate variable")
	}
	return lonVar, latVar, nil
}

func isCoord(nc *cdf.File, v, short, standard, units string) bool {
	name := strings.ToLower(v)
	if name == short || name == standard {
		return true
	}
	if s, ok := nc.Header.GetAttribute(v, "standard_name").(string); ok && s == standard {
		return true
	}
	if u, ok := nc.Header.GetAttribute(v, "units").(string); ok && strings.HasPrefix(u, units) {
		return true
	}
	return false
}

// readNCFVar reads a floating point variable, converting any
// _FillValue entries to NaN. It returns nil if the variable is not
// floating point.
func readNCFVar(nc *cdf.File, v string) ([]float64, error) {
	r := nc.Reader(v, nil, nil)
	dataI := r.Zero(-1)
	switch dataI.(type) {
	case []float32, []float64:
	default:
		return nil, nil
	}
	if _, err := r.Read(dataI); err != nil {
		return nil, err
	}
	var data []float64
	switch dat := dataI.(type) {
	case []float64:
		data = dat
	case []float32:
		data = make([]float64, len(dat))
		for i, val := range dat {
			data[i] = float64(val)
		}
	}

	noDataI := nc.Header.GetAttribute(v, "_FillValue")
	if noDataI == nil {
		noDataI = nc.Header.GetAttribute(v, "missing_value")
	}
	if noDataI != nil {
		var noData float64
		switch nd := noDataI.(type) {
		case []float32:
			noData = float64(nd[0])
		case []float64:
			noData = nd[0]
		default:
			return nil, fmt.Errorf("invalid type for fill value: %T", noDataI)
		}
		for i, val := range data {
			if val == noData {
				data[i] = math.NaN()
			}
		}
	}
	return data, nil
}

// readAttrs reads the named attributes of a variable (or of the file,
// when v is ""), skipping ones that are not present. Scalar numeric
// attributes are unwrapped from their single-element slices.
func readAttrs(nc *cdf.File, v string, names []string) map[string]interface{} {
	attrs := make(map[string]interface{})
	for _, name := range names {
		a := nc.Header.GetAttribute(v, name)
		if a == nil {
			continue
		}
		switch at := a.(type) {
		case []float64:
			if len(at) == 1 {
				attrs[name] = at[0]
				continue
			}
		case []float32:
			if len(at) == 1 {
				attrs[name] = float64(at[0])
				continue
			}
		case []int32:
			if len(at) == 1 {
				attrs[name] = int(at[0])
				continue
			}
		}
		attrs[name] = a
	}
	return attrs
}
