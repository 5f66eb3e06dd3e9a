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

// Package geoplot loads uniform gridded geographic datasets and renders
// map projections of their scalar fields.
package geoplot

import (
	"fmt"
	"math"
	"sort"

	"github.com/ctessum/geom"
	"github.com/ctessum/sparse"
)

// GridGeometry describes the coordinate system a dataset's grid is
// expressed in.
type GridGeometry string

// GeometryGeographic indicates a grid whose coordinates are geographic
// longitudes and latitudes in degrees. It is currently the only
// supported geometry.
const GeometryGeographic GridGeometry = "geographic"

// spacingTol is the maximum allowed relative deviation from uniform
// grid spacing.
const spacingTol = 1.e-4

// Dataset holds a set of scalar variables on a shared uniform
// geographic grid. Variables are either 2-d (lat, lon) or
// 3-d (layer, lat, lon), stored latitude-major.
type Dataset struct {
	// Name identifies the dataset, for example the name of the file
	// it was loaded from.
	Name string

	lonCenters, latCenters []float64
	dx, dy                 float64

	vars     map[string]*sparse.DenseArray
	varAttrs map[string]map[string]interface{}
	attrs    map[string]interface{}

	cells *cellIndex
}

// LoadUniformGrid creates a Dataset from already-parsed arrays.
// vars maps variable names to arrays with shape
// (len(latCenters), len(lonCenters)) or (nLayers, len(latCenters),
// len(lonCenters)). lonCenters and latCenters are cell-center
// coordinates in degrees and must be evenly spaced and strictly
// increasing. geometry must be GeometryGeographic.
func LoadUniformGrid(name string, vars map[string]*sparse.DenseArray, lonCenters, latCenters []float64, geometry GridGeometry) (*Dataset, error) {
	if geometry != GeometryGeographic {
		return nil, fmt.Errorf("geoplot: unsupported grid geometry %q", geometry)
	}
	dx, err := uniformSpacing("longitude", lonCenters)
	if err != nil {
		return nil, err
	}
	dy, err := uniformSpacing("latitude", latCenters)
	if err != nil {
		return nil, err
	}
	d := &Dataset{
		Name:       name,
		lonCenters: lonCenters,
		latCenters: latCenters,
		dx:         dx,
		dy:         dy,
		vars:       make(map[string]*sparse.DenseArray, len(vars)),
		varAttrs:   make(map[string]map[string]interface{}),
		attrs:      make(map[string]interface{}),
	}
	for v, data := range vars {
		if err := d.checkShape(v, data); err != nil {
			return nil, err
		}
		d.vars[v] = data
	}
	return d, nil
}

func (d *Dataset) checkShape(v string, data *sparse.DenseArray) error {
	var ny, nx int
	switch len(data.Shape) {
	case 2:
		ny, nx = data.Shape[0], data.Shape[1]
	case 3:
		ny, nx = data.Shape[1], data.Shape[2]
	default:
		return fmt.Errorf("geoplot: variable %s has %d dimensions; want 2 or 3",
			v, len(data.Shape))
	}
	if ny != len(d.latCenters) || nx != len(d.lonCenters) {
		return fmt.Errorf("geoplot: variable %s has shape (%d, %d); want (%d, %d)",
			v, ny, nx, len(d.latCenters), len(d.lonCenters))
	}
	return nil
}

// uniformSpacing returns the grid spacing of the given cell centers,
// checking that they are strictly increasing and evenly spaced.
func uniformSpacing(dim string, centers []float64) (float64, error) {
	if len(centers) < 2 {
		return 0, fmt.Errorf("geoplot: %s axis has %d points; need at least 2", dim, len(centers))
	}
	delta := centers[1] - centers[0]
	if delta <= 0 {
		return 0, fmt.Errorf("geoplot: %s axis is not strictly increasing", dim)
	}
	for i := 1; i < len(centers); i++ {
		di := centers[i] - centers[i-1]
		if math.Abs(di-delta) > spacingTol*math.Abs(delta) {
			return 0, fmt.Errorf("geoplot: %s axis is not uniform: spacing %g at index %d; want %g",
				dim, di, i, delta)
		}
	}
	return delta, nil
}

// Nx returns the number of grid cells in the West-East direction.
func (d *Dataset) Nx() int { return len(d.lonCenters) }

// Ny returns the number of grid cells in the South-North direction.
func (d *Dataset) Ny() int { return len(d.latCenters) }

// DX returns the longitude grid spacing.
func (d *Dataset) DX() float64 { return d.dx }

// DY returns the latitude grid spacing.
func (d *Dataset) DY() float64 { return d.dy }

// LonCenters returns the x-coordinates of the grid cell centers.
func (d *Dataset) LonCenters() []float64 { return d.lonCenters }

// LatCenters returns the y-coordinates of the grid cell centers.
func (d *Dataset) LatCenters() []float64 { return d.latCenters }

// Bounds returns the outer edges of the grid.
func (d *Dataset) Bounds() *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{
			X: d.lonCenters[0] - d.dx/2,
			Y: d.latCenters[0] - d.dy/2,
		},
		Max: geom.Point{
			X: d.lonCenters[len(d.lonCenters)-1] + d.dx/2,
			Y: d.latCenters[len(d.latCenters)-1] + d.dy/2,
		},
	}
}

// VarNames returns the names of the dataset's variables,
// alphabetized.
func (d *Dataset) VarNames() []string {
	names := make([]string, 0, len(d.vars))
	for v := range d.vars {
		names = append(names, v)
	}
	sort.Strings(names)
	return names
}

// Var returns the data for the named variable.
func (d *Dataset) Var(name string) (*sparse.DenseArray, error) {
	data, ok := d.vars[name]
	if !ok {
		return nil, fmt.Errorf("geoplot: dataset %s: missing variable %s", d.Name, name)
	}
	return data, nil
}

// Layers returns the number of vertical layers the named variable has,
// or 1 if it is 2-d.
func (d *Dataset) Layers(name string) (int, error) {
	data, err := d.Var(name)
	if err != nil {
		return 0, err
	}
	if len(data.Shape) == 3 {
		return data.Shape[0], nil
	}
	return 1, nil
}

// Layer returns the 2-d field for one vertical layer of the named
// variable. For a 2-d variable the only valid layer is 0.
func (d *Dataset) Layer(name string, layer int) (*sparse.DenseArray, error) {
	data, err := d.Var(name)
	if err != nil {
		return nil, err
	}
	if len(data.Shape) == 2 {
		if layer != 0 {
			return nil, fmt.Errorf("geoplot: variable %s is 2-d; layer %d does not exist", name, layer)
		}
		return data, nil
	}
	if layer < 0 || layer >= data.Shape[0] {
		return nil, fmt.Errorf("geoplot: variable %s has %d layers; layer %d does not exist",
			name, data.Shape[0], layer)
	}
	out := sparse.ZerosDense(data.Shape[1], data.Shape[2])
	n := data.Shape[1] * data.Shape[2]
	copy(out.Elements, data.Elements[layer*n:(layer+1)*n])
	return out, nil
}

// MinMax returns the smallest and largest non-NaN values in the given
// field.
func MinMax(data *sparse.DenseArray) (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range data.Elements {
		if math.IsNaN(v) {
			continue
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// SetAttrs replaces the dataset's global attributes.
func (d *Dataset) SetAttrs(attrs map[string]interface{}) { d.attrs = attrs }

// Attr returns the named global attribute, or nil if it is not
// present.
func (d *Dataset) Attr(name string) interface{} { return d.attrs[name] }

// SetVarAttrs replaces the attributes of the named variable.
func (d *Dataset) SetVarAttrs(v string, attrs map[string]interface{}) {
	d.varAttrs[v] = attrs
}

// VarAttr returns the named attribute of the named variable, or nil if
// it is not present.
func (d *Dataset) VarAttr(v, name string) interface{} {
	return d.varAttrs[v][name]
}

// Units returns the units attribute of the named variable, or "" if it
// has none.
func (d *Dataset) Units(v string) string {
	if u, ok := d.VarAttr(v, "units").(string); ok {
		return u
	}
	return ""
}
