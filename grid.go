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

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// gridCell is one grid cell and its location within the grid.
type gridCell struct {
	geom.Polygon
	Row, Col int
}

// cellIndex is a spatial index of the cells in a uniform grid.
type cellIndex struct {
	data *rtree.Rtree
}

// CellPolygon returns the outline of the cell in row j (South to
// North) and column i (West to East), in degrees.
func (d *Dataset) CellPolygon(j, i int) (geom.Polygon, error) {
	if j < 0 || j >= len(d.latCenters) || i < 0 || i >= len(d.lonCenters) {
		return nil, fmt.Errorf("geoplot: cell (%d, %d) is outside the %d×%d grid",
			j, i, len(d.latCenters), len(d.lonCenters))
	}
	x0 := d.lonCenters[i] - d.dx/2
	x1 := d.lonCenters[i] + d.dx/2
	y0 := d.latCenters[j] - d.dy/2
	y1 := d.latCenters[j] + d.dy/2
	return geom.Polygon{{
		{X: x0, Y: y0},
		{X: x1, Y: y0},
		{X: x1, Y: y1},
		{X: x0, Y: y1},
		{X: x0, Y: y0},
	}}, nil
}

func (d *Dataset) index() *cellIndex {
	if d.cells != nil {
		return d.cells
	}
	c := &cellIndex{data: rtree.NewTree(25, 50)}
	for j := range d.latCenters {
		for i := range d.lonCenters {
			p, _ := d.CellPolygon(j, i)
			c.data.Insert(&gridCell{Polygon: p, Row: j, Col: i})
		}
	}
	d.cells = c
	return c
}

// CellAt returns the row and column of the grid cell containing the
// given point. ok is false if the point lies outside the grid.
func (d *Dataset) CellAt(lon, lat float64) (row, col int, ok bool) {
	p := geom.Point{X: lon, Y: lat}
	for _, cI := range d.index().data.SearchIntersect(p.Bounds()) {
		c := cI.(*gridCell)
		b := c.Polygon.Bounds()
		if lon >= b.Min.X && lon <= b.Max.X && lat >= b.Min.Y && lat <= b.Max.Y {
			return c.Row, c.Col, true
		}
	}
	return 0, 0, false
}

// ValueAt returns the value of the given field at the grid cell
// containing the given point.
func (d *Dataset) ValueAt(name string, layer int, lon, lat float64) (float64, error) {
	data, err := d.Layer(name, layer)
	if err != nil {
		return 0, err
	}
	j, i, ok := d.CellAt(lon, lat)
	if !ok {
		return 0, fmt.Errorf("geoplot: point (%g, %g) is outside the grid", lon, lat)
	}
	return data.Get(j, i), nil
}
