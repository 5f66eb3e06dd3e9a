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

package mapproj

import (
	"fmt"
	"math"
)

// Robinson is the Robinson pseudocylindrical projection, defined by
// interpolation over Robinson's original 5-degree table.
type Robinson struct {
	CentralLongitude float64
}

// robinsonTable holds the parallel-length (X) and parallel-distance (Y)
// multipliers for latitudes 0, 5, ..., 90 degrees.
var robinsonTable = []struct{ x, y float64 }{
	{1.0000, 0.0000},
	{0.9986, 0.0620},
	{0.9954, 0.1240},
	{0.9900, 0.1860},
	{0.9822, 0.2480},
	{0.9730, 0.3100},
	{0.9600, 0.3720},
	{0.9427, 0.4340},
	{0.9216, 0.4958},
	{0.8962, 0.5571},
	{0.8679, 0.6176},
	{0.8350, 0.6769},
	{0.7986, 0.7346},
	{0.7597, 0.7903},
	{0.7186, 0.8435},
	{0.6732, 0.8936},
	{0.6213, 0.9394},
	{0.5722, 0.9761},
	{0.5322, 1.0000},
}

const (
	robinsonXScale = 0.8487
	robinsonYScale = 1.3523
)

// robinsonInterp linearly interpolates the table multipliers for the
// given absolute latitude in degrees.
func robinsonInterp(absLat float64) (xm, ym float64) {
	i := int(absLat / 5)
	if i >= len(robinsonTable)-1 {
		last := robinsonTable[len(robinsonTable)-1]
		return last.x, last.y
	}
	frac := absLat/5 - float64(i)
	xm = robinsonTable[i].x + frac*(robinsonTable[i+1].x-robinsonTable[i].x)
	ym = robinsonTable[i].y + frac*(robinsonTable[i+1].y-robinsonTable[i].y)
	return
}

// Kind returns "Robinson".
func (r *Robinson) Kind() string { return "Robinson" }

// Forward converts geographic coordinates to plane coordinates.
func (r *Robinson) Forward(lon, lat float64) (x, y float64, err error) {
	if err = checkLonLat(r.Kind(), lon, lat); err != nil {
		return
	}
	xm, ym := robinsonInterp(math.Abs(lat))
	x = robinsonXScale * xm * adjustLon((lon-r.CentralLongitude)*d2r)
	y = robinsonYScale * ym
	if lat < 0 {
		y = -y
	}
	return
}

// Inverse converts plane coordinates to geographic coordinates. The
// latitude is recovered by inverting the table interpolation, so it is
// accurate to the resolution of the table.
func (r *Robinson) Inverse(x, y float64) (lon, lat float64, err error) {
	ym := math.Abs(y) / robinsonYScale
	if ym > 1+epsln {
		err = fmt.Errorf("mapproj: in Robinson inverse: y coordinate %g out of range", y)
		return
	}
	// Find the table interval containing ym. The y multipliers increase
	// monotonically so a linear scan suffices.
	i := len(robinsonTable) - 2
	for j := 0; j < len(robinsonTable)-1; j++ {
		if ym <= robinsonTable[j+1].y {
			i = j
			break
		}
	}
	span := robinsonTable[i+1].y - robinsonTable[i].y
	frac := (ym - robinsonTable[i].y) / span
	lat = 5 * (float64(i) + frac)
	xm := robinsonTable[i].x + frac*(robinsonTable[i+1].x-robinsonTable[i].x)
	if y < 0 {
		lat = -lat
	}
	lon = adjustLon(x/(robinsonXScale*xm))*r2d + r.CentralLongitude
	return
}

func init() {
	register(&constructor{
		kind:       "Robinson",
		positional: []string{"central_longitude"},
		defaults:   map[string]float64{"central_longitude": 0},
		build: func(p map[string]float64) (Transform, error) {
			return &Robinson{CentralLongitude: p["central_longitude"]}, nil
		},
	}, "Robinson")
}
