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

const (
	d2r    = math.Pi / 180
	r2d    = 180 / math.Pi
	halfPi = math.Pi / 2
	epsln  = 1.0e-10
)

// adjustLon wraps an angle in radians to [-π, π].
func adjustLon(lon float64) float64 {
	if math.Abs(lon) <= math.Pi+epsln {
		return lon
	}
	return lon - float64(sign(lon))*2*math.Pi*math.Floor((math.Abs(lon)/(2*math.Pi))+0.5)
}

func sign(x float64) int {
	if x < 0 {
		return -1
	}
	return 1
}

// checkLonLat returns an error if the given geographic coordinates (in
// degrees) are outside the valid range.
func checkLonLat(kind string, lon, lat float64) error {
	if math.IsNaN(lon) || math.IsNaN(lat) || lat > 90+epsln || lat < -90-epsln ||
		lon > 360+epsln || lon < -360-epsln {
		return fmt.Errorf("mapproj: in %s forward: invalid longitude (%g) or latitude (%g)",
			kind, lon, lat)
	}
	return nil
}
