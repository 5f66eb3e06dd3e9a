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

// Mollweide is an equal-area pseudocylindrical projection.
type Mollweide struct {
	CentralLongitude float64
}

const sqrt2 = math.Sqrt2

// Kind returns "Mollweide".
func (m *Mollweide) Kind() string { return "Mollweide" }

// Forward converts geographic coordinates to plane coordinates. The
// auxiliary angle is found with Newton's method.
func (m *Mollweide) Forward(lon, lat float64) (x, y float64, err error) {
	if err = checkLonLat(m.Kind(), lon, lat); err != nil {
		return
	}
	phi := lat * d2r
	theta := phi
	if math.Abs(phi) < halfPi-epsln {
		c := math.Pi * math.Sin(phi)
		for i := 0; i < 20; i++ {
			delta := (2*theta + math.Sin(2*theta) - c) / (2 + 2*math.Cos(2*theta))
			theta -= delta
			if math.Abs(delta) < epsln {
				break
			}
		}
	} else {
		// The iteration degenerates at the poles.
		theta = math.Copysign(halfPi, phi)
	}
	x = 2 * sqrt2 / math.Pi * adjustLon((lon-m.CentralLongitude)*d2r) * math.Cos(theta)
	y = sqrt2 * math.Sin(theta)
	return
}

// Inverse converts plane coordinates to geographic coordinates.
func (m *Mollweide) Inverse(x, y float64) (lon, lat float64, err error) {
	if math.Abs(y) > sqrt2+epsln {
		err = fmt.Errorf("mapproj: in Mollweide inverse: y coordinate %g out of range", y)
		return
	}
	if y > sqrt2 {
		y = sqrt2
	} else if y < -sqrt2 {
		y = -sqrt2
	}
	theta := math.Asin(y / sqrt2)
	lat = math.Asin((2*theta+math.Sin(2*theta))/math.Pi) * r2d
	if math.Abs(math.Abs(theta)-halfPi) < epsln {
		// Longitude is indeterminate at the poles.
		lon = m.CentralLongitude
		return
	}
	lon = adjustLon(math.Pi*x/(2*sqrt2*math.Cos(theta)))*r2d + m.CentralLongitude
	return
}

func init() {
	register(&constructor{
		kind:       "Mollweide",
		positional: []string{"central_longitude"},
		defaults:   map[string]float64{"central_longitude": 0},
		build: func(p map[string]float64) (Transform, error) {
			return &Mollweide{CentralLongitude: p["central_longitude"]}, nil
		},
	}, "Mollweide", "moll")
}
