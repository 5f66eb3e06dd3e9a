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

const fortPi = math.Pi / 4

// Mercator is a spherical Mercator projection. Latitudes poleward of
// MaxLatitude are rejected by Forward.
type Mercator struct {
	CentralLongitude float64
	MaxLatitude      float64
}

// Kind returns "Mercator".
func (m *Mercator) Kind() string { return "Mercator" }

// Forward converts geographic coordinates to plane coordinates.
func (m *Mercator) Forward(lon, lat float64) (x, y float64, err error) {
	if err = checkLonLat(m.Kind(), lon, lat); err != nil {
		return
	}
	if math.Abs(lat) > m.MaxLatitude+epsln {
		err = fmt.Errorf("mapproj: in Mercator forward: latitude %g is poleward of %g",
			lat, m.MaxLatitude)
		return
	}
	x = adjustLon((lon - m.CentralLongitude) * d2r)
	y = math.Log(math.Tan(fortPi + 0.5*lat*d2r))
	return
}

// Inverse converts plane coordinates to geographic coordinates.
func (m *Mercator) Inverse(x, y float64) (lon, lat float64, err error) {
	lat = (halfPi - 2*math.Atan(math.Exp(-y))) * r2d
	lon = adjustLon(x)*r2d + m.CentralLongitude
	return
}

func init() {
	register(&constructor{
		kind:       "Mercator",
		positional: []string{"central_longitude"},
		defaults: map[string]float64{
			"central_longitude": 0,
			"max_latitude":      84,
		},
		build: func(p map[string]float64) (Transform, error) {
			if p["max_latitude"] <= 0 || p["max_latitude"] >= 90 {
				return nil, &ArgumentMismatchError{Kind: "Mercator", Param: "max_latitude",
					reason: "must be between 0 and 90 degrees"}
			}
			return &Mercator{
				CentralLongitude: p["central_longitude"],
				MaxLatitude:      p["max_latitude"],
			}, nil
		},
	}, "Mercator", "merc")
}
