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

// Orthographic is a perspective projection of the sphere as seen from
// infinity, centered on (CentralLongitude, CentralLatitude). Points on
// the far hemisphere are rejected by Forward.
type Orthographic struct {
	CentralLongitude float64
	CentralLatitude  float64

	sinLat0, cosLat0 float64
}

// Kind returns "Orthographic".
func (o *Orthographic) Kind() string { return "Orthographic" }

// Forward converts geographic coordinates to plane coordinates.
func (o *Orthographic) Forward(lon, lat float64) (x, y float64, err error) {
	if err = checkLonLat(o.Kind(), lon, lat); err != nil {
		return
	}
	dlon := adjustLon((lon - o.CentralLongitude) * d2r)
	sinLat, cosLat := math.Sincos(lat * d2r)
	cosC := o.sinLat0*sinLat + o.cosLat0*cosLat*math.Cos(dlon)
	if cosC < -epsln {
		err = fmt.Errorf("mapproj: in Orthographic forward: point (%g, %g) is on the far hemisphere",
			lon, lat)
		return
	}
	x = cosLat * math.Sin(dlon)
	y = o.cosLat0*sinLat - o.sinLat0*cosLat*math.Cos(dlon)
	return
}

// Inverse converts plane coordinates to geographic coordinates.
func (o *Orthographic) Inverse(x, y float64) (lon, lat float64, err error) {
	rho := math.Hypot(x, y)
	if rho > 1+epsln {
		err = fmt.Errorf("mapproj: in Orthographic inverse: point (%g, %g) is outside the projection disk", x, y)
		return
	}
	if rho < epsln {
		return o.CentralLongitude, o.CentralLatitude, nil
	}
	if rho > 1 {
		rho = 1
	}
	sinC := rho
	cosC := math.Sqrt(1 - rho*rho)
	lat = math.Asin(cosC*o.sinLat0+y*sinC*o.cosLat0/rho) * r2d
	lon = adjustLon(math.Atan2(x*sinC, rho*o.cosLat0*cosC-y*o.sinLat0*sinC))*r2d +
		o.CentralLongitude
	return
}

func init() {
	register(&constructor{
		kind:       "Orthographic",
		positional: []string{"central_longitude", "central_latitude"},
		defaults: map[string]float64{
			"central_longitude": 0,
			"central_latitude":  0,
		},
		build: func(p map[string]float64) (Transform, error) {
			o := &Orthographic{
				CentralLongitude: p["central_longitude"],
				CentralLatitude:  p["central_latitude"],
			}
			o.sinLat0, o.cosLat0 = math.Sincos(o.CentralLatitude * d2r)
			return o, nil
		},
	}, "Orthographic", "ortho")
}
