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

// Stereographic is a conformal azimuthal projection of the sphere
// centered on (CentralLongitude, CentralLatitude). The point antipodal
// to the center cannot be projected.
type Stereographic struct {
	CentralLongitude float64
	CentralLatitude  float64

	sinLat0, cosLat0 float64
}

// Kind returns "Stereographic".
func (s *Stereographic) Kind() string { return "Stereographic" }

// Forward converts geographic coordinates to plane coordinates.
func (s *Stereographic) Forward(lon, lat float64) (x, y float64, err error) {
	if err = checkLonLat(s.Kind(), lon, lat); err != nil {
		return
	}
	dlon := adjustLon((lon - s.CentralLongitude) * d2r)
	sinLat, cosLat := math.Sincos(lat * d2r)
	denom := 1 + s.sinLat0*sinLat + s.cosLat0*cosLat*math.Cos(dlon)
	if denom < epsln {
		err = fmt.Errorf("mapproj: in Stereographic forward: point (%g, %g) is antipodal to the projection center",
			lon, lat)
		return
	}
	k := 2 / denom
	x = k * cosLat * math.Sin(dlon)
	y = k * (s.cosLat0*sinLat - s.sinLat0*cosLat*math.Cos(dlon))
	return
}

// Inverse converts plane coordinates to geographic coordinates.
func (s *Stereographic) Inverse(x, y float64) (lon, lat float64, err error) {
	rho := math.Hypot(x, y)
	if rho < epsln {
		return s.CentralLongitude, s.CentralLatitude, nil
	}
	c := 2 * math.Atan(rho/2)
	sinC, cosC := math.Sincos(c)
	lat = math.Asin(cosC*s.sinLat0+y*sinC*s.cosLat0/rho) * r2d
	lon = adjustLon(math.Atan2(x*sinC, rho*s.cosLat0*cosC-y*s.sinLat0*sinC))*r2d +
		s.CentralLongitude
	return
}

func init() {
	register(&constructor{
		kind:       "Stereographic",
		positional: []string{"central_longitude", "central_latitude"},
		defaults: map[string]float64{
			"central_longitude": 0,
			"central_latitude":  90,
		},
		build: func(p map[string]float64) (Transform, error) {
			s := &Stereographic{
				CentralLongitude: p["central_longitude"],
				CentralLatitude:  p["central_latitude"],
			}
			s.sinLat0, s.cosLat0 = math.Sincos(s.CentralLatitude * d2r)
			return s, nil
		},
	}, "Stereographic", "stere")
}
