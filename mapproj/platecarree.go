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

// PlateCarree is an equirectangular projection with square pixels on
// the equator.
type PlateCarree struct {
	CentralLongitude float64
}

// Kind returns "PlateCarree".
func (p *PlateCarree) Kind() string { return "PlateCarree" }

// Forward converts geographic coordinates to plane coordinates.
func (p *PlateCarree) Forward(lon, lat float64) (x, y float64, err error) {
	if err = checkLonLat(p.Kind(), lon, lat); err != nil {
		return
	}
	x = adjustLon((lon - p.CentralLongitude) * d2r)
	y = lat * d2r
	return
}

// Inverse converts plane coordinates to geographic coordinates.
func (p *PlateCarree) Inverse(x, y float64) (lon, lat float64, err error) {
	lon = adjustLon(x)*r2d + p.CentralLongitude
	lat = y * r2d
	return
}

func init() {
	register(&constructor{
		kind:       "PlateCarree",
		positional: []string{"central_longitude"},
		defaults:   map[string]float64{"central_longitude": 0},
		build: func(p map[string]float64) (Transform, error) {
			return &PlateCarree{CentralLongitude: p["central_longitude"]}, nil
		},
	}, "PlateCarree", "Equirectangular")
}
