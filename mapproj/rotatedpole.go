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

import "math"

// RotatedPole is a plate carrée projection in a rotated coordinate
// system whose north pole lies at (PoleLongitude, PoleLatitude) in true
// geographic coordinates.
type RotatedPole struct {
	PoleLongitude float64
	PoleLatitude  float64

	// rot is the rotation matrix taking true coordinates to rotated
	// coordinates; its transpose is the inverse rotation.
	rot [3][3]float64
}

// Kind returns "RotatedPole".
func (r *RotatedPole) Kind() string { return "RotatedPole" }

// Forward converts geographic coordinates to plane coordinates.
func (r *RotatedPole) Forward(lon, lat float64) (x, y float64, err error) {
	if err = checkLonLat(r.Kind(), lon, lat); err != nil {
		return
	}
	v := lonLatToVec(lon*d2r, lat*d2r)
	var w [3]float64
	for i := 0; i < 3; i++ {
		w[i] = r.rot[i][0]*v[0] + r.rot[i][1]*v[1] + r.rot[i][2]*v[2]
	}
	rlon, rlat := vecToLonLat(w)
	return rlon, rlat, nil
}

// Inverse converts plane coordinates to geographic coordinates.
func (r *RotatedPole) Inverse(x, y float64) (lon, lat float64, err error) {
	v := lonLatToVec(x, y)
	var w [3]float64
	for i := 0; i < 3; i++ {
		// Transpose of an orthonormal matrix is its inverse.
		w[i] = r.rot[0][i]*v[0] + r.rot[1][i]*v[1] + r.rot[2][i]*v[2]
	}
	rlon, rlat := vecToLonLat(w)
	return rlon * r2d, rlat * r2d, nil
}

// lonLatToVec converts geographic coordinates in radians to a unit
// vector.
func lonLatToVec(lon, lat float64) [3]float64 {
	sinLat, cosLat := math.Sincos(lat)
	sinLon, cosLon := math.Sincos(lon)
	return [3]float64{cosLat * cosLon, cosLat * sinLon, sinLat}
}

// vecToLonLat converts a unit vector to geographic coordinates in
// radians.
func vecToLonLat(v [3]float64) (lon, lat float64) {
	lon = math.Atan2(v[1], v[0])
	z := v[2]
	if z > 1 {
		z = 1
	} else if z < -1 {
		z = -1
	}
	lat = math.Asin(z)
	return
}

// newRotatedPole builds the rotation taking the point
// (poleLon, poleLat) to the rotated-system north pole: a rotation of
// -poleLon about the z axis followed by a rotation of poleLat-90° about
// the y axis.
func newRotatedPole(poleLon, poleLat float64) *RotatedPole {
	r := &RotatedPole{PoleLongitude: poleLon, PoleLatitude: poleLat}
	sinL, cosL := math.Sincos(poleLon * d2r)
	sinA, cosA := math.Sincos((poleLat - 90) * d2r)
	// Ry(poleLat-90°) * Rz(-poleLon)
	r.rot = [3][3]float64{
		{cosA * cosL, cosA * sinL, sinA},
		{-sinL, cosL, 0},
		{-sinA * cosL, -sinA * sinL, cosA},
	}
	return r
}

func init() {
	register(&constructor{
		kind:       "RotatedPole",
		positional: []string{"pole_longitude", "pole_latitude"},
		defaults: map[string]float64{
			"pole_longitude": 0,
			"pole_latitude":  90,
		},
		build: func(p map[string]float64) (Transform, error) {
			return newRotatedPole(p["pole_longitude"], p["pole_latitude"]), nil
		},
	}, "RotatedPole")
}
