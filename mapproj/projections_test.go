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
	"math"
	"testing"
)

// Round-trip points, chosen away from the antimeridian so longitude
// wrapping cannot alias the result.
var roundTripPoints = [][2]float64{
	{0, 0},
	{10, 52},
	{-77, 39},
	{150, -34},
	{-120, -80},
}

func TestRoundTrips(t *testing.T) {
	tests := []struct {
		spec interface{}
		tol  float64
	}{
		{"PlateCarree", 1.e-10},
		{"Mercator", 1.e-10},
		{"Robinson", 1.e-8},
		{[]interface{}{"Orthographic", []float64{-30, 20}}, 1.e-8},
		{"Mollweide", 1.e-6},
		{[]interface{}{"RotatedPole", []float64{177.5, 37.5}}, 1.e-8},
		{[]interface{}{"Stereographic", []float64{0, 90}}, 1.e-8},
	}
	for _, test := range tests {
		tr, err := Resolve(test.spec)
		if err != nil {
			t.Fatal(err)
		}
		for _, pt := range roundTripPoints {
			x, y, err := tr.Forward(pt[0], pt[1])
			if err != nil {
				// Some projections cannot represent every point.
				continue
			}
			lon, lat, err := tr.Inverse(x, y)
			if err != nil {
				t.Errorf("%s (%g, %g): inverse: %v", tr.Kind(), pt[0], pt[1], err)
				continue
			}
			if math.Abs(lon-pt[0]) > test.tol || math.Abs(lat-pt[1]) > test.tol {
				t.Errorf("%s: round trip of (%g, %g) gave (%g, %g)",
					tr.Kind(), pt[0], pt[1], lon, lat)
			}
		}
	}
}

func TestPlateCarree(t *testing.T) {
	const tol = 1.e-10
	tr, err := Resolve("PlateCarree")
	if err != nil {
		t.Fatal(err)
	}
	x, y, err := tr.Forward(90, 45)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(x-halfPi) > tol || math.Abs(y-fortPi) > tol {
		t.Errorf("Forward(90, 45) = (%g, %g); want (π/2, π/4)", x, y)
	}
}

func TestMercatorPolewardLimit(t *testing.T) {
	tr, err := Resolve("Mercator")
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := tr.Forward(0, 85); err == nil {
		t.Error("no error poleward of the default maximum latitude")
	}
	tr, err = Resolve([]interface{}{"Mercator", []float64{},
		map[string]interface{}{"max_latitude": 89.0}})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := tr.Forward(0, 85); err != nil {
		t.Errorf("unexpected error with raised maximum latitude: %v", err)
	}
}

func TestRobinsonKnownValues(t *testing.T) {
	const tol = 1.e-12
	tr := &Robinson{}
	x, y, err := tr.Forward(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if x != 0 || y != 0 {
		t.Errorf("Forward(0, 0) = (%g, %g)", x, y)
	}
	// At 90N the parallel-distance multiplier is exactly 1.
	_, y, err = tr.Forward(0, 90)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(y-robinsonYScale) > tol {
		t.Errorf("Forward(0, 90) y = %g; want %g", y, robinsonYScale)
	}
	// The equator is 0.8487 radii per radian of longitude.
	x, _, err = tr.Forward(90, 0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(x-robinsonXScale*halfPi) > tol {
		t.Errorf("Forward(90, 0) x = %g; want %g", x, robinsonXScale*halfPi)
	}
}

func TestOrthographicFarHemisphere(t *testing.T) {
	tr, err := Resolve([]interface{}{"Orthographic", []float64{0, 0}})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := tr.Forward(135, 0); err == nil {
		t.Error("no error for a point on the far hemisphere")
	}
	if _, _, err := tr.Forward(45, 0); err != nil {
		t.Errorf("unexpected error for a visible point: %v", err)
	}
	if _, _, err := tr.Inverse(1.5, 0); err == nil {
		t.Error("no error for a point outside the projection disk")
	}
}

func TestMollweideKnownValues(t *testing.T) {
	const tol = 1.e-9
	tr := &Mollweide{}
	_, y, err := tr.Forward(0, 90)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(y-sqrt2) > tol {
		t.Errorf("Forward(0, 90) y = %g; want √2", y)
	}
	x, y, err := tr.Forward(180, 0)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(x-2*sqrt2) > tol || math.Abs(y) > tol {
		t.Errorf("Forward(180, 0) = (%g, %g); want (2√2, 0)", x, y)
	}
}

// A rotated pole at the true north pole is the identity rotation.
func TestRotatedPoleIdentity(t *testing.T) {
	const tol = 1.e-10
	tr := newRotatedPole(0, 90)
	x, y, err := tr.Forward(45, 30)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(x-45*d2r) > tol || math.Abs(y-30*d2r) > tol {
		t.Errorf("Forward(45, 30) = (%g, %g); want (%g, %g)", x, y, 45*d2r, 30*d2r)
	}
}

// The rotated pole itself must map to the rotated system's north pole.
func TestRotatedPolePole(t *testing.T) {
	const tol = 1.e-10
	tr := newRotatedPole(177.5, 37.5)
	_, y, err := tr.Forward(177.5, 37.5)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(y-halfPi) > tol {
		t.Errorf("pole maps to rotated latitude %g; want π/2", y)
	}
}

func TestStereographicAntipode(t *testing.T) {
	tr, err := Resolve([]interface{}{"Stereographic", []float64{0, 90}})
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := tr.Forward(0, -90); err == nil {
		t.Error("no error for the antipodal point")
	}
	// The projection center maps to the origin.
	x, y, err := tr.Forward(0, 90)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(x) > epsln || math.Abs(y) > epsln {
		t.Errorf("center maps to (%g, %g); want (0, 0)", x, y)
	}
}

func TestForwardInvalidCoordinates(t *testing.T) {
	for _, kind := range Kinds() {
		tr, err := Resolve(kind)
		if err != nil {
			t.Fatal(err)
		}
		if _, _, err := tr.Forward(0, 91); err == nil {
			t.Errorf("%s: no error for latitude 91", kind)
		}
		if _, _, err := tr.Forward(math.NaN(), 0); err == nil {
			t.Errorf("%s: no error for NaN longitude", kind)
		}
	}
}
