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

	"github.com/ctessum/geom/proj"
)

// srTransform adapts a spatial reference from
// github.com/ctessum/geom/proj to the Transform interface.
type srTransform struct {
	sr               *proj.SR
	forward, inverse proj.Transformer
}

// WrapSR adapts an already-constructed spatial reference to the
// Transform interface. The returned transform maps geographic
// coordinates (degrees) to coordinates in the spatial reference's own
// units, so the wrapped projection is not required to be in the
// registry.
func WrapSR(sr *proj.SR) (Transform, error) {
	longlat, err := proj.Parse("+proj=longlat")
	if err != nil {
		panic(err)
	}
	forward, err := longlat.NewTransform(sr)
	if err != nil {
		return nil, fmt.Errorf("mapproj: wrapping spatial reference %s: %v", sr.Name, err)
	}
	inverse, err := sr.NewTransform(longlat)
	if err != nil {
		return nil, fmt.Errorf("mapproj: wrapping spatial reference %s: %v", sr.Name, err)
	}
	return &srTransform{sr: sr, forward: forward, inverse: inverse}, nil
}

func (s *srTransform) Kind() string { return s.sr.Name }

func (s *srTransform) Forward(lon, lat float64) (x, y float64, err error) {
	return s.forward(lon, lat)
}

func (s *srTransform) Inverse(x, y float64) (lon, lat float64, err error) {
	return s.inverse(x, y)
}

// wrapOpaque recognizes opaque transform objects from external
// libraries. It returns (nil, nil) if spec is not one of them.
func wrapOpaque(spec interface{}) (Transform, error) {
	if sr, ok := spec.(*proj.SR); ok {
		return WrapSR(sr)
	}
	return nil, nil
}
