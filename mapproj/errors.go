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

import "fmt"

// UnknownProjectionError reports a projection name that is not in the
// registry.
type UnknownProjectionError struct {
	Kind string
}

func (e *UnknownProjectionError) Error() string {
	return fmt.Sprintf("mapproj: unknown projection kind %q", e.Kind)
}

// ArgumentMismatchError reports positional or keyword parameters that
// are incompatible with the named projection's constructor.
type ArgumentMismatchError struct {
	Kind   string
	Param  string // empty if the problem is not specific to one parameter
	reason string
}

func (e *ArgumentMismatchError) Error() string {
	if e.Param == "" {
		return fmt.Sprintf("mapproj: %s: %s", e.Kind, e.reason)
	}
	return fmt.Sprintf("mapproj: %s: parameter %s: %s", e.Kind, e.Param, e.reason)
}

// InvalidSpecShapeError reports a projection specifier that matches
// none of the accepted shapes.
type InvalidSpecShapeError struct {
	spec   interface{}
	reason string
}

func (e *InvalidSpecShapeError) Error() string {
	return fmt.Sprintf("mapproj: invalid projection specifier %#v: %s", e.spec, e.reason)
}
