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
	"strconv"
	"strings"
)

// ParseSpec converts the textual form of a projection specifier, as
// used on the command line, into a specifier accepted by Resolve.
// Accepted forms:
//
//	Robinson
//	Orthographic(90, 45)
//	RotatedPole(pole_latitude=37.5, pole_longitude=177.5)
//	Stereographic(-45, central_latitude=70)
//
// Positional parameters must precede keyword parameters.
func ParseSpec(s string) (interface{}, error) {
	s = strings.TrimSpace(s)
	open := strings.IndexByte(s, '(')
	if open < 0 {
		if s == "" {
			return nil, fmt.Errorf("mapproj: empty projection specifier")
		}
		return s, nil
	}
	if !strings.HasSuffix(s, ")") {
		return nil, fmt.Errorf("mapproj: projection specifier %q: missing closing parenthesis", s)
	}
	name := strings.TrimSpace(s[:open])
	if name == "" {
		return nil, fmt.Errorf("mapproj: projection specifier %q: missing name", s)
	}

	var args []interface{}
	kwargs := make(map[string]interface{})
	inner := strings.TrimSpace(s[open+1 : len(s)-1])
	if inner != "" {
		for _, field := range strings.Split(inner, ",") {
			field = strings.TrimSpace(field)
			if eq := strings.IndexByte(field, '='); eq >= 0 {
				k := strings.TrimSpace(field[:eq])
				v, err := strconv.ParseFloat(strings.TrimSpace(field[eq+1:]), 64)
				if err != nil {
					return nil, fmt.Errorf("mapproj: projection specifier %q: parameter %s: %v", s, k, err)
				}
				kwargs[k] = v
				continue
			}
			if len(kwargs) > 0 {
				return nil, fmt.Errorf("mapproj: projection specifier %q: positional parameter %q after keyword parameter", s, field)
			}
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("mapproj: projection specifier %q: %v", s, err)
			}
			args = append(args, v)
		}
	}

	if len(kwargs) == 0 {
		if len(args) == 0 {
			return name, nil
		}
		return []interface{}{name, args}, nil
	}
	return []interface{}{name, args, kwargs}, nil
}
