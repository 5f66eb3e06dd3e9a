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

// Package mapproj provides map projections for displaying geographic
// data, and a resolver that turns loosely-typed projection specifiers
// into constructed projections.
package mapproj

import (
	"strings"

	"github.com/spf13/cast"
)

// A Transform converts geographic coordinates to map-plane coordinates
// and back. Longitudes and latitudes are in degrees; plane coordinates
// are in units of sphere radii.
type Transform interface {
	// Forward converts geographic coordinates to plane coordinates.
	Forward(lon, lat float64) (x, y float64, err error)

	// Inverse converts plane coordinates to geographic coordinates.
	Inverse(x, y float64) (lon, lat float64, err error)

	// Kind returns the name of the projection kind.
	Kind() string
}

// A constructor describes how to build one registered projection kind.
type constructor struct {
	kind string

	// positional holds the parameter names that may be given as
	// positional arguments, in order.
	positional []string

	// defaults holds all keyword-configurable parameters and their
	// default values. Every positional parameter also appears here.
	defaults map[string]float64

	build func(params map[string]float64) (Transform, error)
}

var projections map[string]*constructor

// register adds a projection constructor to the registry under the
// given names.
func register(c *constructor, names ...string) {
	if projections == nil {
		projections = make(map[string]*constructor)
	}
	for _, n := range names {
		projections[strings.ToLower(n)] = c
	}
}

// Kinds returns the canonical names of all registered projection kinds,
// without aliases.
func Kinds() []string {
	seen := make(map[string]struct{})
	var kinds []string
	for _, c := range projections {
		if _, ok := seen[c.kind]; ok {
			continue
		}
		seen[c.kind] = struct{}{}
		kinds = append(kinds, c.kind)
	}
	return kinds
}

// Parameters returns the positional parameter names (in order) and the
// keyword parameter defaults for the named projection kind.
func Parameters(kind string) (positional []string, defaults map[string]float64, err error) {
	c, ok := projections[strings.ToLower(kind)]
	if !ok {
		return nil, nil, &UnknownProjectionError{Kind: kind}
	}
	positional = make([]string, len(c.positional))
	copy(positional, c.positional)
	defaults = make(map[string]float64, len(c.defaults))
	for k, v := range c.defaults {
		defaults[k] = v
	}
	return positional, defaults, nil
}

// Resolve converts a projection specifier to a constructed Transform.
// The specifier must have one of the following shapes:
//
//	"Name"                         construct with default parameters
//	[]interface{}{"Name", args}    args are positional parameters
//	[]interface{}{"Name", args, kwargs}
//	                               kwargs is a map[string]interface{}
//	                               of keyword parameters
//	Transform                      passed through unchanged
//	*proj.SR                       wrapped via WrapSR
//
// args may be a []interface{} or []float64 (or nil); the values may be
// any numeric type. Resolve is pure: it never mutates its argument and
// holds no state between calls, so resolving equal specifiers yields
// equivalent (although not identical) transforms.
func Resolve(spec interface{}) (Transform, error) {
	switch s := spec.(type) {
	case Transform:
		return s, nil
	case string:
		return construct(s, nil, nil)
	case []interface{}:
		switch len(s) {
		case 2, 3:
			name, ok := s[0].(string)
			if !ok {
				return nil, &InvalidSpecShapeError{spec: spec,
					reason: "first element must be a string projection name"}
			}
			args, err := specArgs(spec, s[1])
			if err != nil {
				return nil, err
			}
			var kwargs map[string]interface{}
			if len(s) == 3 {
				kwargs, ok = s[2].(map[string]interface{})
				if !ok {
					return nil, &InvalidSpecShapeError{spec: spec,
						reason: "third element must be a map of keyword parameters"}
				}
			}
			return construct(name, args, kwargs)
		default:
			return nil, &InvalidSpecShapeError{spec: spec,
				reason: "sequence specifiers must have 2 or 3 elements"}
		}
	default:
		if t, err := wrapOpaque(spec); t != nil || err != nil {
			return t, err
		}
		return nil, &InvalidSpecShapeError{spec: spec,
			reason: "not a name, sequence, or transform"}
	}
}

// specArgs normalizes the positional argument sequence of a specifier.
func specArgs(spec, args interface{}) ([]interface{}, error) {
	switch a := args.(type) {
	case nil:
		return nil, nil
	case []interface{}:
		return a, nil
	case []float64:
		out := make([]interface{}, len(a))
		for i, v := range a {
			out[i] = v
		}
		return out, nil
	default:
		return nil, &InvalidSpecShapeError{spec: spec,
			reason: "second element must be a sequence of positional parameters"}
	}
}

// construct looks up the named projection kind and builds it from the
// given positional and keyword arguments.
func construct(name string, args []interface{}, kwargs map[string]interface{}) (Transform, error) {
	c, ok := projections[strings.ToLower(name)]
	if !ok {
		return nil, &UnknownProjectionError{Kind: name}
	}

	if len(args) > len(c.positional) {
		return nil, &ArgumentMismatchError{Kind: c.kind,
			reason: "too many positional parameters"}
	}
	params := make(map[string]float64, len(c.defaults))
	for k, v := range c.defaults {
		params[k] = v
	}
	set := make(map[string]struct{})
	for i, a := range args {
		v, err := cast.ToFloat64E(a)
		if err != nil {
			return nil, &ArgumentMismatchError{Kind: c.kind, Param: c.positional[i],
				reason: "not a number"}
		}
		params[c.positional[i]] = v
		set[c.positional[i]] = struct{}{}
	}
	for k, a := range kwargs {
		if _, ok := c.defaults[k]; !ok {
			return nil, &ArgumentMismatchError{Kind: c.kind, Param: k,
				reason: "unknown keyword parameter"}
		}
		if _, ok := set[k]; ok {
			return nil, &ArgumentMismatchError{Kind: c.kind, Param: k,
				reason: "given both positionally and as a keyword"}
		}
		v, err := cast.ToFloat64E(a)
		if err != nil {
			return nil, &ArgumentMismatchError{Kind: c.kind, Param: k,
				reason: "not a number"}
		}
		params[k] = v
	}
	return c.build(params)
}
