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

package geoplot

import (
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/spatialmodel/geoplot/mapproj"
)

// Session tracks the projection in use for each set of plot axes, so
// that successive draws to the same axes reuse the projection chosen
// when the axes were first set up.
type Session struct {
	// Log is the logger for this session. It defaults to the logrus
	// standard logger.
	Log logrus.FieldLogger

	mx   sync.Mutex
	axes map[string]mapproj.Transform
}

// NewSession creates a new plotting session.
func NewSession() *Session {
	return &Session{
		Log:  logrus.StandardLogger(),
		axes: make(map[string]mapproj.Transform),
	}
}

// SetProjection resolves the given projection specifier and remembers
// the result for the named axes, replacing any previous choice.
func (s *Session) SetProjection(axesKey string, spec interface{}) (mapproj.Transform, error) {
	t, err := mapproj.Resolve(spec)
	if err != nil {
		return nil, err
	}
	s.mx.Lock()
	s.axes[axesKey] = t
	s.mx.Unlock()
	s.Log.WithFields(logrus.Fields{
		"axes":       axesKey,
		"projection": t.Kind(),
	}).Info("set projection")
	return t, nil
}

// Projection returns the projection previously set for the named axes.
// If none has been set, it resolves and remembers the default,
// PlateCarree.
func (s *Session) Projection(axesKey string) mapproj.Transform {
	s.mx.Lock()
	defer s.mx.Unlock()
	if t, ok := s.axes[axesKey]; ok {
		return t
	}
	t, err := mapproj.Resolve("PlateCarree")
	if err != nil {
		panic(err) // PlateCarree is always registered.
	}
	s.axes[axesKey] = t
	return t
}

// ClearProjection forgets the projection for the named axes.
func (s *Session) ClearProjection(axesKey string) {
	s.mx.Lock()
	delete(s.axes, axesKey)
	s.mx.Unlock()
}
