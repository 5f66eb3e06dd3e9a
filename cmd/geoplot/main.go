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

// Command geoplot is a command-line interface for drawing map
// projections of gridded geographic data.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/geoplot/geoplotutil"
)

func main() {
	if err := geoplotutil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
