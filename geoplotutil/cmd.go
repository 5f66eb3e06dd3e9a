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

// Package geoplotutil is a command-line interface to the geoplot
// library.
package geoplotutil

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/spatialmodel/geoplot"
	"github.com/spatialmodel/geoplot/mapproj"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to GeoPlot.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "InputFile",
			usage: `
              InputFile is the path to the NetCDF file holding the data
              to be plotted.`,
			shorthand:  "i",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{drawCmd.Flags(), infoCmd.Flags()},
		},
		{
			name: "Variable",
			usage: `
              Variable is the name of the variable to plot. The default
              is the alphabetically first gridded variable in the file.`,
			shorthand:  "v",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{drawCmd.Flags()},
		},
		{
			name: "Layer",
			usage: `
              Layer specifies the vertical layer to plot for 3-d
              variables.`,
			defaultVal: 0,
			flagsets:   []*pflag.FlagSet{drawCmd.Flags()},
		},
		{
			name: "Projection",
			usage: `
              Projection specifies the map projection to draw with, for
              example 'Robinson' or 'Orthographic(-30, 20)'. Run
              'geoplot projections' for the available projections and
              their parameters.`,
			shorthand:  "p",
			defaultVal: "PlateCarree",
			flagsets:   []*pflag.FlagSet{drawCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path of the PNG map to be written.`,
			shorthand:  "o",
			defaultVal: "map.png",
			flagsets:   []*pflag.FlagSet{drawCmd.Flags()},
		},
		{
			name: "LegendFile",
			usage: `
              LegendFile is the path of a PNG color bar to be written
              alongside the map. No legend is written if it is empty.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{drawCmd.Flags()},
		},
		{
			name: "Width",
			usage: `
              Width is the width of the output map in pixels.`,
			defaultVal: 800,
			flagsets:   []*pflag.FlagSet{drawCmd.Flags()},
		},
		{
			name: "HighCutQuantile",
			usage: `
              HighCutQuantile is the quantile of the data above which
              values share a separate overflow color scale, so that a
              few outliers do not wash out the rest of the map. Set it
              to 1 to disable the overflow scale.`,
			defaultVal: 0.999,
			flagsets:   []*pflag.FlagSet{drawCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("GEOPLOT")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(drawCmd)
	Root.AddCommand(infoCmd)
	Root.AddCommand(projectionsCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("geoplot: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "geoplot",
	Short: "A plotter for gridded geographic data.",
	Long: `GeoPlot draws map projections of gridded geographic data stored in
NetCDF files. Use the subcommands specified below to access its functionality.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'GEOPLOT_var' where 'var' is
the name of the variable to be set.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of GeoPlot.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("GeoPlot v%s\n", geoplot.Version)
	},
	DisableAutoGenTag: true,
}

var drawCmd = &cobra.Command{
	Use:   "draw",
	Short: "Draw a map of a variable.",
	Long: `draw reads a variable from a NetCDF file, projects its grid with the
chosen map projection, and writes the result to a PNG file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Draw(Cfg)
	},
	DisableAutoGenTag: true,
}

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Describe the contents of a data file.",
	Long: `info reads a NetCDF file and prints its grid dimensions and the
names, units, and value ranges of its gridded variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Info(cmd, Cfg)
	},
	DisableAutoGenTag: true,
}

var projectionsCmd = &cobra.Command{
	Use:   "projections",
	Short: "List the available map projections.",
	Long: `projections lists the registered map projections along with their
parameters and default parameter values.`,
	Run: func(cmd *cobra.Command, args []string) {
		for _, kind := range mapproj.Kinds() {
			positional, defaults, err := mapproj.Parameters(kind)
			if err != nil {
				panic(err) // Kinds only returns registered projections.
			}
			cmd.Printf("%s", kind)
			if len(positional) > 0 {
				cmd.Printf("(")
				for i, p := range positional {
					if i > 0 {
						cmd.Printf(", ")
					}
					cmd.Printf("%s=%g", p, defaults[p])
				}
				cmd.Printf(")")
			}
			cmd.Printf("\n")
			var keywords []string
			for k := range defaults {
				keywords = append(keywords, k)
			}
			sort.Strings(keywords)
			for _, k := range keywords {
				cmd.Printf("\t%s=%g\n", k, defaults[k])
			}
		}
	},
	DisableAutoGenTag: true,
}

// Draw renders a map as specified by the given configuration.
func Draw(cfg *viper.Viper) error {
	inputFile := os.ExpandEnv(cfg.GetString("InputFile"))
	if inputFile == "" {
		return fmt.Errorf("geoplot: no input file specified")
	}
	variable := cfg.GetString("Variable")

	var d *geoplot.Dataset
	var err error
	if variable == "" {
		if d, err = geoplot.ReadNetCDF(inputFile); err != nil {
			return err
		}
		variable = d.VarNames()[0]
	} else if d, err = geoplot.ReadNetCDFVars(inputFile, variable); err != nil {
		return err
	}

	spec, err := mapproj.ParseSpec(cfg.GetString("Projection"))
	if err != nil {
		return err
	}
	s := geoplot.NewSession()
	tr, err := s.SetProjection("map", spec)
	if err != nil {
		return err
	}

	r := geoplot.NewRenderer()
	r.Width = cfg.GetInt("Width")
	r.HighCutQuantile = cfg.GetFloat64("HighCutQuantile")
	m, err := r.Render(d, variable, cfg.GetInt("Layer"), tr)
	if err != nil {
		return err
	}

	if err := writePNG(os.ExpandEnv(cfg.GetString("OutputFile")), m.WriteTo); err != nil {
		return err
	}
	if legendFile := os.ExpandEnv(cfg.GetString("LegendFile")); legendFile != "" {
		label := variable
		if u := d.Units(variable); u != "" {
			label += " (" + u + ")"
		}
		err := writePNG(legendFile, func(w io.Writer) error {
			return m.Legend(w, label)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func writePNG(filename string, write func(io.Writer) error) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("geoplot: creating output file: %v", err)
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Info describes the contents of a data file, writing the description
// to the command's output.
func Info(cmd *cobra.Command, cfg *viper.Viper) error {
	inputFile := os.ExpandEnv(cfg.GetString("InputFile"))
	if inputFile == "" {
		return fmt.Errorf("geoplot: no input file specified")
	}
	d, err := geoplot.ReadNetCDF(inputFile)
	if err != nil {
		return err
	}
	b := d.Bounds()
	cmd.Printf("%s: %d×%d cells of %g°×%g°, spanning (%g, %g) to (%g, %g)\n",
		d.Name, d.Ny(), d.Nx(), d.DY(), d.DX(), b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
	if title, ok := d.Attr("title").(string); ok {
		cmd.Printf("title: %s\n", title)
	}
	for _, v := range d.VarNames() {
		data, err := d.Var(v)
		if err != nil {
			return err
		}
		min, max := geoplot.MinMax(data)
		cmd.Printf("%s", v)
		if u := d.Units(v); u != "" {
			cmd.Printf(" (%s)", u)
		}
		if layers, _ := d.Layers(v); layers > 1 {
			cmd.Printf(", %d layers", layers)
		}
		cmd.Printf(": %g to %g\n", min, max)
	}
	return nil
}
