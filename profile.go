package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v2"

	"tomgalvin.uk/escposimage/internal/bitmap"
	"tomgalvin.uk/escposimage/internal/escpos"
)

const defaultThreshold = bitmap.DefaultThreshold

// A printer profile, loaded from YAML. Anything left out falls back to the
// command line defaults, and flags given on the command line always win.
//
//	format: column
//	high_density_horizontal: true
//	high_density_vertical: false
//	threshold: 100
//	bluetooth_name: T02
type Profile struct {
	Format                string `yaml:"format"`
	HighDensityHorizontal *bool  `yaml:"high_density_horizontal"`
	HighDensityVertical   *bool  `yaml:"high_density_vertical"`
	Threshold             *uint  `yaml:"threshold"`
	Dither                *bool  `yaml:"dither"`
	Init                  *bool  `yaml:"init"`
	Feed                  *int   `yaml:"feed"`
	Output                string `yaml:"output"`
	BluetoothName         string `yaml:"bluetooth_name"`
	Database              string `yaml:"database"`
}

func loadProfile(filename string) (*Profile, error) {
	var p Profile
	if filename == "" {
		return &p, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("Couldn't read profile:\n%w", err)
	}
	if err := yaml.UnmarshalStrict(data, &p); err != nil {
		return nil, fmt.Errorf("Couldn't parse profile %s:\n%w", filename, err)
	}
	return &p, nil
}

// Everything needed to turn an image into a byte stream and deliver it
type settings struct {
	format    escpos.Format
	config    escpos.EncodingConfig
	converter bitmap.Converter
	init      bool
	feed      int
	output    string
	bluetooth string
	database  string
}

func stringSetting(c *cli.Context, name string, fromProfile string) string {
	if c.IsSet(name) || fromProfile == "" {
		return c.String(name)
	}
	return fromProfile
}

func boolSetting(c *cli.Context, name string, fromProfile *bool) bool {
	if c.IsSet(name) || fromProfile == nil {
		return c.Bool(name)
	}
	return *fromProfile
}

func loadSettings(c *cli.Context) (*settings, error) {
	p, err := loadProfile(c.String("config"))
	if err != nil {
		return nil, err
	}

	var s settings
	if s.format, err = escpos.ParseFormat(stringSetting(c, "format", p.Format)); err != nil {
		return nil, err
	}
	s.config = escpos.EncodingConfig{
		HighDensityHorizontal: boolSetting(c, "high-density-horizontal", p.HighDensityHorizontal),
		HighDensityVertical:   boolSetting(c, "high-density-vertical", p.HighDensityVertical),
	}

	threshold := c.Uint("threshold")
	if !c.IsSet("threshold") && p.Threshold != nil {
		threshold = *p.Threshold
	}
	// zero means the command has no threshold flag, so use the default
	if threshold > 255 || (threshold == 0 && c.IsSet("threshold")) {
		return nil, fmt.Errorf("Threshold must be between 1 and 255, got %v", threshold)
	}
	s.converter = bitmap.Converter{
		Threshold: uint8(threshold),
		Dither:    boolSetting(c, "dither", p.Dither),
	}

	s.init = boolSetting(c, "init", p.Init)
	s.feed = c.Int("feed")
	if !c.IsSet("feed") && p.Feed != nil {
		s.feed = *p.Feed
	}

	s.output = stringSetting(c, "output", p.Output)
	s.bluetooth = stringSetting(c, "bluetooth", p.BluetoothName)
	s.database = stringSetting(c, "database", p.Database)
	return &s, nil
}
