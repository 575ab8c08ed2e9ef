package escpos

import "fmt"

// Print density settings, read once when encoding starts.
type EncodingConfig struct {
	HighDensityHorizontal bool
	HighDensityVertical   bool
}

// Height in dot rows of one column format strip, divided by 8.
func (c EncodingConfig) LineHeight() int {
	if c.HighDensityVertical {
		return 3
	}
	return 1
}

// Density byte m for ESC *
func (c EncodingConfig) columnDensity() byte {
	var m byte
	if c.HighDensityHorizontal {
		m += 1
	}
	if c.HighDensityVertical {
		m += 32
	}
	return m
}

// Density byte m for GS v 0, where 0 is normal (full) density and the bits
// select double width/height. Note the polarity is the opposite of ESC *.
func (c EncodingConfig) rasterDensity() byte {
	var m byte
	if !c.HighDensityVertical {
		m += 1
	}
	if !c.HighDensityHorizontal {
		m += 2
	}
	return m
}

type Format string

const (
	ColumnFormat Format = "column"
	RasterFormat Format = "raster"
)

func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case ColumnFormat, RasterFormat:
		return Format(s), nil
	case "":
		return RasterFormat, nil
	default:
		return "", fmt.Errorf(`Unrecognised image format "%s", expecting "%s" or "%s"`, s, ColumnFormat, RasterFormat)
	}
}
