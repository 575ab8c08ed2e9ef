package escpos

import (
	"fmt"

	"tomgalvin.uk/escposimage/internal/bitmap"
)

// Encodes a bitmap in raster format (GS v 0): the whole image as a single
// command, rows packed 8 pixels per byte with the leftmost pixel in the high bit.
func EncodeRaster(b bitmap.Bitmap, cfg EncodingConfig) (Command, error) {
	if err := checkBitmap(b); err != nil {
		return Command{}, err
	}

	packed := bitmap.PackBitmap(b)
	header, err := rasterImageHeader(cfg, packed.Stride(), packed.Height())
	if err != nil {
		return Command{}, err
	}

	return Command{
		Header:  header,
		Payload: packed.Data(),
	}, nil
}

// Encodes a bitmap in the requested format, returning commands in the order
// they must be sent.
func Encode(b bitmap.Bitmap, format Format, cfg EncodingConfig) ([]Command, error) {
	switch format {
	case ColumnFormat:
		return EncodeColumns(b, cfg)
	case RasterFormat:
		c, err := EncodeRaster(b, cfg)
		if err != nil {
			return nil, err
		}
		return []Command{c}, nil
	default:
		return nil, fmt.Errorf(`Unrecognised image format "%s"`, format)
	}
}
