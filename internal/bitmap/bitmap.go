// This package defines an interface for a simple bitmap structure that has a
// width, height, and can get bits from the bitmap by (x,y) coordinate.
// A bit value of 1 means the printer should fire that dot (ink), 0 leaves it
// blank.
// PixelBitmap stores each pixel in a byte and is the result of converting a
// decoded image; PackedBitmap is the 8-pixels-per-byte structure which
// ESC/POS printers consume over the wire.
// Bitmaps are never mutated once built, transformations return new bitmaps.
package bitmap

import (
	"fmt"
)

type Bitmap interface {
	Width() int
	Height() int
	GetBit(x int, y int) byte
}

type PixelBitmap struct {
	pixels        [][]byte
	width, height int
}

// Builds a bitmap from rows of pixels. Every row must have the same length and
// every pixel must be 0 or 1. The rows are copied.
func NewPixelBitmap(rows [][]byte) (*PixelBitmap, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, &UnsupportedImageError{Reason: "bitmap has no pixels"}
	}

	width, height := len(rows[0]), len(rows)
	pixels := make([][]byte, height)
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("Row %v has %v pixels, expecting %v", y, len(row), width)
		}
		pixels[y] = make([]byte, width)
		for x, p := range row {
			if p > 1 {
				return nil, fmt.Errorf("Pixel at (%v, %v) is %v, must be 0 or 1", x, y, p)
			}
			pixels[y][x] = p
		}
	}

	return &PixelBitmap{pixels, width, height}, nil
}

func newBlankBitmap(width, height int) *PixelBitmap {
	pixels := make([][]byte, height)
	for y := range height {
		pixels[y] = make([]byte, width)
	}
	return &PixelBitmap{pixels, width, height}
}

func (b *PixelBitmap) Width() int {
	return b.width
}

func (b *PixelBitmap) Height() int {
	return b.height
}

func (b *PixelBitmap) GetBit(x int, y int) byte {
	return b.pixels[y][x]
}

func (b *PixelBitmap) String() string {
	return fmt.Sprintf("PixelBitmap(%d,%d)", b.width, b.height)
}

// Copies any Bitmap implementation into a PixelBitmap
func Copy(b Bitmap) *PixelBitmap {
	c := newBlankBitmap(b.Width(), b.Height())
	for y := range c.height {
		for x := range c.width {
			c.pixels[y][x] = b.GetBit(x, y) & 1
		}
	}
	return c
}
