// This file implements methods to pack bitmap pixel data into the bit
// structure accepted by ESC/POS printers: 8 pixels per byte, leftmost pixel in
// the most significant bit, each row starting on a fresh byte.

package bitmap

import "fmt"

// a bitmap packed in memory
type PackedBitmap struct {
	data                  []byte
	width, height, stride int
}

const bitsPerWord = 8

func (b *PackedBitmap) Width() int {
	return b.width
}

func (b *PackedBitmap) Height() int {
	return b.height
}

// Number of bytes per row
func (b *PackedBitmap) Stride() int {
	return b.stride
}

func (b *PackedBitmap) Data() []byte {
	return b.data
}

// Gets a single bit from the bitmap at the (x, y) coordinate, returns either 0 or 1
func (b *PackedBitmap) GetBit(x int, y int) byte {
	index := (y * b.stride) + (x / bitsPerWord)
	return (b.data[index] >> (bitsPerWord - 1 - x%bitsPerWord)) & 1
}

func (b *PackedBitmap) String() string {
	return fmt.Sprintf("PackedBitmap(%d,%d)", b.width, b.height)
}

func strideFor(width int) int {
	return (width + bitsPerWord - 1) / bitsPerWord
}

// Take data from any Bitmap implementation and pack it into rows of bytes.
// If the width isn't a multiple of 8 the last byte of each row is padded with
// zero bits on the low order (right hand) side.
func PackBitmap(b Bitmap) *PackedBitmap {
	width, height := b.Width(), b.Height()
	stride := strideFor(width)
	data := make([]byte, stride*height)

	for y := range height {
		row := data[y*stride : (y+1)*stride]
		for x := range width {
			if b.GetBit(x, y)&1 == 1 {
				row[x/bitsPerWord] |= 0x80 >> (x % bitsPerWord)
			}
		}
	}

	return &PackedBitmap{data, width, height, stride}
}

// Wraps data already packed as rows of ceil(width/8) bytes, e.g. a payload read
// back from a printer command. The data isn't copied.
func UnpackBitmap(data []byte, width int, height int) (*PackedBitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, &UnsupportedImageError{Reason: fmt.Sprintf("invalid dimensions %dx%d", width, height)}
	}
	stride := strideFor(width)
	if len(data) != stride*height {
		return nil, fmt.Errorf("Packed data is %v bytes, expecting %v*%v=%v", len(data), stride, height, stride*height)
	}
	return &PackedBitmap{data, width, height, stride}, nil
}
