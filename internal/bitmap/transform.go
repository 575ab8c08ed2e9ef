package bitmap

import "fmt"

// Rotates the bitmap 270 degrees anticlockwise, i.e. a quarter turn
// clockwise. The result is Height() wide and Width() high.
func Rotate270(b Bitmap) *PixelBitmap {
	width, height := b.Width(), b.Height()
	r := newBlankBitmap(height, width)
	for y := range r.height {
		for x := range r.width {
			r.pixels[y][x] = b.GetBit(y, height-1-x) & 1
		}
	}
	return r
}

// Mirrors the bitmap left to right.
func MirrorHorizontal(b Bitmap) *PixelBitmap {
	width, height := b.Width(), b.Height()
	m := newBlankBitmap(width, height)
	for y := range height {
		for x := range width {
			m.pixels[y][x] = b.GetBit(width-1-x, y) & 1
		}
	}
	return m
}

// A window onto another bitmap. Pixels outside the source bitmap read as 0, so
// a region can extend past the right or bottom edge of its source.
type Region struct {
	src           Bitmap
	left, top     int
	width, height int
}

// Takes a width x height window of the bitmap whose top left corner is at
// (left, top). Anything beyond the bounds of b is blank.
func NewRegion(b Bitmap, left, top, width, height int) *Region {
	return &Region{b, left, top, width, height}
}

func (r *Region) Width() int {
	return r.width
}

func (r *Region) Height() int {
	return r.height
}

func (r *Region) GetBit(x int, y int) byte {
	sx, sy := r.left+x, r.top+y
	if sx < 0 || sy < 0 || sx >= r.src.Width() || sy >= r.src.Height() {
		return 0
	}
	return r.src.GetBit(sx, sy) & 1
}

func (r *Region) String() string {
	return fmt.Sprintf("Region(%d,%d %dx%d)", r.left, r.top, r.width, r.height)
}
