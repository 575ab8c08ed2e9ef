package bitmap

import (
	"fmt"
	"image"
	"image/color"

	"github.com/makeworld-the-better-one/dither/v2"
	"golang.org/x/image/draw"
)

// Threshold used when none is configured. After inversion, grey levels at or
// above it become ink, i.e. anything at least as dark as mid grey prints.
const DefaultThreshold = 128

type ImageBitmap struct {
	image *image.Paletted
	// colorMap[i] represents the bit value of the palette colour at index i.
	// If the first colour in the image is the ink colour then colorMap[0] == 1.
	colorMap [2]byte
}

func (b *ImageBitmap) Width() int {
	return b.image.Rect.Dx()
}

func (b *ImageBitmap) Height() int {
	return b.image.Rect.Dy()
}

func (b *ImageBitmap) GetBit(x int, y int) byte {
	r := b.image.Rect
	return b.colorMap[b.image.ColorIndexAt(r.Min.X+x, r.Min.Y+y)]
}

// Wraps a two colour paletted image, treating whichever palette entry is
// closest to ink as a set bit.
func FromPaletted(i *image.Paletted, ink color.Color) (*ImageBitmap, error) {
	if len(i.Palette) != 2 {
		return nil, fmt.Errorf("Image passed to FromPaletted must have only 2 colours in palette")
	}

	var colorMap [2]byte
	if i.Palette.Index(ink) == 0 {
		colorMap = [2]byte{1, 0}
	} else {
		colorMap = [2]byte{0, 1}
	}

	return &ImageBitmap{
		image:    i,
		colorMap: colorMap,
	}, nil
}

// Settings for reducing an image to a monochrome bitmap
type Converter struct {
	// Inverted grey levels at or above this become ink. Zero means DefaultThreshold.
	Threshold uint8
	// Use Floyd-Steinberg error diffusion instead of a fixed threshold
	Dither bool
}

// Reduces any image to a 1 bit per pixel bitmap using the default converter.
func ToMonochrome(i image.Image) (*PixelBitmap, error) {
	return Converter{}.ToMonochrome(i)
}

// Reduces any image to a 1 bit per pixel bitmap where 1 means ink: the image
// is flattened to greyscale, inverted so that dark pixels have high values,
// then binarised.
func (c Converter) ToMonochrome(i image.Image) (*PixelBitmap, error) {
	if i == nil {
		return nil, &UnsupportedImageError{Reason: "no image"}
	}
	if i.Bounds().Empty() {
		return nil, &UnsupportedImageError{Reason: fmt.Sprintf("image has no pixels (%v)", i.Bounds())}
	}

	gray := Grayscale(i)
	Invert(gray)

	if c.Dither {
		return ditherToBitmap(gray)
	}

	threshold := c.Threshold
	if threshold == 0 {
		threshold = DefaultThreshold
	}
	return thresholdToBitmap(gray, threshold), nil
}

// Flattens an image onto a white background and converts it to 8 bit luminance
// (ITU-R 601 weights). The result always has its origin at (0, 0).
func Grayscale(i image.Image) *image.Gray {
	bounds := image.Rect(0, 0, i.Bounds().Dx(), i.Bounds().Dy())
	gray := image.NewGray(bounds)
	draw.Draw(gray, bounds, image.White, image.Point{}, draw.Src)
	draw.Draw(gray, bounds, i, i.Bounds().Min, draw.Over)
	return gray
}

// Inverts the polarity of a greyscale image in place, so black becomes 255.
func Invert(g *image.Gray) {
	for i := range g.Pix {
		g.Pix[i] = 0xFF - g.Pix[i]
	}
}

func thresholdToBitmap(g *image.Gray, threshold uint8) *PixelBitmap {
	width, height := g.Rect.Dx(), g.Rect.Dy()
	b := newBlankBitmap(width, height)
	for y := range height {
		row := g.Pix[y*g.Stride : y*g.Stride+width]
		for x, v := range row {
			if v >= threshold {
				b.pixels[y][x] = 1
			}
		}
	}
	return b
}

// The image has already been inverted, so white in the dithered output is ink.
func ditherToBitmap(g *image.Gray) (*PixelBitmap, error) {
	palette := []color.Color{color.Black, color.White}
	ditherer := dither.NewDitherer(palette)
	ditherer.Matrix = dither.FloydSteinberg
	ditherer.Serpentine = true
	dithered := ditherer.DitherPaletted(g)

	b, err := FromPaletted(dithered, color.White)
	if err != nil {
		return nil, fmt.Errorf("Couldn't read dithered image:\n%w", err)
	}
	return Copy(b), nil
}
