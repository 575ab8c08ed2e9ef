package bitmap

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGrayscaleUsesLuminance(t *testing.T) {
	i := image.NewRGBA(image.Rect(0, 0, 3, 1))
	i.Set(0, 0, color.RGBA{0xFF, 0, 0, 0xFF})
	i.Set(1, 0, color.RGBA{0, 0xFF, 0, 0xFF})
	i.Set(2, 0, color.RGBA{0, 0, 0xFF, 0xFF})

	g := Grayscale(i)
	require.Equal(t, []uint8{76, 150, 29}, g.Pix)
}

func TestGrayscaleFlattensTransparencyToWhite(t *testing.T) {
	i := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	g := Grayscale(i)
	require.Equal(t, []uint8{0xFF}, g.Pix)
}

func TestInvert(t *testing.T) {
	g := image.NewGray(image.Rect(0, 0, 3, 1))
	g.Pix = []uint8{0, 100, 0xFF}
	Invert(g)
	require.Equal(t, []uint8{0xFF, 155, 0}, g.Pix)
}

func TestToMonochrome(t *testing.T) {
	i := image.NewGray(image.Rect(0, 0, 4, 2))
	i.Pix = []uint8{
		0x00, 0x7F, 0x80, 0xFF,
		0xFF, 0x80, 0x7F, 0x00,
	}

	b, err := ToMonochrome(i)
	require.NoError(t, err)
	expected, _ := NewPixelBitmap([][]byte{
		{1, 1, 0, 0},
		{0, 0, 1, 1},
	})
	assertBitmapsIdentical(t, expected, b)
}

func TestToMonochromeCustomThreshold(t *testing.T) {
	i := image.NewGray(image.Rect(0, 0, 2, 1))
	i.Pix = []uint8{0x10, 0x40}

	b, err := Converter{Threshold: 0xD0}.ToMonochrome(i)
	require.NoError(t, err)
	require.Equal(t, byte(1), b.GetBit(0, 0))
	require.Equal(t, byte(0), b.GetBit(1, 0))
}

func TestToMonochromeHandlesOffsetBounds(t *testing.T) {
	i := image.NewGray(image.Rect(10, 20, 12, 21))
	i.SetGray(10, 20, color.Gray{0})
	i.SetGray(11, 20, color.Gray{0xFF})

	b, err := ToMonochrome(i)
	require.NoError(t, err)
	require.Equal(t, 2, b.Width())
	require.Equal(t, 1, b.Height())
	require.Equal(t, byte(1), b.GetBit(0, 0))
	require.Equal(t, byte(0), b.GetBit(1, 0))
}

func TestToMonochromeRejectsEmptyImage(t *testing.T) {
	_, err := ToMonochrome(image.NewGray(image.Rect(0, 0, 0, 5)))
	require.ErrorIs(t, err, ErrUnsupportedImage)

	var unsupported *UnsupportedImageError
	require.ErrorAs(t, err, &unsupported)

	_, err = ToMonochrome(nil)
	require.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestToMonochromeDitherSolidColours(t *testing.T) {
	i := image.NewGray(image.Rect(0, 0, 8, 2))
	for x := range 8 {
		i.SetGray(x, 0, color.Gray{0})
		i.SetGray(x, 1, color.Gray{0xFF})
	}

	b, err := Converter{Dither: true}.ToMonochrome(i)
	require.NoError(t, err)
	for x := range 8 {
		require.Equal(t, byte(1), b.GetBit(x, 0))
		require.Equal(t, byte(0), b.GetBit(x, 1))
	}
}

func TestFromPaletted(t *testing.T) {
	p := image.NewPaletted(image.Rect(0, 0, 2, 1), color.Palette{color.White, color.Black})
	p.SetColorIndex(1, 0, 1)

	b, err := FromPaletted(p, color.Black)
	require.NoError(t, err)
	require.Equal(t, byte(0), b.GetBit(0, 0))
	require.Equal(t, byte(1), b.GetBit(1, 0))

	_, err = FromPaletted(image.NewPaletted(p.Rect, color.Palette{color.Black}), color.Black)
	require.Error(t, err)
}
