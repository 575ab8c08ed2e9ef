package main

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"tomgalvin.uk/escposimage/internal/bitmap"
	"tomgalvin.uk/escposimage/internal/escpos"
)

func loadImage(filename string) (image.Image, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("Couldn't open image:\n%w", err)
	}
	defer f.Close()

	i, format, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("Couldn't decode image %s:\n%w", filename, err)
	}
	slog.Debug("Loaded image", "file", filename, "format", format, "size", i.Bounds().Size())
	return i, nil
}

// Loads an image and encodes it with the given settings. The returned bitmap
// is the monochrome version of the image that was encoded.
func encodeImage(filename string, s *settings) (bitmap.Bitmap, []escpos.Command, error) {
	i, err := loadImage(filename)
	if err != nil {
		return nil, nil, err
	}

	b, err := s.converter.ToMonochrome(i)
	if err != nil {
		return nil, nil, fmt.Errorf("Couldn't convert %s to monochrome:\n%w", filename, err)
	}

	cmds, err := escpos.Encode(b, s.format, s.config)
	if err != nil {
		return nil, nil, fmt.Errorf("Couldn't encode %s:\n%w", filename, err)
	}

	cmds, err = wrapCommands(cmds, s.init, s.feed)
	if err != nil {
		return nil, nil, err
	}

	slog.Info("Encoded image",
		"file", filename,
		"format", s.format,
		"width", b.Width(),
		"height", b.Height(),
		"commands", len(cmds),
	)
	return b, cmds, nil
}

// Optionally resets the printer before the image and feeds paper after it
func wrapCommands(cmds []escpos.Command, init bool, feed int) ([]escpos.Command, error) {
	out := make([]escpos.Command, 0, len(cmds)+2)
	if init {
		out = append(out, escpos.InitPrinter())
	}
	out = append(out, cmds...)
	if feed != 0 {
		n, err := escpos.IntLowHigh(uint64(feed), 1)
		if err != nil {
			return nil, fmt.Errorf("Can't feed %v lines:\n%w", feed, err)
		}
		out = append(out, escpos.FeedLines(n[0]))
	}
	return out, nil
}
