package escpos

import (
	"runtime"
	"sync"

	"tomgalvin.uk/escposimage/internal/bitmap"
)

// Line spacing used while printing strips so consecutive strips touch
const stripLineSpacing = 16

// Encodes a bitmap in column format (ESC *). The bitmap is turned on its side
// so that each printed column of dots is a row of bytes in memory, then cut
// into strips LineHeight()*8 dots tall. Each strip becomes one command; the
// last strip is padded with blank dots so every strip is the same size.
// The strips are wrapped in commands that shrink the line spacing and then
// restore it.
func EncodeColumns(b bitmap.Bitmap, cfg EncodingConfig) ([]Command, error) {
	if err := checkBitmap(b); err != nil {
		return nil, err
	}

	// rotating 270 then mirroring transposes the image: printed columns of the
	// original become rows of the rotated bitmap
	rotated := bitmap.MirrorHorizontal(bitmap.Rotate270(b))

	// the rotated bitmap's height is the number of dots across the page
	header, err := bitImageHeader(cfg, rotated.Height())
	if err != nil {
		return nil, err
	}

	payloads := packStrips(rotated, cfg.LineHeight()*8)

	cmds := make([]Command, 0, len(payloads)+2)
	cmds = append(cmds, SetLineSpacing(stripLineSpacing))
	for _, p := range payloads {
		cmds = append(cmds, Command{
			Header:  header,
			Payload: p,
			Trailer: []byte{LF},
		})
	}
	cmds = append(cmds, ResetLineSpacing())

	return cmds, nil
}

// Slices the bitmap into stripWidth wide strips, left to right, and packs each
// one. Strips are packed concurrently but the result is always in strip order.
func packStrips(b bitmap.Bitmap, stripWidth int) [][]byte {
	count := (b.Width() + stripWidth - 1) / stripWidth
	payloads := make([][]byte, count)

	var wg sync.WaitGroup
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	for i := range count {
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			strip := bitmap.NewRegion(b, i*stripWidth, 0, stripWidth, b.Height())
			payloads[i] = bitmap.PackBitmap(strip).Data()
			<-sem
		}()
	}
	wg.Wait()

	return payloads
}

func checkBitmap(b bitmap.Bitmap) error {
	if b == nil || b.Width() <= 0 || b.Height() <= 0 {
		return &bitmap.UnsupportedImageError{Reason: "bitmap has no pixels"}
	}
	return nil
}
