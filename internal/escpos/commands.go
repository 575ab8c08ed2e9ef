// This file implements the ESC/POS command byte sequences used to print
// images, plus a couple of housekeeping commands the CLI can add around them.
package escpos

import (
	"bytes"
	"io"
)

// Control characters
const (
	LF  = 0x0A
	Esc = 0x1B
	GS  = 0x1D
)

// A single printer command: opcode and parameter bytes, then any image data,
// then anything the printer needs after the data (column format strips are
// followed by a line feed to print them).
type Command struct {
	Header  []byte
	Payload []byte
	Trailer []byte
}

func (c Command) Len() int {
	return len(c.Header) + len(c.Payload) + len(c.Trailer)
}

func (c Command) Bytes() []byte {
	b := make([]byte, 0, c.Len())
	b = append(b, c.Header...)
	b = append(b, c.Payload...)
	return append(b, c.Trailer...)
}

func (c Command) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, part := range [][]byte{c.Header, c.Payload, c.Trailer} {
		if len(part) == 0 {
			continue
		}
		n, err := w.Write(part)
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Concatenates commands in order into the byte stream sent to a printer
func Serialize(cmds []Command) []byte {
	var buf bytes.Buffer
	for _, c := range cmds {
		buf.Write(c.Header)
		buf.Write(c.Payload)
		buf.Write(c.Trailer)
	}
	return buf.Bytes()
}

// Initialises the printer & clears any modes set by earlier jobs
func InitPrinter() Command {
	return Command{Header: []byte{Esc, '@'}}
}

// Sets the line feed amount to n dots
func SetLineSpacing(n byte) Command {
	return Command{Header: []byte{Esc, '3', n}}
}

// Restores the printer's default line feed amount
func ResetLineSpacing() Command {
	return Command{Header: []byte{Esc, '2'}}
}

// Makes the printer spool through a number of blank lines.
func FeedLines(n byte) Command {
	return Command{Header: []byte{Esc, 'd', n}}
}

// ESC * m nL nH, to be followed by one column of dots per horizontal
// position. width is the number of dots across the page.
func bitImageHeader(cfg EncodingConfig, width int) ([]byte, error) {
	w, err := encodeDimension("width", width, 2)
	if err != nil {
		return nil, err
	}
	return append([]byte{Esc, '*', cfg.columnDensity()}, w...), nil
}

// GS v 0 m xL xH yL yH, to be followed by widthBytes*height bytes of row data.
func rasterImageHeader(cfg EncodingConfig, widthBytes int, height int) ([]byte, error) {
	x, err := encodeDimension("widthBytes", widthBytes, 2)
	if err != nil {
		return nil, err
	}
	y, err := encodeDimension("height", height, 2)
	if err != nil {
		return nil, err
	}

	header := []byte{GS, 'v', '0', cfg.rasterDensity()}
	header = append(header, x...)
	return append(header, y...), nil
}
