// Destinations for encoded printer commands. The encoders only ever produce
// bytes; opening and closing a Sink is up to the caller.
package printer

import (
	"fmt"
	"io"
	"log/slog"

	"tomgalvin.uk/escposimage/internal/escpos"
)

type Sink interface {
	Write(data []byte) error
	Close() error
}

// Writes to a file, stdout or anything else that's an io.Writer
type StreamSink struct {
	w      io.Writer
	closer io.Closer
}

// Wraps w; if w is also an io.Closer it's closed along with the sink.
func NewStreamSink(w io.Writer) *StreamSink {
	s := &StreamSink{w: w}
	if c, ok := w.(io.Closer); ok {
		s.closer = c
	}
	return s
}

// Wraps w without ever closing it, e.g. for stdout
func NewUnclosedStreamSink(w io.Writer) *StreamSink {
	return &StreamSink{w: w}
}

func (s *StreamSink) Write(data []byte) error {
	if _, err := s.w.Write(data); err != nil {
		return fmt.Errorf("Couldn't write data:\n%w", err)
	}
	slog.Debug("Wrote data to stream", "size", len(data))
	return nil
}

func (s *StreamSink) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// Writes the commands to the sink in order, one write per command.
func WriteCommands(s Sink, cmds []escpos.Command) error {
	for i, c := range cmds {
		if err := s.Write(c.Bytes()); err != nil {
			return fmt.Errorf("Couldn't write command %v of %v:\n%w", i+1, len(cmds), err)
		}
	}
	return nil
}
