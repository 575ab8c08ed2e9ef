package printer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"tomgalvin.uk/escposimage/internal/escpos"
)

type closeRecorder struct {
	bytes.Buffer
	closed bool
}

func (c *closeRecorder) Close() error {
	c.closed = true
	return nil
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

var _ Sink = (*BluetoothConnection)(nil)

func TestWriteCommands(t *testing.T) {
	var out closeRecorder
	s := NewStreamSink(&out)

	cmds := []escpos.Command{
		escpos.SetLineSpacing(16),
		{Header: []byte{escpos.Esc, '*', 0, 1, 0}, Payload: []byte{0xFF}, Trailer: []byte{escpos.LF}},
		escpos.ResetLineSpacing(),
	}
	require.NoError(t, WriteCommands(s, cmds))
	require.Equal(t, escpos.Serialize(cmds), out.Bytes())

	require.NoError(t, s.Close())
	require.True(t, out.closed)
}

func TestUnclosedStreamSink(t *testing.T) {
	var out closeRecorder
	s := NewUnclosedStreamSink(&out)
	require.NoError(t, s.Write([]byte{1}))
	require.NoError(t, s.Close())
	require.False(t, out.closed)
}

func TestWriteCommandsStopsOnError(t *testing.T) {
	s := NewStreamSink(failingWriter{})
	err := WriteCommands(s, []escpos.Command{escpos.InitPrinter()})
	require.ErrorContains(t, err, "disk full")
}

func TestSplitChunks(t *testing.T) {
	data := bytes.Repeat([]byte{0xAB}, 300)

	chunks := splitChunks(data, 128)
	require.Len(t, chunks, 3)
	require.Len(t, chunks[0], 128)
	require.Len(t, chunks[2], 44)
	require.Equal(t, data, bytes.Join(chunks, nil))

	require.Empty(t, splitChunks(nil, 128))
	require.Len(t, splitChunks(data, 0), 3)
}
