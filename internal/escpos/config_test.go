package escpos

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLineHeight(t *testing.T) {
	require.Equal(t, 1, EncodingConfig{}.LineHeight())
	require.Equal(t, 1, EncodingConfig{HighDensityHorizontal: true}.LineHeight())
	require.Equal(t, 3, EncodingConfig{HighDensityVertical: true}.LineHeight())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("column")
	require.NoError(t, err)
	require.Equal(t, ColumnFormat, f)

	f, err = ParseFormat("raster")
	require.NoError(t, err)
	require.Equal(t, RasterFormat, f)

	f, err = ParseFormat("")
	require.NoError(t, err)
	require.Equal(t, RasterFormat, f)

	_, err = ParseFormat("Column")
	require.Error(t, err)
}

func TestHousekeepingCommands(t *testing.T) {
	require.Equal(t, []byte{Esc, '@'}, InitPrinter().Bytes())
	require.Equal(t, []byte{Esc, 'd', 4}, FeedLines(4).Bytes())
	require.Equal(t, 3, SetLineSpacing(16).Len())
}
