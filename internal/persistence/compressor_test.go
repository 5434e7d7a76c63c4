package persistence

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nutrilog/internal/structures"
)

func TestZstdCompression_Roundtrip(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	defer c.Close()

	original := []byte(`[{"itemName":"Ei","calories":140,"protein":12,"fat":10,"carbs":1}]`)
	compressed, err := c.Compress(original)
	require.NoError(t, err)
	assert.NotEqual(t, original, compressed)

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, original, decompressed)
}

func TestZstdCompression_LargeDataShrinks(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	defer c.Close()

	original := bytes.Repeat([]byte(`{"itemName":"Haferflocken","calories":370},`), 2000)
	compressed, err := c.Compress(original)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(original))

	decompressed, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, original, decompressed)
}

func TestZstdCompression_GarbageFails(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Decompress([]byte("not-zstd"))
	assert.Error(t, err)
}

func TestNewCompressor_PlainWhenDisabled(t *testing.T) {
	c, err := NewCompressor(&structures.Config{})
	require.NoError(t, err)
	assert.IsType(t, &plainCompression{}, c)

	out, err := c.Compress([]byte("x"))
	require.NoError(t, err)
	assert.Equal(t, []byte("x"), out)
}

func TestNewCompressor_ZstdWhenEnabled(t *testing.T) {
	c, err := NewCompressor(&structures.Config{Persistence: structures.Persistence{Compress: true}})
	require.NoError(t, err)
	defer c.Close()
	assert.IsType(t, &ZstdCompression{}, c)
}
