package persistence

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"nutrilog/internal/structures"
	"nutrilog/internal/testutil"
)

func TestNewSlot_File(t *testing.T) {
	conf := &structures.Config{Persistence: structures.Persistence{Driver: "file", Dir: t.TempDir()}}

	slot, cleanup, err := NewSlot(conf, &testutil.MockCompressor{}, &testutil.MockLogger{})
	require.NoError(t, err)
	defer cleanup()
	assert.IsType(t, &FileSlot{}, slot)
}

func TestNewSlot_SQLite(t *testing.T) {
	conf := &structures.Config{Persistence: structures.Persistence{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "x.db")}}
	comp := &testutil.MockCompressor{}

	slot, cleanup, err := NewSlot(conf, comp, &testutil.MockLogger{})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteSlot{}, slot)

	cleanup()
	assert.True(t, comp.Closed)
}

func TestNewSlot_UnknownDriver(t *testing.T) {
	conf := &structures.Config{Persistence: structures.Persistence{Driver: "redis"}}

	_, _, err := NewSlot(conf, &testutil.MockCompressor{}, &testutil.MockLogger{})
	assert.Error(t, err)
}
