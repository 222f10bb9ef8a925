package loader

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/assert"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"pong.ch8":      {Data: []byte{0x12, 0x00}},
		"IBM Logo.rom":  {Data: []byte{0x00, 0xE0}},
		"maze":          {Data: []byte{0xA2, 0x1E}},
		"readme.txt":    {Data: []byte("not a rom")},
		".hidden":       {Data: []byte{0x00}},
		"large.ch8":     {Data: make([]byte, machine.MaxProgramSize+1)},
		"sub/nested.c8": {Data: []byte{0x00, 0xEE}},
	}
}

func TestNames(t *testing.T) {
	names, err := New(testFS()).Names()
	assert.NoError(t, err)

	assert.Len(t, names, 4)
	assert.Equal(t, "IBM Logo.rom", names[0])
	assert.Equal(t, "large.ch8", names[1])
	assert.Equal(t, "maze", names[2])
	assert.Equal(t, "pong.ch8", names[3])
}

func TestLoad(t *testing.T) {
	l := New(testFS())

	t.Run("existing rom", func(t *testing.T) {
		data, err := l.Load("pong.ch8")
		assert.NoError(t, err)
		assert.Len(t, data, 2)
		assert.Equal(t, byte(0x12), data[0])
	})

	t.Run("nested rom", func(t *testing.T) {
		data, err := l.Load("sub/nested.c8")
		assert.NoError(t, err)
		assert.Len(t, data, 2)
	})

	t.Run("missing rom", func(t *testing.T) {
		_, err := l.Load("tetris.ch8")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("invalid name", func(t *testing.T) {
		_, err := l.Load("../pong.ch8")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("rom too large", func(t *testing.T) {
		_, err := l.Load("large.ch8")
		assert.True(t, errors.Is(err, machine.ErrProgramTooLarge))
	})
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.ch8")
	if err := os.WriteFile(path, []byte{0x6A, 0x05}, 0600); err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	data, err := LoadFile(path)
	assert.NoError(t, err)
	assert.Len(t, data, 2)
	assert.Equal(t, byte(0x6A), data[0])

	_, err = LoadFile(filepath.Join(dir, "missing.ch8"))
	assert.True(t, errors.Is(err, ErrNotFound))
}
