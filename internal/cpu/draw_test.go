package cpu

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrogolib/assert"
)

// litPixels returns the number of pixels that are turned on.
func litPixels(s *machine.State) int {
	count := 0
	for x := 0; x < machine.DisplayWidth; x++ {
		for y := 0; y < machine.DisplayHeight; y++ {
			if s.Display[x][y] {
				count++
			}
		}
	}
	return count
}

func TestDraw_Glyph(t *testing.T) {
	c := New()
	s := newTestMachine(t)
	s.V[1] = 10
	s.V[2] = 4
	s.I = machine.GlyphAddress(0)

	execute(t, c, s, 0xD125)

	// glyph 0 is a 4x5 rectangle outline
	assert.True(t, s.Pixel(10, 4))
	assert.True(t, s.Pixel(13, 4))
	assert.True(t, s.Pixel(10, 6))
	assert.False(t, s.Pixel(11, 6))
	assert.False(t, s.Pixel(14, 4))
	assert.Equal(t, 14, litPixels(s))
	assert.Equal(t, uint8(0), s.V[0xF])
	assert.Equal(t, machine.GlyphAddress(0), s.I)
}

func TestDraw_CollisionTurnsPixelsOff(t *testing.T) {
	c := New()
	s := newTestMachine(t)
	s.V[1] = 20
	s.V[2] = 10
	s.I = machine.GlyphAddress(8)

	execute(t, c, s, 0xD125)
	assert.Equal(t, uint8(0), s.V[0xF])
	assert.True(t, litPixels(s) > 0)

	execute(t, c, s, 0xD125)
	assert.Equal(t, uint8(1), s.V[0xF])
	assert.Equal(t, 0, litPixels(s))
}

func TestDraw_ZeroBitsKeepPixels(t *testing.T) {
	c := New()
	s := newTestMachine(t)
	s.Memory[0x300] = 0x0F
	s.I = 0x300
	s.Display[0][0] = true

	execute(t, c, s, 0xD121)
	assert.True(t, s.Pixel(0, 0))
	assert.True(t, s.Pixel(4, 0))
	assert.False(t, s.Pixel(3, 0))
	assert.Equal(t, uint8(0), s.V[0xF])
}

func TestDraw_ClipsAtRightEdge(t *testing.T) {
	c := New()
	s := newTestMachine(t)
	s.Memory[0x300] = 0xFF
	s.I = 0x300
	s.V[1] = 60
	s.V[2] = 0

	execute(t, c, s, 0xD121)
	for x := 60; x < 64; x++ {
		assert.True(t, s.Pixel(x, 0))
	}
	for x := 0; x < 4; x++ {
		assert.False(t, s.Pixel(x, 0))
	}
	assert.Equal(t, 4, litPixels(s))
}

func TestDraw_ClipsAtBottomEdge(t *testing.T) {
	c := New()
	s := newTestMachine(t)
	for i := 0; i < 4; i++ {
		s.Memory[0x300+i] = 0x80
	}
	s.I = 0x300
	s.V[1] = 0
	s.V[2] = 30

	execute(t, c, s, 0xD124)
	assert.True(t, s.Pixel(0, 30))
	assert.True(t, s.Pixel(0, 31))
	assert.False(t, s.Pixel(0, 0))
	assert.False(t, s.Pixel(0, 1))
	assert.Equal(t, 2, litPixels(s))
}

func TestDraw_StartCoordinateWraps(t *testing.T) {
	c := New()
	s := newTestMachine(t)
	s.Memory[0x300] = 0x80
	s.I = 0x300
	s.V[1] = 64 + 5
	s.V[2] = 32 + 7

	execute(t, c, s, 0xD121)
	assert.True(t, s.Pixel(5, 7))
	assert.Equal(t, 1, litPixels(s))
}

func TestDraw_ClearsFlagFirst(t *testing.T) {
	c := New()
	s := newTestMachine(t)
	s.V[0xF] = 1
	s.I = 0x300

	execute(t, c, s, 0xD001)
	assert.Equal(t, uint8(0), s.V[0xF])
}
