package config

import (
	"testing"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/opcode"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

func TestCreateCPU_Seeded(t *testing.T) {
	opts := options.Program{Flags: options.Flags{Seed: 1234}}

	random := func() uint8 {
		c := CreateCPU(CreateLogger(false, true), opts)
		s, err := machine.New(nil)
		assert.NoError(t, err)
		assert.NoError(t, c.Execute(s, opcode.Decode(0xC00F), machine.Keys{}))
		assert.NoError(t, c.Execute(s, opcode.Decode(0xC10F), machine.Keys{}))
		return s.V[0]<<4 | s.V[1]
	}

	assert.Equal(t, random(), random())
}

func TestCreateDriverOptions(t *testing.T) {
	opts := options.Program{Flags: options.Flags{
		Speed: 600,
		Steps: 100,
		Debug: true,
		Break: []uint16{0x200, 0x2A0},
	}}

	driverOpts := CreateDriverOptions(opts)
	assert.Equal(t, 600, driverOpts.Speed)
	assert.Equal(t, 100, driverOpts.Steps)
	assert.True(t, driverOpts.Trace)
	assert.True(t, driverOpts.Breakpoints.Contains(0x2A0))
	assert.False(t, driverOpts.Breakpoints.Contains(0x202))
}
