package opcode

import (
	"testing"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	op := Decode(0xD12F)

	assert.Equal(t, uint16(0xD12F), op.Word)
	assert.Equal(t, uint8(0xD), op.Op)
	assert.Equal(t, uint8(0x1), op.X)
	assert.Equal(t, uint8(0x2), op.Y)
	assert.Equal(t, uint8(0xF), op.N)
	assert.Equal(t, uint8(0x2F), op.NN)
	assert.Equal(t, uint16(0x12F), op.NNN)
	assert.Equal(t, "D12F", op.String())
}

func TestFetch(t *testing.T) {
	memory := make([]byte, 0x1000)
	memory[0x200] = 0x6A
	memory[0x201] = 0x05
	memory[0xFFF] = 0x12
	memory[0x000] = 0x34

	op := Fetch(memory, 0x200)
	assert.Equal(t, uint16(0x6A05), op.Word)

	// the second byte wraps around to the start of the memory
	op = Fetch(memory, 0xFFF)
	assert.Equal(t, uint16(0x1234), op.Word)

	op = Fetch(memory, 0x1200)
	assert.Equal(t, uint16(0x6A05), op.Word)
}

func TestKind(t *testing.T) {
	tests := []struct {
		word uint16
		kind Kind
	}{
		{0x00E0, ClearScreen},
		{0x00EE, Return},
		{0x0123, Unknown},
		{0x1200, Jump},
		{0x2ABC, Call},
		{0x3A05, SkipEqualImmediate},
		{0x4A05, SkipNotEqualImmediate},
		{0x5AB0, SkipEqualRegister},
		{0x6A05, LoadImmediate},
		{0x7A05, AddImmediate},
		{0x8AB0, Copy},
		{0x8AB1, Or},
		{0x8AB2, And},
		{0x8AB3, Xor},
		{0x8AB4, AddRegister},
		{0x8AB5, Subtract},
		{0x8AB6, ShiftRight},
		{0x8AB7, SubtractReverse},
		{0x8AB8, Unknown},
		{0x8ABE, ShiftLeft},
		{0x9AB0, SkipNotEqualRegister},
		{0xA123, LoadIndex},
		{0xB123, JumpOffset},
		{0xCA0F, Random},
		{0xD125, Draw},
		{0xEA9E, SkipKeyPressed},
		{0xEAA1, SkipKeyNotPressed},
		{0xEA00, Unknown},
		{0xFA07, ReadDelayTimer},
		{0xFA0A, WaitKey},
		{0xFA15, WriteDelayTimer},
		{0xFA18, WriteSoundTimer},
		{0xFA1E, AddIndex},
		{0xFA29, GlyphAddress},
		{0xFA33, BinaryCodedDecimal},
		{0xFA55, StoreRegisters},
		{0xFA65, LoadRegisters},
		{0xFAFF, Unknown},
	}

	for _, tt := range tests {
		t.Run(Decode(tt.word).String(), func(t *testing.T) {
			assert.Equal(t, tt.kind, Decode(tt.word).Kind())
		})
	}
}

func TestKind_IsSkip(t *testing.T) {
	assert.True(t, SkipEqualImmediate.IsSkip())
	assert.True(t, SkipKeyNotPressed.IsSkip())
	assert.False(t, Jump.IsSkip())
	assert.False(t, Unknown.IsSkip())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "draw sprite", Draw.String())
	assert.Equal(t, "unknown", Kind(-1).String())
	assert.Equal(t, "unknown", Kind(1000).String())
}

func TestMnemonic(t *testing.T) {
	tests := []struct {
		name     string
		word     uint16
		expected string
	}{
		{"clear screen", 0x00E0, chip8.Cls.Name},
		{"return", 0x00EE, chip8.Ret.Name},
		{"jump", 0x1234, chip8.Jp.Name + " $234"},
		{"call", 0x2ABC, chip8.Call.Name + " $ABC"},
		{"load immediate", 0x6A05, chip8.Ld.Name + " VA, $05"},
		{"load index", 0xA123, chip8.Ld.Name + " I, $123"},
		{"draw", 0xD125, chip8.Drw.Name + " V1, V2, $5"},
		{"unknown", 0x0123, ".word $0123"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decode(tt.word).Mnemonic())
		})
	}
}
