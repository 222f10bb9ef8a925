// Package opcode decodes CHIP-8 instruction words into their fields and
// classifies them into instruction kinds.
package opcode

import "fmt"

// Size is the size of CHIP-8 instruction words in bytes.
const Size = 2

// Opcode is a decoded 16-bit big-endian instruction word IIII.
// The fields are redundant views of the same word, instructions read
// whichever subset they need.
type Opcode struct {
	Word uint16
	Op   uint8  // top nibble, the instruction family
	X    uint8  // second nibble, register index
	Y    uint8  // third nibble, register index
	N    uint8  // fourth nibble, small immediate or count
	NN   uint8  // low byte, 8-bit immediate
	NNN  uint16 // low 12 bits, address or 12-bit immediate
}

// Decode splits an instruction word into its fields.
func Decode(word uint16) Opcode {
	return Opcode{
		Word: word,
		Op:   uint8(word >> 12),
		X:    uint8(word>>8) & 0xF,
		Y:    uint8(word>>4) & 0xF,
		N:    uint8(word) & 0xF,
		NN:   uint8(word),
		NNN:  word & 0x0FFF,
	}
}

// Fetch reads and decodes the instruction word at the given address.
// Addresses wrap around at the end of the memory.
func Fetch(memory []byte, address int32) Opcode {
	size := int32(len(memory))
	hi := memory[((address%size)+size)%size]
	lo := memory[(((address+1)%size)+size)%size]
	return Decode(uint16(hi)<<8 | uint16(lo))
}

// String returns the instruction word as 4 digit hex value.
func (o Opcode) String() string {
	return fmt.Sprintf("%04X", o.Word)
}

// Kind classifies the instruction by the family nibble and, for the families
// 0x0, 0x8, 0xE and 0xF, the secondary discriminator.
func (o Opcode) Kind() Kind {
	switch o.Op {
	case 0x0:
		switch o.NN {
		case 0xE0:
			return ClearScreen
		case 0xEE:
			return Return
		}
	case 0x1:
		return Jump
	case 0x2:
		return Call
	case 0x3:
		return SkipEqualImmediate
	case 0x4:
		return SkipNotEqualImmediate
	case 0x5:
		return SkipEqualRegister
	case 0x6:
		return LoadImmediate
	case 0x7:
		return AddImmediate
	case 0x8:
		return arithmeticKinds[o.N]
	case 0x9:
		return SkipNotEqualRegister
	case 0xA:
		return LoadIndex
	case 0xB:
		return JumpOffset
	case 0xC:
		return Random
	case 0xD:
		return Draw
	case 0xE:
		switch o.NN {
		case 0x9E:
			return SkipKeyPressed
		case 0xA1:
			return SkipKeyNotPressed
		}
	case 0xF:
		return miscKinds[o.NN]
	}
	return Unknown
}

// arithmeticKinds maps the n discriminator of the 0x8 family, missing
// entries are Unknown.
var arithmeticKinds = [16]Kind{
	0x0: Copy,
	0x1: Or,
	0x2: And,
	0x3: Xor,
	0x4: AddRegister,
	0x5: Subtract,
	0x6: ShiftRight,
	0x7: SubtractReverse,
	0xE: ShiftLeft,
}

// miscKinds maps the nn discriminator of the 0xF family.
var miscKinds = map[uint8]Kind{
	0x07: ReadDelayTimer,
	0x0A: WaitKey,
	0x15: WriteDelayTimer,
	0x18: WriteSoundTimer,
	0x1E: AddIndex,
	0x29: GlyphAddress,
	0x33: BinaryCodedDecimal,
	0x55: StoreRegisters,
	0x65: LoadRegisters,
}
