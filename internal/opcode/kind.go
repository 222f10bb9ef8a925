package opcode

// Kind is the closed set of supported instruction kinds.
type Kind int

// Instruction kinds, Unknown is the zero value for unsupported words.
const (
	Unknown Kind = iota
	ClearScreen
	Return
	Jump
	Call
	SkipEqualImmediate
	SkipNotEqualImmediate
	SkipEqualRegister
	SkipNotEqualRegister
	LoadImmediate
	AddImmediate
	Copy
	Or
	And
	Xor
	AddRegister
	Subtract
	ShiftRight
	SubtractReverse
	ShiftLeft
	LoadIndex
	JumpOffset
	Random
	Draw
	SkipKeyPressed
	SkipKeyNotPressed
	ReadDelayTimer
	WaitKey
	WriteDelayTimer
	WriteSoundTimer
	AddIndex
	GlyphAddress
	BinaryCodedDecimal
	StoreRegisters
	LoadRegisters
)

var kindNames = [...]string{
	Unknown:               "unknown",
	ClearScreen:           "clear screen",
	Return:                "return",
	Jump:                  "jump",
	Call:                  "call",
	SkipEqualImmediate:    "skip if equal immediate",
	SkipNotEqualImmediate: "skip if not equal immediate",
	SkipEqualRegister:     "skip if equal register",
	SkipNotEqualRegister:  "skip if not equal register",
	LoadImmediate:         "load immediate",
	AddImmediate:          "add immediate",
	Copy:                  "copy",
	Or:                    "or",
	And:                   "and",
	Xor:                   "xor",
	AddRegister:           "add with carry",
	Subtract:              "subtract with borrow",
	ShiftRight:            "shift right",
	SubtractReverse:       "reverse subtract with borrow",
	ShiftLeft:             "shift left",
	LoadIndex:             "load index",
	JumpOffset:            "jump with offset",
	Random:                "random",
	Draw:                  "draw sprite",
	SkipKeyPressed:        "skip if key pressed",
	SkipKeyNotPressed:     "skip if key not pressed",
	ReadDelayTimer:        "read delay timer",
	WaitKey:               "wait for key",
	WriteDelayTimer:       "write delay timer",
	WriteSoundTimer:       "write sound timer",
	AddIndex:              "add to index",
	GlyphAddress:          "font glyph address",
	BinaryCodedDecimal:    "binary coded decimal",
	StoreRegisters:        "register dump",
	LoadRegisters:         "register load",
}

// String returns a human readable description of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[Unknown]
	}
	return kindNames[k]
}

// IsSkip returns true if the kind conditionally skips the next instruction.
func (k Kind) IsSkip() bool {
	switch k {
	case SkipEqualImmediate, SkipNotEqualImmediate, SkipEqualRegister,
		SkipNotEqualRegister, SkipKeyPressed, SkipKeyNotPressed:
		return true
	default:
		return false
	}
}
