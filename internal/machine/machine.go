// Package machine contains the CHIP-8 machine state that instructions operate on.
package machine

import (
	"errors"
	"fmt"
)

// CHIP-8 memory and display geometry.
//
//	0x000-0x04F: Font glyphs for the hexadecimal digits 0-F
//	0x050-0x1FF: Unused interpreter area
//	0x200-0xFFF: Program image
const (
	// MemorySize is the size of the addressable memory in bytes.
	MemorySize = 0x1000

	// ProgramStart is the address the program image is loaded at and where
	// execution begins.
	ProgramStart = 0x200

	// MaxProgramSize is the largest program image that fits into memory.
	MaxProgramSize = MemorySize - ProgramStart

	// DisplayWidth is the number of pixel columns of the display.
	DisplayWidth = 64

	// DisplayHeight is the number of pixel rows of the display.
	DisplayHeight = 32

	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16

	// KeyCount is the number of keys of the hexadecimal keypad.
	KeyCount = 16

	// FlagRegister is the index of VF which doubles as carry, borrow and
	// collision flag.
	FlagRegister = 0xF
)

var (
	// ErrProgramTooLarge is returned when a program image does not fit into
	// memory behind the interpreter area.
	ErrProgramTooLarge = errors.New("program too large")

	// ErrStackUnderflow is returned when returning from a subroutine with an
	// empty call stack.
	ErrStackUnderflow = errors.New("call stack underflow")
)

// Keys is a snapshot of the pressed state of the 16 keypad keys.
type Keys [KeyCount]bool

// Display is the monochrome frame buffer, addressed as [x][y].
type Display [DisplayWidth][DisplayHeight]bool

// State contains the complete state of a CHIP-8 machine.
// It is owned by a single execution thread and is not safe for concurrent use.
type State struct {
	Memory [MemorySize]byte
	V      [RegisterCount]uint8 // general purpose registers
	I      uint16               // index register

	// PC is signed and wider than the address space to allow the
	// increment that precedes every dispatch.
	PC int32

	Stack   []uint16 // return addresses of active subroutine calls
	Display Display

	DelayTimer uint8
	SoundTimer uint8

	// WaitingForKey is set by the wait for key instruction. The driver
	// has to resolve it by calling ResolveKey once a key was pressed.
	WaitingForKey bool
	KeyRegister   uint8 // register that receives the pressed key
}

// New returns a machine state with the font table and the given program
// loaded into memory. The program counter points to the program start.
func New(program []byte) (*State, error) {
	if len(program) > MaxProgramSize {
		return nil, fmt.Errorf("%w: %d bytes exceed the available %d bytes",
			ErrProgramTooLarge, len(program), MaxProgramSize)
	}

	s := &State{
		PC: ProgramStart,
	}
	copy(s.Memory[FontAddress:], Font[:])
	copy(s.Memory[ProgramStart:], program)
	return s, nil
}

// Address returns the memory address the program counter points to.
func (s *State) Address() uint16 {
	return uint16(s.PC % MemorySize)
}

// Push pushes a return address on the call stack.
func (s *State) Push(address uint16) {
	s.Stack = append(s.Stack, address)
}

// Pop removes the most recent return address from the call stack.
func (s *State) Pop() (uint16, error) {
	if len(s.Stack) == 0 {
		return 0, ErrStackUnderflow
	}
	last := len(s.Stack) - 1
	address := s.Stack[last]
	s.Stack = s.Stack[:last]
	return address, nil
}

// ClearDisplay turns all pixels off.
func (s *State) ClearDisplay() {
	s.Display = Display{}
}

// Pixel returns whether the pixel at the given coordinate is on.
// Coordinates outside of the display are reported as off.
func (s *State) Pixel(x, y int) bool {
	if x < 0 || x >= DisplayWidth || y < 0 || y >= DisplayHeight {
		return false
	}
	return s.Display[x][y]
}

// AwaitKey enters the waiting for key state, the pressed key will be stored
// in the given register.
func (s *State) AwaitKey(register uint8) {
	s.WaitingForKey = true
	s.KeyRegister = register
}

// ResolveKey stores the pressed key in the register recorded by AwaitKey
// and leaves the waiting for key state. It does nothing if no key is awaited.
func (s *State) ResolveKey(key uint8) {
	if !s.WaitingForKey {
		return
	}
	s.V[s.KeyRegister&0xF] = key & 0xF
	s.WaitingForKey = false
}

// SoundActive returns whether the buzzer should currently emit a tone.
func (s *State) SoundActive() bool {
	return s.SoundTimer > 0
}

// TickTimers decrements the delay and sound timers if they are nonzero.
// It is meant to be called by the driver at a fixed rate of 60 Hz.
func (s *State) TickTimers() {
	if s.DelayTimer > 0 {
		s.DelayTimer--
	}
	if s.SoundTimer > 0 {
		s.SoundTimer--
	}
}
