// Package cpu implements the CHIP-8 instruction executor.
package cpu

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/opcode"
	"github.com/retroenv/retrogolib/log"
)

// ErrUnknownInstruction is returned for instruction words that are not part
// of the supported instruction set.
var ErrUnknownInstruction = errors.New("unknown instruction")

// Random is the source of the random numbers of the random instruction.
type Random interface {
	Intn(n int) int
}

// CPU executes decoded instructions on a machine state.
// It keeps no state between instructions besides its configuration.
type CPU struct {
	logger *log.Logger
	random Random
}

// Option configures the CPU.
type Option func(*CPU)

// WithRandom sets the random number source, this allows deterministic
// execution of programs that use the random instruction.
func WithRandom(random Random) Option {
	return func(c *CPU) {
		c.random = random
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *log.Logger) Option {
	return func(c *CPU) {
		c.logger = logger
	}
}

// New returns a new CPU. Without options a time seeded random source is used
// and nothing is logged.
func New(options ...Option) *CPU {
	c := &CPU{}
	for _, option := range options {
		option(c)
	}
	if c.random == nil {
		c.random = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return c
}

// InstructionError is a fatal error that occurred while executing the
// instruction at Address. The machine state is not trustworthy anymore
// after such an error as it can be partially modified.
type InstructionError struct {
	Address uint16
	Opcode  opcode.Opcode
	Err     error
}

func (e *InstructionError) Error() string {
	return fmt.Sprintf("instruction $%04X at address $%03X (op $%X, nn $%02X): %v",
		e.Opcode.Word, e.Address, e.Opcode.Op, e.Opcode.NN, e.Err)
}

func (e *InstructionError) Unwrap() error {
	return e.Err
}

// Execute executes a single instruction on the given machine state using the
// snapshot of the pressed keys. The program counter is advanced to the next
// instruction before the instruction is dispatched.
func (c *CPU) Execute(s *machine.State, op opcode.Opcode, keys machine.Keys) error {
	address := s.Address()
	s.PC += opcode.Size

	kind := op.Kind()
	handler := handlers[kind]
	if handler == nil {
		return &InstructionError{Address: address, Opcode: op, Err: ErrUnknownInstruction}
	}

	if err := handler(c, s, op, keys); err != nil {
		return &InstructionError{Address: address, Opcode: op, Err: err}
	}
	return nil
}

type handler func(c *CPU, s *machine.State, op opcode.Opcode, keys machine.Keys) error

var handlers = map[opcode.Kind]handler{
	opcode.ClearScreen:           clearScreen,
	opcode.Return:                ret,
	opcode.Jump:                  jump,
	opcode.Call:                  call,
	opcode.SkipEqualImmediate:    skipEqualImmediate,
	opcode.SkipNotEqualImmediate: skipNotEqualImmediate,
	opcode.SkipEqualRegister:     skipEqualRegister,
	opcode.SkipNotEqualRegister:  skipNotEqualRegister,
	opcode.LoadImmediate:         loadImmediate,
	opcode.AddImmediate:          addImmediate,
	opcode.Copy:                  copyRegister,
	opcode.Or:                    or,
	opcode.And:                   and,
	opcode.Xor:                   xor,
	opcode.AddRegister:           addRegister,
	opcode.Subtract:              subtract,
	opcode.ShiftRight:            shiftRight,
	opcode.SubtractReverse:       subtractReverse,
	opcode.ShiftLeft:             shiftLeft,
	opcode.LoadIndex:             loadIndex,
	opcode.JumpOffset:            jumpOffset,
	opcode.Random:                random,
	opcode.Draw:                  draw,
	opcode.SkipKeyPressed:        skipKeyPressed,
	opcode.SkipKeyNotPressed:     skipKeyNotPressed,
	opcode.ReadDelayTimer:        readDelayTimer,
	opcode.WaitKey:               waitKey,
	opcode.WriteDelayTimer:       writeDelayTimer,
	opcode.WriteSoundTimer:       writeSoundTimer,
	opcode.AddIndex:              addIndex,
	opcode.GlyphAddress:          glyphAddress,
	opcode.BinaryCodedDecimal:    binaryCodedDecimal,
	opcode.StoreRegisters:        storeRegisters,
	opcode.LoadRegisters:         loadRegisters,
}

// skipIf skips the next instruction if the condition is true.
func skipIf(s *machine.State, condition bool) {
	if condition {
		s.PC += opcode.Size
	}
}

// memoryAddress maps an address into the memory, wrapping around at its end.
func memoryAddress(address uint16) uint16 {
	return address % machine.MemorySize
}
