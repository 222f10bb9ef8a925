package cpu

import (
	"fmt"

	"github.com/retroenv/retrochip8/internal/machine"
	"github.com/retroenv/retrochip8/internal/opcode"
	"github.com/retroenv/retrogolib/log"
)

const flag = machine.FlagRegister

func clearScreen(_ *CPU, s *machine.State, _ opcode.Opcode, _ machine.Keys) error {
	s.ClearDisplay()
	return nil
}

func ret(_ *CPU, s *machine.State, _ opcode.Opcode, _ machine.Keys) error {
	address, err := s.Pop()
	if err != nil {
		return fmt.Errorf("returning from subroutine: %w", err)
	}
	s.PC = int32(address)
	return nil
}

func jump(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	s.PC = int32(op.NNN)
	return nil
}

// call pushes the already advanced program counter as return address.
func call(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	s.Push(s.Address())
	s.PC = int32(op.NNN)
	return nil
}

func skipEqualImmediate(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	skipIf(s, s.V[op.X] == op.NN)
	return nil
}

func skipNotEqualImmediate(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	skipIf(s, s.V[op.X] != op.NN)
	return nil
}

func skipEqualRegister(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	skipIf(s, s.V[op.X] == s.V[op.Y])
	return nil
}

func skipNotEqualRegister(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	skipIf(s, s.V[op.X] != s.V[op.Y])
	return nil
}

func loadImmediate(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	s.V[op.X] = op.NN
	return nil
}

// addImmediate wraps around on overflow and does not change the flag.
func addImmediate(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	s.V[op.X] += op.NN
	return nil
}

func copyRegister(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	s.V[op.X] = s.V[op.Y]
	return nil
}

func or(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	s.V[op.X] |= s.V[op.Y]
	return nil
}

func and(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	s.V[op.X] &= s.V[op.Y]
	return nil
}

func xor(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	s.V[op.X] ^= s.V[op.Y]
	return nil
}

// addRegister sets the flag before the sum is stored, for VF as target
// register the sum overwrites the carry.
func addRegister(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	sum := uint16(s.V[op.X]) + uint16(s.V[op.Y])
	s.V[flag] = boolToFlag(sum > 0xFF)
	s.V[op.X] = uint8(sum)
	return nil
}

// subtract sets the flag to 1 if Vx > Vy, the flag is written before the
// registers are read for the subtraction.
func subtract(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	s.V[flag] = boolToFlag(s.V[op.X] > s.V[op.Y])
	s.V[op.X] -= s.V[op.Y]
	return nil
}

// shiftRight only uses Vx, Vy is ignored.
func shiftRight(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	s.V[flag] = s.V[op.X] & 0x01
	s.V[op.X] >>= 1
	return nil
}

// subtractReverse sets the flag to 1 if Vy > Vx and stores Vy - Vx in Vx.
func subtractReverse(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	s.V[flag] = boolToFlag(s.V[op.Y] > s.V[op.X])
	s.V[op.X] = s.V[op.Y] - s.V[op.X]
	return nil
}

// shiftLeft only uses Vx, Vy is ignored.
func shiftLeft(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	s.V[flag] = (s.V[op.X] >> 7) & 0x01
	s.V[op.X] <<= 1
	return nil
}

func loadIndex(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	s.I = op.NNN
	return nil
}

// jumpOffset always adds V0 to the address, independent of the x nibble.
func jumpOffset(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	s.PC = int32(op.NNN) + int32(s.V[0])
	return nil
}

// random masks the random byte with the n nibble of the instruction.
func random(c *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	value := uint8(c.random.Intn(256))
	s.V[op.X] = value & op.N
	return nil
}

// draw XORs an n rows high sprite read from memory at I onto the display.
// The start coordinate wraps around the display, the sprite itself is
// clipped at the right and bottom edges. VF is set on any pixel collision.
func draw(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	xStart := int(s.V[op.X] & (machine.DisplayWidth - 1))
	yStart := int(s.V[op.Y] & (machine.DisplayHeight - 1))
	s.V[flag] = 0

	for row := 0; row < int(op.N); row++ {
		y := yStart + row
		if y >= machine.DisplayHeight {
			break
		}

		sprite := s.Memory[memoryAddress(s.I+uint16(row))]

		for col := 0; col < 8; col++ {
			x := xStart + col
			if x >= machine.DisplayWidth {
				break
			}

			if sprite&(0x80>>col) == 0 {
				continue
			}
			if s.Display[x][y] {
				s.Display[x][y] = false
				s.V[flag] = 1
			} else {
				s.Display[x][y] = true
			}
		}
	}
	return nil
}

// skipKeyPressed treats register values outside of the keypad as a
// released key.
func skipKeyPressed(_ *CPU, s *machine.State, op opcode.Opcode, keys machine.Keys) error {
	skipIf(s, keyPressed(keys, s.V[op.X]))
	return nil
}

func skipKeyNotPressed(_ *CPU, s *machine.State, op opcode.Opcode, keys machine.Keys) error {
	skipIf(s, !keyPressed(keys, s.V[op.X]))
	return nil
}

func readDelayTimer(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	s.V[op.X] = s.DelayTimer
	return nil
}

// waitKey only records the wait request, the driver resolves it.
func waitKey(c *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	s.AwaitKey(op.X)
	if c.logger != nil {
		c.logger.Debug("Waiting for key press", log.String("register", fmt.Sprintf("V%X", op.X)))
	}
	return nil
}

func writeDelayTimer(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	s.DelayTimer = s.V[op.X]
	return nil
}

func writeSoundTimer(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	s.SoundTimer = s.V[op.X]
	return nil
}

func addIndex(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	s.I += uint16(s.V[op.X])
	return nil
}

func glyphAddress(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	s.I = machine.GlyphAddress(s.V[op.X])
	return nil
}

// binaryCodedDecimal stores the hundreds, tens and units digits of Vx at
// I, I+1 and I+2.
func binaryCodedDecimal(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	value := s.V[op.X]
	s.Memory[memoryAddress(s.I)] = value / 100
	s.Memory[memoryAddress(s.I+1)] = value / 10 % 10
	s.Memory[memoryAddress(s.I+2)] = value % 10
	return nil
}

// storeRegisters copies V0 to Vx inclusive to memory at I, I is unchanged.
func storeRegisters(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	for i := uint16(0); i <= uint16(op.X); i++ {
		s.Memory[memoryAddress(s.I+i)] = s.V[i]
	}
	return nil
}

// loadRegisters copies memory at I to V0 to Vx inclusive, I is unchanged.
func loadRegisters(_ *CPU, s *machine.State, op opcode.Opcode, _ machine.Keys) error {
	for i := uint16(0); i <= uint16(op.X); i++ {
		s.V[i] = s.Memory[memoryAddress(s.I+i)]
	}
	return nil
}

func keyPressed(keys machine.Keys, key uint8) bool {
	if int(key) >= len(keys) {
		return false
	}
	return keys[key]
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
