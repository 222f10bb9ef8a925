package opcode

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Instruction returns the matching instruction definition of the CHIP-8
// instruction set, nil is returned for words that do not match any opcode.
func (o Opcode) Instruction() *chip8.Instruction {
	for _, op := range chip8.Opcodes[int(o.Op)] {
		if op.Info.Mask&o.Word == op.Info.Value {
			return op.Instruction
		}
	}
	return nil
}

// Mnemonic returns the assembler notation of the instruction, for example
// "drw V1, V2, $5". Unknown words are returned as data byte directive.
func (o Opcode) Mnemonic() string {
	ins := o.Instruction()
	if ins == nil || o.Kind() == Unknown {
		return fmt.Sprintf(".word $%04X", o.Word)
	}
	if params := o.formatParams(ins.Name); params != "" {
		return fmt.Sprintf("%s %s", ins.Name, params)
	}
	return ins.Name
}

// formatParams formats the parameters of the instruction with the given name.
func (o Opcode) formatParams(name string) string {
	switch name {
	case chip8.Cls.Name, chip8.Ret.Name:
		return "" // No parameters
	case chip8.Jp.Name:
		return o.formatJump()
	case chip8.Call.Name:
		return fmt.Sprintf("$%03X", o.NNN)
	case chip8.Se.Name, chip8.Sne.Name:
		return o.formatCompare()
	case chip8.Ld.Name:
		return o.formatLoad()
	case chip8.Add.Name:
		return o.formatAdd()
	case chip8.Or.Name, chip8.And.Name, chip8.Xor.Name, chip8.Sub.Name, chip8.Subn.Name:
		return fmt.Sprintf("V%X, V%X", o.X, o.Y)
	case chip8.Shr.Name, chip8.Shl.Name, chip8.Skp.Name, chip8.Sknp.Name:
		return fmt.Sprintf("V%X", o.X)
	case chip8.Rnd.Name:
		return fmt.Sprintf("V%X, $%02X", o.X, o.NN)
	case chip8.Drw.Name:
		return fmt.Sprintf("V%X, V%X, $%X", o.X, o.Y, o.N)
	}
	return ""
}

// formatJump formats jump instructions (JP addr, JP V0+addr).
func (o Opcode) formatJump() string {
	if o.Op == 0xB {
		return fmt.Sprintf("V0, $%03X", o.NNN)
	}
	return fmt.Sprintf("$%03X", o.NNN)
}

// formatCompare formats comparison instructions (SE, SNE).
func (o Opcode) formatCompare() string {
	switch o.Op {
	case 0x3, 0x4:
		return fmt.Sprintf("V%X, $%02X", o.X, o.NN)
	default:
		return fmt.Sprintf("V%X, V%X", o.X, o.Y)
	}
}

// formatLoad formats the many forms of the load instruction.
func (o Opcode) formatLoad() string {
	switch o.Op {
	case 0x6:
		return fmt.Sprintf("V%X, $%02X", o.X, o.NN)
	case 0x8:
		return fmt.Sprintf("V%X, V%X", o.X, o.Y)
	case 0xA:
		return fmt.Sprintf("I, $%03X", o.NNN)
	}

	switch o.NN {
	case 0x07:
		return fmt.Sprintf("V%X, DT", o.X)
	case 0x0A:
		return fmt.Sprintf("V%X, K", o.X)
	case 0x15:
		return fmt.Sprintf("DT, V%X", o.X)
	case 0x18:
		return fmt.Sprintf("ST, V%X", o.X)
	case 0x29:
		return fmt.Sprintf("F, V%X", o.X)
	case 0x33:
		return fmt.Sprintf("B, V%X", o.X)
	case 0x55:
		return fmt.Sprintf("[I], V%X", o.X)
	case 0x65:
		return fmt.Sprintf("V%X, [I]", o.X)
	}
	return ""
}

// formatAdd formats add instructions (ADD Vx, byte/Vy and ADD I, Vx).
func (o Opcode) formatAdd() string {
	switch o.Op {
	case 0x7:
		return fmt.Sprintf("V%X, $%02X", o.X, o.NN)
	case 0x8:
		return fmt.Sprintf("V%X, V%X", o.X, o.Y)
	default:
		return fmt.Sprintf("I, V%X", o.X)
	}
}
