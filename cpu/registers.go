package cpu

import (
	"fmt"
)

// Destination names the register written at the end of a cycle.
type Destination int

//go:generate go tool stringer -linecomment -type=Destination
const (
	DEST_NONE = Destination(0) // -
	DEST_PC   = Destination(1) // pc
	DEST_MAR  = Destination(2) // mar
	DEST_MDR  = Destination(3) // mdr
	DEST_IR   = Destination(4) // ir
	DEST_ACC  = Destination(5) // acc
	DEST_B    = Destination(6) // b
)

const (
	WORD_WIDTH   = 12                        // Logical width of memory and data registers.
	WORD_VALUE   = uint16(1<<WORD_WIDTH) - 1 // Mask of a 12 bit value.
	NEG_BIT      = uint16(1 << 11)           // Sign bit of an ALU result.
	PC_MASK      = uint16(0xff)              // Program counter width.
	OPCODE_SHIFT = 8                         // IR bits above the reference field.
	OPCODE_MASK  = uint16(0xf)
)

// Registers is the mutable state of the machine. The zero value is the reset state.
type Registers struct {
	PC    uint8  // Program counter.
	MAR   uint16 // Memory address register.
	MDR   uint16 // Memory data register.
	ACC   uint16 // Accumulator.
	B     uint16 // Secondary ALU operand.
	IR    uint16 // Instruction register.
	ALU   uint16 // Latched ALU output.
	Bus   uint16 // Shared bus. Keeps its value until driven again.
	Neg   bool   // Bit 11 of the most recent ALU result.
	UAddr uint8  // Micro-address of the next control word.

	Halted bool // Once set, never cleared by execution.
}

// Opcode returns the opcode field of the instruction register.
func (regs *Registers) Opcode() uint8 {
	return uint8((regs.IR >> OPCODE_SHIFT) & OPCODE_MASK)
}

// Get returns the value of a destination register.
func (regs *Registers) Get(dest Destination) (value uint16, ok bool) {
	ok = true
	switch dest {
	case DEST_PC:
		value = uint16(regs.PC)
	case DEST_MAR:
		value = regs.MAR
	case DEST_MDR:
		value = regs.MDR
	case DEST_IR:
		value = regs.IR
	case DEST_ACC:
		value = regs.ACC
	case DEST_B:
		value = regs.B
	default:
		ok = false
	}
	return
}

// Set writes a destination register. Only the program counter is truncated.
func (regs *Registers) Set(dest Destination, value uint16) {
	switch dest {
	case DEST_PC:
		regs.PC = uint8(value & PC_MASK)
	case DEST_MAR:
		regs.MAR = value
	case DEST_MDR:
		regs.MDR = value
	case DEST_IR:
		regs.IR = value
	case DEST_ACC:
		regs.ACC = value
	case DEST_B:
		regs.B = value
	}
}

// String returns the register file as a multi-line dump.
func (regs *Registers) String() (text string) {
	rows := []struct {
		name  string
		value string
	}{
		{"uaddr", fmt.Sprintf("%02x", regs.UAddr)},
		{"pc", fmt.Sprintf("%02x", regs.PC)},
		{"mar", fmt.Sprintf("%03x", regs.MAR)},
		{"mdr", fmt.Sprintf("%03x", regs.MDR)},
		{"acc", fmt.Sprintf("%03x", regs.ACC)},
		{"b", fmt.Sprintf("%03x", regs.B)},
		{"ir", fmt.Sprintf("%03x %v", regs.IR, OpcodeName(regs.Opcode()))},
		{"alu", fmt.Sprintf("%03x", regs.ALU)},
		{"bus", fmt.Sprintf("%03x", regs.Bus)},
		{"neg", fmt.Sprintf("%v", regs.Neg)},
		{"halt", fmt.Sprintf("%v", regs.Halted)},
	}
	for _, row := range rows {
		text += fmt.Sprintf("% 5s: %v\n", row.name, row.value)
	}

	return
}

// MEMORY_SIZE is the number of words of main memory.
const MEMORY_SIZE = 256

// Memory is main memory. Words are 12 bits wide in a 16 bit container.
type Memory [MEMORY_SIZE]uint16

// Read a word. The address is truncated to the memory size.
func (mem *Memory) Read(addr uint16) uint16 {
	return mem[addr%MEMORY_SIZE]
}

// Write a word. The address is truncated to the memory size.
func (mem *Memory) Write(addr uint16, value uint16) {
	mem[addr%MEMORY_SIZE] = value
}
