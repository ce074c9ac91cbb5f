// Package cpu implements the microprogrammed control unit and its micro-assembler.
//
// The machine has an 8-bit program counter (PC), memory address and data
// registers (MAR, MDR), an accumulator (ACC), a secondary operand (B), an
// instruction register (IR), a latched ALU output and a single shared bus.
// A 32-word control store of horizontal control words drives it. Each control
// word carries sixteen concurrent signals, applied in ascending order, plus
// the sequencing fields that pick the next micro-address: a literal jump, a
// conditional branch on the ALU sign, or a jump through the opcode address map.
//
// The assembler reads a line oriented micro-assembly language, one control
// word per line, with labels, equates and compile-time expression evaluation.
package cpu
