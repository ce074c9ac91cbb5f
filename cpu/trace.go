package cpu

import (
	"fmt"
	"strings"
)

// TRACE_HEADER is the column header matching Trace.String().
const TRACE_HEADER = "opc\tja\tµc\tpc\tmar\tmdr\tacc\talu\tb\tir\tflags"

// Trace is the record of a single cycle. It is a copy of the state at the
// end of the cycle, and is never written back to the machine.
type Trace struct {
	UAddr     uint8       // Micro-address the word was fetched from.
	Word      Word        // Decoded control word.
	Signals   []Signal    // Signals applied, in order.
	Dest      Destination // Register written from the bus, if any.
	Registers Registers   // Registers after the cycle.
}

// Opcode returns the mnemonic of the instruction register's opcode.
func (tr *Trace) Opcode() string {
	return OpcodeName(tr.Registers.Opcode())
}

// Next returns the resolved next micro-address.
func (tr *Trace) Next() uint8 {
	return tr.Registers.UAddr
}

// Flags returns the symbolic names of the sequencing and status flags.
func (tr *Trace) Flags() (flags []string) {
	if tr.Word.Cond {
		flags = append(flags, "CD")
	}
	if tr.Word.Map {
		flags = append(flags, "MAP")
	}
	if tr.Word.Halt {
		flags = append(flags, "HLT")
	}
	if tr.Registers.Neg {
		flags = append(flags, "NEG")
	}
	return
}

// String renders the trace as a tab separated row under TRACE_HEADER.
func (tr *Trace) String() string {
	regs := &tr.Registers

	var sb strings.Builder
	fmt.Fprintf(&sb, "%3s\t%02x\t%02x\t%2x\t%3x\t%3x\t%3x\t%3x\t%3x\t%3x\t",
		tr.Opcode(), tr.Word.Jump, regs.UAddr, regs.PC, regs.MAR,
		regs.MDR&WORD_VALUE, regs.ACC&WORD_VALUE, regs.ALU&WORD_VALUE,
		regs.B, regs.IR)

	var cols []string
	for _, sig := range tr.Signals {
		cols = append(cols, fmt.Sprintf("%3s", sig.String()))
	}
	cols = append(cols, tr.Flags()...)
	sb.WriteString(strings.Join(cols, "\t"))

	return sb.String()
}
