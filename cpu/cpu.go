package cpu

import (
	"log"
)

// Cpu is the simulation context of the microprogrammed control unit.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Program *Microprogram // Control store and address map.
	Memory  Memory        // Main memory.
	Registers

	Cycles int // Cycles executed since reset.
}

// NewCpu creates a CPU running a microprogram.
func NewCpu(prog *Microprogram) (cpu *Cpu) {
	if prog == nil {
		prog = &Microprogram{}
	}

	cpu = &Cpu{
		Program: prog,
	}

	return
}

// Reset clears the registers and the cycle counter. Memory is untouched.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	cpu.Registers = Registers{}
	cpu.Cycles = 0
}

// Step executes the control word at the current micro-address.
func (cpu *Cpu) Step() (trace Trace) {
	return cpu.Execute(cpu.Program.Fetch(cpu.UAddr))
}

// Execute runs a single cycle of a decoded control word, as if it had been
// fetched from the current micro-address.
func (cpu *Cpu) Execute(word Word) (trace Trace) {
	if cpu.Verbose {
		log.Printf("%02x: %v", cpu.UAddr, word)
	}

	trace = execute(cpu.Program, &cpu.Memory, &cpu.Registers, word)
	cpu.Cycles++

	return
}

// Step runs one cycle of the engine: the control word at regs.UAddr is
// fetched from prog and applied to mem and regs.
func Step(prog *Microprogram, mem *Memory, regs *Registers) (trace Trace) {
	return execute(prog, mem, regs, prog.Fetch(regs.UAddr))
}

// execute applies the signals of a word in ascending order, then the
// deferred register write, the sequencer, the PC increment and the halt latch.
func execute(prog *Microprogram, mem *Memory, regs *Registers, word Word) (trace Trace) {
	trace.UAddr = regs.UAddr
	trace.Word = word

	dest := DEST_NONE
	increment := false

	for sig := range word.Active() {
		trace.Signals = append(trace.Signals, sig)

		switch sig {
		case SIG_IP:
			increment = true
		case SIG_LP, SIG_LM, SIG_LD, SIG_LI, SIG_LA, SIG_LB:
			// Last select wins.
			dest = sig.Destination()
		case SIG_EP:
			regs.Bus = uint16(regs.PC)
		case SIG_R:
			regs.MDR = mem.Read(regs.MAR)
		case SIG_W:
			mem.Write(regs.MAR, regs.MDR)
		case SIG_ED:
			regs.Bus = regs.MDR
		case SIG_EI:
			regs.Bus = regs.IR
		case SIG_EA:
			regs.Bus = regs.ACC
		case SIG_A:
			regs.ALU = regs.ACC + regs.B
			regs.Neg = (regs.ALU & NEG_BIT) != 0
		case SIG_S:
			regs.ALU = regs.ACC - regs.B
			regs.Neg = (regs.ALU & NEG_BIT) != 0
		case SIG_EU:
			regs.Bus = regs.ALU
		}
	}

	regs.Set(dest, regs.Bus)
	trace.Dest = dest

	regs.UAddr = sequence(prog, regs, word)

	if increment {
		regs.PC++
	}

	if word.Halt {
		regs.Halted = true
	}

	trace.Registers = *regs

	return
}

// sequence computes the next micro-address. Map dispatch has priority over
// conditional dispatch.
func sequence(prog *Microprogram, regs *Registers, word Word) uint8 {
	switch {
	case word.Map:
		return prog.MapAddress(regs.Opcode())
	case word.Cond:
		if regs.Neg {
			return word.Jump & CONTROL_MASK
		}
		return (regs.UAddr + 1) & CONTROL_MASK
	default:
		return word.Jump & CONTROL_MASK
	}
}
