// Copyright 2024, Jason S. McMullan <jason.mcmullan@gmail.com>

package emulator

import (
	"fmt"
	"io"
	"iter"
	"maps"
	"strings"

	"github.com/ezrec/eckert/cpu"
	"github.com/ezrec/eckert/image"
	"github.com/ezrec/eckert/internal"
)

const (
	CYCLE_LIMIT = 100000 // Default cycle limit.
)

var _emulator_defines = map[string]string{
	"END_OF_PROGRAM": fmt.Sprintf("%#x", cpu.END_OF_PROGRAM),
	"CYCLE_LIMIT":    fmt.Sprintf("%v", CYCLE_LIMIT),
}

// Emulator state. CPU + initial memory image + trace sink.
type Emulator struct {
	Verbose  bool         // If set, enables verbose logging.
	*cpu.Cpu              // Reference to the CPU simulation.
	Image    *image.Image // Machine image restored on Reset.

	Trace      io.Writer // If set, receives the trace table.
	CycleLimit int       // Maximum cycles before a runtime error; zero for no limit.

	Last cpu.Trace // Trace of the last executed cycle.
}

// NewEmulator creates a new emulator for a machine image.
func NewEmulator(img *image.Image) (emu *Emulator) {
	if img == nil {
		img = &image.Image{}
	}

	emu = &Emulator{
		Cpu:        cpu.NewCpu(&img.Program),
		Image:      img,
		CycleLimit: CYCLE_LIMIT,
	}

	emu.Cpu.Memory = img.Memory

	return
}

// opcodeDefines yields an OP_<NAME> equate for each named opcode.
func opcodeDefines() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		for op := range uint8(cpu.OP_HLT + 1) {
			name := "OP_" + strings.ToUpper(cpu.OpcodeName(op))
			if !yield(name, fmt.Sprintf("%#x", op)) {
				return
			}
		}
	}
}

// Defines returns an iterator over all of the defines
func (emu *Emulator) Defines() iter.Seq2[string, string] {
	return internal.Concat2(maps.All(_emulator_defines),
		opcodeDefines(),
	)
}

// Reset restores the memory image, clears the registers, and starts a new
// trace table.
func (emu *Emulator) Reset() (err error) {
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Program = &emu.Image.Program
	emu.Cpu.Memory = emu.Image.Memory
	emu.Cpu.Reset()
	emu.Last = cpu.Trace{}

	if emu.Trace != nil {
		_, err = fmt.Fprintln(emu.Trace, cpu.TRACE_HEADER)
	}

	return
}

// Tick performs a single cycle of the emulator.
func (emu *Emulator) Tick() (done bool, err error) {
	if emu.Cpu.Halted {
		done = true
		return
	}

	// Set CPU verbosity
	emu.Cpu.Verbose = emu.Verbose

	uaddr := emu.Cpu.UAddr
	cycle := emu.Cpu.Cycles
	defer func() {
		if err != nil {
			err = &ErrRuntime{UAddr: uaddr, Cycle: cycle, Err: err}
		}
	}()

	if emu.CycleLimit > 0 && cycle >= emu.CycleLimit {
		err = ErrCycleLimit
		return
	}

	emu.Last = emu.Cpu.Step()

	if emu.Trace != nil {
		_, err = fmt.Fprintln(emu.Trace, emu.Last.String())
		if err != nil {
			return
		}
	}

	done = emu.Cpu.Halted
	return
}

// Run ticks the emulator until the CPU halts.
func (emu *Emulator) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
