// Package monitor is an interactive single step monitor for the emulator.
package monitor

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/ezrec/eckert/cpu"
	"github.com/ezrec/eckert/emulator"
	"github.com/ezrec/eckert/internal"
	"github.com/ezrec/eckert/translate"
)

const (
	MEM_COUNT = 16 // Default word count of the mem command.
)

type command struct {
	Name    string // Command name.
	Min     int    // Minimum match size.
	Usage   string // Arguments, for help.
	Help    string // One line description.
	Process func(emu *emulator.Emulator, args []string, out io.Writer) (quit bool, err error)
}

var cmdList []command

func init() {
	cmdList = []command{
		{Name: "step", Min: 1, Usage: "[n]", Help: "execute n cycles", Process: step},
		{Name: "run", Min: 1, Help: "execute until halted", Process: run},
		{Name: "regs", Min: 1, Help: "show the registers", Process: regs},
		{Name: "mem", Min: 1, Usage: "[hex-addr [count]]", Help: "show memory words", Process: mem},
		{Name: "trace", Min: 1, Usage: "on|off", Help: "trace cycles of run", Process: trace},
		{Name: "reset", Min: 5, Help: "restore the machine image", Process: reset},
		{Name: "help", Min: 1, Help: "list the commands", Process: help},
		{Name: "quit", Min: 4, Help: "leave the monitor", Process: quit},
	}
}

// matchCommand checks if name is a prefix of the command, of at least
// the minimum length.
func matchCommand(match command, name string) bool {
	return len(name) >= match.Min && strings.HasPrefix(match.Name, name)
}

// Command executes a single monitor command line.
func Command(emu *emulator.Emulator, line string, out io.Writer) (quit bool, err error) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}

	name := strings.ToLower(words[0])
	defer func() {
		if err != nil {
			err = &ErrCommand{Name: name, Err: err}
		}
	}()

	var match []command
	for _, cmd := range cmdList {
		if matchCommand(cmd, name) {
			match = append(match, cmd)
		}
	}

	switch len(match) {
	case 0:
		err = ErrCommandUnknown
	case 1:
		quit, err = match[0].Process(emu, words[1:], out)
	default:
		err = ErrCommandAmbiguous
	}

	return
}

// Complete returns the command names that complete a partial line.
func Complete(line string) (matches []string) {
	if strings.ContainsAny(line, " \t") {
		return
	}

	names := func(yield func(string) bool) {
		for _, cmd := range cmdList {
			if !yield(cmd.Name) {
				return
			}
		}
	}

	matches = slices.Sorted(internal.WithPrefix(names, strings.ToLower(line)))
	return
}

// consoleTrace is the trace writer installed by 'trace on'.
type consoleTrace struct {
	io.Writer
}

// tracing returns true if cycles are already traced to the console.
func tracing(emu *emulator.Emulator) bool {
	_, ok := emu.Trace.(*consoleTrace)
	return ok
}

// number parses an optional argument in the given base.
func number(args []string, index int, value int, base int) (int, error) {
	if index >= len(args) {
		return value, nil
	}

	v64, err := strconv.ParseUint(args[index], base, 16)
	if err != nil {
		return 0, ErrArgument
	}

	return int(v64), nil
}

func step(emu *emulator.Emulator, args []string, out io.Writer) (quit bool, err error) {
	if len(args) > 1 {
		err = ErrArgument
		return
	}

	count, err := number(args, 0, 1, 10)
	if err != nil {
		return
	}

	for range count {
		if emu.Halted {
			break
		}

		_, err = emu.Tick()
		if err != nil {
			return
		}
		if !tracing(emu) {
			fmt.Fprintln(out, emu.Last.String())
		}
	}

	if emu.Halted {
		translate.Fprintln(out, "halted after %v cycles", emu.Cycles)
	}

	return
}

func run(emu *emulator.Emulator, args []string, out io.Writer) (quit bool, err error) {
	if len(args) != 0 {
		err = ErrArgument
		return
	}

	err = emu.Run()
	if err != nil {
		return
	}

	translate.Fprintln(out, "halted after %v cycles", emu.Cycles)
	return
}

func regs(emu *emulator.Emulator, args []string, out io.Writer) (quit bool, err error) {
	if len(args) != 0 {
		err = ErrArgument
		return
	}

	fmt.Fprint(out, emu.Registers.String())
	return
}

func mem(emu *emulator.Emulator, args []string, out io.Writer) (quit bool, err error) {
	if len(args) > 2 {
		err = ErrArgument
		return
	}

	addr, err := number(args, 0, int(emu.MAR), 16)
	if err != nil {
		return
	}
	count, err := number(args, 1, MEM_COUNT, 10)
	if err != nil {
		return
	}

	for n := range count {
		at := uint16(addr+n) % cpu.MEMORY_SIZE
		word := emu.Memory.Read(at)
		op := uint8(word>>cpu.OPCODE_SHIFT) & uint8(cpu.OPCODE_MASK)
		fmt.Fprintf(out, "%02x: %03x %3s %02x\n", at, word, cpu.OpcodeName(op), uint8(word))
	}

	return
}

func trace(emu *emulator.Emulator, args []string, out io.Writer) (quit bool, err error) {
	if len(args) != 1 {
		err = ErrArgument
		return
	}

	switch strings.ToLower(args[0]) {
	case "on":
		emu.Trace = &consoleTrace{Writer: out}
		fmt.Fprintln(out, cpu.TRACE_HEADER)
	case "off":
		emu.Trace = nil
	default:
		err = ErrArgument
	}

	return
}

func reset(emu *emulator.Emulator, args []string, out io.Writer) (quit bool, err error) {
	if len(args) != 0 {
		err = ErrArgument
		return
	}

	err = emu.Reset()
	return
}

func help(emu *emulator.Emulator, args []string, out io.Writer) (quit bool, err error) {
	for _, cmd := range cmdList {
		fmt.Fprintf(out, "%-6s %-14s %s\n", cmd.Name, cmd.Usage, translate.From(cmd.Help))
	}

	return
}

func quit(emu *emulator.Emulator, args []string, out io.Writer) (quit bool, err error) {
	quit = true
	return
}
