// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/profile"
	"golang.org/x/text/language"

	"github.com/ezrec/eckert/cpu"
	"github.com/ezrec/eckert/emulator"
	"github.com/ezrec/eckert/image"
	"github.com/ezrec/eckert/monitor"
	"github.com/ezrec/eckert/translate"
)

// loadImage reads the machine image from explicit paths, or from a directory.
func loadImage(dir string, ram string, addr string, uprog string) (img *image.Image, err error) {
	if len(ram) == 0 && len(addr) == 0 && len(uprog) == 0 {
		return image.Unmarshal(os.DirFS(dir))
	}

	pick := func(path string, name string) string {
		if len(path) == 0 {
			return filepath.Join(dir, name)
		}
		return path
	}

	return image.Open(pick(ram, image.RAM_FILE), pick(addr, image.ADDR_FILE), pick(uprog, image.UPROG_FILE))
}

// loadMemory reads only the memory image, for use with a compiled microprogram.
func loadMemory(dir string, ram string) (mem cpu.Memory, err error) {
	if len(ram) == 0 {
		ram = filepath.Join(dir, image.RAM_FILE)
	}

	inf, err := os.Open(ram)
	if err != nil {
		return
	}
	defer inf.Close()

	mem, err = image.ReadMemory(inf)
	if err != nil {
		err = fmt.Errorf("%v: %w", ram, err)
	}
	return
}

// compile assembles a microprogram source file.
func compile(path string, emu *emulator.Emulator, verbose bool) (prog *cpu.Microprogram, err error) {
	inf, err := os.Open(path)
	if err != nil {
		return
	}
	defer inf.Close()

	asm := &cpu.Assembler{Verbose: verbose}
	for name, value := range emu.Defines() {
		asm.Predefine(name, value)
	}

	prog, err = asm.Parse(inf)
	return
}

// dump writes the three image tables.
func dump(w io.Writer, img *image.Image) (err error) {
	translate.Fprintln(w, "MEMORY")
	err = image.DumpMemory(w, &img.Memory)
	if err != nil {
		return
	}

	translate.Fprintln(w, "\nADDRESS MAP")
	err = image.DumpAddressMap(w, &img.Program)
	if err != nil {
		return
	}

	translate.Fprintln(w, "\nCONTROL STORE")
	err = image.DumpControl(w, &img.Program)
	if err != nil {
		return
	}

	_, err = fmt.Fprintln(w)
	return
}

// options are the command line settings.
type options struct {
	source      string
	dir         string
	ram         string
	addr        string
	uprog       string
	save        bool
	quiet       bool
	tracePath   string
	limit       int
	check       bool
	interactive bool
	verbose     bool
	profiling   bool
}

var ErrSaveWithoutCompile = errors.New(translate.From("-s requires -c"))

// validate rejects conflicting options.
func (opts *options) validate() (err error) {
	if opts.save && len(opts.source) == 0 {
		err = ErrSaveWithoutCompile
		return
	}

	return
}

// run executes the options, and returns the process exit code.
// Deferred cleanup always runs before the code is returned.
func run(opts *options) (code int) {
	fail := func(err error) int {
		log.Print(err)
		return 1
	}

	if opts.profiling {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}

	emu := emulator.NewEmulator(nil)
	emu.Verbose = opts.verbose
	emu.CycleLimit = opts.limit

	if len(opts.source) != 0 {
		prog, err := compile(opts.source, emu, opts.verbose)
		if err != nil {
			return fail(fmt.Errorf("%v: %w", opts.source, err))
		}
		emu.Image.Program = *prog

		if opts.save {
			err = image.MarshalProgram(image.DirFS(opts.dir), prog)
			if err != nil {
				return fail(fmt.Errorf("%v: %w", opts.dir, err))
			}
			return
		}

		if !opts.check {
			emu.Image.Memory, err = loadMemory(opts.dir, opts.ram)
			if err != nil {
				return fail(err)
			}
		}
	} else {
		img, err := loadImage(opts.dir, opts.ram, opts.addr, opts.uprog)
		if err != nil {
			return fail(err)
		}
		emu.Image = img
	}

	if opts.check {
		warnings := emu.Image.Program.Check()
		for _, warn := range warnings {
			fmt.Fprintln(os.Stderr, warn)
		}
		if len(warnings) != 0 {
			code = 1
		}
		return
	}

	if !opts.quiet {
		err := dump(os.Stdout, emu.Image)
		if err != nil {
			return fail(err)
		}
	}

	switch opts.tracePath {
	case "":
	case "-":
		emu.Trace = os.Stdout
	default:
		ouf, err := os.Create(opts.tracePath)
		if err != nil {
			return fail(fmt.Errorf("%v: %w", opts.tracePath, err))
		}
		bw := bufio.NewWriter(ouf)
		defer func() {
			err := errors.Join(bw.Flush(), ouf.Close())
			if err != nil && code == 0 {
				code = fail(fmt.Errorf("%v: %w", opts.tracePath, err))
			}
		}()
		emu.Trace = bw
	}

	err := emu.Reset()
	if err != nil {
		return fail(err)
	}

	if opts.interactive {
		err = monitor.Console(emu)
	} else {
		err = emu.Run()
	}
	if err != nil {
		return fail(err)
	}

	if opts.verbose && !opts.interactive {
		translate.Fprintf(os.Stderr, "halted after %v cycles\n", emu.Cycles)
	}

	return
}

func main() {
	opts := &options{}
	var lang string

	flag.StringVar(&opts.source, "c", "", "micro-assembly file to compile")
	flag.StringVar(&opts.dir, "d", ".", "directory of ram.txt, addr.txt and uprog.txt")
	flag.StringVar(&opts.ram, "ram", "", "memory image file")
	flag.StringVar(&opts.addr, "addr", "", "address map file")
	flag.StringVar(&opts.uprog, "uprog", "", "control store file")
	flag.BoolVar(&opts.save, "s", false, "Save compiled address map and control store to -d, do not execute (requires -c)")
	flag.BoolVar(&opts.quiet, "q", false, "Do not print the image tables")
	flag.StringVar(&opts.tracePath, "t", "-", "Trace output ('-' for stdout, empty for none)")
	flag.IntVar(&opts.limit, "limit", emulator.CYCLE_LIMIT, "Cycle limit (0 for none)")
	flag.BoolVar(&opts.check, "check", false, "Check the control store, do not execute")
	flag.BoolVar(&opts.interactive, "i", false, "Interactive monitor")
	flag.BoolVar(&opts.verbose, "v", false, "Verbose mode")
	flag.BoolVar(&opts.profiling, "profile", false, "Write a CPU profile")
	flag.StringVar(&lang, "lang", "", "Message language (BCP 47 tag)")

	flag.Parse()

	if len(lang) != 0 {
		tag, err := language.Parse(lang)
		if err != nil {
			log.Fatalf("%v: %v", lang, err)
		}
		translate.SetLanguage(tag)
	}

	switch flag.NArg() {
	case 0:
	case 3:
		opts.ram, opts.addr, opts.uprog = flag.Arg(0), flag.Arg(1), flag.Arg(2)
	default:
		log.Fatalf("%v: Unknown arguments: %v", os.Args[0], flag.Args())
	}

	err := opts.validate()
	if err != nil {
		log.Fatalf("%v: %v", os.Args[0], err)
	}

	os.Exit(run(opts))
}
