// Package image loads and saves the text images of a machine: main memory,
// the opcode address map and the control store.
//
// Each image is a text file with one hexadecimal value per line:
//
//	ram.txt    12-bit memory words, up to and including the 800 word
//	addr.txt   micro-address (0-1f) of each opcode's routine
//	uprog.txt  24-bit control words
package image

import (
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/ezrec/eckert/cpu"
)

const (
	RAM_FILE   = "ram.txt"   // Main memory image.
	ADDR_FILE  = "addr.txt"  // Opcode address map.
	UPROG_FILE = "uprog.txt" // Control store.
)

// Image is the initial state of a machine.
type Image struct {
	Memory  cpu.Memory       // Initial main memory.
	Program cpu.Microprogram // Control store and address map.
}

type openFunc func(name string) (fs.File, error)

// load reads a single image file.
func load(open openFunc, name string, read func(r io.Reader) error) (err error) {
	file, err := open(name)
	if err != nil {
		return
	}
	defer file.Close()

	err = read(file)
	var el *ErrLine
	if errors.As(err, &el) {
		el.Name = name
	}

	return
}

func loadImage(open openFunc, ram, addr, uprog string) (img *Image, err error) {
	img = &Image{}

	err = load(open, ram, func(r io.Reader) (err error) {
		img.Memory, err = ReadMemory(r)
		return
	})
	if err != nil {
		return
	}

	err = load(open, addr, func(r io.Reader) (err error) {
		img.Program.AddressMap, err = ReadAddressMap(r)
		return
	})
	if err != nil {
		return
	}

	err = load(open, uprog, func(r io.Reader) (err error) {
		img.Program.Control, err = ReadControl(r)
		return
	})
	if err != nil {
		return
	}

	return
}

// Unmarshal reads ram.txt, addr.txt and uprog.txt from a file system.
func Unmarshal(fsys fs.FS) (img *Image, err error) {
	return loadImage(fsys.Open, RAM_FILE, ADDR_FILE, UPROG_FILE)
}

// Open reads an image from explicit file paths.
func Open(ram, addr, uprog string) (img *Image, err error) {
	return loadImage(func(name string) (fs.File, error) {
		return os.Open(name)
	}, ram, addr, uprog)
}

// create writes a single image file.
func create(filesys CreateFS, name string, write func(w io.Writer) error) (err error) {
	file, err := filesys.Create(name)
	if err != nil {
		return
	}

	err = write(file)
	cerr := file.Close()
	if err == nil {
		err = cerr
	}

	return
}

// MarshalProgram writes addr.txt and uprog.txt to a file system.
func MarshalProgram(filesys CreateFS, prog *cpu.Microprogram) (err error) {
	err = create(filesys, ADDR_FILE, func(w io.Writer) error {
		return WriteAddressMap(w, prog)
	})
	if err != nil {
		return
	}

	err = create(filesys, UPROG_FILE, func(w io.Writer) error {
		return WriteControl(w, prog)
	})
	return
}

// Marshal writes ram.txt, addr.txt and uprog.txt to a file system.
func (img *Image) Marshal(filesys CreateFS) (err error) {
	err = create(filesys, RAM_FILE, func(w io.Writer) error {
		return WriteMemory(w, &img.Memory)
	})
	if err != nil {
		return
	}

	err = MarshalProgram(filesys, &img.Program)
	return
}
