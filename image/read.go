package image

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/ezrec/eckert/cpu"
)

// scanHex calls store with each hexadecimal value of the input, one per line.
// Blank lines are skipped. Scanning stops early when store returns false.
func scanHex(r io.Reader, bits int, limit int, store func(index int, value uint64) bool) (err error) {
	scanner := bufio.NewScanner(r)

	var lineno int
	defer func() {
		if err != nil {
			err = &ErrLine{LineNo: lineno, Err: err}
		}
	}()

	index := 0
	for scanner.Scan() {
		lineno++
		text := strings.TrimSpace(scanner.Text())
		if len(text) == 0 {
			continue
		}

		var value uint64
		value, err = strconv.ParseUint(text, 16, 32)
		if err != nil {
			err = ErrValueSyntax
			return
		}
		if value >= (1 << bits) {
			err = ErrValueRange
			return
		}
		if index >= limit {
			err = ErrTooLong
			return
		}

		if !store(index, value) {
			return
		}
		index++
	}

	err = scanner.Err()
	return
}

// ReadMemory reads a main memory image, one 12-bit word per line.
// Loading stops after the end-of-program word.
func ReadMemory(r io.Reader) (mem cpu.Memory, err error) {
	err = scanHex(r, cpu.WORD_WIDTH, cpu.MEMORY_SIZE, func(index int, value uint64) bool {
		mem[index] = uint16(value)
		return mem[index] != cpu.END_OF_PROGRAM
	})
	return
}

// ReadAddressMap reads the opcode to micro-address map, one entry per line.
func ReadAddressMap(r io.Reader) (addr [cpu.MAP_SIZE]uint8, err error) {
	err = scanHex(r, 5, cpu.MAP_SIZE, func(index int, value uint64) bool {
		addr[index] = uint8(value)
		return true
	})
	return
}

// ReadControl reads the control store, one 24-bit control word per line.
func ReadControl(r io.Reader) (control [cpu.CONTROL_SIZE]uint32, err error) {
	err = scanHex(r, cpu.WORD_BITS, cpu.CONTROL_SIZE, func(index int, value uint64) bool {
		control[index] = uint32(value)
		return true
	})
	return
}
