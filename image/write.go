package image

import (
	"bufio"
	"fmt"
	"io"

	"github.com/ezrec/eckert/cpu"
)

// WriteMemory writes memory up to and including the end-of-program word.
func WriteMemory(w io.Writer, mem *cpu.Memory) (err error) {
	bw := bufio.NewWriter(w)
	for _, word := range mem {
		fmt.Fprintf(bw, "%03x\n", word)
		if word == cpu.END_OF_PROGRAM {
			break
		}
	}

	return bw.Flush()
}

// WriteAddressMap writes the opcode address map.
func WriteAddressMap(w io.Writer, prog *cpu.Microprogram) (err error) {
	bw := bufio.NewWriter(w)
	for _, addr := range prog.AddressMap {
		fmt.Fprintf(bw, "%02x\n", addr)
	}

	return bw.Flush()
}

// WriteControl writes the control store.
func WriteControl(w io.Writer, prog *cpu.Microprogram) (err error) {
	bw := bufio.NewWriter(w)
	for _, raw := range prog.Control {
		fmt.Fprintf(bw, "%06x\n", raw)
	}

	return bw.Flush()
}
