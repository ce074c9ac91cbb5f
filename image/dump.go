package image

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/ezrec/eckert/cpu"
	"github.com/ezrec/eckert/translate"
)

const (
	MEMORY_RULE  = 45
	MAP_RULE     = 25
	CONTROL_RULE = 77
)

// rule writes a horizontal rule of n characters.
func rule(w io.Writer, n int) {
	fmt.Fprintln(w, strings.Repeat("=", n))
}

// DumpMemory writes the memory table, up to and including the end-of-program word.
func DumpMemory(w io.Writer, mem *cpu.Memory) (err error) {
	bw := bufio.NewWriter(w)

	rule(bw, MEMORY_RULE)
	translate.Fprintln(bw, "ADDR\t|\tOPCODE\t|\tREF\t\t|\tRAW\t\t|")
	rule(bw, MEMORY_RULE)
	for addr, word := range mem {
		op := uint8(word>>cpu.OPCODE_SHIFT) & uint8(cpu.OPCODE_MASK)
		fmt.Fprintf(bw, "%03x:\t|\t%3s\t\t|\t %2x\t\t|\t%03x\t\t|\n", addr, cpu.OpcodeName(op), uint8(word), word)
		if word == cpu.END_OF_PROGRAM {
			break
		}
	}
	rule(bw, MEMORY_RULE)

	return bw.Flush()
}

// DumpAddressMap writes the opcode address map table.
func DumpAddressMap(w io.Writer, prog *cpu.Microprogram) (err error) {
	bw := bufio.NewWriter(w)

	rule(bw, MAP_RULE)
	translate.Fprintln(bw, "OPC\t|\tCTRL ADDR\t|")
	rule(bw, MAP_RULE)
	for op, addr := range prog.AddressMap {
		fmt.Fprintf(bw, "%3s\t|\t%02x\t\t\t|\n", cpu.OpcodeName(uint8(op)), addr)
	}
	rule(bw, MAP_RULE)

	return bw.Flush()
}

// controlColumns are the vertical column labels of the flag grid.
var controlColumns = func() (rows [3]string) {
	names := make([]string, 0, cpu.SIGNAL_COUNT+3)
	for n := range cpu.SIGNAL_COUNT {
		names = append(names, cpu.Signal(n).String())
	}
	names = append(names, "CD", "MAP", "HLT")

	for row := range rows {
		var line strings.Builder
		for _, name := range names {
			// Labels are bottom aligned.
			n := row - (len(rows) - len(name))
			if n >= 0 {
				line.WriteByte(name[n])
			} else {
				line.WriteByte(' ')
			}
			line.WriteByte(' ')
		}
		rows[row] = strings.TrimRight(line.String(), " ")
	}
	return
}()

// DumpControl writes the control store table, with an X for each set bit
// of the signal and flag columns, and the CRJA bits.
func DumpControl(w io.Writer, prog *cpu.Microprogram) (err error) {
	bw := bufio.NewWriter(w)

	rule(bw, CONTROL_RULE)
	for row, labels := range controlColumns {
		first := "    \t|\t      "
		last := "    "
		if row == len(controlColumns)-1 {
			first = translate.From("ADDR\t|\tRAW   ")
			last = "CRJA"
		}
		fmt.Fprintf(bw, "%s\t|\t%-37s\t|\t%s\t|\n", first, labels, last)
	}
	rule(bw, CONTROL_RULE)
	for addr, raw := range prog.Control {
		fmt.Fprintf(bw, "%02x\t\t|\t%06x\t|\t", addr, raw)
		for bit := cpu.WORD_SIGNAL_TOP; bit > cpu.WORD_SIGNAL_TOP-cpu.SIGNAL_COUNT-3; bit-- {
			if (raw>>bit)&1 != 0 {
				bw.WriteString("X ")
			} else {
				bw.WriteString("  ")
			}
		}
		fmt.Fprintf(bw, "\t|\t%05b\t|\n", raw&cpu.WORD_CRJA_MASK)
	}
	rule(bw, CONTROL_RULE)

	return bw.Flush()
}
