// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package cpu

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// Microword is a line of assembled micro-code with its source location.
type Microword struct {
	LineNo    int      // Source line.
	Address   uint8    // Micro-address of the word.
	Words     []string // Source words, after expansion.
	Raw       uint32   // Encoded control word.
	LinkLabel string   // Jump target to resolve at link time.
}

// Predefined system equates
var sysEquate = map[string]string{
	"LINENO":       "0",
	"CONTROL_SIZE": fmt.Sprintf("%d", CONTROL_SIZE),
	"MAP_SIZE":     fmt.Sprintf("%d", MAP_SIZE),
	"MEMORY_SIZE":  fmt.Sprintf("%d", MEMORY_SIZE),
}

// signalMap maps upper-case signal names to signals.
var signalMap = func() map[string]Signal {
	sigs := make(map[string]Signal, SIGNAL_COUNT)
	for n := range SIGNAL_COUNT {
		sig := Signal(n)
		sigs[sig.String()] = sig
	}
	return sigs
}()

// Assembler is a single pass micro-assembler with a final link of jump labels.
//
// Each source line assembles to one control word:
//
//	fetch:  EP LM
//	        R ED LI IP MAP
//	lda:    EI LM
//	        R ED LA jump fetch
//	        .map lda lda
//
// Words without an explicit 'jump', 'cd' or 'map' continue to the next
// micro-address.
type Assembler struct {
	Verbose bool        // If set, verbosely logs the assembler actions.
	Listing []Microword // List of assembled control words.

	predefine map[string]string // Predefines
	Label     map[string]int    // Map of labels to micro-addresses.
	Equate    map[string]string // Map of equates.
	MapLabel  map[uint8]string  // Map of opcodes to their entry labels.

	addressMap [MAP_SIZE]uint8
	mapped     [MAP_SIZE]bool
	mapLine    [MAP_SIZE]int
	origin     int
	used       [CONTROL_SIZE]bool
}

// Predefine defines a new equate or redefines an existing equate.
func (asm *Assembler) Predefine(equ string, value string) {
	if asm.predefine == nil {
		asm.predefine = map[string]string{equ: value}
	} else {
		asm.predefine[equ] = value
	}
}

// valueOf returns the value of a simple word.
func (asm *Assembler) valueOf(word string) (value int, err error) {
	v64, err := strconv.ParseInt(word, 0, 64)
	if err != nil {
		err = ErrParseNumber(word)
		return
	}

	value = int(v64)
	return
}

// addressOf returns a micro-address literal, checking its range.
func (asm *Assembler) addressOf(word string) (addr uint8, err error) {
	value, err := asm.valueOf(word)
	if err != nil {
		return
	}
	if value < 0 || value >= CONTROL_SIZE {
		err = ErrAddressRange
		return
	}

	addr = uint8(value)
	return
}

// parenEval does compile-time $(...) evaluations
func (asm *Assembler) parenEval(expr string) (value int, err error) {
	thread := starlark.Thread{}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, str := range asm.Equate {
		var v int
		v, err = asm.valueOf(str)
		if err != nil {
			// Ignore non-integer equates.
			err = nil
			continue
		}
		pred[key] = starlark.MakeInt(v)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		return
	}
	st_rc, ok := dict["rc"]
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := st_rc.(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// splitLine expands $() expressions and equates, and splits a line into words.
func (asm *Assembler) splitLine(line string, lineno int) (words []string, err error) {
	asm.Equate["LINENO"] = fmt.Sprintf("%v", lineno)

	re := regexp.MustCompile(`\$\([^\$]*\)`)
	line = re.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := asm.parenEval(str[2 : len(str)-1])
		if _err != nil {
			err = _err
		}
		return fmt.Sprintf("%#x", value)
	})
	if err != nil {
		return
	}

	words = strings.Fields(line)

	// .equ names are not substituted.
	start := 0
	if len(words) > 0 && words[0] == ".equ" {
		start = 2
	}
	for n := start; n < len(words); n++ {
		equate, ok := asm.Equate[words[n]]
		if ok {
			words[n] = equate
		}
	}

	return
}

// Parse parses an input stream into a Microprogram.
func (asm *Assembler) Parse(input io.Reader) (prog *Microprogram, err error) {
	scanner := bufio.NewScanner(input)

	var line string
	var lineno int

	defer func() {
		if err != nil {
			err = &ErrSyntax{LineNo: lineno, Line: line, Err: err}
		}
	}()

	asm.Listing = asm.Listing[:0]
	asm.Label = make(map[string]int)
	asm.MapLabel = make(map[uint8]string)
	asm.Equate = maps.Clone(sysEquate)
	for attr, val := range asm.predefine {
		asm.Equate[attr] = val
	}
	clear(asm.addressMap[:])
	clear(asm.mapped[:])
	clear(asm.mapLine[:])
	clear(asm.used[:])
	asm.origin = 0

	for scanner.Scan() {
		text := scanner.Text()
		lineno += 1

		if asm.Verbose {
			log.Printf("%v: %v\n", lineno, text)
		}

		line = strings.TrimSpace(strings.Split(text, ";")[0])

		var words []string
		words, err = asm.splitLine(line, lineno)
		if err != nil {
			return
		}

		err = asm.parseWords(words, lineno)
		if err != nil {
			return
		}
	}

	err = scanner.Err()
	if err != nil {
		return
	}

	// Past the last line; errors are reported against the referencing line.
	line = ""

	prog, err = asm.link(&lineno, &line)
	return
}

// link resolves jump labels and map entries, and builds the Microprogram.
func (asm *Assembler) link(lineno *int, line *string) (prog *Microprogram, err error) {
	prog = &Microprogram{}

	for n := range asm.Listing {
		mw := &asm.Listing[n]
		if len(mw.LinkLabel) != 0 {
			addr, ok := asm.Label[mw.LinkLabel]
			if !ok {
				*lineno = mw.LineNo
				*line = strings.Join(mw.Words, " ")
				err = ErrLabelMissing(mw.LinkLabel)
				return
			}
			if addr >= CONTROL_SIZE {
				*lineno = mw.LineNo
				*line = strings.Join(mw.Words, " ")
				err = ErrAddressRange
				return
			}
			mw.Raw = (mw.Raw & ^WORD_CRJA_MASK) | (uint32(addr) & WORD_CRJA_MASK)
		}
		prog.Control[mw.Address] = mw.Raw
	}

	prog.AddressMap = asm.addressMap
	for _, op := range slices.Sorted(maps.Keys(asm.MapLabel)) {
		label := asm.MapLabel[op]
		addr, ok := asm.Label[label]
		if !ok {
			*lineno = asm.mapLine[op]
			*line = fmt.Sprintf(".map %v %v", OpcodeName(op), label)
			err = ErrLabelMissing(label)
			return
		}
		if addr >= CONTROL_SIZE {
			*lineno = asm.mapLine[op]
			*line = fmt.Sprintf(".map %v %v", OpcodeName(op), label)
			err = ErrAddressRange
			return
		}
		prog.AddressMap[op] = uint8(addr)
	}

	return
}

// parseWords assembles the words of a single line.
func (asm *Assembler) parseWords(words []string, lineno int) (err error) {
	if len(words) == 0 {
		return
	}

	// .equ NAME VALUE
	if words[0] == ".equ" {
		if len(words) != 3 {
			err = ErrEquateSyntax
			return
		}
		_, ok := asm.Equate[words[1]]
		if ok {
			err = ErrEquateDuplicate
			return
		}
		asm.Equate[words[1]] = words[2]
		return
	}

	for strings.HasSuffix(words[0], ":") {
		label := words[0][:len(words[0])-1]
		_, ok := asm.Label[label]
		if ok {
			err = ErrLabelDuplicate
			return
		}
		asm.Label[label] = asm.origin
		words = words[1:]
		if len(words) == 0 {
			return
		}
	}

	switch words[0] {
	case ".org":
		if len(words) != 2 {
			err = ErrOrgSyntax
			return
		}
		var addr uint8
		addr, err = asm.addressOf(words[1])
		if err != nil {
			return
		}
		asm.origin = int(addr)
		return
	case ".map":
		if len(words) != 3 {
			err = ErrMapSyntax
			return
		}
		op, ok := OpcodeValue(strings.ToLower(words[1]))
		if !ok {
			var value int
			value, err = asm.valueOf(words[1])
			if err != nil || value < 0 || value >= MAP_SIZE {
				err = ErrOpcodeInvalid
				return
			}
			op = uint8(value)
		}
		if asm.mapped[op] {
			err = ErrMapDuplicate
			return
		}
		asm.mapped[op] = true
		addr, addr_err := asm.addressOf(words[2])
		switch {
		case addr_err == nil:
			asm.addressMap[op] = addr
		case errors.Is(addr_err, ErrAddressRange):
			err = addr_err
		default:
			asm.MapLabel[op] = words[2]
			asm.mapLine[op] = lineno
		}
		return
	case ".word":
		if len(words) != 2 {
			err = ErrWordSyntax
			return
		}
		var value int
		value, err = asm.valueOf(words[1])
		if err != nil {
			return
		}
		if value < 0 || value > int(WORD_MASK) {
			err = ErrWordSyntax
			return
		}
		err = asm.emit(Microword{LineNo: lineno, Words: words, Raw: uint32(value)})
		return
	}

	var word Word
	var label string
	jumped := false

	for n := 0; n < len(words); n++ {
		token := strings.ToUpper(words[n])
		sig, is_sig := signalMap[token]
		switch {
		case is_sig:
			if word.Has(sig) {
				err = ErrSignalDuplicate
				return
			}
			word.Signals |= 1 << uint(sig)
		case token == "MAP":
			word.Map = true
		case token == "HLT" || token == "HALT":
			word.Halt = true
		case token == "JUMP" || token == "CD":
			if jumped {
				err = ErrTargetDuplicate
				return
			}
			jumped = true
			word.Cond = token == "CD"
			if n+1 >= len(words) {
				err = ErrTargetMissing
				return
			}
			n++
			target := words[n]
			addr, addr_err := asm.addressOf(target)
			switch {
			case addr_err == nil:
				word.Jump = addr
			case errors.Is(addr_err, ErrAddressRange):
				err = addr_err
				return
			default:
				label = target
			}
		default:
			err = ErrTokenInvalid
			return
		}
	}

	if !jumped && !word.Map {
		// Fall through to the next micro-address.
		word.Jump = uint8(asm.origin+1) & CONTROL_MASK
	}

	err = asm.emit(Microword{LineNo: lineno, Words: words, Raw: word.Encode(), LinkLabel: label})
	return
}

// emit places an assembled word at the current origin.
func (asm *Assembler) emit(mw Microword) (err error) {
	if asm.origin >= CONTROL_SIZE {
		err = ErrControlFull
		return
	}
	if asm.used[asm.origin] {
		err = ErrAddressDuplicate
		return
	}

	mw.Address = uint8(asm.origin)
	asm.used[asm.origin] = true
	asm.origin++
	asm.Listing = append(asm.Listing, mw)

	if asm.Verbose {
		log.Printf("%02x: %06x %v", mw.Address, mw.Raw, DecodeWord(mw.Raw))
	}

	return
}
