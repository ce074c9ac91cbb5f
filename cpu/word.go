package cpu

import (
	"fmt"
	"iter"
	"math/bits"
	"strings"
)

// Signal is one of the concurrent micro-operations of a control word.
// Signals are applied in ascending order within a cycle.
type Signal int

//go:generate go tool stringer -linecomment -type=Signal
const (
	SIG_IP = Signal(0)  // IP
	SIG_LP = Signal(1)  // LP
	SIG_EP = Signal(2)  // EP
	SIG_LM = Signal(3)  // LM
	SIG_R  = Signal(4)  // R
	SIG_W  = Signal(5)  // W
	SIG_LD = Signal(6)  // LD
	SIG_ED = Signal(7)  // ED
	SIG_LI = Signal(8)  // LI
	SIG_EI = Signal(9)  // EI
	SIG_LA = Signal(10) // LA
	SIG_EA = Signal(11) // EA
	SIG_A  = Signal(12) // A
	SIG_S  = Signal(13) // S
	SIG_EU = Signal(14) // EU
	SIG_LB = Signal(15) // LB
)

// SIGNAL_COUNT is the number of signals in a control word.
const SIGNAL_COUNT = 16

// Raw control word layout. Signal n lives at bit (WORD_SIGNAL_TOP - n).
const (
	WORD_BITS       = 24
	WORD_MASK       = uint32(1<<WORD_BITS) - 1
	WORD_SIGNAL_TOP = 23
	WORD_CD         = uint32(0x80) // Conditional dispatch on Neg.
	WORD_MAP        = uint32(0x40) // Map dispatch on IR opcode.
	WORD_HLT        = uint32(0x20) // Halt after this cycle.
	WORD_CRJA_MASK  = uint32(0x1f) // Literal next address.
)

// Destination returns the register selected by a load signal,
// or DEST_NONE if the signal is not a load.
func (sig Signal) Destination() Destination {
	switch sig {
	case SIG_LP:
		return DEST_PC
	case SIG_LM:
		return DEST_MAR
	case SIG_LD:
		return DEST_MDR
	case SIG_LI:
		return DEST_IR
	case SIG_LA:
		return DEST_ACC
	case SIG_LB:
		return DEST_B
	}

	return DEST_NONE
}

// Word is a decoded control word.
type Word struct {
	Signals uint16 // Bit n set when Signal(n) is active.
	Jump    uint8  // CRJA, the literal next micro-address.
	Halt    bool   // Latch Halted at the end of the cycle.
	Map     bool   // Next address from the address map.
	Cond    bool   // Next address is Jump if Neg, else sequential.
}

// MakeWord creates a control word with the given jump address and signals.
func MakeWord(jump uint8, sigs ...Signal) (word Word) {
	word.Jump = jump & uint8(WORD_CRJA_MASK)
	for _, sig := range sigs {
		word.Signals |= 1 << uint(sig)
	}
	return
}

// DecodeWord unpacks a raw control word. Bits above WORD_BITS are ignored.
func DecodeWord(raw uint32) (word Word) {
	for n := range SIGNAL_COUNT {
		if (raw>>(WORD_SIGNAL_TOP-n))&1 != 0 {
			word.Signals |= 1 << n
		}
	}
	word.Jump = uint8(raw & WORD_CRJA_MASK)
	word.Halt = (raw & WORD_HLT) != 0
	word.Map = (raw & WORD_MAP) != 0
	word.Cond = (raw & WORD_CD) != 0
	return
}

// Encode packs the control word into its raw form.
func (word Word) Encode() (raw uint32) {
	for n := range SIGNAL_COUNT {
		if (word.Signals>>n)&1 != 0 {
			raw |= 1 << (WORD_SIGNAL_TOP - n)
		}
	}
	raw |= uint32(word.Jump) & WORD_CRJA_MASK
	if word.Halt {
		raw |= WORD_HLT
	}
	if word.Map {
		raw |= WORD_MAP
	}
	if word.Cond {
		raw |= WORD_CD
	}
	return
}

// Has returns true if the signal is active in the word.
func (word Word) Has(sig Signal) bool {
	return (word.Signals>>uint(sig))&1 != 0
}

// Active iterates over the active signals, in execution order.
func (word Word) Active() iter.Seq[Signal] {
	return func(yield func(sig Signal) bool) {
		for n := range SIGNAL_COUNT {
			sig := Signal(n)
			if word.Has(sig) && !yield(sig) {
				return
			}
		}
	}
}

// Selects returns the number of load signals in the word.
func (word Word) Selects() (count int) {
	for sig := range word.Active() {
		if sig.Destination() != DEST_NONE {
			count++
		}
	}
	return
}

// Count of active signals.
func (word Word) Count() int {
	return bits.OnesCount16(word.Signals)
}

// String returns the micro-assembly representation of the word.
func (word Word) String() string {
	var parts []string
	for sig := range word.Active() {
		parts = append(parts, sig.String())
	}
	switch {
	case word.Map:
		parts = append(parts, "MAP")
	case word.Cond:
		parts = append(parts, fmt.Sprintf("CD %#02x", word.Jump))
	default:
		parts = append(parts, fmt.Sprintf("JUMP %#02x", word.Jump))
	}
	if word.Map && word.Cond {
		parts = append(parts, "CD")
	}
	if word.Halt {
		parts = append(parts, "HLT")
	}
	return strings.Join(parts, " ")
}
