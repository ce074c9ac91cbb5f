package cpu

const (
	CONTROL_SIZE = 32                      // Words in the control store.
	CONTROL_MASK = uint8(CONTROL_SIZE - 1) // Mask of a micro-address.
	MAP_SIZE     = OPCODE_COUNT            // Entries in the address map.
)

// Microprogram is the control store and the opcode to micro-address map.
// It is not modified by execution.
type Microprogram struct {
	Control    [CONTROL_SIZE]uint32 // Raw control words.
	AddressMap [MAP_SIZE]uint8      // Micro-routine entry point per opcode.
}

// Fetch decodes the control word at a micro-address.
func (mp *Microprogram) Fetch(addr uint8) Word {
	return DecodeWord(mp.Control[addr&CONTROL_MASK])
}

// MapAddress returns the micro-routine entry point of an opcode.
func (mp *Microprogram) MapAddress(opcode uint8) uint8 {
	return mp.AddressMap[opcode&uint8(OPCODE_MASK)] & CONTROL_MASK
}

// Store encodes a control word at a micro-address.
func (mp *Microprogram) Store(addr uint8, word Word) {
	mp.Control[addr&CONTROL_MASK] = word.Encode()
}
