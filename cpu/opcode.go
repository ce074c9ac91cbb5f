package cpu

// Machine instruction opcodes, as used by the conventional micro-programs.
// The engine itself only looks at the opcode field for map dispatch.
const (
	OP_FET = uint8(0x0) // Fetch (micro-routine entry, not an instruction).
	OP_LDA = uint8(0x1) // ACC := M[ref]
	OP_STA = uint8(0x2) // M[ref] := ACC
	OP_ADD = uint8(0x3) // ACC := ACC + M[ref]
	OP_SUB = uint8(0x4) // ACC := ACC - M[ref]
	OP_MBA = uint8(0x5) // B := ACC
	OP_JMP = uint8(0x6) // PC := ref
	OP_JN  = uint8(0x7) // PC := ref if Neg
	OP_HLT = uint8(0x8) // Halt
)

// OPCODE_COUNT is the number of distinct opcodes.
const OPCODE_COUNT = 16

// END_OF_PROGRAM is the halt word that terminates a memory image.
const END_OF_PROGRAM = uint16(OP_HLT) << OPCODE_SHIFT

var opcodeNames = [OPCODE_COUNT]string{
	"fet", "lda", "sta", "add", "sub", "mba", "jmp", "jn",
	"hlt", "hlt", "hlt", "hlt", "hlt", "hlt", "hlt", "hlt",
}

// OpcodeName returns the mnemonic of an opcode.
func OpcodeName(op uint8) string {
	return opcodeNames[op&uint8(OPCODE_MASK)]
}

// OpcodeValue returns the opcode of a mnemonic.
// Unused opcodes all share the "hlt" name; the first one is returned.
func OpcodeValue(name string) (op uint8, ok bool) {
	for n, opname := range opcodeNames {
		if opname == name {
			return uint8(n), true
		}
	}
	return
}

// MakeInstruction packs an opcode and reference into a memory word.
func MakeInstruction(op uint8, ref uint8) uint16 {
	return (uint16(op)&OPCODE_MASK)<<OPCODE_SHIFT | uint16(ref)
}
