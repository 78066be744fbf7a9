// Package isa describes the TigerCat machine: word geometry, instruction
// flags, opcodes and the register/condition-code lookup tables.
package isa

// Word geometry, in bits unless noted otherwise.
const (
	// WordBits is the width of one encoded instruction.
	WordBits = 32
	// WordBytes is the serialized size of one encoded instruction.
	WordBytes = WordBits / 8
	// OpcodeBits is the width of the opcode field.
	OpcodeBits = 5
	// WidthFlagBits is the width of the operand-width flag.
	WidthFlagBits = 1
	// ModeFlagBits is the width of the operand-mode flag.
	ModeFlagBits = 1
	// SingleRegisterBits is the width of a single-word register field.
	SingleRegisterBits = 4
	// DoubleRegisterBits is the width of a double-word register field.
	DoubleRegisterBits = 3
	// ConditionBits is the width of the jump condition field.
	ConditionBits = 4
	// SingleImmediateBits caps immediates of single-word instructions.
	SingleImmediateBits = 16
)

// Field positions within a word, counted from bit 0.
const (
	ShiftOpcode = WordBits - OpcodeBits
	ShiftWidth  = ShiftOpcode - WidthFlagBits
	ShiftMode   = ShiftWidth - ModeFlagBits
)

// Addressing. Addresses count 16-bit units, so one instruction occupies two.
const (
	// CodeStart is where the CPU fetches its first instruction.
	CodeStart uint32 = 0x0
	// InstructionSize is the address footprint of one encoded instruction.
	InstructionSize uint32 = WordBits / 16
	// UnitBytes is the number of bytes per address unit.
	UnitBytes = 2
)

// Width selects between the single-word and double-word register files.
type Width uint8

const (
	// Single is 16-bit data, encoded with a 0 flag.
	Single Width = iota
	// Double is 32-bit data, encoded with a 1 flag.
	Double
)

// Flag returns the bit stored in the width field.
func (w Width) Flag() uint32 {
	return uint32(w)
}

// RegisterBits returns the width of a register field for this data width.
func (w Width) RegisterBits() int {
	if w == Double {
		return DoubleRegisterBits
	}
	return SingleRegisterBits
}

// Suffix returns the mnemonic letter for the width.
func (w Width) Suffix() string {
	if w == Double {
		return "d"
	}
	return "w"
}

func (w Width) String() string {
	switch w {
	case Single:
		return "single"
	case Double:
		return "double"
	}
	return "invalid"
}

// Mode records whether the last operand is an immediate or a register.
type Mode uint8

const (
	// Immediate is encoded with a 0 flag.
	Immediate Mode = iota
	// Register is encoded with a 1 flag.
	Register
)

// Flag returns the bit stored in the mode field.
func (m Mode) Flag() uint32 {
	return uint32(m)
}

func (m Mode) String() string {
	if m == Register {
		return "register"
	}
	return "immediate"
}

// Opcode is the 5-bit operation number at the top of every word.
type Opcode uint8

// Opcodes.
const (
	// Control
	OPDEBUG Opcode = 0x07 // DEBUG
	OPJMP   Opcode = 0x0C // JMP (all conditions)

	// Shifts and conversion
	OPSSR   Opcode = 0x08 // SSR, signed shift right
	OPSUR   Opcode = 0x09 // SUR, unsigned shift right
	OPSL    Opcode = 0x0A // SL, shift left
	OPCONVS Opcode = 0x0B // CONVS, convert signed

	// Comparison
	OPCMP Opcode = 0x0E // CMP

	// Stack
	OPPUSH Opcode = 0x10 // PUSH
	OPPOP  Opcode = 0x11 // POP

	// Memory
	OPLOAD  Opcode = 0x14 // LOAD
	OPSTORE Opcode = 0x15 // STO

	// Arithmetic
	OPADD  Opcode = 0x18 // ADD
	OPADDC Opcode = 0x19 // ADDC, add with carry
	OPSUB  Opcode = 0x1A // SUB
	OPSUBC Opcode = 0x1B // SUBC, subtract with carry

	// Logical
	OPAND Opcode = 0x1C // AND
	OPOR  Opcode = 0x1D // OR
	OPXOR Opcode = 0x1E // XOR
	OPINV Opcode = 0x1F // INV
)

// Register names the assembler itself refers to.
const (
	// ZeroRegister always reads as zero.
	ZeroRegister = "zero"
	// InstructionPointer is the double-word program counter.
	InstructionPointer = "IP"
	// CompareSingle and CompareDouble are the throwaway destinations of CMP.
	CompareSingle = "r1l"
	CompareDouble = "ret1"
	// UnconditionalTrue and UnconditionalFalse are the always/never conditions.
	UnconditionalTrue  = "t"
	UnconditionalFalse = "f"
)

// HaltWord is appended after a program so the CPU stalls at the end.
const HaltWord uint32 = 0
