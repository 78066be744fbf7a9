package assembler

import (
	"fmt"

	"github.com/Urethramancer/tigercat/isa"
)

// ArgKind tells registers from immediates.
type ArgKind uint8

const (
	ArgRegister ArgKind = iota
	ArgImmediate
)

// Argument is one resolved operand.
type Argument struct {
	Kind ArgKind
	// Code is the register code or the immediate value.
	Code uint32
	// Bits is the field width of a register; immediates take what is left.
	Bits int
}

// Instruction is one machine operation, or a pseudo-operation and the
// instructions it expands to.
type Instruction struct {
	Kind     Kind
	Mnemonic string
	Opcode   isa.Opcode
	Width    isa.Width
	Mode     isa.Mode
	Args     []Argument
	// Children holds the expansion of a pseudo-instruction, in program order.
	Children []*Instruction

	encodable bool
	warnings  []string
}

// Encodable reports whether the instruction was built from resolved operands.
func (in *Instruction) Encodable() bool {
	return in.encodable
}

// Size returns the footprint in address units.
func (in *Instruction) Size() uint32 {
	if !in.Kind.Pseudo() {
		return isa.InstructionSize
	}
	var size uint32
	for _, c := range in.Children {
		size += c.Size()
	}
	return size
}

// Words returns the encoded machine words.
func (in *Instruction) Words() ([]uint32, error) {
	if !in.Encodable() {
		return nil, ErrStructureOnly
	}
	if !in.Kind.Pseudo() {
		w, err := in.word()
		if err != nil {
			return nil, err
		}
		return []uint32{w}, nil
	}

	var words []uint32
	for _, c := range in.Children {
		cw, err := c.Words()
		if err != nil {
			return nil, err
		}
		words = append(words, cw...)
	}
	return words, nil
}

// Encode returns the big-endian bytes of the instruction.
func (in *Instruction) Encode() ([]byte, error) {
	words, err := in.Words()
	if err != nil {
		return nil, err
	}
	return isa.WordsToBytes(words), nil
}

// Warnings returns hardware caveats noticed while building the instruction.
func (in *Instruction) Warnings() []string {
	out := append([]string(nil), in.warnings...)
	for _, c := range in.Children {
		out = append(out, c.Warnings()...)
	}
	return out
}

// word packs a real instruction. Registers fill from the top down; a trailing
// immediate is right-aligned in whatever bits remain.
func (in *Instruction) word() (uint32, error) {
	w := placeField(0, uint32(in.Opcode), isa.ShiftOpcode)
	w = placeField(w, in.Width.Flag(), isa.ShiftWidth)
	w = placeField(w, in.Mode.Flag(), isa.ShiftMode)

	shift := isa.ShiftMode
	for i, a := range in.Args {
		if a.Kind == ArgImmediate {
			if i != len(in.Args)-1 {
				return 0, &SyntaxError{Detail: "immediate must be the last operand"}
			}
			if err := in.checkImmediate(a.Code, shift); err != nil {
				return 0, err
			}
			w |= a.Code
			break
		}
		shift -= a.Bits
		w = placeField(w, a.Code, shift)
	}
	return w, nil
}

// checkImmediate validates v against the bits left in the word.
func (in *Instruction) checkImmediate(v uint32, remaining int) error {
	if !fits(v, remaining) {
		return &UnencodeableImmediateError{
			Detail: fmt.Sprintf("%s has %d bits left for it", in.Mnemonic, remaining),
			Value:  uint64(v),
		}
	}
	if in.Width == isa.Single && !fits(v, isa.SingleImmediateBits) {
		return &UnencodeableImmediateError{
			Detail: fmt.Sprintf("single-word immediates are limited to %d bits", isa.SingleImmediateBits),
			Value:  uint64(v),
		}
	}
	return nil
}

// Create builds the instruction for one tokenized source line. When encodable
// is false only the mnemonic, arity and width are checked, and the result is
// good for Size but not Encode. address is where the instruction will be placed.
func (asm *Assembler) Create(tokens []string, encodable bool, address uint32) (*Instruction, error) {
	if len(tokens) == 0 {
		return nil, &SyntaxError{Detail: "empty instruction"}
	}

	mn := tokens[0]
	kind, ok := matchKind(mn)
	if !ok {
		return nil, &InvalidOpcodeError{Text: mn}
	}

	operands := tokens[1:]
	if len(operands) != kind.Arity() {
		return nil, &ArgumentCountError{Mnemonic: mn, Expected: kind.Arity(), Actual: len(operands)}
	}

	info := &kindTable[kind]
	width, err := info.widthOf(mn)
	if err != nil {
		return nil, err
	}

	in := &Instruction{
		Kind:      kind,
		Mnemonic:  mn,
		Opcode:    info.opcode,
		Width:     width,
		encodable: encodable,
	}

	switch kind {
	// Arithmetic, shifts, plain logic, memory, stack and debug take their
	// operands as written.
	case KindAdd, KindAddC, KindSub, KindSubC, KindConvs,
		KindSSR, KindSUR, KindSL,
		KindAnd, KindOr, KindXor,
		KindLoad, KindStore,
		KindPush, KindPop,
		KindDebug:
		err = asm.bindOperands(in, operands)
	case KindCmp:
		err = asm.assembleCmp(in, operands)
	case KindInv:
		err = asm.assembleInv(in, operands)
	case KindJmp:
		err = asm.assembleJmp(in, operands)
	case KindMov:
		err = asm.assembleMov(in, operands)
	case KindCall:
		err = asm.assembleCall(in, operands, address)
	case KindRet:
		err = asm.assembleRet(in)
	case KindNoop:
		err = asm.assembleNoop(in)
	default:
		err = &InvalidOpcodeError{Text: mn}
	}
	if err != nil {
		return nil, err
	}
	return in, nil
}

// bindOperands syntax-checks the operands, sets the mode and builds the
// argument list after any leading arguments the variant injects.
func (asm *Assembler) bindOperands(in *Instruction, operands []string, leading ...Argument) error {
	if !in.encodable {
		return nil
	}
	if err := checkSyntax(operands); err != nil {
		return err
	}

	in.Mode = isa.Immediate
	if len(operands) > 0 && isRegister(operands[len(operands)-1]) {
		in.Mode = isa.Register
	}

	in.Args = append(make([]Argument, 0, len(leading)+len(operands)), leading...)
	for _, op := range operands {
		a, err := asm.parseOperand(op, in.Width)
		if err != nil {
			return err
		}
		in.Args = append(in.Args, a)
	}
	return nil
}

// expand builds the children of a pseudo-instruction from token lists.
func (asm *Assembler) expand(in *Instruction, address uint32, lines ...[]string) error {
	in.Children = make([]*Instruction, 0, len(lines))
	for _, tokens := range lines {
		c, err := asm.Create(tokens, in.encodable, address)
		if err != nil {
			return err
		}
		in.Children = append(in.Children, c)
		address += c.Size()
	}
	return nil
}
