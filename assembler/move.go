package assembler

import (
	"fmt"

	"github.com/Urethramancer/tigercat/isa"
)

// assembleMov expands the MOV pseudo-instruction for its width.
func (asm *Assembler) assembleMov(in *Instruction, operands []string) error {
	if in.Width == isa.Double {
		return asm.assembleMovd(in, operands)
	}
	return asm.assembleMovw(in, operands)
}

// --- MOVW ---

// movw dst src → addw dst %zero src
func (asm *Assembler) assembleMovw(in *Instruction, operands []string) error {
	dst, src := operands[0], operands[1]
	return asm.expand(in, 0, []string{"addw", dst, registerSigil + isa.ZeroRegister, src})
}

// --- MOVD ---

// movd dst %src → addd dst %src $0x0
// movd dst $imm → movw <dst low half> $lo16, movw <dst high half> $hi16
func (asm *Assembler) assembleMovd(in *Instruction, operands []string) error {
	dst, src := operands[0], operands[1]
	if isRegister(src) {
		return asm.expand(in, 0, []string{"addd", dst, src, formatImmediate(0)})
	}

	if !in.encodable {
		// The source may still be a label; only the footprint matters here.
		placeholder := []string{"movw", registerSigil + isa.CompareSingle, formatImmediate(0)}
		return asm.expand(in, 0, placeholder, placeholder)
	}

	if err := checkSyntax(operands); err != nil {
		return err
	}
	value, err := parseImmediate(src)
	if err != nil {
		return err
	}

	name := dst[len(registerSigil):]
	if _, err := asm.register(name, isa.Double); err != nil {
		return err
	}
	low, high, ok := halfRegisters(name)
	if !ok {
		return &SyntaxError{Detail: fmt.Sprintf("register '%s' has no single-word halves to load an immediate into", dst)}
	}

	return asm.expand(in, 0,
		[]string{"movw", registerSigil + low, formatImmediate(value & 0xFFFF)},
		[]string{"movw", registerSigil + high, formatImmediate(value >> 16)},
	)
}
