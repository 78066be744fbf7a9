package assembler

import (
	"github.com/Urethramancer/tigercat/isa"
)

// returnOffset is how far past a CALL execution resumes: the push and the jump.
const returnOffset = 2 * isa.InstructionSize

// JMP

// The condition is the mnemonic suffix, "jmpge" → "ge", and is encoded as a
// leading 4-bit field ahead of the target.
func (asm *Assembler) assembleJmp(in *Instruction, operands []string) error {
	suffix := in.Mnemonic[len(kindTable[KindJmp].name):]
	code, ok := asm.lookup.Condition(suffix)
	if !ok {
		return &InvalidOpcodeError{Text: in.Mnemonic}
	}
	cond := Argument{Kind: ArgRegister, Code: code, Bits: isa.ConditionBits}
	return asm.bindOperands(in, operands, cond)
}

// CALL

// call target → pushd $<return address>, jmp target
func (asm *Assembler) assembleCall(in *Instruction, operands []string, address uint32) error {
	return asm.expand(in, address,
		[]string{"pushd", formatImmediate(address + returnOffset)},
		[]string{"jmp", operands[0]},
	)
}

// RET

// ret → popd %IP
func (asm *Assembler) assembleRet(in *Instruction) error {
	return asm.expand(in, 0, []string{"popd", registerSigil + isa.InstructionPointer})
}

// NOOP

// noop → jmpf %arg1, a jump that is never taken.
func (asm *Assembler) assembleNoop(in *Instruction) error {
	return asm.expand(in, 0, []string{"jmp" + isa.UnconditionalFalse, registerSigil + "arg1"})
}
