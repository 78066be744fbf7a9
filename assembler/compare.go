package assembler

import (
	"github.com/Urethramancer/tigercat/isa"
)

// --- CMP ---

// CMP is encoded as a subtraction into a scratch destination that the
// hardware discards, so the source only names the two values compared.
func (asm *Assembler) assembleCmp(in *Instruction, operands []string) error {
	if !in.encodable {
		return nil
	}

	name := isa.CompareSingle
	if in.Width == isa.Double {
		name = isa.CompareDouble
	}
	dst, err := asm.register(name, in.Width)
	if err != nil {
		return err
	}
	return asm.bindOperands(in, operands, dst)
}
