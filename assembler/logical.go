package assembler

import (
	"fmt"

	"github.com/Urethramancer/tigercat/isa"
)

// invdImmediateLimit is the largest immediate current hardware inverts correctly.
const invdImmediateLimit = 0x7FFFF

// --- INV ---
func (asm *Assembler) assembleInv(in *Instruction, operands []string) error {
	if err := asm.bindOperands(in, operands); err != nil {
		return err
	}
	if !in.encodable || in.Width != isa.Double || in.Mode != isa.Immediate {
		return nil
	}

	if v := in.Args[len(in.Args)-1].Code; v > invdImmediateLimit {
		in.warnings = append(in.warnings, fmt.Sprintf(
			"%s: the hardware does not support immediates above %#x (got %#x)",
			in.Mnemonic, invdImmediateLimit, v,
		))
	}
	return nil
}
